package event

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/onboardiq/onboardiq/pkg/events"
)

// AggregateType is the aggregate name carried on every onboarding event.
const AggregateType = "Submission"

const (
	// EventTypeSubmissionAssessed is emitted whenever a submission is scored,
	// on creation and on every edit.
	EventTypeSubmissionAssessed = "onboarding.submission.assessed"

	// EventTypeSubmissionFlagged is emitted when a computed status is flagged.
	EventTypeSubmissionFlagged = "onboarding.submission.flagged"

	// EventTypeDuplicateDetected is emitted when duplicate checks found matches.
	EventTypeDuplicateDetected = "onboarding.submission.duplicate_detected"

	// EventTypeStatusOverridden is emitted when a reviewer sets the status by hand.
	EventTypeStatusOverridden = "onboarding.submission.status_overridden"

	// EventTypeSubmissionDeleted is emitted when a submission is removed.
	EventTypeSubmissionDeleted = "onboarding.submission.deleted"
)

// SubmissionAssessed is published after a submission has been (re)scored.
type SubmissionAssessed struct {
	events.BaseEvent `json:"-"`
	SubmissionID     uuid.UUID `json:"submission_id"`
	EntityType       string    `json:"entity_type"`
	CompanyName      string    `json:"company_name"`
	RiskScore        int       `json:"risk_score"`
	RiskLevel        string    `json:"risk_level"`
	Status           string    `json:"status"`
	FactorTypes      []string  `json:"factor_types"`
	Revision         int       `json:"revision"`
	AssessedAt       time.Time `json:"assessed_at"`
}

func NewSubmissionAssessed(
	submissionID uuid.UUID,
	entityType, companyName string,
	riskScore int,
	riskLevel, status string,
	factorTypes []string,
	revision int,
	assessedAt time.Time,
) SubmissionAssessed {
	e := SubmissionAssessed{
		SubmissionID: submissionID,
		EntityType:   entityType,
		CompanyName:  companyName,
		RiskScore:    riskScore,
		RiskLevel:    riskLevel,
		Status:       status,
		FactorTypes:  factorTypes,
		Revision:     revision,
		AssessedAt:   assessedAt,
	}
	e.BaseEvent = events.NewBaseEvent(EventTypeSubmissionAssessed, submissionID, AggregateType, assessedAt, marshal(e))
	return e
}

// SubmissionFlagged is published when scoring lands a submission in the
// flagged band, so downstream review queues can pick it up.
type SubmissionFlagged struct {
	events.BaseEvent `json:"-"`
	SubmissionID     uuid.UUID `json:"submission_id"`
	CompanyName      string    `json:"company_name"`
	RiskScore        int       `json:"risk_score"`
	Reasons          []string  `json:"reasons"`
}

func NewSubmissionFlagged(submissionID uuid.UUID, companyName string, riskScore int, reasons []string, at time.Time) SubmissionFlagged {
	e := SubmissionFlagged{
		SubmissionID: submissionID,
		CompanyName:  companyName,
		RiskScore:    riskScore,
		Reasons:      reasons,
	}
	e.BaseEvent = events.NewBaseEvent(EventTypeSubmissionFlagged, submissionID, AggregateType, at, marshal(e))
	return e
}

// DuplicateMatch identifies one prior submission sharing an identifier.
type DuplicateMatch struct {
	Type       string `json:"type"`
	ExistingID string `json:"existing_id"`
}

// DuplicateDetected is published when a submission matches prior ones.
type DuplicateDetected struct {
	events.BaseEvent `json:"-"`
	SubmissionID     uuid.UUID        `json:"submission_id"`
	Matches          []DuplicateMatch `json:"matches"`
}

func NewDuplicateDetected(submissionID uuid.UUID, matches []DuplicateMatch, at time.Time) DuplicateDetected {
	e := DuplicateDetected{
		SubmissionID: submissionID,
		Matches:      matches,
	}
	e.BaseEvent = events.NewBaseEvent(EventTypeDuplicateDetected, submissionID, AggregateType, at, marshal(e))
	return e
}

// StatusOverridden is published when a reviewer replaces the computed status.
type StatusOverridden struct {
	events.BaseEvent `json:"-"`
	SubmissionID     uuid.UUID `json:"submission_id"`
	PreviousStatus   string    `json:"previous_status"`
	Status           string    `json:"status"`
	ReviewerID       string    `json:"reviewer_id,omitempty"`
	RiskScore        int       `json:"risk_score"`
}

func NewStatusOverridden(submissionID uuid.UUID, previous, status, reviewerID string, riskScore int, at time.Time) StatusOverridden {
	e := StatusOverridden{
		SubmissionID:   submissionID,
		PreviousStatus: previous,
		Status:         status,
		ReviewerID:     reviewerID,
		RiskScore:      riskScore,
	}
	e.BaseEvent = events.NewBaseEvent(EventTypeStatusOverridden, submissionID, AggregateType, at, marshal(e))
	return e
}

// SubmissionDeleted is published after a submission has been removed.
type SubmissionDeleted struct {
	events.BaseEvent `json:"-"`
	SubmissionID     uuid.UUID `json:"submission_id"`
	CompanyName      string    `json:"company_name"`
}

func NewSubmissionDeleted(submissionID uuid.UUID, companyName string, at time.Time) SubmissionDeleted {
	e := SubmissionDeleted{
		SubmissionID: submissionID,
		CompanyName:  companyName,
	}
	e.BaseEvent = events.NewBaseEvent(EventTypeSubmissionDeleted, submissionID, AggregateType, at, marshal(e))
	return e
}

// marshal cannot fail for the plain structs above.
func marshal(v any) []byte {
	b, _ := json.Marshal(v)
	return b
}
