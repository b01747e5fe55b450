package model

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/onboardiq/onboardiq/internal/domain/event"
	"github.com/onboardiq/onboardiq/internal/domain/valueobject"
	"github.com/onboardiq/onboardiq/pkg/events"
)

// Submission is the aggregate root for a stored onboarding application: the
// record as submitted, its latest assessment and duplicate warnings, and the
// effective review status.
type Submission struct {
	pending events.Pending

	createdAt        time.Time
	updatedAt        time.Time
	assessment       RiskAssessment
	status           valueobject.ReviewStatus
	record           ApplicationRecord
	duplicates       []DuplicateWarning
	version          int
	statusOverridden bool
	id               uuid.UUID
}

// NewSubmission creates a submission from a scored record. The entity type must
// be chosen before an application can be submitted.
func NewSubmission(record ApplicationRecord, assessment RiskAssessment, duplicates []DuplicateWarning) (*Submission, error) {
	if record.EntityType.IsZero() {
		return nil, fmt.Errorf("%w: entity type is required", ErrInvalidArgument)
	}
	if assessment.Level.IsZero() || assessment.Status.IsZero() {
		return nil, fmt.Errorf("%w: assessment is required", ErrInvalidArgument)
	}

	now := assessment.AssessedAt
	if now.IsZero() {
		now = time.Now().UTC()
	}

	s := &Submission{
		id:         uuid.New(),
		record:     record.Clone(),
		assessment: assessment.clone(),
		duplicates: cloneWarnings(duplicates),
		status:     assessment.Status,
		version:    1,
		createdAt:  now,
		updatedAt:  now,
	}
	s.recordAssessmentEvents()
	return s, nil
}

// Reassess replaces the record and every computed field. A manual override is
// discarded because the new score decides the status again.
func (s *Submission) Reassess(record ApplicationRecord, assessment RiskAssessment, duplicates []DuplicateWarning) error {
	if record.EntityType.IsZero() {
		return fmt.Errorf("%w: entity type is required", ErrInvalidArgument)
	}
	if assessment.Level.IsZero() || assessment.Status.IsZero() {
		return fmt.Errorf("%w: assessment is required", ErrInvalidArgument)
	}

	s.record = record.Clone()
	s.assessment = assessment.clone()
	s.duplicates = cloneWarnings(duplicates)
	s.status = assessment.Status
	s.statusOverridden = false
	s.updatedAt = laterOf(assessment.AssessedAt, s.updatedAt)
	s.version++

	s.recordAssessmentEvents()
	return nil
}

// OverrideStatus sets the review status by hand. The computed assessment is
// kept as is.
func (s *Submission) OverrideStatus(status valueobject.ReviewStatus, reviewerID string, at time.Time) error {
	if status.IsZero() {
		return fmt.Errorf("%w: status is required", ErrInvalidArgument)
	}

	previous := s.status
	s.status = status
	s.statusOverridden = true
	s.updatedAt = laterOf(at.UTC(), s.updatedAt)
	s.version++

	s.pending.Record(event.NewStatusOverridden(s.id, previous.String(), status.String(), reviewerID, s.assessment.Score, s.updatedAt))
	return nil
}

// MarkDeleted records the deletion event. Removal itself is the repository's job.
func (s *Submission) MarkDeleted(at time.Time) {
	s.pending.Record(event.NewSubmissionDeleted(s.id, s.record.CompanyName, at))
}

func (s *Submission) recordAssessmentEvents() {
	a := s.assessment
	s.pending.Record(event.NewSubmissionAssessed(
		s.id, s.record.EntityType.String(), s.record.CompanyName,
		a.Score, a.Level.String(), a.Status.String(),
		a.FactorTypes(), s.version, s.updatedAt,
	))

	if a.Status.Equal(valueobject.ReviewStatusFlagged) {
		reasons := make([]string, 0, len(a.Factors))
		for _, f := range a.Factors {
			reasons = append(reasons, f.Message)
		}
		s.pending.Record(event.NewSubmissionFlagged(s.id, s.record.CompanyName, a.Score, reasons, s.updatedAt))
	}

	if len(s.duplicates) > 0 {
		matches := make([]event.DuplicateMatch, 0, len(s.duplicates))
		for _, d := range s.duplicates {
			matches = append(matches, event.DuplicateMatch{Type: d.Type, ExistingID: d.ExistingID})
		}
		s.pending.Record(event.NewDuplicateDetected(s.id, matches, s.updatedAt))
	}
}

// ReconstructSubmission rebuilds a Submission from persisted data (no validation, no events).
func ReconstructSubmission(
	id uuid.UUID,
	record ApplicationRecord,
	assessment RiskAssessment,
	duplicates []DuplicateWarning,
	status valueobject.ReviewStatus,
	statusOverridden bool,
	version int,
	createdAt, updatedAt time.Time,
) *Submission {
	if duplicates == nil {
		duplicates = []DuplicateWarning{}
	}
	return &Submission{
		id:               id,
		record:           record,
		assessment:       assessment,
		duplicates:       duplicates,
		status:           status,
		statusOverridden: statusOverridden,
		version:          version,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

// Clone returns an independent copy without pending events.
func (s *Submission) Clone() *Submission {
	return ReconstructSubmission(
		s.id, s.record.Clone(), s.assessment.clone(), cloneWarnings(s.duplicates),
		s.status, s.statusOverridden, s.version, s.createdAt, s.updatedAt,
	)
}

// --- Accessors ---

func (s *Submission) ID() uuid.UUID                      { return s.id }
func (s *Submission) Record() ApplicationRecord          { return s.record }
func (s *Submission) Assessment() RiskAssessment         { return s.assessment }
func (s *Submission) Duplicates() []DuplicateWarning     { return s.duplicates }
func (s *Submission) Status() valueobject.ReviewStatus   { return s.status }
func (s *Submission) StatusOverridden() bool             { return s.statusOverridden }
func (s *Submission) Version() int                       { return s.version }
func (s *Submission) CreatedAt() time.Time               { return s.createdAt }
func (s *Submission) UpdatedAt() time.Time               { return s.updatedAt }
func (s *Submission) EntityType() valueobject.EntityType { return s.record.EntityType }

// DomainEvents returns all accumulated domain events and clears them.
func (s *Submission) DomainEvents() []events.DomainEvent {
	return s.pending.Drain()
}

func cloneWarnings(in []DuplicateWarning) []DuplicateWarning {
	if in == nil {
		return []DuplicateWarning{}
	}
	return slices.Clone(in)
}

func laterOf(t, floor time.Time) time.Time {
	if t.After(floor) {
		return t
	}
	return floor
}
