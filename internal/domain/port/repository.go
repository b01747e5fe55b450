package port

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/onboardiq/onboardiq/internal/domain/model"
	"github.com/onboardiq/onboardiq/internal/domain/valueobject"
	"github.com/onboardiq/onboardiq/pkg/events"
)

// SortOrder selects the ordering of submission listings.
type SortOrder string

const (
	SortNewest   SortOrder = "newest"
	SortOldest   SortOrder = "oldest"
	SortRiskHigh SortOrder = "risk-high"
	SortRiskLow  SortOrder = "risk-low"
)

// ParseSortOrder validates a sort order; empty means newest first.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case "":
		return SortNewest, nil
	case SortNewest, SortOldest, SortRiskHigh, SortRiskLow:
		return SortOrder(s), nil
	default:
		return "", fmt.Errorf("%w: unknown sort order %q", model.ErrInvalidArgument, s)
	}
}

// ListQuery filters and pages a submission listing. A zero Status matches all
// submissions and a zero Limit returns every match.
type ListQuery struct {
	Status valueobject.ReviewStatus
	Sort   SortOrder
	Limit  int
	Offset int
}

// SubmissionRepository defines persistence operations for submissions.
type SubmissionRepository interface {
	Create(ctx context.Context, submission *model.Submission) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Submission, error)
	// List returns the requested page and the total number of matches.
	List(ctx context.Context, query ListQuery) ([]*model.Submission, int, error)
	// FindPotentialDuplicates returns, oldest first, every submission whose
	// normalized email or tax ID digits equal the given non-empty values.
	FindPotentialDuplicates(ctx context.Context, email, taxIDDigits string) ([]*model.Submission, error)
	// Update persists a changed submission. It fails with
	// model.ErrConcurrentUpdate if the stored version is not the one the
	// submission was loaded at.
	Update(ctx context.Context, submission *model.Submission) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// EventPublisher defines the interface for publishing domain events.
type EventPublisher interface {
	Publish(ctx context.Context, events ...events.DomainEvent) error
}

// AssessmentRecorder receives scoring outcomes for metrics.
type AssessmentRecorder interface {
	RecordAssessment(ctx context.Context, entityType valueobject.EntityType, assessment model.RiskAssessment)
	RecordDuplicates(ctx context.Context, warnings []model.DuplicateWarning)
}
