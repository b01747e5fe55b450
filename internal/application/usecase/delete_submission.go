package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/onboardiq/onboardiq/internal/application/dto"
	"github.com/onboardiq/onboardiq/internal/domain/port"
)

// DeleteSubmission removes a submission and announces the removal.
type DeleteSubmission struct {
	repo      port.SubmissionRepository
	publisher port.EventPublisher
}

func NewDeleteSubmission(repo port.SubmissionRepository, publisher port.EventPublisher) *DeleteSubmission {
	return &DeleteSubmission{repo: repo, publisher: publisher}
}

func (uc *DeleteSubmission) Execute(ctx context.Context, req dto.DeleteSubmissionRequest) error {
	submission, err := uc.repo.FindByID(ctx, req.ID)
	if err != nil {
		return fmt.Errorf("failed to find submission: %w", err)
	}

	submission.MarkDeleted(time.Now())

	if err := uc.repo.Delete(ctx, req.ID); err != nil {
		return fmt.Errorf("failed to delete submission: %w", err)
	}

	if err := uc.publisher.Publish(ctx, submission.DomainEvents()...); err != nil {
		return fmt.Errorf("failed to publish events: %w", err)
	}
	return nil
}
