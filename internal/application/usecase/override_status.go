package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/onboardiq/onboardiq/internal/application/dto"
	"github.com/onboardiq/onboardiq/internal/domain/model"
	"github.com/onboardiq/onboardiq/internal/domain/port"
	"github.com/onboardiq/onboardiq/internal/domain/valueobject"
)

// OverrideStatus lets a reviewer replace the computed review status. The risk
// assessment itself is not touched.
type OverrideStatus struct {
	repo      port.SubmissionRepository
	publisher port.EventPublisher
}

func NewOverrideStatus(repo port.SubmissionRepository, publisher port.EventPublisher) *OverrideStatus {
	return &OverrideStatus{repo: repo, publisher: publisher}
}

func (uc *OverrideStatus) Execute(ctx context.Context, req dto.OverrideStatusRequest) (dto.SubmissionResponse, error) {
	status, err := valueobject.ReviewStatusFromString(req.Status)
	if err != nil {
		return dto.SubmissionResponse{}, fmt.Errorf("%w: %v", model.ErrInvalidArgument, err)
	}

	submission, err := uc.repo.FindByID(ctx, req.ID)
	if err != nil {
		return dto.SubmissionResponse{}, fmt.Errorf("failed to find submission: %w", err)
	}

	if err := submission.OverrideStatus(status, req.ReviewerID, time.Now()); err != nil {
		return dto.SubmissionResponse{}, fmt.Errorf("failed to override status: %w", err)
	}

	if err := uc.repo.Update(ctx, submission); err != nil {
		return dto.SubmissionResponse{}, fmt.Errorf("failed to save submission: %w", err)
	}

	if evts := submission.DomainEvents(); len(evts) > 0 {
		if err := uc.publisher.Publish(ctx, evts...); err != nil {
			return dto.SubmissionResponse{}, fmt.Errorf("failed to publish events: %w", err)
		}
	}

	return dto.FromModel(submission), nil
}
