package usecase

import (
	"context"
	"fmt"

	"github.com/onboardiq/onboardiq/internal/application/dto"
	"github.com/onboardiq/onboardiq/internal/domain/port"
)

// GetSubmission is the use case for retrieving an existing submission.
type GetSubmission struct {
	repo port.SubmissionRepository
}

// NewGetSubmission creates a new GetSubmission use case.
func NewGetSubmission(repo port.SubmissionRepository) *GetSubmission {
	return &GetSubmission{repo: repo}
}

// Execute retrieves a submission by ID.
func (uc *GetSubmission) Execute(ctx context.Context, req dto.GetSubmissionRequest) (dto.SubmissionResponse, error) {
	submission, err := uc.repo.FindByID(ctx, req.ID)
	if err != nil {
		return dto.SubmissionResponse{}, fmt.Errorf("failed to find submission: %w", err)
	}
	return dto.FromModel(submission), nil
}
