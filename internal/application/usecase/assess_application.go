package usecase

import (
	"context"
	"fmt"

	"github.com/onboardiq/onboardiq/internal/application/dto"
	"github.com/onboardiq/onboardiq/internal/domain/port"
	"github.com/onboardiq/onboardiq/internal/domain/service"
)

// AssessApplication scores an application and checks it for duplicates
// without storing anything. It backs the live preview shown while an
// application is being filled in.
type AssessApplication struct {
	repo     port.SubmissionRepository
	scorer   service.Scorer
	detector service.Detector
}

// NewAssessApplication creates a new AssessApplication use case.
func NewAssessApplication(repo port.SubmissionRepository, scorer service.Scorer, detector service.Detector) *AssessApplication {
	return &AssessApplication{
		repo:     repo,
		scorer:   scorer,
		detector: detector,
	}
}

// Execute returns the assessment and duplicate warnings for the application.
func (uc *AssessApplication) Execute(ctx context.Context, req dto.AssessApplicationRequest) (dto.AssessmentPreviewResponse, error) {
	record, err := req.Application.ToRecord()
	if err != nil {
		return dto.AssessmentPreviewResponse{}, fmt.Errorf("invalid application: %w", err)
	}

	assessment, err := uc.scorer.Assess(&record)
	if err != nil {
		return dto.AssessmentPreviewResponse{}, fmt.Errorf("failed to assess application: %w", err)
	}

	duplicates, err := findDuplicates(ctx, uc.repo, uc.detector, &record, req.ExcludeID)
	if err != nil {
		return dto.AssessmentPreviewResponse{}, err
	}

	return dto.AssessmentPreviewResponse{
		Assessment: dto.FromAssessment(assessment),
		Duplicates: dto.FromDuplicates(duplicates),
	}, nil
}
