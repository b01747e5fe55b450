package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/onboardiq/onboardiq/internal/application/dto"
	"github.com/onboardiq/onboardiq/internal/domain/model"
	"github.com/onboardiq/onboardiq/internal/domain/port"
	"github.com/onboardiq/onboardiq/internal/domain/service"
)

// SubmitApplication scores a new application, checks it against stored
// submissions, persists it and publishes the resulting events.
type SubmitApplication struct {
	repo      port.SubmissionRepository
	publisher port.EventPublisher
	scorer    service.Scorer
	detector  service.Detector
	recorder  port.AssessmentRecorder
}

// NewSubmitApplication creates a new SubmitApplication use case. recorder may be nil.
func NewSubmitApplication(
	repo port.SubmissionRepository,
	publisher port.EventPublisher,
	scorer service.Scorer,
	detector service.Detector,
	recorder port.AssessmentRecorder,
) *SubmitApplication {
	return &SubmitApplication{
		repo:      repo,
		publisher: publisher,
		scorer:    scorer,
		detector:  detector,
		recorder:  recorderOrNoop(recorder),
	}
}

// Execute stores the application and returns the created submission.
func (uc *SubmitApplication) Execute(ctx context.Context, req dto.SubmitApplicationRequest) (_ dto.SubmissionResponse, err error) {
	ctx, span := tracer.Start(ctx, "SubmitApplication")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	// 1. Validate and convert the input.
	record, err := req.Application.ToRecord()
	if err != nil {
		return dto.SubmissionResponse{}, fmt.Errorf("invalid application: %w", err)
	}

	// 2. Score and check for duplicates.
	assessment, err := uc.scorer.Assess(&record)
	if err != nil {
		return dto.SubmissionResponse{}, fmt.Errorf("failed to assess application: %w", err)
	}
	duplicates, err := findDuplicates(ctx, uc.repo, uc.detector, &record, uuid.Nil)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	// 3. Create the aggregate.
	submission, err := model.NewSubmission(record, assessment, duplicates)
	if err != nil {
		return dto.SubmissionResponse{}, fmt.Errorf("failed to create submission: %w", err)
	}
	span.SetAttributes(
		attribute.String("submission.id", submission.ID().String()),
		attribute.String("submission.entity_type", record.EntityType.String()),
		attribute.Int("risk.score", assessment.Score),
		attribute.Int("duplicates.count", len(duplicates)),
	)

	// 4. Persist.
	if err := uc.repo.Create(ctx, submission); err != nil {
		return dto.SubmissionResponse{}, fmt.Errorf("failed to save submission: %w", err)
	}

	uc.recorder.RecordAssessment(ctx, record.EntityType, assessment)
	uc.recorder.RecordDuplicates(ctx, duplicates)

	// 5. Publish domain events.
	if evts := submission.DomainEvents(); len(evts) > 0 {
		if err := uc.publisher.Publish(ctx, evts...); err != nil {
			return dto.SubmissionResponse{}, fmt.Errorf("failed to publish events: %w", err)
		}
	}

	return dto.FromModel(submission), nil
}
