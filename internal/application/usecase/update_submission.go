package usecase

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/onboardiq/onboardiq/internal/application/dto"
	"github.com/onboardiq/onboardiq/internal/domain/port"
	"github.com/onboardiq/onboardiq/internal/domain/service"
)

// UpdateSubmission applies an edit to a stored submission. The edited record
// is scored and checked for duplicates again, and the new results replace the
// old ones.
type UpdateSubmission struct {
	repo      port.SubmissionRepository
	publisher port.EventPublisher
	scorer    service.Scorer
	detector  service.Detector
	recorder  port.AssessmentRecorder
}

// NewUpdateSubmission creates a new UpdateSubmission use case. recorder may be nil.
func NewUpdateSubmission(
	repo port.SubmissionRepository,
	publisher port.EventPublisher,
	scorer service.Scorer,
	detector service.Detector,
	recorder port.AssessmentRecorder,
) *UpdateSubmission {
	return &UpdateSubmission{
		repo:      repo,
		publisher: publisher,
		scorer:    scorer,
		detector:  detector,
		recorder:  recorderOrNoop(recorder),
	}
}

// Execute reassesses and saves the edited submission.
func (uc *UpdateSubmission) Execute(ctx context.Context, req dto.UpdateSubmissionRequest) (_ dto.SubmissionResponse, err error) {
	ctx, span := tracer.Start(ctx, "UpdateSubmission")
	span.SetAttributes(attribute.String("submission.id", req.ID.String()))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	submission, err := uc.repo.FindByID(ctx, req.ID)
	if err != nil {
		return dto.SubmissionResponse{}, fmt.Errorf("failed to find submission: %w", err)
	}

	record, err := req.Changes.Apply(dto.FromRecord(submission.Record())).ToRecord()
	if err != nil {
		return dto.SubmissionResponse{}, fmt.Errorf("invalid application: %w", err)
	}

	assessment, err := uc.scorer.Assess(&record)
	if err != nil {
		return dto.SubmissionResponse{}, fmt.Errorf("failed to assess application: %w", err)
	}
	duplicates, err := findDuplicates(ctx, uc.repo, uc.detector, &record, submission.ID())
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	if err := submission.Reassess(record, assessment, duplicates); err != nil {
		return dto.SubmissionResponse{}, fmt.Errorf("failed to reassess submission: %w", err)
	}
	span.SetAttributes(attribute.Int("risk.score", assessment.Score))

	if err := uc.repo.Update(ctx, submission); err != nil {
		return dto.SubmissionResponse{}, fmt.Errorf("failed to save submission: %w", err)
	}

	uc.recorder.RecordAssessment(ctx, record.EntityType, assessment)
	uc.recorder.RecordDuplicates(ctx, duplicates)

	if evts := submission.DomainEvents(); len(evts) > 0 {
		if err := uc.publisher.Publish(ctx, evts...); err != nil {
			return dto.SubmissionResponse{}, fmt.Errorf("failed to publish events: %w", err)
		}
	}

	return dto.FromModel(submission), nil
}
