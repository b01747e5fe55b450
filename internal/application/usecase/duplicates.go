package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	"github.com/onboardiq/onboardiq/internal/domain/model"
	"github.com/onboardiq/onboardiq/internal/domain/port"
	"github.com/onboardiq/onboardiq/internal/domain/service"
	"github.com/onboardiq/onboardiq/internal/domain/valueobject"
)

var tracer = otel.Tracer("github.com/onboardiq/onboardiq/internal/application/usecase")

// findDuplicates narrows the stored submissions to those sharing an
// identifier with record and runs the detector over them. exclude leaves out
// the submission being edited.
func findDuplicates(
	ctx context.Context,
	repo port.SubmissionRepository,
	detector service.Detector,
	record *model.ApplicationRecord,
	exclude uuid.UUID,
) ([]model.DuplicateWarning, error) {
	email, taxDigits := record.NormalizedEmail(), record.TaxIDDigits()
	if email == "" && taxDigits == "" {
		return detector.FindDuplicates(record, nil)
	}

	candidates, err := repo.FindPotentialDuplicates(ctx, email, taxDigits)
	if err != nil {
		return nil, fmt.Errorf("failed to load duplicate candidates: %w", err)
	}

	existing := make([]service.ExistingRecord, 0, len(candidates))
	for _, s := range candidates {
		if s.ID() == exclude {
			continue
		}
		existing = append(existing, service.ExistingRecord{ID: s.ID().String(), Record: s.Record()})
	}
	return detector.FindDuplicates(record, existing)
}

type noopRecorder struct{}

func (noopRecorder) RecordAssessment(context.Context, valueobject.EntityType, model.RiskAssessment) {}
func (noopRecorder) RecordDuplicates(context.Context, []model.DuplicateWarning)                  {}

func recorderOrNoop(r port.AssessmentRecorder) port.AssessmentRecorder {
	if r == nil {
		return noopRecorder{}
	}
	return r
}
