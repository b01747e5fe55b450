package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/onboardiq/onboardiq/internal/domain/model"
	"github.com/onboardiq/onboardiq/internal/domain/port"
	"github.com/onboardiq/onboardiq/internal/domain/valueobject"
)

// AssessmentMetrics records scoring outcomes as OpenTelemetry instruments.
type AssessmentMetrics struct {
	assessments metric.Int64Counter
	scores      metric.Int64Histogram
	factors     metric.Int64Counter
	duplicates  metric.Int64Counter
}

var _ port.AssessmentRecorder = (*AssessmentMetrics)(nil)

// NewAssessmentMetrics registers the instruments on meter.
func NewAssessmentMetrics(meter metric.Meter) (*AssessmentMetrics, error) {
	assessments, err := meter.Int64Counter("onboarding.assessments",
		metric.WithDescription("Applications assessed, by entity type, level and status"),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: assessments counter: %w", err)
	}

	scores, err := meter.Int64Histogram("onboarding.risk_score",
		metric.WithDescription("Distribution of risk scores"),
		metric.WithExplicitBucketBoundaries(10, 20, 30, 40, 50, 60, 70, 80, 90, 100),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: score histogram: %w", err)
	}

	factors, err := meter.Int64Counter("onboarding.risk_factors",
		metric.WithDescription("Risk factors raised, by factor type"),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: factors counter: %w", err)
	}

	duplicates, err := meter.Int64Counter("onboarding.duplicates",
		metric.WithDescription("Duplicate warnings raised, by match type"),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: duplicates counter: %w", err)
	}

	return &AssessmentMetrics{
		assessments: assessments,
		scores:      scores,
		factors:     factors,
		duplicates:  duplicates,
	}, nil
}

// RecordAssessment counts one scored application.
func (m *AssessmentMetrics) RecordAssessment(ctx context.Context, entityType valueobject.EntityType, a model.RiskAssessment) {
	entity := entityType.String()
	if entity == "" {
		entity = "unspecified"
	}

	m.assessments.Add(ctx, 1, metric.WithAttributes(
		attribute.String("entity_type", entity),
		attribute.String("risk_level", a.Level.String()),
		attribute.String("status", a.Status.String()),
	))
	m.scores.Record(ctx, int64(a.Score), metric.WithAttributes(attribute.String("entity_type", entity)))

	for _, f := range a.Factors {
		m.factors.Add(ctx, 1, metric.WithAttributes(
			attribute.String("type", f.Type),
			attribute.String("severity", f.Severity.String()),
		))
	}
}

// RecordDuplicates counts duplicate warnings by match type.
func (m *AssessmentMetrics) RecordDuplicates(ctx context.Context, warnings []model.DuplicateWarning) {
	for _, w := range warnings {
		m.duplicates.Add(ctx, 1, metric.WithAttributes(attribute.String("type", w.Type)))
	}
}
