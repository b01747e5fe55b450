package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/onboardiq/onboardiq/internal/domain/model"
	"github.com/onboardiq/onboardiq/internal/domain/valueobject"
	"github.com/onboardiq/onboardiq/internal/infrastructure/telemetry"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestAssessmentMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := telemetry.NewAssessmentMetrics(provider.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	assessment := model.NewRiskAssessment(75, []model.RiskFactor{
		{Type: model.FactorSecurity, Severity: valueobject.SeverityHigh, Message: "Missing Encryption control"},
		{Type: model.FactorFraud, Severity: valueobject.SeverityHigh, Message: "Suspicious email domain"},
	}, time.Now())
	m.RecordAssessment(ctx, valueobject.EntityTypeVendor, assessment)
	m.RecordAssessment(ctx, valueobject.EntityType{}, model.NewRiskAssessment(0, nil, time.Now()))
	m.RecordDuplicates(ctx, []model.DuplicateWarning{
		{Type: model.DuplicateEmail, ExistingID: "a"},
		{Type: model.DuplicateTaxID, ExistingID: "b"},
		{Type: model.DuplicateEmail, ExistingID: "c"},
	})

	metrics := collect(t, reader)

	assessments, ok := metrics["onboarding.assessments"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	var total int64
	var sawUnspecified bool
	for _, dp := range assessments.DataPoints {
		total += dp.Value
		if v, _ := dp.Attributes.Value(attribute.Key("entity_type")); v.AsString() == "unspecified" {
			sawUnspecified = true
		}
	}
	assert.Equal(t, int64(2), total)
	assert.True(t, sawUnspecified)

	hist, ok := metrics["onboarding.risk_score"].Data.(metricdata.Histogram[int64])
	require.True(t, ok)
	var count uint64
	for _, dp := range hist.DataPoints {
		count += dp.Count
	}
	assert.Equal(t, uint64(2), count)

	dups, ok := metrics["onboarding.duplicates"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	byType := map[string]int64{}
	for _, dp := range dups.DataPoints {
		v, _ := dp.Attributes.Value(attribute.Key("type"))
		byType[v.AsString()] = dp.Value
	}
	assert.Equal(t, map[string]int64{"email": 2, "taxId": 1}, byType)

	factors, ok := metrics["onboarding.risk_factors"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	assert.Len(t, factors.DataPoints, 2)
}

func TestAssessmentMetrics_NoopMeter(t *testing.T) {
	m, err := telemetry.NewAssessmentMetrics(noop.NewMeterProvider().Meter("noop"))
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		m.RecordAssessment(context.Background(), valueobject.EntityTypeClient, model.NewRiskAssessment(10, nil, time.Now()))
		m.RecordDuplicates(context.Background(), nil)
	})
}
