package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/onboardiq/onboardiq/internal/application/dto"
	"github.com/onboardiq/onboardiq/internal/domain/model"
	pkgkafka "github.com/onboardiq/onboardiq/pkg/kafka"
)

// ApplicationSubmitter is satisfied by *usecase.SubmitApplication.
type ApplicationSubmitter interface {
	Execute(ctx context.Context, req dto.SubmitApplicationRequest) (dto.SubmissionResponse, error)
}

// Importer turns application messages from an upstream intake topic into
// stored submissions.
type Importer struct {
	submit ApplicationSubmitter
	logger *slog.Logger
}

// NewImporter creates an Importer.
func NewImporter(submit ApplicationSubmitter, logger *slog.Logger) *Importer {
	return &Importer{submit: submit, logger: logger}
}

// Handle is a pkgkafka.Handler. Messages that can never succeed (bad JSON or
// an invalid application) are logged and dropped so they do not block the
// partition. Other failures are returned and the consumer retries the same
// message until it is imported.
func (i *Importer) Handle(ctx context.Context, msg pkgkafka.Message) error {
	var input dto.ApplicationInput
	if err := json.Unmarshal(msg.Value, &input); err != nil {
		i.logger.WarnContext(ctx, "dropping malformed application message",
			slog.String("key", string(msg.Key)),
			slog.String("error", err.Error()),
		)
		return nil
	}

	resp, err := i.submit.Execute(ctx, dto.SubmitApplicationRequest{Application: input})
	if errors.Is(err, model.ErrInvalidArgument) {
		i.logger.WarnContext(ctx, "dropping invalid application",
			slog.String("key", string(msg.Key)),
			slog.String("error", err.Error()),
		)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to import application: %w", err)
	}

	i.logger.InfoContext(ctx, "application imported",
		slog.String("submission_id", resp.ID.String()),
		slog.String("status", resp.Status),
		slog.Int("risk_score", resp.RiskAssessment.Score),
	)
	return nil
}
