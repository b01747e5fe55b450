package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/onboardiq/onboardiq/internal/application/dto"
	"github.com/onboardiq/onboardiq/internal/application/usecase"
	"github.com/onboardiq/onboardiq/internal/domain/model"
)

const defaultListLimit = 20

// UseCases bundles the operations exposed as tools.
type UseCases struct {
	Assess     *usecase.AssessApplication
	Submit     *usecase.SubmitApplication
	Get        *usecase.GetSubmission
	List       *usecase.ListSubmissions
	Statistics *usecase.GetStatistics
}

// Handlers holds the handler functions for each MCP tool.
type Handlers struct {
	uc UseCases
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(uc UseCases) *Handlers {
	return &Handlers{uc: uc}
}

// HandleAssessApplication previews an assessment.
func (h *Handlers) HandleAssessApplication(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	in, err := applicationArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	resp, err := h.uc.Assess.Execute(ctx, dto.AssessApplicationRequest{Application: in})
	if err != nil {
		return toolError("assess application", err), nil
	}
	return jsonResult(resp)
}

// HandleSubmitApplication stores an application.
func (h *Handlers) HandleSubmitApplication(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	in, err := applicationArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	resp, err := h.uc.Submit.Execute(ctx, dto.SubmitApplicationRequest{Application: in})
	if err != nil {
		return toolError("submit application", err), nil
	}
	return jsonResult(resp)
}

// HandleGetSubmission fetches one submission.
func (h *Handlers) HandleGetSubmission(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := uuid.Parse(req.GetString("id", ""))
	if err != nil {
		return mcp.NewToolResultError("id must be a submission UUID"), nil
	}

	resp, err := h.uc.Get.Execute(ctx, dto.GetSubmissionRequest{ID: id})
	if err != nil {
		return toolError("get submission", err), nil
	}
	return jsonResult(resp)
}

// HandleListSubmissions lists submissions.
func (h *Handlers) HandleListSubmissions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", defaultListLimit)
	if limit <= 0 {
		limit = defaultListLimit
	}

	resp, err := h.uc.List.Execute(ctx, dto.ListSubmissionsRequest{
		Status: req.GetString("status", ""),
		Sort:   req.GetString("sort", ""),
		Limit:  limit,
	})
	if err != nil {
		return toolError("list submissions", err), nil
	}
	return jsonResult(resp)
}

// HandleSubmissionStatistics summarizes all submissions.
func (h *Handlers) HandleSubmissionStatistics(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp, err := h.uc.Statistics.Execute(ctx)
	if err != nil {
		return toolError("get statistics", err), nil
	}
	return jsonResult(resp)
}

// applicationArg decodes the "application" object argument.
func applicationArg(req mcp.CallToolRequest) (dto.ApplicationInput, error) {
	raw, ok := req.GetArguments()["application"]
	if !ok || raw == nil {
		return dto.ApplicationInput{}, errors.New("application is required")
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return dto.ApplicationInput{}, fmt.Errorf("application: %w", err)
	}
	var in dto.ApplicationInput
	if err := json.Unmarshal(data, &in); err != nil {
		return dto.ApplicationInput{}, fmt.Errorf("application must be an object of form fields: %w", err)
	}
	return in, nil
}

func toolError(op string, err error) *mcp.CallToolResult {
	switch {
	case errors.Is(err, model.ErrSubmissionNotFound):
		return mcp.NewToolResultError("Submission not found")
	case errors.Is(err, model.ErrInvalidArgument):
		return mcp.NewToolResultError(err.Error())
	default:
		return mcp.NewToolResultError(fmt.Sprintf("Failed to %s: %v", op, err))
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return mcp.NewToolResultText(string(out)), nil
}
