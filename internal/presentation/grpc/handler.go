package grpc

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/onboardiq/onboardiq/internal/application/dto"
	"github.com/onboardiq/onboardiq/internal/application/usecase"
	"github.com/onboardiq/onboardiq/internal/domain/model"
	"github.com/onboardiq/onboardiq/pkg/auth"
)

// Role sets per operation.
var (
	submitRoles = []string{auth.RoleAdmin, auth.RoleOperator, auth.RoleCustomer, auth.RoleAPIClient}
	readRoles   = []string{auth.RoleAdmin, auth.RoleOperator, auth.RoleAuditor}
	manageRoles = []string{auth.RoleAdmin, auth.RoleOperator}
)

// UseCases bundles the application operations the handler serves.
type UseCases struct {
	Assess     *usecase.AssessApplication
	Submit     *usecase.SubmitApplication
	Get        *usecase.GetSubmission
	List       *usecase.ListSubmissions
	Update     *usecase.UpdateSubmission
	Override   *usecase.OverrideStatus
	Delete     *usecase.DeleteSubmission
	Statistics *usecase.GetStatistics
}

// Compile-time assertion that OnboardingHandler implements OnboardingServiceServer.
var _ OnboardingServiceServer = (*OnboardingHandler)(nil)

// OnboardingHandler implements the gRPC OnboardingServiceServer interface.
type OnboardingHandler struct {
	UnimplementedOnboardingServiceServer
	uc     UseCases
	logger *slog.Logger
}

// NewOnboardingHandler creates a new gRPC handler.
func NewOnboardingHandler(uc UseCases, logger *slog.Logger) *OnboardingHandler {
	return &OnboardingHandler{uc: uc, logger: logger}
}

// AssessApplication scores an application without storing it.
func (h *OnboardingHandler) AssessApplication(ctx context.Context, req *AssessApplicationRequest) (*dto.AssessmentPreviewResponse, error) {
	if err := auth.CheckRole(ctx, submitRoles...); err != nil {
		return nil, err
	}

	var exclude uuid.UUID
	if req.ExcludeID != "" {
		id, err := parseID(req.ExcludeID)
		if err != nil {
			return nil, err
		}
		exclude = id
	}

	resp, err := h.uc.Assess.Execute(ctx, dto.AssessApplicationRequest{Application: req.Application, ExcludeID: exclude})
	if err != nil {
		return nil, h.toStatus(ctx, "assess application", err)
	}
	return &resp, nil
}

// SubmitApplication stores and scores an application.
func (h *OnboardingHandler) SubmitApplication(ctx context.Context, req *SubmitApplicationRequest) (*SubmissionReply, error) {
	if err := auth.CheckRole(ctx, submitRoles...); err != nil {
		return nil, err
	}

	resp, err := h.uc.Submit.Execute(ctx, dto.SubmitApplicationRequest{Application: req.Application})
	if err != nil {
		return nil, h.toStatus(ctx, "submit application", err)
	}

	h.logger.InfoContext(ctx, "application submitted",
		slog.String("submission_id", resp.ID.String()),
		slog.Int("risk_score", resp.RiskAssessment.Score),
		slog.String("status", resp.Status),
	)
	return &SubmissionReply{Submission: resp}, nil
}

// GetSubmission returns one submission.
func (h *OnboardingHandler) GetSubmission(ctx context.Context, req *GetSubmissionRequest) (*SubmissionReply, error) {
	if err := auth.CheckRole(ctx, readRoles...); err != nil {
		return nil, err
	}
	id, err := parseID(req.ID)
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.Get.Execute(ctx, dto.GetSubmissionRequest{ID: id})
	if err != nil {
		return nil, h.toStatus(ctx, "get submission", err)
	}
	return &SubmissionReply{Submission: resp}, nil
}

// ListSubmissions returns a filtered, sorted page of submissions.
func (h *OnboardingHandler) ListSubmissions(ctx context.Context, req *ListSubmissionsRequest) (*dto.ListSubmissionsResponse, error) {
	if err := auth.CheckRole(ctx, readRoles...); err != nil {
		return nil, err
	}

	resp, err := h.uc.List.Execute(ctx, dto.ListSubmissionsRequest{
		Status: req.Status,
		Sort:   req.Sort,
		Limit:  int(req.Limit),
		Offset: int(req.Offset),
	})
	if err != nil {
		return nil, h.toStatus(ctx, "list submissions", err)
	}
	return &resp, nil
}

// UpdateSubmission edits a submission and reassesses it.
func (h *OnboardingHandler) UpdateSubmission(ctx context.Context, req *UpdateSubmissionRequest) (*SubmissionReply, error) {
	if err := auth.CheckRole(ctx, manageRoles...); err != nil {
		return nil, err
	}
	id, err := parseID(req.ID)
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.Update.Execute(ctx, dto.UpdateSubmissionRequest{ID: id, Changes: req.Changes})
	if err != nil {
		return nil, h.toStatus(ctx, "update submission", err)
	}
	return &SubmissionReply{Submission: resp}, nil
}

// OverrideStatus sets a submission's review status by hand.
func (h *OnboardingHandler) OverrideStatus(ctx context.Context, req *OverrideStatusRequest) (*SubmissionReply, error) {
	if err := auth.CheckRole(ctx, manageRoles...); err != nil {
		return nil, err
	}
	id, err := parseID(req.ID)
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.Override.Execute(ctx, dto.OverrideStatusRequest{
		ID:         id,
		Status:     req.Status,
		ReviewerID: reviewerID(ctx),
	})
	if err != nil {
		return nil, h.toStatus(ctx, "override status", err)
	}
	return &SubmissionReply{Submission: resp}, nil
}

// DeleteSubmission removes a submission.
func (h *OnboardingHandler) DeleteSubmission(ctx context.Context, req *DeleteSubmissionRequest) (*DeleteSubmissionResponse, error) {
	if err := auth.CheckRole(ctx, manageRoles...); err != nil {
		return nil, err
	}
	id, err := parseID(req.ID)
	if err != nil {
		return nil, err
	}

	if err := h.uc.Delete.Execute(ctx, dto.DeleteSubmissionRequest{ID: id}); err != nil {
		return nil, h.toStatus(ctx, "delete submission", err)
	}
	return &DeleteSubmissionResponse{}, nil
}

// GetStatistics summarizes stored submissions.
func (h *OnboardingHandler) GetStatistics(ctx context.Context, _ *GetStatisticsRequest) (*dto.StatisticsResponse, error) {
	if err := auth.CheckRole(ctx, readRoles...); err != nil {
		return nil, err
	}

	resp, err := h.uc.Statistics.Execute(ctx)
	if err != nil {
		return nil, h.toStatus(ctx, "get statistics", err)
	}
	return &resp, nil
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, status.Errorf(codes.InvalidArgument, "invalid id: %v", err)
	}
	return id, nil
}

func reviewerID(ctx context.Context) string {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return ""
	}
	if claims.UserID != uuid.Nil {
		return claims.UserID.String()
	}
	return claims.Subject
}

// toStatus maps domain errors to gRPC codes. Unexpected errors are logged and
// reported without detail.
func (h *OnboardingHandler) toStatus(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, model.ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, model.ErrSubmissionNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, model.ErrConcurrentUpdate):
		return status.Error(codes.Aborted, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		h.logger.ErrorContext(ctx, "failed to "+op, slog.String("error", err.Error()))
		return status.Errorf(codes.Internal, "failed to %s", op)
	}
}
