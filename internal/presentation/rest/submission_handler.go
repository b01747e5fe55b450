package rest

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/onboardiq/onboardiq/internal/application/dto"
	"github.com/onboardiq/onboardiq/internal/application/usecase"
	"github.com/onboardiq/onboardiq/internal/domain/model"
	"github.com/onboardiq/onboardiq/pkg/auth"
)

// UseCases bundles the application operations the REST API serves.
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

// SubmissionHandler serves the /api/v1 onboarding endpoints.
type SubmissionHandler struct {
	uc     UseCases
	logger *slog.Logger
}

// NewSubmissionHandler creates a new SubmissionHandler.
func NewSubmissionHandler(uc UseCases, logger *slog.Logger) *SubmissionHandler {
	return &SubmissionHandler{uc: uc, logger: logger}
}

type statusBody struct {
	Status string `json:"status"`
}

// Assess previews an assessment. The optional excludeId query parameter
// leaves that submission out of the duplicate check.
func (h *SubmissionHandler) Assess(w http.ResponseWriter, r *http.Request) {
	var in dto.ApplicationInput
	if err := readJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	req := dto.AssessApplicationRequest{Application: in}
	if raw := r.URL.Query().Get("excludeId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid excludeId")
			return
		}
		req.ExcludeID = id
	}

	resp, err := h.uc.Assess.Execute(r.Context(), req)
	if err != nil {
		writeDomainError(r.Context(), w, h.logger, "assess application", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Submit stores a new application.
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var in dto.ApplicationInput
	if err := readJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.uc.Submit.Execute(r.Context(), dto.SubmitApplicationRequest{Application: in})
	if err != nil {
		writeDomainError(r.Context(), w, h.logger, "submit application", err)
		return
	}
	w.Header().Set("Location", "/api/v1/submissions/"+resp.ID.String())
	writeJSON(w, http.StatusCreated, resp)
}

// List returns a page of submissions. Query parameters: status, sort, limit, offset.
func (h *SubmissionHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := queryInt(q.Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}
	offset, err := queryInt(q.Get("offset"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid offset")
		return
	}

	resp, err := h.uc.List.Execute(r.Context(), dto.ListSubmissionsRequest{
		Status: q.Get("status"),
		Sort:   q.Get("sort"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeDomainError(r.Context(), w, h.logger, "list submissions", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get returns one submission.
func (h *SubmissionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	resp, err := h.uc.Get.Execute(r.Context(), dto.GetSubmissionRequest{ID: id})
	if err != nil {
		writeDomainError(r.Context(), w, h.logger, "get submission", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Update applies a partial edit and reassesses the submission.
func (h *SubmissionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var patch dto.ApplicationPatch
	if err := readJSON(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.uc.Update.Execute(r.Context(), dto.UpdateSubmissionRequest{ID: id, Changes: patch})
	if err != nil {
		writeDomainError(r.Context(), w, h.logger, "update submission", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// OverrideStatus sets the review status by hand.
func (h *SubmissionHandler) OverrideStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body statusBody
	if err := readJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.uc.Override.Execute(r.Context(), dto.OverrideStatusRequest{
		ID:         id,
		Status:     body.Status,
		ReviewerID: reviewerID(r),
	})
	if err != nil {
		writeDomainError(r.Context(), w, h.logger, "override status", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Delete removes a submission.
func (h *SubmissionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.uc.Delete.Execute(r.Context(), dto.DeleteSubmissionRequest{ID: id}); err != nil {
		writeDomainError(r.Context(), w, h.logger, "delete submission", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Statistics summarizes all submissions.
func (h *SubmissionHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	resp, err := h.uc.Statistics.Execute(r.Context())
	if err != nil {
		writeDomainError(r.Context(), w, h.logger, "get statistics", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("%v: invalid submission id", model.ErrInvalidArgument))
		return uuid.Nil, false
	}
	return id, true
}

func queryInt(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid non-negative integer %q", raw)
	}
	return n, nil
}

func reviewerID(r *http.Request) string {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		return ""
	}
	if claims.UserID != uuid.Nil {
		return claims.UserID.String()
	}
	return claims.Subject
}
