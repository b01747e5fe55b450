package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/onboardiq/onboardiq/internal/domain/model"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func readJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", model.ErrInvalidArgument, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeDomainError maps use-case errors onto HTTP status codes. Unexpected
// errors are logged and reported without detail.
func writeDomainError(ctx context.Context, w http.ResponseWriter, logger *slog.Logger, op string, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrSubmissionNotFound):
		writeError(w, http.StatusNotFound, "submission not found")
	case errors.Is(err, model.ErrConcurrentUpdate):
		writeError(w, http.StatusConflict, "submission was modified concurrently, retry")
	default:
		logger.ErrorContext(ctx, "failed to "+op, slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to "+op)
	}
}
