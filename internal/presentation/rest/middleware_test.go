package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Allow(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2)
	rl.lastRefill = now
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow())
	assert.True(t, rl.Allow())
	assert.False(t, rl.Allow(), "bucket should be empty")

	now = now.Add(500 * time.Millisecond)
	assert.True(t, rl.Allow(), "half a second refills one token")
	assert.False(t, rl.Allow())
}

func TestRateLimitMiddleware(t *testing.T) {
	rl := NewRateLimiter(1)
	rl.now = func() time.Time { return rl.lastRefill }

	h := RateLimitMiddleware(rl)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"error":"rate limit exceeded"}`, rec.Body.String())
}

type pingerFunc func(context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler_ReadyzFailingCheck(t *testing.T) {
	h := NewHealthHandler("onboardiq", map[string]Pinger{
		"database": pingerFunc(func(context.Context) error { return errors.New("connection refused") }),
		"cache":    pingerFunc(func(context.Context) error { return nil }),
	}, discardLogger())

	rec := httptest.NewRecorder()
	h.Readyz(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	resp := decode[ReadinessResponse](t, rec)
	assert.Equal(t, "not ready", resp.Status)
	assert.Equal(t, "connection refused", resp.Checks["database"])
	assert.Equal(t, "ok", resp.Checks["cache"])
}
