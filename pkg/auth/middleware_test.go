package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func TestUnaryAuthInterceptor(t *testing.T) {
	svc := newTestJWTService(t)
	token, err := svc.GenerateToken(uuid.New(), []string{RoleOperator})
	require.NoError(t, err)

	interceptor := UnaryAuthInterceptor(svc, []string{"/grpc.health.v1.Health/Check"})
	handler := func(ctx context.Context, _ any) (any, error) {
		claims, ok := ClaimsFromContext(ctx)
		if !ok {
			return "anonymous", nil
		}
		return claims.Roles[0], nil
	}

	tests := []struct {
		name     string
		method   string
		md       metadata.MD
		want     any
		wantCode codes.Code
	}{
		{"skipped method", "/grpc.health.v1.Health/Check", nil, "anonymous", codes.OK},
		{"no metadata", "/svc/Method", nil, nil, codes.Unauthenticated},
		{"no header", "/svc/Method", metadata.Pairs("x", "y"), nil, codes.Unauthenticated},
		{"bad token", "/svc/Method", metadata.Pairs("authorization", "Bearer nope"), nil, codes.Unauthenticated},
		{"valid token", "/svc/Method", metadata.Pairs("authorization", "Bearer "+token), RoleOperator, codes.OK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			if tt.md != nil {
				ctx = metadata.NewIncomingContext(ctx, tt.md)
			}
			got, err := interceptor(ctx, nil, &grpc.UnaryServerInfo{FullMethod: tt.method}, handler)
			assert.Equal(t, tt.wantCode, status.Code(err))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckRole(t *testing.T) {
	assert.Equal(t, codes.Unauthenticated, status.Code(CheckRole(context.Background(), RoleAdmin)))

	ctx := ContextWithClaims(context.Background(), &Claims{Roles: []string{RoleAuditor}})
	assert.Equal(t, codes.PermissionDenied, status.Code(CheckRole(ctx, RoleAdmin, RoleOperator)))
	assert.NoError(t, CheckRole(ctx, RoleAdmin, RoleAuditor))
}

func TestHTTPMiddleware(t *testing.T) {
	svc := newTestJWTService(t)
	token, err := svc.GenerateToken(uuid.New(), []string{RoleCustomer})
	require.NoError(t, err)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ClaimsFromContext(r.Context()); ok {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	h := HTTPMiddleware(svc, []string{"/healthz"})(next)

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"skip path", "/healthz", "", http.StatusNoContent},
		{"missing header", "/api/v1/submissions", "", http.StatusUnauthorized},
		{"wrong scheme", "/api/v1/submissions", "Basic abc", http.StatusUnauthorized},
		{"invalid token", "/api/v1/submissions", "Bearer garbage", http.StatusUnauthorized},
		{"valid token", "/api/v1/submissions", "bearer " + token, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRequireRoles(t *testing.T) {
	h := RequireRoles(RoleAdmin, RoleOperator)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/x", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodDelete, "/x", nil)
	req = req.WithContext(ContextWithClaims(req.Context(), &Claims{Roles: []string{RoleCustomer}}))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"insufficient role"}`, rec.Body.String())

	req = httptest.NewRequest(http.MethodDelete, "/x", nil)
	req = req.WithContext(ContextWithClaims(req.Context(), &Claims{Roles: []string{RoleOperator}}))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
