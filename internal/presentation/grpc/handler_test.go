package grpc

import (
	"context"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/onboardiq/onboardiq/internal/application/dto"
	"github.com/onboardiq/onboardiq/internal/application/usecase"
	"github.com/onboardiq/onboardiq/internal/domain/service"
	"github.com/onboardiq/onboardiq/internal/infrastructure/kafka"
	"github.com/onboardiq/onboardiq/internal/infrastructure/memory"
	"github.com/onboardiq/onboardiq/pkg/auth"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestHandler() *OnboardingHandler {
	repo := memory.NewSubmissionRepository()
	publisher := kafka.NewLogPublisher(discardLogger())
	scorer := service.NewRiskScorer()
	detector := service.NewDuplicateDetector()

	return NewOnboardingHandler(UseCases{
		Assess:     usecase.NewAssessApplication(repo, scorer, detector),
		Submit:     usecase.NewSubmitApplication(repo, publisher, scorer, detector, nil),
		Get:        usecase.NewGetSubmission(repo),
		List:       usecase.NewListSubmissions(repo),
		Update:     usecase.NewUpdateSubmission(repo, publisher, scorer, detector, nil),
		Override:   usecase.NewOverrideStatus(repo, publisher),
		Delete:     usecase.NewDeleteSubmission(repo, publisher),
		Statistics: usecase.NewGetStatistics(repo),
	}, discardLogger())
}

func withRoles(roles ...string) context.Context {
	return auth.ContextWithClaims(context.Background(), &auth.Claims{UserID: uuid.New(), Roles: roles})
}

func vendorInput() dto.ApplicationInput {
	return dto.ApplicationInput{
		EntityType:               "vendor",
		CompanyName:              "Northwind Systems",
		ContactName:              "Dana Reyes",
		Email:                    "dana@northwind.example",
		Phone:                    "+1 555 0100",
		TaxID:                    "12-3456789",
		Address:                  "1 Harbor Way",
		City:                     "Portland",
		Country:                  "USA",
		Industry:                 "Technology",
		Website:                  "https://northwind.example",
		AnnualRevenue:            "5000000",
		EmployeeCount:            "120",
		BusinessType:             "Corporation",
		ServiceType:              "Cloud Services",
		ComplianceCertifications: []string{"SOC 2", "ISO 27001"},
		HasEncryption:            "Yes",
		HasAccessControl:         "Yes",
		HasLogging:               "Yes",
		HasNetworkSecurity:       "Yes",
	}
}

func TestOnboardingHandler_Lifecycle(t *testing.T) {
	h := newTestHandler()
	operator := withRoles(auth.RoleOperator)

	submitted, err := h.SubmitApplication(operator, &SubmitApplicationRequest{Application: vendorInput()})
	require.NoError(t, err)
	id := submitted.Submission.ID.String()
	assert.Equal(t, "approved", submitted.Submission.Status)

	got, err := h.GetSubmission(operator, &GetSubmissionRequest{ID: id})
	require.NoError(t, err)
	assert.Equal(t, submitted.Submission.ID, got.Submission.ID)

	noLogging := "No"
	updated, err := h.UpdateSubmission(operator, &UpdateSubmissionRequest{
		ID:      id,
		Changes: dto.ApplicationPatch{HasLogging: &noLogging},
	})
	require.NoError(t, err)
	assert.Greater(t, updated.Submission.RiskAssessment.Score, submitted.Submission.RiskAssessment.Score)
	assert.Equal(t, 2, updated.Submission.Version)

	overridden, err := h.OverrideStatus(operator, &OverrideStatusRequest{ID: id, Status: "flagged"})
	require.NoError(t, err)
	assert.Equal(t, "flagged", overridden.Submission.Status)
	assert.True(t, overridden.Submission.StatusOverridden)

	list, err := h.ListSubmissions(operator, &ListSubmissionsRequest{Status: "flagged"})
	require.NoError(t, err)
	assert.Equal(t, 1, list.TotalCount)

	stats, err := h.GetStatistics(operator, &GetStatisticsRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.ByStatus["flagged"])

	_, err = h.DeleteSubmission(operator, &DeleteSubmissionRequest{ID: id})
	require.NoError(t, err)

	_, err = h.GetSubmission(operator, &GetSubmissionRequest{ID: id})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestOnboardingHandler_AssessApplication(t *testing.T) {
	h := newTestHandler()
	customer := withRoles(auth.RoleCustomer)

	first, err := h.SubmitApplication(customer, &SubmitApplicationRequest{Application: vendorInput()})
	require.NoError(t, err)

	preview, err := h.AssessApplication(customer, &AssessApplicationRequest{Application: vendorInput()})
	require.NoError(t, err)
	require.Len(t, preview.Duplicates, 2)
	assert.Equal(t, first.Submission.ID.String(), preview.Duplicates[0].ExistingID)

	excluded, err := h.AssessApplication(customer, &AssessApplicationRequest{
		Application: vendorInput(),
		ExcludeID:   first.Submission.ID.String(),
	})
	require.NoError(t, err)
	assert.Empty(t, excluded.Duplicates)

	list, err := h.ListSubmissions(withRoles(auth.RoleAuditor), &ListSubmissionsRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, list.TotalCount, "preview must not store anything")
}

func TestOnboardingHandler_Errors(t *testing.T) {
	h := newTestHandler()
	operator := withRoles(auth.RoleOperator)

	badEntity := vendorInput()
	badEntity.EntityType = "partner"

	tests := []struct {
		name string
		call func() error
		want codes.Code
	}{
		{"no claims", func() error {
			_, err := h.GetStatistics(context.Background(), &GetStatisticsRequest{})
			return err
		}, codes.Unauthenticated},
		{"customer cannot list", func() error {
			_, err := h.ListSubmissions(withRoles(auth.RoleCustomer), &ListSubmissionsRequest{})
			return err
		}, codes.PermissionDenied},
		{"auditor cannot delete", func() error {
			_, err := h.DeleteSubmission(withRoles(auth.RoleAuditor), &DeleteSubmissionRequest{ID: uuid.NewString()})
			return err
		}, codes.PermissionDenied},
		{"malformed id", func() error {
			_, err := h.GetSubmission(operator, &GetSubmissionRequest{ID: "not-a-uuid"})
			return err
		}, codes.InvalidArgument},
		{"unknown entity type", func() error {
			_, err := h.SubmitApplication(operator, &SubmitApplicationRequest{Application: badEntity})
			return err
		}, codes.InvalidArgument},
		{"unknown sort", func() error {
			_, err := h.ListSubmissions(operator, &ListSubmissionsRequest{Sort: "alphabetical"})
			return err
		}, codes.InvalidArgument},
		{"unknown status", func() error {
			_, err := h.OverrideStatus(operator, &OverrideStatusRequest{ID: uuid.NewString(), Status: "pending"})
			return err
		}, codes.InvalidArgument},
		{"missing submission", func() error {
			_, err := h.UpdateSubmission(operator, &UpdateSubmissionRequest{ID: uuid.NewString()})
			return err
		}, codes.NotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, status.Code(tt.call()))
		})
	}
}

func TestServer_OverBufconn(t *testing.T) {
	jwtSvc, err := auth.NewJWTService(auth.JWTConfig{
		Secret:     "test-secret",
		Issuer:     "onboardiq",
		Expiration: time.Hour,
	})
	require.NoError(t, err)

	srv, err := NewServer(ServerConfig{Address: "bufnet"}, newTestHandler(), jwtSvc, discardLogger())
	require.NoError(t, err)

	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpclib.NewClient("passthrough:///bufnet",
		grpclib.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpclib.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	t.Run("health check needs no token", func(t *testing.T) {
		resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
		require.NoError(t, err)
		assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
	})

	t.Run("rejects calls without a token", func(t *testing.T) {
		var out dto.StatisticsResponse
		err := conn.Invoke(ctx, "/"+ServiceName+"/GetStatistics", &GetStatisticsRequest{}, &out, grpclib.CallContentSubtype(CodecName))
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("submits with a valid token", func(t *testing.T) {
		token, err := jwtSvc.GenerateToken(uuid.New(), []string{auth.RoleAPIClient})
		require.NoError(t, err)
		authed := metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)

		var out SubmissionReply
		err = conn.Invoke(authed, "/"+ServiceName+"/SubmitApplication",
			&SubmitApplicationRequest{Application: vendorInput()}, &out, grpclib.CallContentSubtype(CodecName))
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, out.Submission.ID)
		assert.Equal(t, "Northwind Systems", out.Submission.Application.CompanyName)
	})
}
