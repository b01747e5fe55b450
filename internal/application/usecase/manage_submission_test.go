package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onboardiq/onboardiq/internal/application/dto"
	"github.com/onboardiq/onboardiq/internal/application/usecase"
	"github.com/onboardiq/onboardiq/internal/domain/event"
	"github.com/onboardiq/onboardiq/internal/domain/model"
	"github.com/onboardiq/onboardiq/internal/domain/port"
	"github.com/onboardiq/onboardiq/internal/domain/service"
)

func seed(t *testing.T, repo *mockSubmissionRepository, inputs ...dto.ApplicationInput) []dto.SubmissionResponse {
	t.Helper()
	uc := newSubmit(repo, &mockEventPublisher{}, nil)
	out := make([]dto.SubmissionResponse, 0, len(inputs))
	for _, in := range inputs {
		resp, err := uc.Execute(context.Background(), dto.SubmitApplicationRequest{Application: in})
		require.NoError(t, err)
		out = append(out, resp)
	}
	return out
}

func TestGetSubmission_Execute(t *testing.T) {
	repo := newMockRepo()
	stored := seed(t, repo, compliantVendorInput())[0]
	uc := usecase.NewGetSubmission(repo)

	resp, err := uc.Execute(context.Background(), dto.GetSubmissionRequest{ID: stored.ID})
	require.NoError(t, err)
	assert.Equal(t, stored.ID, resp.ID)
	assert.Equal(t, "Northwind Systems", resp.Application.CompanyName)

	_, err = uc.Execute(context.Background(), dto.GetSubmissionRequest{ID: uuid.New()})
	require.ErrorIs(t, err, model.ErrSubmissionNotFound)
}

func TestUpdateSubmission_Execute(t *testing.T) {
	t.Run("reassesses after an edit", func(t *testing.T) {
		repo := newMockRepo()
		stored := seed(t, repo, compliantVendorInput())[0]
		publisher := &mockEventPublisher{}
		recorder := &mockRecorder{}
		uc := usecase.NewUpdateSubmission(repo, publisher, service.NewRiskScorer(), service.NewDuplicateDetector(), recorder)

		no := "No"
		resp, err := uc.Execute(context.Background(), dto.UpdateSubmissionRequest{
			ID:      stored.ID,
			Changes: dto.ApplicationPatch{HasEncryption: &no},
		})
		require.NoError(t, err)

		assert.Equal(t, 8, resp.RiskAssessment.Score)
		assert.Equal(t, "No", resp.Application.HasEncryption)
		assert.Equal(t, "Northwind Systems", resp.Application.CompanyName)
		assert.Empty(t, resp.Duplicates, "a submission never duplicates itself")
		assert.Equal(t, 2, resp.Version)
		assert.Equal(t, []string{event.EventTypeSubmissionAssessed}, publisher.eventTypes())
		assert.Equal(t, []int{8}, recorder.assessments)
	})

	t.Run("edit clears a manual override", func(t *testing.T) {
		repo := newMockRepo()
		stored := seed(t, repo, compliantVendorInput())[0]
		_, err := usecase.NewOverrideStatus(repo, &mockEventPublisher{}).Execute(context.Background(), dto.OverrideStatusRequest{
			ID: stored.ID, Status: "flagged",
		})
		require.NoError(t, err)

		name := "Northwind Holdings"
		resp, err := usecase.NewUpdateSubmission(repo, &mockEventPublisher{}, service.NewRiskScorer(), service.NewDuplicateDetector(), nil).
			Execute(context.Background(), dto.UpdateSubmissionRequest{ID: stored.ID, Changes: dto.ApplicationPatch{CompanyName: &name}})
		require.NoError(t, err)
		assert.Equal(t, "approved", resp.Status)
		assert.False(t, resp.StatusOverridden)
	})

	t.Run("unknown submission", func(t *testing.T) {
		uc := usecase.NewUpdateSubmission(newMockRepo(), &mockEventPublisher{}, service.NewRiskScorer(), service.NewDuplicateDetector(), nil)
		_, err := uc.Execute(context.Background(), dto.UpdateSubmissionRequest{ID: uuid.New()})
		require.ErrorIs(t, err, model.ErrSubmissionNotFound)
	})

	t.Run("concurrent update is reported", func(t *testing.T) {
		repo := newMockRepo()
		stored := seed(t, repo, compliantVendorInput())[0]
		repo.updateFunc = func(context.Context, *model.Submission) error { return model.ErrConcurrentUpdate }

		uc := usecase.NewUpdateSubmission(repo, &mockEventPublisher{}, service.NewRiskScorer(), service.NewDuplicateDetector(), nil)
		_, err := uc.Execute(context.Background(), dto.UpdateSubmissionRequest{ID: stored.ID})
		require.ErrorIs(t, err, model.ErrConcurrentUpdate)
	})
}

func TestOverrideStatus_Execute(t *testing.T) {
	repo := newMockRepo()
	stored := seed(t, repo, compliantVendorInput())[0]
	publisher := &mockEventPublisher{}
	uc := usecase.NewOverrideStatus(repo, publisher)

	resp, err := uc.Execute(context.Background(), dto.OverrideStatusRequest{ID: stored.ID, Status: "review", ReviewerID: "auditor-7"})
	require.NoError(t, err)
	assert.Equal(t, "review", resp.Status)
	assert.True(t, resp.StatusOverridden)
	assert.Equal(t, "approved", resp.RiskAssessment.Status)
	assert.Equal(t, []string{event.EventTypeStatusOverridden}, publisher.eventTypes())

	_, err = uc.Execute(context.Background(), dto.OverrideStatusRequest{ID: stored.ID, Status: "rejected"})
	require.ErrorIs(t, err, model.ErrInvalidArgument)

	_, err = uc.Execute(context.Background(), dto.OverrideStatusRequest{ID: uuid.New(), Status: "approved"})
	require.ErrorIs(t, err, model.ErrSubmissionNotFound)
}

func TestDeleteSubmission_Execute(t *testing.T) {
	repo := newMockRepo()
	stored := seed(t, repo, compliantVendorInput())[0]
	publisher := &mockEventPublisher{}
	uc := usecase.NewDeleteSubmission(repo, publisher)

	require.NoError(t, uc.Execute(context.Background(), dto.DeleteSubmissionRequest{ID: stored.ID}))
	assert.Empty(t, repo.submissions)
	assert.Equal(t, []string{event.EventTypeSubmissionDeleted}, publisher.eventTypes())

	err := uc.Execute(context.Background(), dto.DeleteSubmissionRequest{ID: stored.ID})
	require.ErrorIs(t, err, model.ErrSubmissionNotFound)
}

func TestListSubmissions_Execute(t *testing.T) {
	repo := newMockRepo()
	risky := compliantVendorInput()
	risky.Email = "ops@other.example"
	risky.TaxID = "99-0000000"
	risky.ComplianceCertifications = nil
	risky.HasEncryption = "No"
	risky.HasLogging = "No"
	risky.HasAccessControl = "No"
	seed(t, repo, compliantVendorInput(), risky)

	uc := usecase.NewListSubmissions(repo)

	t.Run("all", func(t *testing.T) {
		resp, err := uc.Execute(context.Background(), dto.ListSubmissionsRequest{Status: "all", Sort: "risk-high"})
		require.NoError(t, err)
		assert.Equal(t, 2, resp.TotalCount)
		require.Len(t, resp.Submissions, 2)
		assert.Equal(t, 38, resp.Submissions[0].RiskAssessment.Score)
		assert.Equal(t, port.SortRiskHigh, repo.lastQuery.Sort)
	})

	t.Run("by status", func(t *testing.T) {
		resp, err := uc.Execute(context.Background(), dto.ListSubmissionsRequest{Status: "approved"})
		require.NoError(t, err)
		assert.Equal(t, 2, resp.TotalCount)
		assert.Equal(t, port.SortNewest, repo.lastQuery.Sort)
	})

	t.Run("invalid filters", func(t *testing.T) {
		for _, req := range []dto.ListSubmissionsRequest{
			{Status: "pending"},
			{Sort: "alphabetical"},
			{Limit: -1},
		} {
			_, err := uc.Execute(context.Background(), req)
			require.ErrorIs(t, err, model.ErrInvalidArgument)
		}
	})
}

func TestGetStatistics_Execute(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		resp, err := usecase.NewGetStatistics(newMockRepo()).Execute(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0, resp.Total)
		assert.Equal(t, 0, resp.AverageRiskScore)
		assert.Equal(t, map[string]int{"approved": 0, "review": 0, "flagged": 0}, resp.ByStatus)
	})

	t.Run("counts and average", func(t *testing.T) {
		repo := newMockRepo()

		client := compliantVendorInput()
		client.EntityType = "client"
		client.ServiceType = ""
		client.ClientTier = "SMB"
		client.Email = "client@example.org"
		client.TaxID = "55-5555555"

		noEncryption := compliantVendorInput()
		noEncryption.Email = "b@example.org"
		noEncryption.TaxID = "77-7777777"
		noEncryption.HasEncryption = "No"

		stored := seed(t, repo, compliantVendorInput(), client, noEncryption, dto.ApplicationInput{EntityType: "vendor"})
		_, err := usecase.NewOverrideStatus(repo, &mockEventPublisher{}).Execute(context.Background(), dto.OverrideStatusRequest{
			ID: stored[0].ID, Status: "flagged",
		})
		require.NoError(t, err)

		resp, err := usecase.NewGetStatistics(repo).Execute(context.Background())
		require.NoError(t, err)

		// Scores 0, 0, 8 and 50.
		assert.Equal(t, 4, resp.Total)
		assert.Equal(t, map[string]int{"approved": 2, "review": 1, "flagged": 1}, resp.ByStatus)
		assert.Equal(t, map[string]int{"vendor": 3, "client": 1}, resp.ByEntityType)
		assert.Equal(t, map[string]int{"low": 3, "medium": 1, "high": 0}, resp.ByRiskLevel)
		assert.Equal(t, 15, resp.AverageRiskScore) // 14.5 rounds up
	})
}
