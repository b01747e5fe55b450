// Package repotest holds a behavioural test suite shared by every
// port.SubmissionRepository implementation.
package repotest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onboardiq/onboardiq/internal/domain/model"
	"github.com/onboardiq/onboardiq/internal/domain/port"
	"github.com/onboardiq/onboardiq/internal/domain/valueobject"
)

var base = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

// NewSubmission builds a stored-ready submission created at base+offset.
func NewSubmission(t *testing.T, company, email, taxID string, score int, offset time.Duration) *model.Submission {
	t.Helper()

	record := model.ApplicationRecord{
		EntityType:               valueobject.EntityTypeVendor,
		CompanyName:              company,
		Email:                    email,
		TaxID:                    taxID,
		ComplianceCertifications: []string{"SOC 2"},
		HasEncryption:            valueobject.ControlAnswerYes,
	}
	assessment := model.NewRiskAssessment(score, []model.RiskFactor{
		{Type: model.FactorSecurity, Severity: valueobject.SeverityHigh, Message: "Missing Logging control", Fields: []string{"hasLogging"}},
	}, base.Add(offset))

	s, err := model.NewSubmission(record, assessment, nil)
	require.NoError(t, err)
	s.DomainEvents()
	return s
}

// RunSubmissionRepository exercises repo behaviour against a fresh store from
// newRepo for every subtest.
func RunSubmissionRepository(t *testing.T, newRepo func(t *testing.T) port.SubmissionRepository) {
	ctx := context.Background()

	t.Run("create and find round trip", func(t *testing.T) {
		repo := newRepo(t)
		s := NewSubmission(t, "Acme", "Ops@Acme.example", "12-3456789", 45, 0)
		require.NoError(t, repo.Create(ctx, s))

		got, err := repo.FindByID(ctx, s.ID())
		require.NoError(t, err)
		assert.Equal(t, s.ID(), got.ID())
		assert.Equal(t, "Acme", got.Record().CompanyName)
		assert.Equal(t, valueobject.EntityTypeVendor, got.EntityType())
		assert.Equal(t, []string{"SOC 2"}, got.Record().ComplianceCertifications)
		assert.Equal(t, 45, got.Assessment().Score)
		assert.Equal(t, valueobject.RiskLevelMedium, got.Assessment().Level)
		assert.Equal(t, valueobject.ReviewStatusReview, got.Status())
		require.Len(t, got.Assessment().Factors, 1)
		assert.Equal(t, []string{"hasLogging"}, got.Assessment().Factors[0].Fields)
		assert.Equal(t, 1, got.Version())
		assert.True(t, s.CreatedAt().Equal(got.CreatedAt()))
	})

	t.Run("find unknown id", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, model.ErrSubmissionNotFound)
	})

	t.Run("list sorts filters and pages", func(t *testing.T) {
		repo := newRepo(t)
		low := NewSubmission(t, "Low", "low@x.example", "", 10, 0)
		high := NewSubmission(t, "High", "high@x.example", "", 80, time.Minute)
		mid := NewSubmission(t, "Mid", "mid@x.example", "", 50, 2*time.Minute)
		for _, s := range []*model.Submission{low, high, mid} {
			require.NoError(t, repo.Create(ctx, s))
		}

		names := func(subs []*model.Submission) []string {
			out := make([]string, 0, len(subs))
			for _, s := range subs {
				out = append(out, s.Record().CompanyName)
			}
			return out
		}

		tests := []struct {
			name      string
			query     port.ListQuery
			want      []string
			wantTotal int
		}{
			{"newest", port.ListQuery{Sort: port.SortNewest}, []string{"Mid", "High", "Low"}, 3},
			{"oldest", port.ListQuery{Sort: port.SortOldest}, []string{"Low", "High", "Mid"}, 3},
			{"risk high", port.ListQuery{Sort: port.SortRiskHigh}, []string{"High", "Mid", "Low"}, 3},
			{"risk low", port.ListQuery{Sort: port.SortRiskLow}, []string{"Low", "Mid", "High"}, 3},
			{"status filter", port.ListQuery{Status: valueobject.ReviewStatusFlagged}, []string{"High"}, 1},
			{"page", port.ListQuery{Sort: port.SortOldest, Limit: 1, Offset: 1}, []string{"High"}, 3},
			{"offset past end", port.ListQuery{Offset: 10}, []string{}, 3},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got, total, err := repo.List(ctx, tt.query)
				require.NoError(t, err)
				assert.Equal(t, tt.want, names(got))
				assert.Equal(t, tt.wantTotal, total)
			})
		}
	})

	t.Run("potential duplicates match normalized email or tax digits", func(t *testing.T) {
		repo := newRepo(t)
		first := NewSubmission(t, "First", "Team@Example.com", "12-345", 20, 0)
		second := NewSubmission(t, "Second", "other@example.com", "12 345", 20, time.Minute)
		unrelated := NewSubmission(t, "Third", "third@example.com", "999", 20, 2*time.Minute)
		for _, s := range []*model.Submission{first, second, unrelated} {
			require.NoError(t, repo.Create(ctx, s))
		}

		got, err := repo.FindPotentialDuplicates(ctx, "team@example.com", "12345")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, first.ID(), got[0].ID())
		assert.Equal(t, second.ID(), got[1].ID())

		none, err := repo.FindPotentialDuplicates(ctx, "", "")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("update with optimistic locking", func(t *testing.T) {
		repo := newRepo(t)
		s := NewSubmission(t, "Acme", "a@acme.example", "", 45, 0)
		require.NoError(t, repo.Create(ctx, s))

		loaded, err := repo.FindByID(ctx, s.ID())
		require.NoError(t, err)
		stale, err := repo.FindByID(ctx, s.ID())
		require.NoError(t, err)

		require.NoError(t, loaded.OverrideStatus(valueobject.ReviewStatusApproved, "reviewer-1", base.Add(time.Hour)))
		require.NoError(t, repo.Update(ctx, loaded))

		got, err := repo.FindByID(ctx, s.ID())
		require.NoError(t, err)
		assert.Equal(t, valueobject.ReviewStatusApproved, got.Status())
		assert.True(t, got.StatusOverridden())
		assert.Equal(t, 2, got.Version())
		assert.Equal(t, 45, got.Assessment().Score, "override keeps the computed score")

		require.NoError(t, stale.OverrideStatus(valueobject.ReviewStatusFlagged, "reviewer-2", base.Add(2*time.Hour)))
		assert.ErrorIs(t, repo.Update(ctx, stale), model.ErrConcurrentUpdate)
	})

	t.Run("update unknown id", func(t *testing.T) {
		repo := newRepo(t)
		s := NewSubmission(t, "Ghost", "", "", 5, 0)
		require.NoError(t, s.OverrideStatus(valueobject.ReviewStatusFlagged, "r", base))
		err := repo.Update(ctx, s)
		assert.Error(t, err)
	})

	t.Run("delete", func(t *testing.T) {
		repo := newRepo(t)
		s := NewSubmission(t, "Acme", "", "", 5, 0)
		require.NoError(t, repo.Create(ctx, s))

		require.NoError(t, repo.Delete(ctx, s.ID()))
		_, err := repo.FindByID(ctx, s.ID())
		assert.ErrorIs(t, err, model.ErrSubmissionNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, s.ID()), model.ErrSubmissionNotFound)
	})
}
