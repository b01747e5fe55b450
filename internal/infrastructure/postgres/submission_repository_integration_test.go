//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onboardiq/onboardiq/internal/domain/model"
	"github.com/onboardiq/onboardiq/internal/domain/port"
	"github.com/onboardiq/onboardiq/internal/infrastructure/postgres"
	"github.com/onboardiq/onboardiq/internal/infrastructure/repotest"
	"github.com/onboardiq/onboardiq/pkg/testutil"
)

func TestSubmissionRepository_Postgres(t *testing.T) {
	ctx := context.Background()
	pg := testutil.NewPostgresContainer(ctx, t)
	defer pg.Cleanup(t)

	pg.RunMigrations(t, "migrations")

	repotest.RunSubmissionRepository(t, func(t *testing.T) port.SubmissionRepository {
		_, err := pg.Pool.Exec(ctx, `TRUNCATE submissions`)
		require.NoError(t, err)
		return postgres.NewSubmissionRepository(pg.Pool)
	})
}

func TestSubmissionRepository_Ping(t *testing.T) {
	ctx := context.Background()
	pg := testutil.NewPostgresContainer(ctx, t)
	defer pg.Cleanup(t)

	repo := postgres.NewSubmissionRepository(pg.Pool)
	require.NoError(t, repo.Ping(ctx))
}

func TestSubmissionRepository_ListTotalMatchesPageUnderConcurrentInserts(t *testing.T) {
	ctx := context.Background()
	pg := testutil.NewPostgresContainer(ctx, t)
	defer pg.Cleanup(t)

	pg.RunMigrations(t, "migrations")
	repo := postgres.NewSubmissionRepository(pg.Pool)

	const inserts = 50
	subs := make([]*model.Submission, 0, inserts)
	for i := range inserts {
		subs = append(subs, repotest.NewSubmission(t, fmt.Sprintf("Co %d", i), fmt.Sprintf("co%d@example.com", i), "", 10, time.Duration(i)*time.Minute))
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for _, s := range subs {
			assert.NoError(t, repo.Create(ctx, s))
		}
	}()

	for range 100 {
		page, total, err := repo.List(ctx, port.ListQuery{Sort: port.SortNewest})
		require.NoError(t, err)
		require.Len(t, page, total)
	}
	wg.Wait()

	page, total, err := repo.List(ctx, port.ListQuery{Sort: port.SortNewest})
	require.NoError(t, err)
	assert.Equal(t, inserts, total)
	assert.Len(t, page, inserts)
}
