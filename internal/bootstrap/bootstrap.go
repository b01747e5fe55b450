// Package bootstrap assembles the service's infrastructure from configuration.
// Both binaries use it so the daemon and the CLI see the same store.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/onboardiq/onboardiq/internal/application/usecase"
	"github.com/onboardiq/onboardiq/internal/domain/port"
	"github.com/onboardiq/onboardiq/internal/domain/service"
	"github.com/onboardiq/onboardiq/internal/infrastructure/config"
	"github.com/onboardiq/onboardiq/internal/infrastructure/memory"
	"github.com/onboardiq/onboardiq/internal/infrastructure/postgres"
	"github.com/onboardiq/onboardiq/pkg/auth"
	pgutil "github.com/onboardiq/onboardiq/pkg/postgres"
)

// Store is a submission repository that can report its health.
type Store interface {
	port.SubmissionRepository
	Ping(ctx context.Context) error
}

// OpenStore returns the PostgreSQL repository when a database is configured
// and the in-memory one otherwise. The returned func releases the store.
func OpenStore(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (Store, func(), error) {
	if cfg.InMemory() {
		logger.Warn("no database configured, submissions are kept in memory")
		return memory.NewSubmissionRepository(), func() {}, nil
	}

	if cfg.RunMigrations {
		if err := pgutil.RunMigrations(cfg.DSN(), cfg.MigrationsDir); err != nil {
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		logger.Info("database migrations applied")
	}

	dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgutil.NewPool(dbCtx, cfg.Postgres)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	logger.Info("connected to database")

	return postgres.NewSubmissionRepository(pool), pool.Close, nil
}

// NewJWTService builds the token validator. A public key file takes
// precedence over the shared secret.
func NewJWTService(cfg config.AuthConfig) (*auth.JWTService, error) {
	jwtCfg := auth.JWTConfig{
		Secret:     cfg.JWTSecret,
		Issuer:     cfg.Issuer,
		Expiration: cfg.TokenTTL,
	}
	if cfg.JWTPublicKeyFile != "" {
		pem, err := auth.LoadKeyFromFile(cfg.JWTPublicKeyFile)
		if err != nil {
			return nil, err
		}
		jwtCfg.PublicKeyPEM = string(pem)
	}
	return auth.NewJWTService(jwtCfg)
}

// UseCases holds every application operation wired to one store.
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

// NewUseCases wires the use cases. recorder may be nil.
func NewUseCases(repo port.SubmissionRepository, publisher port.EventPublisher, recorder port.AssessmentRecorder) UseCases {
	scorer := service.NewRiskScorer()
	detector := service.NewDuplicateDetector()

	return UseCases{
		Assess:     usecase.NewAssessApplication(repo, scorer, detector),
		Submit:     usecase.NewSubmitApplication(repo, publisher, scorer, detector, recorder),
		Get:        usecase.NewGetSubmission(repo),
		List:       usecase.NewListSubmissions(repo),
		Update:     usecase.NewUpdateSubmission(repo, publisher, scorer, detector, recorder),
		Override:   usecase.NewOverrideStatus(repo, publisher),
		Delete:     usecase.NewDeleteSubmission(repo, publisher),
		Statistics: usecase.NewGetStatistics(repo),
	}
}
