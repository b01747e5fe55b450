package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/onboardiq/onboardiq/internal/domain/model"
	"github.com/onboardiq/onboardiq/internal/domain/port"
	"github.com/onboardiq/onboardiq/internal/domain/valueobject"
	pgutil "github.com/onboardiq/onboardiq/pkg/postgres"
)

const submissionColumns = `
	id, entity_type, risk_score, risk_level, status, status_overridden,
	record, factors, duplicates, assessed_at, version, created_at, updated_at`

// SubmissionRepository implements port.SubmissionRepository using PostgreSQL.
type SubmissionRepository struct {
	pool *pgxpool.Pool
}

// NewSubmissionRepository creates a new SubmissionRepository.
func NewSubmissionRepository(pool *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{pool: pool}
}

var _ port.SubmissionRepository = (*SubmissionRepository)(nil)

// Create persists a new submission.
func (r *SubmissionRepository) Create(ctx context.Context, s *model.Submission) error {
	docs, err := marshalDocuments(s)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO submissions (
			id, entity_type, company_name, email_normalized, tax_id_digits,
			risk_score, risk_level, status, status_overridden,
			record, factors, duplicates, assessed_at,
			version, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	record := s.Record()
	a := s.Assessment()
	_, err = r.pool.Exec(ctx, query,
		s.ID(),
		record.EntityType.String(),
		record.CompanyName,
		record.NormalizedEmail(),
		record.TaxIDDigits(),
		a.Score,
		a.Level.String(),
		s.Status().String(),
		s.StatusOverridden(),
		docs.record,
		docs.factors,
		docs.duplicates,
		a.AssessedAt,
		s.Version(),
		s.CreatedAt(),
		s.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert submission: %w", err)
	}
	return nil
}

// FindByID retrieves a submission by its unique identifier.
func (r *SubmissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE id = $1`

	s, err := scanSubmission(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", model.ErrSubmissionNotFound, id)
	}
	return s, err
}

// List returns one page of submissions and the total match count. Both
// come from the same read-only snapshot, so the total always describes the
// page even while other requests write.
func (r *SubmissionRepository) List(ctx context.Context, q port.ListQuery) ([]*model.Submission, int, error) {
	status := q.Status.String()

	// A NULL limit means no limit.
	var limit any
	if q.Limit > 0 {
		limit = q.Limit
	}

	query := `SELECT ` + submissionColumns + `
		FROM submissions
		WHERE ($1 = '' OR status = $1)
		ORDER BY ` + orderBy(q.Sort) + `
		LIMIT $2 OFFSET $3`

	var (
		subs  []*model.Submission
		total int
	)
	err := pgutil.WithTx(ctx, r.pool, pgutil.ReadSnapshot, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM submissions WHERE ($1 = '' OR status = $1)`, status,
		).Scan(&total); err != nil {
			return fmt.Errorf("failed to count submissions: %w", err)
		}

		rows, err := tx.Query(ctx, query, status, limit, q.Offset)
		if err != nil {
			return fmt.Errorf("failed to query submissions: %w", err)
		}
		defer rows.Close()

		subs, err = scanSubmissions(rows)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}

// FindPotentialDuplicates returns submissions sharing the normalized email or
// tax ID digits, oldest first.
func (r *SubmissionRepository) FindPotentialDuplicates(ctx context.Context, email, taxIDDigits string) ([]*model.Submission, error) {
	if email == "" && taxIDDigits == "" {
		return []*model.Submission{}, nil
	}

	query := `SELECT ` + submissionColumns + `
		FROM submissions
		WHERE ($1 <> '' AND email_normalized = $1)
		   OR ($2 <> '' AND tax_id_digits = $2)
		ORDER BY ` + orderBy(port.SortOldest)

	rows, err := r.pool.Query(ctx, query, email, taxIDDigits)
	if err != nil {
		return nil, fmt.Errorf("failed to query potential duplicates: %w", err)
	}
	defer rows.Close()

	return scanSubmissions(rows)
}

// Update persists changes to an existing submission with optimistic locking.
func (r *SubmissionRepository) Update(ctx context.Context, s *model.Submission) error {
	docs, err := marshalDocuments(s)
	if err != nil {
		return err
	}

	return pgutil.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		var stored int
		err := tx.QueryRow(ctx, `SELECT version FROM submissions WHERE id = $1 FOR UPDATE`, s.ID()).Scan(&stored)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: %s", model.ErrSubmissionNotFound, s.ID())
		}
		if err != nil {
			return fmt.Errorf("failed to lock submission: %w", err)
		}
		if stored != s.Version()-1 {
			return fmt.Errorf("%w: submission %s is at version %d", model.ErrConcurrentUpdate, s.ID(), stored)
		}

		query := `
			UPDATE submissions SET
				entity_type = $1,
				company_name = $2,
				email_normalized = $3,
				tax_id_digits = $4,
				risk_score = $5,
				risk_level = $6,
				status = $7,
				status_overridden = $8,
				record = $9,
				factors = $10,
				duplicates = $11,
				assessed_at = $12,
				version = $13,
				updated_at = $14
			WHERE id = $15 AND version = $16
		`

		record := s.Record()
		a := s.Assessment()
		result, err := tx.Exec(ctx, query,
			record.EntityType.String(),
			record.CompanyName,
			record.NormalizedEmail(),
			record.TaxIDDigits(),
			a.Score,
			a.Level.String(),
			s.Status().String(),
			s.StatusOverridden(),
			docs.record,
			docs.factors,
			docs.duplicates,
			a.AssessedAt,
			s.Version(),
			s.UpdatedAt(),
			s.ID(),
			s.Version()-1,
		)
		if err != nil {
			return fmt.Errorf("failed to update submission: %w", err)
		}
		if result.RowsAffected() == 0 {
			return fmt.Errorf("%w: submission %s", model.ErrConcurrentUpdate, s.ID())
		}
		return nil
	})
}

// Delete removes a submission.
func (r *SubmissionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM submissions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete submission: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", model.ErrSubmissionNotFound, id)
	}
	return nil
}

// Ping checks database connectivity for readiness probes.
func (r *SubmissionRepository) Ping(ctx context.Context) error {
	return pgutil.HealthCheck(ctx, r.pool)
}

func orderBy(order port.SortOrder) string {
	switch order {
	case port.SortOldest:
		return "created_at ASC, seq ASC"
	case port.SortRiskHigh:
		return "risk_score DESC, created_at DESC, seq DESC"
	case port.SortRiskLow:
		return "risk_score ASC, created_at DESC, seq DESC"
	default:
		return "created_at DESC, seq DESC"
	}
}

type submissionDocuments struct {
	record     []byte
	factors    []byte
	duplicates []byte
}

func marshalDocuments(s *model.Submission) (submissionDocuments, error) {
	var (
		docs submissionDocuments
		err  error
	)
	if docs.record, err = json.Marshal(toRecordDocument(s.Record())); err != nil {
		return docs, fmt.Errorf("failed to marshal record: %w", err)
	}
	if docs.factors, err = json.Marshal(toFactorDocuments(s.Assessment().Factors)); err != nil {
		return docs, fmt.Errorf("failed to marshal factors: %w", err)
	}
	if docs.duplicates, err = json.Marshal(toDuplicateDocuments(s.Duplicates())); err != nil {
		return docs, fmt.Errorf("failed to marshal duplicates: %w", err)
	}
	return docs, nil
}

// scanSubmission scans a single row into a Submission aggregate. Scan errors
// wrap pgx.ErrNoRows so callers can map a missing row.
func scanSubmission(row pgx.Row) (*model.Submission, error) {
	var (
		id               uuid.UUID
		entityType       string
		score            int
		level            string
		statusStr        string
		statusOverridden bool
		recordJSON       []byte
		factorsJSON      []byte
		duplicatesJSON   []byte
		assessedAt       time.Time
		version          int
		createdAt        time.Time
		updatedAt        time.Time
	)

	err := row.Scan(
		&id, &entityType, &score, &level, &statusStr, &statusOverridden,
		&recordJSON, &factorsJSON, &duplicatesJSON, &assessedAt,
		&version, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan submission: %w", err)
	}

	var recordDoc recordDocument
	if err := json.Unmarshal(recordJSON, &recordDoc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	record, err := recordDoc.toModel()
	if err != nil {
		return nil, err
	}

	var factorDocs []factorDocument
	if err := json.Unmarshal(factorsJSON, &factorDocs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal factors: %w", err)
	}
	factors, err := factorsToModel(factorDocs)
	if err != nil {
		return nil, err
	}

	var duplicateDocs []duplicateDocument
	if err := json.Unmarshal(duplicatesJSON, &duplicateDocs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal duplicates: %w", err)
	}

	assessment, err := assessmentFromColumns(score, level, factors, assessedAt)
	if err != nil {
		return nil, err
	}

	status, err := valueobject.ReviewStatusFromString(statusStr)
	if err != nil {
		return nil, fmt.Errorf("invalid status in DB: %w", err)
	}

	return model.ReconstructSubmission(
		id, record, assessment, duplicatesToModel(duplicateDocs),
		status, statusOverridden, version, createdAt.UTC(), updatedAt.UTC(),
	), nil
}

func scanSubmissions(rows pgx.Rows) ([]*model.Submission, error) {
	subs := make([]*model.Submission, 0)
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return subs, nil
}
