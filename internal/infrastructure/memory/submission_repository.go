package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/onboardiq/onboardiq/internal/domain/model"
	"github.com/onboardiq/onboardiq/internal/domain/port"
)

// SubmissionRepository implements port.SubmissionRepository in process
// memory. Stored aggregates are cloned on the way in and out so callers never
// share state with the store.
type SubmissionRepository struct {
	mu          sync.RWMutex
	submissions map[uuid.UUID]*model.Submission
	// seq preserves insertion order as a tiebreak for equal timestamps.
	seq  map[uuid.UUID]uint64
	next uint64
}

// NewSubmissionRepository creates an empty repository.
func NewSubmissionRepository() *SubmissionRepository {
	return &SubmissionRepository{
		submissions: make(map[uuid.UUID]*model.Submission),
		seq:         make(map[uuid.UUID]uint64),
	}
}

var _ port.SubmissionRepository = (*SubmissionRepository)(nil)

// Create stores a new submission.
func (r *SubmissionRepository) Create(_ context.Context, s *model.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.submissions[s.ID()]; exists {
		return fmt.Errorf("submission %s already exists", s.ID())
	}
	r.submissions[s.ID()] = s.Clone()
	r.next++
	r.seq[s.ID()] = r.next
	return nil
}

// FindByID returns a copy of the stored submission.
func (r *SubmissionRepository) FindByID(_ context.Context, id uuid.UUID) (*model.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.submissions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrSubmissionNotFound, id)
	}
	return s.Clone(), nil
}

// List filters by status, sorts, then pages.
func (r *SubmissionRepository) List(_ context.Context, q port.ListQuery) ([]*model.Submission, int, error) {
	r.mu.RLock()
	matches := make([]*model.Submission, 0, len(r.submissions))
	for _, s := range r.submissions {
		if !q.Status.IsZero() && !s.Status().Equal(q.Status) {
			continue
		}
		matches = append(matches, s)
	}
	slices.SortFunc(matches, r.comparator(q.Sort))

	total := len(matches)
	page := paginate(matches, q.Limit, q.Offset)
	out := make([]*model.Submission, 0, len(page))
	for _, s := range page {
		out = append(out, s.Clone())
	}
	r.mu.RUnlock()

	return out, total, nil
}

// FindPotentialDuplicates returns submissions sharing the normalized email or
// tax ID digits, oldest first.
func (r *SubmissionRepository) FindPotentialDuplicates(_ context.Context, email, taxIDDigits string) ([]*model.Submission, error) {
	if email == "" && taxIDDigits == "" {
		return []*model.Submission{}, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := make([]*model.Submission, 0)
	for _, s := range r.submissions {
		rec := s.Record()
		if (email != "" && rec.NormalizedEmail() == email) ||
			(taxIDDigits != "" && rec.TaxIDDigits() == taxIDDigits) {
			matches = append(matches, s)
		}
	}
	slices.SortFunc(matches, r.comparator(port.SortOldest))

	out := make([]*model.Submission, 0, len(matches))
	for _, s := range matches {
		out = append(out, s.Clone())
	}
	return out, nil
}

// Update replaces a stored submission. The incoming version must be exactly
// one ahead of the stored one.
func (r *SubmissionRepository) Update(_ context.Context, s *model.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.submissions[s.ID()]
	if !ok {
		return fmt.Errorf("%w: %s", model.ErrSubmissionNotFound, s.ID())
	}
	if current.Version() != s.Version()-1 {
		return fmt.Errorf("%w: submission %s is at version %d", model.ErrConcurrentUpdate, s.ID(), current.Version())
	}
	r.submissions[s.ID()] = s.Clone()
	return nil
}

// Delete removes a submission.
func (r *SubmissionRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.submissions[id]; !ok {
		return fmt.Errorf("%w: %s", model.ErrSubmissionNotFound, id)
	}
	delete(r.submissions, id)
	delete(r.seq, id)
	return nil
}

// Ping always succeeds; it lets the readiness probe treat both stores alike.
func (r *SubmissionRepository) Ping(context.Context) error {
	return nil
}

// comparator must be called with the lock held.
func (r *SubmissionRepository) comparator(order port.SortOrder) func(a, b *model.Submission) int {
	oldest := func(a, b *model.Submission) int {
		if c := a.CreatedAt().Compare(b.CreatedAt()); c != 0 {
			return c
		}
		return cmp.Compare(r.seq[a.ID()], r.seq[b.ID()])
	}
	newest := func(a, b *model.Submission) int { return oldest(b, a) }

	switch order {
	case port.SortOldest:
		return oldest
	case port.SortRiskHigh:
		return func(a, b *model.Submission) int {
			if c := cmp.Compare(b.Assessment().Score, a.Assessment().Score); c != 0 {
				return c
			}
			return newest(a, b)
		}
	case port.SortRiskLow:
		return func(a, b *model.Submission) int {
			if c := cmp.Compare(a.Assessment().Score, b.Assessment().Score); c != 0 {
				return c
			}
			return newest(a, b)
		}
	default:
		return newest
	}
}

func paginate(in []*model.Submission, limit, offset int) []*model.Submission {
	if offset >= len(in) {
		return nil
	}
	in = in[offset:]
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}
