package usecase_test

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/onboardiq/onboardiq/internal/application/dto"
	"github.com/onboardiq/onboardiq/internal/domain/model"
	"github.com/onboardiq/onboardiq/internal/domain/port"
	"github.com/onboardiq/onboardiq/internal/domain/valueobject"
	"github.com/onboardiq/onboardiq/pkg/events"
)

// --- Mock implementations ---

// mockSubmissionRepository keeps submissions in a map unless a func override
// is set.
type mockSubmissionRepository struct {
	mu          sync.Mutex
	submissions map[uuid.UUID]*model.Submission
	order       []uuid.UUID

	createFunc     func(ctx context.Context, s *model.Submission) error
	updateFunc     func(ctx context.Context, s *model.Submission) error
	duplicatesFunc func(ctx context.Context, email, taxDigits string) ([]*model.Submission, error)

	lastQuery port.ListQuery
}

func newMockRepo() *mockSubmissionRepository {
	return &mockSubmissionRepository{submissions: make(map[uuid.UUID]*model.Submission)}
}

func (m *mockSubmissionRepository) Create(ctx context.Context, s *model.Submission) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, s)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submissions[s.ID()] = s
	m.order = append(m.order, s.ID())
	return nil
}

func (m *mockSubmissionRepository) FindByID(_ context.Context, id uuid.UUID) (*model.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.submissions[id]
	if !ok {
		return nil, model.ErrSubmissionNotFound
	}
	return s.Clone(), nil
}

func (m *mockSubmissionRepository) List(_ context.Context, q port.ListQuery) ([]*model.Submission, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastQuery = q

	out := make([]*model.Submission, 0)
	for _, id := range m.order {
		s := m.submissions[id]
		if !q.Status.IsZero() && !s.Status().Equal(q.Status) {
			continue
		}
		out = append(out, s.Clone())
	}
	if q.Sort == port.SortRiskHigh {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Assessment().Score > out[j].Assessment().Score })
	}
	return out, len(out), nil
}

func (m *mockSubmissionRepository) FindPotentialDuplicates(ctx context.Context, email, taxDigits string) ([]*model.Submission, error) {
	if m.duplicatesFunc != nil {
		return m.duplicatesFunc(ctx, email, taxDigits)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*model.Submission, 0)
	for _, id := range m.order {
		r := m.submissions[id].Record()
		if (email != "" && r.NormalizedEmail() == email) || (taxDigits != "" && r.TaxIDDigits() == taxDigits) {
			out = append(out, m.submissions[id].Clone())
		}
	}
	return out, nil
}

func (m *mockSubmissionRepository) Update(ctx context.Context, s *model.Submission) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, s)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.submissions[s.ID()]; !ok {
		return model.ErrSubmissionNotFound
	}
	m.submissions[s.ID()] = s.Clone()
	return nil
}

func (m *mockSubmissionRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.submissions[id]; !ok {
		return model.ErrSubmissionNotFound
	}
	delete(m.submissions, id)
	for i, o := range m.order {
		if o == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

type mockEventPublisher struct {
	publishedEvents []events.DomainEvent
	publishErr      error
}

func (m *mockEventPublisher) Publish(_ context.Context, evts ...events.DomainEvent) error {
	if m.publishErr != nil {
		return m.publishErr
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

func (m *mockEventPublisher) eventTypes() []string {
	types := make([]string, 0, len(m.publishedEvents))
	for _, e := range m.publishedEvents {
		types = append(types, e.EventType())
	}
	return types
}

type mockRecorder struct {
	assessments []int
	duplicates  int
}

func (m *mockRecorder) RecordAssessment(_ context.Context, _ valueobject.EntityType, a model.RiskAssessment) {
	m.assessments = append(m.assessments, a.Score)
}

func (m *mockRecorder) RecordDuplicates(_ context.Context, w []model.DuplicateWarning) {
	m.duplicates += len(w)
}

// --- Fixtures ---

func compliantVendorInput() dto.ApplicationInput {
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
