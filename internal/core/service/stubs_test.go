package service

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/ocupalli/occupational-health/internal/core/domain"
	"github.com/ocupalli/occupational-health/internal/core/ports"
)

type stubUserRepo struct {
	users map[string]*domain.User // keyed by ID
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, u := range r.users {
		if u.Username == user.Username {
			return domain.ErrDuplicateKey
		}
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

// countingHasher records how many comparisons were made.
type countingHasher struct {
	ports.PasswordHasher
	compares int
}

func (h *countingHasher) Compare(hash, plaintext string) (bool, error) {
	h.compares++
	return h.PasswordHasher.Compare(hash, plaintext)
}

type memRevocations struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
	err     error
}

func newMemRevocations() *memRevocations {
	return &memRevocations{revoked: make(map[string]time.Duration)}
}

func (m *memRevocations) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.revoked[tokenID] = ttl
	return nil
}

func (m *memRevocations) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.revoked[tokenID]
	return ok, nil
}

// --- Risk mapping ---

type stubCategoryRepo struct {
	items map[string]*domain.RiskCategory
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{items: make(map[string]*domain.RiskCategory)}
}

func (r *stubCategoryRepo) Create(_ context.Context, c *domain.RiskCategory) error {
	clone := *c
	r.items[c.ID] = &clone
	return nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id string) (*domain.RiskCategory, error) {
	if c, ok := r.items[id]; ok {
		clone := *c
		return &clone, nil
	}
	return nil, domain.ErrNotFound
}

func (r *stubCategoryRepo) FindByName(_ context.Context, name string) (*domain.RiskCategory, error) {
	for _, c := range r.items {
		if c.Name == name {
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubCategoryRepo) List(context.Context) ([]*domain.RiskCategory, error) {
	out := make([]*domain.RiskCategory, 0, len(r.items))
	for _, c := range r.items {
		clone := *c
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubCategoryRepo) Update(_ context.Context, c *domain.RiskCategory) error {
	clone := *c
	r.items[c.ID] = &clone
	return nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

type stubRiskRepo struct {
	items map[string]*domain.Risk
}

func newStubRiskRepo() *stubRiskRepo {
	return &stubRiskRepo{items: make(map[string]*domain.Risk)}
}

func (r *stubRiskRepo) Create(_ context.Context, risk *domain.Risk) error {
	clone := *risk
	r.items[risk.ID] = &clone
	return nil
}

func (r *stubRiskRepo) FindByID(_ context.Context, id string) (*domain.Risk, error) {
	if risk, ok := r.items[id]; ok {
		clone := *risk
		return &clone, nil
	}
	return nil, domain.ErrNotFound
}

func (r *stubRiskRepo) find(match func(*domain.Risk) bool) (*domain.Risk, error) {
	for _, risk := range r.items {
		if match(risk) {
			clone := *risk
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubRiskRepo) FindByName(_ context.Context, name string) (*domain.Risk, error) {
	return r.find(func(risk *domain.Risk) bool { return risk.Name == name })
}

func (r *stubRiskRepo) FindByCode(_ context.Context, code string) (*domain.Risk, error) {
	return r.find(func(risk *domain.Risk) bool { return risk.Code == code })
}

func (r *stubRiskRepo) List(_ context.Context, f ports.RiskFilter) ([]*domain.Risk, error) {
	var out []*domain.Risk
	for _, risk := range r.items {
		if f.Type != "" && risk.Type != f.Type {
			continue
		}
		if f.CategoryID != "" && risk.CategoryID != f.CategoryID {
			continue
		}
		if f.Active != nil && risk.Active != *f.Active {
			continue
		}
		clone := *risk
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubRiskRepo) Update(_ context.Context, risk *domain.Risk) error {
	clone := *risk
	r.items[risk.ID] = &clone
	return nil
}

func (r *stubRiskRepo) CountByCategory(_ context.Context, categoryID string) (int64, error) {
	var n int64
	for _, risk := range r.items {
		if risk.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

type stubEnvironmentRepo struct {
	items map[string]*domain.Environment
}

func newStubEnvironmentRepo() *stubEnvironmentRepo {
	return &stubEnvironmentRepo{items: make(map[string]*domain.Environment)}
}

func (r *stubEnvironmentRepo) Create(_ context.Context, e *domain.Environment) error {
	clone := *e
	r.items[e.ID] = &clone
	return nil
}

func (r *stubEnvironmentRepo) FindByID(_ context.Context, id string) (*domain.Environment, error) {
	if e, ok := r.items[id]; ok {
		clone := *e
		return &clone, nil
	}
	return nil, domain.ErrNotFound
}

func (r *stubEnvironmentRepo) FindByCompanyAndName(_ context.Context, companyID, name string) (*domain.Environment, error) {
	for _, e := range r.items {
		if e.CompanyID == companyID && e.Name == name {
			clone := *e
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubEnvironmentRepo) List(_ context.Context, companyID string, _ *bool) ([]*domain.Environment, error) {
	var out []*domain.Environment
	for _, e := range r.items {
		if e.CompanyID == companyID {
			clone := *e
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubEnvironmentRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

type stubJobRepo struct {
	items map[string]*domain.Job
}

func newStubJobRepo() *stubJobRepo {
	return &stubJobRepo{items: make(map[string]*domain.Job)}
}

func (r *stubJobRepo) Create(_ context.Context, j *domain.Job) error {
	clone := *j
	clone.EnvironmentIDs = slices.Clone(j.EnvironmentIDs)
	r.items[j.ID] = &clone
	return nil
}

func (r *stubJobRepo) FindByID(_ context.Context, id string) (*domain.Job, error) {
	if j, ok := r.items[id]; ok {
		clone := *j
		clone.EnvironmentIDs = slices.Clone(j.EnvironmentIDs)
		return &clone, nil
	}
	return nil, domain.ErrNotFound
}

func (r *stubJobRepo) AddEnvironment(_ context.Context, jobID, environmentID string) error {
	j, ok := r.items[jobID]
	if !ok {
		return domain.ErrNotFound
	}
	j.EnvironmentIDs = append(j.EnvironmentIDs, environmentID)
	return nil
}

func (r *stubJobRepo) CountByMainEnvironment(_ context.Context, environmentID string) (int64, error) {
	var n int64
	for _, j := range r.items {
		if j.MainEnvironmentID == environmentID {
			n++
		}
	}
	return n, nil
}
