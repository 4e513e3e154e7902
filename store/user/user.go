// Package user holds the admin employee-management state container.
package user

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hrboard/client/domain"
	"github.com/hrboard/client/remote"
)

// FilterAll disables a filter key.
const FilterAll = "all"

// Filters narrows the employee listing.
type Filters struct {
	Role      string
	Status    string
	SortBy    string
	SortOrder string
}

// Pagination mirrors the backend's page controls.
type Pagination struct {
	Page  int
	Limit int
	Total int
}

// Store owns the employee collection plus derived stats.
type Store struct {
	api    remote.UserAPI
	logger *zap.Logger
	now    func() time.Time

	mu         sync.Mutex
	users      []domain.User
	stats      domain.UserStats
	filters    Filters
	pagination Pagination
	loading    bool
	lastError  string
}

func New(api remote.UserAPI, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		api:        api,
		logger:     logger,
		now:        time.Now,
		filters:    defaultFilters(),
		pagination: Pagination{Page: 1, Limit: 10},
	}
}

func defaultFilters() Filters {
	return Filters{
		Role:      FilterAll,
		Status:    FilterAll,
		SortBy:    "createdAt",
		SortOrder: "desc",
	}
}

// FetchAll loads the employee listing and recomputes stats from it.
func (s *Store) FetchAll(ctx context.Context, query remote.UserQuery) error {
	s.begin()
	page, err := s.api.All(ctx, query)
	if err != nil {
		s.fail(err)
		return err
	}
	s.mu.Lock()
	s.users = page.Users
	s.pagination.Total = page.Total
	s.loading = false
	s.lastError = ""
	s.recomputeStatsLocked()
	s.mu.Unlock()
	return nil
}

// Create prepends the server-returned record to the collection.
func (s *Store) Create(ctx context.Context, input remote.UserInput) (*domain.User, error) {
	s.begin()
	created, err := s.api.Create(ctx, input)
	if err != nil {
		s.fail(err)
		return nil, err
	}
	record := *created
	record.Role = domain.RoleOrDefault(record.Role)

	s.mu.Lock()
	s.users = append([]domain.User{record}, s.users...)
	s.loading = false
	s.lastError = ""
	s.recomputeStatsLocked()
	s.mu.Unlock()
	return &record, nil
}

// Update merges the server response into the matching record.
func (s *Store) Update(ctx context.Context, id string, input remote.UserInput) (*domain.User, error) {
	s.begin()
	updated, err := s.api.Update(ctx, id, input)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	s.mu.Lock()
	var merged *domain.User
	for i := range s.users {
		if s.users[i].ID == id {
			mergeUser(&s.users[i], updated)
			record := s.users[i]
			merged = &record
		}
	}
	s.loading = false
	s.lastError = ""
	s.recomputeStatsLocked()
	s.mu.Unlock()

	if merged != nil {
		return merged, nil
	}
	record := *updated
	return &record, nil
}

// Delete removes the record after backend confirmation. A missing local id
// fails fast without a remote call; a remote failure leaves state untouched.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	found := false
	for i := range s.users {
		if s.users[i].ID == id {
			found = true
			break
		}
	}
	if !found {
		s.lastError = domain.ErrUserNotFound.Error()
		s.mu.Unlock()
		return domain.ErrUserNotFound
	}
	s.loading = true
	s.lastError = ""
	s.mu.Unlock()

	if err := s.api.Delete(ctx, id); err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	out := s.users[:0]
	for _, u := range s.users {
		if u.ID != id {
			out = append(out, u)
		}
	}
	s.users = out
	s.loading = false
	s.recomputeStatsLocked()
	s.mu.Unlock()
	return nil
}

// CalculateStats recomputes derived stats from the loaded collection.
func (s *Store) CalculateStats() domain.UserStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recomputeStatsLocked()
	return s.stats
}

func (s *Store) recomputeStatsLocked() {
	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	stats := domain.UserStats{TotalUsers: len(s.users)}
	for i := range s.users {
		u := &s.users[i]
		if u.IsActive() {
			stats.ActiveUsers++
		} else {
			stats.InactiveUsers++
		}
		if !u.CreatedAt.Before(monthStart) {
			stats.NewUsersThisMonth++
		}
	}
	s.stats = stats
}

// SetFilters overlays non-empty fields and returns to the first page.
func (s *Store) SetFilters(patch Filters) {
	s.mu.Lock()
	if patch.Role != "" {
		s.filters.Role = patch.Role
	}
	if patch.Status != "" {
		s.filters.Status = patch.Status
	}
	if patch.SortBy != "" {
		s.filters.SortBy = patch.SortBy
	}
	if patch.SortOrder != "" {
		s.filters.SortOrder = patch.SortOrder
	}
	s.pagination.Page = 1
	s.mu.Unlock()
}

func (s *Store) SetPagination(page, limit int) {
	s.mu.Lock()
	if page > 0 {
		s.pagination.Page = page
	}
	if limit > 0 {
		s.pagination.Limit = limit
	}
	s.mu.Unlock()
}

func (s *Store) Users() []domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.User, len(s.users))
	copy(out, s.users)
	return out
}

func (s *Store) Stats() domain.UserStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

func (s *Store) Filters() Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

func (s *Store) PaginationState() Pagination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pagination
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Store) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

func (s *Store) ClearError() {
	s.mu.Lock()
	s.lastError = ""
	s.mu.Unlock()
}

// Reset returns the store to its empty initial state. Idempotent.
func (s *Store) Reset() {
	s.mu.Lock()
	s.users = nil
	s.stats = domain.UserStats{}
	s.filters = defaultFilters()
	s.pagination = Pagination{Page: 1, Limit: 10}
	s.loading = false
	s.lastError = ""
	s.mu.Unlock()
}

func (s *Store) begin() {
	s.mu.Lock()
	s.loading = true
	s.lastError = ""
	s.mu.Unlock()
}

func (s *Store) fail(err error) {
	s.mu.Lock()
	s.loading = false
	s.lastError = err.Error()
	s.mu.Unlock()
}

func mergeUser(local *domain.User, update *domain.User) {
	if update == nil {
		return
	}
	if update.Name != "" {
		local.Name = update.Name
	}
	if update.Email != "" {
		local.Email = update.Email
	}
	if update.Role != "" {
		local.Role = update.Role
	}
	if update.Status != "" {
		local.Status = update.Status
	}
	if !update.UpdatedAt.IsZero() {
		local.UpdatedAt = update.UpdatedAt
	}
}
