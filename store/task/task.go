// Package task holds the role-variant task state containers. Each store owns
// its task collections plus derived stats; collections are only ever mutated
// through the declared operations so the stats stay a pure function of the
// in-memory data.
package task

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hrboard/client/domain"
	"github.com/hrboard/client/remote"
)

// Variant selects the role-specific behavior of a Store.
type Variant string

const (
	VariantAdmin    Variant = "admin"
	VariantEmployer Variant = "employer"
	VariantUser     Variant = "user"
)

// Pagination mirrors the backend's page controls for the admin listing.
type Pagination struct {
	Page  int
	Limit int
	Total int
}

// Store is a task state container. Concurrent rapid-fire calls to the same
// operation are not deduplicated here; callers disable triggers while
// Loading() reports true.
type Store struct {
	api     remote.TaskAPI
	variant Variant
	logger  *zap.Logger
	now     func() time.Time

	mu             sync.Mutex
	tasks          []domain.Task // primary collection (myTasks for the user variant)
	teamTasks      []domain.Task // employer only
	delegatedTasks []domain.Task // employer only
	stats          domain.TaskStats
	filters        Filters
	pagination     Pagination
	loading        bool
	lastError      string
}

func newStore(api remote.TaskAPI, variant Variant, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		api:        api,
		variant:    variant,
		logger:     logger,
		now:        time.Now,
		filters:    defaultFilters(variant),
		pagination: Pagination{Page: 1, Limit: 10},
	}
}

// NewAdmin builds the store backing the admin task-management views.
func NewAdmin(api remote.TaskAPI, logger *zap.Logger) *Store {
	return newStore(api, VariantAdmin, logger)
}

// NewEmployer builds the store backing the employer views, which track own,
// team and delegated collections side by side.
func NewEmployer(api remote.TaskAPI, logger *zap.Logger) *Store {
	return newStore(api, VariantEmployer, logger)
}

// NewUser builds the store backing an employee's own task list.
func NewUser(api remote.TaskAPI, logger *zap.Logger) *Store {
	return newStore(api, VariantUser, logger)
}

func (s *Store) Variant() Variant {
	return s.variant
}

// Create sends the draft to the backend and prepends the server-returned
// record to the primary collection. The client-side draft id is used for
// correlation only and never enters a collection.
func (s *Store) Create(ctx context.Context, input remote.TaskInput) (*domain.Task, error) {
	s.begin()
	draftID := uuid.NewString()

	created, err := s.api.Create(ctx, input)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	record := *created
	record.Status = domain.NormalizeStatus(record.Status)

	s.mu.Lock()
	s.tasks = append([]domain.Task{record}, s.tasks...)
	s.loading = false
	s.lastError = ""
	s.recomputeStatsLocked()
	s.mu.Unlock()

	s.logger.Debug("task created",
		zap.String("draft_id", draftID),
		zap.String("task_id", record.ID))
	return &record, nil
}

// Edit sends a partial update and merges the server response into the
// matching record in every collection that contains it.
func (s *Store) Edit(ctx context.Context, id string, input remote.TaskInput) (*domain.Task, error) {
	s.begin()

	updated, err := s.api.Update(ctx, id, input)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	s.mu.Lock()
	s.applyToAllLocked(id, func(t *domain.Task) {
		mergeTask(t, updated)
	})
	s.loading = false
	s.lastError = ""
	s.recomputeStatsLocked()
	merged := s.findLocked(id)
	s.mu.Unlock()

	if merged != nil {
		return merged, nil
	}
	record := *updated
	record.Status = domain.NormalizeStatus(record.Status)
	return &record, nil
}

// Delete removes the record from every collection after the backend confirms.
// A missing local id fails fast with a not-found error and no remote call;
// a remote failure leaves local state untouched.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	if !s.containsLocked(id) {
		s.lastError = domain.ErrTaskNotFound.Error()
		s.mu.Unlock()
		return domain.ErrTaskNotFound
	}
	s.loading = true
	s.lastError = ""
	s.mu.Unlock()

	if err := s.api.Delete(ctx, id); err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.tasks = removeTask(s.tasks, id)
	s.teamTasks = removeTask(s.teamTasks, id)
	s.delegatedTasks = removeTask(s.delegatedTasks, id)
	s.loading = false
	s.recomputeStatsLocked()
	s.mu.Unlock()
	return nil
}

// Details fetches a single record without mutating any collection.
func (s *Store) Details(ctx context.Context, id string) (*domain.Task, error) {
	s.begin()
	task, err := s.api.Details(ctx, id)
	if err != nil {
		s.fail(err)
		return nil, err
	}
	s.finish()
	record := *task
	record.Status = domain.NormalizeStatus(record.Status)
	return &record, nil
}

// Assign reassigns the task across every collection holding it.
func (s *Store) Assign(ctx context.Context, id, assigneeID string) error {
	s.begin()
	if err := s.api.Assign(ctx, id, assigneeID); err != nil {
		s.fail(err)
		return err
	}
	s.mu.Lock()
	s.applyToAllLocked(id, func(t *domain.Task) {
		t.AssignedTo = assigneeID
	})
	s.loading = false
	s.mu.Unlock()
	return nil
}

// UpdateStatus transitions the task's status across every collection.
func (s *Store) UpdateStatus(ctx context.Context, id, status string) error {
	s.begin()
	if err := s.api.SetStatus(ctx, id, status); err != nil {
		s.fail(err)
		return err
	}
	normalized := domain.NormalizeStatus(status)
	s.mu.Lock()
	s.applyToAllLocked(id, func(t *domain.Task) {
		t.Status = normalized
	})
	s.loading = false
	s.recomputeStatsLocked()
	s.mu.Unlock()
	return nil
}

// AddComment posts a comment; no local collection changes.
func (s *Store) AddComment(ctx context.Context, input remote.CommentInput) error {
	if err := s.api.AddComment(ctx, input); err != nil {
		s.recordError(err)
		return err
	}
	return nil
}

// TeamMembers lists the users reachable from the task endpoint family.
func (s *Store) TeamMembers(ctx context.Context, query remote.TaskQuery) ([]domain.User, error) {
	users, err := s.api.Users(ctx, query)
	if err != nil {
		s.recordError(err)
		return nil, err
	}
	return users, nil
}

// FetchAll loads the admin-wide listing into the primary collection.
func (s *Store) FetchAll(ctx context.Context, query remote.TaskQuery) error {
	return s.fetchPrimary(ctx, query, s.api.All, true)
}

// FetchYours loads the caller's own tasks into the primary collection.
func (s *Store) FetchYours(ctx context.Context, query remote.TaskQuery) error {
	return s.fetchPrimary(ctx, query, s.api.Yours, false)
}

// FetchOther loads the admin "other tasks" listing into the primary collection.
func (s *Store) FetchOther(ctx context.Context, query remote.TaskQuery) error {
	return s.fetchPrimary(ctx, query, s.api.Other, false)
}

// FetchTeam loads team tasks: into the side collection for the employer
// variant, into the primary collection otherwise.
func (s *Store) FetchTeam(ctx context.Context, query remote.TaskQuery) error {
	if s.variant == VariantEmployer {
		return s.fetchSide(ctx, query, s.api.Team, &s.teamTasks)
	}
	return s.fetchPrimary(ctx, query, s.api.Team, false)
}

// FetchDelegated loads delegated tasks, mirroring FetchTeam's placement.
func (s *Store) FetchDelegated(ctx context.Context, query remote.TaskQuery) error {
	if s.variant == VariantEmployer {
		return s.fetchSide(ctx, query, s.api.Delegated, &s.delegatedTasks)
	}
	return s.fetchPrimary(ctx, query, s.api.Delegated, false)
}

// FetchStats pulls the backend's aggregate view. Local mutations still
// recompute stats from the collection afterwards.
func (s *Store) FetchStats(ctx context.Context, query remote.TaskQuery) error {
	stats, err := s.api.Stats(ctx, query)
	if err != nil {
		s.recordError(err)
		return err
	}
	s.mu.Lock()
	s.stats = *stats
	s.mu.Unlock()
	return nil
}

type fetchFn func(ctx context.Context, query remote.TaskQuery) (remote.TaskPage, error)

func (s *Store) fetchPrimary(ctx context.Context, query remote.TaskQuery, fetch fetchFn, paginate bool) error {
	s.begin()
	page, err := fetch(ctx, query)
	if err != nil {
		s.fail(err)
		return err
	}
	s.mu.Lock()
	s.tasks = normalizeTasks(page.Tasks)
	if paginate {
		s.pagination.Total = page.Total
	}
	s.loading = false
	s.lastError = ""
	s.recomputeStatsLocked()
	s.mu.Unlock()
	return nil
}

func (s *Store) fetchSide(ctx context.Context, query remote.TaskQuery, fetch fetchFn, target *[]domain.Task) error {
	s.begin()
	page, err := fetch(ctx, query)
	if err != nil {
		s.fail(err)
		return err
	}
	s.mu.Lock()
	*target = normalizeTasks(page.Tasks)
	s.loading = false
	s.lastError = ""
	s.mu.Unlock()
	return nil
}

// CalculateStats recomputes the derived stats from the primary collection.
func (s *Store) CalculateStats() domain.TaskStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recomputeStatsLocked()
	return s.stats
}

func (s *Store) recomputeStatsLocked() {
	now := s.now()
	stats := domain.TaskStats{Total: len(s.tasks)}
	for i := range s.tasks {
		t := &s.tasks[i]
		switch domain.NormalizeStatus(t.Status) {
		case domain.StatusPending:
			stats.Pending++
		case domain.StatusInProgress:
			stats.InProgress++
		case domain.StatusCompleted:
			stats.Completed++
		}
		if s.variant != VariantAdmin && t.IsOverdue(now) {
			stats.Overdue++
		}
		if s.variant == VariantUser && t.IsDueOn(now) {
			stats.TodayTasks++
		}
	}
	s.stats = stats
}

func (s *Store) applyToAllLocked(id string, apply func(*domain.Task)) {
	for _, collection := range [][]domain.Task{s.tasks, s.teamTasks, s.delegatedTasks} {
		for i := range collection {
			if collection[i].ID == id {
				apply(&collection[i])
			}
		}
	}
}

func (s *Store) containsLocked(id string) bool {
	for _, collection := range [][]domain.Task{s.tasks, s.teamTasks, s.delegatedTasks} {
		for i := range collection {
			if collection[i].ID == id {
				return true
			}
		}
	}
	return false
}

func (s *Store) findLocked(id string) *domain.Task {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			record := s.tasks[i]
			return &record
		}
	}
	for _, collection := range [][]domain.Task{s.teamTasks, s.delegatedTasks} {
		for i := range collection {
			if collection[i].ID == id {
				record := collection[i]
				return &record
			}
		}
	}
	return nil
}

// Tasks returns a copy of the primary collection.
func (s *Store) Tasks() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTasks(s.tasks)
}

func (s *Store) TeamTasks() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTasks(s.teamTasks)
}

func (s *Store) DelegatedTasks() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTasks(s.delegatedTasks)
}

func (s *Store) Stats() domain.TaskStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

func (s *Store) PaginationState() Pagination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pagination
}

// SetPagination patches page controls; non-positive values keep the current setting.
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
	s.tasks = nil
	s.teamTasks = nil
	s.delegatedTasks = nil
	s.stats = domain.TaskStats{}
	s.filters = defaultFilters(s.variant)
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

func (s *Store) finish() {
	s.mu.Lock()
	s.loading = false
	s.lastError = ""
	s.mu.Unlock()
}

func (s *Store) fail(err error) {
	s.mu.Lock()
	s.loading = false
	s.lastError = err.Error()
	s.mu.Unlock()
}

func (s *Store) recordError(err error) {
	s.mu.Lock()
	s.lastError = err.Error()
	s.mu.Unlock()
}

func normalizeTasks(tasks []domain.Task) []domain.Task {
	out := make([]domain.Task, len(tasks))
	for i, t := range tasks {
		t.Status = domain.NormalizeStatus(t.Status)
		out[i] = t
	}
	return out
}

func cloneTasks(tasks []domain.Task) []domain.Task {
	if tasks == nil {
		return nil
	}
	out := make([]domain.Task, len(tasks))
	copy(out, tasks)
	return out
}

func removeTask(tasks []domain.Task, id string) []domain.Task {
	if tasks == nil {
		return nil
	}
	out := tasks[:0]
	for _, t := range tasks {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

// mergeTask overlays non-zero fields of the server response onto the local record.
func mergeTask(local *domain.Task, update *domain.Task) {
	if update == nil {
		return
	}
	if update.Name != "" {
		local.Name = update.Name
	}
	if update.Description != "" {
		local.Description = update.Description
	}
	if update.AssignedTo != "" {
		local.AssignedTo = update.AssignedTo
	}
	if update.Priority != "" {
		local.Priority = update.Priority
	}
	if update.Status != "" {
		local.Status = domain.NormalizeStatus(update.Status)
	}
	if update.DueDate != nil {
		due := *update.DueDate
		local.DueDate = &due
	}
	if !update.UpdatedAt.IsZero() {
		local.UpdatedAt = update.UpdatedAt
	}
}
