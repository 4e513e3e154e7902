package task

import (
	"context"
	"testing"
	"time"

	"github.com/hrboard/client/domain"
	"github.com/hrboard/client/remote"
)

type stubTaskAPI struct {
	created *domain.Task
	updated *domain.Task
	details *domain.Task
	page    remote.TaskPage
	stats   *domain.TaskStats
	users   []domain.User
	err     error

	deleteCalls int
}

func (a *stubTaskAPI) Create(context.Context, remote.TaskInput) (*domain.Task, error) {
	return a.created, a.err
}

func (a *stubTaskAPI) Update(context.Context, string, remote.TaskInput) (*domain.Task, error) {
	return a.updated, a.err
}

func (a *stubTaskAPI) Delete(context.Context, string) error {
	a.deleteCalls++
	return a.err
}

func (a *stubTaskAPI) Details(context.Context, string) (*domain.Task, error) {
	return a.details, a.err
}

func (a *stubTaskAPI) Stats(context.Context, remote.TaskQuery) (*domain.TaskStats, error) {
	return a.stats, a.err
}

func (a *stubTaskAPI) All(context.Context, remote.TaskQuery) (remote.TaskPage, error) {
	return a.page, a.err
}

func (a *stubTaskAPI) Yours(context.Context, remote.TaskQuery) (remote.TaskPage, error) {
	return a.page, a.err
}

func (a *stubTaskAPI) Team(context.Context, remote.TaskQuery) (remote.TaskPage, error) {
	return a.page, a.err
}

func (a *stubTaskAPI) Delegated(context.Context, remote.TaskQuery) (remote.TaskPage, error) {
	return a.page, a.err
}

func (a *stubTaskAPI) Other(context.Context, remote.TaskQuery) (remote.TaskPage, error) {
	return a.page, a.err
}

func (a *stubTaskAPI) Assign(context.Context, string, string) error    { return a.err }
func (a *stubTaskAPI) SetStatus(context.Context, string, string) error { return a.err }
func (a *stubTaskAPI) AddComment(context.Context, remote.CommentInput) error {
	return a.err
}

func (a *stubTaskAPI) Users(context.Context, remote.TaskQuery) ([]domain.User, error) {
	return a.users, a.err
}

var testNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func due(t time.Time) *time.Time { return &t }

func seed(s *Store, tasks ...domain.Task) {
	s.mu.Lock()
	s.tasks = tasks
	s.recomputeStatsLocked()
	s.mu.Unlock()
}

func TestCreatePrependsServerRecord(t *testing.T) {
	api := &stubTaskAPI{created: &domain.Task{ID: "101", Name: "Onboarding", Status: "PENDING"}}
	store := NewUser(api, nil)
	store.now = fixedClock
	seed(store, domain.Task{ID: "100", Name: "Old", Status: domain.StatusCompleted})

	created, err := store.Create(context.Background(), remote.TaskInput{Name: "Onboarding"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Status != domain.StatusPending {
		t.Fatalf("status = %q, want normalized %q", created.Status, domain.StatusPending)
	}

	tasks := store.Tasks()
	if len(tasks) != 2 || tasks[0].ID != "101" {
		t.Fatalf("tasks = %+v, want server record first", tasks)
	}

	stats := store.Stats()
	if stats.Total != 2 || stats.Pending != 1 || stats.Completed != 1 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestCreateFailureLeavesCollectionUntouched(t *testing.T) {
	api := &stubTaskAPI{err: domain.NewError(domain.ErrCodeServer, "boom")}
	store := NewUser(api, nil)
	store.now = fixedClock
	seed(store, domain.Task{ID: "1", Status: domain.StatusPending})

	if _, err := store.Create(context.Background(), remote.TaskInput{Name: "x"}); err == nil {
		t.Fatal("expected create failure")
	}
	if len(store.Tasks()) != 1 {
		t.Fatal("failed create must not change the collection")
	}
	if store.Stats().Total != 1 {
		t.Fatal("failed create must not change the stats")
	}
	if store.Error() != "boom" {
		t.Fatalf("lastError = %q", store.Error())
	}
}

func TestEditUpdatesEveryCollection(t *testing.T) {
	api := &stubTaskAPI{updated: &domain.Task{Name: "Renamed", Status: "completed"}}
	store := NewEmployer(api, nil)
	store.now = fixedClock
	store.mu.Lock()
	store.tasks = []domain.Task{{ID: "t1", Name: "Orig", Status: domain.StatusPending}}
	store.teamTasks = []domain.Task{{ID: "t1", Name: "Orig", Status: domain.StatusPending}}
	store.recomputeStatsLocked()
	store.mu.Unlock()

	merged, err := store.Edit(context.Background(), "t1", remote.TaskInput{Name: "Renamed"})
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if merged.Name != "Renamed" || merged.Status != domain.StatusCompleted {
		t.Fatalf("merged = %+v", merged)
	}
	if store.Tasks()[0].Name != "Renamed" {
		t.Fatal("primary collection not updated")
	}
	if store.TeamTasks()[0].Name != "Renamed" || store.TeamTasks()[0].Status != domain.StatusCompleted {
		t.Fatal("team collection must receive the identical update")
	}
	if stats := store.Stats(); stats.Completed != 1 || stats.Pending != 0 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestDeleteUnknownIDFailsWithoutRemoteCall(t *testing.T) {
	api := &stubTaskAPI{}
	store := NewAdmin(api, nil)
	store.now = fixedClock
	seed(store, domain.Task{ID: "t1", Status: domain.StatusPending})

	err := store.Delete(context.Background(), "missing")
	if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("error = %v, want NOT_FOUND", err)
	}
	if api.deleteCalls != 0 {
		t.Fatal("a missing local id must not reach the backend")
	}
	if len(store.Tasks()) != 1 {
		t.Fatal("collection must be unchanged")
	}
}

func TestDeleteRemovesFromEveryCollection(t *testing.T) {
	api := &stubTaskAPI{}
	store := NewEmployer(api, nil)
	store.now = fixedClock
	store.mu.Lock()
	store.tasks = []domain.Task{{ID: "t1", Status: domain.StatusPending}, {ID: "t2", Status: domain.StatusPending}}
	store.teamTasks = []domain.Task{{ID: "t1", Status: domain.StatusPending}}
	store.delegatedTasks = []domain.Task{{ID: "t1", Status: domain.StatusPending}}
	store.recomputeStatsLocked()
	store.mu.Unlock()

	if err := store.Delete(context.Background(), "t1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(store.Tasks()) != 1 || store.Tasks()[0].ID != "t2" {
		t.Fatalf("tasks = %+v", store.Tasks())
	}
	if len(store.TeamTasks()) != 0 || len(store.DelegatedTasks()) != 0 {
		t.Fatal("side collections must drop the record too")
	}
	if store.Stats().Total != 1 {
		t.Fatalf("stats.Total = %d", store.Stats().Total)
	}
}

func TestDeleteRemoteFailureLeavesStateUntouched(t *testing.T) {
	api := &stubTaskAPI{err: domain.NewError(domain.ErrCodeServer, "boom")}
	store := NewAdmin(api, nil)
	store.now = fixedClock
	seed(store, domain.Task{ID: "t1", Status: domain.StatusPending})

	if err := store.Delete(context.Background(), "t1"); err == nil {
		t.Fatal("expected delete failure")
	}
	if len(store.Tasks()) != 1 {
		t.Fatal("failed delete must not remove the record")
	}
}

func TestFetchAllNormalizesAndPaginates(t *testing.T) {
	api := &stubTaskAPI{page: remote.TaskPage{
		Tasks: []domain.Task{
			{ID: "1", Status: "archived"},
			{ID: "2", Status: "In Progress"},
		},
		Total: 57,
	}}
	store := NewAdmin(api, nil)
	store.now = fixedClock

	if err := store.FetchAll(context.Background(), remote.TaskQuery{}); err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	tasks := store.Tasks()
	if tasks[0].Status != domain.StatusPending {
		t.Fatalf("unknown status normalized to %q", tasks[0].Status)
	}
	if tasks[1].Status != domain.StatusInProgress {
		t.Fatalf("status = %q", tasks[1].Status)
	}
	if store.PaginationState().Total != 57 {
		t.Fatalf("pagination total = %d", store.PaginationState().Total)
	}
}

func TestEmployerFetchTeamFillsSideCollection(t *testing.T) {
	api := &stubTaskAPI{page: remote.TaskPage{Tasks: []domain.Task{{ID: "t9", Status: domain.StatusPending}}}}
	store := NewEmployer(api, nil)
	store.now = fixedClock

	if err := store.FetchTeam(context.Background(), remote.TaskQuery{}); err != nil {
		t.Fatalf("FetchTeam: %v", err)
	}
	if len(store.Tasks()) != 0 {
		t.Fatal("team fetch must not overwrite the primary collection")
	}
	if len(store.TeamTasks()) != 1 {
		t.Fatalf("teamTasks = %+v", store.TeamTasks())
	}
}

func TestStatsCountOverdueAndToday(t *testing.T) {
	store := NewUser(&stubTaskAPI{}, nil)
	store.now = fixedClock
	seed(store,
		domain.Task{ID: "1", Status: domain.StatusPending, DueDate: due(testNow.Add(-48 * time.Hour))},
		domain.Task{ID: "2", Status: domain.StatusCompleted, DueDate: due(testNow.Add(-48 * time.Hour))},
		domain.Task{ID: "3", Status: domain.StatusPending, DueDate: due(testNow.Add(2 * time.Hour))},
		domain.Task{ID: "4", Status: domain.StatusInProgress},
	)

	stats := store.CalculateStats()
	if stats.Total != 4 || stats.Pending != 2 || stats.InProgress != 1 || stats.Completed != 1 {
		t.Fatalf("stats = %+v", stats)
	}
	if stats.Overdue != 1 {
		t.Fatalf("overdue = %d, want 1 (completed tasks never count)", stats.Overdue)
	}
	if stats.TodayTasks != 1 {
		t.Fatalf("todayTasks = %d", stats.TodayTasks)
	}
}

func TestAdminStatsSkipOverdue(t *testing.T) {
	store := NewAdmin(&stubTaskAPI{}, nil)
	store.now = fixedClock
	seed(store, domain.Task{ID: "1", Status: domain.StatusPending, DueDate: due(testNow.Add(-time.Hour))})

	if stats := store.CalculateStats(); stats.Overdue != 0 {
		t.Fatalf("admin overdue = %d, want 0", stats.Overdue)
	}
}

func TestUpdateStatusPropagatesNormalized(t *testing.T) {
	store := NewEmployer(&stubTaskAPI{}, nil)
	store.now = fixedClock
	store.mu.Lock()
	store.tasks = []domain.Task{{ID: "t1", Status: domain.StatusPending}}
	store.teamTasks = []domain.Task{{ID: "t1", Status: domain.StatusPending}}
	store.mu.Unlock()

	if err := store.UpdateStatus(context.Background(), "t1", "Completed"); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if store.Tasks()[0].Status != domain.StatusCompleted {
		t.Fatalf("status = %q", store.Tasks()[0].Status)
	}
	if store.TeamTasks()[0].Status != domain.StatusCompleted {
		t.Fatal("team collection must see the transition too")
	}
}

func TestResetIsIdempotent(t *testing.T) {
	store := NewAdmin(&stubTaskAPI{}, nil)
	store.now = fixedClock
	seed(store, domain.Task{ID: "1", Status: domain.StatusPending})
	store.SetPagination(3, 25)

	store.Reset()
	store.Reset()

	if len(store.Tasks()) != 0 || store.Stats().Total != 0 {
		t.Fatal("reset must empty the store")
	}
	if p := store.PaginationState(); p.Page != 1 || p.Limit != 10 {
		t.Fatalf("pagination = %+v, want defaults", p)
	}
}
