package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/hrboard/client/domain"
)

type stubDashboardAPI struct {
	stats        *domain.DashboardStats
	attendance   []domain.AttendancePoint
	distribution []domain.DistributionSlice
	activities   []domain.Activity
	err          error

	period string
}

func (a *stubDashboardAPI) Stats(context.Context) (*domain.DashboardStats, error) {
	return a.stats, a.err
}

func (a *stubDashboardAPI) Attendance(_ context.Context, period string) ([]domain.AttendancePoint, error) {
	a.period = period
	return a.attendance, a.err
}

func (a *stubDashboardAPI) TaskDistribution(context.Context) ([]domain.DistributionSlice, error) {
	return a.distribution, a.err
}

func (a *stubDashboardAPI) RecentActivities(context.Context) ([]domain.Activity, error) {
	return a.activities, a.err
}

func TestFetchStatsStampsLastUpdated(t *testing.T) {
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	api := &stubDashboardAPI{stats: &domain.DashboardStats{TotalUsers: 12, PendingTasks: 3}}
	store := New(api, nil)
	store.now = func() time.Time { return now }

	if err := store.FetchStats(context.Background()); err != nil {
		t.Fatalf("FetchStats: %v", err)
	}
	if store.Stats().TotalUsers != 12 {
		t.Fatalf("stats = %+v", store.Stats())
	}
	if !store.LastUpdated().Equal(now) {
		t.Fatalf("lastUpdated = %v", store.LastUpdated())
	}
}

func TestFetchStatsFailureKeepsPrevious(t *testing.T) {
	api := &stubDashboardAPI{stats: &domain.DashboardStats{TotalUsers: 12}}
	store := New(api, nil)
	if err := store.FetchStats(context.Background()); err != nil {
		t.Fatalf("FetchStats: %v", err)
	}

	api.err = domain.NewError(domain.ErrCodeServer, "boom")
	if err := store.FetchStats(context.Background()); err == nil {
		t.Fatal("expected failure")
	}
	if store.Stats().TotalUsers != 12 {
		t.Fatal("failed fetch must keep the previous stats")
	}
	if store.Error() != "boom" {
		t.Fatalf("lastError = %q", store.Error())
	}
}

func TestFetchAttendancePassesPeriod(t *testing.T) {
	api := &stubDashboardAPI{attendance: []domain.AttendancePoint{{Day: "Mon", Users: 4}}}
	store := New(api, nil)

	if err := store.FetchAttendance(context.Background(), "month"); err != nil {
		t.Fatalf("FetchAttendance: %v", err)
	}
	if api.period != "month" {
		t.Fatalf("period = %q", api.period)
	}
	if got := store.Attendance(); len(got) != 1 || got[0].Day != "Mon" {
		t.Fatalf("attendance = %+v", got)
	}
}

func TestResetEmptiesEverything(t *testing.T) {
	api := &stubDashboardAPI{
		stats:        &domain.DashboardStats{TotalUsers: 1},
		distribution: []domain.DistributionSlice{{Name: "pending", Value: 1}},
		activities:   []domain.Activity{{ID: "a1", Message: "created"}},
	}
	store := New(api, nil)
	ctx := context.Background()
	if err := store.FetchStats(ctx); err != nil {
		t.Fatalf("FetchStats: %v", err)
	}
	if err := store.FetchTaskDistribution(ctx); err != nil {
		t.Fatalf("FetchTaskDistribution: %v", err)
	}
	if err := store.FetchRecentActivities(ctx); err != nil {
		t.Fatalf("FetchRecentActivities: %v", err)
	}

	store.Reset()
	store.Reset()

	if store.Stats().TotalUsers != 0 || len(store.TaskDistribution()) != 0 || len(store.RecentActivities()) != 0 {
		t.Fatal("reset must empty the store")
	}
	if !store.LastUpdated().IsZero() {
		t.Fatal("reset must clear the timestamp")
	}
}
