// Package dashboard holds the admin overview state: aggregate stats,
// attendance, task distribution and the activity feed.
package dashboard

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hrboard/client/domain"
	"github.com/hrboard/client/remote"
)

type Store struct {
	api    remote.DashboardAPI
	logger *zap.Logger
	now    func() time.Time

	mu           sync.Mutex
	stats        domain.DashboardStats
	attendance   []domain.AttendancePoint
	distribution []domain.DistributionSlice
	activities   []domain.Activity
	lastUpdated  time.Time
	loading      bool
	lastError    string
}

func New(api remote.DashboardAPI, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{api: api, logger: logger, now: time.Now}
}

func (s *Store) FetchStats(ctx context.Context) error {
	s.begin()
	stats, err := s.api.Stats(ctx)
	if err != nil {
		s.fail(err)
		return err
	}
	s.mu.Lock()
	s.stats = *stats
	s.lastUpdated = s.now()
	s.loading = false
	s.lastError = ""
	s.mu.Unlock()
	return nil
}

func (s *Store) FetchAttendance(ctx context.Context, period string) error {
	s.begin()
	points, err := s.api.Attendance(ctx, period)
	if err != nil {
		s.fail(err)
		return err
	}
	s.mu.Lock()
	s.attendance = points
	s.loading = false
	s.lastError = ""
	s.mu.Unlock()
	return nil
}

func (s *Store) FetchTaskDistribution(ctx context.Context) error {
	slices, err := s.api.TaskDistribution(ctx)
	if err != nil {
		s.recordError(err)
		return err
	}
	s.mu.Lock()
	s.distribution = slices
	s.mu.Unlock()
	return nil
}

func (s *Store) FetchRecentActivities(ctx context.Context) error {
	activities, err := s.api.RecentActivities(ctx)
	if err != nil {
		s.recordError(err)
		return err
	}
	s.mu.Lock()
	s.activities = activities
	s.mu.Unlock()
	return nil
}

func (s *Store) Stats() domain.DashboardStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

func (s *Store) Attendance() []domain.AttendancePoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.AttendancePoint, len(s.attendance))
	copy(out, s.attendance)
	return out
}

func (s *Store) TaskDistribution() []domain.DistributionSlice {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.DistributionSlice, len(s.distribution))
	copy(out, s.distribution)
	return out
}

func (s *Store) RecentActivities() []domain.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Activity, len(s.activities))
	copy(out, s.activities)
	return out
}

func (s *Store) LastUpdated() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUpdated
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
	s.stats = domain.DashboardStats{}
	s.attendance = nil
	s.distribution = nil
	s.activities = nil
	s.lastUpdated = time.Time{}
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

func (s *Store) recordError(err error) {
	s.mu.Lock()
	s.lastError = err.Error()
	s.mu.Unlock()
}
