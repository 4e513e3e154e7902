package remote

import (
	"context"

	"github.com/hrboard/client/domain"
)

// DashboardAPI is the outbound port for the /dashboard endpoint family.
type DashboardAPI interface {
	Stats(ctx context.Context) (*domain.DashboardStats, error)
	Attendance(ctx context.Context, period string) ([]domain.AttendancePoint, error)
	TaskDistribution(ctx context.Context) ([]domain.DistributionSlice, error)
	RecentActivities(ctx context.Context) ([]domain.Activity, error)
}
