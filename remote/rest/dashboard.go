package rest

import (
	"context"

	"github.com/valyala/fasthttp"

	"github.com/hrboard/client/domain"
)

// DashboardClient implements remote.DashboardAPI.
type DashboardClient struct {
	c *Client
}

func NewDashboardClient(c *Client) *DashboardClient {
	return &DashboardClient{c: c}
}

func (d *DashboardClient) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	var stats domain.DashboardStats
	if err := d.c.Do(ctx, fasthttp.MethodPost, "/dashboard/stats", struct{}{}, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

type attendanceRequest struct {
	Period string `json:"period"`
}

func (d *DashboardClient) Attendance(ctx context.Context, period string) ([]domain.AttendancePoint, error) {
	if period == "" {
		period = "week"
	}
	var points []domain.AttendancePoint
	if err := d.c.Do(ctx, fasthttp.MethodPost, "/dashboard/attendance", attendanceRequest{Period: period}, &points); err != nil {
		return nil, err
	}
	return points, nil
}

func (d *DashboardClient) TaskDistribution(ctx context.Context) ([]domain.DistributionSlice, error) {
	var slices []domain.DistributionSlice
	if err := d.c.Do(ctx, fasthttp.MethodPost, "/dashboard/task-distribution", struct{}{}, &slices); err != nil {
		return nil, err
	}
	return slices, nil
}

func (d *DashboardClient) RecentActivities(ctx context.Context) ([]domain.Activity, error) {
	var activities []domain.Activity
	if err := d.c.Do(ctx, fasthttp.MethodPost, "/dashboard/activities", struct{}{}, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}
