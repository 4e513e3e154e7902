package domain

import "time"

// TaskStats is derived from an in-memory task collection. It is recomputed
// after every local mutation and never trusted as independent state.
type TaskStats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"in progress"`
	Completed  int `json:"completed"`
	Overdue    int `json:"overdue,omitempty"`
	TodayTasks int `json:"todayTasks,omitempty"`
}

// UserStats is derived from the loaded employee collection.
type UserStats struct {
	TotalUsers        int `json:"totalUsers"`
	ActiveUsers       int `json:"activeUsers"`
	InactiveUsers     int `json:"inactiveUsers"`
	NewUsersThisMonth int `json:"newUsersThisMonth"`
}

// DashboardStats comes from the dashboard endpoint family as-is.
type DashboardStats struct {
	TotalUsers     int `json:"totalUsers"`
	TotalEmployers int `json:"totalEmployers"`
	TotalJobs      int `json:"totalJobs"`
	TotalTasks     int `json:"totalTasks"`
	CompletedTasks int `json:"completedTasks"`
	PendingTasks   int `json:"pendingTasks"`
	ActiveProjects int `json:"activeProjects"`
}

// AttendancePoint is one day of the attendance chart.
type AttendancePoint struct {
	Day       string `json:"day"`
	Users     int    `json:"users"`
	Employers int    `json:"employers"`
}

// DistributionSlice is one segment of the task distribution chart.
type DistributionSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color,omitempty"`
}

// Activity is a recent-activity feed entry.
type Activity struct {
	ID        string    `json:"id"`
	Actor     string    `json:"actor,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
