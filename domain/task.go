package domain

import (
	"strings"
	"time"
)

// Task status values accepted by the backend.
const (
	StatusPending    = "pending"
	StatusInProgress = "in progress"
	StatusCompleted  = "completed"
)

// Task represents an assignable work item.
type Task struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	AssignedTo  string     `json:"assignedTo,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// NormalizeStatus maps unknown status strings to "pending" for display.
// The raw value is never written back to the backend.
func NormalizeStatus(status string) string {
	s := strings.TrimSpace(strings.ToLower(status))
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return s
	default:
		return StatusPending
	}
}

func (t *Task) IsCompleted() bool {
	return t != nil && t.Status == StatusCompleted
}

// IsOverdue reports whether the task's due date has passed without completion.
// Tasks without a due date are never overdue.
func (t *Task) IsOverdue(reference time.Time) bool {
	if t == nil || t.DueDate == nil || t.IsCompleted() {
		return false
	}
	return t.DueDate.Before(reference)
}

// IsDueOn reports whether the due date falls on the given calendar day in the
// day's local time zone.
func (t *Task) IsDueOn(day time.Time) bool {
	if t == nil || t.DueDate == nil {
		return false
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)
	due := t.DueDate.In(day.Location())
	return !due.Before(start) && due.Before(end)
}
