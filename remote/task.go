package remote

import (
	"context"
	"time"

	"github.com/hrboard/client/domain"
)

// TaskQuery narrows task list fetches.
type TaskQuery struct {
	Status     string `json:"status,omitempty"`
	AssignedTo string `json:"assignedTo,omitempty"`
	Page       int    `json:"page,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

// TaskInput carries create/update fields. Zero fields are omitted so partial
// updates stay partial on the wire.
type TaskInput struct {
	Name        string     `json:"name,omitempty"`
	Description string     `json:"description,omitempty"`
	AssignedTo  string     `json:"assignedTo,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	Status      string     `json:"status,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

// CommentInput posts a comment against a task.
type CommentInput struct {
	TaskID string `json:"taskId"`
	Body   string `json:"comment"`
}

// TaskPage is a task listing plus the backend's total when it reports one.
type TaskPage struct {
	Tasks []domain.Task
	Total int
}

// TaskAPI is the outbound port for the /tasks endpoint family.
type TaskAPI interface {
	Create(ctx context.Context, input TaskInput) (*domain.Task, error)
	Update(ctx context.Context, id string, input TaskInput) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
	Details(ctx context.Context, id string) (*domain.Task, error)

	Stats(ctx context.Context, query TaskQuery) (*domain.TaskStats, error)
	All(ctx context.Context, query TaskQuery) (TaskPage, error)
	Yours(ctx context.Context, query TaskQuery) (TaskPage, error)
	Team(ctx context.Context, query TaskQuery) (TaskPage, error)
	Delegated(ctx context.Context, query TaskQuery) (TaskPage, error)
	Other(ctx context.Context, query TaskQuery) (TaskPage, error)

	Assign(ctx context.Context, id, assigneeID string) error
	SetStatus(ctx context.Context, id, status string) error
	AddComment(ctx context.Context, input CommentInput) error
	Users(ctx context.Context, query TaskQuery) ([]domain.User, error)
}
