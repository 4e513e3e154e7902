package rest

import (
	"context"
	"net/url"

	"github.com/valyala/fasthttp"

	"github.com/hrboard/client/domain"
	"github.com/hrboard/client/remote"
)

// TaskClient implements remote.TaskAPI.
type TaskClient struct {
	c *Client
}

func NewTaskClient(c *Client) *TaskClient {
	return &TaskClient{c: c}
}

func taskPath(id string) string {
	return "/tasks/?taskId=" + url.QueryEscape(id)
}

func (t *TaskClient) Create(ctx context.Context, input remote.TaskInput) (*domain.Task, error) {
	var created domain.Task
	if err := t.c.Do(ctx, fasthttp.MethodPost, "/tasks/", input, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (t *TaskClient) Update(ctx context.Context, id string, input remote.TaskInput) (*domain.Task, error) {
	var updated domain.Task
	if err := t.c.Do(ctx, fasthttp.MethodPatch, taskPath(id), input, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (t *TaskClient) Delete(ctx context.Context, id string) error {
	return t.c.Do(ctx, fasthttp.MethodDelete, taskPath(id), nil, nil)
}

func (t *TaskClient) Details(ctx context.Context, id string) (*domain.Task, error) {
	var task domain.Task
	path := "/tasks/details?taskId=" + url.QueryEscape(id)
	if err := t.c.Do(ctx, fasthttp.MethodGet, path, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (t *TaskClient) Stats(ctx context.Context, query remote.TaskQuery) (*domain.TaskStats, error) {
	var stats domain.TaskStats
	if err := t.c.Do(ctx, fasthttp.MethodPost, "/tasks/stats", query, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (t *TaskClient) All(ctx context.Context, query remote.TaskQuery) (remote.TaskPage, error) {
	return t.list(ctx, "/tasks/all-tasks", query)
}

func (t *TaskClient) Yours(ctx context.Context, query remote.TaskQuery) (remote.TaskPage, error) {
	return t.list(ctx, "/tasks/your-tasks", query)
}

func (t *TaskClient) Team(ctx context.Context, query remote.TaskQuery) (remote.TaskPage, error) {
	return t.list(ctx, "/tasks/team-tasks", query)
}

func (t *TaskClient) Delegated(ctx context.Context, query remote.TaskQuery) (remote.TaskPage, error) {
	return t.list(ctx, "/tasks/delegated-tasks", query)
}

func (t *TaskClient) Other(ctx context.Context, query remote.TaskQuery) (remote.TaskPage, error) {
	return t.list(ctx, "/tasks/other-tasks", query)
}

func (t *TaskClient) list(ctx context.Context, path string, query remote.TaskQuery) (remote.TaskPage, error) {
	var payload taskListPayload
	if err := t.c.Do(ctx, fasthttp.MethodPost, path, query, &payload); err != nil {
		return remote.TaskPage{}, err
	}
	return remote.TaskPage{Tasks: payload.Tasks, Total: payload.Total}, nil
}

type assignRequest struct {
	TaskID     string `json:"taskId"`
	AssigneeID string `json:"assigneeId"`
}

func (t *TaskClient) Assign(ctx context.Context, id, assigneeID string) error {
	return t.c.Do(ctx, fasthttp.MethodPatch, "/tasks/assign", assignRequest{TaskID: id, AssigneeID: assigneeID}, nil)
}

type statusRequest struct {
	TaskID string `json:"taskId"`
	Status string `json:"status"`
}

func (t *TaskClient) SetStatus(ctx context.Context, id, status string) error {
	return t.c.Do(ctx, fasthttp.MethodPatch, "/tasks/status", statusRequest{TaskID: id, Status: status}, nil)
}

func (t *TaskClient) AddComment(ctx context.Context, input remote.CommentInput) error {
	return t.c.Do(ctx, fasthttp.MethodPost, "/tasks/new-comment", input, nil)
}

func (t *TaskClient) Users(ctx context.Context, query remote.TaskQuery) ([]domain.User, error) {
	var payload userListPayload
	if err := t.c.Do(ctx, fasthttp.MethodPost, "/tasks/users", query, &payload); err != nil {
		return nil, err
	}
	return payload.Users, nil
}
