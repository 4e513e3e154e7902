package rest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/hrboard/client/credentials"
	"github.com/hrboard/client/remote"
)

func TestTaskClientDeleteTargetsQueryParam(t *testing.T) {
	doer := &stubDoer{status: fasthttp.StatusOK}
	tasks := NewTaskClient(newTestClient(doer, credentials.NewMemory()))

	require.NoError(t, tasks.Delete(context.Background(), "task id/7"))
	assert.Equal(t, fasthttp.MethodDelete, doer.method)
	assert.Equal(t, "https://api.example.com/tasks/?taskId=task+id%2F7", doer.uri)
}

func TestTaskClientListSendsQueryBody(t *testing.T) {
	doer := &stubDoer{
		status: fasthttp.StatusOK,
		body:   []byte(`{"tasks":[{"id":"t1","name":"Review","status":"pending"}],"total":8}`),
	}
	tasks := NewTaskClient(newTestClient(doer, credentials.NewMemory()))

	page, err := tasks.All(context.Background(), remote.TaskQuery{Status: "pending", Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, fasthttp.MethodPost, doer.method)
	assert.Equal(t, "https://api.example.com/tasks/all-tasks", doer.uri)
	assert.JSONEq(t, `{"status":"pending","page":2,"limit":10}`, string(doer.sentBody))
	require.Len(t, page.Tasks, 1)
	assert.Equal(t, 8, page.Total)
}

func TestTaskClientAssignBody(t *testing.T) {
	doer := &stubDoer{status: fasthttp.StatusOK}
	tasks := NewTaskClient(newTestClient(doer, credentials.NewMemory()))

	require.NoError(t, tasks.Assign(context.Background(), "t1", "u2"))
	assert.Equal(t, fasthttp.MethodPatch, doer.method)
	assert.Equal(t, "https://api.example.com/tasks/assign", doer.uri)
	assert.JSONEq(t, `{"taskId":"t1","assigneeId":"u2"}`, string(doer.sentBody))
}

func TestTaskClientCommentBody(t *testing.T) {
	doer := &stubDoer{status: fasthttp.StatusOK}
	tasks := NewTaskClient(newTestClient(doer, credentials.NewMemory()))

	input := remote.CommentInput{TaskID: "t1", Body: "looks good"}
	require.NoError(t, tasks.AddComment(context.Background(), input))
	assert.Equal(t, "https://api.example.com/tasks/new-comment", doer.uri)
	assert.JSONEq(t, `{"taskId":"t1","comment":"looks good"}`, string(doer.sentBody))
}
