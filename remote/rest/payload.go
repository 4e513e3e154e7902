package rest

import (
	"encoding/json"

	"github.com/hrboard/client/domain"
)

// The backend is inconsistent about list envelopes: some deployments return a
// bare array, others {"tasks": [...], "total": n}. These payload types accept
// both shapes.

type taskListPayload struct {
	Tasks []domain.Task
	Total int
}

func (p *taskListPayload) UnmarshalJSON(data []byte) error {
	var bare []domain.Task
	if err := json.Unmarshal(data, &bare); err == nil {
		p.Tasks = bare
		p.Total = len(bare)
		return nil
	}
	var wrapped struct {
		Tasks []domain.Task `json:"tasks"`
		Total int           `json:"total"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	p.Tasks = wrapped.Tasks
	p.Total = wrapped.Total
	if p.Total == 0 {
		p.Total = len(p.Tasks)
	}
	return nil
}

type userListPayload struct {
	Users []domain.User
	Total int
}

func (p *userListPayload) UnmarshalJSON(data []byte) error {
	var bare []domain.User
	if err := json.Unmarshal(data, &bare); err == nil {
		p.Users = bare
		p.Total = len(bare)
		return nil
	}
	var wrapped struct {
		Users []domain.User `json:"users"`
		Total int           `json:"total"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	p.Users = wrapped.Users
	p.Total = wrapped.Total
	if p.Total == 0 {
		p.Total = len(p.Users)
	}
	return nil
}

// decodeUser accepts {"user": {...}} and a bare user object.
func decodeUser(raw json.RawMessage) (*domain.User, error) {
	var wrapped struct {
		User *domain.User `json:"user"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.User != nil {
		return wrapped.User, nil
	}
	var direct domain.User
	if err := json.Unmarshal(raw, &direct); err != nil {
		return nil, domain.WrapError(domain.ErrCodeServer, "decode user payload", err)
	}
	return &direct, nil
}
