package remote

import (
	"context"

	"github.com/hrboard/client/domain"
)

// UserQuery narrows employee list fetches.
type UserQuery struct {
	Role   string `json:"role,omitempty"`
	Status string `json:"status,omitempty"`
	Page   int    `json:"page,omitempty"`
	Limit  int    `json:"limit,omitempty"`
}

// UserInput carries employee create/update fields.
type UserInput struct {
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role,omitempty"`
	Status string `json:"status,omitempty"`
}

// UserPage is an employee listing plus the backend's total when reported.
type UserPage struct {
	Users []domain.User
	Total int
}

// UserAPI is the outbound port for the /users endpoint family.
type UserAPI interface {
	All(ctx context.Context, query UserQuery) (UserPage, error)
	Create(ctx context.Context, input UserInput) (*domain.User, error)
	Update(ctx context.Context, id string, input UserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
