package remote

import (
	"context"

	"github.com/hrboard/client/domain"
)

// LoginResult is the successful outcome of a credential exchange.
type LoginResult struct {
	User  *domain.User
	Token string
}

// RegisterInput creates an administrator account.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileInput carries partial identity updates; empty fields are not sent.
type ProfileInput struct {
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// AuthAPI is the outbound port for the /api/auth endpoint family.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	RegisterAdmin(ctx context.Context, input RegisterInput) error
	Me(ctx context.Context) (*domain.User, error)
	UpdateProfile(ctx context.Context, input ProfileInput) (*domain.User, error)
	ChangePassword(ctx context.Context, current, next string) error
}
