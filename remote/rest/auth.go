package rest

import (
	"context"
	"encoding/json"

	"github.com/valyala/fasthttp"

	"github.com/hrboard/client/domain"
	"github.com/hrboard/client/remote"
)

// AuthClient implements remote.AuthAPI.
type AuthClient struct {
	c *Client
}

func NewAuthClient(c *Client) *AuthClient {
	return &AuthClient{c: c}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *AuthClient) Login(ctx context.Context, email, password string) (*remote.LoginResult, error) {
	var out struct {
		Data struct {
			User  *domain.User `json:"user"`
			Token string       `json:"token"`
		} `json:"data"`
	}
	err := a.c.DoAnonymous(ctx, fasthttp.MethodPost, "/api/auth/login", loginRequest{Email: email, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	if out.Data.User == nil {
		return nil, domain.NewError(domain.ErrCodeServer, "login response missing user")
	}
	return &remote.LoginResult{User: out.Data.User, Token: out.Data.Token}, nil
}

func (a *AuthClient) RegisterAdmin(ctx context.Context, input remote.RegisterInput) error {
	return a.c.DoAnonymous(ctx, fasthttp.MethodPost, "/api/auth/register-admin", input, nil)
}

func (a *AuthClient) Me(ctx context.Context) (*domain.User, error) {
	var raw json.RawMessage
	if err := a.c.Do(ctx, fasthttp.MethodGet, "/api/auth/me", nil, &raw); err != nil {
		return nil, err
	}
	return decodeUser(raw)
}

func (a *AuthClient) UpdateProfile(ctx context.Context, input remote.ProfileInput) (*domain.User, error) {
	var raw json.RawMessage
	if err := a.c.Do(ctx, fasthttp.MethodPut, "/api/auth/profile", input, &raw); err != nil {
		return nil, err
	}
	return decodeUser(raw)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (a *AuthClient) ChangePassword(ctx context.Context, current, next string) error {
	body := changePasswordRequest{CurrentPassword: current, NewPassword: next}
	return a.c.Do(ctx, fasthttp.MethodPut, "/api/auth/change-password", body, nil)
}
