package rest

import (
	"context"
	"net/url"

	"github.com/valyala/fasthttp"

	"github.com/hrboard/client/domain"
	"github.com/hrboard/client/remote"
)

// UserClient implements remote.UserAPI for the admin employee-management views.
type UserClient struct {
	c *Client
}

func NewUserClient(c *Client) *UserClient {
	return &UserClient{c: c}
}

func userPath(id string) string {
	return "/users/?userId=" + url.QueryEscape(id)
}

func (u *UserClient) All(ctx context.Context, query remote.UserQuery) (remote.UserPage, error) {
	var payload userListPayload
	if err := u.c.Do(ctx, fasthttp.MethodPost, "/users/all-users", query, &payload); err != nil {
		return remote.UserPage{}, err
	}
	return remote.UserPage{Users: payload.Users, Total: payload.Total}, nil
}

func (u *UserClient) Create(ctx context.Context, input remote.UserInput) (*domain.User, error) {
	var created domain.User
	if err := u.c.Do(ctx, fasthttp.MethodPost, "/users/", input, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (u *UserClient) Update(ctx context.Context, id string, input remote.UserInput) (*domain.User, error) {
	var updated domain.User
	if err := u.c.Do(ctx, fasthttp.MethodPatch, userPath(id), input, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (u *UserClient) Delete(ctx context.Context, id string) error {
	return u.c.Do(ctx, fasthttp.MethodDelete, userPath(id), nil, nil)
}
