package rest

import (
	"context"
	"encoding/json"

	"github.com/valyala/fasthttp"

	"github.com/hrboard/client/domain"
	"github.com/hrboard/client/remote"
)

// ProfileClient implements remote.ProfileAPI.
type ProfileClient struct {
	c *Client
}

func NewProfileClient(c *Client) *ProfileClient {
	return &ProfileClient{c: c}
}

func (p *ProfileClient) Get(ctx context.Context) (*domain.User, error) {
	var raw json.RawMessage
	if err := p.c.Do(ctx, fasthttp.MethodGet, "/users/profile", nil, &raw); err != nil {
		return nil, err
	}
	return decodeUser(raw)
}

func (p *ProfileClient) Update(ctx context.Context, input remote.ProfileInput) (*domain.User, error) {
	var raw json.RawMessage
	if err := p.c.Do(ctx, fasthttp.MethodPatch, "/users/profile", input, &raw); err != nil {
		return nil, err
	}
	return decodeUser(raw)
}

func (p *ProfileClient) ChangePassword(ctx context.Context, current, next string) error {
	body := changePasswordRequest{CurrentPassword: current, NewPassword: next}
	return p.c.Do(ctx, fasthttp.MethodPatch, "/users/profile/password", body, nil)
}

func (p *ProfileClient) UpdatePreferences(ctx context.Context, prefs domain.Preferences) error {
	return p.c.Do(ctx, fasthttp.MethodPatch, "/users/profile/preferences", prefs, nil)
}
