package backend

import (
	"context"

	"bimillog/internal/model"
)

// Login exchanges a social authorization code for backend session cookies.
// The cookies land in the context's CookieSink.
func (c *Client) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var res model.LoginResult
	if err := c.send(ctx, "POST", "/api/auth/login", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Logout ends the backend session.
func (c *Client) Logout(ctx context.Context) error {
	return c.send(ctx, "POST", "/api/auth/logout", nil, nil)
}

// Me returns the signed-in member.
func (c *Client) Me(ctx context.Context) (*model.Member, error) {
	var m model.Member
	if err := c.get(ctx, "/api/auth/me", nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
