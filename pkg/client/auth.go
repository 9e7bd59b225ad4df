package client

import (
	"context"
	"net/http"

	"staybook/pkg/api"
)

// Register creates an account and signs it in.
func (c *Client) Register(ctx context.Context, in api.RegisterRequest) (*api.User, error) {
	var out api.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/register", nil, in, &out); err != nil {
		return nil, err
	}
	c.session.Set(out.Token, out.User)
	return out.User, nil
}

// Login accepts an email or a username.
func (c *Client) Login(ctx context.Context, login, password string) (*api.User, error) {
	var out api.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/login", nil, api.LoginRequest{Email: login, Password: password}, &out); err != nil {
		return nil, err
	}
	c.session.Set(out.Token, out.User)
	return out.User, nil
}

// Logout revokes the token server-side. The session is cleared even when the
// server call fails.
func (c *Client) Logout(ctx context.Context) error {
	defer c.session.Clear()
	var out api.Envelope
	return c.do(ctx, http.MethodPost, "/logout", nil, nil, &out)
}

func (c *Client) Me(ctx context.Context) (*api.User, error) {
	var out api.UserResponse
	if err := c.do(ctx, http.MethodGet, "/user", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}
