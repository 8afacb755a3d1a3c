package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/forensicvideo/console/internal/client/models"
)

// Login exchanges credentials for a bearer token. The backend speaks the
// OAuth2 password flow, so the body is form-encoded and the email travels in
// the "username" field.
func (c *Client) Login(ctx context.Context, email, password string) (*models.AuthTokens, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("/api/auth/login", nil),
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var tokens models.AuthTokens
	if err := decodeJSON(resp, &tokens); err != nil {
		return nil, err
	}
	return &tokens, nil
}

// Register creates an account. It does not establish a session; the caller
// is expected to log in afterwards.
func (c *Client) Register(ctx context.Context, data models.RegisterRequest) (*models.UserProfile, error) {
	var user models.UserProfile
	if err := c.postJSON(ctx, "/api/auth/register", data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Me fetches the profile of the authenticated user.
func (c *Client) Me(ctx context.Context) (*models.UserProfile, error) {
	var user models.UserProfile
	if err := c.getJSON(ctx, "/api/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
