package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// Login exchanges credentials for a bearer token. The backend expects an
// OAuth2-style form post, not JSON.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var out struct {
		AccessToken string `json:"access_token"`
	}
	err := c.getJSON(ctx, call{
		method:      http.MethodPost,
		path:        "/auth/login",
		op:          "log in",
		body:        strings.NewReader(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
	}, &out)
	if err != nil {
		return "", err
	}
	return out.AccessToken, nil
}

// Register creates an account. It does not log the new user in.
func (c *Client) Register(ctx context.Context, email, password, fullName string) error {
	payload := map[string]string{
		"email":     email,
		"password":  password,
		"full_name": fullName,
	}
	return c.postJSON(ctx, call{
		method: http.MethodPost,
		path:   "/auth/register",
		op:     "register",
	}, payload, nil)
}

// Me returns the profile behind the current token.
func (c *Client) Me(ctx context.Context) (UserProfile, error) {
	var out UserProfile
	err := c.getJSON(ctx, call{
		method: http.MethodGet,
		path:   "/auth/me",
		op:     "fetch profile",
		auth:   true,
	}, &out)
	return out, err
}
