package conduitsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to a conduit user service.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient returns a Client with a 10 second request timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register creates a user and returns it with a session token.
func (c *Client) Register(ctx context.Context, username, email, password string) (*AuthUser, error) {
	req := RegisterRequest{User: RegisterUser{Username: username, Email: email, Password: password}}
	var out UserResponse
	if err := c.do(ctx, http.MethodPost, "/api/users", "", req, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Login exchanges email and password for a session token.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthUser, error) {
	req := LoginRequest{User: LoginUser{Email: email, Password: password}}
	var out UserResponse
	if err := c.do(ctx, http.MethodPost, "/api/users/login", "", req, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// CurrentUser returns the token's user with a regenerated token.
func (c *Client) CurrentUser(ctx context.Context, token string) (*AuthUser, error) {
	var out UserResponse
	if err := c.do(ctx, http.MethodGet, "/api/user", token, nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// UpdateUser changes the non-nil fields of update.
func (c *Client) UpdateUser(ctx context.Context, token string, update UpdateUser) (*AuthUser, error) {
	var out UserResponse
	if err := c.do(ctx, http.MethodPut, "/api/user", token, UpdateUserRequest{User: update}, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Profile fetches a public profile. token may be empty.
func (c *Client) Profile(ctx context.Context, token, username string) (*Profile, error) {
	var out ProfileResponse
	if err := c.do(ctx, http.MethodGet, "/api/profiles/"+url.PathEscape(username), token, nil, &out); err != nil {
		return nil, err
	}
	return &out.Profile, nil
}

// Health checks the liveness endpoint.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.do(ctx, http.MethodGet, "/livez", "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Readiness checks the readiness endpoint.
func (c *Client) Readiness(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.do(ctx, http.MethodGet, "/readyz", "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do sends body as JSON (when non-nil) and decodes a 200 response into out.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return parseErrorResponse(resp, raw)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
