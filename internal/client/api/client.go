// Package api is a thin HTTP client for the auth service JSON API, used by
// the admin CLI.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	// ErrUnauthorized covers rejected credentials, invitation secrets and tokens.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrConflict is returned when the login is already taken.
	ErrConflict = errors.New("already exists")
)

// User mirrors the user payload returned by the service.
type User struct {
	UserID    string    `json:"user_id"`
	Login     string    `json:"login"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	HasFaceID bool      `json:"has_face_id"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Secret mirrors the invitation-secret payload returned by the service.
type Secret struct {
	Secret    string    `json:"secret"`
	CreatedBy string    `json:"created_by"`
	UsedBy    string    `json:"used_by,omitempty"`
	IsUsed    bool      `json:"is_used"`
	CreatedAt time.Time `json:"created_at"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Client talks to the auth service. It remembers the token pair from the
// last successful login and sends the access token as a bearer header.
type Client struct {
	baseURL      string
	http         *http.Client
	accessToken  string
	refreshToken string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Register redeems an invitation secret and creates an account.
func (c *Client) Register(ctx context.Context, secret, name, surname, login, password string) error {
	body := map[string]string{
		"secret":   secret,
		"name":     name,
		"surname":  surname,
		"login":    login,
		"password": password,
	}
	return c.post(ctx, "/personal/registration", body, nil)
}

// Login exchanges credentials for a token pair and stores it on the client.
func (c *Client) Login(ctx context.Context, login, password string) error {
	body := map[string]string{"login": login, "password": password}

	var tokens tokenResponse
	if err := c.post(ctx, "/personal/token", body, &tokens); err != nil {
		return err
	}

	c.accessToken = tokens.AccessToken
	c.refreshToken = tokens.RefreshToken
	return nil
}

// Refresh trades the stored refresh token for a fresh pair.
func (c *Client) Refresh(ctx context.Context) error {
	body := map[string]string{"refresh_token": c.refreshToken}

	var tokens tokenResponse
	if err := c.post(ctx, "/personal/refresh", body, &tokens); err != nil {
		return err
	}

	c.accessToken = tokens.AccessToken
	c.refreshToken = tokens.RefreshToken
	return nil
}

// Logout drops the stored token pair.
func (c *Client) Logout() {
	c.accessToken = ""
	c.refreshToken = ""
}

// CurrentUser fetches the profile of the logged-in user.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.post(ctx, "/personal/user", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListSecrets returns the whole invitation-secret ledger.
func (c *Client) ListSecrets(ctx context.Context) ([]Secret, error) {
	var list []Secret
	if err := c.post(ctx, "/personal/secrets", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// AddSecret registers a new invitation secret. An empty value asks the
// service to mint one.
func (c *Client) AddSecret(ctx context.Context, value, createdBy string) (*Secret, error) {
	body := map[string]string{"secret": value, "created_by": createdBy}

	var secret Secret
	if err := c.post(ctx, "/personal/add_secret", body, &secret); err != nil {
		return nil, err
	}
	return &secret, nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errResp)

		switch resp.StatusCode {
		case http.StatusUnauthorized:
			if errResp.Error.Message != "" {
				return fmt.Errorf("%w: %s", ErrUnauthorized, errResp.Error.Message)
			}
			return ErrUnauthorized
		case http.StatusConflict:
			return ErrConflict
		default:
			return fmt.Errorf("server error (%d): %s", resp.StatusCode, errResp.Error.Message)
		}
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
