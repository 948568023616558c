// Package client talks to the consultorio REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrNoToken is returned by ProtectedFetch when no session token is available.
var ErrNoToken = errors.New("client: not logged in")

// APIError is the uniform shape of every non-2xx response.
type APIError struct {
	Status  int    `json:"status"`
	Message string `json:"error"`
	Details string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%d %s: %s", e.Status, e.Message, e.Details)
	}
	return fmt.Sprintf("%d %s", e.Status, e.Message)
}

// TokenSource yields the current bearer token, or "" when logged out.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed TokenSource.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Tokens     TokenSource
}

// New returns a client for baseURL, e.g. "http://localhost:8080/api".
func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
		Tokens:     tokens,
	}
}

// WithToken returns a copy of c that authenticates with token.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.Tokens = StaticToken(token)
	return &cp
}

// Fetch performs an unauthenticated call. body, when non-nil, is sent as JSON;
// out, when non-nil, receives the decoded JSON response.
func (c *Client) Fetch(ctx context.Context, method, endpoint string, body, out interface{}) error {
	return c.do(ctx, method, endpoint, "", body, out)
}

// ProtectedFetch is Fetch with the session's bearer token.
func (c *Client) ProtectedFetch(ctx context.Context, method, endpoint string, body, out interface{}) error {
	token := ""
	if c.Tokens != nil {
		token = c.Tokens.Token()
	}
	if token == "" {
		return ErrNoToken
	}
	return c.do(ctx, method, endpoint, token, body, out)
}

func (c *Client) do(ctx context.Context, method, endpoint, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: encode %s %s: %w", method, endpoint, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("client: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseError(resp.StatusCode, data)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if raw, ok := out.(*[]byte); ok {
		*raw = data
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("client: decode %s %s: %w", method, endpoint, err)
	}
	return nil
}

// parseError reads {"error"|"message", "details"} and falls back to the status text.
func parseError(status int, data []byte) *APIError {
	apiErr := &APIError{Status: status}
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Msg     string `json:"msg"`
		Details string `json:"details"`
	}
	if json.Unmarshal(data, &payload) == nil {
		switch {
		case payload.Error != "":
			apiErr.Message = payload.Error
		case payload.Message != "":
			apiErr.Message = payload.Message
		case payload.Msg != "":
			apiErr.Message = payload.Msg
		}
		apiErr.Details = payload.Details
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}

// IsStatus reports whether err is an *APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}
