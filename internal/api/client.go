// Package api is the authenticated gateway to the LINKA backends. Every
// request carries the current bearer token and a request ID; responses are
// classified into a small typed error taxonomy so callers can distinguish
// "backend rejected us" from "backend unreachable".
package api

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

	"github.com/google/uuid"

	"github.com/linka-app/linka/internal/config"
)

// TokenSource provides the current bearer token. The token is read at call
// time, not captured at construction, so a credential change mid-session is
// observed by the next request.
type TokenSource interface {
	Token() string
}

// Client talks to the LINKA REST surface. The general backend serves auth,
// users, groups and the lawyer directory; the AI backend serves case matching
// and consultation endpoints.
type Client struct {
	baseURL    string
	aiBaseURL  string
	tokens     TokenSource
	httpClient *http.Client
}

// NewClient creates a client for the configured backends.
func NewClient(cfg config.BackendConfig, tokens TokenSource) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		aiBaseURL: strings.TrimRight(cfg.AIBaseURL, "/"),
		tokens:    tokens,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// backendDetail mirrors the backend's error envelope. Detail is either a
// plain string or a 422 field-error list, so it is decoded lazily.
type backendDetail struct {
	Detail json.RawMessage `json:"detail"`
}

// do issues a request against base and decodes the response into out.
// A nil out discards the body. public skips the credential requirement.
func (c *Client) do(ctx context.Context, base, method, path string, query url.Values, body, out any, public bool) error {
	if base == "" {
		return ErrNoBackend
	}

	token := ""
	if c.tokens != nil {
		token = c.tokens.Token()
	}
	if !public && token == "" {
		return ErrUnauthenticated
	}

	endpoint := base + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s %s: marshal body: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("%s %s: create request: %w", method, path, err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w: %v", method, path, ErrUnreachable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return classifyStatus(resp.StatusCode, raw)
	}

	// A 2xx with an empty body is a valid empty success.
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s %s: %w: %v", method, path, ErrMalformedResponse, err)
	}
	return nil
}

// classifyStatus maps a non-2xx response to a typed error. A body that fails
// to parse yields a generic detail; this function never panics or returns a
// raw decode error.
func classifyStatus(status int, raw []byte) error {
	var envelope backendDetail
	_ = json.Unmarshal(raw, &envelope)

	if status == http.StatusUnprocessableEntity {
		var fields []FieldError
		if len(envelope.Detail) > 0 && json.Unmarshal(envelope.Detail, &fields) == nil && len(fields) > 0 {
			return &ValidationError{Fields: fields}
		}
		// Some handlers send detail as a plain string; keep the message.
		var s string
		if len(envelope.Detail) > 0 && json.Unmarshal(envelope.Detail, &s) == nil && s != "" {
			return &ValidationError{Fields: []FieldError{{Msg: s}}}
		}
		return &ValidationError{}
	}

	detail := ""
	if len(envelope.Detail) > 0 {
		var s string
		if json.Unmarshal(envelope.Detail, &s) == nil {
			detail = s
		}
	}

	if status == http.StatusUnauthorized {
		if detail != "" {
			return fmt.Errorf("%w: %s", ErrUnauthenticated, detail)
		}
		return ErrUnauthenticated
	}

	return &UpstreamError{Status: status, Detail: detail}
}

// get issues a GET against the general backend.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, c.baseURL, http.MethodGet, path, query, nil, out, false)
}

// post issues a POST against the general backend.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, c.baseURL, http.MethodPost, path, nil, body, out, false)
}

// getAI issues a GET against the AI backend.
func (c *Client) getAI(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, c.aiBaseURL, http.MethodGet, path, query, nil, out, false)
}

// postAI issues a POST against the AI backend.
func (c *Client) postAI(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, c.aiBaseURL, http.MethodPost, path, nil, body, out, false)
}
