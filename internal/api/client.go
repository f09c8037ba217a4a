// Package api is the typed client for the workmatch REST backend. Every call
// performs exactly one HTTP request and never swallows errors.
package api

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

	"github.com/ghaniswara/workmatch/internal/config"
	"github.com/ghaniswara/workmatch/internal/logger"
	"github.com/ghaniswara/workmatch/internal/tokenstore"
	"github.com/ghaniswara/workmatch/pkg/http_util"
)

// TokenSource yields the bearer token attached to outgoing requests.
type TokenSource interface {
	Get(ctx context.Context) (string, error)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource

	Auth     *AuthAPI
	Users    *UserAPI
	Matches  *MatchAPI
	Messages *MessageAPI
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		tokens:     tokens,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Auth = &AuthAPI{c: c}
	c.Users = &UserAPI{c: c}
	c.Matches = &MatchAPI{c: c}
	c.Messages = &MessageAPI{c: c}
	return c
}

func NewFromConfig(cfg *config.Config, tokens TokenSource) *Client {
	return New(cfg.Get("API_BASE_URL"), tokens,
		WithHTTPClient(&http.Client{Timeout: cfg.GetDuration("HTTP_TIMEOUT")}))
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// do sends one request and decodes a 2xx JSON body into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if err := c.authorize(ctx, req); err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s %s: %w", method, path, err)
	}

	logger.Debug("api call", "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    http_util.ErrorMessage(respBody),
			Body:       respBody,
		}
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// authorize attaches the stored token. A missing token is not an error: the
// request goes out unauthenticated and the backend decides.
func (c *Client) authorize(ctx context.Context, req *http.Request) error {
	if c.tokens == nil {
		return nil
	}

	token, err := c.tokens.Get(ctx)
	if errors.Is(err, tokenstore.ErrNoToken) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load token: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	return nil
}
