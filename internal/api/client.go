// Package api is the single gateway to the SEFY backend. One configured HTTP
// client is shared by every screen; the transport attaches the current bearer
// token and a request id to each outgoing call.
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

	"github.com/google/uuid"

	"github.com/sefyapp/sefy/internal/logger"
	"github.com/sefyapp/sefy/internal/store"
)

// TokenSource supplies the current bearer token. An empty token with a nil
// error means "not logged in" and the request goes out without credentials.
type TokenSource interface {
	Token() (string, error)
}

// StoreTokenSource reads the persisted token from the durable state file.
type StoreTokenSource struct {
	Store *store.Store
}

// Token implements TokenSource. An unset token is not an error.
func (s StoreTokenSource) Token() (string, error) {
	value, err := s.Store.Get(store.KeyToken)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil
	}
	return value, err
}

// Client issues JSON requests against the configured base URL.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

// Options configures a Client.
type Options struct {
	BaseURL string
	Timeout time.Duration
	Tokens  TokenSource
	Logger  *logger.Logger
}

// New constructs the gateway client.
func New(opts Options) *Client {
	transport := &bearerTransport{
		next:   http.DefaultTransport,
		tokens: opts.Tokens,
		log:    opts.Logger,
	}

	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
		},
		log: opts.Logger,
	}
}

// bearerTransport injects the bearer credential and a request id into every
// outgoing request. A token read failure is logged and the request proceeds
// without credentials; the backend answers 401 and the screen handles it.
type bearerTransport struct {
	next   http.RoundTripper
	tokens TokenSource
	log    *logger.Logger
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	cloned := req.Clone(req.Context())
	cloned.Header.Set("X-Request-Id", uuid.NewString())

	if t.tokens != nil {
		token, err := t.tokens.Token()
		switch {
		case err != nil:
			t.log.Error(err, "failed to read stored token, sending request without credentials")
		case token != "":
			cloned.Header.Set("Authorization", "Bearer "+token)
		}
	}

	t.log.WithFields(map[string]any{
		"method":     cloned.Method,
		"url":        cloned.URL.String(),
		"request_id": cloned.Header.Get("X-Request-Id"),
	}).Debug("outgoing request")

	return t.next.RoundTrip(cloned)
}

// errorBody is the error envelope the backend uses for failures.
type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

// do issues one JSON request and decodes the response into out when non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &APIError{Category: CategoryInvalid, Err: fmt.Errorf("failed to encode request body: %w", err)}
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &APIError{Category: CategoryInvalid, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Classify(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Classify(err)
	}

	if resp.StatusCode >= 400 {
		return c.statusError(resp.StatusCode, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			c.log.Error(err, "failed to decode response body")
			return &APIError{Category: CategoryInvalid, Err: fmt.Errorf("failed to decode response: %w", err)}
		}
	}

	return nil
}

func (c *Client) statusError(status int, data []byte) *APIError {
	apiErr := &APIError{Category: CategoryStatus, Status: status}

	var envelope errorBody
	if err := json.Unmarshal(data, &envelope); err == nil {
		switch {
		case envelope.Detail != "":
			apiErr.Detail = envelope.Detail
		case envelope.Message != "":
			apiErr.Detail = envelope.Message
		}
	}

	c.log.WithFields(map[string]any{"status": status, "detail": apiErr.Detail}).Debug("request failed")
	return apiErr
}
