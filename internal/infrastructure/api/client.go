// Package api implements the single point of egress to the pharmacy backend.
//
// The client attaches the bearer credential to every outgoing request by
// consulting a TokenSource at send time, and intercepts 401 responses
// globally: the registered unauthorized handler fires once per failing
// response, whatever endpoint produced it. All other failures pass through
// unchanged.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pharmadesk/pharmacy-client/internal/api/metrics"
	"github.com/pharmadesk/pharmacy-client/internal/core/domain"
	"github.com/pharmadesk/pharmacy-client/internal/core/ports"
)

const fallbackErrorMessage = "request failed"

// errorEnvelope is the backend's failure payload shape.
type errorEnvelope struct {
	Message string `json:"message"`
}

// Client sends JSON requests to a fixed base URL.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  ports.TokenSource
	log     zerolog.Logger

	onUnauthorized func()
}

// NewClient builds a client rooted at baseURL. The timeout bounds every call;
// callers can cancel sooner through the request context.
func NewClient(baseURL string, timeout time.Duration, tokens ports.TokenSource, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log,
	}
}

// SetUnauthorizedHandler registers the hook fired on every 401 response to an
// authenticated endpoint. The hook must be idempotent; the client calls it
// exactly once per failing response and never retries.
func (c *Client) SetUnauthorizedHandler(fn func()) {
	c.onUnauthorized = fn
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, in, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body *bytes.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	// Requests issued with no active session simply omit the header.
	if tok := c.tokens.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RequestsTotal.WithLabelValues(resource(path), method, "transport_error").Inc()
		c.log.Debug().Err(err).Str("method", method).Str("path", path).Msg("transport failure")
		return err
	}
	defer resp.Body.Close()

	metrics.RequestsTotal.WithLabelValues(resource(path), method, statusClass(resp.StatusCode)).Inc()

	if resp.StatusCode == http.StatusUnauthorized && !isAuthPath(path) {
		metrics.UnauthorizedTotal.Inc()
		c.log.Warn().Str("method", method).Str("path", path).Msg("token rejected, clearing session")
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return domain.ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env errorEnvelope
		_ = json.NewDecoder(resp.Body).Decode(&env)
		if env.Message == "" {
			env.Message = fallbackErrorMessage
		}
		return &domain.RequestError{StatusCode: resp.StatusCode, Message: env.Message}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// isAuthPath marks the public credential endpoints. A 401 from signin is a
// rejected login, not an expired session, and must not clear a prior session.
func isAuthPath(path string) bool {
	return strings.HasPrefix(path, "/auth/")
}

func resource(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		trimmed = trimmed[:i]
	}
	if trimmed == "" {
		return "unknown"
	}
	return trimmed
}

func statusClass(code int) string {
	return strconv.Itoa(code/100) + "xx"
}
