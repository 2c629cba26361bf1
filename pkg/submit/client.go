// Package submit dispatches validated form payloads to their remote
// endpoint. Transport policy is deliberately coarse: network failures and
// non-2xx responses collapse into a single rejection so callers surface one
// "submission failed" signal and preserve user input for a manual retry.
package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout caps a submission round trip when the caller supplies no
// client of their own.
const DefaultTimeout = 30 * time.Second

// Option customises the Client.
type Option func(*Client)

// WithHTTPClient injects custom HTTP behaviour (proxies, instrumentation,
// request signing). A zero client timeout is replaced with DefaultTimeout.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// Client POSTs form payloads as JSON. It adds no authentication headers; when
// required, signing belongs in the injected http.Client's transport.
type Client struct {
	http *http.Client
}

// NewClient constructs a Client with a sane default timeout.
func NewClient(options ...Option) *Client {
	c := &Client{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: DefaultTimeout}
	} else if c.http.Timeout == 0 {
		clone := *c.http
		clone.Timeout = DefaultTimeout
		c.http = &clone
	}
	return c
}

// Submit sends one POST with the payload serialized as a JSON object and both
// Accept and Content-Type set to application/json. Exactly one attempt; the
// caller decides whether the user retries.
func (c *Client) Submit(ctx context.Context, endpoint string, payload map[string]any) error {
	if endpoint == "" {
		return errors.New("submit: endpoint is required")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("submit: encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("submit: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("submit: post payload: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.New("submit: endpoint rejected request: " + resp.Status)
	}
	return nil
}
