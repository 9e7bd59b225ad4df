// Package client is a typed Go SDK for the staybook HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"staybook/pkg/api"
)

// APIError is a request the server answered with success=false. Status is 0
// for checks that failed before anything was sent.
type APIError struct {
	Status  int
	Kind    api.ErrorKind
	Message string
	Errors  []string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" && len(e.Errors) > 0 {
		msg = strings.Join(e.Errors, " ")
	}
	if e.Status == 0 {
		return fmt.Sprintf("staybook: %s: %s", e.Kind, msg)
	}
	return fmt.Sprintf("staybook: %s (%d): %s", e.Kind, e.Status, msg)
}

// IsKind reports whether err is an *APIError of the given kind.
func IsKind(err error, kind api.ErrorKind) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Kind == kind
}

func invalid(msgs ...string) error {
	return &APIError{Kind: api.KindValidation, Message: strings.Join(msgs, " "), Errors: msgs}
}

type Client struct {
	base    string
	hc      *http.Client
	session *Session
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.hc = hc } }

// WithSession shares a session between clients.
func WithSession(s *Session) Option { return func(c *Client) { c.session = s } }

// New returns a client for the API mounted at baseURL, e.g.
// "https://staybook.example.com/api/v1".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		base:    strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: 30 * time.Second},
		session: &Session{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) Session() *Session { return c.session }

// do sends one request and decodes the envelope into out. The outcome is
// decided by the body's success flag, not the transport status, so servers in
// legacy 200-only mode behave the same.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out api.Enveloped) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		rd = bytes.NewReader(b)
	}
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.session.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", method, path, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &APIError{Status: resp.StatusCode, Kind: api.KindInternal, Message: http.StatusText(resp.StatusCode)}
	}

	env := out.Result()
	if env.Success {
		return nil
	}
	if env.Kind == api.KindUnauthorized {
		c.session.Clear()
	}
	kind := env.Kind
	if kind == "" {
		kind = api.KindInternal
	}
	return &APIError{Status: resp.StatusCode, Kind: kind, Message: env.Message, Errors: env.Errors}
}
