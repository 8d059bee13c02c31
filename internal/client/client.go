// Package client is the Go client of the /api/transfer and /api/auth endpoints.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"wasit/internal/transferapi"

	"go.uber.org/zap"
)

type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTransport keeps the default client but swaps its RoundTripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.http = &http.Client{Transport: rt} }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New builds a client for baseURL, e.g. "http://localhost:3000/api".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(zap.String("component", "transfer_client"))
	return c
}

// NewAuthenticated returns a client whose requests carry the tokens in store and
// refresh them on 401. Refreshes go through a plain client so they never recurse.
func NewAuthenticated(baseURL string, store TokenStore, opts ...Option) *Client {
	plain := New(baseURL, opts...)
	base := plain.http.Transport
	authed := New(baseURL, opts...)
	authed.http = &http.Client{
		Timeout:   plain.http.Timeout,
		Transport: NewAuthTransport(base, store, plain),
	}
	return authed
}

func (c *Client) Methods(ctx context.Context) ([]transferapi.Method, error) {
	var out []transferapi.Method
	if err := c.do(ctx, http.MethodGet, "/transfer/methods", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Quote prices a route. An unavailable route is a normal result, not an error.
func (c *Client) Quote(ctx context.Context, req transferapi.QuoteRequest) (*transferapi.Quote, error) {
	var out transferapi.Quote
	if err := c.do(ctx, http.MethodPost, "/transfer/quote", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Confirm(ctx context.Context, req transferapi.ConfirmRequest) (*transferapi.ConfirmResponse, error) {
	var out transferapi.ConfirmResponse
	if err := c.do(ctx, http.MethodPost, "/transfer/confirm", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Orders(ctx context.Context, q transferapi.OrdersQuery) (*transferapi.OrdersPage, error) {
	params := url.Values{}
	params.Set("phone", q.Phone)
	if q.Status != "" {
		params.Set("status", q.Status)
	}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	var out transferapi.OrdersPage
	if err := c.do(ctx, http.MethodGet, "/transfer/orders?"+params.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*transferapi.TokenPair, error) {
	var out transferapi.TokenPair
	req := transferapi.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh exchanges a refresh token for a new pair.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*transferapi.TokenPair, error) {
	var out transferapi.TokenPair
	req := transferapi.RefreshRequest{RefreshToken: refreshToken}
	if err := c.do(ctx, http.MethodPost, "/auth/refresh", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
