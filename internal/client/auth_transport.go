package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"wasit/internal/transferapi"

	"golang.org/x/sync/singleflight"
)

// TokenStore holds the current token pair.
type TokenStore interface {
	Tokens() (access, refresh string)
	SetTokens(access, refresh string)
}

// MemoryTokenStore is a TokenStore safe for concurrent use.
type MemoryTokenStore struct {
	mu      sync.RWMutex
	access  string
	refresh string
}

func NewMemoryTokenStore(access, refresh string) *MemoryTokenStore {
	return &MemoryTokenStore{access: access, refresh: refresh}
}

func (s *MemoryTokenStore) Tokens() (string, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access, s.refresh
}

func (s *MemoryTokenStore) SetTokens(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access, s.refresh = access, refresh
}

// Refresher trades a refresh token for a new pair.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (*transferapi.TokenPair, error)
}

var errNoRefreshToken = errors.New("no refresh token")

// AuthTransport attaches the bearer token and recovers from a 401 by refreshing
// once and replaying the request. Concurrent 401s share one refresh.
type AuthTransport struct {
	base      http.RoundTripper
	store     TokenStore
	refresher Refresher
	group     singleflight.Group
}

func NewAuthTransport(base http.RoundTripper, store TokenStore, refresher Refresher) *AuthTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &AuthTransport{base: base, store: store, refresher: refresher}
}

func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req, err := replayable(req)
	if err != nil {
		return nil, err
	}

	sent, _ := t.store.Tokens()
	resp, err := t.base.RoundTrip(withToken(req, sent))
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}

	fresh, err := t.freshToken(req.Context(), sent)
	if err != nil {
		// The caller sees the original 401.
		return resp, nil
	}

	retry, err := rewind(req)
	if err != nil {
		return resp, nil
	}
	drain(resp)
	return t.base.RoundTrip(withToken(retry, fresh))
}

// freshToken returns a token newer than sent, refreshing only when no other
// request already rotated it.
func (t *AuthTransport) freshToken(ctx context.Context, sent string) (string, error) {
	if current, _ := t.store.Tokens(); current != "" && current != sent {
		return current, nil
	}

	v, err, _ := t.group.Do("refresh", func() (any, error) {
		current, refresh := t.store.Tokens()
		if current != "" && current != sent {
			return current, nil
		}
		if refresh == "" {
			return "", errNoRefreshToken
		}
		// One caller giving up must not fail the refresh the others wait on.
		pair, err := t.refresher.Refresh(context.WithoutCancel(ctx), refresh)
		if err != nil {
			return "", fmt.Errorf("refresh token: %w", err)
		}
		t.store.SetTokens(pair.AccessToken, pair.RefreshToken)
		return pair.AccessToken, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func withToken(req *http.Request, token string) *http.Request {
	r := req.Clone(req.Context())
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return r
}

// replayable returns req, or a clone of it with a buffered body when the caller
// did not provide GetBody. The caller's request is never modified.
func replayable(req *http.Request) (*http.Request, error) {
	if req.Body == nil || req.Body == http.NoBody || req.GetBody != nil {
		return req, nil
	}
	raw, err := io.ReadAll(req.Body)
	_ = req.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("buffer request body: %w", err)
	}
	r := req.Clone(req.Context())
	r.Body = io.NopCloser(bytes.NewReader(raw))
	r.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(raw)), nil
	}
	return r, nil
}

func rewind(req *http.Request) (*http.Request, error) {
	r := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		r.Body = body
	}
	return r, nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	_ = resp.Body.Close()
}
