package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"sync"

	"da-go/internal/da"
)

// Doer issues HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Provider maintains the backend-scoped access token derived from the
// upstream identity session. It is the only component allowed to mutate
// token state. Concurrent Refresh calls collapse into one in-flight
// request: late callers wait for the winner's outcome instead of issuing
// their own.
type Provider struct {
	tokenURL string
	http     Doer
	logger   da.Logger

	mu         sync.Mutex
	credential string // upstream identity credential; empty means unauthenticated
	token      string
	loading    bool
	err        string
	inflight   chan struct{} // closed when the current refresh settles
	epoch      uint64        // bumped on hard reset so stale refreshes discard their result
}

var _ da.TokenSource = (*Provider)(nil)

// NewProvider creates a Provider that exchanges the identity credential
// for a backend token at tokenURL.
func NewProvider(tokenURL string, httpClient Doer, logger da.Logger) *Provider {
	if logger == nil {
		logger = da.NewNopLogger()
	}
	return &Provider{
		tokenURL: tokenURL,
		http:     httpClient,
		logger:   logger,
	}
}

// Token returns the current state with no side effects.
func (p *Provider) Token() da.TokenState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return da.TokenState{
		AccessToken: p.token,
		Loading:     p.loading,
		Err:         p.err,
	}
}

// SetSession records an upstream session transition. Becoming
// authenticated triggers a refresh, but only when no token is present and
// none is being fetched. Becoming unauthenticated is a hard reset: token,
// loading, and error state all return to empty immediately.
func (p *Provider) SetSession(ctx context.Context, authenticated bool, credential string) error {
	p.mu.Lock()
	if !authenticated {
		p.credential = ""
		p.token = ""
		p.err = ""
		p.loading = false
		p.inflight = nil
		p.epoch++
		p.mu.Unlock()
		p.logger.Debug("session ended, token state reset")
		return nil
	}

	p.credential = credential
	needRefresh := p.token == "" && p.inflight == nil
	p.mu.Unlock()

	if needRefresh {
		return p.Refresh(ctx)
	}
	return nil
}

// Refresh fetches a backend token using the identity credential. On
// success the token is set; on failure the token is cleared and the error
// recorded. A Refresh that finds one already in flight waits for it and
// returns its outcome.
func (p *Provider) Refresh(ctx context.Context) error {
	p.mu.Lock()

	if p.credential == "" {
		p.token = ""
		p.err = "no active identity session"
		p.mu.Unlock()
		return errors.New("no active identity session")
	}

	if p.inflight != nil {
		ch := p.inflight
		p.mu.Unlock()
		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.err != "" {
			return errors.New(p.err)
		}
		return nil
	}

	ch := make(chan struct{})
	p.inflight = ch
	p.loading = true
	p.err = ""
	cred := p.credential
	epoch := p.epoch
	p.mu.Unlock()

	token, err := p.fetchToken(ctx, cred)

	p.mu.Lock()
	defer p.mu.Unlock()
	defer close(ch)

	if p.epoch != epoch {
		// Session was reset while the fetch was in flight; discard.
		return err
	}

	p.loading = false
	p.inflight = nil

	if err != nil {
		p.token = ""
		p.err = err.Error()
		p.logger.Warn("token refresh failed", "error", err)
		return err
	}

	p.token = token
	p.logger.Debug("backend token refreshed")
	return nil
}

// fetchToken performs the token-issuing call and validates the payload.
func (p *Provider) fetchToken(ctx context.Context, credential string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.tokenURL, nil)
	if err != nil {
		return "", fmt.Errorf("building token request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+credential)

	resp, err := p.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching backend token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("failed to fetch backend token: %d %s",
			resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	var payload struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("invalid token response: %w", err)
	}
	if payload.Token == "" {
		return "", errors.New("invalid token response: missing token")
	}
	return payload.Token, nil
}
