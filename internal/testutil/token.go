package testutil

import (
	"sync"

	"da-go/internal/da"
)

// StaticTokenSource returns a fixed token state.
type StaticTokenSource struct {
	mu    sync.Mutex
	state da.TokenState
}

var _ da.TokenSource = (*StaticTokenSource)(nil)

// NewStaticTokenSource creates a source that always returns the given token.
func NewStaticTokenSource(token string) *StaticTokenSource {
	return &StaticTokenSource{state: da.TokenState{AccessToken: token}}
}

// NewEmptyTokenSource creates a source representing an unauthenticated user.
func NewEmptyTokenSource() *StaticTokenSource {
	return &StaticTokenSource{}
}

func (s *StaticTokenSource) Token() da.TokenState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Set replaces the token state.
func (s *StaticTokenSource) Set(state da.TokenState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}
