package testutil

import (
	"sync"

	"da-go/internal/da"
)

// SpyNotifier records success and failure notifications.
type SpyNotifier struct {
	mu        sync.Mutex
	Successes []string
	Failures  []string
}

var _ da.Notifier = (*SpyNotifier)(nil)

func NewSpyNotifier() *SpyNotifier {
	return &SpyNotifier{}
}

func (n *SpyNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Successes = append(n.Successes, msg)
}

func (n *SpyNotifier) Failure(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Failures = append(n.Failures, msg)
}

// LastSuccess returns the most recent success message, or "".
func (n *SpyNotifier) LastSuccess() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.Successes) == 0 {
		return ""
	}
	return n.Successes[len(n.Successes)-1]
}

// LastFailure returns the most recent failure message, or "".
func (n *SpyNotifier) LastFailure() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.Failures) == 0 {
		return ""
	}
	return n.Failures[len(n.Failures)-1]
}
