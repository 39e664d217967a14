package api

import "time"

// Policy makes the client's retry stance explicit. The default of a single
// attempt means retry-free by decision, not by omission; callers who want
// retries opt in through configuration. Retries apply to transport failures
// only — an HTTP response, whatever its status, is never replayed.
type Policy struct {
	MaxAttempts int
	Backoff     time.Duration // initial wait between attempts, doubled each time
}

// DefaultPolicy is the retry-free policy.
func DefaultPolicy() Policy {
	return Policy{MaxAttempts: 1}
}

func (p Policy) normalized() Policy {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}
	return p
}
