package da

import "sync"

// ModelSelection holds the analysis model choice and its allow-list. The
// analysis client reads the current model whenever a request omits one.
type ModelSelection struct {
	mu      sync.Mutex
	current string
	allowed []string
	logger  Logger
}

// NewModelSelection creates a selection seeded with current. The allowed
// list should include current; Select rejects anything outside it.
func NewModelSelection(current string, allowed []string, logger Logger) *ModelSelection {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &ModelSelection{
		current: current,
		allowed: append([]string{}, allowed...),
		logger:  logger,
	}
}

// Current returns the model used when a request does not name one.
func (m *ModelSelection) Current() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// List returns the allowed models.
func (m *ModelSelection) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.allowed...)
}

// Select switches the current model. A name outside the allow-list keeps
// the current model and returns false.
func (m *ModelSelection) Select(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.allowed {
		if a == name {
			m.current = name
			return true
		}
	}
	m.logger.Warn("invalid analysis model selected, keeping current",
		"requested", name, "current", m.current)
	return false
}
