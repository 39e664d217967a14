package da

import (
	"context"
	"fmt"
	"math"
	"sync"
)

const bytesPerMiB = 1048576

// FileStore caches the user's file collection. Fetches are
// first-writer-exclusive: a second FetchFiles while one is in flight is a
// no-op. Only the store mutates the cached list, and mutation is wholesale
// replacement, never in-place editing.
type FileStore struct {
	backend Backend
	logger  Logger

	mu        sync.Mutex
	files     []File
	loading   bool
	err       string
	lastFetch *bool // nil until a fetch settles
}

// NewFileStore creates an empty store.
func NewFileStore(backend Backend, logger Logger) *FileStore {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &FileStore{backend: backend, logger: logger}
}

// FetchFiles replaces the cached collection from GET /files/search.
// Entering the loading state clears the previous error and fetch outcome.
// On failure of any kind the cached files are left untouched.
func (s *FileStore) FetchFiles(ctx context.Context, token string) {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return
	}
	s.loading = true
	s.err = ""
	s.lastFetch = nil
	s.mu.Unlock()

	resp, apiErr := s.backend.SearchFiles(ctx, token)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if apiErr != nil {
		s.err = apiErr.Detail
		s.logger.Warn("file fetch failed", "detail", apiErr.Detail, "status", apiErr.StatusCode)
		return
	}

	if !resp.Success {
		s.err = MsgFetchFilesFailed
		s.lastFetch = boolPtr(false)
		return
	}

	files, err := s.validateFiles(resp.Results)
	if err != nil {
		s.err = fmt.Sprintf("Failed to fetch files: %v", err)
		s.logger.Warn("file fetch validation failed", "cause", err)
		return
	}

	s.files = files
	s.lastFetch = boolPtr(true)
}

// validateFiles checks required fields and collapses duplicate ids
// (first occurrence wins) so id uniqueness holds in the cached collection.
func (s *FileStore) validateFiles(in []File) ([]File, error) {
	out := make([]File, 0, len(in))
	seen := make(map[int64]bool, len(in))

	for i, f := range in {
		if f.ID <= 0 {
			return nil, fmt.Errorf("record %d: invalid id %d", i, f.ID)
		}
		if f.FileName == "" {
			return nil, fmt.Errorf("record %d: missing file_name", i)
		}
		if f.FilePath == "" {
			return nil, fmt.Errorf("record %d: missing file_path", i)
		}
		if seen[f.ID] {
			s.logger.Warn("duplicate file id in search response", "id", f.ID)
			continue
		}
		seen[f.ID] = true
		out = append(out, f)
	}
	return out, nil
}

// Files returns a copy of the cached collection.
func (s *FileStore) Files() []File {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]File{}, s.files...)
}

// Loading reports whether a fetch is in flight.
func (s *FileStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the failure message of the last fetch, or "".
func (s *FileStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// LastFetchSuccessful reports the outcome of the most recent settled
// fetch; nil means no fetch has settled since the store was created or the
// loading state was last entered.
func (s *FileStore) LastFetchSuccessful() *bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastFetch == nil {
		return nil
	}
	return boolPtr(*s.lastFetch)
}

// Aggregates are derived from the cached collection on demand, never
// stored.
type Aggregates struct {
	TotalSizeMiB    float64
	CompletedCount  int
	ProcessingCount int
	TotalCount      int
}

// Aggregates computes the dashboard counters from the cached files.
func (s *FileStore) Aggregates() Aggregates {
	s.mu.Lock()
	defer s.mu.Unlock()

	var agg Aggregates
	var totalBytes int64
	for _, f := range s.files {
		totalBytes += f.FileSize
		switch f.Status {
		case StatusCompleted:
			agg.CompletedCount++
		case StatusProcessing:
			agg.ProcessingCount++
		}
	}
	agg.TotalCount = len(s.files)
	agg.TotalSizeMiB = math.Round(float64(totalBytes)/bytesPerMiB*100) / 100
	return agg
}

func boolPtr(b bool) *bool { return &b }
