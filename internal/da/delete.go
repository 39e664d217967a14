package da

import (
	"context"
	"fmt"
	"sync"
)

// Deleter removes a file via the backend. Validation order is fixed:
// authentication first, then identifier validity; neither touches the
// network. The caller decides whether to refresh the collection afterward.
type Deleter struct {
	backend  Backend
	tokens   TokenSource
	notifier Notifier
	logger   Logger

	mu      sync.Mutex
	pending bool
	err     string
}

// NewDeleter creates a Deleter.
func NewDeleter(backend Backend, tokens TokenSource, notifier Notifier, logger Logger) *Deleter {
	if notifier == nil {
		notifier = NewNopNotifier()
	}
	if logger == nil {
		logger = NewNopLogger()
	}
	return &Deleter{backend: backend, tokens: tokens, notifier: notifier, logger: logger}
}

// Delete removes the file with the given id. It returns nil on any
// failure; the reason is available via Err and mirrored to the notifier.
// A success:false payload in a 200 response counts as failure, carrying
// the backend's message.
func (d *Deleter) Delete(ctx context.Context, fileID int64) *DeleteResponse {
	d.begin()
	defer d.finish()

	token := d.tokens.Token().AccessToken
	if token == "" {
		d.fail(MsgNotAuthenticated)
		return nil
	}
	if fileID <= 0 {
		d.fail(MsgInvalidFileID)
		return nil
	}

	resp, apiErr := d.backend.DeleteFile(ctx, token, fileID)
	if apiErr != nil {
		d.fail(apiErr.Detail)
		return nil
	}

	if !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = MsgDeleteFailed
		}
		d.fail(msg)
		return nil
	}

	d.notifier.Success(fmt.Sprintf("File deleted. (ID: %d)", resp.DeletedFileID))
	d.logger.Info("file deleted", "file_id", resp.DeletedFileID)
	return resp
}

// Err returns the failure message of the last delete, or "".
func (d *Deleter) Err() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

// Pending reports whether a delete is in flight.
func (d *Deleter) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Reset clears error and pending state.
func (d *Deleter) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = false
	d.err = ""
}

func (d *Deleter) begin() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = true
	d.err = ""
}

func (d *Deleter) finish() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = false
}

func (d *Deleter) fail(msg string) {
	d.mu.Lock()
	d.err = msg
	d.mu.Unlock()
	d.notifier.Failure(msg)
	d.logger.Warn("delete failed", "reason", msg)
}
