package testutil

import (
	"context"
	"io"
	"sync"

	"da-go/internal/da"
)

// TransferCall records one Put invocation.
type TransferCall struct {
	URL      string
	MimeType string
	Size     int64
	Body     []byte
}

// FakeTransfer records storage uploads in memory. Set Err to make Put fail.
type FakeTransfer struct {
	mu    sync.Mutex
	Calls []TransferCall
	Err   error
}

var _ da.Transfer = (*FakeTransfer)(nil)

func NewFakeTransfer() *FakeTransfer {
	return &FakeTransfer{}
}

func (t *FakeTransfer) Put(ctx context.Context, presignedURL string, mimeType string, body io.Reader, size int64) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}

	t.mu.Lock()
	t.Calls = append(t.Calls, TransferCall{
		URL:      presignedURL,
		MimeType: mimeType,
		Size:     size,
		Body:     data,
	})
	err = t.Err
	t.mu.Unlock()

	return err
}

// PutCalls returns the number of recorded uploads.
func (t *FakeTransfer) PutCalls() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.Calls)
}
