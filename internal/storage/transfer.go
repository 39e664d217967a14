package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"da-go/internal/da"
)

// Doer issues HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPTransfer implements da.Transfer with a single raw PUT to the
// presigned URL. The capability URL carries its own authorization, so no
// bearer token or SDK credentials are involved; this is the whole point of
// the presigned handoff.
type HTTPTransfer struct {
	http   Doer
	logger da.Logger
}

var _ da.Transfer = (*HTTPTransfer)(nil)

// NewHTTPTransfer creates an HTTPTransfer.
func NewHTTPTransfer(httpClient Doer, logger da.Logger) *HTTPTransfer {
	if logger == nil {
		logger = da.NewNopLogger()
	}
	return &HTTPTransfer{http: httpClient, logger: logger}
}

// Put streams body to the presigned URL with the file's MIME type as
// Content-Type. Any non-2xx response is a failure; no retry is attempted
// (the capability is single-use).
func (t *HTTPTransfer) Put(ctx context.Context, presignedURL string, mimeType string, body io.Reader, size int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, presignedURL, body)
	if err != nil {
		return fmt.Errorf("building storage request: %w", err)
	}
	req.Header.Set("Content-Type", mimeType)
	if size > 0 {
		req.ContentLength = size
	}

	resp, err := t.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("Failed to upload file to S3: %s", http.StatusText(resp.StatusCode))
	}

	t.logger.Debug("storage transfer complete", "status", resp.StatusCode, "size", size)
	return nil
}
