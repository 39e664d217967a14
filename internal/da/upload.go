package da

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// UploadResult is returned when all four upload steps succeed.
type UploadResult struct {
	FileID  int64
	FileURL string
	S3Key   string
}

// Uploader performs the upload flow: validate the candidate, request a
// write capability from the backend, transfer the bytes directly to
// storage, then register metadata. Steps are strictly sequential; any
// failure aborts the remainder and nothing partial is reported as success.
type Uploader struct {
	backend  Backend
	transfer Transfer
	tokens   TokenSource
	notifier Notifier
	logger   Logger

	userID      string
	description string

	mu      sync.Mutex
	loading bool
	err     string
}

// NewUploader creates an Uploader. The userID and description are carried
// into the presign and register payloads for every upload.
func NewUploader(backend Backend, transfer Transfer, tokens TokenSource, notifier Notifier, logger Logger, userID, description string) *Uploader {
	if notifier == nil {
		notifier = NewNopNotifier()
	}
	if logger == nil {
		logger = NewNopLogger()
	}
	return &Uploader{
		backend:     backend,
		transfer:    transfer,
		tokens:      tokens,
		notifier:    notifier,
		logger:      logger,
		userID:      userID,
		description: description,
	}
}

// Upload runs the full flow for a single candidate. It returns nil on any
// failure; the reason is available via Err and mirrored to the notifier.
func (u *Uploader) Upload(ctx context.Context, cand *Candidate) *UploadResult {
	u.begin()
	defer u.finish()

	token := u.tokens.Token().AccessToken

	if msg := validatePDFCandidate(cand, token); msg != "" {
		u.fail(msg)
		return nil
	}

	presigned, apiErr := u.backend.PresignUpload(ctx, token, PresignRequest{
		UserID:      u.userID,
		FileName:    cand.Name,
		MimeType:    cand.MimeType,
		FileSize:    cand.Size,
		Description: u.description,
	})
	if apiErr != nil {
		u.fail(detailOr(apiErr, MsgPresignFailed))
		return nil
	}

	if err := u.transfer.Put(ctx, presigned.PresignedURL, cand.MimeType, cand.Content, cand.Size); err != nil {
		u.fail(err.Error())
		return nil
	}

	meta, apiErr := u.backend.RegisterUpload(ctx, token, RegisterRequest{
		UserID:      u.userID,
		FileName:    cand.Name,
		MimeType:    cand.MimeType,
		Key:         presigned.Key,
		FileURL:     presigned.FileURL,
		Size:        cand.Size,
		FileSize:    cand.Size,
		S3Key:       presigned.Key,
		S3FileURL:   presigned.FileURL,
		Description: u.description,
	})
	if apiErr != nil {
		u.fail(detailOr(apiErr, MsgMetadataFailed))
		return nil
	}

	u.notifier.Success(fmt.Sprintf("Upload successful! File ID: %d.", meta.FileID))
	u.logger.Info("file uploaded", "file_id", meta.FileID, "key", presigned.Key)

	return &UploadResult{
		FileID:  meta.FileID,
		FileURL: presigned.FileURL,
		S3Key:   presigned.Key,
	}
}

// Err returns the failure message of the last upload, or "".
func (u *Uploader) Err() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.err
}

// Loading reports whether an upload is in flight.
func (u *Uploader) Loading() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.loading
}

// Reset clears error and loading state.
func (u *Uploader) Reset() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.loading = false
	u.err = ""
}

func (u *Uploader) begin() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.loading = true
	u.err = ""
}

func (u *Uploader) finish() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.loading = false
}

func (u *Uploader) fail(msg string) {
	u.mu.Lock()
	u.err = msg
	u.mu.Unlock()
	u.notifier.Failure(msg)
	u.logger.Warn("upload failed", "reason", msg)
}

// validatePDFCandidate checks the token and the candidate before any
// network call. Each rejection maps to one exact user-facing message.
func validatePDFCandidate(cand *Candidate, token string) string {
	if token == "" {
		return MsgNotAuthenticated
	}
	if cand == nil {
		return MsgNoFileSelected
	}
	if !strings.HasSuffix(strings.ToLower(cand.Name), ".pdf") {
		return MsgOnlyPDFAllowed
	}
	if strings.ToLower(cand.MimeType) != "application/pdf" {
		return MsgPDFMimeOnly
	}
	return ""
}

// detailOr prefers the backend's detail message over the step fallback.
func detailOr(err *APIError, fallback string) string {
	if err != nil && err.Detail != "" {
		return err.Detail
	}
	return fallback
}
