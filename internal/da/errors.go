package da

import "fmt"

// APIError is the machine-readable failure shape shared by every
// non-throwing operation: a human-readable detail plus the HTTP status
// code (synthetic for failures that never reached the network).
type APIError struct {
	Detail     string `json:"detail"`
	StatusCode int    `json:"status_code"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Detail, e.StatusCode)
}

// NotAuthenticatedError returns the 401-shaped error used whenever an
// operation is invoked without a token. It must be produced before any
// network call is attempted.
func NotAuthenticatedError() *APIError {
	return &APIError{Detail: MsgNotAuthenticated, StatusCode: 401}
}

// User-facing messages. Orchestrators surface these verbatim so the
// notification a user sees and the error a caller inspects never diverge.
const (
	MsgNotAuthenticated = "Not authenticated."
	MsgNoFileSelected   = "No file selected."
	MsgOnlyPDFAllowed   = "Only PDF files are allowed."
	MsgPDFMimeOnly      = "'application/pdf' MIME type only is allowed."
	MsgInvalidFileID    = "Invalid file ID."
	MsgPresignFailed    = "Failed to get presigned URL"
	MsgMetadataFailed   = "Failed to save file metadata"
	MsgFetchFilesFailed = "Failed to fetch files: API reported failure."
	MsgDeleteFailed     = "Failed to delete file."
)
