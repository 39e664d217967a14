package da

import (
	"context"
	"io"
)

// TokenState is a snapshot of the token provider. Loading and Err are
// mutually exclusive terminal-ish states; a later refresh can clear either.
type TokenState struct {
	AccessToken string
	Loading     bool
	Err         string
}

// TokenSource supplies the backend-scoped access token. Only the provider
// behind this interface may mutate token state.
type TokenSource interface {
	// Token returns the current state with no side effects.
	Token() TokenState
}

// Backend is the authenticated surface of the document-analysis API
// consumed by the orchestrators. Implementations must honor the token
// gate: an empty token yields a 401-shaped APIError without any network
// call. A nil response always pairs with a non-nil APIError.
type Backend interface {
	SearchFiles(ctx context.Context, token string) (*FilesSearchResponse, *APIError)
	PresignUpload(ctx context.Context, token string, req PresignRequest) (*PresignResponse, *APIError)
	RegisterUpload(ctx context.Context, token string, req RegisterRequest) (*RegisterResponse, *APIError)
	DeleteFile(ctx context.Context, token string, id int64) (*DeleteResponse, *APIError)
	RequestAnalysis(ctx context.Context, token string, req AnalysisRequest) (*AnalysisResponse, *APIError)
	FetchResult(ctx context.Context, token string, id int64) (*RawAnalysisResult, *APIError)
}

// Transfer moves raw file bytes to the storage target named by a presigned
// URL. Authorization is embedded in the URL, so no bearer token is involved.
type Transfer interface {
	Put(ctx context.Context, presignedURL string, mimeType string, body io.Reader, size int64) error
}
