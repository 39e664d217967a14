package api

import (
	"context"
	"net/http"

	"da-go/internal/da"
)

// Doer issues HTTP requests. *http.Client satisfies it; tests substitute
// a stub.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client implements da.Backend over HTTP with bearer-token authorization
// and JSON bodies.
type Client struct {
	http      Doer
	endpoints Endpoints
	retry     Policy
	idgen     da.IDGenerator
	logger    da.Logger
}

var _ da.Backend = (*Client)(nil)

// NewClient creates a Client. A nil idgen skips X-Request-ID headers.
func NewClient(httpClient Doer, endpoints Endpoints, retry Policy, idgen da.IDGenerator, logger da.Logger) *Client {
	if logger == nil {
		logger = da.NewNopLogger()
	}
	return &Client{
		http:      httpClient,
		endpoints: endpoints,
		retry:     retry,
		idgen:     idgen,
		logger:    logger,
	}
}

func (c *Client) SearchFiles(ctx context.Context, token string) (*da.FilesSearchResponse, *da.APIError) {
	return Fetch[da.FilesSearchResponse](ctx, c, http.MethodGet, c.endpoints.FilesSearch(), token, nil)
}

func (c *Client) PresignUpload(ctx context.Context, token string, req da.PresignRequest) (*da.PresignResponse, *da.APIError) {
	return Fetch[da.PresignResponse](ctx, c, http.MethodPost, c.endpoints.FilesUpload(), token, req)
}

func (c *Client) RegisterUpload(ctx context.Context, token string, req da.RegisterRequest) (*da.RegisterResponse, *da.APIError) {
	return Fetch[da.RegisterResponse](ctx, c, http.MethodPost, c.endpoints.FilesUploadMetadata(), token, req)
}

func (c *Client) DeleteFile(ctx context.Context, token string, id int64) (*da.DeleteResponse, *da.APIError) {
	return Fetch[da.DeleteResponse](ctx, c, http.MethodDelete, c.endpoints.FileDelete(id), token, nil)
}

func (c *Client) RequestAnalysis(ctx context.Context, token string, req da.AnalysisRequest) (*da.AnalysisResponse, *da.APIError) {
	return Fetch[da.AnalysisResponse](ctx, c, http.MethodPost, c.endpoints.EvaluationRequest(), token, req)
}

func (c *Client) FetchResult(ctx context.Context, token string, id int64) (*da.RawAnalysisResult, *da.APIError) {
	return Fetch[da.RawAnalysisResult](ctx, c, http.MethodGet, c.endpoints.EvaluationResult(id), token, nil)
}

// Per-dimension detail reports use the strict variant; the caller is the
// error boundary.

func (c *Client) MarketDetail(ctx context.Context, token string, id int64) (*da.MarketAnalysis, error) {
	return FetchStrict[da.MarketAnalysis](ctx, c, http.MethodGet, c.endpoints.EvaluationDetail("market", id), token, nil)
}

func (c *Client) FinancialDetail(ctx context.Context, token string, id int64) (*da.FinancialAnalysis, error) {
	return FetchStrict[da.FinancialAnalysis](ctx, c, http.MethodGet, c.endpoints.EvaluationDetail("financial", id), token, nil)
}

func (c *Client) TechnicalDetail(ctx context.Context, token string, id int64) (*da.TechnicalAnalysis, error) {
	return FetchStrict[da.TechnicalAnalysis](ctx, c, http.MethodGet, c.endpoints.EvaluationDetail("technical", id), token, nil)
}

func (c *Client) RiskDetail(ctx context.Context, token string, id int64) (*da.RiskAnalysis, error) {
	return FetchStrict[da.RiskAnalysis](ctx, c, http.MethodGet, c.endpoints.EvaluationDetail("risk", id), token, nil)
}
