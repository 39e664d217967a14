package da

import (
	"context"
	"sync"
)

// DefaultAnalysisTimeoutSec is applied when a request omits timeout_sec.
const DefaultAnalysisTimeoutSec = 300

// AnalysisClient submits evaluation jobs and retrieves normalized results.
// Failures never propagate as Go errors: both operations return nil and
// record an APIError observable alongside a loading flag that is true only
// while a call is in flight.
type AnalysisClient struct {
	backend  Backend
	tokens   TokenSource
	models   *ModelSelection
	notifier Notifier
	logger   Logger

	mu      sync.Mutex
	loading bool
	err     *APIError
}

// NewAnalysisClient creates an AnalysisClient. models supplies the default
// analysis model for requests that omit one.
func NewAnalysisClient(backend Backend, tokens TokenSource, models *ModelSelection, notifier Notifier, logger Logger) *AnalysisClient {
	if notifier == nil {
		notifier = NewNopNotifier()
	}
	if logger == nil {
		logger = NewNopLogger()
	}
	return &AnalysisClient{
		backend:  backend,
		tokens:   tokens,
		models:   models,
		notifier: notifier,
		logger:   logger,
	}
}

// RequestAnalysis submits an evaluation job for an uploaded file. Zero
// TimeoutSec defaults to DefaultAnalysisTimeoutSec; an empty AnalysisModel
// defaults to the current model selection.
func (c *AnalysisClient) RequestAnalysis(ctx context.Context, req AnalysisRequest) *AnalysisResponse {
	c.begin()
	defer c.finish()

	token := c.tokens.Token().AccessToken
	if token == "" {
		c.fail(NotAuthenticatedError())
		return nil
	}

	if req.TimeoutSec == 0 {
		req.TimeoutSec = DefaultAnalysisTimeoutSec
	}
	if req.AnalysisModel == "" && c.models != nil {
		req.AnalysisModel = c.models.Current()
	}

	resp, apiErr := c.backend.RequestAnalysis(ctx, token, req)
	if apiErr != nil {
		c.fail(apiErr)
		return nil
	}

	c.logger.Info("analysis requested",
		"file_path", req.FilePath,
		"contest_type", req.ContestType,
		"model", req.AnalysisModel,
		"sections", resp.SectionsAnalyzed)
	return resp
}

// GetResult fetches the evaluation result for a job and normalizes it into
// the canonical report shape.
func (c *AnalysisClient) GetResult(ctx context.Context, id int64) *AnalysisReport {
	c.begin()
	defer c.finish()

	token := c.tokens.Token().AccessToken
	if token == "" {
		c.fail(NotAuthenticatedError())
		return nil
	}

	raw, apiErr := c.backend.FetchResult(ctx, token, id)
	if apiErr != nil {
		c.fail(apiErr)
		return nil
	}

	return NormalizeAnalysisResult(raw)
}

// Err returns the error recorded by the last failed call, or nil.
func (c *AnalysisClient) Err() *APIError {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Loading reports whether a call is in flight.
func (c *AnalysisClient) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// ResetError clears the recorded error.
func (c *AnalysisClient) ResetError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = nil
}

func (c *AnalysisClient) begin() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = true
	c.err = nil
}

func (c *AnalysisClient) finish() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
}

func (c *AnalysisClient) fail(err *APIError) {
	c.mu.Lock()
	c.err = err
	c.mu.Unlock()
	c.notifier.Failure(err.Detail)
	c.logger.Warn("analysis call failed", "detail", err.Detail, "status", err.StatusCode)
}
