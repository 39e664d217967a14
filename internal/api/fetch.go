package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"da-go/internal/da"
)

// Fetch performs an authenticated JSON call and returns a result/error
// pair. It never returns a Go error: an empty token short-circuits to a
// 401-shaped APIError with no network call, a non-2xx response carries the
// backend's detail message (or a generic fallback with the real status),
// and transport or decode failures carry the underlying message with a
// synthetic 500. Interactive callers render the APIError inline instead of
// wrapping every call site in error plumbing.
func Fetch[T any](ctx context.Context, c *Client, method, url, token string, body any) (*T, *da.APIError) {
	if token == "" {
		return nil, da.NotAuthenticatedError()
	}

	resp, err := c.send(ctx, method, url, token, body)
	if err != nil {
		return nil, &da.APIError{Detail: err.Error(), StatusCode: 500}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeAPIError(resp)
	}

	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &da.APIError{Detail: err.Error(), StatusCode: 500}
	}
	return &out, nil
}

// FetchStrict is the throwing variant of Fetch: same token and URL
// contract, but failures come back as plain errors. It is meant for
// callers that already sit inside an error boundary, like a CLI RunE.
func FetchStrict[T any](ctx context.Context, c *Client, method, url, token string, body any) (*T, error) {
	if token == "" {
		return nil, errors.New("session not found")
	}

	resp, err := c.send(ctx, method, url, token, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &out, nil
}

// decodeAPIError extracts the backend's detail field from an error body,
// falling back to a generic message with the real status code.
func decodeAPIError(resp *http.Response) *da.APIError {
	out := &da.APIError{
		Detail:     fmt.Sprintf("HTTP error! status: %d", resp.StatusCode),
		StatusCode: resp.StatusCode,
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return out
	}
	var parsed struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &parsed); err == nil && parsed.Detail != "" {
		out.Detail = parsed.Detail
	}
	return out
}

// send issues the request, honoring the client's retry policy for
// transport failures. The body is marshaled once and replayed per attempt.
func (c *Client) send(ctx context.Context, method, url, token string, body any) (*http.Response, error) {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		payload = b
	}

	policy := c.retry.normalized()
	backoff := policy.Backoff
	var lastErr error

	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		req, err := c.newRequest(ctx, method, url, token, payload)
		if err != nil {
			return nil, err
		}

		resp, err := c.http.Do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, lastErr
		}
		if attempt == policy.MaxAttempts {
			break
		}

		c.logger.Warn("retrying request",
			"method", method,
			"url", url,
			"attempt", attempt,
			"max_attempts", policy.MaxAttempts,
			"error", err)

		select {
		case <-ctx.Done():
			return nil, lastErr
		case <-time.After(backoff):
		}
		backoff *= 2
	}

	return nil, lastErr
}

func (c *Client) newRequest(ctx context.Context, method, url, token string, payload []byte) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.idgen != nil {
		req.Header.Set("X-Request-ID", c.idgen.New())
	}
	return req, nil
}
