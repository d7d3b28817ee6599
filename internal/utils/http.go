package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// StatusError is returned when an upstream answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("non-2xx status %d: %s", e.StatusCode, TruncateString(e.Body, DefaultMaxStringLength))
}

// DoPostSync performs a synchronous HTTP POST request with a JSON body and
// decodes the JSON response into OutputStruct.
//
// Error Handling Strategy:
//   - Context errors (timeout, cancellation) are propagated wrapped
//   - Non-2xx responses return a *StatusError carrying the body
//   - Response body close errors are logged but don't override primary errors
//   - JSON parsing errors include a response preview for debugging
func DoPostSync[OutputStruct any](ctx context.Context, client *http.Client, url string, apiKey string, body any) (*http.Response, *OutputStruct, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, nil, fmt.Errorf("error marshaling body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	res, respBody, err := do(ctx, client, req)
	if err != nil {
		return res, nil, err
	}

	var resStruct OutputStruct
	if err = json.Unmarshal(respBody, &resStruct); err != nil {
		return res, nil, fmt.Errorf("error unmarshaling response body (status %d): %w\nResponse preview: %s", res.StatusCode, err, TruncateString(string(respBody), DefaultMaxStringLength))
	}
	return res, &resStruct, nil
}

// DoGet performs a GET request and returns at most maxBytes of the body
// together with the response Content-Type. A maxBytes of zero or less reads
// the whole body.
func DoGet(ctx context.Context, client *http.Client, url string, userAgent string, maxBytes int64) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", "", fmt.Errorf("error creating request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	req.Header.Set("Accept", "text/html,text/plain;q=0.9,*/*;q=0.5")

	res, body, err := doLimited(ctx, client, req, maxBytes)
	if err != nil {
		return "", "", err
	}
	return string(body), res.Header.Get("Content-Type"), nil
}

func do(ctx context.Context, client *http.Client, req *http.Request) (*http.Response, []byte, error) {
	return doLimited(ctx, client, req, 0)
}

func doLimited(ctx context.Context, client *http.Client, req *http.Request, maxBytes int64) (*http.Response, []byte, error) {
	httpClient := client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	start := time.Now()
	res, err := httpClient.Do(req)
	if err != nil {
		slog.DebugContext(ctx, "http request failed",
			slog.String("method", req.Method),
			slog.String("url", req.URL.String()),
			slog.Duration("duration", time.Since(start)),
			slog.String("error", err.Error()))
		return res, nil, fmt.Errorf("error sending request: %w", err)
	}
	defer func(Body io.ReadCloser) {
		if closeErr := Body.Close(); closeErr != nil {
			slog.Warn("failed to close response body", "error", closeErr.Error(), "url", req.URL.String())
		}
	}(res.Body)

	var reader io.Reader = res.Body
	if maxBytes > 0 {
		reader = io.LimitReader(res.Body, maxBytes)
	}
	respBody, err := io.ReadAll(reader)
	if err != nil {
		return res, nil, fmt.Errorf("error reading response body: %w", err)
	}

	slog.DebugContext(ctx, "http response received",
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()),
		slog.Int("status", res.StatusCode),
		slog.Int("body_size", len(respBody)),
		slog.Duration("duration", time.Since(start)))

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return res, nil, &StatusError{StatusCode: res.StatusCode, Body: string(respBody)}
	}
	return res, respBody, nil
}
