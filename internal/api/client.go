// Package api holds the typed clients for the two external services the
// guidance flow consumes: the assessment/AI backend and the auth/reports
// backend. Both services are black boxes; their responses are validated
// against shallow JSON schemas at this boundary so the rest of the app
// works with typed data only.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// authTokenHeader is the bearer-style header the reports backend expects.
const authTokenHeader = "x-auth-token"

// httpClient is the shared request plumbing for both service clients.
type httpClient struct {
	base string
	hc   *http.Client

	// token supplies the current auth token, empty when unauthenticated.
	// Nil for services that take no auth.
	token func() string

	// onUnauthorized is invoked once per 401 before ErrUnauthorized is
	// returned, so the caller can purge the stored token globally.
	onUnauthorized func()
}

func newHTTPClient(base string, timeout time.Duration) *httpClient {
	return &httpClient{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: timeout},
	}
}

// do sends a request with optional JSON body, checks status, validates
// the response body against schema when given, and decodes it into out.
func (c *httpClient) do(ctx context.Context, method, path string, body, out any, schema *responseSchema) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != nil {
		if t := c.token(); t != "" {
			req.Header.Set(authTokenHeader, t)
		}
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", method, path, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{
			Endpoint: path,
			Status:   resp.StatusCode,
			Message:  errorMessage(raw),
		}
	}

	if out == nil {
		return nil
	}
	if err := validateResponse(schema, raw); err != nil {
		return &MalformedResponseError{Endpoint: path, Content: raw, Err: err}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &MalformedResponseError{Endpoint: path, Content: raw, Err: err}
	}
	return nil
}

// errorMessage pulls a service error string out of a failure body, if the
// body carries one.
func errorMessage(raw []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Message
}
