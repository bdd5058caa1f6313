package api

import (
	"context"
	"net/http"
	"time"
)

// TokenStore is the slice of local storage the reports client needs: it
// reads the token for every call and purges it when the backend answers
// 401.
type TokenStore interface {
	Token() string
	PurgeToken()
}

// ReportsClient talks to the auth/reports backend. Every call attaches
// the stored token; any 401 purges it before the error is surfaced, which
// forces re-authentication app-wide.
type ReportsClient struct {
	c      *httpClient
	tokens TokenStore
}

// NewReportsClient creates a client for the reports service.
func NewReportsClient(baseURL string, timeout time.Duration, tokens TokenStore) *ReportsClient {
	c := newHTTPClient(baseURL, timeout)
	c.token = tokens.Token
	c.onUnauthorized = tokens.PurgeToken
	return &ReportsClient{c: c, tokens: tokens}
}

// Login authenticates and returns the session token. The caller decides
// whether to store it.
func (r *ReportsClient) Login(ctx context.Context, email, password string) (string, error) {
	req := map[string]string{"email": email, "password": password}
	var resp struct {
		Token string `json:"token"`
	}
	if err := r.c.do(ctx, http.MethodPost, "/auth/login", req, &resp, nil); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Register creates an account and returns the session token.
func (r *ReportsClient) Register(ctx context.Context, name, email, password string) (string, error) {
	req := map[string]string{"name": name, "email": email, "password": password}
	var resp struct {
		Token string `json:"token"`
	}
	if err := r.c.do(ctx, http.MethodPost, "/auth/register", req, &resp, nil); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Me fetches the authenticated user's profile for personalization.
func (r *ReportsClient) Me(ctx context.Context) (*Profile, error) {
	var p Profile
	if err := r.c.do(ctx, http.MethodGet, "/auth/me", nil, &p, nil); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateReport persists a finished (or in-flight) assessment as a report.
func (r *ReportsClient) CreateReport(ctx context.Context, report *Report) error {
	return r.c.do(ctx, http.MethodPost, "/reports", report, nil, nil)
}

// MyReports lists the caller's saved reports.
func (r *ReportsClient) MyReports(ctx context.Context) ([]Report, error) {
	var reports []Report
	if err := r.c.do(ctx, http.MethodGet, "/reports/my", nil, &reports, nil); err != nil {
		return nil, err
	}
	return reports, nil
}

// GetReport fetches a single report by ID.
func (r *ReportsClient) GetReport(ctx context.Context, id string) (*Report, error) {
	var report Report
	if err := r.c.do(ctx, http.MethodGet, "/reports/"+id, nil, &report, nil); err != nil {
		return nil, err
	}
	return &report, nil
}

// DeleteReport removes a saved report.
func (r *ReportsClient) DeleteReport(ctx context.Context, id string) error {
	return r.c.do(ctx, http.MethodDelete, "/reports/"+id, nil, nil, nil)
}
