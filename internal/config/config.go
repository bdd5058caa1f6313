// Package config holds client configuration for the two backend
// services, sourced from environment variables with an optional .env
// file.
package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all backend endpoints and shared client settings.
type Config struct {
	// AssessURL is the base URL of the assessment/AI service.
	AssessURL string

	// ReportsURL is the base URL of the auth/reports service,
	// including its /api prefix.
	ReportsURL string

	// Timeout is the maximum duration for a single backend request.
	// Default: 30s. There are no retries; a timed-out call surfaces as
	// a failure the user retries explicitly.
	Timeout time.Duration
}

// DefaultConfig returns a Config with the stock service endpoints.
func DefaultConfig() Config {
	return Config{
		AssessURL:  "http://127.0.0.1:8000",
		ReportsURL: "https://career-guidence-backend.onrender.com/api",
		Timeout:    30 * time.Second,
	}
}

// Load reads an optional .env file and builds a Config from the
// environment, falling back to defaults for unset values.
func Load() Config {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	cfg := DefaultConfig()
	if u := os.Getenv("DISHA_ASSESS_URL"); u != "" {
		cfg.AssessURL = u
	}
	if u := os.Getenv("DISHA_REPORTS_URL"); u != "" {
		cfg.ReportsURL = u
	}
	if t := os.Getenv("DISHA_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	return cfg
}

// Validate checks that both service URLs parse.
func (c Config) Validate() error {
	for name, raw := range map[string]string{
		"DISHA_ASSESS_URL":  c.AssessURL,
		"DISHA_REPORTS_URL": c.ReportsURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s: invalid URL %q", name, raw)
		}
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}
