package config

import (
	"testing"
	"time"
)

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DISHA_ASSESS_URL", "http://assess.local:9000")
	t.Setenv("DISHA_REPORTS_URL", "http://reports.local/api")
	t.Setenv("DISHA_TIMEOUT", "90s")

	cfg := Load()
	if cfg.AssessURL != "http://assess.local:9000" {
		t.Errorf("AssessURL = %q", cfg.AssessURL)
	}
	if cfg.ReportsURL != "http://reports.local/api" {
		t.Errorf("ReportsURL = %q", cfg.ReportsURL)
	}
	if cfg.Timeout != 90*time.Second {
		t.Errorf("Timeout = %v, want 90s", cfg.Timeout)
	}
}

func TestLoadIgnoresBadTimeout(t *testing.T) {
	t.Setenv("DISHA_TIMEOUT", "soon")
	if cfg := Load(); cfg.Timeout != DefaultConfig().Timeout {
		t.Errorf("Timeout = %v, want default", cfg.Timeout)
	}

	t.Setenv("DISHA_TIMEOUT", "-5s")
	if cfg := Load(); cfg.Timeout != DefaultConfig().Timeout {
		t.Errorf("negative timeout accepted: %v", cfg.Timeout)
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}

	bad := DefaultConfig()
	bad.AssessURL = "not a url"
	if err := bad.Validate(); err == nil {
		t.Error("expected invalid assess URL rejected")
	}

	noTimeout := DefaultConfig()
	noTimeout.Timeout = 0
	if err := noTimeout.Validate(); err == nil {
		t.Error("expected zero timeout rejected")
	}
}
