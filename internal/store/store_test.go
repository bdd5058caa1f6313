package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/abhisek/disha/internal/session"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "disha.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestTokenLifecycle(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)

	if got := s.Token(); got != "" {
		t.Errorf("fresh store token = %q, want empty", got)
	}

	if err := s.SetToken(ctx, "jwt-abc"); err != nil {
		t.Fatalf("set token: %v", err)
	}
	if got := s.Token(); got != "jwt-abc" {
		t.Errorf("token = %q, want jwt-abc", got)
	}

	s.PurgeToken()
	if got := s.Token(); got != "" {
		t.Errorf("token after purge = %q, want empty", got)
	}
}

func TestRememberedEmail(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)

	if err := s.SetRememberedEmail(ctx, "a@b.c"); err != nil {
		t.Fatalf("set email: %v", err)
	}
	if got := s.RememberedEmail(ctx); got != "a@b.c" {
		t.Errorf("email = %q, want a@b.c", got)
	}

	// Overwrite wins.
	if err := s.SetRememberedEmail(ctx, "x@y.z"); err != nil {
		t.Fatalf("overwrite email: %v", err)
	}
	if got := s.RememberedEmail(ctx); got != "x@y.z" {
		t.Errorf("email = %q, want x@y.z", got)
	}

	// Empty clears.
	if err := s.SetRememberedEmail(ctx, ""); err != nil {
		t.Fatalf("clear email: %v", err)
	}
	if got := s.RememberedEmail(ctx); got != "" {
		t.Errorf("email after clear = %q, want empty", got)
	}
}

func TestActiveStage(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)

	if got := s.ActiveStage(ctx); got != "" {
		t.Errorf("fresh store stage = %q, want empty", got)
	}
	if err := s.SetActiveStage(ctx, "assessment"); err != nil {
		t.Fatalf("set stage: %v", err)
	}
	if got := s.ActiveStage(ctx); got != "assessment" {
		t.Errorf("stage = %q, want assessment", got)
	}
}

func TestSnapshotSaveLoadClear(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)

	// No snapshot yet.
	got, err := s.LoadCurrent(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != nil {
		t.Fatal("expected nil snapshot on fresh store")
	}

	snap := &session.Snapshot{
		Version:      session.SnapshotVersion,
		AssessmentID: "abc-123",
		Level:        "10",
		Answers:      map[string]string{"p1": "A"},
		Stage:        "assessment",
	}
	if err := s.SaveCurrent(ctx, snap); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err = s.LoadCurrent(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil {
		t.Fatal("expected stored snapshot")
	}
	if got.AssessmentID != "abc-123" || got.Level != "10" || got.Answers["p1"] != "A" {
		t.Errorf("snapshot round-trip lost data: %+v", got)
	}

	if err := s.ClearCurrent(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	got, err = s.LoadCurrent(ctx)
	if err != nil {
		t.Fatalf("load after clear: %v", err)
	}
	if got != nil {
		t.Error("expected nil snapshot after clear")
	}
}

func TestCorruptSnapshotDiscarded(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)

	if err := s.set(ctx, keySnapshot, "{not json"); err != nil {
		t.Fatalf("seed corrupt snapshot: %v", err)
	}

	got, err := s.LoadCurrent(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != nil {
		t.Fatal("expected corrupt snapshot treated as absent")
	}

	// The corrupt row must be gone, not just skipped.
	raw, err := s.get(ctx, keySnapshot)
	if err != nil {
		t.Fatalf("get raw: %v", err)
	}
	if raw != "" {
		t.Errorf("corrupt snapshot still stored: %q", raw)
	}
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)

	if err := s.SetToken(ctx, "tok"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetRememberedEmail(ctx, "a@b.c"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetActiveStage(ctx, "results"); err != nil {
		t.Fatal(err)
	}

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	if s.Token() != "" || s.RememberedEmail(ctx) != "" || s.ActiveStage(ctx) != "" {
		t.Error("expected all local state cleared after reset")
	}
}
