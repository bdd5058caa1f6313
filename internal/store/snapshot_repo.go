package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/disha/internal/session"
)

// SaveCurrent overwrites the current assessment snapshot.
func (s *Store) SaveCurrent(ctx context.Context, snap *session.Snapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	return s.set(ctx, keySnapshot, string(b))
}

// LoadCurrent returns the stored snapshot, or nil when none exists. A
// snapshot that fails to decode is cleared and treated as absent;
// corruption must never block startup.
func (s *Store) LoadCurrent(ctx context.Context) (*session.Snapshot, error) {
	raw, err := s.get(ctx, keySnapshot)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}

	var snap session.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		_ = s.delete(ctx, keySnapshot)
		return nil, nil
	}
	return &snap, nil
}

// ClearCurrent removes the stored snapshot.
func (s *Store) ClearCurrent(ctx context.Context) error {
	return s.delete(ctx, keySnapshot)
}

var _ session.SnapshotStore = (*Store)(nil)
