package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// The durable local keys. These are the only cross-cutting mutable
// shared values; access is last-write-wins with no cross-process
// coordination.
const (
	keyToken           = "token"
	keyRememberedEmail = "remembered_email"
	keyActiveStage     = "active_stage"
	keySnapshot        = "current_assessment"
)

// get returns the value for key, or "" when absent.
func (s *Store) get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.GetContext(ctx, &value, `SELECT value FROM local_state WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

// set upserts the value for key.
func (s *Store) set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO local_state (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// delete removes the key if present.
func (s *Store) delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM local_state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Token returns the stored auth token, or "" when signed out. Errors
// degrade to ""; an unreadable token and a missing one both mean
// re-authentication.
func (s *Store) Token() string {
	v, _ := s.get(context.Background(), keyToken)
	return v
}

// SetToken stores the auth token after a successful login or register.
func (s *Store) SetToken(ctx context.Context, token string) error {
	return s.set(ctx, keyToken, token)
}

// PurgeToken removes the stored token. Called on sign-out and by the
// reports client on any 401.
func (s *Store) PurgeToken() {
	_ = s.delete(context.Background(), keyToken)
}

// RememberedEmail returns the saved login email, if any.
func (s *Store) RememberedEmail(ctx context.Context) string {
	v, _ := s.get(ctx, keyRememberedEmail)
	return v
}

// SetRememberedEmail saves or clears the login email.
func (s *Store) SetRememberedEmail(ctx context.Context, email string) error {
	if email == "" {
		return s.delete(ctx, keyRememberedEmail)
	}
	return s.set(ctx, keyRememberedEmail, email)
}

// ActiveStage returns the persisted stage name, or "" when unset.
func (s *Store) ActiveStage(ctx context.Context) string {
	v, _ := s.get(ctx, keyActiveStage)
	return v
}

// SetActiveStage persists the stage name.
func (s *Store) SetActiveStage(ctx context.Context, name string) error {
	return s.set(ctx, keyActiveStage, name)
}

// Reset deletes all local state: the token, the remembered email, the
// active stage, and the current snapshot.
func (s *Store) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM local_state`); err != nil {
		return fmt.Errorf("reset local state: %w", err)
	}
	return nil
}
