package session

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/disha/internal/api"
	"github.com/abhisek/disha/internal/assessment"
	"github.com/abhisek/disha/internal/stage"
)

// SnapshotVersion is the current snapshot schema version. Snapshots with
// a different version are discarded on load rather than migrated.
const SnapshotVersion = 1

// Snapshot is the durable serialized form of a Session, written on every
// relevant change while the session is in a transient stage.
type Snapshot struct {
	Version        int                              `json:"version"`
	AssessmentID   string                           `json:"assessment_id"`
	Level          string                           `json:"level"`
	Categories     []string                         `json:"categories"`
	Questions      map[string][]assessment.Question `json:"questions"`
	Answers        map[string]string                `json:"answers"`
	Skipped        map[string]bool                  `json:"skipped,omitempty"`
	Result         *api.Result                      `json:"result,omitempty"`
	SelectedCareer string                           `json:"selected_career,omitempty"`
	Activities     []api.Activity                   `json:"activities,omitempty"`
	UserResponse   string                           `json:"user_response,omitempty"`
	Evaluation     *api.Evaluation                  `json:"evaluation,omitempty"`
	Cursor         assessment.Cursor                `json:"cursor"`
	Stage          string                           `json:"stage"`
	Timestamp      time.Time                        `json:"timestamp"`
}

// SnapshotStore is the storage port the persistence adapter writes
// through. There is a single current snapshot; writes overwrite it
// (last write wins) and Load returns nil when none exists.
type SnapshotStore interface {
	SaveCurrent(ctx context.Context, snap *Snapshot) error
	LoadCurrent(ctx context.Context) (*Snapshot, error)
	ClearCurrent(ctx context.Context) error
}

// Snapshot captures the session's durable state.
func (s *Session) Snapshot() *Snapshot {
	snap := &Snapshot{
		Version:        SnapshotVersion,
		AssessmentID:   s.ID,
		Level:          s.Level,
		Answers:        s.Ledger.Answers(),
		Skipped:        s.Ledger.Skipped(),
		Result:         s.Result,
		SelectedCareer: s.SelectedCareer,
		Activities:     s.Activities,
		UserResponse:   s.UserResponse,
		Evaluation:     s.Evaluation,
		Cursor:         s.Cursor,
		Stage:          s.Stage.String(),
		Timestamp:      time.Now(),
	}
	if !s.Set.Empty() {
		snap.Categories = s.Set.Categories
		snap.Questions = s.Set.Questions
	}
	return snap
}

// Restore rebuilds a Session from a snapshot, revalidating every
// invariant the live structures rely on. Any violation returns an error;
// callers treat that as "no snapshot" and discard it.
func Restore(snap *Snapshot) (*Session, error) {
	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", snap.Version, SnapshotVersion)
	}
	st, err := stage.Parse(snap.Stage)
	if err != nil {
		return nil, err
	}
	if !st.Transient() {
		return nil, fmt.Errorf("snapshot stage %s holds no session", st)
	}

	s := &Session{
		ID:             snap.AssessmentID,
		Level:          snap.Level,
		Ledger:         assessment.LedgerFromMaps(snap.Answers, snap.Skipped),
		Stage:          st,
		Result:         snap.Result,
		SelectedCareer: snap.SelectedCareer,
		Activities:     snap.Activities,
		UserResponse:   snap.UserResponse,
		Evaluation:     snap.Evaluation,
	}
	if s.ID == "" {
		return nil, fmt.Errorf("snapshot missing assessment id")
	}

	if len(snap.Categories) > 0 {
		qs, err := assessment.NewQuestionSet(snap.Categories, snap.Questions)
		if err != nil {
			return nil, fmt.Errorf("restore question set: %w", err)
		}
		s.Set = qs
		if !qs.Valid(snap.Cursor) {
			return nil, fmt.Errorf("snapshot cursor out of bounds")
		}
		s.Cursor = snap.Cursor
	}

	return s, nil
}

// Sync persists or clears the current snapshot to match the session's
// stage. It runs synchronously on the mutating update, so a snapshot is
// never behind live state. Unauthenticated sessions are never persisted.
func (s *Session) Sync(ctx context.Context, store SnapshotStore, authenticated bool) error {
	if !authenticated || !s.Stage.Transient() {
		return store.ClearCurrent(ctx)
	}
	return store.SaveCurrent(ctx, s.Snapshot())
}
