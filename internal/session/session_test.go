package session

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/abhisek/disha/internal/api"
	"github.com/abhisek/disha/internal/assessment"
	"github.com/abhisek/disha/internal/stage"
)

func testSet(t *testing.T) *assessment.QuestionSet {
	t.Helper()
	qs, err := assessment.NewQuestionSet(
		[]string{"personality"},
		map[string][]assessment.Question{
			"personality": {
				{ID: "p1", Text: "one", Options: []string{"A Yes", "B No"}},
				{ID: "p2", Text: "two", Options: []string{"A Yes", "B No"}},
				{ID: "p3", Text: "three", Options: []string{"A Yes", "B No"}},
			},
		},
	)
	if err != nil {
		t.Fatalf("build set: %v", err)
	}
	return qs
}

// startedSession is a session that has begun an assessment and loaded
// questions.
func startedSession(t *testing.T) *Session {
	t.Helper()
	s := New()
	if err := s.StartAssessment(); err != nil {
		t.Fatalf("start assessment: %v", err)
	}
	s.Level = "10"
	s.LoadQuestions(testSet(t))
	return s
}

// memStore is an in-memory SnapshotStore.
type memStore struct {
	snap *Snapshot
}

func (m *memStore) SaveCurrent(_ context.Context, snap *Snapshot) error {
	m.snap = snap
	return nil
}

func (m *memStore) LoadCurrent(context.Context) (*Snapshot, error) {
	return m.snap, nil
}

func (m *memStore) ClearCurrent(context.Context) error {
	m.snap = nil
	return nil
}

func TestStartAssessmentResetsEverything(t *testing.T) {
	s := startedSession(t)
	s.SelectAnswer("A Yes")
	firstID := s.ID

	s.GoDashboard()
	if err := s.StartAssessment(); err != nil {
		t.Fatalf("restart: %v", err)
	}

	if s.ID == firstID {
		t.Error("expected a fresh assessment id")
	}
	if s.Level != "" || !s.Set.Empty() || s.Ledger.AnsweredCount() != 0 {
		t.Error("expected all assessment sub-state reset")
	}
	if s.Stage != stage.Assessment {
		t.Errorf("expected assessment stage, got %v", s.Stage)
	}
}

func TestSelectAnswerToggleThroughSession(t *testing.T) {
	s := startedSession(t)

	s.SelectAnswer("A Yes")
	if !s.Ledger.IsAnswered("p1") {
		t.Fatal("expected p1 answered")
	}
	s.SelectAnswer("A Yes")
	if s.Ledger.IsAnswered("p1") {
		t.Error("expected p1 toggled off")
	}
}

func TestSkipCurrentAdvances(t *testing.T) {
	s := startedSession(t)

	s.SkipCurrent()
	if !s.Ledger.IsSkipped("p1") {
		t.Error("expected p1 skipped")
	}
	if s.Cursor.Index != 1 {
		t.Errorf("expected cursor advanced to index 1, got %d", s.Cursor.Index)
	}
}

func TestAnalysisRequestOmitsUnanswered(t *testing.T) {
	s := startedSession(t)
	s.SelectAnswer("A Yes") // p1
	s.Next()
	s.Next()
	s.SelectAnswer("B No") // p3

	req := s.AnalysisRequest()
	if req.UserID != s.ID {
		t.Errorf("expected user id %q, got %q", s.ID, req.UserID)
	}

	got := req.Responses["personality"]
	if len(got) != 2 {
		t.Fatalf("expected 2 responses, got %d", len(got))
	}
	if got["p1"] != "A" || got["p3"] != "B" {
		t.Errorf("unexpected responses: %v", got)
	}
	if _, ok := got["p2"]; ok {
		t.Error("unanswered p2 must be omitted")
	}
}

func TestAnalysisRequestWireShape(t *testing.T) {
	s := startedSession(t)
	s.SelectAnswer("A Yes")

	b, err := json.Marshal(s.AnalysisRequest())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var wire map[string]json.RawMessage
	if err := json.Unmarshal(b, &wire); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, key := range []string{"user_id", "personality_responses", "aptitude_scores"} {
		if _, ok := wire[key]; !ok {
			t.Errorf("missing wire key %q", key)
		}
	}

	var scores map[string]float64
	if err := json.Unmarshal(wire["aptitude_scores"], &scores); err != nil {
		t.Fatalf("decode aptitude_scores: %v", err)
	}
	for _, k := range api.AptitudeScoreKeys {
		if v, ok := scores[k]; !ok || v != 0 {
			t.Errorf("expected %s = 0, got %v (ok=%v)", k, v, ok)
		}
	}
}

func TestApplyResultGuardsStage(t *testing.T) {
	s := startedSession(t)
	r := &api.Result{IndividualResults: map[string]api.CategoryResult{}}

	if err := s.ApplyResult(r); err != nil {
		t.Fatalf("apply result: %v", err)
	}
	if s.Stage != stage.Results {
		t.Errorf("expected results stage, got %v", s.Stage)
	}

	// Applying again from results is illegal and must not clobber state.
	if err := s.ApplyResult(r); err == nil {
		t.Error("expected error applying result outside assessment")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := startedSession(t)
	s.SelectAnswer("A Yes")
	s.Next()

	snap := s.Snapshot()
	if snap.Version != SnapshotVersion {
		t.Fatalf("expected version %d, got %d", SnapshotVersion, snap.Version)
	}

	// Survive serialization too, as the store would do it.
	b, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}
	var decoded Snapshot
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}

	restored, err := Restore(&decoded)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}

	if restored.ID != s.ID || restored.Level != "10" {
		t.Errorf("identity lost: id=%q level=%q", restored.ID, restored.Level)
	}
	if restored.Stage != stage.Assessment {
		t.Errorf("expected assessment stage, got %v", restored.Stage)
	}
	want := assessment.Cursor{Category: "personality", Index: 1}
	if restored.Cursor != want {
		t.Errorf("cursor = %v, want %v", restored.Cursor, want)
	}
	if got, _ := restored.Ledger.Answer("p1"); got != "A" {
		t.Errorf("expected restored answer A, got %q", got)
	}
	if restored.Set.Total() != 3 {
		t.Errorf("expected 3 restored questions, got %d", restored.Set.Total())
	}
}

func TestRestoreRejectsBadSnapshots(t *testing.T) {
	s := startedSession(t)

	wrongVersion := s.Snapshot()
	wrongVersion.Version = SnapshotVersion + 1
	if _, err := Restore(wrongVersion); err == nil {
		t.Error("expected version mismatch rejection")
	}

	nonTransient := s.Snapshot()
	nonTransient.Stage = stage.Dashboard.String()
	if _, err := Restore(nonTransient); err == nil {
		t.Error("expected non-transient stage rejection")
	}

	badCursor := s.Snapshot()
	badCursor.Cursor = assessment.Cursor{Category: "personality", Index: 99}
	if _, err := Restore(badCursor); err == nil {
		t.Error("expected out-of-bounds cursor rejection")
	}

	noID := s.Snapshot()
	noID.AssessmentID = ""
	if _, err := Restore(noID); err == nil {
		t.Error("expected missing id rejection")
	}
}

func TestSyncPersistsOnlyTransientAuthenticated(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	s := startedSession(t)

	if err := s.Sync(ctx, store, true); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if store.snap == nil {
		t.Fatal("expected snapshot saved while in assessment")
	}

	// Returning to the dashboard clears the stored snapshot.
	s.GoDashboard()
	if err := s.Sync(ctx, store, true); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if store.snap != nil {
		t.Error("expected snapshot cleared on dashboard")
	}

	// An unauthenticated session is never persisted.
	s2 := startedSession(t)
	if err := s2.Sync(ctx, store, false); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if store.snap != nil {
		t.Error("expected no snapshot for unauthenticated session")
	}
}

func TestMatchScore(t *testing.T) {
	s := New()
	s.Result = &api.Result{
		IndividualResults: map[string]api.CategoryResult{
			"personality": {TopCareers: []string{"Engineer", "Doctor"}},
			"orientation": {TopCareers: []string{"Engineer"}},
			"interest":    {TopCareers: []string{"Artist", "Engineer"}},
			"aptitude":    {TopCareers: []string{"Doctor"}},
		},
	}

	// Engineer: 2/2*25 + 1/1*25 + 1/2*25 + 0 = 62.5, rounds to 63.
	if got := s.MatchScore("Engineer"); got != 63 {
		t.Errorf("Engineer score = %d, want 63", got)
	}
	// Doctor: 1/2*25 + 0 + 0 + 1/1*25 = 37.5, rounds to 38.
	if got := s.MatchScore("Doctor"); got != 38 {
		t.Errorf("Doctor score = %d, want 38", got)
	}
	if got := s.MatchScore("Pilot"); got != 0 {
		t.Errorf("unlisted career score = %d, want 0", got)
	}
}

func TestJumpToStageHonorsDisplayGuard(t *testing.T) {
	s := startedSession(t)

	if s.JumpToStage(stage.Results) {
		t.Error("expected results jump rejected without a result")
	}
	s.Result = &api.Result{}
	if !s.JumpToStage(stage.Results) {
		t.Error("expected results jump allowed with a result")
	}
	if s.Stage != stage.Results {
		t.Errorf("expected results stage, got %v", s.Stage)
	}
}
