package assessment

import "testing"

func TestSelectTogglesSameOption(t *testing.T) {
	l := NewLedger()

	l.Select("q1", "A) Strongly agree")
	if got, ok := l.Answer("q1"); !ok || got != "A)" {
		t.Fatalf("expected answer %q, got %q (ok=%v)", "A)", got, ok)
	}

	// Selecting the same option again deselects.
	l.Select("q1", "A) Strongly agree")
	if l.IsAnswered("q1") {
		t.Error("expected q1 unanswered after toggling the same option")
	}

	// A different option replaces, never toggles.
	l.Select("q1", "A) Strongly agree")
	l.Select("q1", "B) Disagree")
	if got, _ := l.Answer("q1"); got != "B)" {
		t.Errorf("expected answer %q, got %q", "B)", got)
	}
}

func TestSelectStoresFirstToken(t *testing.T) {
	l := NewLedger()
	l.Select("q1", "Often   with extra   spacing")
	if got, _ := l.Answer("q1"); got != "Often" {
		t.Errorf("expected first token %q, got %q", "Often", got)
	}

	// An all-whitespace option is ignored entirely.
	l.Select("q2", "   ")
	if l.IsAnswered("q2") {
		t.Error("expected blank option to record nothing")
	}
}

func TestAnswerClearsSkip(t *testing.T) {
	l := NewLedger()
	l.Skip("q1")
	if !l.IsSkipped("q1") {
		t.Fatal("expected q1 skipped")
	}

	l.Select("q1", "C) Sometimes")
	if l.IsSkipped("q1") {
		t.Error("expected answering to clear the skip marker")
	}
	if !l.IsAnswered("q1") {
		t.Error("expected q1 answered")
	}
}

func TestSkipNeverOverridesAnswer(t *testing.T) {
	l := NewLedger()
	l.Select("q1", "A) Yes")
	l.Skip("q1")

	if l.IsSkipped("q1") {
		t.Error("expected skip to be a no-op on an answered question")
	}
	if got, _ := l.Answer("q1"); got != "A)" {
		t.Errorf("expected answer kept, got %q", got)
	}
}

func TestClearRemovesAnswerOnly(t *testing.T) {
	l := NewLedger()
	l.Select("q1", "A) Yes")
	l.Clear("q1")
	if l.IsAnswered("q1") {
		t.Error("expected q1 cleared")
	}

	// Clearing an unanswered question is a no-op.
	l.Clear("q2")
	if l.AnsweredCount() != 0 {
		t.Errorf("expected empty ledger, got %d answers", l.AnsweredCount())
	}
}

func TestLedgerFromMapsDropsShadowedSkips(t *testing.T) {
	l := LedgerFromMaps(
		map[string]string{"q1": "A)"},
		map[string]bool{"q1": true, "q2": true},
	)

	if l.IsSkipped("q1") {
		t.Error("expected the answered question's skip marker dropped on restore")
	}
	if !l.IsSkipped("q2") {
		t.Error("expected the unanswered skip marker kept")
	}
	if got, _ := l.Answer("q1"); got != "A)" {
		t.Errorf("expected restored answer %q, got %q", "A)", got)
	}
}

func TestAnswersReturnsCopy(t *testing.T) {
	l := NewLedger()
	l.Select("q1", "A) Yes")

	m := l.Answers()
	m["q2"] = "B)"

	if l.IsAnswered("q2") {
		t.Error("mutating the returned map must not affect the ledger")
	}
}
