package assessment

import "testing"

func testSet(t *testing.T) *QuestionSet {
	t.Helper()
	qs, err := NewQuestionSet(
		[]string{"personality", "interest"},
		map[string][]Question{
			"personality": {
				{ID: "p1", Text: "P one", Options: []string{"A) Yes", "B) No"}},
				{ID: "p2", Text: "P two", Options: []string{"A) Yes", "B) No"}},
				{ID: "p3", Text: "P three", Options: []string{"A) Yes", "B) No"}},
			},
			"interest": {
				{ID: "i1", Text: "I one", Options: []string{"A) Yes", "B) No"}},
				{ID: "i2", Text: "I two", Options: []string{"A) Yes", "B) No"}},
			},
		},
	)
	if err != nil {
		t.Fatalf("build set: %v", err)
	}
	return qs
}

func TestNewQuestionSetFillsFallbackIDs(t *testing.T) {
	qs, err := NewQuestionSet(
		[]string{"aptitude"},
		map[string][]Question{
			"aptitude": {
				{Text: "no id", Options: []string{"A)"}},
				{ID: "custom", Text: "has id", Options: []string{"A)"}},
			},
		},
	)
	if err != nil {
		t.Fatalf("build set: %v", err)
	}

	if got := qs.Questions["aptitude"][0].ID; got != "aptitude_1" {
		t.Errorf("expected fallback id aptitude_1, got %q", got)
	}
	if got := qs.Questions["aptitude"][1].ID; got != "custom" {
		t.Errorf("expected explicit id kept, got %q", got)
	}
}

func TestNewQuestionSetRejectsDuplicateIDs(t *testing.T) {
	_, err := NewQuestionSet(
		[]string{"a", "b"},
		map[string][]Question{
			"a": {{ID: "dup", Text: "x", Options: []string{"A)"}}},
			"b": {{ID: "dup", Text: "y", Options: []string{"A)"}}},
		},
	)
	if err == nil {
		t.Fatal("expected duplicate id error")
	}
}

func TestNewQuestionSetRejectsEmptyCategory(t *testing.T) {
	_, err := NewQuestionSet([]string{"a"}, map[string][]Question{})
	if err == nil {
		t.Fatal("expected empty category error")
	}
}

func TestNewQuestionSetRejectsOptionlessQuestion(t *testing.T) {
	_, err := NewQuestionSet(
		[]string{"a"},
		map[string][]Question{"a": {{ID: "q", Text: "x"}}},
	)
	if err == nil {
		t.Fatal("expected missing options error")
	}
}

func TestTotalAndEmpty(t *testing.T) {
	qs := testSet(t)
	if qs.Total() != 5 {
		t.Errorf("expected 5 questions, got %d", qs.Total())
	}
	if qs.Empty() {
		t.Error("expected non-empty set")
	}

	var nilSet *QuestionSet
	if !nilSet.Empty() {
		t.Error("expected nil set to be empty")
	}
	if nilSet.Total() != 0 {
		t.Error("expected nil set total 0")
	}
}

func TestCursorNextPreviousInverse(t *testing.T) {
	qs := testSet(t)

	// previous(next(c)) == c for every non-terminal position.
	c := qs.Start()
	for !qs.IsLast(c) {
		n := qs.Next(c)
		if back := qs.Previous(n); back != c {
			t.Fatalf("previous(next(%v)) = %v, want %v", c, back, c)
		}
		c = n
	}
}

func TestCursorBoundaries(t *testing.T) {
	qs := testSet(t)

	first := qs.Start()
	if got := qs.Previous(first); got != first {
		t.Errorf("previous at first question moved to %v", got)
	}

	last := Cursor{Category: "interest", Index: 1}
	if got := qs.Next(last); got != last {
		t.Errorf("next at last question moved to %v", got)
	}
	if !qs.IsLast(last) {
		t.Error("expected IsLast at final question")
	}
}

func TestCursorCrossesCategoryBoundary(t *testing.T) {
	qs := testSet(t)

	endOfFirst := Cursor{Category: "personality", Index: 2}
	got := qs.Next(endOfFirst)
	want := Cursor{Category: "interest", Index: 0}
	if got != want {
		t.Errorf("next across category = %v, want %v", got, want)
	}

	if back := qs.Previous(want); back != endOfFirst {
		t.Errorf("previous across category = %v, want %v", back, endOfFirst)
	}
}
