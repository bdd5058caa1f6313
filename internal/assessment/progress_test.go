package assessment

import (
	"fmt"
	"testing"
)

func TestPositionalProgressSharesBarEqually(t *testing.T) {
	qs := testSet(t)

	// Two categories: each owns 50% regardless of question count.
	got := PositionalProgress(qs, Cursor{Category: "personality", Index: 0})
	want := 1.0 / 3.0 * 50
	if diff := got - want; diff > 0.001 || diff < -0.001 {
		t.Errorf("first question progress = %.3f, want %.3f", got, want)
	}

	if got := PositionalProgress(qs, Cursor{Category: "interest", Index: 1}); got != 100 {
		t.Errorf("last question progress = %.3f, want 100", got)
	}
}

func TestPositionalProgressEmptyAndUnknown(t *testing.T) {
	var nilSet *QuestionSet
	if got := PositionalProgress(nilSet, Cursor{}); got != 0 {
		t.Errorf("empty set progress = %.3f, want 0", got)
	}

	qs := testSet(t)
	if got := PositionalProgress(qs, Cursor{Category: "nope", Index: 0}); got != 0 {
		t.Errorf("unknown category progress = %.3f, want 0", got)
	}
}

func TestAnsweredProgressBounds(t *testing.T) {
	qs := testSet(t)
	l := NewLedger()

	if got := AnsweredProgress(qs, l); got != 0 {
		t.Errorf("no answers progress = %d, want 0", got)
	}

	for _, cat := range qs.Categories {
		for _, q := range qs.Questions[cat] {
			l.Select(q.ID, "A) Yes")
		}
	}
	if got := AnsweredProgress(qs, l); got != 100 {
		t.Errorf("all answered progress = %d, want 100", got)
	}

	var nilSet *QuestionSet
	if got := AnsweredProgress(nilSet, NewLedger()); got != 0 {
		t.Errorf("empty set progress = %d, want 0", got)
	}
}

func TestAnsweredProgressRounds(t *testing.T) {
	// 45 of 60 answered: exactly 75%.
	questions := make([]Question, 60)
	for i := range questions {
		questions[i] = Question{
			ID:      fmt.Sprintf("q%d", i),
			Text:    "x",
			Options: []string{"A) Yes"},
		}
	}
	qs, err := NewQuestionSet([]string{"all"}, map[string][]Question{"all": questions})
	if err != nil {
		t.Fatalf("build set: %v", err)
	}

	l := NewLedger()
	for i := 0; i < 45; i++ {
		l.Select(fmt.Sprintf("q%d", i), "A) Yes")
	}
	if got := AnsweredProgress(qs, l); got != 75 {
		t.Errorf("45/60 progress = %d, want 75", got)
	}
}
