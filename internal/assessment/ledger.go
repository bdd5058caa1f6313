package assessment

// Ledger records the learner's selections by question ID, together with
// the ephemeral skip markers. Absence of an entry means unanswered. All
// operations are total: unknown IDs are simply inserted or ignored.
type Ledger struct {
	answers map[string]string
	skipped map[string]bool
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		answers: make(map[string]string),
		skipped: make(map[string]bool),
	}
}

// LedgerFromMaps restores a ledger from persisted state. Nil maps are
// treated as empty. Skip markers shadowed by an answer are dropped so the
// "an answer supersedes a skip" invariant holds after rehydration too.
func LedgerFromMaps(answers map[string]string, skipped map[string]bool) *Ledger {
	l := NewLedger()
	for id, v := range answers {
		l.answers[id] = v
	}
	for id, v := range skipped {
		if v && !l.IsAnswered(id) {
			l.skipped[id] = true
		}
	}
	return l
}

// Select stores the option's token for the question. Selecting the token
// already stored toggles the question back to unanswered. Any answer
// clears a skip marker on the same question.
func (l *Ledger) Select(questionID, option string) {
	token := OptionToken(option)
	if token == "" {
		return
	}
	if l.answers[questionID] == token {
		delete(l.answers, questionID)
		return
	}
	l.answers[questionID] = token
	delete(l.skipped, questionID)
}

// Clear removes the answer for the question, if any.
func (l *Ledger) Clear(questionID string) {
	delete(l.answers, questionID)
}

// Skip marks the question as explicitly skipped. A skip never overrides
// an existing answer.
func (l *Ledger) Skip(questionID string) {
	if _, ok := l.answers[questionID]; ok {
		return
	}
	l.skipped[questionID] = true
}

// IsAnswered reports whether the question has a stored answer.
func (l *Ledger) IsAnswered(questionID string) bool {
	_, ok := l.answers[questionID]
	return ok
}

// IsSkipped reports whether the question carries a skip marker.
func (l *Ledger) IsSkipped(questionID string) bool {
	return l.skipped[questionID]
}

// Answer returns the stored token for the question and whether one exists.
func (l *Ledger) Answer(questionID string) (string, bool) {
	v, ok := l.answers[questionID]
	return v, ok
}

// AnsweredCount returns the number of answered questions.
func (l *Ledger) AnsweredCount() int {
	return len(l.answers)
}

// Answers returns a copy of the answer map, for persistence and for
// building the analysis request.
func (l *Ledger) Answers() map[string]string {
	out := make(map[string]string, len(l.answers))
	for id, v := range l.answers {
		out[id] = v
	}
	return out
}

// Skipped returns a copy of the skip marker map.
func (l *Ledger) Skipped() map[string]bool {
	out := make(map[string]bool, len(l.skipped))
	for id := range l.skipped {
		out[id] = true
	}
	return out
}
