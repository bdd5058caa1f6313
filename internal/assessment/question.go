package assessment

import (
	"fmt"
	"strings"
)

// Question is a single generated assessment question. ID is unique within
// the whole question set; Options keep the order the service returned.
type Question struct {
	ID      string   `json:"id"`
	Text    string   `json:"question"`
	Options []string `json:"options"`
}

// QuestionSet holds the generated question tree: category names in the
// order the generation response listed them, each with its ordered
// questions. An empty set (no categories) means the assessment has not
// been started.
type QuestionSet struct {
	Categories []string              `json:"categories"`
	Questions  map[string][]Question `json:"questions"`
}

// FallbackID derives the deterministic ID used when the service omits one:
// the category name plus the question's 1-based position.
func FallbackID(category string, index int) string {
	return fmt.Sprintf("%s_%d", category, index+1)
}

// NewQuestionSet builds a QuestionSet from ordered categories, filling in
// fallback IDs and rejecting sets that break the core invariants: every
// category must be non-empty, and no question ID may repeat anywhere in
// the set (a duplicate would alias entries in the answer ledger).
func NewQuestionSet(categories []string, questions map[string][]Question) (*QuestionSet, error) {
	seen := make(map[string]string) // question ID -> category
	qs := &QuestionSet{
		Categories: make([]string, 0, len(categories)),
		Questions:  make(map[string][]Question, len(categories)),
	}

	for _, cat := range categories {
		list := questions[cat]
		if len(list) == 0 {
			return nil, fmt.Errorf("category %q has no questions", cat)
		}
		copied := make([]Question, len(list))
		copy(copied, list)
		for i := range copied {
			if copied[i].ID == "" {
				copied[i].ID = FallbackID(cat, i)
			}
			if prev, dup := seen[copied[i].ID]; dup {
				return nil, fmt.Errorf("duplicate question id %q in categories %q and %q", copied[i].ID, prev, cat)
			}
			seen[copied[i].ID] = cat
			if len(copied[i].Options) == 0 {
				return nil, fmt.Errorf("question %q has no options", copied[i].ID)
			}
		}
		qs.Categories = append(qs.Categories, cat)
		qs.Questions[cat] = copied
	}

	return qs, nil
}

// Empty reports whether the set has no questions at all.
func (qs *QuestionSet) Empty() bool {
	return qs == nil || len(qs.Categories) == 0
}

// Total returns the number of questions across all categories.
func (qs *QuestionSet) Total() int {
	if qs == nil {
		return 0
	}
	n := 0
	for _, cat := range qs.Categories {
		n += len(qs.Questions[cat])
	}
	return n
}

// CategoryIndex returns the position of category in the ordered list,
// or -1 if absent.
func (qs *QuestionSet) CategoryIndex(category string) int {
	for i, c := range qs.Categories {
		if c == category {
			return i
		}
	}
	return -1
}

// At returns the question at the given cursor position.
func (qs *QuestionSet) At(c Cursor) Question {
	return qs.Questions[c.Category][c.Index]
}

// OptionToken extracts the stored answer value from an option's display
// text: its first whitespace-separated token.
func OptionToken(option string) string {
	fields := strings.Fields(option)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
