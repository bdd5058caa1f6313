package assessment

// Cursor identifies the currently displayed question as a (category,
// index) pair. A populated set guarantees 0 <= Index < len(category).
type Cursor struct {
	Category string `json:"category"`
	Index    int    `json:"index"`
}

// Start returns the cursor at the first question of the set.
func (qs *QuestionSet) Start() Cursor {
	if qs.Empty() {
		return Cursor{}
	}
	return Cursor{Category: qs.Categories[0], Index: 0}
}

// Valid reports whether the cursor points at an existing question.
func (qs *QuestionSet) Valid(c Cursor) bool {
	list, ok := qs.Questions[c.Category]
	return ok && c.Index >= 0 && c.Index < len(list)
}

// Next advances within the current category, or to the first question of
// the following category. At the last question overall it is a no-op.
func (qs *QuestionSet) Next(c Cursor) Cursor {
	if c.Index < len(qs.Questions[c.Category])-1 {
		c.Index++
		return c
	}
	if i := qs.CategoryIndex(c.Category); i >= 0 && i < len(qs.Categories)-1 {
		return Cursor{Category: qs.Categories[i+1], Index: 0}
	}
	return c
}

// Previous steps back within the current category, or to the last
// question of the preceding category. At the first question overall it
// is a no-op.
func (qs *QuestionSet) Previous(c Cursor) Cursor {
	if c.Index > 0 {
		c.Index--
		return c
	}
	if i := qs.CategoryIndex(c.Category); i > 0 {
		prev := qs.Categories[i-1]
		return Cursor{Category: prev, Index: len(qs.Questions[prev]) - 1}
	}
	return c
}

// IsFirst reports whether the cursor is at the first question overall.
func (qs *QuestionSet) IsFirst(c Cursor) bool {
	return !qs.Empty() && c.Index == 0 && c.Category == qs.Categories[0]
}

// IsLast reports whether the cursor is at the last question overall.
// The submit control replaces Next exactly here.
func (qs *QuestionSet) IsLast(c Cursor) bool {
	if qs.Empty() {
		return false
	}
	last := qs.Categories[len(qs.Categories)-1]
	return c.Category == last && c.Index == len(qs.Questions[last])-1
}
