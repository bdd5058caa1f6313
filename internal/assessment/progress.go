package assessment

import "math"

// PositionalProgress returns how far through the linear question sequence
// the cursor is, as a percentage clamped to 100. Each category owns an
// equal share of the bar regardless of its length; answered state is not
// considered.
func PositionalProgress(qs *QuestionSet, c Cursor) float64 {
	if qs.Empty() {
		return 0
	}
	catIdx := qs.CategoryIndex(c.Category)
	if catIdx < 0 {
		return 0
	}
	perCategory := 100.0 / float64(len(qs.Categories))
	categoryProgress := float64(catIdx) * perCategory
	questionProgress := float64(c.Index+1) / float64(len(qs.Questions[c.Category])) * perCategory
	return math.Min(100, categoryProgress+questionProgress)
}

// AnsweredProgress returns actual completion: answered questions over the
// total, as a percentage rounded to the nearest integer. 0 for an empty
// set.
func AnsweredProgress(qs *QuestionSet, l *Ledger) int {
	total := qs.Total()
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(l.AnsweredCount()) / float64(total) * 100))
}
