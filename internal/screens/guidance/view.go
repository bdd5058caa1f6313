package guidance

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/disha/internal/assessment"
	"github.com/abhisek/disha/internal/stage"
	"github.com/abhisek/disha/internal/ui/components"
	"github.com/abhisek/disha/internal/ui/theme"
)

// gridColumns is the width of the question navigator grid.
const gridColumns = 10

func (g *GuidanceScreen) View(width, height int) string {
	if g.busy {
		return components.CenterFrame(theme.Hint.Render(g.busyText), width, height)
	}
	if g.errMsg != "" {
		msg := lipgloss.NewStyle().Foreground(theme.Error).Render(g.errMsg) +
			"\n\n" + theme.Hint.Render("Press any key to continue.")
		return components.CenterFrame(msg, width, height)
	}
	if g.sess.Gate.State() == assessment.GatePending {
		return g.renderSubmitConfirm(width, height)
	}

	var body string
	switch g.sess.Stage {
	case stage.Dashboard:
		body = g.renderDashboard(width)
	case stage.Assessment:
		if g.sess.Set.Empty() {
			body = g.renderLevelSelect(width)
		} else if g.gridOpen {
			body = g.renderGrid(width)
		} else {
			body = g.renderQuestion(width)
		}
	case stage.Results:
		body = g.renderResults(width)
	case stage.Activity:
		body = g.renderActivity(width, height)
	case stage.Evaluation:
		body = g.renderEvaluation(width)
	case stage.Reports:
		body = g.renderReports(width)
	}

	if g.sess.Stage.Transient() && !g.sess.Set.Empty() {
		stepper := components.Stepper{Current: g.sess.Stage, Guards: g.sess.Guards()}
		body = lipgloss.PlaceHorizontal(width, lipgloss.Center, stepper.View()) + "\n\n" + body
	}
	if g.notice != "" {
		body += "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Success).Render(g.notice))
	}
	return body
}

func (g *GuidanceScreen) renderDashboard(width int) string {
	cw := components.ContentWidth(width)
	var b strings.Builder

	b.WriteString(theme.Title.Width(cw - 6).Render("Career Guidance"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(cw - 6).Render("Discover careers that fit who you are"))
	b.WriteString("\n\n")
	b.WriteString(g.menu.View())

	if len(g.reportsList) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
			Render(fmt.Sprintf("Recent reports (%d)", len(g.reportsList))))
		b.WriteString("\n")
		show := g.reportsList
		if len(show) > 3 {
			show = show[:3]
		}
		for _, r := range show {
			line := fmt.Sprintf("  %s  grade %s", r.CreatedAt.Format("2 Jan 2006"), r.Level)
			if r.SelectedCareer != "" {
				line += "  " + r.SelectedCareer
			}
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n")
		}
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Card(b.String(), cw))
}

func (g *GuidanceScreen) renderLevelSelect(width int) string {
	cw := components.ContentWidth(width)
	var b strings.Builder

	b.WriteString(theme.Title.Width(cw - 6).Render("Select your grade level"))
	b.WriteString("\n\n")
	for i, level := range levels {
		label := fmt.Sprintf("%sth Grade", level)
		if i == g.levelCursor {
			b.WriteString(theme.Selected.Render("  ▸ "+label) + "\n")
		} else {
			b.WriteString(theme.Unselected.Render("    "+label) + "\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("Enter starts a fresh assessment."))

	return components.CenterFrame(components.Card(b.String(), cw), width, 0)
}

func (g *GuidanceScreen) renderQuestion(width int) string {
	cw := components.ContentWidth(width)
	set := g.sess.Set
	c := g.sess.Cursor

	catIdx := set.CategoryIndex(c.Category)
	header := fmt.Sprintf("%s  ·  question %d of %d  ·  part %d of %d",
		strings.ToUpper(c.Category[:1])+c.Category[1:],
		c.Index+1, len(set.Questions[c.Category]),
		catIdx+1, len(set.Categories))

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(header))
	b.WriteString("\n\n")
	b.WriteString(g.opts.View())
	b.WriteString("\n")

	positional := components.NewProgressBar("Position", assessment.PositionalProgress(set, c)/100, true, cw-8)
	answered := components.NewProgressBar("Answered", float64(assessment.AnsweredProgress(set, g.sess.Ledger))/100, true, cw-8)
	b.WriteString(positional.View())
	b.WriteString("\n")
	b.WriteString(answered.View())

	if set.IsLast(c) {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
			Render("Last question. Press → or Ctrl+S to submit."))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Card(b.String(), cw))
}

func (g *GuidanceScreen) renderGrid(width int) string {
	cw := components.ContentWidth(width)
	set := g.sess.Set

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw - 6).Render("Question navigator"))
	b.WriteString("\n\n")

	idx := 0
	for _, cat := range set.Categories {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(cat))
		b.WriteString("\n")
		for i, q := range set.Questions[cat] {
			cell := fmt.Sprintf("%2d", i+1)
			style := lipgloss.NewStyle().Foreground(theme.TextDim)
			switch {
			case g.sess.Ledger.IsAnswered(q.ID):
				style = lipgloss.NewStyle().Foreground(theme.Success)
			case g.sess.Ledger.IsSkipped(q.ID):
				style = lipgloss.NewStyle().Foreground(theme.Accent)
			}
			if idx == g.gridIdx {
				style = style.Reverse(true).Bold(true)
			}
			b.WriteString(style.Render(cell))
			if (i+1)%gridColumns == 0 {
				b.WriteString("\n")
			} else {
				b.WriteString("  ")
			}
			idx++
		}
		b.WriteString("\n\n")
	}

	legend := lipgloss.NewStyle().Foreground(theme.Success).Render("answered") + "  " +
		lipgloss.NewStyle().Foreground(theme.Accent).Render("skipped") + "  " +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("open")
	b.WriteString(legend)

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Card(b.String(), cw))
}

func (g *GuidanceScreen) renderSubmitConfirm(width, height int) string {
	answered := g.sess.Ledger.AnsweredCount()
	total := g.sess.Set.Total()

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render("Submit an incomplete assessment?"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("You answered %d of %d questions.", answered, total)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Render("[Y] Submit anyway"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Render("[N] Keep answering"))

	return components.CenterFrame(b.String(), width, height)
}

func (g *GuidanceScreen) renderResults(width int) string {
	cw := components.ContentWidth(width)
	result := g.sess.Result
	if result == nil {
		return components.CenterFrame(theme.Hint.Render("No results yet."), width, 0)
	}

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw - 6).Render("Your career matches"))
	b.WriteString("\n\n")

	for i, career := range g.careers {
		score := g.sess.MatchScore(career)
		line := fmt.Sprintf("%s  %d%% match", career, score)
		if i == g.careerIdx {
			b.WriteString(theme.Selected.Render("  ▸ "+line) + "\n")
		} else {
			b.WriteString(theme.Unselected.Render("    "+line) + "\n")
		}
	}

	if traits := result.IndividualResults["personality"].DominantTraits; len(traits) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("Personality traits"))
		b.WriteString("\n")
		for trait, score := range traits {
			b.WriteString(fmt.Sprintf("  %s: %.0f\n", trait, score))
		}
	}

	if core := result.SubjectRecommendations.Core; len(core) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("Recommended subjects"))
		b.WriteString("\n  " + strings.Join(core, ", ") + "\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("Enter tries a hands-on activity for the highlighted career."))

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Card(b.String(), cw))
}

func (g *GuidanceScreen) renderActivity(width, height int) string {
	cw := components.ContentWidth(width)
	if len(g.sess.Activities) == 0 {
		return components.CenterFrame(theme.Hint.Render("No activity available."), width, height)
	}
	act := g.sess.Activities[0]

	g.response.SetWidth(cw - 8)
	g.response.SetHeight(6)

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw - 6).Render(act.Title))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 8).Render(act.Instructions))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("Your response"))
	b.WriteString("\n")
	b.WriteString(g.response.View())

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Card(b.String(), cw))
}

func (g *GuidanceScreen) renderEvaluation(width int) string {
	cw := components.ContentWidth(width)
	ev := g.sess.Evaluation
	if ev == nil {
		return components.CenterFrame(theme.Hint.Render("No evaluation yet."), width, 0)
	}

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw - 6).Render("Activity evaluation"))
	b.WriteString("\n\n")

	fit := "moderate"
	if ev.Overall.Score >= 70 {
		fit = "strong"
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 8).
		Render(fmt.Sprintf("%s looks like a %s fit based on your response.", g.sess.SelectedCareer, fit)))
	b.WriteString("\n\n")

	overall := components.NewProgressBar("Overall", ev.Overall.Score/100, true, cw-8)
	b.WriteString(overall.View())
	b.WriteString("\n")

	for dim, score := range ev.Dimensions {
		bar := components.NewProgressBar(dim, score.Score/100, true, cw-8)
		b.WriteString(bar.View())
		b.WriteString("\n")
	}

	if ev.Overall.Feedback != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw - 8).Render(ev.Overall.Feedback))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("Ctrl+S saves this report. Enter returns to the dashboard."))

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Card(b.String(), cw))
}

func (g *GuidanceScreen) renderReports(width int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw - 6).Render("Saved reports"))
	b.WriteString("\n\n")

	if len(g.reportsList) == 0 {
		b.WriteString(theme.Hint.Render("No reports yet. Finish an assessment and save it."))
	}
	for i, r := range g.reportsList {
		line := fmt.Sprintf("%s  grade %s", r.CreatedAt.Format("2 Jan 2006 15:04"), r.Level)
		if r.SelectedCareer != "" {
			line += "  " + r.SelectedCareer
		}
		if i == g.reportIdx {
			b.WriteString(theme.Selected.Render("  ▸ "+line) + "\n")
		} else {
			b.WriteString(theme.Unselected.Render("    "+line) + "\n")
		}
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Card(b.String(), cw))
}
