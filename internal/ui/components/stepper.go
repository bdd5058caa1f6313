package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/disha/internal/stage"
	"github.com/abhisek/disha/internal/ui/theme"
)

// Stepper renders the stage progress strip shown above transient
// screens. Reachable stages are highlighted; the rest stay dim so the
// user can see which jumps the present data allows.
type Stepper struct {
	Current stage.Stage
	Guards  stage.Guards
}

// View renders the stepper as a single line.
func (s Stepper) View() string {
	labels := map[stage.Stage]string{
		stage.Assessment: "Assessment",
		stage.Results:    "Results",
		stage.Activity:   "Activity",
		stage.Evaluation: "Evaluation",
	}

	parts := make([]string, 0, 4)
	for _, st := range stage.StepperStages() {
		label := labels[st]
		switch {
		case st == s.Current:
			parts = append(parts, lipgloss.NewStyle().
				Foreground(theme.Primary).
				Bold(true).
				Render("● "+label))
		case stage.StepperReachable(st, s.Guards):
			parts = append(parts, lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("○ "+label))
		default:
			parts = append(parts, lipgloss.NewStyle().
				Foreground(theme.TextDim).
				Render("○ "+label))
		}
	}

	sep := lipgloss.NewStyle().Foreground(theme.Border).Render(" ── ")
	return strings.Join(parts, sep)
}
