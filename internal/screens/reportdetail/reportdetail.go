// Package reportdetail shows a single saved report in full.
package reportdetail

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/disha/internal/api"
	"github.com/abhisek/disha/internal/export"
	"github.com/abhisek/disha/internal/screen"
	"github.com/abhisek/disha/internal/ui/components"
	"github.com/abhisek/disha/internal/ui/layout"
	"github.com/abhisek/disha/internal/ui/theme"
)

// reportMsg is sent when the report fetch settles.
type reportMsg struct {
	Report *api.Report
	Err    error
}

// exportedMsg is sent when the workbook export settles.
type exportedMsg struct {
	Path string
	Err  error
}

// DetailScreen implements screen.Screen for one report.
type DetailScreen struct {
	reports *api.ReportsClient
	id      string

	report *api.Report
	notice string
	errMsg string
}

var _ screen.Screen = (*DetailScreen)(nil)
var _ screen.KeyHintProvider = (*DetailScreen)(nil)

// New creates the detail screen for the given report ID.
func New(reports *api.ReportsClient, id string) *DetailScreen {
	return &DetailScreen{reports: reports, id: id}
}

func (d *DetailScreen) Init() tea.Cmd {
	return func() tea.Msg {
		report, err := d.reports.GetReport(context.Background(), d.id)
		return reportMsg{Report: report, Err: err}
	}
}

func (d *DetailScreen) Title() string {
	return "Report"
}

func (d *DetailScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "X", Description: "Export"},
		{Key: "Esc", Description: "Back"},
	}
}

func (d *DetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case reportMsg:
		if msg.Err != nil {
			d.errMsg = "Could not load the report."
			return d, nil
		}
		d.report = msg.Report
		return d, nil

	case exportedMsg:
		if msg.Err != nil {
			d.errMsg = "Failed to export the report."
			return d, nil
		}
		d.notice = "Exported to " + msg.Path
		return d, nil

	case tea.KeyMsg:
		if msg.String() == "x" && d.report != nil {
			report := d.report
			return d, func() tea.Msg {
				path := "disha-report-" + report.ID + ".xlsx"
				if err := export.WriteReport(report, path); err != nil {
					return exportedMsg{Err: err}
				}
				return exportedMsg{Path: path}
			}
		}
	}
	return d, nil
}

func (d *DetailScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	if d.errMsg != "" {
		return components.CenterFrame(
			lipgloss.NewStyle().Foreground(theme.Error).Render(d.errMsg), width, height)
	}
	if d.report == nil {
		return components.CenterFrame(theme.Hint.Render("Loading report..."), width, height)
	}

	r := d.report
	var b strings.Builder

	b.WriteString(theme.Title.Width(cw - 6).Render("Assessment Report"))
	b.WriteString("\n\n")
	b.WriteString(keyValue("Grade level", r.Level))
	b.WriteString(keyValue("Created", r.CreatedAt.Format("2 Jan 2006 15:04")))
	b.WriteString(keyValue("Answered questions", fmt.Sprintf("%d", len(r.Answers))))
	if r.SelectedCareer != "" {
		b.WriteString(keyValue("Selected career", r.SelectedCareer))
	}
	if len(r.EvaluationResults) > 0 {
		b.WriteString(keyValue("Activity score", fmt.Sprintf("%.0f%%", r.EvaluationResults[0].Overall.Score)))
	}

	if r.Results != nil {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("Top careers"))
		b.WriteString("\n")
		for _, cat := range api.Categories {
			cr, ok := r.Results.IndividualResults[cat]
			if !ok || len(cr.TopCareers) == 0 {
				continue
			}
			top := cr.TopCareers
			if len(top) > 3 {
				top = top[:3]
			}
			b.WriteString(fmt.Sprintf("  %s: %s\n", cat, strings.Join(top, ", ")))
		}

		if len(r.Results.SubjectRecommendations.Core) > 0 {
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("Recommended subjects"))
			b.WriteString("\n  ")
			b.WriteString(strings.Join(r.Results.SubjectRecommendations.Core, ", "))
			b.WriteString("\n")
		}
	}

	if len(r.Activities) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("Activity"))
		b.WriteString("\n  " + r.Activities[0].Title + "\n")
	}

	if d.notice != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Success).Render(d.notice))
	}

	card := components.Card(b.String(), cw)
	return components.CenterFrame(card, width, height)
}

func keyValue(key, value string) string {
	return lipgloss.NewStyle().Foreground(theme.TextDim).Render(key+": ") +
		lipgloss.NewStyle().Foreground(theme.Text).Render(value) + "\n"
}
