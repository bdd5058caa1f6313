package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/disha/internal/ui/theme"
)

// OptionList presents the answer options for a single question. Unlike
// a graded quiz there is no correct answer; the chosen option can be
// toggled off again, so the list only tracks a cursor and renders
// whichever option the caller says is currently recorded.
type OptionList struct {
	Question string
	Options  []string
	Cursor   int

	// ChosenIndex is the option currently recorded in the ledger, or
	// -1 when the question is unanswered.
	ChosenIndex int

	// Skipped marks the question as deliberately skipped.
	Skipped bool
}

// NewOptionList creates an option list with the cursor on the first
// option.
func NewOptionList(question string, options []string) OptionList {
	return OptionList{
		Question:    question,
		Options:     options,
		Cursor:      0,
		ChosenIndex: -1,
	}
}

// Init returns nil.
func (o OptionList) Init() tea.Cmd {
	return nil
}

// Update handles cursor movement. Selection itself is the caller's
// decision since it mutates the ledger.
func (o OptionList) Update(msg tea.Msg) (OptionList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if o.Cursor > 0 {
			o.Cursor--
		}
	case "down", "j":
		if o.Cursor < len(o.Options)-1 {
			o.Cursor++
		}
	}

	return o, nil
}

// View renders the question and its options.
func (o OptionList) View() string {
	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	s := questionStyle.Render(o.Question) + "\n\n"

	for i, opt := range o.Options {
		prefix := "  "
		if i == o.Cursor {
			prefix = "▸ "
		}

		marker := "  "
		if i == o.ChosenIndex {
			marker = "● "
		}

		line := fmt.Sprintf("%s%s%s", prefix, marker, opt)

		switch {
		case i == o.ChosenIndex:
			s += theme.Answered.Render(line) + "\n"
		case i == o.Cursor:
			s += theme.Selected.Render(line) + "\n"
		default:
			s += theme.Unselected.Render(line) + "\n"
		}
	}

	if o.Skipped {
		s += "\n" + theme.Skipped.Render("  Skipped")
	}

	return s
}
