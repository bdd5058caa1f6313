// Package app wires the stores, API clients, and screens into the root
// Bubble Tea model.
package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/disha/internal/api"
	"github.com/abhisek/disha/internal/router"
	"github.com/abhisek/disha/internal/screen"
	"github.com/abhisek/disha/internal/screens/guidance"
	"github.com/abhisek/disha/internal/screens/login"
	sess "github.com/abhisek/disha/internal/session"
	"github.com/abhisek/disha/internal/store"
	"github.com/abhisek/disha/internal/ui/layout"
	"github.com/abhisek/disha/internal/ui/theme"
)

// Options carries everything the app model needs.
type Options struct {
	Store   *store.Store
	Assess  *api.AssessmentClient
	Reports *api.ReportsClient
}

// quitGuard is implemented by screens that can hold unsaved work.
type quitGuard interface {
	UnsavedWork() bool
}

// profileMsg carries the startup profile fetch result.
type profileMsg struct {
	Profile *api.Profile
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	opts        Options
	router      *router.Router
	user        string
	width       int
	height      int
	quitConfirm bool
}

// newAppModel builds the model, rehydrating a persisted session when a
// token is present.
func newAppModel(opts Options) AppModel {
	m := AppModel{opts: opts}
	if opts.Store.Token() == "" {
		m.router = router.New(login.New(opts.Reports, opts.Store))
	} else {
		m.router = router.New(m.guidanceScreen())
	}
	return m
}

// guidanceScreen builds the main flow screen around the restored (or
// fresh) session.
func (m AppModel) guidanceScreen() screen.Screen {
	return guidance.New(m.opts.Assess, m.opts.Reports, m.opts.Store, m.restoreSession())
}

// restoreSession loads the persisted snapshot when one survives its
// validation; anything else starts clean and clears the stored copy.
func (m AppModel) restoreSession() *sess.Session {
	ctx := context.Background()
	snap, err := m.opts.Store.LoadCurrent(ctx)
	if err != nil || snap == nil {
		return sess.New()
	}
	s, err := sess.Restore(snap)
	if err != nil {
		_ = m.opts.Store.ClearCurrent(ctx)
		return sess.New()
	}
	return s
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.fetchProfile()}
	if active := m.router.Active(); active != nil {
		cmds = append(cmds, active.Init())
	}
	return tea.Batch(cmds...)
}

// fetchProfile loads the display name for the header. Failure leaves
// the header without a name.
func (m AppModel) fetchProfile() tea.Cmd {
	if m.opts.Store.Token() == "" {
		return nil
	}
	reports := m.opts.Reports
	return func() tea.Msg {
		profile, err := reports.Me(context.Background())
		if err != nil {
			return profileMsg{}
		}
		return profileMsg{Profile: profile}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case profileMsg:
		if msg.Profile != nil {
			m.user = msg.Profile.Name
		}
		return m, nil

	case login.DoneMsg:
		if msg.Profile != nil {
			m.user = msg.Profile.Name
		}
		return m, m.router.Replace(m.guidanceScreen())

	case guidance.SignedOutMsg:
		m.user = ""
		return m, m.router.Replace(login.New(m.opts.Reports, m.opts.Store))

	case tea.KeyMsg:
		if m.quitConfirm {
			switch msg.String() {
			case "y", "Y", "ctrl+c":
				return m, tea.Quit
			default:
				m.quitConfirm = false
				return m, nil
			}
		}
		switch msg.String() {
		case "ctrl+c":
			if guard, ok := m.router.Active().(quitGuard); ok && guard.UnsavedWork() {
				m.quitConfirm = true
				return m, nil
			}
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	if m.quitConfirm {
		v.SetContent(renderQuitConfirm(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.user, m.width)

	var footerHints []layout.KeyHint
	if provider, ok := active.(screen.KeyHintProvider); ok {
		footerHints = provider.KeyHints()
	}
	if footerHints == nil {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// renderQuitConfirm asks before abandoning an in-flight assessment.
func renderQuitConfirm(width, height int) string {
	content := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render("Quit with an assessment in progress?") + "\n\n" +
		lipgloss.NewStyle().Foreground(theme.TextDim).
			Render("Your progress is saved and will resume next time.") + "\n\n" +
		lipgloss.NewStyle().Foreground(theme.Success).Render("[Y] Quit") + "\n" +
		lipgloss.NewStyle().Foreground(theme.Primary).Render("[N] Stay")

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
