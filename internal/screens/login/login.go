// Package login implements the sign-in / registration screen shown
// whenever no valid auth token is stored.
package login

import (
	"context"
	"errors"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/disha/internal/api"
	"github.com/abhisek/disha/internal/screen"
	"github.com/abhisek/disha/internal/store"
	"github.com/abhisek/disha/internal/ui/components"
	"github.com/abhisek/disha/internal/ui/layout"
	"github.com/abhisek/disha/internal/ui/theme"
)

// DoneMsg is emitted after a successful login or registration. The app
// model swaps in the guidance screen when it sees this.
type DoneMsg struct {
	Profile *api.Profile
}

// authDoneMsg carries the outcome of the async auth call.
type authDoneMsg struct {
	Profile *api.Profile
	Err     error
}

type mode int

const (
	modeLogin mode = iota
	modeRegister
)

const (
	fieldName = iota
	fieldEmail
	fieldPassword
)

// LoginScreen implements screen.Screen for authentication.
type LoginScreen struct {
	reports *api.ReportsClient
	st      *store.Store

	mode   mode
	focus  int
	name   components.TextInput
	email  components.TextInput
	pass   components.TextInput
	busy   bool
	errMsg string
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates the login screen, pre-filling the remembered email.
func New(reports *api.ReportsClient, st *store.Store) *LoginScreen {
	email := components.NewTextInput("you@example.com", false, 64)
	if remembered := st.RememberedEmail(context.Background()); remembered != "" {
		email.Model.SetValue(remembered)
	}

	pass := components.NewTextInput("password", false, 64)
	pass.Model.EchoMode = textinput.EchoPassword
	pass.Model.Blur()

	name := components.NewTextInput("Your name", false, 64)
	name.Model.Blur()

	return &LoginScreen{
		reports: reports,
		st:      st,
		focus:   fieldEmail,
		name:    name,
		email:   email,
		pass:    pass,
	}
}

func (l *LoginScreen) Init() tea.Cmd {
	return l.email.Init()
}

func (l *LoginScreen) Title() string {
	if l.mode == modeRegister {
		return "Create account"
	}
	return "Sign in"
}

func (l *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Ctrl+R", Description: "Login/Register"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (l *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case authDoneMsg:
		l.busy = false
		if msg.Err != nil {
			l.errMsg = authErrorText(msg.Err)
			return l, nil
		}
		return l, func() tea.Msg { return DoneMsg{Profile: msg.Profile} }

	case tea.KeyMsg:
		if l.busy {
			return l, nil
		}
		switch msg.String() {
		case "tab", "shift+tab", "down", "up":
			return l, l.cycleFocus(msg.String() == "shift+tab" || msg.String() == "up")
		case "enter":
			return l.submit()
		case "ctrl+r":
			l.toggleMode()
			return l, nil
		}
	}

	return l, l.updateFocused(msg)
}

// cycleFocus moves focus across the visible fields.
func (l *LoginScreen) cycleFocus(backwards bool) tea.Cmd {
	fields := []int{fieldEmail, fieldPassword}
	if l.mode == modeRegister {
		fields = []int{fieldName, fieldEmail, fieldPassword}
	}

	pos := 0
	for i, f := range fields {
		if f == l.focus {
			pos = i
			break
		}
	}
	if backwards {
		pos = (pos - 1 + len(fields)) % len(fields)
	} else {
		pos = (pos + 1) % len(fields)
	}
	l.focus = fields[pos]

	l.name.Model.Blur()
	l.email.Model.Blur()
	l.pass.Model.Blur()
	switch l.focus {
	case fieldName:
		return l.name.Model.Focus()
	case fieldEmail:
		return l.email.Model.Focus()
	default:
		return l.pass.Model.Focus()
	}
}

func (l *LoginScreen) toggleMode() {
	if l.mode == modeLogin {
		l.mode = modeRegister
	} else {
		l.mode = modeLogin
		if l.focus == fieldName {
			l.focus = fieldEmail
		}
	}
	l.errMsg = ""
}

func (l *LoginScreen) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch l.focus {
	case fieldName:
		l.name, cmd = l.name.Update(msg)
	case fieldEmail:
		l.email, cmd = l.email.Update(msg)
	default:
		l.pass, cmd = l.pass.Update(msg)
	}
	return cmd
}

func (l *LoginScreen) submit() (screen.Screen, tea.Cmd) {
	name := strings.TrimSpace(l.name.Value())
	email := strings.TrimSpace(l.email.Value())
	password := l.pass.Value()

	if email == "" || password == "" {
		l.errMsg = "Email and password are required."
		return l, nil
	}
	if l.mode == modeRegister && name == "" {
		l.errMsg = "Name is required to register."
		return l, nil
	}

	l.busy = true
	l.errMsg = ""
	register := l.mode == modeRegister

	return l, func() tea.Msg {
		ctx := context.Background()

		var token string
		var err error
		if register {
			token, err = l.reports.Register(ctx, name, email, password)
		} else {
			token, err = l.reports.Login(ctx, email, password)
		}
		if err != nil {
			return authDoneMsg{Err: err}
		}

		if err := l.st.SetToken(ctx, token); err != nil {
			return authDoneMsg{Err: err}
		}
		_ = l.st.SetRememberedEmail(ctx, email)

		// Profile fetch is best-effort; the header just goes without a
		// name when it fails.
		profile, _ := l.reports.Me(ctx)
		return authDoneMsg{Profile: profile}
	}
}

func (l *LoginScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	title := "Sign in to Disha"
	if l.mode == modeRegister {
		title = "Create your Disha account"
	}
	b.WriteString(theme.Title.Width(cw - 6).Render(title))
	b.WriteString("\n\n")

	if l.mode == modeRegister {
		b.WriteString(fieldView("Name", l.name, l.focus == fieldName))
		b.WriteString("\n")
	}
	b.WriteString(fieldView("Email", l.email, l.focus == fieldEmail))
	b.WriteString("\n")
	b.WriteString(fieldView("Password", l.pass, l.focus == fieldPassword))
	b.WriteString("\n\n")

	switch {
	case l.busy:
		b.WriteString(theme.Hint.Render("Signing in..."))
	case l.errMsg != "":
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(l.errMsg))
	case l.mode == modeLogin:
		b.WriteString(theme.Hint.Render("No account yet? Ctrl+R to register."))
	default:
		b.WriteString(theme.Hint.Render("Already registered? Ctrl+R to sign in."))
	}

	card := components.Card(b.String(), cw)
	return components.CenterFrame(card, width, height)
}

func fieldView(label string, input components.TextInput, focused bool) string {
	style := lipgloss.NewStyle().Foreground(theme.TextDim)
	if focused {
		style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	}
	return style.Render(label) + "\n" + input.View()
}

// authErrorText maps backend failures to a short message the learner
// can act on.
func authErrorText(err error) string {
	if errors.Is(err, api.ErrUnauthorized) {
		return "Invalid email or password."
	}
	var statusErr *api.StatusError
	if errors.As(err, &statusErr) && statusErr.Message != "" {
		return statusErr.Message
	}
	return "Could not reach the server. Check your connection and try again."
}
