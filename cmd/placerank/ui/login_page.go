package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"placerank/internal/client/api"
)

// Demo accounts seeded by the service, offered as one-key prefills so the
// platform can be tried without registering.
const (
	demoIndividualEmail    = "john.doe@example.com"
	demoIndividualPassword = "user123"

	demoOrganizationEmail    = "info@heritagetours.uz"
	demoOrganizationPassword = "company123"
)

// LoginModel is the sign-in form.
type LoginModel struct {
	client *api.Client
	styles Styles

	email    textinput.Model
	password textinput.Model
	focus    int
	busy     bool
	errText  string
}

// NewLoginModel creates the sign-in page.
func NewLoginModel(client *api.Client, styles Styles) LoginModel {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 120
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 120
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return LoginModel{
		client:   client,
		styles:   styles,
		email:    email,
		password: password,
	}
}

// Reset clears the form for a fresh visit.
func (m LoginModel) Reset() LoginModel {
	m.email.Reset()
	m.password.Reset()
	m.errText = ""
	m.busy = false
	m.focus = 0
	m.email.Focus()
	m.password.Blur()
	return m
}

// Typing reports whether the form owns the keyboard. The sign-in page is all
// form, so it always does.
func (m LoginModel) Typing() bool { return true }

func (m LoginModel) submit() tea.Cmd {
	client := m.client
	email := strings.TrimSpace(m.email.Value())
	password := m.password.Value()
	return func() tea.Msg {
		result, err := client.Login(context.Background(), email, password)
		return authDoneMsg{result: result, err: err}
	}
}

// Update handles messages for the sign-in page.
func (m LoginModel) Update(msg tea.Msg) (LoginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case authDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.errText = describeError(msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			m.focus = 1 - m.focus
			if m.focus == 0 {
				m.password.Blur()
				return m, m.email.Focus()
			}
			m.email.Blur()
			return m, m.password.Focus()

		case "enter":
			if m.busy {
				return m, nil
			}
			if strings.TrimSpace(m.email.Value()) == "" || m.password.Value() == "" {
				m.errText = "email and password are required"
				return m, nil
			}
			m.busy = true
			m.errText = ""
			return m, m.submit()

		case "ctrl+u":
			m.email.SetValue(demoIndividualEmail)
			m.password.SetValue(demoIndividualPassword)
			return m, nil

		case "ctrl+o":
			m.email.SetValue(demoOrganizationEmail)
			m.password.SetValue(demoOrganizationPassword)
			return m, nil
		}

		var cmd tea.Cmd
		if m.focus == 0 {
			m.email, cmd = m.email.Update(msg)
		} else {
			m.password, cmd = m.password.Update(msg)
		}
		return m, cmd
	}
	return m, nil
}

// View renders the page.
func (m LoginModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Log In") + "\n\n")
	sb.WriteString(m.email.View() + "\n")
	sb.WriteString(m.password.View() + "\n\n")

	if m.busy {
		sb.WriteString(m.styles.Muted.Render("signing in...") + "\n")
	}
	if m.errText != "" {
		sb.WriteString(m.styles.Error.Render(m.errText) + "\n")
	}

	sb.WriteString("\n" + m.styles.Card.Render(
		m.styles.Label.Render("Demo accounts")+"\n"+
			"ctrl+u  user     "+demoIndividualEmail+" / "+demoIndividualPassword+"\n"+
			"ctrl+o  company  "+demoOrganizationEmail+" / "+demoOrganizationPassword))

	sb.WriteString("\n\n" + m.styles.Help.Render("tab switch field · enter sign in"))
	return sb.String()
}
