package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"placerank/internal/app/account"
	"placerank/internal/client/api"
)

// RegisterModel is the account creation form.
type RegisterModel struct {
	client *api.Client
	styles Styles

	name     textinput.Model
	email    textinput.Model
	password textinput.Model
	role     account.Role
	focus    int
	busy     bool
	errText  string
}

// NewRegisterModel creates the sign-up page.
func NewRegisterModel(client *api.Client, styles Styles) RegisterModel {
	name := textinput.New()
	name.Placeholder = "name"
	name.CharLimit = 120
	name.Focus()

	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 120

	password := textinput.New()
	password.Placeholder = "password (6+ characters)"
	password.CharLimit = 120
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return RegisterModel{
		client:   client,
		styles:   styles,
		name:     name,
		email:    email,
		password: password,
		role:     account.RoleIndividual,
	}
}

// Reset clears the form for a fresh visit.
func (m RegisterModel) Reset() RegisterModel {
	m.name.Reset()
	m.email.Reset()
	m.password.Reset()
	m.role = account.RoleIndividual
	m.errText = ""
	m.busy = false
	m.focus = 0
	m.name.Focus()
	m.email.Blur()
	m.password.Blur()
	return m
}

// Typing reports whether the form owns the keyboard.
func (m RegisterModel) Typing() bool { return true }

func (m *RegisterModel) inputs() []*textinput.Model {
	return []*textinput.Model{&m.name, &m.email, &m.password}
}

func (m *RegisterModel) setFocus(i int) tea.Cmd {
	inputs := m.inputs()
	m.focus = (i + len(inputs)) % len(inputs)
	var cmd tea.Cmd
	for idx, input := range inputs {
		if idx == m.focus {
			cmd = input.Focus()
		} else {
			input.Blur()
		}
	}
	return cmd
}

func (m RegisterModel) submit() tea.Cmd {
	client := m.client
	name := strings.TrimSpace(m.name.Value())
	email := strings.TrimSpace(m.email.Value())
	password := m.password.Value()
	role := m.role
	return func() tea.Msg {
		result, err := client.Register(context.Background(), name, email, password, role)
		return authDoneMsg{result: result, err: err}
	}
}

// Update handles messages for the sign-up page.
func (m RegisterModel) Update(msg tea.Msg) (RegisterModel, tea.Cmd) {
	switch msg := msg.(type) {
	case authDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.errText = describeError(msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			return m, m.setFocus(m.focus + 1)
		case "shift+tab", "up":
			return m, m.setFocus(m.focus - 1)

		case "ctrl+r":
			if m.role == account.RoleIndividual {
				m.role = account.RoleOrganization
			} else {
				m.role = account.RoleIndividual
			}
			return m, nil

		case "enter":
			if m.busy {
				return m, nil
			}
			if strings.TrimSpace(m.name.Value()) == "" ||
				strings.TrimSpace(m.email.Value()) == "" ||
				len(m.password.Value()) < 6 {
				m.errText = "name, email, and a password of 6+ characters are required"
				return m, nil
			}
			m.busy = true
			m.errText = ""
			return m, m.submit()
		}

		input := m.inputs()[m.focus]
		updated, cmd := input.Update(msg)
		*input = updated
		return m, cmd
	}
	return m, nil
}

// View renders the page.
func (m RegisterModel) View() string {
	roleLabel := "Individual (rate and comment)"
	if m.role == account.RoleOrganization {
		roleLabel = "Organization (publish places)"
	}

	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Sign Up") + "\n\n")
	sb.WriteString(m.name.View() + "\n")
	sb.WriteString(m.email.View() + "\n")
	sb.WriteString(m.password.View() + "\n\n")
	sb.WriteString(m.styles.Label.Render("Account type: ") + roleLabel + "\n")

	if m.busy {
		sb.WriteString(m.styles.Muted.Render("creating account...") + "\n")
	}
	if m.errText != "" {
		sb.WriteString(m.styles.Error.Render(m.errText) + "\n")
	}

	sb.WriteString("\n" + m.styles.Help.Render("tab next field · ctrl+r toggle account type · enter create"))
	return sb.String()
}
