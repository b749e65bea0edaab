package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"placerank/internal/app/account"
	"placerank/internal/client/api"
)

// editField is one editable profile attribute.
type editField struct {
	label string
	input textinput.Model
	// set writes the field into a partial update.
	set func(*account.ProfileUpdate, string)
}

// ProfileModel shows the signed-in account's profile and activity, with an
// inline edit mode for the profile fields the account's role carries.
type ProfileModel struct {
	client *api.Client
	styles Styles

	result  api.ProfileResult
	loaded  bool
	loading bool
	errText string
	notice  string

	editing bool
	fields  []editField
	focus   int

	// cursor selects a published place on the organization view;
	// confirming guards the delete behind a y/n prompt.
	cursor     int
	confirming bool
}

// NewProfileModel creates the profile page.
func NewProfileModel(client *api.Client, styles Styles) ProfileModel {
	return ProfileModel{client: client, styles: styles}
}

// Typing reports whether edit mode owns the keyboard.
func (m ProfileModel) Typing() bool { return m.editing }

// Refresh reloads the profile and its activity.
func (m ProfileModel) Refresh() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		result, err := client.FetchProfile(context.Background())
		return profileMsg{result: result, err: err}
	}
}

func newField(label, value string, limit int, set func(*account.ProfileUpdate, string)) editField {
	input := textinput.New()
	input.Placeholder = label
	input.CharLimit = limit
	input.SetValue(value)
	return editField{label: label, input: input, set: set}
}

// beginEdit builds the edit form for the loaded identity. Individual
// accounts edit bio and location; organizations edit description, website,
// and phone. Both edit the display name.
func (m *ProfileModel) beginEdit() tea.Cmd {
	user := m.result.User
	m.fields = []editField{
		newField("name", user.Name, 120, func(u *account.ProfileUpdate, v string) { u.Name = &v }),
	}

	if user.Role == account.RoleOrganization {
		m.fields = append(m.fields,
			newField("description", user.Description, 500, func(u *account.ProfileUpdate, v string) { u.Description = &v }),
			newField("website", user.Website, 200, func(u *account.ProfileUpdate, v string) { u.Website = &v }),
			newField("phone", user.Phone, 40, func(u *account.ProfileUpdate, v string) { u.Phone = &v }),
		)
	} else {
		m.fields = append(m.fields,
			newField("bio", user.Bio, 500, func(u *account.ProfileUpdate, v string) { u.Bio = &v }),
			newField("location", user.Location, 120, func(u *account.ProfileUpdate, v string) { u.Location = &v }),
		)
	}

	m.editing = true
	m.focus = 0
	return m.fields[0].input.Focus()
}

func (m *ProfileModel) setFocus(i int) tea.Cmd {
	m.focus = (i + len(m.fields)) % len(m.fields)
	var cmd tea.Cmd
	for idx := range m.fields {
		if idx == m.focus {
			cmd = m.fields[idx].input.Focus()
		} else {
			m.fields[idx].input.Blur()
		}
	}
	return cmd
}

// deleteSelected removes the place under the cursor. Only organization
// profiles list owned places, so the server's ownership check is the
// backstop, not the driver.
func (m ProfileModel) deleteSelected() tea.Cmd {
	id := m.result.Places[m.cursor].ID
	client := m.client
	return func() tea.Msg {
		err := client.DeletePlace(context.Background(), id)
		return placeDeletedMsg{id: id, err: err}
	}
}

func (m ProfileModel) save() tea.Cmd {
	var update account.ProfileUpdate
	for _, f := range m.fields {
		f.set(&update, strings.TrimSpace(f.input.Value()))
	}
	client := m.client
	return func() tea.Msg {
		result, err := client.UpdateProfile(context.Background(), update)
		return profileSavedMsg{result: result, err: err}
	}
}

// Update handles messages for the profile page.
func (m ProfileModel) Update(msg tea.Msg) (ProfileModel, tea.Cmd) {
	switch msg := msg.(type) {
	case profileMsg:
		m.loading = false
		if msg.err != nil {
			m.errText = describeError(msg.err)
			return m, nil
		}
		m.errText = ""
		m.result = msg.result
		m.loaded = true
		return m, nil

	case profileSavedMsg:
		if msg.err != nil {
			m.errText = describeError(msg.err)
			return m, nil
		}
		m.errText = ""
		m.notice = "profile saved"
		m.editing = false
		m.result.User = msg.result.User
		return m, nil

	case placeDeletedMsg:
		if msg.err != nil {
			m.errText = describeError(msg.err)
			return m, nil
		}
		kept := m.result.Places[:0]
		for _, p := range m.result.Places {
			if p.ID != msg.id {
				kept = append(kept, p)
			}
		}
		m.result.Places = kept
		if m.cursor >= len(m.result.Places) && m.cursor > 0 {
			m.cursor--
		}
		m.errText = ""
		m.notice = "place deleted"
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			switch msg.String() {
			case "tab", "down":
				return m, m.setFocus(m.focus + 1)
			case "shift+tab", "up":
				return m, m.setFocus(m.focus - 1)
			case "enter":
				return m, m.save()
			case "esc":
				m.editing = false
				return m, nil
			}
			updated, cmd := m.fields[m.focus].input.Update(msg)
			m.fields[m.focus].input = updated
			return m, cmd
		}

		if m.confirming {
			m.confirming = false
			if msg.String() == "y" {
				m.notice = ""
				return m, m.deleteSelected()
			}
			return m, nil
		}

		switch msg.String() {
		case "e":
			if m.loaded {
				m.notice = ""
				return m, m.beginEdit()
			}
		case "r":
			m.loading = true
			m.notice = ""
			return m, m.Refresh()
		case "j", "down":
			if m.ownsPlaces() && m.cursor < len(m.result.Places)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.ownsPlaces() && m.cursor > 0 {
				m.cursor--
			}
		case "x":
			if m.ownsPlaces() {
				m.notice = ""
				m.confirming = true
			}
		case "enter":
			if m.ownsPlaces() {
				selected := m.result.Places[m.cursor]
				return m, func() tea.Msg { return editPlaceMsg{place: selected} }
			}
		}
	}
	return m, nil
}

func (m ProfileModel) ownsPlaces() bool {
	return m.loaded && m.result.User.Role == account.RoleOrganization && len(m.result.Places) > 0
}

// View renders the page.
func (m ProfileModel) View() string {
	if !m.loaded {
		if m.errText != "" {
			return m.styles.Error.Render(m.errText)
		}
		return m.styles.Muted.Render("loading profile...")
	}

	user := m.result.User
	var sb strings.Builder

	title := "Profile"
	if user.Role == account.RoleOrganization {
		title = "Company Profile"
	}
	sb.WriteString(m.styles.Title.Render(title) + "\n\n")

	if m.editing {
		for _, f := range m.fields {
			sb.WriteString(m.styles.Label.Render(padRight(f.label, 12)) + f.input.View() + "\n")
		}
		sb.WriteString("\n" + m.styles.Help.Render("tab next field · enter save · esc cancel"))
		if m.errText != "" {
			sb.WriteString("\n" + m.styles.Error.Render(m.errText))
		}
		return sb.String()
	}

	sb.WriteString(m.styles.Label.Render(user.Name) + "  " + m.styles.Muted.Render(user.Email) + "\n")
	if user.JoinedAt != "" {
		sb.WriteString(m.styles.Muted.Render("member since "+joinedMonth(user.JoinedAt)) + "\n")
	}
	sb.WriteString("\n")

	if user.Role == account.RoleOrganization {
		writeIfSet(&sb, m.styles, "About", user.Description)
		writeIfSet(&sb, m.styles, "Website", user.Website)
		writeIfSet(&sb, m.styles, "Phone", user.Phone)
		sb.WriteString("\n" + m.styles.Label.Render(fmt.Sprintf("Published places (%d)", len(m.result.Places))) + "\n")
		for i, p := range m.result.Places {
			marker := "  "
			if i == m.cursor && len(m.result.Places) > 0 {
				marker = m.styles.NavActive.Render("> ")
			}
			sb.WriteString(fmt.Sprintf("%s%s  %s %.1f (%d)\n",
				marker, padRight(p.Name, 28), m.styles.Stars.Render(starBar(p.Rating)), p.Rating, p.Reviews))
		}
		if m.confirming {
			sb.WriteString("\n" + m.styles.Error.Render(
				fmt.Sprintf("delete %q? y/n", m.result.Places[m.cursor].Name)))
		}
	} else {
		writeIfSet(&sb, m.styles, "Bio", user.Bio)
		writeIfSet(&sb, m.styles, "Location", user.Location)
		sb.WriteString("\n" + m.styles.Label.Render(fmt.Sprintf("Ratings given (%d)", len(m.result.Ratings))) + "\n")
		for _, r := range m.result.Ratings {
			sb.WriteString("  " + m.styles.Stars.Render(starBar(float64(r.Stars))) +
				m.styles.Muted.Render("  "+r.CreatedAt.Format("2006-01-02")) + "\n")
		}
		sb.WriteString("\n" + m.styles.Label.Render(fmt.Sprintf("Comments (%d)", len(m.result.Comments))) + "\n")
		for _, c := range m.result.Comments {
			sb.WriteString("  " + c.Text + "\n")
		}
	}

	if m.notice != "" {
		sb.WriteString("\n" + m.styles.Success.Render(m.notice))
	}
	if m.errText != "" {
		sb.WriteString("\n" + m.styles.Error.Render(m.errText))
	}

	help := "e edit · r reload"
	if m.ownsPlaces() {
		help = "e edit · r reload · j/k select place · enter edit place · x delete"
	}
	sb.WriteString("\n\n" + m.styles.Help.Render(help))
	return sb.String()
}

// joinedMonth formats an RFC 3339 join date as "January 2006", falling back
// to the raw value when it does not parse.
func joinedMonth(joined string) string {
	t, err := time.Parse(time.RFC3339, joined)
	if err != nil {
		return joined
	}
	return t.Format("January 2006")
}

func writeIfSet(sb *strings.Builder, styles Styles, label, value string) {
	if value == "" {
		return
	}
	sb.WriteString(styles.Label.Render(label+": ") + value + "\n")
}
