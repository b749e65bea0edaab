package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"placerank/internal/app/place"
	"placerank/internal/client/api"
)

// AddPlaceModel is the place publication form, available to organization
// accounts only.
type AddPlaceModel struct {
	client *api.Client
	styles Styles

	name        textinput.Model
	location    textinput.Model
	description textinput.Model
	categoryIdx int
	focus       int
	busy        bool
	errText     string
	created     *place.Place

	// editID switches the form from publishing to editing an owned place;
	// editPhotoURL carries the stored photo through the update untouched.
	editID       string
	editPhotoURL string
}

// NewAddPlaceModel creates the Add Place page.
func NewAddPlaceModel(client *api.Client, styles Styles) AddPlaceModel {
	name := textinput.New()
	name.Placeholder = "place name"
	name.CharLimit = 120
	name.Focus()

	location := textinput.New()
	location.Placeholder = "location"
	location.CharLimit = 120

	description := textinput.New()
	description.Placeholder = "description"
	description.CharLimit = 500

	return AddPlaceModel{
		client:      client,
		styles:      styles,
		name:        name,
		location:    location,
		description: description,
	}
}

// Reset clears the form for a fresh visit.
func (m AddPlaceModel) Reset() AddPlaceModel {
	m.name.Reset()
	m.location.Reset()
	m.description.Reset()
	m.categoryIdx = 0
	m.errText = ""
	m.busy = false
	m.created = nil
	m.focus = 0
	m.editID = ""
	m.editPhotoURL = ""
	m.name.Focus()
	m.location.Blur()
	m.description.Blur()
	return m
}

// StartEdit prefills the form with an owned place so submit updates it
// instead of publishing a new one.
func (m AddPlaceModel) StartEdit(p place.Place) AddPlaceModel {
	m = m.Reset()
	m.editID = p.ID
	m.editPhotoURL = p.PhotoURL
	m.name.SetValue(p.Name)
	m.location.SetValue(p.Location)
	m.description.SetValue(p.Description)
	for i, c := range place.Categories {
		if c == p.Category {
			m.categoryIdx = i
			break
		}
	}
	return m
}

// Typing reports whether the form owns the keyboard.
func (m AddPlaceModel) Typing() bool { return true }

func (m *AddPlaceModel) inputs() []*textinput.Model {
	return []*textinput.Model{&m.name, &m.location, &m.description}
}

func (m *AddPlaceModel) setFocus(i int) tea.Cmd {
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

func (m AddPlaceModel) submit() tea.Cmd {
	client := m.client
	input := api.PlaceInput{
		Name:        strings.TrimSpace(m.name.Value()),
		Location:    strings.TrimSpace(m.location.Value()),
		Category:    place.Categories[m.categoryIdx],
		Description: strings.TrimSpace(m.description.Value()),
		PhotoURL:    m.editPhotoURL,
	}
	if id := m.editID; id != "" {
		return func() tea.Msg {
			updated, err := client.UpdatePlace(context.Background(), id, input)
			return placeSavedMsg{place: updated, err: err}
		}
	}
	return func() tea.Msg {
		created, err := client.CreatePlace(context.Background(), input)
		return placeSavedMsg{place: created, err: err}
	}
}

// Update handles messages for the Add Place page.
func (m AddPlaceModel) Update(msg tea.Msg) (AddPlaceModel, tea.Cmd) {
	switch msg := msg.(type) {
	case placeSavedMsg:
		m.busy = false
		if msg.err != nil {
			m.errText = describeError(msg.err)
			return m, nil
		}
		m.errText = ""
		created := msg.place
		m.created = &created
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			return m, m.setFocus(m.focus + 1)
		case "shift+tab", "up":
			return m, m.setFocus(m.focus - 1)

		case "ctrl+t":
			m.categoryIdx = (m.categoryIdx + 1) % len(place.Categories)
			return m, nil

		case "enter":
			if m.busy {
				return m, nil
			}
			if strings.TrimSpace(m.name.Value()) == "" || strings.TrimSpace(m.location.Value()) == "" {
				m.errText = "name and location are required"
				return m, nil
			}
			m.busy = true
			m.errText = ""
			m.created = nil
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
func (m AddPlaceModel) View() string {
	var sb strings.Builder
	title, verb, done := "Add Place", "publish", "published: "
	if m.editID != "" {
		title, verb, done = "Edit Place", "save", "updated: "
	}
	sb.WriteString(m.styles.Title.Render(title) + "\n\n")
	sb.WriteString(m.name.View() + "\n")
	sb.WriteString(m.location.View() + "\n")
	sb.WriteString(m.description.View() + "\n\n")
	sb.WriteString(m.styles.Label.Render("Category: ") + place.Categories[m.categoryIdx] + "\n")

	if m.busy {
		sb.WriteString(m.styles.Muted.Render("saving...") + "\n")
	}
	if m.errText != "" {
		sb.WriteString(m.styles.Error.Render(m.errText) + "\n")
	}
	if m.created != nil {
		sb.WriteString(m.styles.Success.Render(done+m.created.Name) + "\n")
	}

	sb.WriteString("\n" + m.styles.Help.Render("tab next field · ctrl+t cycle category · enter "+verb))
	return sb.String()
}
