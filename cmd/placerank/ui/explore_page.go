package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"placerank/internal/app/live"
	"placerank/internal/app/place"
	"placerank/internal/client/api"
)

// ExploreModel is the place catalogue: a filterable listing with a detail
// view for rating and commenting.
type ExploreModel struct {
	client *api.Client
	styles Styles

	places  []place.Place
	cursor  int
	loading bool
	errText string

	// filters
	filter      place.Filter
	categoryIdx int // 0 = all, 1..len(Categories) = Categories[idx-1]
	search      textinput.Model
	searching   bool

	// detail view
	detail     *api.PlaceDetail
	comment    textinput.Model
	commenting bool

	canRate bool
	spin    spinner.Model
	width   int
	height  int
}

// NewExploreModel creates the Explore page.
func NewExploreModel(client *api.Client, styles Styles) ExploreModel {
	search := textinput.New()
	search.Placeholder = "search name or location"
	search.CharLimit = 80

	comment := textinput.New()
	comment.Placeholder = "write a comment"
	comment.CharLimit = 1000

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return ExploreModel{
		client:  client,
		styles:  styles,
		search:  search,
		comment: comment,
		spin:    sp,
	}
}

// SetCanRate toggles rating and commenting keys; only signed-in individual
// accounts may use them.
func (m *ExploreModel) SetCanRate(ok bool) { m.canRate = ok }

// SetSize stores the layout box.
func (m *ExploreModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.search.Width = min(w-8, 48)
	m.comment.Width = min(w-8, 64)
}

// Typing reports whether a text input currently owns the keyboard.
func (m ExploreModel) Typing() bool { return m.searching || m.commenting }

// Refresh reloads the listing with the current filters.
func (m ExploreModel) Refresh() tea.Cmd {
	filter := m.filter
	client := m.client
	return tea.Batch(m.spin.Tick, func() tea.Msg {
		places, err := client.ListPlaces(context.Background(), filter)
		return placesMsg{places: places, err: err}
	})
}

func (m ExploreModel) loadDetail(id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		detail, err := client.GetPlace(context.Background(), id)
		return placeDetailMsg{detail: detail, err: err}
	}
}

func (m ExploreModel) rate(id string, stars int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		updated, err := client.AddRating(context.Background(), id, stars)
		return ratedMsg{place: updated, err: err}
	}
}

func (m ExploreModel) postComment(id, text string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		created, err := client.AddComment(context.Background(), id, text)
		return commentedMsg{comment: created, err: err}
	}
}

// Update handles messages for the Explore page.
func (m ExploreModel) Update(msg tea.Msg) (ExploreModel, tea.Cmd) {
	switch msg := msg.(type) {
	case placesMsg:
		m.loading = false
		if msg.err != nil {
			m.errText = describeError(msg.err)
			return m, nil
		}
		m.errText = ""
		m.places = msg.places
		if m.cursor >= len(m.places) {
			m.cursor = max(len(m.places)-1, 0)
		}
		return m, nil

	case placeDetailMsg:
		if msg.err != nil {
			m.errText = describeError(msg.err)
			return m, nil
		}
		m.errText = ""
		detail := msg.detail
		m.detail = &detail
		return m, nil

	case ratedMsg:
		if msg.err != nil {
			m.errText = describeError(msg.err)
			return m, nil
		}
		m.errText = ""
		m.applyPlace(msg.place)
		return m, nil

	case commentedMsg:
		if msg.err != nil {
			m.errText = describeError(msg.err)
			return m, nil
		}
		m.errText = ""
		if m.detail != nil && m.detail.Place.ID == msg.comment.PlaceID {
			m.detail.Comments = append(m.detail.Comments, msg.comment)
		}
		return m, nil

	case liveMsg:
		return m.applyLive(msg.event), nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m ExploreModel) handleKey(msg tea.KeyMsg) (ExploreModel, tea.Cmd) {
	if m.searching {
		switch msg.String() {
		case "enter":
			m.searching = false
			m.search.Blur()
			m.filter.Query = strings.TrimSpace(m.search.Value())
			m.loading = true
			return m, m.Refresh()
		case "esc":
			m.searching = false
			m.search.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}

	if m.commenting {
		switch msg.String() {
		case "enter":
			text := strings.TrimSpace(m.comment.Value())
			m.commenting = false
			m.comment.Blur()
			m.comment.Reset()
			if text == "" || m.detail == nil {
				return m, nil
			}
			return m, m.postComment(m.detail.Place.ID, text)
		case "esc":
			m.commenting = false
			m.comment.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.comment, cmd = m.comment.Update(msg)
		return m, cmd
	}

	if m.detail != nil {
		switch msg.String() {
		case "esc", "backspace":
			m.detail = nil
			return m, nil
		case "m":
			if m.canRate {
				m.commenting = true
				return m, m.comment.Focus()
			}
		case "1", "2", "3", "4", "5":
			if m.canRate {
				stars := int(msg.String()[0] - '0')
				return m, m.rate(m.detail.Place.ID, stars)
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.places)-1 {
			m.cursor++
		}
	case "enter":
		if len(m.places) > 0 {
			return m, m.loadDetail(m.places[m.cursor].ID)
		}
	case "/":
		m.searching = true
		m.search.SetValue(m.filter.Query)
		return m, m.search.Focus()
	case "c":
		m.categoryIdx = (m.categoryIdx + 1) % (len(place.Categories) + 1)
		if m.categoryIdx == 0 {
			m.filter.Category = ""
		} else {
			m.filter.Category = place.Categories[m.categoryIdx-1]
		}
		m.loading = true
		return m, m.Refresh()
	case "f":
		// min-rating steps 0 -> 3 -> 4 -> 4.5 -> 0
		switch m.filter.MinRating {
		case 0:
			m.filter.MinRating = 3
		case 3:
			m.filter.MinRating = 4
		case 4:
			m.filter.MinRating = 4.5
		default:
			m.filter.MinRating = 0
		}
		m.loading = true
		return m, m.Refresh()
	case "r":
		m.loading = true
		return m, m.Refresh()
	}
	return m, nil
}

// applyPlace replaces the listing and detail copies of an updated place.
func (m *ExploreModel) applyPlace(updated place.Place) {
	for i := range m.places {
		if m.places[i].ID == updated.ID {
			m.places[i] = updated
		}
	}
	if m.detail != nil && m.detail.Place.ID == updated.ID {
		m.detail.Place = updated
	}
}

// applyLive folds a live feed event into the current listing, honoring the
// active filters.
func (m ExploreModel) applyLive(event live.Event) ExploreModel {
	switch event.Type {
	case live.EventPlaceCreated:
		if event.Place == nil || !m.filter.Matches(*event.Place) {
			return m
		}
		for _, existing := range m.places {
			if existing.ID == event.Place.ID {
				return m
			}
		}
		m.places = append(m.places, *event.Place)

	case live.EventPlaceDeleted:
		kept := m.places[:0]
		for _, p := range m.places {
			if p.ID != event.PlaceID {
				kept = append(kept, p)
			}
		}
		m.places = kept
		if m.cursor >= len(m.places) {
			m.cursor = max(len(m.places)-1, 0)
		}
		if m.detail != nil && m.detail.Place.ID == event.PlaceID {
			m.detail = nil
		}

	case live.EventRatingAdded, live.EventCommentAdded:
		if event.Place != nil {
			m.applyPlace(*event.Place)
		}
	}
	return m
}

// View renders the page.
func (m ExploreModel) View() string {
	if m.detail != nil {
		return m.viewDetail()
	}

	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Explore Places") + "\n")
	sb.WriteString(m.styles.Muted.Render(m.filterLine()) + "\n\n")

	if m.searching {
		sb.WriteString(m.search.View() + "\n\n")
	}

	switch {
	case m.loading:
		sb.WriteString(m.spin.View() + " loading...\n")
	case m.errText != "":
		sb.WriteString(m.styles.Error.Render(m.errText) + "\n")
	case len(m.places) == 0:
		sb.WriteString(m.styles.Muted.Render("No places match the current filters.") + "\n")
	default:
		for i, p := range m.places {
			sb.WriteString(m.renderRow(p, i == m.cursor) + "\n")
		}
	}

	sb.WriteString("\n" + m.styles.Help.Render("enter open · / search · c category · f min rating · r reload"))
	return sb.String()
}

func (m ExploreModel) filterLine() string {
	parts := []string{}
	if m.filter.Category != "" {
		parts = append(parts, "category: "+m.filter.Category)
	}
	if m.filter.Query != "" {
		parts = append(parts, "search: "+m.filter.Query)
	}
	if m.filter.MinRating > 0 {
		parts = append(parts, fmt.Sprintf("rating >= %.1f", m.filter.MinRating))
	}
	if len(parts) == 0 {
		return "all categories"
	}
	return strings.Join(parts, " · ")
}

func (m ExploreModel) renderRow(p place.Place, selected bool) string {
	marker := "  "
	if selected {
		marker = "> "
	}
	stars := m.styles.Stars.Render(starBar(p.Rating))
	line := fmt.Sprintf("%s%s  %s %s (%d)  %s",
		marker, padRight(p.Name, 28), stars, fmt.Sprintf("%.1f", p.Rating), p.Reviews,
		m.styles.Muted.Render(p.Location))
	if selected {
		return m.styles.Label.Render(line)
	}
	return line
}

func (m ExploreModel) viewDetail() string {
	d := m.detail
	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render(d.Place.Name) + "\n")
	sb.WriteString(m.styles.Muted.Render(d.Place.Location+" · "+d.Place.Category) + "\n")
	sb.WriteString(m.styles.Stars.Render(starBar(d.Place.Rating)) +
		fmt.Sprintf(" %.1f (%d reviews)\n\n", d.Place.Rating, d.Place.Reviews))

	if d.Place.Description != "" {
		sb.WriteString(d.Place.Description + "\n\n")
	}

	sb.WriteString(m.styles.Label.Render("Comments") + "\n")
	if len(d.Comments) == 0 {
		sb.WriteString(m.styles.Muted.Render("No comments yet.") + "\n")
	}
	for _, c := range d.Comments {
		sb.WriteString(fmt.Sprintf("%s %s\n", m.styles.Label.Render(c.AuthorName+":"), c.Text))
	}

	if m.errText != "" {
		sb.WriteString("\n" + m.styles.Error.Render(m.errText))
	}

	if m.commenting {
		sb.WriteString("\n" + m.comment.View())
	}

	help := "esc back"
	if m.canRate {
		help = "1-5 rate · m comment · " + help
	}
	sb.WriteString("\n\n" + m.styles.Help.Render(help))

	return lipgloss.NewStyle().MaxWidth(max(m.width, 20)).Render(sb.String())
}

func starBar(rating float64) string {
	full := int(rating + 0.5)
	if full > 5 {
		full = 5
	}
	return strings.Repeat("★", full) + strings.Repeat("☆", 5-full)
}

func padRight(s string, n int) string {
	runes := []rune(s)
	if len(runes) >= n {
		return string(runes[:n])
	}
	return s + strings.Repeat(" ", n-len(runes))
}

func describeError(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return "service unavailable: " + err.Error()
}
