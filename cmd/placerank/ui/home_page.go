package ui

import (
	"strings"

	"placerank/internal/app/account"
)

// HomeModel is the landing page.
type HomeModel struct {
	styles Styles
}

// NewHomeModel creates the landing page.
func NewHomeModel(styles Styles) HomeModel {
	return HomeModel{styles: styles}
}

// View renders the landing page for the given session state.
func (m HomeModel) View(identity *account.Identity) string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Place Rank") + "\n")
	sb.WriteString(m.styles.Subtitle.Render("Discover, rate, and share the best places.") + "\n\n")

	switch {
	case identity == nil:
		sb.WriteString("Browse the catalogue as a guest, or sign in to rate places\n")
		sb.WriteString("and leave comments. Organizations can publish their own places.\n")
	case identity.Role == account.RoleOrganization:
		sb.WriteString("Welcome back, " + m.styles.Label.Render(identity.Name) + ".\n")
		sb.WriteString("Publish a new place or check how your listings are rated.\n")
	default:
		sb.WriteString("Welcome back, " + m.styles.Label.Render(identity.Name) + ".\n")
		sb.WriteString("Head to Explore to rate places and join the conversation.\n")
	}

	return sb.String()
}
