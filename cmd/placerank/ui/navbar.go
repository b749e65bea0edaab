package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"placerank/internal/client/nav"
	"placerank/internal/client/route"
)

// compactWidth is the breakpoint below which the top bar collapses into the
// drawer, mirroring a narrow-viewport layout.
const compactWidth = 80

// actionKey returns the shortcut that triggers a navigation action from
// anywhere outside a form.
func actionKey(a nav.Action) string {
	if a.SignOut {
		return "O"
	}
	switch a.Route {
	case route.Explore:
		return "E"
	case route.Login:
		return "L"
	case route.Register:
		return "U"
	case route.AddPlace:
		return "A"
	case route.Profile, route.CompanyProfile:
		return "P"
	case route.Settings:
		return "S"
	default:
		return ""
	}
}

// renderNavbar draws the wide-layout top bar: brand, actions with their
// shortcuts, and the active route highlighted.
func renderNavbar(styles Styles, actions []nav.Action, active route.Route) string {
	parts := []string{styles.Title.Render(" Place Rank ")}
	parts = append(parts, styles.Nav.Render("[H] Home"))

	for _, a := range actions {
		label := a.Label
		if key := actionKey(a); key != "" {
			label = "[" + key + "] " + label
		}
		style := styles.Nav
		if !a.SignOut && a.Route == active {
			style = styles.NavActive
		}
		parts = append(parts, style.Render(label))
	}

	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

// renderMenu draws the open profile disclosure under the bar.
func renderMenu(styles Styles, items []nav.Action, cursor int) string {
	var sb strings.Builder
	for i, a := range items {
		marker := "  "
		if i == cursor {
			marker = "> "
		}
		line := marker + a.Label
		if i == cursor {
			line = styles.Label.Render(line)
		}
		sb.WriteString(line + "\n")
	}
	sb.WriteString(styles.Help.Render("enter select · esc close"))
	return styles.Card.Render(sb.String())
}

// renderDrawer draws the compact-layout drawer over the content.
func renderDrawer(styles Styles, actions []nav.Action, cursor int) string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Menu") + "\n")

	items := drawerItems(actions)
	for i, a := range items {
		marker := "  "
		if i == cursor {
			marker = "> "
		}
		line := marker + a.Label
		if i == cursor {
			line = styles.Label.Render(line)
		}
		sb.WriteString(line + "\n")
	}
	sb.WriteString(styles.Help.Render("enter select · esc close"))
	return styles.Card.Render(sb.String())
}

// drawerItems prepends Home: the drawer is the whole navigation surface on
// compact layouts.
func drawerItems(actions []nav.Action) []nav.Action {
	items := make([]nav.Action, 0, len(actions)+1)
	items = append(items, nav.Action{Label: "Home", Route: route.Home})
	items = append(items, actions...)
	return items
}

// menuItems narrows the action list to the profile disclosure's entries.
func menuItems(actions []nav.Action) []nav.Action {
	var items []nav.Action
	for _, a := range actions {
		switch {
		case a.SignOut, a.Route == route.Profile, a.Route == route.CompanyProfile, a.Route == route.Settings:
			items = append(items, a)
		}
	}
	return items
}
