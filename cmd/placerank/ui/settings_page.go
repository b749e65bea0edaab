package ui

import (
	"strings"

	"placerank/internal/app/account"
)

// SettingsModel shows the session and connection details of the running
// client. It is read-only; profile edits live on the profile page.
type SettingsModel struct {
	styles      Styles
	serverURL   string
	sessionPath string
}

// NewSettingsModel creates the settings page.
func NewSettingsModel(styles Styles, serverURL, sessionPath string) SettingsModel {
	return SettingsModel{
		styles:      styles,
		serverURL:   serverURL,
		sessionPath: sessionPath,
	}
}

// View renders the settings page for the signed-in identity.
func (m SettingsModel) View(identity account.Identity) string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Settings") + "\n\n")

	sb.WriteString(m.styles.Label.Render("Account") + "\n")
	sb.WriteString("  " + identity.Name + " <" + identity.Email + ">\n")
	sb.WriteString("  role: " + identity.Role.String() + "\n\n")

	sb.WriteString(m.styles.Label.Render("Connection") + "\n")
	sb.WriteString("  server:  " + m.serverURL + "\n")
	sb.WriteString("  session: " + m.sessionPath + "\n\n")

	sb.WriteString(m.styles.Help.Render("the session persists across restarts; use Sign Out to end it"))
	return sb.String()
}
