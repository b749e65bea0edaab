// Package route names the client's navigable destinations.
package route

// Route identifies a page of the terminal client.
type Route string

const (
	Home           Route = "/"
	Explore        Route = "/explore"
	Login          Route = "/login"
	Register       Route = "/register"
	Profile        Route = "/profile"
	CompanyProfile Route = "/company-profile"
	AddPlace       Route = "/add-place"
	Settings       Route = "/settings"
)
