/*
Package gate decides whether a protected page may render.

Every guarded page runs the same checks in the same order: session still
loading, not signed in, wrong role, render. The order is load-bearing: a
restored session must win over a transient "signed out" reading, and an
authenticated account with the wrong role is sent home, never to sign-in.
*/
package gate

import (
	"placerank/internal/app/account"
	"placerank/internal/client/route"
)

// Outcome is the gate's verdict for a page render attempt.
type Outcome int

const (
	// Wait means the session is still restoring; render nothing yet.
	Wait Outcome = iota
	// RedirectLogin means no session exists; send the user to sign-in.
	RedirectLogin
	// RedirectHome means the session's role may not use this page.
	RedirectHome
	// Render means the page may show its content.
	Render
)

func (o Outcome) String() string {
	switch o {
	case Wait:
		return "wait"
	case RedirectLogin:
		return "redirect-login"
	case RedirectHome:
		return "redirect-home"
	case Render:
		return "render"
	default:
		return "unknown"
	}
}

// Session is the read surface the gate needs from the session store.
type Session interface {
	Loading() bool
	Current() (account.Identity, bool)
}

// Evaluate runs the gate checks for a page. requiredRole narrows access to
// one role; leave it empty to admit any signed-in account. The checks are
// ordered: loading, then authentication, then role.
func Evaluate(s Session, requiredRole account.Role) Outcome {
	if s.Loading() {
		return Wait
	}

	identity, ok := s.Current()
	if !ok {
		return RedirectLogin
	}

	if requiredRole != "" && identity.Role != requiredRole {
		return RedirectHome
	}

	return Render
}

// Target resolves an Outcome to the route the client should move to.
// Render and Wait do not move; both resolve to the empty route.
func Target(o Outcome) route.Route {
	switch o {
	case RedirectLogin:
		return route.Login
	case RedirectHome:
		return route.Home
	default:
		return ""
	}
}

// ProfileRoute maps an account role to its profile page. Individual accounts
// and organizations have separate profile surfaces.
func ProfileRoute(role account.Role) route.Route {
	if role == account.RoleOrganization {
		return route.CompanyProfile
	}
	return route.Profile
}
