/*
Package nav drives the client's navigation chrome: the top-level action list,
the profile disclosure menu, and the compact-layout drawer.

The controller owns two pieces of transient UI state with paired resources.
While the profile menu is open an outside-interaction detector is attached;
every path that closes the menu detaches it. While the drawer is open the
content scroll is locked; every path that closes the drawer unlocks it.
Teardown releases both regardless of how the controller was left.
*/
package nav

import (
	"placerank/internal/app/account"
	"placerank/internal/client/gate"
	"placerank/internal/client/route"
)

// Action is one entry of the navigation surface.
type Action struct {
	Label string
	Route route.Route
	// SignOut marks the action that ends the session instead of navigating.
	SignOut bool
}

// Session is the read/write surface the controller needs from the session store.
type Session interface {
	Current() (account.Identity, bool)
	Logout()
}

// OutsideDetector watches for interaction outside the profile menu while it
// is open. Attach registers the callback to run on such interaction; Detach
// stops watching. Implementations must tolerate repeated Detach calls.
type OutsideDetector interface {
	Attach(onOutside func())
	Detach()
}

// ScrollLock freezes and releases the content area behind the drawer.
// Implementations must tolerate repeated Unlock calls.
type ScrollLock interface {
	Lock()
	Unlock()
}

// Navigator moves the client to a route.
type Navigator interface {
	NavigateTo(r route.Route)
}

// Controller coordinates the navigation chrome for one client run.
// It is not safe for concurrent use; the UI loop is its single caller.
type Controller struct {
	session  Session
	detector OutsideDetector
	scroll   ScrollLock
	nav      Navigator

	menuOpen   bool
	drawerOpen bool
}

// NewController wires a Controller to its collaborators.
func NewController(session Session, detector OutsideDetector, scroll ScrollLock, nav Navigator) *Controller {
	return &Controller{
		session:  session,
		detector: detector,
		scroll:   scroll,
		nav:      nav,
	}
}

// Actions returns the navigation entries for the current session state.
// Signed-out clients see the public set; signed-in clients see their
// role's set, with place creation reserved for organizations.
func (c *Controller) Actions() []Action {
	identity, ok := c.session.Current()
	if !ok {
		return []Action{
			{Label: "Explore", Route: route.Explore},
			{Label: "Log In", Route: route.Login},
			{Label: "Sign Up", Route: route.Register},
		}
	}

	actions := []Action{
		{Label: "Explore", Route: route.Explore},
	}
	if identity.Role == account.RoleOrganization {
		actions = append(actions, Action{Label: "Add Place", Route: route.AddPlace})
	}
	actions = append(actions,
		Action{Label: "Profile", Route: ProfileAction(identity.Role).Route},
		Action{Label: "Settings", Route: route.Settings},
		Action{Label: "Sign Out", SignOut: true},
	)
	return actions
}

// ProfileAction returns the profile entry for a role. The route comes from
// the role router so both surfaces agree on where each role's profile lives.
func ProfileAction(role account.Role) Action {
	return Action{Label: "Profile", Route: gate.ProfileRoute(role)}
}

// MenuOpen reports whether the profile disclosure is open.
func (c *Controller) MenuOpen() bool { return c.menuOpen }

// DrawerOpen reports whether the compact-layout drawer is open.
func (c *Controller) DrawerOpen() bool { return c.drawerOpen }

// ToggleMenu opens the profile menu if closed, closes it if open.
func (c *Controller) ToggleMenu() {
	if c.menuOpen {
		c.CloseMenu()
		return
	}
	c.OpenMenu()
}

// OpenMenu opens the profile menu and starts watching for outside
// interaction. Opening an open menu is a no-op, so the detector is attached
// at most once per open.
func (c *Controller) OpenMenu() {
	if c.menuOpen {
		return
	}
	c.menuOpen = true
	c.detector.Attach(c.CloseMenu)
}

// CloseMenu closes the profile menu and stops the outside-interaction watch.
// Safe to call when already closed.
func (c *Controller) CloseMenu() {
	if !c.menuOpen {
		return
	}
	c.menuOpen = false
	c.detector.Detach()
}

// ToggleDrawer opens the drawer if closed, closes it if open.
func (c *Controller) ToggleDrawer() {
	if c.drawerOpen {
		c.CloseDrawer()
		return
	}
	c.OpenDrawer()
}

// OpenDrawer opens the drawer and locks the content scroll behind it.
func (c *Controller) OpenDrawer() {
	if c.drawerOpen {
		return
	}
	c.drawerOpen = true
	c.scroll.Lock()
}

// CloseDrawer closes the drawer and releases the scroll lock. Safe to call
// when already closed.
func (c *Controller) CloseDrawer() {
	if !c.drawerOpen {
		return
	}
	c.drawerOpen = false
	c.scroll.Unlock()
}

// Select performs an action: sign-out actions end the session and return
// home, everything else navigates to the action's route. Both disclosures
// close before Select returns, so their resources always release.
func (c *Controller) Select(a Action) {
	if a.SignOut {
		c.session.Logout()
		c.nav.NavigateTo(route.Home)
		c.CloseMenu()
		c.CloseDrawer()
		return
	}

	c.CloseMenu()
	c.CloseDrawer()

	if a.Route != "" {
		c.nav.NavigateTo(a.Route)
	}
}

// Teardown releases the controller's resources no matter what state it was
// left in. Call it when the navigation chrome leaves the screen.
func (c *Controller) Teardown() {
	c.CloseMenu()
	c.CloseDrawer()
}
