package nav

import (
	"testing"

	"placerank/internal/app/account"
	"placerank/internal/client/route"
)

type fakeSession struct {
	identity *account.Identity
	logouts  int
}

func (f *fakeSession) Current() (account.Identity, bool) {
	if f.identity == nil {
		return account.Identity{}, false
	}
	return *f.identity, true
}

func (f *fakeSession) Logout() {
	f.identity = nil
	f.logouts++
}

type fakeDetector struct {
	attached  bool
	attaches  int
	detaches  int
	onOutside func()
}

func (f *fakeDetector) Attach(fn func()) {
	f.attached = true
	f.attaches++
	f.onOutside = fn
}

func (f *fakeDetector) Detach() {
	f.attached = false
	f.detaches++
}

type fakeScroll struct {
	locked  bool
	locks   int
	unlocks int
}

func (f *fakeScroll) Lock()   { f.locked = true; f.locks++ }
func (f *fakeScroll) Unlock() { f.locked = false; f.unlocks++ }

type fakeNavigator struct {
	visited []route.Route
}

func (f *fakeNavigator) NavigateTo(r route.Route) {
	f.visited = append(f.visited, r)
}

func newFixture(role account.Role) (*Controller, *fakeSession, *fakeDetector, *fakeScroll, *fakeNavigator) {
	session := &fakeSession{}
	if role != "" {
		session.identity = &account.Identity{ID: "1", Name: "n", Email: "n@example.com", Role: role}
	}
	detector := &fakeDetector{}
	scroll := &fakeScroll{}
	navigator := &fakeNavigator{}
	return NewController(session, detector, scroll, navigator), session, detector, scroll, navigator
}

func labels(actions []Action) []string {
	out := make([]string, len(actions))
	for i, a := range actions {
		out[i] = a.Label
	}
	return out
}

func TestActionsPerSessionState(t *testing.T) {
	tests := []struct {
		name string
		role account.Role
		want []string
	}{
		{"signed out", "", []string{"Explore", "Log In", "Sign Up"}},
		{"individual", account.RoleIndividual, []string{"Explore", "Profile", "Settings", "Sign Out"}},
		{"organization", account.RoleOrganization, []string{"Explore", "Add Place", "Profile", "Settings", "Sign Out"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, _, _, _ := newFixture(tt.role)
			got := labels(c.Actions())
			if len(got) != len(tt.want) {
				t.Fatalf("actions = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("action[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestProfileActionRouteFollowsRole(t *testing.T) {
	c, _, _, _, _ := newFixture(account.RoleOrganization)
	for _, a := range c.Actions() {
		if a.Label == "Profile" && a.Route != route.CompanyProfile {
			t.Errorf("organization profile action routes to %q", a.Route)
		}
	}

	c, _, _, _, _ = newFixture(account.RoleIndividual)
	for _, a := range c.Actions() {
		if a.Label == "Profile" && a.Route != route.Profile {
			t.Errorf("individual profile action routes to %q", a.Route)
		}
	}
}

func TestMenuAttachesDetectorOnlyWhileOpen(t *testing.T) {
	c, _, detector, _, _ := newFixture(account.RoleIndividual)

	if detector.attached {
		t.Fatal("detector attached before the menu opened")
	}

	c.OpenMenu()
	if !detector.attached {
		t.Fatal("detector not attached on open")
	}

	// Reopening an open menu must not stack attachments.
	c.OpenMenu()
	if detector.attaches != 1 {
		t.Errorf("attaches = %d after double open, want 1", detector.attaches)
	}

	c.CloseMenu()
	if detector.attached {
		t.Error("detector still attached after close")
	}

	// Closing a closed menu must not detach again.
	c.CloseMenu()
	if detector.detaches != 1 {
		t.Errorf("detaches = %d after double close, want 1", detector.detaches)
	}
}

func TestOutsideInteractionClosesMenu(t *testing.T) {
	c, _, detector, _, _ := newFixture(account.RoleIndividual)

	c.OpenMenu()
	detector.onOutside()

	if c.MenuOpen() {
		t.Error("menu still open after outside interaction")
	}
	if detector.attached {
		t.Error("detector still attached after outside interaction")
	}
}

func TestDrawerLockPairsAcrossAllClosePaths(t *testing.T) {
	closePaths := []struct {
		name  string
		close func(c *Controller)
	}{
		{"explicit close", func(c *Controller) { c.CloseDrawer() }},
		{"action selection", func(c *Controller) { c.Select(Action{Label: "Explore", Route: route.Explore}) }},
		{"teardown", func(c *Controller) { c.Teardown() }},
	}

	for _, tt := range closePaths {
		t.Run(tt.name, func(t *testing.T) {
			c, _, _, scroll, _ := newFixture(account.RoleIndividual)

			c.OpenDrawer()
			if !scroll.locked {
				t.Fatal("scroll not locked on open")
			}

			tt.close(c)
			if scroll.locked {
				t.Error("scroll still locked after close")
			}
			if scroll.locks != scroll.unlocks {
				t.Errorf("locks=%d unlocks=%d, want paired", scroll.locks, scroll.unlocks)
			}
		})
	}
}

func TestMenuClosesAcrossAllClosePaths(t *testing.T) {
	closePaths := []struct {
		name  string
		close func(c *Controller)
	}{
		{"explicit close", func(c *Controller) { c.CloseMenu() }},
		{"action selection", func(c *Controller) { c.Select(Action{Label: "Settings", Route: route.Settings}) }},
		{"teardown", func(c *Controller) { c.Teardown() }},
	}

	for _, tt := range closePaths {
		t.Run(tt.name, func(t *testing.T) {
			c, _, detector, _, _ := newFixture(account.RoleIndividual)

			c.OpenMenu()
			tt.close(c)

			if c.MenuOpen() {
				t.Error("menu still open")
			}
			if detector.attaches != detector.detaches {
				t.Errorf("attaches=%d detaches=%d, want paired", detector.attaches, detector.detaches)
			}
		})
	}
}

func TestSelectNavigates(t *testing.T) {
	c, _, _, _, navigator := newFixture("")

	c.Select(Action{Label: "Explore", Route: route.Explore})

	if len(navigator.visited) != 1 || navigator.visited[0] != route.Explore {
		t.Errorf("visited = %v, want [%v]", navigator.visited, route.Explore)
	}
}

func TestSignOutEndsSessionAndGoesHome(t *testing.T) {
	c, session, detector, scroll, navigator := newFixture(account.RoleOrganization)

	c.OpenMenu()
	c.OpenDrawer()

	c.Select(Action{Label: "Sign Out", SignOut: true})

	if session.logouts != 1 {
		t.Errorf("logouts = %d, want 1", session.logouts)
	}
	if len(navigator.visited) != 1 || navigator.visited[0] != route.Home {
		t.Errorf("visited = %v, want [%v]", navigator.visited, route.Home)
	}
	if c.MenuOpen() || c.DrawerOpen() {
		t.Error("chrome still open after sign out")
	}
	if detector.attached || scroll.locked {
		t.Error("resources not released on sign out")
	}

	got := labels(c.Actions())
	want := []string{"Explore", "Log In", "Sign Up"}
	for i := range want {
		if i >= len(got) || got[i] != want[i] {
			t.Fatalf("post sign-out actions = %v, want %v", got, want)
		}
	}
}

type tracedSession struct {
	fakeSession
	trace *[]string
}

func (s *tracedSession) Logout() {
	*s.trace = append(*s.trace, "logout")
	s.fakeSession.Logout()
}

type tracedScroll struct {
	fakeScroll
	trace *[]string
}

func (s *tracedScroll) Unlock() {
	*s.trace = append(*s.trace, "unlock")
	s.fakeScroll.Unlock()
}

type tracedDetector struct {
	fakeDetector
	trace *[]string
}

func (d *tracedDetector) Detach() {
	*d.trace = append(*d.trace, "detach")
	d.fakeDetector.Detach()
}

type tracedNavigator struct {
	fakeNavigator
	trace *[]string
}

func (n *tracedNavigator) NavigateTo(r route.Route) {
	*n.trace = append(*n.trace, "navigate")
	n.fakeNavigator.NavigateTo(r)
}

func TestSignOutOrdersSessionEndBeforeChromeClose(t *testing.T) {
	var trace []string
	identity := &account.Identity{ID: "1", Name: "n", Email: "n@example.com", Role: account.RoleOrganization}
	session := &tracedSession{fakeSession: fakeSession{identity: identity}, trace: &trace}
	detector := &tracedDetector{trace: &trace}
	scroll := &tracedScroll{trace: &trace}
	navigator := &tracedNavigator{trace: &trace}
	c := NewController(session, detector, scroll, navigator)

	c.OpenMenu()
	c.OpenDrawer()
	c.Select(Action{Label: "Sign Out", SignOut: true})

	want := []string{"logout", "navigate", "detach", "unlock"}
	if len(trace) != len(want) {
		t.Fatalf("trace = %v, want %v", trace, want)
	}
	for i := range want {
		if trace[i] != want[i] {
			t.Fatalf("trace = %v, want %v", trace, want)
		}
	}
}

func TestToggleRoundTrips(t *testing.T) {
	c, _, detector, scroll, _ := newFixture(account.RoleIndividual)

	c.ToggleMenu()
	if !c.MenuOpen() {
		t.Fatal("toggle did not open the menu")
	}
	c.ToggleMenu()
	if c.MenuOpen() {
		t.Fatal("toggle did not close the menu")
	}
	if detector.attaches != detector.detaches {
		t.Error("detector attach/detach not paired over a toggle round trip")
	}

	c.ToggleDrawer()
	c.ToggleDrawer()
	if scroll.locks != scroll.unlocks {
		t.Error("scroll lock/unlock not paired over a toggle round trip")
	}
}
