package ui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"placerank/internal/app/account"
	"placerank/internal/client/api"
	"placerank/internal/client/gate"
	"placerank/internal/client/livefeed"
	"placerank/internal/client/nav"
	"placerank/internal/client/route"
	"placerank/internal/client/session"
)

// keyDetector adapts terminal input to the navigation controller's
// outside-interaction watch: while attached, any key that is not menu
// navigation counts as interaction outside the menu.
type keyDetector struct {
	onOutside func()
}

func (d *keyDetector) Attach(fn func()) { d.onOutside = fn }
func (d *keyDetector) Detach()          { d.onOutside = nil }

// Fire reports an outside interaction to the attached watcher, if any.
func (d *keyDetector) Fire() {
	if d.onOutside != nil {
		d.onOutside()
	}
}

// renderLock is the terminal analogue of freezing the content behind the
// drawer: while locked, the app stops forwarding input to the active page.
type renderLock struct {
	locked bool
}

func (l *renderLock) Lock()        { l.locked = true }
func (l *renderLock) Unlock()      { l.locked = false }
func (l *renderLock) Locked() bool { return l.locked }

// App is the root model: it owns the session, the navigation controller,
// and the page models, and routes every message to the active page.
type App struct {
	session  *session.Store
	client   *api.Client
	nav      *nav.Controller
	detector *keyDetector
	scroll   *renderLock
	styles   Styles

	route route.Route
	// pendingRoute holds a navigation requested while the session was still
	// restoring; it replays once the restore finishes.
	pendingRoute route.Route

	width  int
	height int

	home     HomeModel
	explore  ExploreModel
	login    LoginModel
	register RegisterModel
	profile  ProfileModel
	addPlace AddPlaceModel
	settings SettingsModel

	feedURL string
	live    *livefeed.Listener

	menuCursor   int
	drawerCursor int

	// cmds collects commands produced by synchronous controller callbacks
	// during one Update pass.
	cmds []tea.Cmd
}

// NewApp assembles the client. serverURL is the service base URL; feedURL is
// its live feed websocket endpoint, empty to disable the feed.
func NewApp(store *session.Store, client *api.Client, serverURL, feedURL, sessionPath string) *App {
	styles := DefaultStyles()
	a := &App{
		session:  store,
		client:   client,
		detector: &keyDetector{},
		scroll:   &renderLock{},
		styles:   styles,
		route:    route.Home,
		width:    compactWidth,
		home:     NewHomeModel(styles),
		explore:  NewExploreModel(client, styles),
		login:    NewLoginModel(client, styles),
		register: NewRegisterModel(client, styles),
		profile:  NewProfileModel(client, styles),
		addPlace: NewAddPlaceModel(client, styles),
		settings: NewSettingsModel(styles, serverURL, sessionPath),
		feedURL:  feedURL,
	}
	a.nav = nav.NewController(store, a.detector, a.scroll, a)
	return a
}

// Init restores the session and connects the live feed.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.loadSession()}
	if a.feedURL != "" {
		cmds = append(cmds, a.connectLive())
	}
	return tea.Batch(cmds...)
}

func (a *App) loadSession() tea.Cmd {
	store := a.session
	return func() tea.Msg {
		store.Load()
		return sessionLoadedMsg{}
	}
}

func (a *App) connectLive() tea.Cmd {
	feedURL := a.feedURL
	return func() tea.Msg {
		listener, err := livefeed.Dial(context.Background(), feedURL)
		if err != nil {
			return liveClosedMsg{err: err}
		}
		return liveConnectedMsg{listener: listener}
	}
}

func (a *App) waitForLive() tea.Cmd {
	listener := a.live
	return func() tea.Msg {
		event, ok := <-listener.Events()
		if !ok {
			return liveClosedMsg{}
		}
		return liveMsg{event: event}
	}
}

// NavigateTo satisfies nav.Navigator. Navigation triggered by the controller
// runs through the same gate as direct navigation.
func (a *App) NavigateTo(r route.Route) {
	a.goTo(r)
}

// requiredRole maps a route to the role its gate demands. The empty role
// admits any signed-in account; ungated routes are not in the map.
var requiredRole = map[route.Route]account.Role{
	route.Profile:        account.RoleIndividual,
	route.CompanyProfile: account.RoleOrganization,
	route.AddPlace:       account.RoleOrganization,
	route.Settings:       "",
}

// goTo runs the gate for the destination and, if admitted, switches pages.
// Page entry effects (form resets, data loads) happen here so revisits start
// clean.
func (a *App) goTo(r route.Route) {
	if role, gated := requiredRole[r]; gated {
		switch outcome := gate.Evaluate(a.session, role); outcome {
		case gate.Wait:
			a.pendingRoute = r
			return
		case gate.RedirectLogin, gate.RedirectHome:
			a.goTo(gate.Target(outcome))
			return
		}
	}

	a.route = r
	switch r {
	case route.Explore:
		a.explore.SetCanRate(a.session.IsIndividual())
		a.explore.loading = true
		a.cmds = append(a.cmds, a.explore.Refresh())
	case route.Login:
		a.login = a.login.Reset()
	case route.Register:
		a.register = a.register.Reset()
	case route.Profile, route.CompanyProfile:
		a.cmds = append(a.cmds, a.profile.Refresh())
	case route.AddPlace:
		a.addPlace = a.addPlace.Reset()
	}
}

// takeCmds drains commands queued by synchronous navigation callbacks.
func (a *App) takeCmds() tea.Cmd {
	if len(a.cmds) == 0 {
		return nil
	}
	cmd := tea.Batch(a.cmds...)
	a.cmds = nil
	return cmd
}

// Update is the message loop.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.explore.SetSize(msg.Width, msg.Height)
		if msg.Width >= compactWidth {
			// Drawer only exists on compact layouts; leaving one closes it.
			a.nav.CloseDrawer()
		}
		return a, nil

	case sessionLoadedMsg:
		if a.pendingRoute != "" {
			pending := a.pendingRoute
			a.pendingRoute = ""
			a.goTo(pending)
		}
		return a, a.takeCmds()

	case authDoneMsg:
		if msg.err == nil {
			a.session.Login(msg.result.Token, msg.result.User)
			a.goTo(route.Home)
			return a, a.takeCmds()
		}
		return a.updatePage(msg)

	case profileSavedMsg:
		if msg.err == nil {
			a.session.Replace(msg.result.Token, msg.result.User)
		}
		return a.updatePage(msg)

	case editPlaceMsg:
		a.goTo(route.AddPlace)
		if a.route == route.AddPlace {
			a.addPlace = a.addPlace.StartEdit(msg.place)
		}
		return a, a.takeCmds()

	case liveConnectedMsg:
		a.live = msg.listener
		return a, a.waitForLive()

	case liveMsg:
		var cmd tea.Cmd
		a.explore, cmd = a.explore.Update(msg)
		return a, tea.Batch(cmd, a.waitForLive())

	case liveClosedMsg:
		a.live = nil
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a.updatePage(msg)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, a.quit()
	}

	if a.nav.MenuOpen() {
		return a.handleMenuKey(msg)
	}
	if a.nav.DrawerOpen() {
		return a.handleDrawerKey(msg)
	}

	// The form pages have no internal escape; esc leaves them.
	if msg.String() == "esc" {
		switch a.route {
		case route.Login, route.Register, route.AddPlace:
			a.goTo(route.Home)
			return a, a.takeCmds()
		}
	}

	if !a.activeTyping() {
		switch msg.String() {
		case "q":
			return a, a.quit()
		case "H":
			a.goTo(route.Home)
			return a, a.takeCmds()
		case "p":
			if a.session.IsAuthenticated() {
				a.nav.ToggleMenu()
				a.menuCursor = 0
				return a, nil
			}
		case "d":
			if a.width < compactWidth {
				a.nav.ToggleDrawer()
				a.drawerCursor = 0
				return a, nil
			}
		default:
			for _, action := range a.nav.Actions() {
				if actionKey(action) == msg.String() {
					a.nav.Select(action)
					return a, a.takeCmds()
				}
			}
		}
	}

	return a.updatePage(msg)
}

// handleMenuKey drives the open profile disclosure. Any key that is not menu
// navigation counts as outside interaction and closes it.
func (a *App) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := menuItems(a.nav.Actions())

	switch msg.String() {
	case "up", "k":
		if a.menuCursor > 0 {
			a.menuCursor--
		}
	case "down", "j":
		if a.menuCursor < len(items)-1 {
			a.menuCursor++
		}
	case "enter":
		if len(items) > 0 {
			a.nav.Select(items[a.menuCursor])
		}
		return a, a.takeCmds()
	case "esc", "p":
		a.nav.CloseMenu()
	default:
		a.detector.Fire()
	}
	return a, nil
}

// handleDrawerKey drives the open drawer. The content behind it is locked,
// so no key reaches the active page.
func (a *App) handleDrawerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := drawerItems(a.nav.Actions())

	switch msg.String() {
	case "up", "k":
		if a.drawerCursor > 0 {
			a.drawerCursor--
		}
	case "down", "j":
		if a.drawerCursor < len(items)-1 {
			a.drawerCursor++
		}
	case "enter":
		a.nav.Select(items[a.drawerCursor])
		return a, a.takeCmds()
	case "esc", "d":
		a.nav.CloseDrawer()
	}
	return a, nil
}

// activeTyping reports whether the active page's form owns the keyboard.
func (a *App) activeTyping() bool {
	switch a.route {
	case route.Explore:
		return a.explore.Typing()
	case route.Login:
		return a.login.Typing()
	case route.Register:
		return a.register.Typing()
	case route.Profile, route.CompanyProfile:
		return a.profile.Typing()
	case route.AddPlace:
		return a.addPlace.Typing()
	}
	return false
}

// updatePage forwards a message to the active page, unless the drawer has
// the content locked.
func (a *App) updatePage(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, isKey := msg.(tea.KeyMsg); isKey && a.scroll.Locked() {
		return a, nil
	}

	var cmd tea.Cmd
	switch a.route {
	case route.Explore:
		a.explore, cmd = a.explore.Update(msg)
	case route.Login:
		a.login, cmd = a.login.Update(msg)
	case route.Register:
		a.register, cmd = a.register.Update(msg)
	case route.Profile, route.CompanyProfile:
		a.profile, cmd = a.profile.Update(msg)
	case route.AddPlace:
		a.addPlace, cmd = a.addPlace.Update(msg)
	}
	return a, cmd
}

// quit tears the navigation chrome down, closes the live feed, and exits.
func (a *App) quit() tea.Cmd {
	a.nav.Teardown()
	if a.live != nil {
		a.live.Close()
	}
	return tea.Quit
}

// View renders the chrome and the active page.
func (a *App) View() string {
	var sb strings.Builder

	if a.width >= compactWidth {
		sb.WriteString(renderNavbar(a.styles, a.nav.Actions(), a.route) + "\n")
		if a.nav.MenuOpen() {
			sb.WriteString(renderMenu(a.styles, menuItems(a.nav.Actions()), a.menuCursor) + "\n")
		}
	} else {
		header := a.styles.Title.Render(" Place Rank ") + a.styles.Help.Render("  d menu")
		sb.WriteString(header + "\n")
		if a.nav.DrawerOpen() {
			sb.WriteString(renderDrawer(a.styles, a.nav.Actions(), a.drawerCursor) + "\n")
		}
	}
	sb.WriteString("\n")

	if !a.nav.DrawerOpen() || a.width >= compactWidth {
		sb.WriteString(a.pageView())
	}

	sb.WriteString("\n" + a.styles.Help.Render("q quit"))
	return lipgloss.NewStyle().MaxWidth(max(a.width, 20)).Render(sb.String())
}

func (a *App) pageView() string {
	switch a.route {
	case route.Explore:
		return a.explore.View()
	case route.Login:
		return a.login.View()
	case route.Register:
		return a.register.View()
	case route.Profile, route.CompanyProfile:
		return a.profile.View()
	case route.AddPlace:
		return a.addPlace.View()
	case route.Settings:
		if identity, ok := a.session.Current(); ok {
			return a.settings.View(identity)
		}
		return ""
	default:
		var identity *account.Identity
		if current, ok := a.session.Current(); ok {
			identity = &current
		}
		return a.home.View(identity)
	}
}
