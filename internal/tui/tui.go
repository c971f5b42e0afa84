package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"codeberg.org/voiceai/client/internal/api"
	"codeberg.org/voiceai/client/internal/callback"
	"codeberg.org/voiceai/client/internal/config"
	"codeberg.org/voiceai/client/internal/limits"
	"codeberg.org/voiceai/client/internal/session"
	"codeberg.org/voiceai/client/internal/voices"
)

// App is the root model. It owns the route, the shared dependencies,
// and one model per screen; messages flow through here first so
// cross-screen broadcasts (session changes, history updates, payment
// returns) can fan out.
type App struct {
	deps *deps

	route  Route
	resume Route
	width  int
	height int

	sessionCh chan *session.Identity

	landing        *LandingModel
	login          *LoginModel
	register       *RegisterModel
	console        *ConsoleModel
	history        *HistoryModel
	cloning        *CloningModel
	premium        *PremiumModel
	paymentSuccess *PaymentSuccessModel
	paymentCancel  *PaymentCancelModel
}

func NewApp(cfg *config.Config, backend *api.Backend, synth *api.Synth, store *session.Store, resolver *limits.Resolver, catalog *voices.Catalog, listener *callback.Listener) *App {
	d := &deps{
		cfg:      cfg,
		backend:  backend,
		synth:    synth,
		session:  store,
		resolver: resolver,
		catalog:  catalog,
		listener: listener,
	}

	a := &App{
		deps:      d,
		route:     RouteLanding,
		resume:    RouteConsole,
		sessionCh: make(chan *session.Identity, 8),
		landing:   NewLanding(d),
		console:   NewConsole(d),
	}

	store.Subscribe(func(id *session.Identity) {
		a.sessionCh <- id
	})

	return a
}

func (a *App) Init() tea.Cmd {
	return awaitSessionCmd(a.sessionCh)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a.routeUpdate(msg)

	case NavigateMsg:
		return a, a.navigate(msg.Route)

	case SessionChangedMsg:
		cmds := []tea.Cmd{awaitSessionCmd(a.sessionCh)}
		if a.route == RouteConsole {
			// tier changed, so the limits and the voice list did too
			_, cmd := a.console.Update(msg)
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case HistoryUpdatedMsg:
		if a.history != nil {
			_, cmd := a.history.Update(msg)
			return a, cmd
		}
		return a, nil

	case paymentEventMsg:
		if msg.event.Kind == callback.KindCancel {
			a.paymentCancel = NewPaymentCancel(a.deps)
			a.route = RoutePaymentCancel
			return a, nil
		}
		a.paymentSuccess = NewPaymentSuccess(a.deps, msg.event.SessionID)
		a.route = RoutePaymentSuccess
		return a, a.paymentSuccess.Init()
	}

	return a.routeUpdate(msg)
}

func (a *App) View() string {
	switch a.route {
	case RouteLanding:
		return a.landing.View()
	case RouteLogin:
		return a.login.View()
	case RouteRegister:
		return a.register.View()
	case RouteConsole:
		return a.console.View()
	case RouteHistory:
		return a.history.View()
	case RouteCloning:
		return a.cloning.View()
	case RoutePremium:
		return a.premium.View()
	case RoutePaymentSuccess:
		return a.paymentSuccess.View()
	case RoutePaymentCancel:
		return a.paymentCancel.View()
	default:
		return "Unknown screen"
	}
}

// requiresIdentity reports whether a route only makes sense for a
// signed-in user
func requiresIdentity(r Route) bool {
	switch r {
	case RouteHistory, RouteCloning, RoutePremium:
		return true
	}
	return false
}

// navigate switches screens, diverting identity-requiring routes to
// the login screen when the session is anonymous. The requested route
// is kept and resumed after a successful login or registration.
func (a *App) navigate(r Route) tea.Cmd {
	if requiresIdentity(r) && !a.deps.session.Authenticated() {
		a.resume = r
		a.login = NewLogin(a.deps)
		a.route = RouteLogin
		return a.login.Init()
	}

	switch r {
	case RouteLanding:
		a.landing = NewLanding(a.deps)
		a.route = RouteLanding
		return nil

	case RouteLogin:
		a.resume = RouteConsole
		a.login = NewLogin(a.deps)
		a.route = RouteLogin
		return a.login.Init()

	case RouteRegister:
		a.register = NewRegister(a.deps)
		a.route = RouteRegister
		return a.register.Init()

	case RouteConsole:
		a.route = RouteConsole
		return a.console.Init()

	case RouteHistory:
		a.history = NewHistory(a.deps)
		a.route = RouteHistory
		return a.history.Init()

	case RouteCloning:
		a.cloning = NewCloning(a.deps)
		a.route = RouteCloning
		return a.cloning.Init()

	case RoutePremium:
		a.premium = NewPremium(a.deps)
		a.route = RoutePremium
		return a.premium.Init()

	case RoutePaymentCancel:
		a.paymentCancel = NewPaymentCancel(a.deps)
		a.route = RoutePaymentCancel
		return nil
	}

	return nil
}

// resumeRoute is where a completed login or registration lands
func (a *App) resumeRoute() tea.Cmd {
	r := a.resume
	a.resume = RouteConsole
	return a.navigate(r)
}

func (a *App) routeUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch a.route {
	case RouteLanding:
		a.landing, cmd = a.landing.Update(msg)

	case RouteLogin:
		var done bool
		a.login, cmd, done = a.login.Update(msg)
		if done {
			return a, tea.Batch(cmd, a.resumeRoute())
		}

	case RouteRegister:
		var done bool
		a.register, cmd, done = a.register.Update(msg)
		if done {
			return a, tea.Batch(cmd, a.resumeRoute())
		}

	case RouteConsole:
		a.console, cmd = a.console.Update(msg)

	case RouteHistory:
		a.history, cmd = a.history.Update(msg)

	case RouteCloning:
		a.cloning, cmd = a.cloning.Update(msg)

	case RoutePremium:
		a.premium, cmd = a.premium.Update(msg)

	case RoutePaymentSuccess:
		a.paymentSuccess, cmd = a.paymentSuccess.Update(msg)

	case RoutePaymentCancel:
		a.paymentCancel, cmd = a.paymentCancel.Update(msg)
	}

	return a, cmd
}
