package tui

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jcel/gestion/internal/data"
	"github.com/jcel/gestion/internal/router"
	"github.com/jcel/gestion/internal/session"
	"github.com/jcel/gestion/pkg/domain"
)

// Options configures the root model.
type Options struct {
	Backend  data.Backend
	Sessions *session.Store
	Logger   *slog.Logger
	// Location is the starting fragment; empty starts at login.
	Location string
	// Hint is shown under the login form.
	Hint string
	// Badge is shown next to the logo, e.g. the backend mode.
	Badge string
}

// App is the root Bubbletea model. It owns the current location and runs
// every navigation through the router guards.
type App struct {
	sessions *session.Store
	logger   *slog.Logger
	badge    string

	location string
	route    router.Route
	session  *domain.Session

	login    loginModel
	modulos  modulosModel
	tecnicos crudModel[domain.Tecnico]
	clientes crudModel[domain.Cliente]
	tickets  crudModel[domain.Ticket]

	width  int
	height int
	frame  int // logo shimmer animation frame
}

// NewApp creates a new TUI application.
func NewApp(opts Options) App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	login := newLoginModel(opts.Backend, opts.Sessions)
	login.hint = opts.Hint
	return App{
		sessions: opts.Sessions,
		logger:   logger,
		badge:    opts.Badge,
		location: opts.Location,
		login:    login,
		tecnicos: newCrudModel(&tecnicoEntity, opts.Backend, opts.Sessions),
		clientes: newCrudModel(&clienteEntity, opts.Backend, opts.Sessions),
		tickets:  newCrudModel(&ticketEntity, opts.Backend, opts.Sessions),
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(navigate(a.location), shimmerTickCmd())
}

// Location returns the current fragment.
func (a App) Location() string {
	return a.location
}

func (a App) authenticated() bool {
	return a.sessions != nil && a.sessions.Authenticated()
}

// navigateTo runs the guards for location, following redirects until a
// route renders, then initializes that route's screen.
func (a App) navigateTo(location string) (App, tea.Cmd) {
	decision := router.Step(location, a.authenticated())
	for decision.Redirected() {
		a.logger.Debug("redirect", "from", location, "to", decision.Redirect)
		location = decision.Redirect
		decision = router.Step(location, a.authenticated())
	}

	a.location = location
	a.route = decision.Render
	a.session = nil
	if a.sessions != nil {
		if sess, err := a.sessions.Get(); err == nil {
			a.session = sess
		}
	}

	a.login.leave()
	a.tecnicos.leave()
	a.clientes.leave()
	a.tickets.leave()

	var cmd tea.Cmd
	switch a.route {
	case router.Modulos:
		cmd = a.modulos.Init()
	case router.Tecnicos:
		cmd = a.tecnicos.Init()
	case router.Clientes:
		cmd = a.clientes.Init()
	case router.Tickets:
		cmd = a.tickets.Init()
	default:
		cmd = a.login.Init()
	}
	return a, cmd
}

func (a App) logout() (App, tea.Cmd) {
	if err := a.sessions.Clear(); err != nil {
		a.logger.Error("logout", "error", err)
	}
	a.logger.Info("logout")
	return a.navigateTo(router.Login.Fragment())
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + nav(1) + blank(1) + help(1) = 5 lines
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 5}
		a.tecnicos, _ = a.tecnicos.Update(bodyMsg)
		a.clientes, _ = a.clientes.Update(bodyMsg)
		a.tickets, _ = a.tickets.Update(bodyMsg)
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case navigateMsg:
		return a.navigateTo(msg.location)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.isEditing() {
			switch msg.String() {
			case "q":
				return a, tea.Quit
			case "L":
				if a.authenticated() {
					return a.logout()
				}
			}
			for _, link := range router.NavLinks(a.route, a.authenticated()) {
				if msg.String() == link.Key {
					return a.navigateTo(link.Route.Fragment())
				}
			}
		}
		return a.updateActive(msg)
	}

	// Responses are offered to every screen; each one only accepts its own
	// message types and request ids.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.login, cmd = a.login.Update(msg)
	cmds = append(cmds, cmd)
	a.tecnicos, cmd = a.tecnicos.Update(msg)
	cmds = append(cmds, cmd)
	a.clientes, cmd = a.clientes.Update(msg)
	cmds = append(cmds, cmd)
	a.tickets, cmd = a.tickets.Update(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

func (a App) updateActive(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.route {
	case router.Modulos:
		a.modulos, cmd = a.modulos.Update(msg)
	case router.Tecnicos:
		a.tecnicos, cmd = a.tecnicos.Update(msg)
	case router.Clientes:
		a.clientes, cmd = a.clientes.Update(msg)
	case router.Tickets:
		a.tickets, cmd = a.tickets.Update(msg)
	default:
		a.login, cmd = a.login.Update(msg)
	}
	return a, cmd
}

// isEditing returns true when the active screen is capturing text input.
func (a App) isEditing() bool {
	switch a.route {
	case router.Modulos:
		return false
	case router.Tecnicos:
		return a.tecnicos.isEditing()
	case router.Clientes:
		return a.clientes.isEditing()
	case router.Tickets:
		return a.tickets.isEditing()
	default:
		return a.login.isEditing()
	}
}

func (a App) View() string {
	logo := renderShimmerLogo(a.frame)
	if a.badge != "" {
		logo += "  " + metaStyle.Render(a.badge)
	}
	logoPad := max((a.width-lipgloss.Width(logo))/2, 0)
	header := strings.Repeat(" ", logoPad) + logo + "\n"
	if a.session.Authenticated() {
		header += " " + welcomeStyle.Render("Bienvenido - "+sanitize(a.session.Name))
	}

	var nav strings.Builder
	links := router.NavLinks(a.route, a.authenticated())
	for _, link := range links {
		if link.Active {
			nav.WriteString(" " + accentStyle.Render(link.Key) + " " + selectedStyle.Underline(true).Render(link.Route.Label()) + " ")
		} else {
			nav.WriteString(" " + metaStyle.Render(link.Key) + " " + dimStyle.Render(link.Route.Label()) + " ")
		}
	}
	if len(links) > 0 {
		nav.WriteString("  " + metaStyle.Render("L") + " " + dimStyle.Render("Cerrar sesión"))
	} else {
		nav.WriteString(" " + selectedStyle.Render(router.Login.Label()))
	}

	var body, help string
	switch a.route {
	case router.Modulos:
		body, help = a.modulos.View(), a.modulos.helpView()
	case router.Tecnicos:
		body, help = a.tecnicos.View(), a.tecnicos.helpView()
	case router.Clientes:
		body, help = a.clientes.View(), a.clientes.helpView()
	case router.Tickets:
		body, help = a.tickets.View(), a.tickets.helpView()
	default:
		body, help = a.login.View(), a.login.helpView()
	}

	// Chrome budget: header(2) + nav(1) + blank(1) + help(1) = 5 lines + body
	body = strings.TrimRight(truncateToHeight(body, a.height-5), "\n")

	return fmt.Sprintf("%s\n%s\n\n%s\n%s", header, nav.String(), body, help)
}
