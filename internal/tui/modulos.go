package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jcel/gestion/internal/router"
)

type moduleCard struct {
	route       router.Route
	description string
}

var moduleCards = []moduleCard{
	{router.Tecnicos, "Registro y control de técnicos."},
	{router.Clientes, "Administración de clientes."},
	{router.Tickets, "Gestión de tickets de asistencia."},
}

// modulosModel is the landing screen after login.
type modulosModel struct {
	cursor int
}

func (m *modulosModel) Init() tea.Cmd {
	return nil
}

func (m modulosModel) Update(msg tea.Msg) (modulosModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "right", "l", "tab":
		m.cursor = (m.cursor + 1) % len(moduleCards)
	case "left", "h", "shift+tab":
		m.cursor = (m.cursor - 1 + len(moduleCards)) % len(moduleCards)
	case "enter":
		return m, navigate(moduleCards[m.cursor].route.Fragment())
	}
	return m, nil
}

func (m modulosModel) View() string {
	var b strings.Builder
	b.WriteString("  " + titleStyle.Render("Módulos asignados") + "\n")
	b.WriteString("  " + dimStyle.Render("Seleccione un módulo para iniciar la gestión.") + "\n\n")

	cards := make([]string, len(moduleCards))
	for i, c := range moduleCards {
		style := cardStyle
		title := normalStyle.Bold(true).Render(c.route.Label())
		if i == m.cursor {
			style = activeCardStyle
			title = accentStyle.Bold(true).Render(c.route.Label())
		}
		cards[i] = style.Render(title + "\n" + dimStyle.Render(c.description))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	b.WriteString("\n")
	return b.String()
}

func (m modulosModel) helpView() string {
	return helpBar("←/→", "módulo", "enter", "entrar", "1-4", "navegar", "L", "cerrar sesión", "q", "salir")
}
