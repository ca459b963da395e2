package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

func printHelp(out io.Writer) {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#60a5fa")).
		Bold(true).
		Render("G E S T I Ó N")

	tagline := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render("Técnicos, clientes y tickets desde la terminal.")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	commands := []struct{ cmd, desc string }{
		{"gestion", "Abrir la aplicación (TUI)"},
		{"gestion demo", "Abrir con datos locales de demostración"},
		{"gestion logout", "Cerrar la sesión guardada"},
		{"gestion version", "Mostrar la versión"},
		{"gestion help", "Esta ayuda"},
	}

	fmt.Fprintf(out, "\n  %s\n\n  %s\n\n  Comandos:\n", title, tagline)
	for _, c := range commands {
		fmt.Fprintf(out, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-18s", c.cmd)), descStyle.Render(c.desc))
	}

	env := []struct{ key, desc string }{
		{"GESTION_API_URL", "URL del backend"},
		{"GESTION_MODE", "remote | demo"},
		{"GESTION_DATA_DIR", "Directorio de datos (por defecto ~/.gestion)"},
		{"GESTION_LOG_LEVEL", "debug | info | warn | error"},
		{"GESTION_TIMEOUT", "Tiempo máximo por petición, p. ej. 30s"},
	}
	fmt.Fprint(out, "\n  Variables de entorno (también en .env o config.yaml):\n")
	for _, e := range env {
		fmt.Fprintf(out, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-18s", e.key)), descStyle.Render(e.desc))
	}
	fmt.Fprintln(out)
}
