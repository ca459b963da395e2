package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jcel/gestion/internal/config"
	"github.com/jcel/gestion/internal/data"
	"github.com/jcel/gestion/internal/session"
	"github.com/jcel/gestion/internal/storage"
	"github.com/jcel/gestion/internal/tui"
	"github.com/jcel/gestion/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	var command string
	if len(args) > 0 {
		command = args[0]
	}

	switch command {
	case "--version", "version", "-v":
		fmt.Fprintln(out, "gestion "+version)
		return nil
	case "help", "--help", "-h":
		printHelp(out)
		return nil
	case "", "demo", "logout":
	default:
		return fmt.Errorf("unknown command %q (try: gestion help)", command)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if command == "demo" {
		cfg.Mode = config.ModeDemo
	}

	logger, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog() //nolint:errcheck

	db, err := storage.OpenSQLite(cfg.DBPath())
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close() //nolint:errcheck

	sessions := session.NewStore(db)

	if command == "logout" {
		return runLogout(out, sessions)
	}

	dropped, err := sessions.DropExpired(time.Now())
	if err != nil {
		logger.Warn("stored session unreadable", "error", err)
	} else if dropped {
		logger.Info("expired session cleared")
	}

	logger.Info("starting", "version", version, "mode", cfg.Mode, "api_url", cfg.APIURL)
	app := tui.NewApp(appOptions(cfg, db, sessions, logger))

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

// openLogger writes JSON logs to the data directory; the terminal belongs
// to the TUI.
func openLogger(cfg *config.Config) (*slog.Logger, func() error, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, nil, fmt.Errorf("create data dir: %w", err)
	}
	f, err := os.OpenFile(cfg.LogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	logger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger, f.Close, nil
}

// appOptions picks the backend for the configured mode.
func appOptions(cfg *config.Config, kv storage.KV, sessions *session.Store, logger *slog.Logger) tui.Options {
	opts := tui.Options{
		Sessions: sessions,
		Logger:   logger,
	}
	if cfg.Mode == config.ModeDemo {
		opts.Backend = data.NewLocal(kv, sessions)
		opts.Badge = "demo"
		opts.Hint = fmt.Sprintf("Modo demo: %s / %s", data.DemoEmail, data.DemoPassword)
		return opts
	}
	opts.Backend = client.New(cfg.APIURL, sessions, cfg.Timeout).WithLogger(logger)
	return opts
}

func runLogout(out io.Writer, sessions *session.Store) error {
	if !sessions.Authenticated() {
		fmt.Fprintln(out, "No hay una sesión activa.")
		return nil
	}
	if err := sessions.Clear(); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	fmt.Fprintln(out, "Sesión cerrada.")
	return nil
}
