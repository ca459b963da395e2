package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jcel/gestion/internal/config"
	"github.com/jcel/gestion/internal/data"
	"github.com/jcel/gestion/internal/session"
	"github.com/jcel/gestion/internal/storage"
	"github.com/jcel/gestion/pkg/client"
	"github.com/jcel/gestion/pkg/domain"
)

func testConfig(t *testing.T, mode config.Mode) *config.Config {
	t.Helper()
	return &config.Config{
		APIURL:   "http://127.0.0.1:1",
		DataDir:  t.TempDir(),
		Mode:     mode,
		LogLevel: "debug",
		Timeout:  time.Second,
	}
}

func TestRunVersion(t *testing.T) {
	for _, arg := range []string{"version", "--version", "-v"} {
		var out bytes.Buffer
		if err := run([]string{arg}, &out); err != nil {
			t.Fatalf("%s: %v", arg, err)
		}
		if got := strings.TrimSpace(out.String()); got != "gestion dev" {
			t.Errorf("%s printed %q", arg, got)
		}
	}
}

func TestRunHelpListsCommands(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"help"}, &out); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"gestion demo", "gestion logout", "GESTION_API_URL"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("help missing %q", want)
		}
	}
}

func TestRunUnknownCommand(t *testing.T) {
	err := run([]string{"nada"}, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Errorf("err = %v", err)
	}
}

func TestRunLogoutClearsStoredSession(t *testing.T) {
	dir := t.TempDir()
	chdir(t, t.TempDir())
	t.Setenv("GESTION_DATA_DIR", dir)
	t.Setenv("GESTION_MODE", "")

	db, err := storage.OpenSQLite(filepath.Join(dir, "gestion.db"))
	if err != nil {
		t.Fatal(err)
	}
	if err := session.NewStore(db).Set(domain.Session{Token: "tok", Email: "a@b.c"}); err != nil {
		t.Fatal(err)
	}
	if err := db.Close(); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := run([]string{"logout"}, &out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Sesión cerrada.") {
		t.Errorf("output = %q", out.String())
	}

	out.Reset()
	if err := run([]string{"logout"}, &out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No hay una sesión activa.") {
		t.Errorf("second logout output = %q", out.String())
	}
}

func TestOpenLoggerWritesJSON(t *testing.T) {
	cfg := testConfig(t, config.ModeRemote)
	logger, closeLog, err := openLogger(cfg)
	if err != nil {
		t.Fatal(err)
	}
	logger.Debug("hola", "k", "v")
	if err := closeLog(); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(cfg.LogPath())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), `"msg":"hola"`) {
		t.Errorf("log = %s", raw)
	}
}

func TestOpenLoggerRejectsBadLevel(t *testing.T) {
	cfg := testConfig(t, config.ModeRemote)
	cfg.LogLevel = "ruidoso"
	if _, _, err := openLogger(cfg); err == nil {
		t.Error("expected an invalid level error")
	}
}

func TestAppOptionsByMode(t *testing.T) {
	kv := storage.NewMemory()
	sessions := session.NewStore(kv)

	remote := appOptions(testConfig(t, config.ModeRemote), kv, sessions, nil)
	if _, ok := remote.Backend.(*client.Client); !ok {
		t.Errorf("remote backend = %T", remote.Backend)
	}
	if remote.Badge != "" || remote.Hint != "" {
		t.Error("remote mode should not show demo chrome")
	}

	demo := appOptions(testConfig(t, config.ModeDemo), kv, sessions, nil)
	if _, ok := demo.Backend.(*data.Local); !ok {
		t.Errorf("demo backend = %T", demo.Backend)
	}
	if !strings.Contains(demo.Hint, data.DemoEmail) {
		t.Errorf("hint = %q", demo.Hint)
	}
}

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatal(err)
		}
	})
}
