// Package config resolves the client's settings from defaults, an optional
// config.yaml in the data directory, a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Mode selects the data backend.
type Mode string

const (
	ModeRemote Mode = "remote"
	ModeDemo   Mode = "demo"
)

// DefaultAPIURL is the hosted ticketing backend.
const DefaultAPIURL = "https://back-gestion-de-tickets-jcel.vercel.app"

// Config holds the resolved settings.
type Config struct {
	APIURL   string        `yaml:"api_url"`
	DataDir  string        `yaml:"-"`
	Mode     Mode          `yaml:"mode"`
	LogLevel string        `yaml:"log_level"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Default returns the built-in settings.
func Default() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("get home dir: %w", err)
	}
	return &Config{
		APIURL:   DefaultAPIURL,
		DataDir:  filepath.Join(home, ".gestion"),
		Mode:     ModeRemote,
		LogLevel: "info",
		Timeout:  30 * time.Second,
	}, nil
}

// Load resolves the configuration. A missing .env or config.yaml is not an
// error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg, err := Default()
	if err != nil {
		return nil, err
	}
	cfg.DataDir = envStr("GESTION_DATA_DIR", cfg.DataDir)

	if err := cfg.mergeFile(cfg.FilePath()); err != nil {
		return nil, err
	}

	cfg.APIURL = envStr("GESTION_API_URL", cfg.APIURL)
	cfg.Mode = Mode(envStr("GESTION_MODE", string(cfg.Mode)))
	cfg.LogLevel = envStr("GESTION_LOG_LEVEL", cfg.LogLevel)
	if cfg.Timeout, err = envDuration("GESTION_TIMEOUT", cfg.Timeout); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// mergeFile overlays the YAML file at path onto c.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("GESTION_API_URL must be an http(s) URL, got %q", c.APIURL)
	}
	if c.Mode != ModeRemote && c.Mode != ModeDemo {
		return fmt.Errorf("GESTION_MODE must be %q or %q, got %q", ModeRemote, ModeDemo, c.Mode)
	}
	if c.DataDir == "" {
		return fmt.Errorf("GESTION_DATA_DIR must not be empty")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("GESTION_TIMEOUT must not be negative")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// FilePath is the optional YAML config file.
func (c *Config) FilePath() string {
	return filepath.Join(c.DataDir, "config.yaml")
}

// DBPath is the SQLite store holding the session and demo data.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "gestion.db")
}

// LogPath is where the JSON log is written while the TUI owns the terminal.
func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, "gestion.log")
}

// SlogLevel parses LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("GESTION_LOG_LEVEL: %w", err)
	}
	return level, nil
}

func envStr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
