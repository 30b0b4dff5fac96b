package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every variable read by Load.
const EnvPrefix = "RESTWELL_"

// Config holds the runtime settings of the restwell binary.
type Config struct {
	DBPath       string        `env:"DB"`
	LogFile      string        `env:"LOG_FILE"`
	LogLevel     string        `env:"LOG_LEVEL"`
	TickInterval time.Duration `env:"TICK_INTERVAL"`
	CoachDelay   time.Duration `env:"COACH_DELAY"`
	CoachScript  string        `env:"COACH_SCRIPT"`
}

// DefaultConfig returns a Config with the built-in defaults. The database
// lives under ~/.restwell when the home directory can be resolved.
func DefaultConfig() Config {
	dbPath := "restwell.db"
	if home, err := os.UserHomeDir(); err == nil {
		dbPath = filepath.Join(home, ".restwell", "restwell.db")
	}
	return Config{
		DBPath:       dbPath,
		LogLevel:     "info",
		TickInterval: time.Second,
		CoachDelay:   1200 * time.Millisecond,
	}
}

// Load reads RESTWELL_* environment variables on top of DefaultConfig.
func Load() (Config, error) {
	cfg := DefaultConfig()
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.DBPath = expandHome(cfg.DBPath)
	cfg.CoachScript = expandHome(cfg.CoachScript)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values no component can run with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("config: %sDB must not be empty", EnvPrefix)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("config: %sTICK_INTERVAL must be positive, got %s", EnvPrefix, c.TickInterval)
	}
	if c.CoachDelay < 0 {
		return fmt.Errorf("config: %sCOACH_DELAY must not be negative, got %s", EnvPrefix, c.CoachDelay)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel into a slog level.
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("config: %sLOG_LEVEL: %w", EnvPrefix, err)
	}
	return lvl, nil
}

// NewLogger builds the process logger. Without a log file output is
// discarded, since the TUI owns the terminal. The returned closer must be
// called on exit.
func (c Config) NewLogger() (*slog.Logger, io.Closer, error) {
	lvl, err := c.Level()
	if err != nil {
		return nil, nil, err
	}
	if c.LogFile == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(filepath.Dir(c.LogFile), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: lvl})), f, nil
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
