// Package config loads caseguide settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every setting the CLI and TUI read. Root command flags
// override the environment.
type Config struct {
	// ContentPath replaces the built-in guide with a YAML file.
	ContentPath string `env:"CASEGUIDE_CONTENT"`
	// Watch reloads ContentPath when it changes.
	Watch bool `env:"CASEGUIDE_WATCH"`

	// Journal turns on the transition log. JournalPath defaults to the
	// XDG data directory.
	Journal     bool   `env:"CASEGUIDE_JOURNAL"`
	JournalPath string `env:"CASEGUIDE_JOURNAL_PATH"`

	LogFile  string     `env:"CASEGUIDE_LOG_FILE"`
	LogLevel slog.Level `env:"CASEGUIDE_LOG_LEVEL" envDefault:"info"`

	DownloadDir   string        `env:"CASEGUIDE_DOWNLOAD_DIR"   envDefault:"."`
	MarkdownStyle string        `env:"CASEGUIDE_STYLE"          envDefault:"auto"`
	ToastDuration time.Duration `env:"CASEGUIDE_TOAST_DURATION" envDefault:"4s"`
}

// Load parses Config from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.ToastDuration <= 0 {
		return Config{}, fmt.Errorf("CASEGUIDE_TOAST_DURATION must be positive, got %s", cfg.ToastDuration)
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
