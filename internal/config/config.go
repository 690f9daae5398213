// Package config provides configuration loading using koanf.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/nikbrunner/marks/internal/logging"
)

// EnvPrefix is the prefix for environment overrides, e.g. MARKS_DATABASE_PATH.
const EnvPrefix = "MARKS_"

// Default configuration values.
const (
	DefaultTitleTimeout     = 5 * time.Second
	DefaultFaviconTimeout   = 3 * time.Second
	DefaultCheckConcurrency = 10
	DefaultCheckTimeout     = 10 * time.Second
)

// Config is the root configuration structure.
type Config struct {
	Database DatabaseConfig `koanf:"database" validate:"required"`
	Log      LogConfig      `koanf:"log"      validate:"required"`
	Enrich   EnrichConfig   `koanf:"enrich"   validate:"required"`
	Check    CheckConfig    `koanf:"check"    validate:"required"`
}

// DatabaseConfig locates the bookmark database.
type DatabaseConfig struct {
	Path string `koanf:"path" validate:"required"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level      string `koanf:"level"       validate:"required,oneof=debug info warn error"`
	Format     string `koanf:"format"      validate:"required,oneof=text json logfmt"`
	File       string `koanf:"file"`
	MaxSizeMB  int    `koanf:"max_size"    validate:"min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"     validate:"min=0,max=365"`
}

// EnrichConfig controls page title and favicon lookups.
type EnrichConfig struct {
	TitleTimeout   time.Duration `koanf:"title_timeout"   validate:"required,min=100ms"`
	FaviconTimeout time.Duration `koanf:"favicon_timeout" validate:"required,min=100ms"`
	UserAgent      string        `koanf:"user_agent"      validate:"required"`
}

// CheckConfig controls the link health checker.
type CheckConfig struct {
	Concurrency    int           `koanf:"concurrency"     validate:"required,min=1,max=100"`
	Timeout        time.Duration `koanf:"timeout"         validate:"required,min=100ms"`
	ExcludeDomains []string      `koanf:"exclude_domains"`
}

// Logging converts the log section into a logging.Config.
func (c LogConfig) Logging() logging.Config {
	return logging.Config{
		Level:      c.Level,
		Format:     c.Format,
		File:       c.File,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
	}
}

// defaults returns the default configuration values.
func defaults() map[string]any {
	return map[string]any{
		"database.path": "bookmarks.db",

		"log.level":       "info",
		"log.format":      "text",
		"log.file":        "marks.log",
		"log.max_size":    10,
		"log.max_backups": 3,
		"log.max_age":     28,

		"enrich.title_timeout":   DefaultTitleTimeout.String(),
		"enrich.favicon_timeout": DefaultFaviconTimeout.String(),
		"enrich.user_agent":      "marks/1.0",

		"check.concurrency":     DefaultCheckConcurrency,
		"check.timeout":         DefaultCheckTimeout.String(),
		"check.exclude_domains": []string{"github.com", "gitlab.com"},
	}
}

// Load loads configuration with the following precedence (highest to lowest):
//  1. Environment variables (MARKS_ prefix)
//  2. The config file at path, or DefaultPath() when path is empty
//  3. Default values
//
// An explicitly given path must exist; the default path is optional.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := loadFile(k, path, explicit); err != nil {
			return nil, fmt.Errorf("loading config %q: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// envKey maps MARKS_ENRICH_TITLE_TIMEOUT to enrich.title_timeout.
// Only the first underscore separates section from key.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

func loadFile(k *koanf.Koanf, path string, required bool) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return err
	}
	return k.Load(file.Provider(path), yaml.Parser())
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// DefaultPath returns the default config path: ~/.config/marks/config.yaml
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", "marks", "config.yaml")
}
