// Package config loads packtv settings from defaults, packtv.yaml,
// PACKTV_* environment overrides, and command-line flags, in that order.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	pflag "github.com/spf13/pflag"
	yamlv3 "gopkg.in/yaml.v3"
)

// DefaultFile is the config file `packtv run` looks for when --config is
// not given.
const DefaultFile = "packtv.yaml"

// Config is the full runtime configuration.
type Config struct {
	// Database is the path to the SQLite database the ingest jobs write.
	Database string `koanf:"database" yaml:"database"`
	// Refresh is how often the dashboard re-queries the database.
	Refresh time.Duration `koanf:"refresh" yaml:"refresh"`
	// IdleDelay is how long the control sidebar stays out after the last
	// pointer movement.
	IdleDelay time.Duration `koanf:"idle_delay" yaml:"idle_delay"`
	// SidebarWidth is the control sidebar width in columns.
	SidebarWidth int `koanf:"sidebar_width" yaml:"sidebar_width"`
	// StatusAddr enables the status HTTP server when non-empty
	// (e.g. ":8050" for /healthz and /kpi.json).
	StatusAddr string `koanf:"status_addr" yaml:"status_addr"`
	// LogFile receives zap logs; the TUI owns the terminal. Empty
	// disables logging.
	LogFile string `koanf:"log_file" yaml:"log_file"`
	// Timezone for the header clock; empty means the system zone.
	Timezone string `koanf:"timezone" yaml:"timezone"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Database:     ".packtv/packtv.db",
		Refresh:      5 * time.Minute,
		IdleDelay:    3 * time.Second,
		SidebarWidth: 28,
		LogFile:      ".packtv/packtv.log",
	}
}

// Flags registers the command-line overrides on fs.
func Flags(fs *pflag.FlagSet) {
	fs.String("database", "", "path to the packhouse SQLite database")
	fs.Duration("refresh", 0, "dashboard refresh interval")
	fs.Duration("idle-delay", 0, "sidebar auto-hide delay")
	fs.Int("sidebar-width", 0, "sidebar width in columns")
	fs.String("status-addr", "", "status server listen address (empty disables)")
	fs.String("log-file", "", "log file path (empty disables logging)")
	fs.String("timezone", "", "IANA timezone for the header clock")
}

// Load builds the configuration. The file is optional; flags may be nil.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// PACKTV_SIDEBAR_WIDTH -> sidebar_width, etc.
	if err := k.Load(env.Provider("PACKTV_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "PACKTV_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if fs != nil {
		if err := k.Load(posflag.ProviderWithFlag(fs, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(fs, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("loading flag overrides: %w", err)
		}
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains workable values.
func (c *Config) Validate() error {
	if c.Database == "" {
		return fmt.Errorf("database is required")
	}
	if c.Refresh <= 0 {
		return fmt.Errorf("refresh must be positive")
	}
	if c.IdleDelay <= 0 {
		return fmt.Errorf("idle_delay must be positive")
	}
	if c.SidebarWidth < 16 || c.SidebarWidth > 60 {
		return fmt.Errorf("sidebar_width must be between 16 and 60 columns")
	}
	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
		}
	}
	return nil
}

// Location resolves the configured timezone, falling back to local time.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
