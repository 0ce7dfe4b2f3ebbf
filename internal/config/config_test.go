package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	pflag "github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.NoError(t, err)
	assert.Equal(t, ".packtv/packtv.db", cfg.Database)
	assert.Equal(t, 5*time.Minute, cfg.Refresh)
	assert.Equal(t, 3*time.Second, cfg.IdleDelay)
	assert.Equal(t, 28, cfg.SidebarWidth)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "packtv.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database: /var/lib/packtv.db\nrefresh: 1m\nsidebar_width: 32\n"), 0644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/packtv.db", cfg.Database)
	assert.Equal(t, time.Minute, cfg.Refresh)
	assert.Equal(t, 32, cfg.SidebarWidth)
	// untouched fields keep defaults
	assert.Equal(t, 3*time.Second, cfg.IdleDelay)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("PACKTV_SIDEBAR_WIDTH", "40")
	t.Setenv("PACKTV_IDLE_DELAY", "2s")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.SidebarWidth)
	assert.Equal(t, 2*time.Second, cfg.IdleDelay)
}

func TestLoadFlagOverride(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	Flags(fs)
	require.NoError(t, fs.Parse([]string{"--sidebar-width", "20", "--database", "x.db"}))

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), fs)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.SidebarWidth)
	assert.Equal(t, "x.db", cfg.Database)
	// unchanged flags must not clobber defaults
	assert.Equal(t, 5*time.Minute, cfg.Refresh)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty database", func(c *Config) { c.Database = "" }},
		{"zero refresh", func(c *Config) { c.Refresh = 0 }},
		{"zero idle delay", func(c *Config) { c.IdleDelay = 0 }},
		{"sidebar too narrow", func(c *Config) { c.SidebarWidth = 10 }},
		{"sidebar too wide", func(c *Config) { c.SidebarWidth = 100 }},
		{"bad timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "packtv.yaml")
	cfg := Default()
	cfg.Timezone = "America/Los_Angeles"
	require.NoError(t, cfg.Save(path))

	got, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, cfg.Timezone, got.Timezone)
	assert.Equal(t, cfg.Refresh, got.Refresh)
}
