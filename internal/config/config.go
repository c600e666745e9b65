// Package config handles configuration loading and defaults for todobot.
// Configuration is loaded from XDG-compliant paths (typically
// ~/.config/todobot/config.yaml).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"todobot/internal/fsutil"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	// DataDir overrides the default data directory (~/.todobot)
	DataDir string `yaml:"data_dir,omitempty"`

	// User is the identity the local chat console acts as. Defaults to the
	// OS username.
	User string `yaml:"user,omitempty"`

	// Rollover configures the end-of-day task move.
	Rollover RolloverConfig `yaml:"rollover,omitempty"`

	// Theme customizes the chat console colors.
	Theme ThemeConfig `yaml:"theme,omitempty"`

	// Sync configures git synchronization of the data directory.
	Sync SyncConfig `yaml:"sync,omitempty"`
}

// RolloverConfig defines when unfinished tasks move to the next day.
type RolloverConfig struct {
	// At is the local time of day (HH:MM) the rollover runs. Empty disables
	// the built-in trigger; an external scheduler can still invoke it.
	At string `yaml:"at,omitempty"`

	// Notify sends a desktop notification summarizing each rollover.
	Notify bool `yaml:"notify,omitempty"`
}

// ThemeConfig defines color settings (hex, e.g. "#FF5733").
type ThemeConfig struct {
	Primary string `yaml:"primary,omitempty"`
	Accent  string `yaml:"accent,omitempty"`
	Muted   string `yaml:"muted,omitempty"`
	Error   string `yaml:"error,omitempty"`
}

// SyncConfig defines git synchronization settings.
type SyncConfig struct {
	// Enabled enables/disables git sync
	Enabled bool `yaml:"enabled,omitempty"`

	// AutoCommit automatically commits changes after ledger flushes
	AutoCommit bool `yaml:"auto_commit,omitempty"`

	// AutoPush automatically pushes after each commit
	AutoPush bool `yaml:"auto_push,omitempty"`

	// PullOnStartup pulls latest changes when the app starts
	PullOnStartup bool `yaml:"pull_on_startup,omitempty"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		DataDir: defaultDataDir(),
		User:    defaultUser(),
		Rollover: RolloverConfig{
			At:     "23:55",
			Notify: true,
		},
		Theme: ThemeConfig{
			Primary: "#7C3AED", // Violet
			Accent:  "#10B981", // Emerald
			Muted:   "#6B7280", // Gray
			Error:   "#EF4444", // Red
		},
		Sync: SyncConfig{
			Enabled:       false,
			AutoCommit:    true,
			AutoPush:      false,
			PullOnStartup: false,
		},
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".todobot"
	}
	return filepath.Join(home, ".todobot")
}

func defaultUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "default"
}

// configDir returns the configuration directory path (XDG compliant).
func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "todobot")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "todobot")
}

func configPath() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads configuration from disk, merging with defaults. If no config
// file exists, the defaults are returned as-is.
func Load() (*Config, error) {
	return loadFrom(configPath())
}

func loadFrom(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	var userCfg Config
	if err := yaml.Unmarshal(data, &userCfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	var doc yaml.Node
	_ = yaml.Unmarshal(data, &doc) // best-effort; presence checks degrade gracefully

	cfg.merge(&userCfg, &doc)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// merge applies the user's config over the defaults. Strings apply when
// non-empty; booleans apply only when the key is present in the YAML
// document, so a default of true survives an absent key.
func (c *Config) merge(other *Config, doc *yaml.Node) {
	if other.DataDir != "" {
		c.DataDir = other.DataDir
	}
	if other.User != "" {
		c.User = other.User
	}
	if other.Theme.Primary != "" {
		c.Theme.Primary = other.Theme.Primary
	}
	if other.Theme.Accent != "" {
		c.Theme.Accent = other.Theme.Accent
	}
	if other.Theme.Muted != "" {
		c.Theme.Muted = other.Theme.Muted
	}
	if other.Theme.Error != "" {
		c.Theme.Error = other.Theme.Error
	}

	if yamlHasPath(doc, "rollover", "at") {
		c.Rollover.At = other.Rollover.At
	}
	if yamlHasPath(doc, "rollover", "notify") {
		c.Rollover.Notify = other.Rollover.Notify
	}
	if yamlHasPath(doc, "sync", "enabled") {
		c.Sync.Enabled = other.Sync.Enabled
	}
	if yamlHasPath(doc, "sync", "auto_commit") {
		c.Sync.AutoCommit = other.Sync.AutoCommit
	}
	if yamlHasPath(doc, "sync", "auto_push") {
		c.Sync.AutoPush = other.Sync.AutoPush
	}
	if yamlHasPath(doc, "sync", "pull_on_startup") {
		c.Sync.PullOnStartup = other.Sync.PullOnStartup
	}
}

func (c *Config) validate() error {
	if c.Rollover.At != "" {
		if _, err := time.Parse("15:04", c.Rollover.At); err != nil {
			return fmt.Errorf("rollover.at %q: expected HH:MM", c.Rollover.At)
		}
	}
	return nil
}

// yamlHasPath reports whether the mapping path exists in the parsed document.
func yamlHasPath(doc *yaml.Node, path ...string) bool {
	if doc == nil || len(path) == 0 {
		return false
	}

	n := doc
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	for _, key := range path {
		if n == nil || n.Kind != yaml.MappingNode {
			return false
		}
		var next *yaml.Node
		for i := 0; i+1 < len(n.Content); i += 2 {
			if k := n.Content[i]; k.Kind == yaml.ScalarNode && k.Value == key {
				next = n.Content[i+1]
				break
			}
		}
		if next == nil {
			return false
		}
		n = next
	}
	return true
}

// Save writes the configuration to disk.
func (c *Config) Save() error {
	path := configPath()
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, data, 0600)
}

// GetDataDir returns the resolved data directory path, expanding a leading ~.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return defaultDataDir()
	}
	if c.DataDir == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return c.DataDir
	}
	if strings.HasPrefix(c.DataDir, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(c.DataDir, "~/"))
		}
	}
	return c.DataDir
}
