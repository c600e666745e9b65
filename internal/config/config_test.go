package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := loadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("loadFrom() error = %v", err)
	}
	if cfg.Rollover.At != "23:55" {
		t.Errorf("Rollover.At = %q, want default 23:55", cfg.Rollover.At)
	}
	if !cfg.Rollover.Notify {
		t.Error("Rollover.Notify default = false, want true")
	}
	if cfg.Sync.Enabled {
		t.Error("Sync.Enabled default = true, want false")
	}
}

func TestLoadFrom_MergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
data_dir: /tmp/todobot-test
user: alice
rollover:
  at: "09:30"
theme:
  primary: "#FF0000"
`)

	cfg, err := loadFrom(path)
	if err != nil {
		t.Fatalf("loadFrom() error = %v", err)
	}
	if cfg.DataDir != "/tmp/todobot-test" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.User != "alice" {
		t.Errorf("User = %q", cfg.User)
	}
	if cfg.Rollover.At != "09:30" {
		t.Errorf("Rollover.At = %q, want 09:30", cfg.Rollover.At)
	}
	if cfg.Theme.Primary != "#FF0000" {
		t.Errorf("Theme.Primary = %q", cfg.Theme.Primary)
	}
	// Untouched keys keep their defaults.
	if cfg.Theme.Accent != "#10B981" {
		t.Errorf("Theme.Accent = %q, want default", cfg.Theme.Accent)
	}
}

func TestLoadFrom_BooleanPresence(t *testing.T) {
	// notify: false must override the true default; an absent auto_commit
	// must not reset the true default.
	path := writeConfig(t, `
rollover:
  notify: false
sync:
  enabled: true
`)

	cfg, err := loadFrom(path)
	if err != nil {
		t.Fatalf("loadFrom() error = %v", err)
	}
	if cfg.Rollover.Notify {
		t.Error("Rollover.Notify = true, want false from explicit key")
	}
	if !cfg.Sync.Enabled {
		t.Error("Sync.Enabled = false, want true from explicit key")
	}
	if !cfg.Sync.AutoCommit {
		t.Error("Sync.AutoCommit lost its true default")
	}
}

func TestLoadFrom_RejectsBadRolloverTime(t *testing.T) {
	path := writeConfig(t, "rollover:\n  at: \"25:99\"\n")
	if _, err := loadFrom(path); err == nil {
		t.Fatal("loadFrom() expected error for invalid rollover time")
	}
}

func TestLoadFrom_RejectsBadYAML(t *testing.T) {
	path := writeConfig(t, "data_dir: [unclosed\n")
	if _, err := loadFrom(path); err == nil {
		t.Fatal("loadFrom() expected error for invalid YAML")
	}
}

func TestGetDataDir_TildeExpansion(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory available")
	}

	cfg := &Config{DataDir: "~/todobot-data"}
	if got := cfg.GetDataDir(); got != filepath.Join(home, "todobot-data") {
		t.Errorf("GetDataDir() = %q", got)
	}

	cfg = &Config{}
	if got := cfg.GetDataDir(); got == "" {
		t.Error("GetDataDir() empty for default config")
	}
}
