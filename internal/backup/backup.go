// Package backup creates and restores timestamped backups of the todobot
// data directory.
package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"todobot/internal/fsutil"
	"todobot/internal/storage"
)

const manifestName = "manifest.json"

// Manifest describes a single backup.
type Manifest struct {
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	Files     []string  `json:"files"`
	Stats     Stats     `json:"stats"`
}

// Stats summarizes the backed-up ledgers.
type Stats struct {
	Users int `json:"users"`
	Days  int `json:"days"`
	Tasks int `json:"tasks"`
}

// Info pairs a backup's directory name with its manifest.
type Info struct {
	Name     string
	Manifest Manifest
}

// Manager creates and restores backups under <dataDir>/backups.
type Manager struct {
	dataDir string
	now     func() time.Time
}

// NewManager creates a backup manager for the given data directory.
func NewManager(dataDir string) *Manager {
	return &Manager{dataDir: dataDir, now: time.Now}
}

func (m *Manager) backupsDir() string {
	return filepath.Join(m.dataDir, "backups")
}

func (m *Manager) usersDir() string {
	return filepath.Join(m.dataDir, "users")
}

// Create copies every user ledger into a new timestamped backup directory
// and writes a manifest. Returns the backup name.
func (m *Manager) Create() (string, error) {
	name := m.now().UTC().Format("20060102-150405")
	dir := filepath.Join(m.backupsDir(), name)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	entries, err := os.ReadDir(m.usersDir())
	if err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("read users dir: %w", err)
	}

	manifest := Manifest{Version: 1, CreatedAt: m.now().UTC()}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		src := filepath.Join(m.usersDir(), entry.Name())
		data, err := os.ReadFile(src)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", entry.Name(), err)
		}
		dst := filepath.Join(dir, entry.Name())
		if err := fsutil.WriteFileAtomic(dst, data, 0600); err != nil {
			return "", fmt.Errorf("copy %s: %w", entry.Name(), err)
		}

		manifest.Files = append(manifest.Files, entry.Name())
		manifest.Stats.Users++
		var snap storage.Snapshot
		if err := json.Unmarshal(data, &snap); err == nil {
			manifest.Stats.Days += len(snap)
			for _, rec := range snap {
				manifest.Stats.Tasks += len(rec.Tasks)
			}
		}
	}
	sort.Strings(manifest.Files)

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal manifest: %w", err)
	}
	if err := fsutil.WriteFileAtomic(filepath.Join(dir, manifestName), data, 0600); err != nil {
		return "", fmt.Errorf("write manifest: %w", err)
	}
	return name, nil
}

// List returns all backups, newest first. Directories without a readable
// manifest are skipped.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.backupsDir())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read backups dir: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		manifest, err := m.readManifest(entry.Name())
		if err != nil {
			continue
		}
		backups = append(backups, Info{Name: entry.Name(), Manifest: manifest})
	}
	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Name > backups[j].Name
	})
	return backups, nil
}

// Latest returns the most recent backup, or an error when none exist.
func (m *Manager) Latest() (Info, error) {
	backups, err := m.List()
	if err != nil {
		return Info{}, err
	}
	if len(backups) == 0 {
		return Info{}, fmt.Errorf("no backups found")
	}
	return backups[0], nil
}

// Restore copies the named backup's ledgers back into the users directory,
// overwriting current files. The files being replaced are preserved with a
// .bak suffix.
func (m *Manager) Restore(name string) error {
	manifest, err := m.readManifest(name)
	if err != nil {
		return fmt.Errorf("backup %q: %w", name, err)
	}

	if err := os.MkdirAll(m.usersDir(), 0700); err != nil {
		return fmt.Errorf("create users dir: %w", err)
	}
	for _, file := range manifest.Files {
		src := filepath.Join(m.backupsDir(), name, file)
		data, err := os.ReadFile(src)
		if err != nil {
			return fmt.Errorf("read backup file %s: %w", file, err)
		}
		dst := filepath.Join(m.usersDir(), file)
		fsutil.BestEffortBackup(dst, 0600)
		if err := fsutil.WriteFileAtomic(dst, data, 0600); err != nil {
			return fmt.Errorf("restore %s: %w", file, err)
		}
	}
	return nil
}

func (m *Manager) readManifest(name string) (Manifest, error) {
	data, err := os.ReadFile(filepath.Join(m.backupsDir(), name, manifestName))
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}
	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest: %w", err)
	}
	return manifest, nil
}
