// Package storage persists per-user task ledger snapshots. The backend
// contract is whole-snapshot load/save: the ledger is read once when a
// session opens and written back atomically at most once when it closes.
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"todobot/internal/fsutil"
)

// Backend loads and saves ledger snapshots keyed by an opaque user identity.
type Backend interface {
	// Load returns the user's snapshot, or an empty one if nothing has been
	// persisted yet.
	Load(user string) (Snapshot, error)

	// Save atomically replaces the user's persisted snapshot.
	Save(user string, snap Snapshot) error

	// Users lists every user with a persisted snapshot.
	Users() ([]string, error)
}

const (
	dataDirPerm  os.FileMode = 0700
	dataFilePerm os.FileMode = 0600

	usersDir = "users"
)

// FileBackend keeps one JSON document per user under <dataDir>/users/,
// mirroring the ledger model: {"2024-01-01": {"tasks": {"1": {...}}}}.
type FileBackend struct {
	dataDir string
	onSave  func(user string) // post-save hook, used for git auto-commit
}

// NewFileBackend creates the data directory if needed and returns a backend
// rooted there.
func NewFileBackend(dataDir string) (*FileBackend, error) {
	if err := os.MkdirAll(filepath.Join(dataDir, usersDir), dataDirPerm); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileBackend{dataDir: dataDir}, nil
}

// SetOnSave registers a callback invoked after each successful snapshot write.
func (b *FileBackend) SetOnSave(fn func(user string)) {
	b.onSave = fn
}

// DataDir returns the backend's root directory.
func (b *FileBackend) DataDir() string {
	return b.dataDir
}

func (b *FileBackend) path(user string) string {
	return filepath.Join(b.dataDir, usersDir, sanitizeUser(user)+".json")
}

// Load reads the user's snapshot. A missing or empty file yields an empty
// snapshot; a corrupt file recovers from its .bak copy when possible and is
// otherwise set aside.
func (b *FileBackend) Load(user string) (Snapshot, error) {
	path := b.path(user)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return Snapshot{}, nil
	}

	snap := Snapshot{}
	if err := json.Unmarshal(data, &snap); err != nil {
		return b.recoverCorrupt(path, fmt.Errorf("parse %s: %w", path, err))
	}
	return snap, nil
}

// recoverCorrupt tries the .bak copy, moving the broken file aside either way
// so it is preserved for inspection.
func (b *FileBackend) recoverCorrupt(path string, cause error) (Snapshot, error) {
	corruptPath := fmt.Sprintf("%s.corrupt.%s", path, time.Now().Format("20060102-150405"))
	_ = os.Rename(path, corruptPath)

	bakData, err := os.ReadFile(path + ".bak")
	if err == nil && len(bytes.TrimSpace(bakData)) > 0 {
		snap := Snapshot{}
		if jsonErr := json.Unmarshal(bakData, &snap); jsonErr == nil {
			_ = fsutil.WriteFileAtomic(path, bakData, dataFilePerm)
			return snap, nil
		}
	}

	return nil, fmt.Errorf("%v (no usable backup; original moved to %s)", cause, corruptPath)
}

// Save writes the snapshot atomically, keeping a best-effort .bak of the
// previous contents.
func (b *FileBackend) Save(user string, snap Snapshot) error {
	path := b.path(user)
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize %s: %w", path, err)
	}

	fsutil.BestEffortBackup(path, dataFilePerm)
	if err := fsutil.WriteFileAtomic(path, data, dataFilePerm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	if b.onSave != nil {
		b.onSave(user)
	}
	return nil
}

// Users lists every user with a persisted snapshot, sorted.
func (b *FileBackend) Users() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(b.dataDir, usersDir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list users: %w", err)
	}

	var users []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		users = append(users, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(users)
	return users, nil
}

// sanitizeUser maps an opaque user identity onto a filesystem-safe name.
func sanitizeUser(user string) string {
	if user == "" {
		return "default"
	}
	var b strings.Builder
	for _, r := range user {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
