package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"todobot/internal/storage"
)

func seedUser(t *testing.T, dataDir, user string, snap storage.Snapshot) {
	t.Helper()
	backend, err := storage.NewFileBackend(dataDir)
	if err != nil {
		t.Fatalf("NewFileBackend() error = %v", err)
	}
	if err := backend.Save(user, snap); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
}

func testSnapshot() storage.Snapshot {
	return storage.Snapshot{
		"2024-01-15": {Tasks: map[int]storage.Task{
			1: {Text: "buy milk"},
			2: {Text: "call dentist", Done: true},
		}},
		"2024-01-16": {Tasks: map[int]storage.Task{
			1: {Text: "ship package"},
		}},
	}
}

func TestCreate_WritesManifestAndFiles(t *testing.T) {
	dataDir := t.TempDir()
	seedUser(t, dataDir, "alice", testSnapshot())
	seedUser(t, dataDir, "bob", storage.Snapshot{
		"2024-01-15": {Tasks: map[int]storage.Task{1: {Text: "water plants"}}},
	})

	m := NewManager(dataDir)
	name, err := m.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	backups, err := m.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("List() returned %d backups, want 1", len(backups))
	}
	got := backups[0]
	if got.Name != name {
		t.Errorf("backup name = %q, want %q", got.Name, name)
	}
	if len(got.Manifest.Files) != 2 {
		t.Errorf("manifest files = %v, want 2 entries", got.Manifest.Files)
	}
	stats := got.Manifest.Stats
	if stats.Users != 2 || stats.Days != 3 || stats.Tasks != 4 {
		t.Errorf("stats = %+v, want {Users:2 Days:3 Tasks:4}", stats)
	}

	for _, file := range got.Manifest.Files {
		path := filepath.Join(dataDir, "backups", name, file)
		if _, err := os.Stat(path); err != nil {
			t.Errorf("backup file %s missing: %v", file, err)
		}
	}
}

func TestCreate_EmptyDataDir(t *testing.T) {
	m := NewManager(t.TempDir())
	name, err := m.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	info, err := m.Latest()
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if info.Name != name || len(info.Manifest.Files) != 0 {
		t.Errorf("Latest() = %+v, want empty backup %q", info, name)
	}
}

func TestList_NewestFirst(t *testing.T) {
	dataDir := t.TempDir()
	seedUser(t, dataDir, "alice", testSnapshot())

	m := NewManager(dataDir)
	base := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return base }
	first, err := m.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	m.now = func() time.Time { return base.Add(time.Hour) }
	second, err := m.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	backups, err := m.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(backups) != 2 || backups[0].Name != second || backups[1].Name != first {
		t.Errorf("List() order = %v, want [%s %s]", backups, second, first)
	}
}

func TestRestore_BringsBackDeletedData(t *testing.T) {
	dataDir := t.TempDir()
	seedUser(t, dataDir, "alice", testSnapshot())

	m := NewManager(dataDir)
	name, err := m.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Wipe the live ledger, then restore.
	seedUser(t, dataDir, "alice", storage.Snapshot{})
	if err := m.Restore(name); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}

	backend, err := storage.NewFileBackend(dataDir)
	if err != nil {
		t.Fatalf("NewFileBackend() error = %v", err)
	}
	snap, err := backend.Load("alice")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(snap) != 2 {
		t.Fatalf("restored snapshot has %d days, want 2", len(snap))
	}
	if snap["2024-01-15"].Tasks[1].Text != "buy milk" {
		t.Errorf("restored task = %+v, want buy milk", snap["2024-01-15"].Tasks[1])
	}
}

func TestRestore_UnknownBackup(t *testing.T) {
	m := NewManager(t.TempDir())
	if err := m.Restore("20240101-000000"); err == nil {
		t.Error("Restore() of missing backup succeeded, want error")
	}
}

func TestLatest_NoBackups(t *testing.T) {
	m := NewManager(t.TempDir())
	if _, err := m.Latest(); err == nil {
		t.Error("Latest() with no backups succeeded, want error")
	}
}
