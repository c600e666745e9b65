package storage

import (
	"os"
	"path/filepath"
	"testing"
)

// createTestBackend creates a FileBackend rooted in a temporary directory.
func createTestBackend(t *testing.T) *FileBackend {
	t.Helper()
	b, err := NewFileBackend(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create test backend: %v", err)
	}
	return b
}

func sampleSnapshot() Snapshot {
	return Snapshot{
		"2024-01-01": {Tasks: map[int]Task{
			1: {Text: "buy milk"},
			2: {Text: "call mom", Done: true},
		}},
		"2024-01-02": {Tasks: map[int]Task{
			1: {Text: "pack"},
		}},
	}
}

func TestLoad_MissingFileReturnsEmpty(t *testing.T) {
	b := createTestBackend(t)

	snap, err := b.Load("alice")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(snap) != 0 {
		t.Errorf("len(snap) = %d, want 0", len(snap))
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	b := createTestBackend(t)

	if err := b.Save("alice", sampleSnapshot()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	snap, err := b.Load("alice")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(snap) != 2 {
		t.Fatalf("len(snap) = %d, want 2", len(snap))
	}
	task, ok := snap["2024-01-01"].Tasks[2]
	if !ok {
		t.Fatal("task 2 on 2024-01-01 missing after round trip")
	}
	if task.Text != "call mom" || !task.Done {
		t.Errorf("task = %+v, want {call mom true}", task)
	}
}

func TestSave_KeysUsersApart(t *testing.T) {
	b := createTestBackend(t)

	if err := b.Save("alice", sampleSnapshot()); err != nil {
		t.Fatalf("Save(alice) error = %v", err)
	}
	if err := b.Save("bob", Snapshot{}); err != nil {
		t.Fatalf("Save(bob) error = %v", err)
	}

	snap, err := b.Load("bob")
	if err != nil {
		t.Fatalf("Load(bob) error = %v", err)
	}
	if len(snap) != 0 {
		t.Errorf("bob's snapshot has %d days, want 0", len(snap))
	}

	users, err := b.Users()
	if err != nil {
		t.Fatalf("Users() error = %v", err)
	}
	if len(users) != 2 || users[0] != "alice" || users[1] != "bob" {
		t.Errorf("Users() = %v, want [alice bob]", users)
	}
}

func TestLoad_RecoversFromBackup(t *testing.T) {
	b := createTestBackend(t)

	// Two saves so a .bak exists, then corrupt the live file.
	if err := b.Save("alice", sampleSnapshot()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := b.Save("alice", sampleSnapshot()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	path := b.path("alice")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("corrupt write error = %v", err)
	}

	snap, err := b.Load("alice")
	if err != nil {
		t.Fatalf("Load() after corruption error = %v", err)
	}
	if len(snap) != 2 {
		t.Errorf("recovered snapshot has %d days, want 2", len(snap))
	}
}

func TestLoad_CorruptWithoutBackupFails(t *testing.T) {
	b := createTestBackend(t)

	path := b.path("alice")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("corrupt write error = %v", err)
	}

	if _, err := b.Load("alice"); err == nil {
		t.Fatal("Load() expected error for corrupt file without backup")
	}

	// The broken file must be preserved for inspection.
	matches, _ := filepath.Glob(path + ".corrupt.*")
	if len(matches) == 0 {
		t.Error("corrupt file was not set aside")
	}
}

func TestSanitizeUser(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"alice", "alice"},
		{"", "default"},
		{"a/b\\c", "a_b_c"},
		{"user-1_x.y", "user-1_x.y"},
	}
	for _, tt := range tests {
		if got := sanitizeUser(tt.in); got != tt.want {
			t.Errorf("sanitizeUser(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSnapshot_DaysSorted(t *testing.T) {
	snap := Snapshot{
		"2024-02-01": NewDayRecord(),
		"2023-12-31": NewDayRecord(),
		"2024-01-15": NewDayRecord(),
	}
	days := snap.Days()
	want := []string{"2023-12-31", "2024-01-15", "2024-02-01"}
	for i, day := range want {
		if days[i] != day {
			t.Fatalf("Days() = %v, want %v", days, want)
		}
	}
}

func TestClone_IsDeep(t *testing.T) {
	snap := sampleSnapshot()
	clone := snap.Clone()

	clone["2024-01-01"].Tasks[1] = Task{Text: "changed"}
	if snap["2024-01-01"].Tasks[1].Text != "buy milk" {
		t.Error("mutating clone changed the original snapshot")
	}
}
