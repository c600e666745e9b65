package importer

import (
	"strings"
	"testing"

	"todobot/internal/storage"
	"todobot/internal/tasklist"
)

const todoistCSV = `TYPE,CONTENT,DESCRIPTION,PRIORITY,INDENT,AUTHOR,RESPONSIBLE,DATE,DATE_LANG,TIMEZONE
task,Buy groceries,,4,1,Me (123),,2024-01-16,en,UTC
note,This is a note,,,,,,,,
task,Call dentist,,1,1,Me (123),,,en,UTC
task,,,4,1,Me (123),,2024-01-16,en,UTC
task,Review budget,,2,1,Me (123),,Jan 20 2024,en,UTC
`

const taskwarriorJSON = `[
  {"description": "Write report", "status": "pending", "due": "20240116T090000Z", "uuid": "a1"},
  {"description": "Old chore", "status": "completed", "uuid": "a2"},
  {"description": "Abandoned", "status": "deleted", "uuid": "a3"},
  {"description": "", "status": "pending", "uuid": "a4"}
]`

func TestGetImporter(t *testing.T) {
	for _, format := range SupportedFormats() {
		imp := GetImporter(format)
		if imp == nil {
			t.Errorf("GetImporter(%q) = nil", format)
			continue
		}
		if imp.Name() != format {
			t.Errorf("Name() = %q, want %q", imp.Name(), format)
		}
	}
	if GetImporter("orgmode") != nil {
		t.Error("GetImporter() for unknown format should be nil")
	}
}

func TestTodoistPreview(t *testing.T) {
	tasks, err := (&TodoistImporter{}).Preview(strings.NewReader(todoistCSV))
	if err != nil {
		t.Fatalf("Preview() error = %v", err)
	}
	want := []PreviewTask{
		{Text: "Buy groceries", Day: "2024-01-16"},
		{Text: "Call dentist"},
		{Text: "Review budget", Day: "2024-01-20"},
	}
	if len(tasks) != len(want) {
		t.Fatalf("Preview() returned %d tasks, want %d: %+v", len(tasks), len(want), tasks)
	}
	for i, task := range tasks {
		if task != want[i] {
			t.Errorf("task %d = %+v, want %+v", i, task, want[i])
		}
	}
}

func TestTodoistPreview_MissingColumns(t *testing.T) {
	_, err := (&TodoistImporter{}).Preview(strings.NewReader("FOO,BAR\n1,2\n"))
	if err == nil {
		t.Error("Preview() without TYPE/CONTENT columns succeeded, want error")
	}
}

func TestTodoistImport_GroupsByDay(t *testing.T) {
	store := tasklist.New(storage.Snapshot{})
	result, err := (&TodoistImporter{}).Import(strings.NewReader(todoistCSV), store, "2024-01-15")
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if result.Imported != 3 || len(result.Errors) != 0 {
		t.Errorf("result = %+v, want 3 imported and no errors", result)
	}
	// The note row and the empty-content row are counted, not dropped silently.
	if result.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", result.Skipped)
	}

	rec, err := store.Day("2024-01-15")
	if err != nil {
		t.Fatalf("Day() error = %v", err)
	}
	if len(rec.Tasks) != 1 || rec.Tasks[1].Text != "Call dentist" {
		t.Errorf("default day tasks = %+v, want just Call dentist", rec.Tasks)
	}
	rec, err = store.Day("2024-01-16")
	if err != nil {
		t.Fatalf("Day() error = %v", err)
	}
	if len(rec.Tasks) != 1 || rec.Tasks[1].Text != "Buy groceries" {
		t.Errorf("2024-01-16 tasks = %+v, want Buy groceries", rec.Tasks)
	}
}

func TestTaskwarriorImport(t *testing.T) {
	store := tasklist.New(storage.Snapshot{})
	result, err := (&TaskwarriorImporter{}).Import(strings.NewReader(taskwarriorJSON), store, "2024-01-15")
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if result.Imported != 2 {
		t.Errorf("Imported = %d, want 2", result.Imported)
	}
	// The deleted tombstone and the empty description count as skipped.
	if result.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", result.Skipped)
	}

	task, err := store.Task("2024-01-16", 1)
	if err != nil {
		t.Fatalf("Task() error = %v", err)
	}
	if task.Text != "Write report" || task.Done {
		t.Errorf("due task = %+v, want pending Write report", task)
	}

	task, err = store.Task("2024-01-15", 1)
	if err != nil {
		t.Fatalf("Task() error = %v", err)
	}
	if task.Text != "Old chore" || !task.Done {
		t.Errorf("completed task = %+v, want done Old chore", task)
	}
}

func TestTaskwarriorImport_BadJSON(t *testing.T) {
	store := tasklist.New(storage.Snapshot{})
	if _, err := (&TaskwarriorImporter{}).Import(strings.NewReader("not json"), store, "2024-01-15"); err == nil {
		t.Error("Import() of invalid JSON succeeded, want error")
	}
}
