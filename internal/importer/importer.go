// Package importer provides import functionality for migrating tasks from
// other productivity tools like Todoist and Taskwarrior.
package importer

import (
	"fmt"
	"io"

	"todobot/internal/tasklist"
)

// ImportResult contains statistics about an import operation.
type ImportResult struct {
	Imported int      // Number of successfully imported tasks
	Skipped  int      // Number of skipped items (notes, empty rows, etc.)
	Errors   []string // Error messages for failed imports
}

// PreviewTask represents a task preview before import.
type PreviewTask struct {
	Text string
	Day  string // day key, empty when the source has no due date
	Done bool
}

// Importer defines the interface for import implementations.
type Importer interface {
	// Import reads tasks from the reader and adds them to the ledger.
	// Tasks without a due date land on defaultDay.
	Import(reader io.Reader, store *tasklist.Store, defaultDay string) (*ImportResult, error)

	// Preview reads tasks from the reader without importing.
	Preview(reader io.Reader) ([]PreviewTask, error)

	// Name returns the importer name (e.g., "todoist", "taskwarrior").
	Name() string
}

// GetImporter returns the appropriate importer for the given format.
func GetImporter(format string) Importer {
	switch format {
	case "todoist":
		return &TodoistImporter{}
	case "taskwarrior":
		return &TaskwarriorImporter{}
	default:
		return nil
	}
}

// SupportedFormats returns the list of supported import formats.
func SupportedFormats() []string {
	return []string{"todoist", "taskwarrior"}
}

// apply adds previewed tasks to the ledger, grouping under their day key.
func apply(tasks []PreviewTask, store *tasklist.Store, defaultDay string) *ImportResult {
	result := &ImportResult{}
	for _, task := range tasks {
		day := task.Day
		if day == "" {
			day = defaultDay
		}
		id := store.Add(day, task.Text)
		if task.Done {
			if _, err := store.ToggleDone(day, id); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("mark %q done: %v", task.Text, err))
			}
		}
		result.Imported++
	}
	return result
}
