// Package importer provides import functionality for the todobot app.
// This file implements Taskwarrior JSON import.
package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"todobot/internal/dateparse"
	"todobot/internal/tasklist"
)

// TaskwarriorImporter handles importing from Taskwarrior JSON exports.
type TaskwarriorImporter struct{}

// taskwarriorTask represents a task in Taskwarrior's JSON format.
type taskwarriorTask struct {
	Description string `json:"description"`
	Status      string `json:"status"`
	Due         string `json:"due"`
	UUID        string `json:"uuid"`
}

// Name returns the importer name.
func (t *TaskwarriorImporter) Name() string {
	return "taskwarrior"
}

// Import reads tasks from Taskwarrior JSON and adds them to the ledger.
func (t *TaskwarriorImporter) Import(reader io.Reader, store *tasklist.Store, defaultDay string) (*ImportResult, error) {
	tasks, skipped, err := t.parseTasks(reader)
	if err != nil {
		return nil, err
	}
	result := apply(tasks, store, defaultDay)
	result.Skipped = skipped
	return result, nil
}

// Preview returns a list of tasks that would be imported.
func (t *TaskwarriorImporter) Preview(reader io.Reader) ([]PreviewTask, error) {
	tasks, _, err := t.parseTasks(reader)
	return tasks, err
}

// parseTasks reads and parses Taskwarrior's JSON array export. The second
// return is the number of entries dropped (deleted tombstones, empty
// descriptions).
func (t *TaskwarriorImporter) parseTasks(reader io.Reader) ([]PreviewTask, int, error) {
	var raw []taskwarriorTask
	if err := json.NewDecoder(reader).Decode(&raw); err != nil {
		return nil, 0, fmt.Errorf("failed to parse Taskwarrior JSON: %w", err)
	}

	var tasks []PreviewTask
	skipped := 0
	for _, tw := range raw {
		text := strings.TrimSpace(tw.Description)
		if text == "" {
			skipped++
			continue
		}
		// Deleted tasks are tombstones, not work to carry over.
		if tw.Status == "deleted" {
			skipped++
			continue
		}
		tasks = append(tasks, PreviewTask{
			Text: text,
			Day:  parseTaskwarriorDate(tw.Due),
			Done: tw.Status == "completed",
		})
	}
	return tasks, skipped, nil
}

// parseTaskwarriorDate converts Taskwarrior's compact UTC timestamp
// (20240115T103000Z) to a day key.
func parseTaskwarriorDate(dateStr string) string {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return ""
	}
	for _, format := range []string{"20060102T150405Z", dateparse.DayKey} {
		if parsed, err := time.Parse(format, dateStr); err == nil {
			return parsed.Format(dateparse.DayKey)
		}
	}
	return ""
}
