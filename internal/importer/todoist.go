// Package importer provides import functionality for the todobot app.
// This file implements Todoist CSV import.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"todobot/internal/dateparse"
	"todobot/internal/tasklist"
)

// TodoistImporter handles importing from Todoist CSV exports.
type TodoistImporter struct{}

// Name returns the importer name.
func (t *TodoistImporter) Name() string {
	return "todoist"
}

// Import reads tasks from Todoist CSV and adds them to the ledger.
func (t *TodoistImporter) Import(reader io.Reader, store *tasklist.Store, defaultDay string) (*ImportResult, error) {
	tasks, skipped, err := t.parseTasks(reader)
	if err != nil {
		return nil, err
	}
	result := apply(tasks, store, defaultDay)
	result.Skipped = skipped
	return result, nil
}

// Preview returns a list of tasks that would be imported.
func (t *TodoistImporter) Preview(reader io.Reader) ([]PreviewTask, error) {
	tasks, _, err := t.parseTasks(reader)
	return tasks, err
}

// parseTasks reads and parses the Todoist CSV format. The second return is
// the number of rows dropped (notes, sections, empty content).
func (t *TodoistImporter) parseTasks(reader io.Reader) ([]PreviewTask, int, error) {
	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true
	csvReader.TrimLeadingSpace = true

	header, err := csvReader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colIndex := make(map[string]int)
	for i, col := range header {
		if i == 0 {
			col = strings.TrimPrefix(col, "\uFEFF") // UTF-8 BOM (common in some exports)
		}
		colIndex[strings.ToUpper(strings.TrimSpace(col))] = i
	}

	for _, col := range []string{"TYPE", "CONTENT"} {
		if _, ok := colIndex[col]; !ok {
			return nil, 0, fmt.Errorf("missing required column: %s", col)
		}
	}

	var tasks []PreviewTask
	skipped := 0
	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to read CSV row: %w", err)
		}
		if len(record) == 0 {
			continue
		}

		// Only "task" rows carry tasks; notes and section rows are skipped.
		typeIdx := colIndex["TYPE"]
		if typeIdx >= len(record) || strings.ToLower(record[typeIdx]) != "task" {
			skipped++
			continue
		}

		task := PreviewTask{}
		if idx, ok := colIndex["CONTENT"]; ok && idx < len(record) {
			task.Text = strings.TrimSpace(record[idx])
		}
		if task.Text == "" {
			skipped++
			continue
		}

		if idx, ok := colIndex["DATE"]; ok && idx < len(record) {
			task.Day = parseTodoistDate(record[idx])
		}

		tasks = append(tasks, task)
	}
	return tasks, skipped, nil
}

// parseTodoistDate normalizes the various Todoist date formats to a day key.
// Unparseable dates come back empty; the task then lands on the default day.
func parseTodoistDate(dateStr string) string {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return ""
	}

	formats := []string{
		dateparse.DayKey,
		"Jan 2 2006",
		"Jan 2, 2006",
		"2 Jan 2006",
		"January 2, 2006",
		"01/02/2006",
	}
	for _, format := range formats {
		if parsed, err := time.Parse(format, dateStr); err == nil {
			return parsed.Format(dateparse.DayKey)
		}
	}
	return ""
}
