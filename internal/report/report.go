// Package report generates summaries of a user's task ledger for export.
package report

import (
	"time"

	"todobot/internal/storage"
)

// Report aggregates a user's ledger by day.
type Report struct {
	User        string       `json:"user"`
	Days        []DaySummary `json:"days"`
	TotalDone   int          `json:"total_done"`
	TotalOpen   int          `json:"total_open"`
	GeneratedAt time.Time    `json:"generated_at"`
}

// DaySummary contains one day's tasks and counts.
type DaySummary struct {
	Day   string     `json:"day"`
	Tasks []TaskLine `json:"tasks"`
	Done  int        `json:"done"`
	Open  int        `json:"open"`
}

// TaskLine is a single task with its display id.
type TaskLine struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// Generator creates reports from a storage backend.
type Generator struct {
	backend storage.Backend
	now     func() time.Time
}

// NewGenerator creates a report generator.
func NewGenerator(backend storage.Backend) *Generator {
	return &Generator{backend: backend, now: time.Now}
}

// Generate builds a report covering the user's entire ledger, days in
// chronological order.
func (g *Generator) Generate(user string) (*Report, error) {
	snap, err := g.backend.Load(user)
	if err != nil {
		return nil, err
	}

	report := &Report{User: user, GeneratedAt: g.now()}
	for _, day := range snap.Days() {
		rec := snap[day]
		summary := DaySummary{Day: day}
		for _, id := range rec.IDs() {
			task := rec.Tasks[id]
			summary.Tasks = append(summary.Tasks, TaskLine{ID: id, Text: task.Text, Done: task.Done})
			if task.Done {
				summary.Done++
			} else {
				summary.Open++
			}
		}
		report.TotalDone += summary.Done
		report.TotalOpen += summary.Open
		report.Days = append(report.Days, summary)
	}
	return report, nil
}
