package command

import (
	"fmt"
	"strings"

	"todobot/internal/storage"
)

// Done markers used in listings and toggle replies.
const (
	markDone    = "✅"
	markPending = "▫️"
)

// renderDay renders one day's tasks as a Markdown block, in ascending id
// order.
func renderDay(day string, rec storage.DayRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*%s*\n", day)
	for _, id := range rec.IDs() {
		task := rec.Tasks[id]
		mark := markPending
		if task.Done {
			mark = markDone
		}
		fmt.Fprintf(&b, "%d) %s %s\n", id, mark, task.Text)
	}
	return b.String()
}

// renderAll renders every non-empty day in ascending calendar order, which
// for YYYY-MM-DD keys is plain string order. Returns "" when there is
// nothing to show.
func renderAll(snap storage.Snapshot) string {
	var blocks []string
	for _, day := range snap.Days() {
		rec := snap[day]
		if len(rec.Tasks) == 0 {
			continue
		}
		blocks = append(blocks, renderDay(day, rec))
	}
	return strings.Join(blocks, "\n")
}
