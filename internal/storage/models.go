package storage

import "sort"

// Task is a single ledger entry.
type Task struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// DayRecord holds one calendar day's tasks keyed by their dense, 1-based id.
type DayRecord struct {
	Tasks map[int]Task `json:"tasks"`
}

// Snapshot is the full persisted state of one user's ledger, keyed by day.
// Day keys are YYYY-MM-DD, so sorted keys are in calendar order.
type Snapshot map[string]DayRecord

// NewDayRecord returns an empty day record.
func NewDayRecord() DayRecord {
	return DayRecord{Tasks: map[int]Task{}}
}

// IDs returns the day's task ids in ascending order.
func (d DayRecord) IDs() []int {
	ids := make([]int, 0, len(d.Tasks))
	for id := range d.Tasks {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Ordered returns the day's tasks in ascending id order.
func (d DayRecord) Ordered() []Task {
	tasks := make([]Task, 0, len(d.Tasks))
	for _, id := range d.IDs() {
		tasks = append(tasks, d.Tasks[id])
	}
	return tasks
}

// Clone returns a deep copy of the record.
func (d DayRecord) Clone() DayRecord {
	out := DayRecord{Tasks: make(map[int]Task, len(d.Tasks))}
	for id, task := range d.Tasks {
		out.Tasks[id] = task
	}
	return out
}

// Days returns the snapshot's day keys in ascending calendar order.
func (s Snapshot) Days() []string {
	days := make([]string, 0, len(s))
	for day := range s {
		days = append(days, day)
	}
	sort.Strings(days)
	return days
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	for day, rec := range s {
		out[day] = rec.Clone()
	}
	return out
}
