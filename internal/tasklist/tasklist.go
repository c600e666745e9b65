// Package tasklist owns the day-keyed task ledger: add, fetch, delete, edit
// and done-toggling with dense 1-based ids per day. A Store is a single
// user's in-memory ledger; Session ties it to persistent storage.
package tasklist

import (
	"errors"

	"todobot/internal/storage"
)

var (
	// ErrNotFound reports a day or task id that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrMissingArgument reports a delete call with nothing to act on.
	ErrMissingArgument = errors.New("specify a day or a task id")
)

// Store is one user's ledger. It is not safe for concurrent use; the command
// core serializes access behind a single lock.
type Store struct {
	days  storage.Snapshot
	dirty bool
}

// New wraps a loaded snapshot. A nil snapshot starts an empty ledger.
func New(snap storage.Snapshot) *Store {
	if snap == nil {
		snap = storage.Snapshot{}
	}
	return &Store{days: snap}
}

// Dirty reports whether any mutating operation has run.
func (s *Store) Dirty() bool {
	return s.dirty
}

// Add appends a task to the day, creating the day record if absent, and
// returns the assigned id: one past the day's current maximum, or 1 for a
// fresh day.
func (s *Store) Add(day, text string) int {
	rec, ok := s.days[day]
	if !ok {
		rec = storage.NewDayRecord()
	}
	id := maxID(rec.Tasks) + 1
	rec.Tasks[id] = storage.Task{Text: text}
	s.days[day] = rec
	s.dirty = true
	return id
}

// Append bulk-inserts tasks onto the day in the given order, preserving each
// task's done state and continuing the day's numbering. Used by the day-roll.
func (s *Store) Append(day string, tasks []storage.Task) []int {
	if len(tasks) == 0 {
		return nil
	}
	rec, ok := s.days[day]
	if !ok {
		rec = storage.NewDayRecord()
	}
	next := maxID(rec.Tasks) + 1
	ids := make([]int, 0, len(tasks))
	for _, task := range tasks {
		rec.Tasks[next] = task
		ids = append(ids, next)
		next++
	}
	s.days[day] = rec
	s.dirty = true
	return ids
}

// All returns a deep copy of every day in the ledger.
func (s *Store) All() storage.Snapshot {
	return s.days.Clone()
}

// Day returns a copy of one day's record, or ErrNotFound if the day has no
// record at all.
func (s *Store) Day(day string) (storage.DayRecord, error) {
	rec, ok := s.days[day]
	if !ok {
		return storage.DayRecord{}, ErrNotFound
	}
	return rec.Clone(), nil
}

// Task returns a single task by (day, id).
func (s *Store) Task(day string, id int) (storage.Task, error) {
	rec, ok := s.days[day]
	if !ok {
		return storage.Task{}, ErrNotFound
	}
	task, ok := rec.Tasks[id]
	if !ok {
		return storage.Task{}, ErrNotFound
	}
	return task, nil
}

// Remove implements the combined delete operation: force with no day wipes
// the whole ledger, a day alone removes that record, day+id removes a single
// task (renumbering the rest). No day, no id and no force is an error.
func (s *Store) Remove(day string, id int, force bool) error {
	switch {
	case day == "" && force:
		s.Clear()
		return nil
	case day == "":
		return ErrMissingArgument
	case id == 0:
		return s.DeleteDay(day)
	default:
		return s.Delete(day, id)
	}
}

// Delete removes one task and renumbers the day's remaining tasks, in
// ascending original-id order, back to a dense 1..N sequence.
func (s *Store) Delete(day string, id int) error {
	rec, ok := s.days[day]
	if !ok {
		return ErrNotFound
	}
	if _, ok := rec.Tasks[id]; !ok {
		return ErrNotFound
	}
	delete(rec.Tasks, id)
	s.days[day] = storage.DayRecord{Tasks: renumber(rec)}
	s.dirty = true
	return nil
}

// DeleteDay removes a whole day record.
func (s *Store) DeleteDay(day string) error {
	if _, ok := s.days[day]; !ok {
		return ErrNotFound
	}
	delete(s.days, day)
	s.dirty = true
	return nil
}

// Clear wipes the entire ledger.
func (s *Store) Clear() {
	s.days = storage.Snapshot{}
	s.dirty = true
}

// Edit replaces a task's text in place, preserving its done state and id.
func (s *Store) Edit(day string, id int, text string) error {
	rec, ok := s.days[day]
	if !ok {
		return ErrNotFound
	}
	task, ok := rec.Tasks[id]
	if !ok {
		return ErrNotFound
	}
	task.Text = text
	rec.Tasks[id] = task
	s.dirty = true
	return nil
}

// ToggleDone flips a task's done flag and returns the new state.
func (s *Store) ToggleDone(day string, id int) (bool, error) {
	rec, ok := s.days[day]
	if !ok {
		return false, ErrNotFound
	}
	task, ok := rec.Tasks[id]
	if !ok {
		return false, ErrNotFound
	}
	task.Done = !task.Done
	rec.Tasks[id] = task
	s.dirty = true
	return task.Done, nil
}

// renumber closes id gaps after a deletion: surviving tasks keep their
// relative order and come out keyed 1..N.
func renumber(rec storage.DayRecord) map[int]storage.Task {
	out := make(map[int]storage.Task, len(rec.Tasks))
	for i, id := range rec.IDs() {
		out[i+1] = rec.Tasks[id]
	}
	return out
}

func maxID(tasks map[int]storage.Task) int {
	max := 0
	for id := range tasks {
		if id > max {
			max = id
		}
	}
	return max
}
