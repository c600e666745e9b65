package command

import (
	"errors"
	"fmt"
	"time"

	"todobot/internal/dateparse"
	"todobot/internal/tasklist"
)

// RolloverReport summarizes one user's day-roll.
type RolloverReport struct {
	User  string
	From  string
	To    string
	Moved int
}

// RunDailyRollover moves every user's tasks for now's date onto the next
// day, preserving order and done state, then deletes the source day record.
// It is meant to be invoked once per calendar day by an external scheduler.
//
// Both steps happen in memory inside one session and are persisted by a
// single atomic snapshot flush, so a crash can never observe the append
// without the delete. A user whose source day is already gone is skipped,
// which makes a retry of the whole operation a no-op.
func (c *Core) RunDailyRollover(now time.Time) ([]RolloverReport, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	users, err := c.backend.Users()
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	from := now.Format(dateparse.DayKey)
	to := now.AddDate(0, 0, 1).Format(dateparse.DayKey)

	var reports []RolloverReport
	var errs []error
	for _, user := range users {
		moved, err := c.rollUser(user, from, to)
		if err != nil {
			errs = append(errs, fmt.Errorf("roll %s: %w", user, err))
			continue
		}
		if moved < 0 {
			continue // nothing to roll for this user
		}
		reports = append(reports, RolloverReport{User: user, From: from, To: to, Moved: moved})
	}
	return reports, errors.Join(errs...)
}

// rollUser performs the two-step move for one user. Returns the number of
// tasks moved, or -1 when the source day has no record.
func (c *Core) rollUser(user, from, to string) (int, error) {
	sess, err := tasklist.Open(c.backend, user)
	if err != nil {
		return 0, err
	}

	rec, err := sess.Store.Day(from)
	if errors.Is(err, tasklist.ErrNotFound) {
		return -1, nil
	}

	tasks := rec.Ordered()
	sess.Store.Append(to, tasks)
	if err := sess.Store.DeleteDay(from); err != nil {
		return 0, err
	}
	if err := sess.Close(); err != nil {
		return 0, err
	}
	return len(tasks), nil
}
