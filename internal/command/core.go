// Package command implements the chat command core. It splits date phrases
// from task text, drives the per-user task ledger, and returns reply
// payloads for whatever transport delivers them. The core itself performs no
// channel I/O.
package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"todobot/internal/dateparse"
	"todobot/internal/storage"
	"todobot/internal/tasklist"
)

// Markup tells the transport how a reply should be rendered.
type Markup int

const (
	MarkupPlain Markup = iota
	MarkupMarkdown
)

// Result is a reply payload for the transport collaborator.
type Result struct {
	Text   string
	Markup Markup
}

// Core orchestrates date resolution and the task ledger. A single mutex
// serializes every command and the daily rollover, so mutations on a day can
// never interleave.
type Core struct {
	mu      sync.Mutex
	backend storage.Backend
}

// New creates a command core on top of a storage backend.
func New(backend storage.Backend) *Core {
	return &Core{backend: backend}
}

// Handle runs one chat command for a user. The now instant is the reference
// for "today" and for commands that omit an explicit day. Errors come back
// as reply text, never as a panic or a silent drop.
func (c *Core) Handle(cmd string, args []string, user string, now time.Time) Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	name := canonical(cmd)

	// Help short-circuits before dispatch.
	if len(args) > 0 && args[0] == "help" {
		return helpResult(name)
	}

	switch name {
	case "start":
		return Result{Text: welcomeText, Markup: MarkupMarkdown}
	case "help":
		return helpResult("")
	case "add":
		return c.add(args, user, now)
	case "tasks":
		return c.list(args, user, now)
	case "del":
		return c.del(args, user, now)
	case "edit":
		return c.edit(args, user, now)
	case "done":
		return c.done(args, user, now)
	default:
		return plain(fmt.Sprintf("Unknown command %q. Try /help.", cmd))
	}
}

// canonical strips a leading slash and folds aliases onto command names.
func canonical(cmd string) string {
	cmd = strings.TrimPrefix(strings.ToLower(cmd), "/")
	switch cmd {
	case "list":
		return "tasks"
	case "delete":
		return "del"
	}
	return cmd
}

func (c *Core) add(args []string, user string, now time.Time) Result {
	if len(args) == 0 {
		return plain("Nothing to add. " + usageAdd)
	}

	day, text, err := dateparse.Resolve(args, now)
	if err != nil {
		return dateError(err)
	}
	if text == "" {
		return plain("The task text is missing. " + usageAdd)
	}

	sess, err := tasklist.Open(c.backend, user)
	if err != nil {
		return storageError(err)
	}
	id := sess.Store.Add(day, text)
	if err := sess.Close(); err != nil {
		return storageError(err)
	}
	return plain(fmt.Sprintf("Added task %d for %s.", id, day))
}

func (c *Core) list(args []string, user string, now time.Time) Result {
	sess, err := tasklist.Open(c.backend, user)
	if err != nil {
		return storageError(err)
	}
	defer sess.Close() // read-only; never writes

	if len(args) == 0 {
		snap := sess.Store.All()
		text := renderAll(snap)
		if text == "" {
			return plain("Your TODO list is empty!")
		}
		return Result{Text: text, Markup: MarkupMarkdown}
	}

	day, _, err := dateparse.Resolve(args, now)
	if err != nil {
		return dateError(err)
	}
	rec, err := sess.Store.Day(day)
	if errors.Is(err, tasklist.ErrNotFound) || len(rec.Tasks) == 0 {
		return plain(fmt.Sprintf("No tasks for %s.", day))
	}
	return Result{Text: renderDay(day, rec), Markup: MarkupMarkdown}
}

func (c *Core) del(args []string, user string, now time.Time) Result {
	today := now.Format(dateparse.DayKey)

	var day string
	var id int
	var force bool
	switch {
	case len(args) == 0:
		return plain("Nothing to delete. " + usageDel)
	case args[0] == "all":
		force = true
	case dateparse.IsDigits(args[0]):
		day = today
		id, _ = strconv.Atoi(args[0])
		if id == 0 {
			return plain(fmt.Sprintf("Task %d on %s not found.", id, day))
		}
	default:
		resolved, ok := dateparse.ResolveDayToken(args[0], now)
		if !ok {
			return plain(fmt.Sprintf("Day or task %q not found.", args[0]))
		}
		day = resolved
		if len(args) > 1 {
			if !dateparse.IsDigits(args[1]) {
				return plain(fmt.Sprintf("%q is not a task number. %s", args[1], usageDel))
			}
			id, _ = strconv.Atoi(args[1])
			if id == 0 {
				return plain("Task numbers start at 1. " + usageDel)
			}
		}
	}

	sess, err := tasklist.Open(c.backend, user)
	if err != nil {
		return storageError(err)
	}
	if err := sess.Store.Remove(day, id, force); err != nil {
		return ledgerError(err, day, id)
	}
	if err := sess.Close(); err != nil {
		return storageError(err)
	}

	switch {
	case force:
		return plain("Deleted everything.")
	case id == 0:
		return plain(fmt.Sprintf("Deleted all tasks for %s.", day))
	default:
		return plain(fmt.Sprintf("Deleted task %d from %s.", id, day))
	}
}

func (c *Core) edit(args []string, user string, now time.Time) Result {
	day, id, rest, res := c.dayAndID(args, now, usageEdit)
	if res != nil {
		return *res
	}
	if len(rest) == 0 {
		return plain("The new task text is missing. " + usageEdit)
	}
	text := strings.Join(rest, " ")

	sess, err := tasklist.Open(c.backend, user)
	if err != nil {
		return storageError(err)
	}
	if err := sess.Store.Edit(day, id, text); err != nil {
		return ledgerError(err, day, id)
	}
	if err := sess.Close(); err != nil {
		return storageError(err)
	}
	return plain(fmt.Sprintf("Updated task %d on %s.", id, day))
}

func (c *Core) done(args []string, user string, now time.Time) Result {
	day, id, rest, res := c.dayAndID(args, now, usageDone)
	if res != nil {
		return *res
	}
	if len(rest) > 0 {
		return plain("Too many arguments. " + usageDone)
	}

	sess, err := tasklist.Open(c.backend, user)
	if err != nil {
		return storageError(err)
	}
	state, err := sess.Store.ToggleDone(day, id)
	if err != nil {
		return ledgerError(err, day, id)
	}
	if err := sess.Close(); err != nil {
		return storageError(err)
	}

	if state {
		return plain(fmt.Sprintf("Task %d on %s marked done %s", id, day, markDone))
	}
	return plain(fmt.Sprintf("Task %d on %s marked not done %s", id, day, markPending))
}

// dayAndID parses the shared "[<day>] <id>" prefix of edit/done: a bare
// digit targets today, otherwise the first token must name a day and the
// second must be the id. The remaining tokens are returned untouched.
func (c *Core) dayAndID(args []string, now time.Time, usage string) (day string, id int, rest []string, res *Result) {
	fail := func(text string) (string, int, []string, *Result) {
		r := plain(text)
		return "", 0, nil, &r
	}

	if len(args) == 0 {
		return fail("Which task? " + usage)
	}

	if dateparse.IsDigits(args[0]) {
		id, _ = strconv.Atoi(args[0])
		if id == 0 {
			return fail("Task numbers start at 1. " + usage)
		}
		return now.Format(dateparse.DayKey), id, args[1:], nil
	}

	resolved, ok := dateparse.ResolveDayToken(args[0], now)
	if !ok {
		return fail(fmt.Sprintf("%q is neither a day nor a task number. %s", args[0], usage))
	}
	if len(args) < 2 || !dateparse.IsDigits(args[1]) {
		return fail("The task number is missing. " + usage)
	}
	id, _ = strconv.Atoi(args[1])
	if id == 0 {
		return fail("Task numbers start at 1. " + usage)
	}
	return resolved, id, args[2:], nil
}

func plain(text string) Result {
	return Result{Text: text, Markup: MarkupPlain}
}

// dateError maps date resolution failures onto user-facing text.
func dateError(err error) Result {
	switch {
	case errors.Is(err, dateparse.ErrNotADigit):
		return plain("The amount is not a number. Try something like `in 2 days`.")
	default:
		return plain("Specified timeperiod not found! Try `today`, `tomorrow` or `in 2 days`.")
	}
}

// ledgerError maps ledger failures onto user-facing text.
func ledgerError(err error, day string, id int) Result {
	switch {
	case errors.Is(err, tasklist.ErrNotFound) && id > 0:
		return plain(fmt.Sprintf("Task %d on %s not found.", id, day))
	case errors.Is(err, tasklist.ErrNotFound):
		return plain(fmt.Sprintf("Day %s not found.", day))
	case errors.Is(err, tasklist.ErrMissingArgument):
		return plain("Specify a day or a task number.")
	default:
		return storageError(err)
	}
}

// storageError is the one failure class that is not a plain user mistake;
// it is surfaced distinctly so the transport can flag it.
func storageError(err error) Result {
	return plain(fmt.Sprintf("Storage error: %v", err))
}
