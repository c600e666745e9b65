package command

import (
	"fmt"
	"sort"
	"strings"
)

// Usage one-liners, shared between guidance replies and help texts.
const (
	usageAdd  = "Usage: /add [today|tomorrow|in N <unit>] <task text>"
	usageDel  = "Usage: /del all | /del <number> | /del <day> [number]"
	usageEdit = "Usage: /edit [<day>] <number> <new text>"
	usageDone = "Usage: /done [<day>] <number>"
)

const welcomeText = "`Welcome to TODOBOT`\n\n" +
	"Start by adding tasks to your todo list.\n\n" +
	"Simply type: */add* _This is an example task_\n" +
	"This adds the task to your _today_ list.\n\n" +
	"To add a task to another day, type e.g.\n" +
	"/add *tomorrow* _example task no. 2_\n" +
	"You can replace *tomorrow* with phrases such as\n" +
	"_in 2 days, in 6 weeks_, and so on.\n\n" +
	"See your tasks with /tasks, or /tasks *today* for one day.\n" +
	"Mark a task done with /done *number*.\n" +
	"At the end of each day, your tasks move to the next day's list.\n\n" +
	"_Available commands:_\n`/add` `/tasks` `/del` `/edit` `/done`"

// helpTexts holds the static per-command help shown when a command is
// invoked with a leading "help" argument.
var helpTexts = map[string]string{
	"start": "Shows the welcome message.",
	"add": usageAdd + "\n\n" +
		"Adds a task. Without a date phrase the task lands on today.\n" +
		"Units: s/sec/seconds, m/min/minutes, h/hr/hours, d/days, w/weeks, mo/months, y/yr/years.",
	"tasks": "Usage: /tasks [today|tomorrow|in N <unit>]\n\n" +
		"Without arguments, lists every day. With a date phrase, lists just that day.",
	"del": usageDel + "\n\n" +
		"`all` wipes the whole list, a bare number deletes that task from today,\n" +
		"a day alone deletes the whole day.",
	"edit": usageEdit + "\n\n" +
		"A bare number edits today's task; otherwise name the day first.",
	"done": usageDone + "\n\n" +
		"Toggles the done mark. Running it again flips the task back.",
}

// helpResult returns the help text for one command, or the overview when the
// name is empty or unknown.
func helpResult(name string) Result {
	if text, ok := helpTexts[name]; ok {
		return Result{Text: text, Markup: MarkupMarkdown}
	}

	names := make([]string, 0, len(helpTexts))
	for n := range helpTexts {
		names = append(names, "/"+n)
	}
	sort.Strings(names)
	text := fmt.Sprintf("Commands: %s\nUse `<command> help` for details.", strings.Join(names, " "))
	return Result{Text: text, Markup: MarkupMarkdown}
}
