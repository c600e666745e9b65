package report

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FormatJSON formats a report as indented JSON.
func FormatJSON(report *Report) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}

// FormatMarkdown formats a report as a Markdown document.
func FormatMarkdown(report *Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Tasks for %s\n\n", report.User)
	fmt.Fprintf(&b, "Generated %s. %d done, %d open.\n",
		report.GeneratedAt.Format("2006-01-02 15:04"), report.TotalDone, report.TotalOpen)

	for _, day := range report.Days {
		fmt.Fprintf(&b, "\n## %s\n\n", day.Day)
		if len(day.Tasks) == 0 {
			b.WriteString("No tasks.\n")
			continue
		}
		for _, task := range day.Tasks {
			mark := " "
			if task.Done {
				mark = "x"
			}
			fmt.Fprintf(&b, "- [%s] %d) %s\n", mark, task.ID, task.Text)
		}
	}
	return b.String()
}
