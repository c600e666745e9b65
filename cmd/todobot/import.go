// Package main is the entry point for the todobot application.
// This file contains the import subcommand handler.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"todobot/internal/dateparse"
	"todobot/internal/importer"
	"todobot/internal/storage"
	"todobot/internal/tasklist"
)

const importHelpText = `todobot import - Import tasks from other apps

USAGE:
    todobot import FORMAT FILE [OPTIONS]

FORMATS:
    todoist        Todoist CSV export
    taskwarrior    Taskwarrior JSON export

OPTIONS:
    --preview      Show what would be imported without writing
    -u, --user NAME   Import into another user's ledger
    -h, --help     Show this help message

DESCRIPTION:
    Tasks with a due date land on that day; tasks without one land on
    today.

EXAMPLES:
    # Preview a Todoist import
    todobot import todoist backup.csv --preview

    # Import a Taskwarrior export
    todobot import taskwarrior tasks.json
`

// runImport handles the "todobot import" subcommand.
func runImport(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)

	previewFlag := fs.Bool("preview", false, "show what would be imported without writing")

	user := fs.String("user", "", "import into another user's ledger")
	fs.StringVar(user, "u", "", "import into another user's ledger (shorthand)")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, importHelpText)
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *helpFlag {
		fmt.Print(importHelpText)
		os.Exit(0)
	}
	if fs.NArg() != 2 {
		fs.Usage()
		os.Exit(1)
	}

	format, path := fs.Arg(0), fs.Arg(1)
	imp := importer.GetImporter(format)
	if imp == nil {
		fmt.Fprintf(os.Stderr, "Error: unknown format %q (supported: %s)\n",
			format, strings.Join(importer.SupportedFormats(), ", "))
		os.Exit(1)
	}

	file, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %s: %v\n", path, err)
		os.Exit(1)
	}
	defer file.Close()

	if *previewFlag {
		tasks, err := imp.Preview(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", path, err)
			os.Exit(1)
		}
		for _, task := range tasks {
			day := task.Day
			if day == "" {
				day = "today"
			}
			mark := " "
			if task.Done {
				mark = "x"
			}
			fmt.Printf("[%s] %-10s  %s\n", mark, day, task.Text)
		}
		fmt.Printf("%d task(s) would be imported.\n", len(tasks))
		return
	}

	cfg := loadConfigOrExit()
	if *user == "" {
		*user = cfg.User
	}

	backend, err := storage.NewFileBackend(cfg.GetDataDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing storage: %v\n", err)
		os.Exit(1)
	}
	sess, err := tasklist.Open(backend, *user)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger: %v\n", err)
		os.Exit(1)
	}

	today := time.Now().Format(dateparse.DayKey)
	result, err := imp.Import(file, sess.Store, today)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing: %v\n", err)
		os.Exit(1)
	}
	if err := sess.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving ledger: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Imported %d task(s) for %s.\n", result.Imported, *user)
	if result.Skipped > 0 {
		fmt.Printf("Skipped %d item(s).\n", result.Skipped)
	}
	for _, msg := range result.Errors {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", msg)
	}
}
