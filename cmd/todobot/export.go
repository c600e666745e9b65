// Package main is the entry point for the todobot application.
// This file contains the export subcommand handler.
package main

import (
	"flag"
	"fmt"
	"os"

	"todobot/internal/report"
	"todobot/internal/storage"
)

const exportHelpText = `todobot export - Print your task list

USAGE:
    todobot export [OPTIONS]

OPTIONS:
    -f, --format FORMAT   Output format: markdown (default) or json
    -u, --user NAME       Export another user's ledger
    -h, --help            Show this help message

EXAMPLES:
    # Print your tasks as Markdown
    todobot export

    # Print your tasks as JSON
    todobot export -f json
`

// runExport handles the "todobot export" subcommand.
func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)

	format := fs.String("format", "markdown", "output format: markdown or json")
	fs.StringVar(format, "f", "markdown", "output format (shorthand)")

	user := fs.String("user", "", "export another user's ledger")
	fs.StringVar(user, "u", "", "export another user's ledger (shorthand)")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, exportHelpText)
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *helpFlag {
		fmt.Print(exportHelpText)
		os.Exit(0)
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

	rep, err := report.NewGenerator(backend).Generate(*user)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating report: %v\n", err)
		os.Exit(1)
	}

	switch *format {
	case "markdown", "md":
		fmt.Print(report.FormatMarkdown(rep))
	case "json":
		data, err := report.FormatJSON(rep)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting report: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", *format)
		os.Exit(1)
	}
}
