// Package main is the entry point for the todobot application.
// This file contains the backup and restore subcommand handlers.
package main

import (
	"flag"
	"fmt"
	"os"

	"todobot/internal/backup"
)

const backupHelpText = `todobot backup - Create and manage backups

USAGE:
    todobot backup [OPTIONS]

OPTIONS:
    -l, --list     List available backups
    -h, --help     Show this help message

DESCRIPTION:
    Creates a timestamped backup of every user ledger. Backups are stored
    in ~/.todobot/backups/ and can be restored later.

EXAMPLES:
    # Create a new backup
    todobot backup

    # List all available backups
    todobot backup --list
`

const restoreHelpText = `todobot restore - Restore data from a backup

USAGE:
    todobot restore NAME
    todobot restore --latest

OPTIONS:
    --latest       Restore from the most recent backup
    -h, --help     Show this help message

DESCRIPTION:
    Replaces the current ledgers with the contents of a backup. The files
    being replaced are kept with a .bak suffix.
`

// runBackup handles the "todobot backup" subcommand.
func runBackup(args []string) {
	fs := flag.NewFlagSet("backup", flag.ExitOnError)

	listFlag := fs.Bool("list", false, "list available backups")
	fs.BoolVar(listFlag, "l", false, "list available backups (shorthand)")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, backupHelpText)
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *helpFlag {
		fmt.Print(backupHelpText)
		os.Exit(0)
	}

	cfg := loadConfigOrExit()
	manager := backup.NewManager(cfg.GetDataDir())

	if *listFlag {
		listBackups(manager)
		return
	}

	name, err := manager.Create()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating backup: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Created backup %s\n", name)
}

func listBackups(manager *backup.Manager) {
	backups, err := manager.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing backups: %v\n", err)
		os.Exit(1)
	}
	if len(backups) == 0 {
		fmt.Println("No backups found.")
		return
	}
	for _, b := range backups {
		stats := b.Manifest.Stats
		fmt.Printf("%s  %d user(s), %d day(s), %d task(s)\n",
			b.Name, stats.Users, stats.Days, stats.Tasks)
	}
}

// runRestore handles the "todobot restore" subcommand.
func runRestore(args []string) {
	fs := flag.NewFlagSet("restore", flag.ExitOnError)

	latestFlag := fs.Bool("latest", false, "restore from the most recent backup")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, restoreHelpText)
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *helpFlag {
		fmt.Print(restoreHelpText)
		os.Exit(0)
	}

	cfg := loadConfigOrExit()
	manager := backup.NewManager(cfg.GetDataDir())

	var name string
	switch {
	case *latestFlag:
		latest, err := manager.Latest()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		name = latest.Name
	case fs.NArg() == 1:
		name = fs.Arg(0)
	default:
		fs.Usage()
		os.Exit(1)
	}

	if err := manager.Restore(name); err != nil {
		fmt.Fprintf(os.Stderr, "Error restoring backup: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Restored backup %s\n", name)
}
