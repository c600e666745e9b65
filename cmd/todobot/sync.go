// Package main is the entry point for the todobot application.
// This file contains the sync subcommand handler.
package main

import (
	"flag"
	"fmt"
	"os"

	"todobot/internal/gitsync"
)

const syncHelpText = `todobot sync - Sync data with git

USAGE:
    todobot sync [OPTIONS]

OPTIONS:
    --init         Initialize a git repo in the data directory
    --status       Show git sync status
    --pull         Pull changes from the remote
    -h, --help     Show this help message

DESCRIPTION:
    Without options, commits any local changes and pushes them to the
    remote if one is configured.
`

// runSync handles the "todobot sync" subcommand.
func runSync(args []string) {
	fs := flag.NewFlagSet("sync", flag.ExitOnError)

	initFlag := fs.Bool("init", false, "initialize a git repo in the data directory")
	statusFlag := fs.Bool("status", false, "show git sync status")
	pullFlag := fs.Bool("pull", false, "pull changes from the remote")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, syncHelpText)
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *helpFlag {
		fmt.Print(syncHelpText)
		os.Exit(0)
	}

	if !gitsync.IsGitInstalled() {
		fmt.Fprintln(os.Stderr, "Error: git is not installed")
		os.Exit(1)
	}

	cfg := loadConfigOrExit()
	git := gitsync.New(cfg.GetDataDir(), &gitsync.Config{
		Enabled:    true,
		AutoCommit: cfg.Sync.AutoCommit,
		AutoPush:   cfg.Sync.AutoPush,
	})

	switch {
	case *initFlag:
		if err := git.Init(); err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing repo: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Initialized git repo in %s\n", cfg.GetDataDir())
		return

	case *statusFlag:
		status, err := git.GetStatus()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading status: %v\n", err)
			os.Exit(1)
		}
		if !status.IsRepo {
			fmt.Println("Not a git repo. Run: todobot sync --init")
			return
		}
		fmt.Printf("Branch:  %s\n", status.Branch)
		if status.HasChanges {
			fmt.Println("Changes: uncommitted changes present")
		} else {
			fmt.Println("Changes: clean")
		}
		return

	case *pullFlag:
		if err := git.Pull(); err != nil {
			fmt.Fprintf(os.Stderr, "Error pulling: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Pulled.")
		return
	}

	if !git.IsRepo() {
		fmt.Fprintln(os.Stderr, "Error: not a git repo. Run: todobot sync --init")
		os.Exit(1)
	}
	if err := git.Commit("Manual sync"); err != nil {
		fmt.Fprintf(os.Stderr, "Error committing: %v\n", err)
		os.Exit(1)
	}
	if err := git.Push(); err != nil {
		fmt.Fprintf(os.Stderr, "Error pushing: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Synced.")
}
