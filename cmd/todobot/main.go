// Package main is the entry point for the todobot application.
// It loads configuration, initializes storage, and starts the chat console.
package main

import (
	"flag"
	"fmt"
	"os"

	"todobot/internal/command"
	"todobot/internal/config"
	"todobot/internal/gitsync"
	"todobot/internal/notify"
	"todobot/internal/storage"
	"todobot/internal/ui"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const helpText = `todobot - A chat-driven task list for your terminal

USAGE:
    todobot [OPTIONS]
    todobot <command> [ARGS]

COMMANDS:
    backup           Create a backup of all data
    backup --list    List available backups
    restore NAME     Restore from a specific backup
    restore --latest Restore from the most recent backup
    export           Print your task list as Markdown
    export -f json   Print your task list as JSON
    sync             Sync data with git (commit + push)
    sync --init      Initialize git repo in data directory
    sync --status    Show git sync status
    import todoist FILE       Import from a Todoist CSV export
    import taskwarrior FILE   Import from a Taskwarrior JSON export

OPTIONS:
    -h, --help       Show this help message
    -v, --version    Show version information

DESCRIPTION:
    todobot keeps a day-keyed task list you drive with chat commands:

        add buy milk tomorrow
        add call dentist in 2 weeks
        tasks
        done 1
        del 2024-02-14 3

    At the configured rollover time (default 23:55) the day's tasks move
    to the next day's list.

DATA STORAGE:
    All data lives in ~/.todobot/ as plain JSON files, one per user.

CONFIGURATION:
    Optional config file: ~/.config/todobot/config.yaml

EXAMPLES:
    # Start the chat console
    todobot

    # Create a backup
    todobot backup

    # Restore from the most recent backup
    todobot restore --latest

    # Print your tasks as Markdown
    todobot export
`

func main() {
	// Subcommands bypass flag parsing.
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "backup":
			runBackup(os.Args[2:])
			return
		case "restore":
			runRestore(os.Args[2:])
			return
		case "export":
			runExport(os.Args[2:])
			return
		case "sync":
			runSync(os.Args[2:])
			return
		case "import":
			runImport(os.Args[2:])
			return
		}
	}

	showVersion := flag.Bool("version", false, "show version information")
	flag.BoolVar(showVersion, "v", false, "show version information (shorthand)")

	showHelp := flag.Bool("help", false, "show help message")
	flag.BoolVar(showHelp, "h", false, "show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, helpText)
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("todobot version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
		os.Exit(0)
	}
	if *showHelp {
		fmt.Print(helpText)
		os.Exit(0)
	}
	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unknown arguments: %v\n\n", flag.Args())
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	backend, err := storage.NewFileBackend(cfg.GetDataDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	var git *gitsync.GitSync
	if cfg.Sync.Enabled && gitsync.IsGitInstalled() {
		git = gitsync.New(cfg.GetDataDir(), &gitsync.Config{
			Enabled:       cfg.Sync.Enabled,
			AutoCommit:    cfg.Sync.AutoCommit,
			AutoPush:      cfg.Sync.AutoPush,
			PullOnStartup: cfg.Sync.PullOnStartup,
		})

		if cfg.Sync.PullOnStartup && git.IsRepo() {
			if err := git.Pull(); err != nil {
				// Local data is still valid; keep going.
				fmt.Fprintf(os.Stderr, "Warning: sync pull failed: %v\n", err)
			}
		}
		if cfg.Sync.AutoCommit && git.IsRepo() {
			backend.SetOnSave(git.OnSnapshotSaved)
		}
	}

	core := command.New(backend)
	styles := ui.NewStyles(&cfg.Theme)
	app := ui.NewApp(core, cfg, styles, notify.New())

	if err := ui.Run(app); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}

	if git != nil {
		git.Flush()
	}
}

// loadConfigOrExit is shared by the subcommands.
func loadConfigOrExit() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
