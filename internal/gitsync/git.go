// Package gitsync provides git synchronization for the todobot data
// directory. It handles debounced auto-commits after ledger flushes, plus
// pull and push.
package gitsync

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// Config holds git sync configuration.
type Config struct {
	Enabled       bool `yaml:"enabled"`
	AutoCommit    bool `yaml:"auto_commit"`
	AutoPush      bool `yaml:"auto_push"`
	PullOnStartup bool `yaml:"pull_on_startup"`
}

const (
	defaultGitTimeout  = 10 * time.Second
	pullPushGitTimeout = 60 * time.Second
)

// GitSync manages git operations for the data directory.
type GitSync struct {
	dataDir string
	config  *Config

	// Debouncing for auto-commit: rapid command bursts fold into one commit.
	mu           sync.Mutex
	pendingUsers map[string]bool
	commitTimer  *time.Timer

	// Serializes git operations to avoid index/lock conflicts.
	opMu sync.Mutex

	debounceDuration time.Duration
}

// New creates a new GitSync instance.
func New(dataDir string, cfg *Config) *GitSync {
	return &GitSync{
		dataDir:          dataDir,
		config:           cfg,
		pendingUsers:     make(map[string]bool),
		debounceDuration: 2 * time.Second,
	}
}

// IsGitInstalled checks if git is available on the system.
func IsGitInstalled() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// IsRepo checks if the data directory is a git repository.
func (g *GitSync) IsRepo() bool {
	info, err := os.Stat(filepath.Join(g.dataDir, ".git"))
	return err == nil && info.IsDir()
}

// Init initializes a git repository in the data directory with a .gitignore
// that excludes backup artifacts.
func (g *GitSync) Init() error {
	g.opMu.Lock()
	defer g.opMu.Unlock()

	if g.IsRepo() {
		return nil
	}
	if _, err := g.run(defaultGitTimeout, "init"); err != nil {
		return fmt.Errorf("git init: %w", err)
	}

	ignorePath := filepath.Join(g.dataDir, ".gitignore")
	ignore := "*.bak\n*.corrupt.*\nbackups/\n"
	if err := os.WriteFile(ignorePath, []byte(ignore), 0600); err != nil {
		return fmt.Errorf("write .gitignore: %w", err)
	}
	return nil
}

// OnSnapshotSaved schedules a debounced commit covering the user's ledger.
// It is wired as the storage backend's post-save hook.
func (g *GitSync) OnSnapshotSaved(user string) {
	if !g.config.AutoCommit || !g.IsRepo() {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.pendingUsers[user] = true
	if g.commitTimer != nil {
		g.commitTimer.Stop()
	}
	g.commitTimer = time.AfterFunc(g.debounceDuration, g.commitPending)
}

// Flush commits any pending changes immediately. Call before exit.
func (g *GitSync) Flush() {
	g.mu.Lock()
	if g.commitTimer != nil {
		g.commitTimer.Stop()
		g.commitTimer = nil
	}
	g.mu.Unlock()
	g.commitPending()
}

func (g *GitSync) commitPending() {
	g.mu.Lock()
	users := make([]string, 0, len(g.pendingUsers))
	for u := range g.pendingUsers {
		users = append(users, u)
	}
	g.pendingUsers = make(map[string]bool)
	g.mu.Unlock()

	if len(users) == 0 {
		return
	}
	sort.Strings(users)
	_ = g.Commit(fmt.Sprintf("Update tasks for %s", strings.Join(users, ", ")))
}

// Commit stages everything and commits with the given message. A clean tree
// is not an error.
func (g *GitSync) Commit(message string) error {
	g.opMu.Lock()
	defer g.opMu.Unlock()

	if _, err := g.run(defaultGitTimeout, "add", "-A"); err != nil {
		return fmt.Errorf("git add: %w", err)
	}

	out, err := g.run(defaultGitTimeout, "status", "--porcelain")
	if err != nil {
		return fmt.Errorf("git status: %w", err)
	}
	if strings.TrimSpace(out) == "" {
		return nil
	}

	if _, err := g.run(defaultGitTimeout, "commit", "-m", message); err != nil {
		return fmt.Errorf("git commit: %w", err)
	}

	if g.config.AutoPush {
		return g.push()
	}
	return nil
}

// Pull fetches and merges from the default remote. Missing remotes are not
// an error; sync simply stays local.
func (g *GitSync) Pull() error {
	g.opMu.Lock()
	defer g.opMu.Unlock()

	if !g.hasRemote() {
		return nil
	}
	if _, err := g.run(pullPushGitTimeout, "pull", "--ff-only"); err != nil {
		return fmt.Errorf("git pull: %w", err)
	}
	return nil
}

// Push pushes to the default remote.
func (g *GitSync) Push() error {
	g.opMu.Lock()
	defer g.opMu.Unlock()
	return g.push()
}

func (g *GitSync) push() error {
	if !g.hasRemote() {
		return nil
	}
	if _, err := g.run(pullPushGitTimeout, "push"); err != nil {
		return fmt.Errorf("git push: %w", err)
	}
	return nil
}

// Status describes the repository state for display.
type Status struct {
	IsRepo     bool
	Branch     string
	HasChanges bool
}

// GetStatus inspects the repository.
func (g *GitSync) GetStatus() (*Status, error) {
	g.opMu.Lock()
	defer g.opMu.Unlock()

	status := &Status{IsRepo: g.IsRepo()}
	if !status.IsRepo {
		return status, nil
	}

	branch, err := g.run(defaultGitTimeout, "rev-parse", "--abbrev-ref", "HEAD")
	if err == nil {
		status.Branch = strings.TrimSpace(branch)
	}

	out, err := g.run(defaultGitTimeout, "status", "--porcelain")
	if err != nil {
		return nil, fmt.Errorf("git status: %w", err)
	}
	status.HasChanges = strings.TrimSpace(out) != ""
	return status, nil
}

func (g *GitSync) hasRemote() bool {
	out, err := g.run(defaultGitTimeout, "remote")
	return err == nil && strings.TrimSpace(out) != ""
}

// run executes a git command in the data directory with a timeout.
func (g *GitSync) run(timeout time.Duration, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.dataDir

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		return out.String(), fmt.Errorf("%v: %s", err, strings.TrimSpace(out.String()))
	}
	return out.String(), nil
}
