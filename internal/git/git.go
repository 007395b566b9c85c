// Package git wraps the git commands scripts need. Every method operates on
// the current working directory; combine with shell.Shell.Cd to target a
// package directory.
package git

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/osmscripts/core/internal/shell"
)

// Runner is the part of shell.Shell used by Git.
type Runner interface {
	Run(ctx context.Context, command string, quiet bool) error
	Output(ctx context.Context, command string) ([]string, error)
}

// Git runs git through a Runner.
type Git struct {
	Shell Runner
}

// New returns a Git using runner.
func New(runner Runner) *Git {
	return &Git{Shell: runner}
}

// EnsureInstalled checks that git is available on PATH.
func EnsureInstalled() error {
	if _, err := exec.LookPath("git"); err != nil {
		return fmt.Errorf("git is required but not found in PATH")
	}
	return nil
}

// Init creates a repository, stages everything and makes the initial commit.
func (g *Git) Init(ctx context.Context) error {
	if err := g.Shell.Run(ctx, "git init", false); err != nil {
		return err
	}
	return g.Commit(ctx, "Initial commit")
}

// SetOrigin registers url as the origin remote.
func (g *Git) SetOrigin(ctx context.Context, url string) error {
	return g.run(ctx, "git", "remote", "add", "origin", url)
}

// Push pushes master to origin and sets it as upstream.
func (g *Git) Push(ctx context.Context) error {
	return g.Shell.Run(ctx, "git push -u origin master", false)
}

// Commit stages all files and commits them with message.
func (g *Git) Commit(ctx context.Context, message string) error {
	if err := g.Shell.Run(ctx, "git add .", false); err != nil {
		return err
	}
	return g.run(ctx, "git", "commit", "-am", message)
}

// UncommittedFiles lists files that differ from HEAD.
func (g *Git) UncommittedFiles(ctx context.Context) ([]string, error) {
	if err := g.Shell.Run(ctx, "git update-index -q --refresh", true); err != nil {
		return nil, err
	}
	return g.Shell.Output(ctx, "git diff-index --name-only HEAD --")
}

// Fetch downloads missing commits from origin.
func (g *Git) Fetch(ctx context.Context, quiet bool) error {
	return g.Shell.Run(ctx, "git fetch", quiet)
}

// CurrentBranch returns the name of the checked-out branch.
func (g *Git) CurrentBranch(ctx context.Context) (string, error) {
	lines, err := g.Shell.Output(ctx, "git rev-parse --abbrev-ref HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(strings.Join(lines, "")), nil
}

// PendingCommitCount returns how many commits separate the current branch
// from its origin counterpart. A positive count means local commits are
// waiting to be pushed, a negative one means remote commits are waiting to
// be pulled.
func (g *Git) PendingCommitCount(ctx context.Context) (int, error) {
	branch, err := g.CurrentBranch(ctx)
	if err != nil {
		return 0, err
	}

	ahead, err := g.count(ctx, "origin/"+branch+".."+branch)
	if err != nil {
		return 0, err
	}
	if ahead > 0 {
		return ahead, nil
	}

	behind, err := g.count(ctx, branch+"..origin/"+branch)
	if err != nil {
		return 0, err
	}
	return -behind, nil
}

// count returns the number of commits in a rev-list range.
func (g *Git) count(ctx context.Context, revisions string) (int, error) {
	command, err := shell.Join("git", "rev-list", revisions, "--ignore-submodules", "--count")
	if err != nil {
		return 0, err
	}
	lines, err := g.Shell.Output(ctx, command)
	if err != nil {
		return 0, err
	}
	text := strings.TrimSpace(strings.Join(lines, ""))
	if text == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("parsing commit count %q: %w", text, err)
	}
	return n, nil
}

func (g *Git) run(ctx context.Context, words ...string) error {
	command, err := shell.Join(words...)
	if err != nil {
		return err
	}
	return g.Shell.Run(ctx, command, false)
}
