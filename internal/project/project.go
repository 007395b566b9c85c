package project

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/osmscripts/core/internal/jsontree"
	"github.com/osmscripts/core/internal/manifest"
	"github.com/osmscripts/core/internal/shell"
	"github.com/spf13/afero"
)

var (
	// ErrMissingNamespaceMapping is returned when a package manifest maps no namespace to src/.
	ErrMissingNamespaceMapping = errors.New("missing namespace mapping")

	// ErrUncommittedChanges is returned when a vendor repository has uncommitted files.
	ErrUncommittedChanges = errors.New("uncommitted changes")

	// ErrPendingPush is returned when a vendor repository has local commits not on its remote.
	ErrPendingPush = errors.New("pending commits to push")

	// ErrPendingPull is returned when a vendor repository is behind its remote.
	ErrPendingPull = errors.New("pending commits to pull")

	// ErrNotCurrent is returned by VerifyCurrent outside the script's own project.
	ErrNotCurrent = errors.New("not the script project")
)

// Runner executes shell commands. shell.Shell satisfies it.
type Runner interface {
	Run(ctx context.Context, command string, quiet bool) error
	Cd(path string, fn func() error, quiet bool) error
}

// VCS answers repository state questions about the current directory.
// git.Git satisfies it.
type VCS interface {
	UncommittedFiles(ctx context.Context) ([]string, error)
	Fetch(ctx context.Context, quiet bool) error
	PendingCommitCount(ctx context.Context) (int, error)
}

// Project is a Composer project rooted at a directory.
type Project struct {
	path       string
	fs         afero.Fs
	shell      Runner
	vcs        VCS
	composer   string
	scriptRoot string

	lock     lazy[*manifest.Lock]
	packages lazy[[]*Package]
	byName   map[string]*Package
}

// Option configures a Project.
type Option func(*Project)

// WithFs sets the file system manifests are read from. Defaults to the OS.
func WithFs(fs afero.Fs) Option {
	return func(p *Project) { p.fs = fs }
}

// WithShell sets the runner used for package manager and directory changes.
func WithShell(r Runner) Option {
	return func(p *Project) { p.shell = r }
}

// WithVCS sets the repository inspector used by VerifyNoUncommittedChanges.
func WithVCS(v VCS) Option {
	return func(p *Project) { p.vcs = v }
}

// WithComposer sets the package manager binary. Defaults to "composer".
func WithComposer(bin string) Option {
	return func(p *Project) {
		if bin != "" {
			p.composer = bin
		}
	}
}

// WithScriptRoot records the root of the project the running script is
// installed in, for IsCurrent.
func WithScriptRoot(root string) Option {
	return func(p *Project) { p.scriptRoot = root }
}

// New returns the project rooted at path.
func New(path string, opts ...Option) *Project {
	p := &Project{
		path:     filepath.Clean(path),
		fs:       afero.NewOsFs(),
		composer: "composer",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Path returns the project root directory.
func (p *Project) Path() string { return p.path }

// Lock returns the parsed composer.lock. The file is required.
func (p *Project) Lock() (*manifest.Lock, error) {
	return p.lock.get(func() (*manifest.Lock, error) {
		file := filepath.Join(p.path, manifest.LockFile)
		doc, err := jsontree.ReadStrict(p.fs, file)
		if err != nil {
			return nil, err
		}
		lock, err := manifest.ParseLock(doc)
		if err != nil {
			return nil, fmt.Errorf("parsing '%s': %w", file, err)
		}
		return lock, nil
	})
}

// Packages returns the installed packages in lockfile order. A name listed
// twice keeps its first position and its last entry.
func (p *Project) Packages() ([]*Package, error) {
	return p.packages.get(func() ([]*Package, error) {
		lock, err := p.Lock()
		if err != nil {
			return nil, err
		}

		p.byName = make(map[string]*Package, len(lock.Packages))
		var result []*Package
		for _, entry := range lock.Packages {
			if existing, ok := p.byName[entry.Name]; ok {
				existing.lock = entry
				continue
			}
			pkg := &Package{name: entry.Name, project: p, lock: entry}
			p.byName[entry.Name] = pkg
			result = append(result, pkg)
		}
		return result, nil
	})
}

// Package returns the installed package called name, or nil if there is none.
func (p *Project) Package(name string) (*Package, error) {
	if _, err := p.Packages(); err != nil {
		return nil, err
	}
	return p.byName[name], nil
}

// IsCurrent reports whether this is the project the running script is
// installed in.
func (p *Project) IsCurrent() bool {
	if p.scriptRoot == "" {
		return false
	}
	return samePath(p.path, p.scriptRoot)
}

// VerifyCurrent fails unless IsCurrent.
func (p *Project) VerifyCurrent() error {
	if !p.IsCurrent() {
		return fmt.Errorf("before running this command, change current directory to '%s': %w", p.scriptRoot, ErrNotCurrent)
	}
	return nil
}

// VerifyNoUncommittedChanges checks every installed package that is a git
// repository for uncommitted files and for commits not yet pushed or pulled.
// It stops at the first offending package.
func (p *Project) VerifyNoUncommittedChanges(ctx context.Context) error {
	packages, err := p.Packages()
	if err != nil {
		return err
	}
	if p.shell == nil || p.vcs == nil {
		return errors.New("project has no shell or version control configured")
	}

	for _, pkg := range packages {
		isRepo, err := afero.DirExists(p.fs, filepath.Join(pkg.Dir(), ".git"))
		if err != nil {
			return fmt.Errorf("checking %s for a git repository: %w", pkg.Path(), err)
		}
		if !isRepo {
			continue
		}

		if err := p.shell.Cd(pkg.Dir(), func() error { return p.verifyRepository(ctx, pkg.Path()) }, true); err != nil {
			return err
		}
	}
	return nil
}

func (p *Project) verifyRepository(ctx context.Context, dir string) error {
	files, err := p.vcs.UncommittedFiles(ctx)
	if err != nil {
		return err
	}
	if len(files) > 0 {
		return fmt.Errorf("commit and push pending changes in '%s' first: %w", dir, ErrUncommittedChanges)
	}

	if err := p.vcs.Fetch(ctx, true); err != nil {
		return err
	}

	count, err := p.vcs.PendingCommitCount(ctx)
	if err != nil {
		return err
	}
	switch {
	case count > 0:
		return fmt.Errorf("push pending commits in '%s' first: %w", dir, ErrPendingPush)
	case count < 0:
		return fmt.Errorf("pull pending commits in '%s' first: %w", dir, ErrPendingPull)
	}
	return nil
}

// Require adds a dependency given as "name" or "name:constraint". When
// repoURL is set, it is registered as the package's VCS repository first.
func (p *Project) Require(ctx context.Context, spec, repoURL string) error {
	return p.inProject(func() error {
		if repoURL != "" {
			name, _, _ := strings.Cut(spec, ":")
			key := "repositories." + strings.ReplaceAll(name, "/", "_")
			if err := p.run(ctx, p.composer, "config", key, "vcs", repoURL); err != nil {
				return err
			}
		}
		return p.run(ctx, p.composer, "require", spec)
	})
}

// Update runs the package manager update.
func (p *Project) Update(ctx context.Context) error {
	return p.inProject(func() error {
		return p.run(ctx, p.composer, "update")
	})
}

// run executes words as one command, each word passed verbatim.
func (p *Project) run(ctx context.Context, words ...string) error {
	command, err := shell.Join(words...)
	if err != nil {
		return err
	}
	return p.shell.Run(ctx, command, false)
}

// inProject runs fn with the project root as working directory.
func (p *Project) inProject(fn func() error) error {
	if p.shell == nil {
		return errors.New("project has no shell configured")
	}
	return p.shell.Cd(p.path, fn, true)
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
