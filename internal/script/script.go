package script

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/osmscripts/core/internal/console"
	"github.com/osmscripts/core/internal/files"
	"github.com/osmscripts/core/internal/git"
	"github.com/osmscripts/core/internal/jsontree"
	"github.com/osmscripts/core/internal/manifest"
	"github.com/osmscripts/core/internal/project"
	"github.com/osmscripts/core/internal/shell"
	"github.com/osmscripts/core/internal/variables"
	"github.com/spf13/afero"
)

// Options configures a Script. Zero values fall back to the process
// environment.
type Options struct {
	// Name is the script name. Defaults to the executable name.
	Name string
	// Root is the project the script is installed in. Defaults to three
	// directories above the executable (<root>/vendor/bin/<script>).
	Root string
	// Global overrides the global mode from the merged configuration.
	Global string
	// Composer is the package manager binary.
	Composer string

	Fs     afero.Fs
	Logger *log.Logger
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Command is one entry of the merged "commands" mapping.
type Command struct {
	Name    string
	Package string
	Class   string
}

// Script is the running script.
type Script struct {
	name     string
	root     string
	global   string
	composer string

	fs     afero.Fs
	logger *log.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	project    *project.Project
	config     *jsontree.Node
	configErr  error
	aggregated bool

	shell     *shell.Shell
	git       *git.Git
	files     *files.Files
	variables *variables.Store
}

// New resolves the script described by opts.
func New(opts Options) (*Script, error) {
	s := &Script{
		name:     opts.Name,
		root:     opts.Root,
		global:   opts.Global,
		composer: opts.Composer,
		fs:       opts.Fs,
		logger:   opts.Logger,
		stdin:    opts.Stdin,
		stdout:   opts.Stdout,
		stderr:   opts.Stderr,
	}

	if s.name == "" || s.root == "" {
		exe, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("resolving script executable: %w", err)
		}
		if s.name == "" {
			s.name = NameFromExecutable(exe)
		}
		if s.root == "" {
			s.root = RootFromExecutable(exe)
		}
	}

	root, err := filepath.Abs(s.root)
	if err != nil {
		return nil, fmt.Errorf("resolving script root %s: %w", s.root, err)
	}
	s.root = root

	if s.fs == nil {
		s.fs = afero.NewOsFs()
	}
	if s.logger == nil {
		s.logger = console.New(s.stderr)
	}
	if s.stdout == nil {
		s.stdout = os.Stdout
	}
	if s.stderr == nil {
		s.stderr = os.Stderr
	}
	if s.stdin == nil {
		s.stdin = os.Stdin
	}
	return s, nil
}

// NameFromExecutable returns the script name a binary at exe runs as.
func NameFromExecutable(exe string) string {
	name := filepath.Base(exe)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// RootFromExecutable returns the project a binary at
// <root>/vendor/bin/<script> is installed in.
func RootFromExecutable(exe string) string {
	return filepath.Dir(filepath.Dir(filepath.Dir(exe)))
}

// Name returns the script name.
func (s *Script) Name() string { return s.name }

// Root returns the directory of the project the script is installed in.
func (s *Script) Root() string { return s.root }

// Fs returns the file system the script reads and writes.
func (s *Script) Fs() afero.Fs { return s.fs }

// Logger returns the script logger.
func (s *Script) Logger() *log.Logger { return s.logger }

// Stdout returns where command output goes.
func (s *Script) Stdout() io.Writer { return s.stdout }

// Cwd returns the current working directory.
func (s *Script) Cwd() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving working directory: %w", err)
	}
	return cwd, nil
}

// Project returns the project the script is installed in.
func (s *Script) Project() *project.Project {
	if s.project == nil {
		s.project = s.newProject(s.root)
	}
	return s.project
}

// CwdProject returns a new view of the project in the working directory.
func (s *Script) CwdProject() (*project.Project, error) {
	cwd, err := s.Cwd()
	if err != nil {
		return nil, err
	}
	return s.newProject(cwd), nil
}

func (s *Script) newProject(path string) *project.Project {
	return project.New(path,
		project.WithFs(s.fs),
		project.WithShell(s.Shell()),
		project.WithVCS(s.Git()),
		project.WithComposer(s.composer),
		project.WithScriptRoot(s.root),
	)
}

// Title returns the display name from the merged configuration, or
// "<name> Script".
func (s *Script) Title() string {
	config, err := s.Config()
	if err == nil {
		if title := config.Get("name").Str(); title != "" {
			return title
		}
	}
	return s.name + " Script"
}

// Global returns the global mode: never, upon_request or always.
func (s *Script) Global() string {
	mode := s.global
	if mode == "" {
		if config, err := s.Config(); err == nil {
			mode = config.Get("global").Str()
		}
	}

	switch mode {
	case manifest.GlobalUponRequest, manifest.GlobalAlways:
		return mode
	default:
		return manifest.GlobalNever
	}
}

// Shell returns the shared shell helper.
func (s *Script) Shell() *shell.Shell {
	if s.shell == nil {
		s.shell = &shell.Shell{
			Logger: s.logger,
			Stdin:  s.stdin,
			Stdout: s.stdout,
			Stderr: s.stderr,
		}
	}
	return s.shell
}

// Git returns the shared git helper.
func (s *Script) Git() *git.Git {
	if s.git == nil {
		s.git = git.New(s.Shell())
	}
	return s.git
}

// Files returns the shared template and file helper.
func (s *Script) Files() *files.Files {
	if s.files == nil {
		s.files = files.New(s.fs, s.logger, s.root, s.name)
	}
	return s.files
}

// Variables returns the variable store of the working directory project.
// The store location is fixed on first call.
func (s *Script) Variables() (*variables.Store, error) {
	if s.variables == nil {
		cwd, err := s.Cwd()
		if err != nil {
			return nil, err
		}
		s.variables = variables.New(s.Files(), variables.Path(cwd, s.name))
	}
	return s.variables, nil
}
