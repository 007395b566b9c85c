package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/osmscripts/core/internal/console"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// ErrSubprocessFailure is matched by every *ExitError.
var ErrSubprocessFailure = errors.New("subprocess failed")

// ExitError reports a command that exited with a non-zero status.
type ExitError struct {
	Command string
	Code    int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command '%s' failed, error code: %d", e.Command, e.Code)
}

// Is makes errors.Is(err, ErrSubprocessFailure) hold for exit errors.
func (e *ExitError) Is(target error) bool {
	return target == ErrSubprocessFailure
}

// Shell executes command lines in the current working directory.
type Shell struct {
	Logger *log.Logger

	// Stdin, Stdout and Stderr default to the process streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Env is appended to the inherited process environment.
	Env []string
}

// New returns a Shell logging to logger.
func New(logger *log.Logger) *Shell {
	return &Shell{Logger: logger}
}

// Join quotes the words that need it and joins them into a command line
// that runs them as separate arguments.
func Join(words ...string) (string, error) {
	quoted := make([]string, len(words))
	for i, word := range words {
		q, err := syntax.Quote(word, syntax.LangBash)
		if err != nil {
			return "", fmt.Errorf("quoting %q: %w", word, err)
		}
		quoted[i] = q
	}
	return strings.Join(quoted, " "), nil
}

// Run echoes and executes command, streaming its output.
func (s *Shell) Run(ctx context.Context, command string, quiet bool) error {
	console.Command(s.logger(), command, quiet)
	return s.exec(ctx, command, s.stdin(), s.stdout(), s.stderr())
}

// Output executes command without echoing it and returns its standard output
// split into lines. Trailing empty lines are dropped.
func (s *Shell) Output(ctx context.Context, command string) ([]string, error) {
	var stdout bytes.Buffer
	if err := s.exec(ctx, command, nil, &stdout, s.stderr()); err != nil {
		return nil, err
	}

	text := strings.TrimRight(stdout.String(), "\r\n")
	if text == "" {
		return nil, nil
	}
	return strings.Split(text, "\n"), nil
}

// Cd changes the working directory to path, calls fn and changes back,
// whether fn succeeds, fails or panics.
func (s *Shell) Cd(path string, fn func() error, quiet bool) (err error) {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}

	console.Command(s.logger(), "cd "+path, quiet)
	if err := os.Chdir(path); err != nil {
		return fmt.Errorf("changing directory to %s: %w", path, err)
	}

	defer func() {
		console.Command(s.logger(), "cd "+cwd, quiet)
		if cdErr := os.Chdir(cwd); cdErr != nil && err == nil {
			err = fmt.Errorf("restoring directory %s: %w", cwd, cdErr)
		}
	}()

	return fn()
}

func (s *Shell) exec(ctx context.Context, command string, stdin io.Reader, stdout, stderr io.Writer) error {
	prog, err := syntax.NewParser().Parse(strings.NewReader(command), "")
	if err != nil {
		return fmt.Errorf("parsing command '%s': %w", command, err)
	}

	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}

	env := append(os.Environ(), s.Env...)
	runner, err := interp.New(
		interp.Dir(dir),
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(stdin, stdout, stderr),
	)
	if err != nil {
		return fmt.Errorf("creating interpreter: %w", err)
	}

	if ctx == nil {
		ctx = context.Background()
	}

	err = runner.Run(ctx, prog)
	if err != nil {
		var status interp.ExitStatus
		if errors.As(err, &status) {
			return &ExitError{Command: command, Code: int(status)}
		}
		return fmt.Errorf("running command '%s': %w", command, err)
	}
	return nil
}

func (s *Shell) logger() *log.Logger {
	if s.Logger == nil {
		return console.Discard()
	}
	return s.Logger
}

func (s *Shell) stdin() io.Reader {
	if s.Stdin == nil {
		return os.Stdin
	}
	return s.Stdin
}

func (s *Shell) stdout() io.Writer {
	if s.Stdout == nil {
		return os.Stdout
	}
	return s.Stdout
}

func (s *Shell) stderr() io.Writer {
	if s.Stderr == nil {
		return os.Stderr
	}
	return s.Stderr
}
