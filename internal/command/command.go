package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/osmscripts/core/internal/script"
	"github.com/spf13/cobra"
)

// ErrUnknownCommandClass is returned for a class name nothing registered.
var ErrUnknownCommandClass = errors.New("unknown command class")

// Command is a script command implementation.
type Command interface {
	// Configure describes the command: usage, help, arguments and flags.
	Configure(cmd *cobra.Command, env *Env)
	// Run executes the command.
	Run(ctx context.Context, env *Env, args []string) error
}

// Factory creates a fresh Command.
type Factory func() Command

// Env is what a command runs with.
type Env struct {
	Script *script.Script
	// Name is the name the command is registered under.
	Name string
	// DefinedIn is the package that registered the command.
	DefinedIn string
	// Out receives command output.
	Out io.Writer
}

// Render renders a template of the package that defined the command.
func (e *Env) Render(template string, data any) (string, error) {
	return e.Script.Files().Render(e.DefinedIn, template, data)
}

func (e *Env) printf(format string, args ...any) {
	fmt.Fprintf(e.Out, format, args...)
}

var (
	mu       sync.RWMutex
	registry = map[string]Factory{}
)

// Register makes a command implementation available under class.
// Registering the same class twice replaces the earlier factory.
func Register(class string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	registry[class] = f
}

// Lookup returns the factory registered under class.
func Lookup(class string) (Factory, error) {
	mu.RLock()
	defer mu.RUnlock()
	f, ok := registry[class]
	if !ok {
		return nil, fmt.Errorf("'%s': %w", class, ErrUnknownCommandClass)
	}
	return f, nil
}

// Build creates the cobra command for one merged command entry.
func Build(entry script.Command, s *script.Script, out io.Writer) (*cobra.Command, error) {
	factory, err := Lookup(entry.Class)
	if err != nil {
		return nil, fmt.Errorf("creating command %s of package %s: %w", entry.Name, entry.Package, err)
	}

	impl := factory()
	env := &Env{Script: s, Name: entry.Name, DefinedIn: entry.Package, Out: out}
	cmd := &cobra.Command{
		Use: entry.Name,
		RunE: func(cmd *cobra.Command, args []string) error {
			return impl.Run(cmd.Context(), env, args)
		},
	}
	impl.Configure(cmd, env)
	return cmd, nil
}
