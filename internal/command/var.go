package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// ErrEmptyVariableName is returned for "=value" arguments.
var ErrEmptyVariableName = errors.New("variable name is empty")

// Var gets, sets and clears script variables.
type Var struct{}

func (c *Var) Configure(cmd *cobra.Command, env *Env) {
	cmd.Use = env.Name + " [VAR | VAR= | VAR=value]..."
	cmd.Short = "Gets, sets, or clears script variables"
	cmd.Long = "'VAR' shows the variable, 'VAR=' clears the variable, 'VAR=value' sets the variable.\n" +
		"Without arguments, shows all variables."
	if help := variableHelp(env); help != "" {
		cmd.Long += "\n\n" + help
	}
}

// variableHelp lists the variables declared in the merged configuration.
func variableHelp(env *Env) string {
	config, err := env.Script.Config()
	if err != nil {
		return ""
	}
	declared := config.Get("variables")

	var b strings.Builder
	for _, name := range declared.Keys() {
		b.WriteString("* " + name + " - " + declared.Get(name).Str() + "\n")
	}
	if b.Len() == 0 {
		return ""
	}
	return "Known variables:\n\n" + strings.TrimRight(b.String(), "\n")
}

func (c *Var) Run(_ context.Context, env *Env, args []string) error {
	for _, arg := range args {
		if name, _, _ := strings.Cut(arg, "="); name == "" {
			return fmt.Errorf("'%s': %w", arg, ErrEmptyVariableName)
		}
	}

	store, err := env.Script.Variables()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		for _, v := range store.All() {
			env.printf("%s=%s\n", v.Name, v.Value)
		}
		return nil
	}

	for _, arg := range args {
		name, value, assign := strings.Cut(arg, "=")
		switch {
		case !assign:
		case value == "":
			store.Unset(name)
		default:
			store.Set(name, value)
		}
		current, _ := store.Get(name)
		env.printf("%s=%s\n", name, current)
	}
	return store.Save()
}
