package command

import (
	"context"

	"github.com/spf13/cobra"
)

// Update runs the package manager update in the project the script is
// installed in.
type Update struct {
	force bool
}

func (c *Update) Configure(cmd *cobra.Command, env *Env) {
	cmd.Use = env.Name
	cmd.Short = "Updates the packages of the script project"
	cmd.Long = "Runs the package manager update in the project the script is installed in.\n" +
		"Run it from that directory, or with --global where the script allows it."
	cmd.Args = cobra.NoArgs
	cmd.Flags().BoolVar(&c.force, "force", false,
		"Skip the check for uncommitted or unpushed changes in vendor repositories")
}

func (c *Update) Run(ctx context.Context, env *Env, _ []string) error {
	p, err := env.Script.CwdProject()
	if err != nil {
		return err
	}
	if err := p.VerifyCurrent(); err != nil {
		return err
	}

	if !c.force {
		// The update rewrites vendor/.
		if err := p.VerifyNoUncommittedChanges(ctx); err != nil {
			return err
		}
	}
	return p.Update(ctx)
}
