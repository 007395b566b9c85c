package cli

import (
	"fmt"
	"io"

	"github.com/osmscripts/core/internal/branding"
	"github.com/osmscripts/core/internal/config"
	"github.com/spf13/cobra"
)

const settingsCmdName = "settings"

func newSettingsCmd(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   settingsCmdName,
		Short: "Manage user settings",
		Long: fmt.Sprintf(`Read and write settings stored at %s.

Keys: %s (package manager binary), %s (script installation directory),
%s (script name), %s (never, upon_request or always).

Environment variables take precedence, e.g. %s.`,
			config.FilePath(), config.KeyComposer, config.KeyRoot, config.KeyName, config.KeyGlobal,
			branding.EnvVar(config.KeyComposer)),
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if err := config.Set(key, value); err != nil {
				return fmt.Errorf("setting config key %q: %w", key, err)
			}
			fmt.Fprintf(out, "Set %s = %s\n", key, value)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(out, config.Get(args[0]))
			return nil
		},
	})

	return cmd
}
