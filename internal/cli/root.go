package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/osmscripts/core/internal/branding"
	"github.com/osmscripts/core/internal/command"
	"github.com/osmscripts/core/internal/config"
	"github.com/osmscripts/core/internal/console"
	"github.com/osmscripts/core/internal/manifest"
	"github.com/osmscripts/core/internal/script"
	"github.com/spf13/cobra"
)

// flags holds the global flag values of one invocation.
type flags struct {
	verbose bool
	workDir string
	global  bool
}

// NewRootCommand builds the command tree of s. It fails if the merged
// configuration cannot be loaded or names an unknown command class.
func NewRootCommand(s *script.Script, out io.Writer, version string) (*cobra.Command, error) {
	commands, err := s.Commands()
	if err != nil {
		return nil, err
	}

	f := &flags{}
	root := &cobra.Command{
		Use:           s.Name(),
		Short:         s.Title(),
		Long:          s.Title() + "\n\n" + branding.Description() + ".",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			console.SetVerbose(s.Logger(), f.verbose)
			return changeWorkDir(s, f)
		},
	}
	root.SetOut(out)

	pf := root.PersistentFlags()
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "Increase the verbosity of messages")
	pf.StringVar(&f.workDir, "work-dir", "", "Work in specified directory rather than in current directory")
	if s.Global() == manifest.GlobalUponRequest {
		pf.BoolVarP(&f.global, "global", "g", false,
			"Work in global Composer installation directory rather than in current directory")
	}
	root.Flags().BoolP("version", "V", false, "Display this application version")

	taken := make(map[string]bool, len(commands))
	for _, entry := range commands {
		cmd, err := command.Build(entry, s, out)
		if err != nil {
			return nil, err
		}
		root.AddCommand(cmd)
		taken[entry.Name] = true
	}
	if !taken[settingsCmdName] {
		root.AddCommand(newSettingsCmd(out))
	}

	return root, nil
}

// Execute loads user settings, resolves the running script and runs it.
func Execute(version string) error {
	config.Load()

	s, err := script.New(script.Options{
		Name:     config.Get(config.KeyName),
		Root:     config.Get(config.KeyRoot),
		Global:   config.Get(config.KeyGlobal),
		Composer: config.Get(config.KeyComposer),
	})
	if err != nil {
		console.New(os.Stderr).Error(err.Error())
		return err
	}

	root, err := NewRootCommand(s, os.Stdout, version)
	if err != nil {
		s.Logger().Error(err.Error())
		return err
	}

	return fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt),
	)
}
