package main

import (
	"errors"

	"github.com/spf13/cobra"

	infraconfig "github.com/alexisbeaulieu97/tokenkit/internal/infrastructure/config"
)

type rootFlags struct {
	configFile   string
	tokens       string
	verbose      bool
	logFormat    string
	scopedLookup bool
	strict       bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	app := &AppContext{}

	cmd := &cobra.Command{
		Use:           "tokenkit",
		Short:         "tokenkit resolves design token documents into themed tables, CSS and palettes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			resolved, err := newAppContext(cmd, flags)
			if err != nil {
				return newCommandError(cmd.Name(), "loading settings", err, "Check the settings file, TOKENKIT_* environment variables and flags.")
			}
			*app = *resolved
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configFile, "config", "", "Settings file (default $XDG_CONFIG_HOME/tokenkit/config.yaml)")
	pf.StringVarP(&flags.tokens, "tokens", "t", "", "Token document (.json, .yaml, .yml or .toml)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	pf.StringVar(&flags.logFormat, "log-format", "", "Log format: console or json")
	pf.BoolVar(&flags.scopedLookup, "scoped-lookup", false, "Do not fall back to the global tree for references missing in a theme")
	pf.BoolVar(&flags.strict, "strict", false, "Fail on unresolved references instead of keeping them verbatim")

	cmd.AddCommand(newGetCmd(app))
	cmd.AddCommand(newResolveCmd(app))
	cmd.AddCommand(newTableCmd(app))
	cmd.AddCommand(newCSSCmd(app))
	cmd.AddCommand(newPaletteCmd(app))
	cmd.AddCommand(newThemesCmd(app))
	cmd.AddCommand(newValidateCmd(app))
	cmd.AddCommand(newWatchCmd(app))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func loadBuilderError(operation string, err error) error {
	var loadErr *infraconfig.LoadError
	if errors.As(err, &loadErr) {
		switch loadErr.Code {
		case infraconfig.ErrCodeSyntax, infraconfig.ErrCodeValidation:
			return newCommandError(operation, "reading token document", err, "Fix the reported problem in the token document and retry.")
		case infraconfig.ErrCodeCancelled:
			return newCommandError(operation, "reading token document", err, "The operation was interrupted; run it again.")
		}
	}
	return newCommandError(operation, "loading token document", err, "Check the document path passed with --tokens or set in the settings file.")
}
