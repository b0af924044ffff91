package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/tokenkit/internal/config"
	infraconfig "github.com/alexisbeaulieu97/tokenkit/internal/infrastructure/config"
	"github.com/alexisbeaulieu97/tokenkit/internal/logger"
	"github.com/alexisbeaulieu97/tokenkit/internal/tokens"
)

// AppContext bundles the services created once settings are resolved.
type AppContext struct {
	Settings *config.Settings
	Logger   *logger.Logger
	Loader   *infraconfig.DocumentLoader
}

func newAppContext(cmd *cobra.Command, flags *rootFlags) (*AppContext, error) {
	settings, err := config.LoadSettings(config.SettingsOptions{
		ConfigFile: flags.configFile,
		Flags:      cmd.Flags(),
	})
	if err != nil {
		return nil, err
	}

	level := settings.Log.Level
	if flags.verbose {
		level = "debug"
	}
	errOut := cmd.ErrOrStderr()
	log, err := logger.New(logger.Options{
		Level:   level,
		Format:  logger.Format(settings.Log.Format),
		NoColor: !isTerminal(errOut),
		Writer:  errOut,
	})
	if err != nil {
		return nil, err
	}

	return &AppContext{
		Settings: settings,
		Logger:   log,
		Loader:   infraconfig.NewDocumentLoader(log),
	}, nil
}

// TokensPath returns the validated absolute path of the token document.
func (a *AppContext) TokensPath() (string, error) {
	return validateTokensPath(a.Settings.Tokens)
}

// Builder loads the token document and wraps it in a table builder.
func (a *AppContext) Builder(ctx context.Context) (*tokens.Builder, error) {
	path, err := a.TokensPath()
	if err != nil {
		return nil, err
	}
	doc, err := a.Loader.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	return tokens.NewBuilder(doc, a.Settings.ResolverOptions()), nil
}

// Theme picks the theme a command works on. A configured theme the document
// does not define falls back to the global table unless the user asked for it
// explicitly on the command line.
func (a *AppContext) Theme(cmd *cobra.Command, doc *tokens.Document) string {
	theme := a.Settings.Theme
	if theme == "" || theme == tokens.GlobalTree {
		return tokens.GlobalTree
	}
	if _, ok := doc.Theme(theme); ok {
		return theme
	}
	if flag := cmd.Flags().Lookup("theme"); flag != nil && flag.Changed {
		return theme
	}
	a.Logger.With("theme", theme).Debug("configured theme not defined, using global tokens")
	return tokens.GlobalTree
}

// DefaultTheme picks the theme rendered into the :root block.
func (a *AppContext) DefaultTheme(doc *tokens.Document) string {
	theme := a.Settings.CSS.DefaultTheme
	if theme == "" {
		return tokens.GlobalTree
	}
	if _, ok := doc.Theme(theme); ok {
		return theme
	}
	a.Logger.With("theme", theme).Debug("default theme not defined, using global tokens for :root")
	return tokens.GlobalTree
}

func isTerminal(writer any) bool {
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}
