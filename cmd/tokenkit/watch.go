package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/tokenkit/internal/infrastructure/output"
	"github.com/alexisbeaulieu97/tokenkit/internal/infrastructure/watch"
)

const (
	stylesheetFile = "tokens.css"
	paletteFile    = "palette.json"
)

var errNoOutputDir = errors.New("--output is required")

type watchOptions struct {
	outputDir string
	debounce  time.Duration
	once      bool
}

func newWatchCmd(app *AppContext) *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate tokens.css and palette.json whenever the document changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, app, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.outputDir, "output", "o", "", "Directory receiving the generated files")
	cmd.Flags().DurationVar(&opts.debounce, "debounce", watch.DefaultDebounce, "Quiet period before regenerating")
	cmd.Flags().BoolVar(&opts.once, "once", false, "Generate once and exit")
	cmd.Flags().String("prefix", "", "Custom property prefix")
	cmd.Flags().String("default-theme", "", "Theme rendered into :root (default from settings)")

	return cmd
}

func runWatch(cmd *cobra.Command, app *AppContext, opts *watchOptions) error {
	if opts.outputDir == "" {
		return newCommandError("watch", "validating flags", errNoOutputDir, "Pass the directory for generated files with -o.")
	}
	dir, err := validateOutputDir(opts.outputDir)
	if err != nil {
		return newCommandError("watch", "validating output directory", err, "Choose a directory path, not a file.")
	}
	path, err := app.TokensPath()
	if err != nil {
		return newCommandError("watch", "locating token document", err, "Pass the document with --tokens or set tokens in the settings file.")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	generate := func(ctx context.Context) error {
		return generateArtefacts(ctx, app, dir)
	}

	if err := generate(ctx); err != nil {
		if opts.once {
			return newCommandError("watch", "generating outputs", err, "Run 'tokenkit validate' for details.")
		}
		app.Logger.Error(err, "initial generation failed, waiting for changes")
	}
	if opts.once {
		return nil
	}

	watcher, err := watch.New(path, opts.debounce, app.Logger, generate)
	if err != nil {
		return newCommandError("watch", "creating watcher", err, "Check the token document path.")
	}
	if err := watcher.Run(ctx); err != nil {
		return newCommandError("watch", fmt.Sprintf("watching %s", path), err, "Ensure the document directory exists and is readable.")
	}
	return nil
}

func generateArtefacts(ctx context.Context, app *AppContext, dir string) error {
	builder, err := app.Builder(ctx)
	if err != nil {
		return err
	}

	css, err := renderStylesheet(app, builder)
	if err != nil {
		return err
	}
	palette, err := paletteColors(builder)
	if err != nil {
		return err
	}

	cssPath := filepath.Join(dir, stylesheetFile)
	if err := output.WriteFile(cssPath, []byte(css)); err != nil {
		return err
	}
	palettePath := filepath.Join(dir, paletteFile)
	if err := output.WriteJSON(palettePath, palette); err != nil {
		return err
	}

	app.Logger.WithFields(map[string]any{"stylesheet": cssPath, "palette": palettePath}).Info("outputs regenerated")
	return nil
}
