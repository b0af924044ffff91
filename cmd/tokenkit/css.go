package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/tokenkit/internal/infrastructure/output"
	"github.com/alexisbeaulieu97/tokenkit/internal/tokens"
)

type cssOptions struct {
	all    bool
	output string
	check  bool
}

func newCSSCmd(app *AppContext) *cobra.Command {
	opts := &cssOptions{}

	cmd := &cobra.Command{
		Use:   "css",
		Short: "Render tokens as CSS custom properties",
		Long: "Render one theme as a list of custom property declarations, or with --all\n" +
			"a stylesheet holding a :root block and one selector block per theme.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCSS(cmd, app, opts)
		},
	}

	cmd.Flags().String("theme", "", "Theme to render (default from settings)")
	cmd.Flags().BoolVar(&opts.all, "all", false, "Render a stylesheet covering every theme")
	cmd.Flags().String("prefix", "", "Custom property prefix, e.g. ds- for --ds-color-amber-500")
	cmd.Flags().String("default-theme", "", "Theme rendered into :root with --all (default from settings)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write to a file instead of stdout")
	cmd.Flags().BoolVar(&opts.check, "check", false, "Fail with a diff when the --output file is out of date instead of writing it")

	return cmd
}

func runCSS(cmd *cobra.Command, app *AppContext, opts *cssOptions) error {
	builder, err := app.Builder(cmd.Context())
	if err != nil {
		return loadBuilderError("css", err)
	}

	var rendered string
	if opts.all {
		rendered, err = renderStylesheet(app, builder)
		if err != nil {
			return newCommandError("css", "rendering stylesheet", err, "Run 'tokenkit validate' to find broken references.")
		}
	} else {
		theme := app.Theme(cmd, builder.Document())
		table, err := builder.Table(theme)
		if err != nil {
			return newCommandError("css", fmt.Sprintf("building theme %q", theme), err, "Run 'tokenkit themes' to list available themes.")
		}
		rendered = tokens.CSSDeclarations(table, app.Settings.CSS.Prefix)
	}

	if opts.check {
		return checkOutput(cmd, "css", opts.output, []byte(rendered))
	}
	if err := output.Emit(cmd.OutOrStdout(), opts.output, []byte(rendered)); err != nil {
		return newCommandError("css", fmt.Sprintf("writing %s", opts.output), err, "Check that the output location is writable.")
	}
	if opts.output != "" {
		app.Logger.With("path", opts.output).Info("stylesheet written")
	}
	return nil
}

func renderStylesheet(app *AppContext, builder *tokens.Builder) (string, error) {
	return tokens.Stylesheet(builder, tokens.StylesheetOptions{
		Prefix:         app.Settings.CSS.Prefix,
		DefaultTheme:   app.DefaultTheme(builder.Document()),
		SelectorFormat: app.Settings.CSS.Selector,
	})
}

type paletteOptions struct {
	output string
	check  bool
}

func newPaletteCmd(app *AppContext) *cobra.Command {
	opts := &paletteOptions{}

	cmd := &cobra.Command{
		Use:   "palette",
		Short: "Print the global colour tokens as nested JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPalette(cmd, app, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write to a file instead of stdout")
	cmd.Flags().BoolVar(&opts.check, "check", false, "Fail with a diff when the --output file is out of date instead of writing it")

	return cmd
}

func runPalette(cmd *cobra.Command, app *AppContext, opts *paletteOptions) error {
	builder, err := app.Builder(cmd.Context())
	if err != nil {
		return loadBuilderError("palette", err)
	}

	data, err := renderPalette(builder)
	if err != nil {
		return newCommandError("palette", "building global table", err, "Run 'tokenkit validate' to find broken references.")
	}

	if opts.check {
		return checkOutput(cmd, "palette", opts.output, data)
	}
	if err := output.Emit(cmd.OutOrStdout(), opts.output, data); err != nil {
		return newCommandError("palette", fmt.Sprintf("writing %s", opts.output), err, "Check that the output location is writable.")
	}
	return nil
}

func renderPalette(builder *tokens.Builder) ([]byte, error) {
	colors, err := paletteColors(builder)
	if err != nil {
		return nil, err
	}
	return output.EncodeJSON(colors)
}

// paletteColors nests the resolved global colour tokens.
func paletteColors(builder *tokens.Builder) (map[string]any, error) {
	table, err := builder.Table(tokens.GlobalTree)
	if err != nil {
		return nil, err
	}
	return tokens.NestedColors(table), nil
}
