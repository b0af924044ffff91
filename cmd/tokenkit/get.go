package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/tokenkit/internal/tokens"
)

func newGetCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Print the resolved value of one token",
		Long: "Print the resolved value of one token in the selected theme.\n" +
			"Keys may be written flat (color-amber-500) or dotted (color.amber.500).",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, app, args[0])
		},
	}

	cmd.Flags().String("theme", "", "Theme to read from (default from settings)")

	return cmd
}

func runGet(cmd *cobra.Command, app *AppContext, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return newCommandError("get", "validating key", errors.New("key cannot be empty"), "Pass a token key such as color-amber-500.")
	}

	builder, err := app.Builder(cmd.Context())
	if err != nil {
		return loadBuilderError("get", err)
	}

	theme := app.Theme(cmd, builder.Document())
	flat := tokens.FlatKey(key)
	value, ok, err := builder.Lookup(flat, theme)
	if err != nil {
		return newCommandError("get", fmt.Sprintf("building theme %q", theme), err, "Run 'tokenkit themes' to list available themes.")
	}
	if !ok {
		return newCommandError("get", fmt.Sprintf("looking up %q in theme %q", flat, theme), errors.New("token not found"), "Run 'tokenkit table' to list available keys.")
	}

	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}

func newResolveCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <value>",
		Short: "Resolve a literal or {reference} against the document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, app, args[0])
		},
	}

	cmd.Flags().String("theme", "", "Theme tree used as the first lookup scope (default from settings)")

	return cmd
}

func runResolve(cmd *cobra.Command, app *AppContext, value string) error {
	builder, err := app.Builder(cmd.Context())
	if err != nil {
		return loadBuilderError("resolve", err)
	}

	theme := app.Theme(cmd, builder.Document())
	resolved, err := builder.ResolveIn(value, theme)
	if err != nil {
		return newCommandError("resolve", fmt.Sprintf("resolving %q in theme %q", value, theme), err, "Run 'tokenkit validate' to find broken references.")
	}

	fmt.Fprintln(cmd.OutOrStdout(), resolved)
	return nil
}
