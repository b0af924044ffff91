package main

import (
	"encoding/json"
	"fmt"
	"regexp"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/tokenkit/internal/tokens"
)

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

var mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

type tableOptions struct {
	jsonOutput bool
}

func newTableCmd(app *AppContext) *cobra.Command {
	opts := &tableOptions{}

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the resolved flat token table of a theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTable(cmd, app, opts)
		},
	}

	cmd.Flags().String("theme", "", "Theme to render (default from settings)")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output the table as a JSON object")

	return cmd
}

func runTable(cmd *cobra.Command, app *AppContext, opts *tableOptions) error {
	builder, err := app.Builder(cmd.Context())
	if err != nil {
		return loadBuilderError("table", err)
	}

	theme := app.Theme(cmd, builder.Document())
	table, err := builder.Table(theme)
	if err != nil {
		return newCommandError("table", fmt.Sprintf("building theme %q", theme), err, "Run 'tokenkit validate' to find broken references.")
	}

	if opts.jsonOutput {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(table)
	}

	return renderTable(cmd, table, isTerminal(cmd.OutOrStdout()))
}

func renderTable(cmd *cobra.Command, table *tokens.Table, styled bool) error {
	out := cmd.OutOrStdout()
	if table.Len() == 0 {
		fmt.Fprintln(out, "No tokens defined.")
		return nil
	}

	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	// The last cell has no terminating tab, so plain output carries no padding.
	if styled {
		fmt.Fprintln(writer, "KEY\tVALUE\tSWATCH")
	} else {
		fmt.Fprintln(writer, "KEY\tVALUE")
	}

	for key, value := range table.All() {
		if styled {
			fmt.Fprintf(writer, "%s\t%s\t%s\n", key, value, swatch(value, styled))
			continue
		}
		fmt.Fprintf(writer, "%s\t%s\n", key, value)
	}

	if err := writer.Flush(); err != nil {
		return err
	}

	summary := fmt.Sprintf("%d tokens", table.Len())
	if styled {
		summary = mutedStyle.Render(summary)
	}
	fmt.Fprintln(out, summary)
	return nil
}

func swatch(value string, styled bool) string {
	if !styled || !hexColorPattern.MatchString(value) {
		return ""
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(value)).Render("    ")
}
