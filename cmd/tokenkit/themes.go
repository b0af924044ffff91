package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/tokenkit/internal/tokens"
)

type themesOptions struct {
	jsonOutput bool
}

type themeSummary struct {
	Name      string   `json:"name"`
	Overrides int      `json:"overrides"`
	Sets      []string `json:"sets,omitempty"`
}

func newThemesCmd(app *AppContext) *cobra.Command {
	opts := &themesOptions{}

	cmd := &cobra.Command{
		Use:   "themes",
		Short: "List the themes defined by the token document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runThemes(cmd, app, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output themes as JSON")

	return cmd
}

func runThemes(cmd *cobra.Command, app *AppContext, opts *themesOptions) error {
	builder, err := app.Builder(cmd.Context())
	if err != nil {
		return loadBuilderError("themes", err)
	}

	summaries := summarizeThemes(builder.Document())

	if opts.jsonOutput {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(summaries)
	}

	out := cmd.OutOrStdout()
	if len(summaries) == 0 {
		fmt.Fprintln(out, "No themes defined. Only global tokens are available.")
		return nil
	}

	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "THEME\tOVERRIDES\tTOKEN SETS")
	for _, s := range summaries {
		sets := "-"
		if len(s.Sets) > 0 {
			sets = strings.Join(s.Sets, ", ")
		}
		fmt.Fprintf(writer, "%s\t%d\t%s\n", s.Name, s.Overrides, sets)
	}
	return writer.Flush()
}

func summarizeThemes(doc *tokens.Document) []themeSummary {
	sets := make(map[string][]string)
	for _, set := range doc.ThemeSets {
		for name, state := range set.SelectedTokenSets {
			if state == "disabled" {
				continue
			}
			sets[set.Name] = append(sets[set.Name], name)
		}
	}

	summaries := make([]themeSummary, 0, len(doc.ThemeNames()))
	for _, name := range doc.ThemeNames() {
		tree, _ := doc.Theme(name)
		selected := sets[name]
		sort.Strings(selected)
		summaries = append(summaries, themeSummary{
			Name:      name,
			Overrides: tree.CountLeaves(),
			Sets:      selected,
		})
	}
	return summaries
}
