package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/tokenkit/internal/tokens"
)

type validateOptions struct {
	jsonOutput bool
}

func newValidateCmd(app *AppContext) *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the token document for cycles and dangling references",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, app, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output the report as JSON")

	return cmd
}

func runValidate(cmd *cobra.Command, app *AppContext, opts *validateOptions) error {
	path, err := app.TokensPath()
	if err != nil {
		return newCommandError("validate", "locating token document", err, "Pass the document with --tokens or set tokens in the settings file.")
	}

	report, err := app.Loader.Validate(cmd.Context(), path)
	if err != nil {
		return loadBuilderError("validate", err)
	}

	out := cmd.OutOrStdout()
	if opts.jsonOutput {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(report); err != nil {
			return err
		}
	} else {
		renderReport(out, path, report)
	}

	if report.HasErrors() {
		return newCommandError("validate", path,
			fmt.Errorf("%d cycle(s), %d dangling reference(s)", len(report.Cycles), len(report.Dangling)),
			"Fix the listed references; dangling references are emitted verbatim and cycles abort table builds.")
	}
	return nil
}

func renderReport(out io.Writer, path string, report tokens.Report) {
	for _, cycle := range report.Cycles {
		fmt.Fprintf(out, "cycle: %s\n", strings.Join(cycle, " -> "))
	}
	for _, issue := range report.Dangling {
		fmt.Fprintf(out, "dangling: %s %s -> %s\n", issue.Tree, issue.Token, issue.Reference)
	}
	for _, issue := range report.Shadowed {
		fmt.Fprintf(out, "warning: %s %s -> %s resolves against global, not the %s tree\n", issue.Tree, issue.Token, issue.Reference, issue.Tree)
	}

	status := "ok"
	if report.HasErrors() {
		status = "invalid"
	}
	fmt.Fprintf(out, "%s: %s (%d tokens, %d cycles, %d dangling, %d warnings)\n",
		path, status, report.Tokens, len(report.Cycles), len(report.Dangling), len(report.Shadowed))
}
