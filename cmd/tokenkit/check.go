package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/tokenkit/pkg/diff"
)

var errStaleOutput = errors.New("generated output differs from the file on disk")

// checkOutput compares generated with the file at path and prints a unified
// diff when they differ. A missing file counts as empty.
func checkOutput(cmd *cobra.Command, operation, path string, generated []byte) error {
	if path == "" || path == "-" {
		return newCommandError(operation, "validating flags", errors.New("--check needs --output"), "Pass the committed file to compare against with -o.")
	}

	current, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return newCommandError(operation, fmt.Sprintf("reading %s", path), err, "Check that the file is readable.")
	}

	patch := diff.Unified(current, generated, path, "generated")
	if patch == "" {
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), patch)
	return newCommandError(operation, fmt.Sprintf("checking %s", path), errStaleOutput, fmt.Sprintf("Run 'tokenkit %s -o %s' without --check to regenerate it.", operation, path))
}
