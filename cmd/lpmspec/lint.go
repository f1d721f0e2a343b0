package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dlovans/lpmspec/pkg/lint"
)

var lintFile string

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Statically check an LPM schema",
	RunE:  runLint,
}

func init() {
	lintCmd.Flags().StringVarP(&lintFile, "file", "f", "", "Schema file to lint (default stdin)")
}

func runLint(cmd *cobra.Command, args []string) error {
	var input []byte
	var err error

	if lintFile != "" {
		input, err = os.ReadFile(lintFile)
	} else {
		input, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	result, err := lint.Run(string(input))
	if err != nil {
		return fmt.Errorf("lint: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(result.Issues) == 0 {
		fmt.Fprintln(out, "✓ No issues found")
		return nil
	}

	for _, issue := range result.Issues {
		icon := "⚠"
		if issue.Severity == "error" {
			icon = "✗"
		}
		location := fmt.Sprintf(" [entry: %d]", issue.Entry)
		if issue.Code != "" {
			location += fmt.Sprintf(" [code: %s]", issue.Code)
		}
		if issue.Field >= 0 {
			location += fmt.Sprintf(" [field: %d]", issue.Field)
		}
		fmt.Fprintf(out, "%s %s%s: %s\n", icon, issue.Severity, location, issue.Message)
	}

	if !result.Valid {
		return fmt.Errorf("schema has errors")
	}
	return nil
}
