package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shaphero/digest-cli/internal/render"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a rendered digest file",
	Long: `Checks a digest file, or a bundle, against the record format: one
title per document, canonical section structure, well-formed finding and
reference lines, absolute URLs, valid UTF-8.

Use "-" to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	data, err := readInput(args[0])
	if err != nil {
		return err
	}

	// Structural pass over the markdown AST first, then the full parse
	// which enforces line formats and document invariants.
	if err := render.Lint(data); err != nil {
		return fmt.Errorf("invalid: %w", err)
	}
	docs, err := render.Parse(string(data))
	if err != nil {
		return fmt.Errorf("invalid: %w", err)
	}

	cmd.Printf("OK: %d valid digest(s)\n", len(docs))
	for i := range docs {
		cmd.Printf("  %s (%d findings, %d references)\n",
			docs[i].Title, len(docs[i].Findings), len(docs[i].References))
	}
	return nil
}
