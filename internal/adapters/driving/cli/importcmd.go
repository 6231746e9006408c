package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import rendered digests from a markdown file",
	Long: `Parses a rendered digest file, or a bundle of several joined by the
document separator, and stores every document it contains. Parsing is
atomic: one malformed document rejects the whole file.

Use "-" to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	data, err := readInput(args[0])
	if err != nil {
		return err
	}

	docs, err := libraryService.Import(cmd.Context(), string(data))
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	cmd.Printf("Imported %d digest(s):\n", len(docs))
	for i := range docs {
		cmd.Printf("  %s  %s\n", docs[i].ID, docs[i].Title)
	}
	return nil
}
