package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shaphero/digest-cli/internal/render"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export [id]",
	Short: "Export a stored digest for publishing",
	Long: `Exports a stored digest as an Astro content file: YAML front matter
carrying the title, description, reading time and source count, followed
by the document body without its H1 line.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "write to a file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	doc, err := libraryService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("getting digest: %w", err)
	}

	out, err := render.ExportAstro(doc)
	if err != nil {
		return fmt.Errorf("exporting digest: %w", err)
	}
	return writeOutput(cmd, out, exportOut)
}
