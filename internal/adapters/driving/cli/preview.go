package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var previewWidth int

var previewCmd = &cobra.Command{
	Use:   "preview [id]",
	Short: "Render a stored digest styled for the terminal",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreview,
}

func init() {
	previewCmd.Flags().IntVar(&previewWidth, "width", 100, "wrap width")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	md, err := libraryService.Render(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("rendering digest: %w", err)
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(previewWidth),
	)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}

	styled, err := renderer.Render(md)
	if err != nil {
		return fmt.Errorf("styling digest: %w", err)
	}
	cmd.Print(styled)
	return nil
}
