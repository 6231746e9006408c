package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/shaphero/digest-cli/internal/core/domain"
	"github.com/shaphero/digest-cli/internal/render"
)

// writeRendered renders doc and writes it to outPath, or stdout when
// outPath is empty.
func writeRendered(cmd *cobra.Command, doc *domain.DigestDocument, outPath string) error {
	md, err := render.Render(doc)
	if err != nil {
		return fmt.Errorf("rendering digest: %w", err)
	}
	return writeOutput(cmd, md, outPath)
}

// writeOutput writes content to outPath, or stdout when outPath is empty.
func writeOutput(cmd *cobra.Command, content, outPath string) error {
	if outPath == "" {
		cmd.Print(content)
		return nil
	}
	if err := os.WriteFile(outPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	cmd.PrintErrf("Wrote %s\n", outPath)
	return nil
}

// readInput reads from path, or stdin when path is "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}
