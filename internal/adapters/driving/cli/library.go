package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shaphero/digest-cli/internal/core/domain"
)

var (
	listJSON  bool
	renderOut string
	bundleOut string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored digests",
	RunE:  runList,
}

var getCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show metadata for a stored digest",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a stored digest",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

var renderCmd = &cobra.Command{
	Use:   "render [id]",
	Short: "Print the canonical markdown for a stored digest",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

var bundleCmd = &cobra.Command{
	Use:   "bundle [id...]",
	Short: "Concatenate stored digests into one file",
	Long: `Renders the named digests in order, joined by the document separator
token. The bundle can be split back into its documents with import.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBundle,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "write markdown to a file instead of stdout")
	bundleCmd.Flags().StringVarP(&bundleOut, "out", "o", "", "write the bundle to a file instead of stdout")
	rootCmd.AddCommand(listCmd, getCmd, deleteCmd, renderCmd, bundleCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	docs, err := libraryService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing digests: %w", err)
	}

	if listJSON {
		return outputListJSON(cmd, docs)
	}

	if len(docs) == 0 {
		cmd.Println("No digests stored.")
		return nil
	}

	for i := range docs {
		d := &docs[i]
		cmd.Printf("%s  %s  (%d min, %d sources)\n",
			d.CreatedAt.Format("2006-01-02"), d.Title, d.ReadingTimeMinutes, d.SourceCount)
		cmd.Printf("    id: %s\n", d.ID)
	}
	return nil
}

// listEntry is the JSON projection of a stored digest.
type listEntry struct {
	ID                 string `json:"id"`
	Topic              string `json:"topic,omitempty"`
	Title              string `json:"title"`
	Subtitle           string `json:"subtitle,omitempty"`
	ReadingTimeMinutes int    `json:"reading_time_minutes"`
	SourceCount        int    `json:"source_count"`
	Sections           int    `json:"sections"`
	Findings           int    `json:"findings"`
	References         int    `json:"references"`
	CreatedAt          string `json:"created_at"`
}

func outputListJSON(cmd *cobra.Command, docs []domain.DigestDocument) error {
	entries := make([]listEntry, 0, len(docs))
	for i := range docs {
		entries = append(entries, newListEntry(&docs[i]))
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling digests: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func newListEntry(d *domain.DigestDocument) listEntry {
	return listEntry{
		ID:                 d.ID,
		Topic:              d.Topic,
		Title:              d.Title,
		Subtitle:           d.Subtitle,
		ReadingTimeMinutes: d.ReadingTimeMinutes,
		SourceCount:        d.SourceCount,
		Sections:           len(d.Sections),
		Findings:           len(d.Findings),
		References:         len(d.References),
		CreatedAt:          d.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func runGet(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	doc, err := libraryService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("getting digest: %w", err)
	}

	cmd.Printf("Title:        %s\n", doc.Title)
	if doc.Subtitle != "" {
		cmd.Printf("Subtitle:     %s\n", doc.Subtitle)
	}
	if doc.Topic != "" {
		cmd.Printf("Topic:        %s\n", doc.Topic)
	}
	cmd.Printf("Reading time: %d min\n", doc.ReadingTimeMinutes)
	cmd.Printf("Sources:      %d\n", doc.SourceCount)
	cmd.Printf("Sections:     %d\n", len(doc.Sections))
	cmd.Printf("Findings:     %d\n", len(doc.Findings))
	cmd.Printf("References:   %d\n", len(doc.References))
	cmd.Printf("Composed:     %s\n", doc.CreatedAt.Format("2006-01-02 15:04"))
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	if err := libraryService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("deleting digest: %w", err)
	}
	cmd.Printf("Deleted %s\n", args[0])
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	md, err := libraryService.Render(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("rendering digest: %w", err)
	}
	return writeOutput(cmd, md, renderOut)
}

func runBundle(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	bundle, err := libraryService.Bundle(cmd.Context(), args)
	if err != nil {
		return fmt.Errorf("bundling digests: %w", err)
	}
	return writeOutput(cmd, bundle, bundleOut)
}
