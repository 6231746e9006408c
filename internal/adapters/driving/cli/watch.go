package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/shaphero/digest-cli/internal/core/domain"
	"github.com/shaphero/digest-cli/internal/logger"
)

// watchSettle is how long a brief file must stay quiet before it is
// composed, so editors that write in several syscalls trigger one run.
const watchSettle = 500 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Watch a directory of brief files and compose on change",
	Long: `Watches a directory for TOML brief files. Whenever a brief is created
or modified, it is composed, saved to the library, and the rendered
markdown is written next to the brief with an .md extension.

Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if composeService == nil || libraryService == nil {
		return errors.New("compose service not configured")
	}

	dir := args[0]
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("watch dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	cmd.PrintErrf("Watching %s for brief files (ctrl-c to stop)\n", dir)

	// Pending briefs settle before composing, keyed by path.
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(watchSettle)
	defer ticker.Stop()

	for {
		select {
		case <-cmd.Context().Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			if strings.ToLower(filepath.Ext(event.Name)) != ".toml" {
				continue
			}
			pending[event.Name] = time.Now()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher: %v", err)

		case now := <-ticker.C:
			for path, touched := range pending {
				if now.Sub(touched) < watchSettle {
					continue
				}
				delete(pending, path)
				if err := composeBriefFile(cmd, path); err != nil {
					cmd.PrintErrf("compose %s: %v\n", filepath.Base(path), err)
				}
			}
		}
	}
}

// composeBriefFile composes one brief file, saves the digest, and writes
// the rendered markdown next to the brief.
func composeBriefFile(cmd *cobra.Command, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading brief: %w", err)
	}

	var bf briefFile
	if err := toml.Unmarshal(data, &bf); err != nil {
		return fmt.Errorf("parsing brief: %w", err)
	}

	doc, err := composeService.Compose(cmd.Context(), domain.Brief{
		Topic:       bf.Topic,
		Angle:       bf.Angle,
		Audience:    bf.Audience,
		Tone:        bf.Tone,
		Sources:     bf.Sources,
		RedditQuery: bf.RedditQuery,
		MaxFindings: bf.MaxFindings,
	})
	if err != nil {
		return err
	}

	if err := libraryService.Save(cmd.Context(), doc); err != nil {
		return fmt.Errorf("saving digest: %w", err)
	}

	outPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".md"
	if err := writeRendered(cmd, doc, outPath); err != nil {
		return err
	}
	cmd.PrintErrf("Composed %s -> %s (digest %s)\n", filepath.Base(path), filepath.Base(outPath), doc.ID)
	return nil
}
