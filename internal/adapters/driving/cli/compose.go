package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/shaphero/digest-cli/internal/core/domain"
)

var (
	composeBriefPath   string
	composeAngle       string
	composeAudience    string
	composeTone        string
	composeSources     []string
	composeRedditQuery string
	composeMaxFindings int
	composeSave        bool
	composeOut         string
)

var composeCmd = &cobra.Command{
	Use:   "compose [topic]",
	Short: "Compose a digest from a topic or a brief file",
	Long: `Fetches the named sources, extracts statistic-anchored findings, and
prints the composed digest as markdown.

The brief can be given inline via flags, or loaded from a TOML file:

  topic = "enterprise AI adoption"
  angle = "what pilot programs reveal"
  audience = "engineering leaders"
  tone = "direct"
  sources = ["https://example.com/state-of-ai"]
  reddit_query = "enterprise AI adoption"
  max_findings = 8

Flags override brief file fields. Use --save to persist the digest.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompose,
}

func init() {
	composeCmd.Flags().StringVarP(&composeBriefPath, "brief", "b", "", "path to a TOML brief file")
	composeCmd.Flags().StringVar(&composeAngle, "angle", "", "framing, rendered as the subtitle")
	composeCmd.Flags().StringVar(&composeAudience, "audience", "", "who the digest is written for")
	composeCmd.Flags().StringVar(&composeTone, "tone", "", "requested register, e.g. analytical")
	composeCmd.Flags().StringArrayVarP(&composeSources, "source", "s", nil, "article URL to cite (repeatable)")
	composeCmd.Flags().StringVar(&composeRedditQuery, "reddit", "", "reddit search query to pull threads from")
	composeCmd.Flags().IntVar(&composeMaxFindings, "max-findings", 0, "cap on extracted findings (0 = default)")
	composeCmd.Flags().BoolVar(&composeSave, "save", false, "persist the composed digest")
	composeCmd.Flags().StringVarP(&composeOut, "out", "o", "", "write markdown to a file instead of stdout")
	rootCmd.AddCommand(composeCmd)
}

// briefFile is the TOML shape of a brief on disk.
type briefFile struct {
	Topic       string   `toml:"topic"`
	Angle       string   `toml:"angle"`
	Audience    string   `toml:"audience"`
	Tone        string   `toml:"tone"`
	Sources     []string `toml:"sources"`
	RedditQuery string   `toml:"reddit_query"`
	MaxFindings int      `toml:"max_findings"`
}

// loadBrief builds the effective brief from the optional file plus flags.
func loadBrief(topicArg string) (domain.Brief, error) {
	var brief domain.Brief

	if composeBriefPath != "" {
		data, err := os.ReadFile(composeBriefPath)
		if err != nil {
			return brief, fmt.Errorf("reading brief: %w", err)
		}
		var bf briefFile
		if err := toml.Unmarshal(data, &bf); err != nil {
			return brief, fmt.Errorf("parsing brief: %w", err)
		}
		brief = domain.Brief{
			Topic:       bf.Topic,
			Angle:       bf.Angle,
			Audience:    bf.Audience,
			Tone:        bf.Tone,
			Sources:     bf.Sources,
			RedditQuery: bf.RedditQuery,
			MaxFindings: bf.MaxFindings,
		}
	}

	if topicArg != "" {
		brief.Topic = topicArg
	}
	if composeAngle != "" {
		brief.Angle = composeAngle
	}
	if composeAudience != "" {
		brief.Audience = composeAudience
	}
	if composeTone != "" {
		brief.Tone = composeTone
	}
	if len(composeSources) > 0 {
		brief.Sources = append(brief.Sources, composeSources...)
	}
	if composeRedditQuery != "" {
		brief.RedditQuery = composeRedditQuery
	}
	if composeMaxFindings > 0 {
		brief.MaxFindings = composeMaxFindings
	}

	return brief, nil
}

func runCompose(cmd *cobra.Command, args []string) error {
	if composeService == nil {
		return errors.New("compose service not configured")
	}

	topic := ""
	if len(args) == 1 {
		topic = args[0]
	}

	brief, err := loadBrief(topic)
	if err != nil {
		return err
	}

	doc, err := composeService.Compose(cmd.Context(), brief)
	if err != nil {
		return fmt.Errorf("compose failed: %w", err)
	}

	if composeSave {
		if libraryService == nil {
			return errors.New("library service not configured")
		}
		if err := libraryService.Save(cmd.Context(), doc); err != nil {
			return fmt.Errorf("saving digest: %w", err)
		}
		cmd.PrintErrf("Saved digest %s\n", doc.ID)
	}

	return writeRendered(cmd, doc, composeOut)
}
