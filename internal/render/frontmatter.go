package render

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/shaphero/digest-cli/internal/core/domain"
)

// frontMatter is the YAML block prepended when exporting a digest for a
// static-site build (Astro content collection).
type frontMatter struct {
	Title       string    `yaml:"title"`
	Description string    `yaml:"description,omitempty"`
	ReadingTime int       `yaml:"readingTime"`
	Sources     int       `yaml:"sources"`
	PubDate     time.Time `yaml:"pubDate"`
	Tags        []string  `yaml:"tags,omitempty"`
}

// ExportAstro renders the document with YAML front matter for a site
// build. The body below the front matter is the canonical layout minus
// the H1, which the site template supplies from the title field.
func ExportAstro(doc *domain.DigestDocument) (string, error) {
	body, err := Render(doc)
	if err != nil {
		return "", err
	}

	fm := frontMatter{
		Title:       doc.Title,
		Description: doc.Subtitle,
		ReadingTime: doc.ReadingTimeMinutes,
		Sources:     doc.SourceCount,
		PubDate:     doc.CreatedAt,
	}
	if fm.PubDate.IsZero() {
		fm.PubDate = time.Now()
	}

	data, err := yaml.Marshal(&fm)
	if err != nil {
		return "", fmt.Errorf("marshal front matter: %w", err)
	}

	// Drop the H1 line; the page template renders the title.
	lines := strings.SplitN(body, "\n", 2)
	content := body
	if len(lines) == 2 && strings.HasPrefix(lines[0], titlePrefix) {
		content = strings.TrimLeft(lines[1], "\n")
	}

	return "---\n" + string(data) + "---\n\n" + content, nil
}
