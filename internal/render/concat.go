package render

import (
	"strings"

	"github.com/shaphero/digest-cli/internal/core/domain"
)

// Concatenate renders the documents in order and joins them with the
// document separator on its own line. No deduplication is performed:
// repeated references across documents are preserved verbatim.
// N documents produce N-1 separators, so Split recovers the same count.
func Concatenate(docs []domain.DigestDocument) (string, error) {
	if len(docs) == 0 {
		return "", nil
	}

	parts := make([]string, 0, len(docs))
	for i := range docs {
		text, err := Render(&docs[i])
		if err != nil {
			return "", err
		}
		parts = append(parts, text)
	}

	return strings.Join(parts, "\n"+domain.DocumentSeparator+"\n\n"), nil
}

// Split divides concatenated output back into per-document text.
// The separator is a boundary marker only; it never appears in the
// returned chunks.
func Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	raw := strings.Split(text, domain.DocumentSeparator)
	chunks := make([]string, 0, len(raw))
	for _, c := range raw {
		chunks = append(chunks, strings.TrimSpace(c)+"\n")
	}
	return chunks
}
