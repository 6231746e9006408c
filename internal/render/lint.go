package render

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/shaphero/digest-cli/internal/core/domain"
)

// Lint structurally checks rendered digest markdown without fully
// reconstructing documents. It walks the goldmark AST of each document
// chunk and reports the first violation:
//
//   - the chunk must be valid UTF-8
//   - exactly one level-1 heading (the title)
//   - at least one level-2 heading (a section)
//   - every link destination must be an absolute URI
//
// Lint is what `digest validate` runs before attempting a full Parse,
// so hand-edited files fail with a structural message rather than a
// layout one.
func Lint(input []byte) error {
	if !utf8.Valid(input) {
		return fmt.Errorf("%w: input is not valid UTF-8", domain.ErrInvalidEncoding)
	}

	for i, chunk := range Split(string(input)) {
		if err := lintChunk([]byte(chunk)); err != nil {
			return fmt.Errorf("document %d: %w", i+1, err)
		}
	}
	return nil
}

func lintChunk(src []byte) error {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(src))

	var titles, sections int
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			switch node.Level {
			case 1:
				titles++
			case 2:
				sections++
			}
		case *ast.Link:
			dest := string(node.Destination)
			u, err := url.Parse(dest)
			if err != nil || !u.IsAbs() || u.Host == "" {
				return ast.WalkStop, fmt.Errorf("%w: link %q is not an absolute URI", domain.ErrMalformedReference, dest)
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return err
	}

	if titles == 0 {
		return fmt.Errorf("%w: missing title heading", domain.ErrInvalidDocument)
	}
	if titles > 1 {
		return fmt.Errorf("%w: %d title headings, expected one", domain.ErrInvalidDocument, titles)
	}
	if sections == 0 {
		return fmt.Errorf("%w: no sections", domain.ErrInvalidDocument)
	}
	if strings.Contains(string(src), domain.DocumentSeparator) {
		return fmt.Errorf("%w: separator token inside document", domain.ErrInvalidDocument)
	}
	return nil
}
