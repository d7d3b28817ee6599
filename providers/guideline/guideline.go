package guideline

import (
	"errors"
	"fmt"
	"io"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrEmptyDocument is returned by [FromHTML] when the document has no text.
var ErrEmptyDocument = errors.New("guideline: document has no text content")

// markupAtoms are the elements whose presence marks a text as HTML rather
// than prose that happens to contain an angle bracket.
var markupAtoms = map[atom.Atom]struct{}{
	atom.Html: {}, atom.Body: {}, atom.Head: {}, atom.Div: {}, atom.P: {},
	atom.Br: {}, atom.Span: {}, atom.Ul: {}, atom.Ol: {}, atom.Li: {},
	atom.Table: {}, atom.Tr: {}, atom.Td: {}, atom.Th: {}, atom.Strong: {},
	atom.B: {}, atom.Em: {}, atom.A: {}, atom.Img: {}, atom.Section: {},
	atom.Article: {}, atom.H1: {}, atom.H2: {}, atom.H3: {}, atom.H4: {},
}

// FromHTML converts an HTML document or fragment to Markdown.
func FromHTML(document string) (string, error) {
	markdown, err := htmltomarkdown.ConvertString(document)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to Markdown: %w", err)
	}
	markdown = strings.TrimSpace(markdown)
	if markdown == "" {
		return "", ErrEmptyDocument
	}
	return markdown, nil
}

// Prepare returns text ready for analysis. HTML input is converted to
// Markdown; if conversion fails the visible text nodes are used instead.
// Anything else is returned unchanged.
func Prepare(text string) string {
	if !IsHTML(text) {
		return text
	}
	if markdown, err := FromHTML(text); err == nil {
		return markdown
	}
	return visibleText(text)
}

// IsHTML reports whether text contains at least one common HTML element.
func IsHTML(text string) bool {
	if !strings.Contains(text, "<") {
		return false
	}
	z := html.NewTokenizer(strings.NewReader(text))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return false
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if _, ok := markupAtoms[atom.Lookup(name)]; ok {
				return true
			}
		}
	}
}

// visibleText joins the text nodes of document, skipping script and style
// content.
func visibleText(document string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(document))
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			if z.Err() != io.EOF {
				return strings.TrimSpace(document)
			}
			return strings.TrimSpace(b.String())
		case html.StartTagToken:
			name, _ := z.TagName()
			if a := atom.Lookup(name); a == atom.Script || a == atom.Style {
				skip++
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if a := atom.Lookup(name); (a == atom.Script || a == atom.Style) && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip > 0 {
				continue
			}
			if t := strings.TrimSpace(string(z.Text())); t != "" {
				if b.Len() > 0 {
					b.WriteByte('\n')
				}
				b.WriteString(t)
			}
		}
	}
}
