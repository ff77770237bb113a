package convert

import (
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
)

// Confluence wraps page bodies in layout divs that carry no semantic
// meaning; they are unwrapped before conversion so the Markdown does not
// inherit their structure.
const layoutWrappers = "div.contentLayout2, div.columnLayout, div.cell, div.innerCell"

// Converter turns Confluence HTML bodies into Markdown. Conversion is a
// pure transformation: unknown constructs are dropped or passed through
// as text, never an error.
type Converter struct {
	md *md.Converter
}

func NewConverter() *Converter {
	return &Converter{md: md.NewConverter("", true, nil)}
}

// Convert returns the Markdown rendering of html. Empty or whitespace-only
// input yields the empty string.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}

	cleaned, err := unwrapLayout(html)
	if err != nil {
		// Degrade rather than fail: convert the raw input.
		cleaned = html
	}

	markdown, err := c.md.ConvertString(cleaned)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to Markdown: %w", err)
	}
	return tidy(markdown), nil
}

func unwrapLayout(rawHTML string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find(layoutWrappers).Each(func(_ int, s *goquery.Selection) {
		s.ReplaceWithSelection(s.Contents())
	})

	return doc.Find("body").Html()
}

// tidy strips trailing whitespace per line so reruns produce byte-identical
// files regardless of how the converter pads table cells and breaks.
func tidy(markdown string) string {
	lines := strings.Split(markdown, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
