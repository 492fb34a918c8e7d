package outline

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
	"github.com/yosssi/gohtml"
)

// ReducedFormat selects how a sanitized document is written back out.
type ReducedFormat string

const (
	ReducedHTML     ReducedFormat = "html"
	ReducedText     ReducedFormat = "text"
	ReducedMarkdown ReducedFormat = "markdown"
)

// ParseReducedFormat resolves a reduced document format name.
func ParseReducedFormat(name string) (ReducedFormat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "html", "":
		return ReducedHTML, nil
	case "text", "txt":
		return ReducedText, nil
	case "markdown", "md":
		return ReducedMarkdown, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Reduced is a sanitized document rendered in one of the reduced formats.
type Reduced struct {
	Content string
	Format  ReducedFormat
	Stats   CleanStats
}

var blankLinesRegex = regexp.MustCompile(`\n{3,}`)

// Reduce sanitizes the document read from r and returns what remains,
// which is the tree the matcher sees.
func (e *Extractor) Reduce(r io.Reader, format ReducedFormat) (*Reduced, error) {
	doc, err := e.parse(r)
	if err != nil {
		return nil, err
	}
	_, stats := e.sanitizer.Sanitize(doc)

	var content string
	switch format {
	case ReducedHTML:
		content, err = reducedHTML(doc)
	case ReducedText:
		content = reducedText(doc, e.config)
	case ReducedMarkdown:
		content, err = reducedMarkdown(doc)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}

	return &Reduced{Content: content, Format: format, Stats: stats}, nil
}

// bodyHTML returns the inner HTML of body, falling back to the whole tree.
func bodyHTML(doc *goquery.Document) (string, error) {
	html, err := doc.Find("body").Html()
	if err != nil || html == "" {
		html, err = doc.Html()
		if err != nil {
			return "", err
		}
	}
	return html, nil
}

func reducedHTML(doc *goquery.Document) (string, error) {
	html, err := bodyHTML(doc)
	if err != nil {
		return "", err
	}
	return gohtml.Format(html), nil
}

// reducedText writes one line per innermost block.
func reducedText(doc *goquery.Document, config *Config) string {
	var lines []string
	doc.Find(blockSelector).Each(func(_ int, sel *goquery.Selection) {
		if sel.Find(blockSelector).Length() > 0 {
			return
		}
		if text := config.blockText(sel.Text()); text != "" {
			lines = append(lines, text)
		}
	})
	return strings.Join(lines, "\n")
}

func reducedMarkdown(doc *goquery.Document) (string, error) {
	html, err := bodyHTML(doc)
	if err != nil {
		return "", err
	}
	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return strings.TrimSpace(blankLinesRegex.ReplaceAllString(markdown, "\n\n")), nil
}
