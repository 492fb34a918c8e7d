package outline

import (
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

const (
	// nonContentSelector matches rendering-only nodes that carry no
	// outline text and have no counter of their own.
	nonContentSelector = "head, meta, link, svg, canvas"

	// proseSelector matches the blocks inspected for captions and prose.
	proseSelector = "p, div"
)

// Sanitizer strips everything that can never be a heading from a parsed
// document. It holds no per-run state and may be reused.
type Sanitizer struct {
	config   *Config
	captions CaptionMatcher
}

// NewSanitizer creates a Sanitizer. If config is nil, DefaultConfig() is used.
func NewSanitizer(config *Config) *Sanitizer {
	if config == nil {
		config = DefaultConfig()
	}
	return &Sanitizer{
		config:   config,
		captions: NewCaptionMatcher(config.CaptionLabels),
	}
}

// Sanitize detaches tables, images, scripts/styles and rendering-only nodes
// from doc, then removes caption paragraphs and paragraphs longer than
// MaxBlockRunes. The document is modified in place and returned together
// with the removal counters of this run.
func (s *Sanitizer) Sanitize(doc *goquery.Document) (*goquery.Document, CleanStats) {
	var stats CleanStats

	// Order matters: tables go first so no cell text reaches the later steps.
	stats.TablesRemoved = removeElements(doc, "table")
	stats.ImagesRemoved = removeElements(doc, "img")
	stats.ScriptsRemoved = removeElements(doc, "script, style")
	removeElements(doc, nonContentSelector)

	s.removeNoiseBlocks(doc, &stats)

	return doc, stats
}

// removeNoiseBlocks removes caption and long prose paragraphs.
func (s *Sanitizer) removeNoiseBlocks(doc *goquery.Document, stats *CleanStats) {
	doc.Find(proseSelector).Each(func(_ int, sel *goquery.Selection) {
		if detached(sel.Nodes[0]) {
			return
		}

		text := s.config.blockText(sel.Text())
		switch {
		case s.captions.Match(text):
			stats.CaptionsRemoved++
			sel.Remove()
		case runeLen(text) > s.config.MaxBlockRunes:
			stats.LongParagraphsRemoved++
			sel.Remove()
		}
	})
}

// removeElements detaches every element matching selector and returns how
// many subtrees were removed. Matches inside an already removed subtree are
// not counted.
func removeElements(doc *goquery.Document, selector string) int {
	removed := 0
	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		if detached(sel.Nodes[0]) {
			return
		}
		sel.Remove()
		removed++
	})
	return removed
}

// detached reports whether n is no longer reachable from its document root.
func detached(n *html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p.Type == html.DocumentNode {
			return false
		}
	}
	return true
}

// blockText returns the trimmed text the heuristics and the grammar see.
func (c *Config) blockText(raw string) string {
	text := trimText(raw)
	if c.NormalizeWidth {
		text = trimText(norm.NFKC.String(text))
	}
	return text
}
