package outline

import (
	"iter"

	"github.com/PuerkitoBio/goquery"
)

// blockSelector matches the block-level nodes considered as heading text.
const blockSelector = "p, div, h1, h2, h3, h4, h5, h6"

// Block is the trimmed text of one block-level node and the node's tag.
type Block struct {
	Text string
	Tag  string
}

// Candidate is a block that satisfied the heading grammar.
type Candidate struct {
	Number   string
	Title    string
	Level    int
	FullText string
}

// Matcher classifies the blocks of a sanitized document as heading
// candidates.
type Matcher struct {
	config *Config
}

// NewMatcher creates a Matcher. If config is nil, DefaultConfig() is used.
func NewMatcher(config *Config) *Matcher {
	if config == nil {
		config = DefaultConfig()
	}
	return &Matcher{config: config}
}

// Blocks yields every p, div and h1-h6 element of doc in document order.
// A container and the blocks nested in it are all yielded, outermost first.
func (m *Matcher) Blocks(doc *goquery.Document) iter.Seq[Block] {
	return func(yield func(Block) bool) {
		doc.Find(blockSelector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			return yield(Block{
				Text: m.config.blockText(sel.Text()),
				Tag:  goquery.NodeName(sel),
			})
		})
	}
}

// Candidates yields the heading candidates of doc. The sequence follows
// document order; accumulation and rendering rely on it.
func (m *Matcher) Candidates(doc *goquery.Document) iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		for block := range m.Blocks(doc) {
			c, ok := m.Match(block.Text)
			if !ok {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}

// Match classifies a single block of text. Empty text, stray numbering and
// text outside the grammar are not candidates; neither are titles shorter
// than MinTitleRunes.
func (m *Matcher) Match(text string) (Candidate, bool) {
	text = m.config.blockText(text)
	if text == "" || IsDegenerate(text) {
		return Candidate{}, false
	}

	h, ok := ParseHeading(text)
	if !ok {
		return Candidate{}, false
	}

	title := trimText(h.Title)
	if title == "" || runeLen(title) < m.config.MinTitleRunes {
		return Candidate{}, false
	}

	return Candidate{
		Number:   h.Number,
		Title:    title,
		Level:    h.Level(),
		FullText: text,
	}, true
}
