package outline

import (
	"bytes"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/dustin/go-humanize"
)

// Extractor runs the full pipeline: parse, sanitize, match, accumulate.
// Every call works on its own document and dedup set, so an Extractor is
// safe for concurrent use.
type Extractor struct {
	config    *Config
	sanitizer *Sanitizer
	matcher   *Matcher
}

// New creates an Extractor. If config is nil, DefaultConfig() is used.
func New(config *Config) *Extractor {
	if config == nil {
		config = DefaultConfig()
	}
	return &Extractor{
		config:    config,
		sanitizer: NewSanitizer(config),
		matcher:   NewMatcher(config),
	}
}

// Config returns the configuration of the extractor.
func (e *Extractor) Config() *Config {
	return e.config
}

// Extract reads an HTML document from r and returns its outline.
// Malformed markup is never an error; a document without numbered headings
// yields an empty outline and a warning.
func (e *Extractor) Extract(r io.Reader) (*Result, error) {
	doc, err := e.parse(r)
	if err != nil {
		return nil, err
	}

	_, stats := e.sanitizer.Sanitize(doc)
	result := &Result{Stats: stats}

	result.Entries = Accumulate(counted(e.matcher.Candidates(doc), &result.Candidates), e.config.MaxLevel)
	if len(result.Entries) == 0 {
		result.AddWarning("match", "no numbered headings found", "")
	}

	return result, nil
}

// ExtractString is Extract for an in-memory document.
func (e *Extractor) ExtractString(html string) (*Result, error) {
	return e.Extract(strings.NewReader(html))
}

// ExtractFile extracts the outline of the HTML file at path.
func (e *Extractor) ExtractFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	result, err := e.Extract(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return result, nil
}

// Render serializes the entries of result in the given format, using the
// Markdown title of the extractor's config.
func (e *Extractor) Render(result *Result, format Format) (string, error) {
	r, err := NewRenderer(format, WithMarkdownTitle(e.config.MarkdownTitle))
	if err != nil {
		return "", err
	}
	return r.Render(result.Entries)
}

// parse reads the whole input, enforcing the size limit and UTF-8, and
// builds a lenient HTML tree from it.
func (e *Extractor) parse(r io.Reader) (*goquery.Document, error) {
	limit := e.config.MaxInputBytes
	if limit > 0 {
		r = io.LimitReader(r, limit+1)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: exceeds %s", ErrInputTooLarge, humanize.Bytes(uint64(limit)))
	}
	if !utf8.Valid(data) {
		return nil, ErrInvalidEncoding
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

// counted passes seq through, adding one to *n per element.
func counted[T any](seq iter.Seq[T], n *int) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range seq {
			*n++
			if !yield(v) {
				return
			}
		}
	}
}
