package outline

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ParsedHeading is one block of text read against the heading grammar:
//
//	heading = path sep title [sep page] EOF
//	path    = digits { "." digits }
//	sep     = one or more whitespace runes
//	title   = shortest non-empty run of runes without a newline
//	page    = digits
//
// The title is the shortest one that lets an optional trailing page
// number and the end of the text follow, so "2 Methods 14" yields the title
// "Methods" and the page "14".
type ParsedHeading struct {
	Number string
	Title  string
	Page   string
}

// Level returns the depth of the numeral path: its dot count plus one.
func (h ParsedHeading) Level() int {
	return Level(h.Number)
}

// Level returns the depth of a numeral path such as "3.2.1".
func Level(number string) int {
	return strings.Count(number, ".") + 1
}

// ParseHeading applies the heading grammar to already trimmed text.
func ParseHeading(text string) (ParsedHeading, bool) {
	number, rest, ok := scanNumeralPath(text)
	if !ok {
		return ParsedHeading{}, false
	}

	body := strings.TrimLeftFunc(rest, isSpace)
	if len(body) == len(rest) || body == "" {
		return ParsedHeading{}, false
	}

	for i := 0; i < len(body); {
		r, size := utf8.DecodeRuneInString(body[i:])
		if r == '\n' {
			return ParsedHeading{}, false
		}
		i += size

		tail := body[i:]
		if tail == "" {
			return ParsedHeading{Number: number, Title: body}, true
		}
		if page, ok := scanPageSuffix(tail); ok {
			return ParsedHeading{Number: number, Title: body[:i], Page: page}, true
		}
	}
	return ParsedHeading{}, false
}

// scanNumeralPath consumes a leading dotted numeral path. A dot is only part
// of the path when a digit follows it.
func scanNumeralPath(s string) (number, rest string, ok bool) {
	end := scanDigits(s, 0)
	if end == 0 {
		return "", s, false
	}
	for end < len(s) && s[end] == '.' {
		next := scanDigits(s, end+1)
		if next == end+1 {
			break
		}
		end = next
	}
	return s[:end], s[end:], true
}

// scanDigits returns the byte offset just past the run of digits at start.
func scanDigits(s string, start int) int {
	i := start
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !unicode.IsDigit(r) {
			break
		}
		i += size
	}
	return i
}

// scanPageSuffix matches whitespace followed by digits up to the end.
func scanPageSuffix(s string) (string, bool) {
	page := strings.TrimLeftFunc(s, isSpace)
	if len(page) == len(s) || page == "" {
		return "", false
	}
	if scanDigits(page, 0) != len(page) {
		return "", false
	}
	return page, true
}

// IsDegenerate reports whether text consists only of digits, whitespace
// and the punctuation . , - ( ) [ ], i.e. stray numbering with no words.
func IsDegenerate(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if unicode.IsDigit(r) || isSpace(r) {
			continue
		}
		switch r {
		case '.', ',', '-', '(', ')', '[', ']':
			continue
		}
		return false
	}
	return true
}

// CaptionMatcher recognises figure and table captions: a label word, optional
// whitespace, then at least one digit or dot ("图1.1", "Table 3").
type CaptionMatcher struct {
	labels []string
}

// NewCaptionMatcher creates a matcher for the given label words.
func NewCaptionMatcher(labels []string) CaptionMatcher {
	return CaptionMatcher{labels: labels}
}

// Match reports whether text starts with a caption label.
func (m CaptionMatcher) Match(text string) bool {
	for _, label := range m.labels {
		if label == "" || !strings.HasPrefix(text, label) {
			continue
		}
		rest := strings.TrimLeftFunc(text[len(label):], isSpace)
		r, _ := utf8.DecodeRuneInString(rest)
		if rest != "" && (r == '.' || unicode.IsDigit(r)) {
			return true
		}
	}
	return false
}

// isSpace also counts the ASCII file/group/record/unit separators as space,
// as converted documents occasionally carry them between runs.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// trimText trims surrounding whitespace from block text.
func trimText(s string) string {
	return strings.TrimFunc(s, isSpace)
}

// runeLen is the length the block heuristics measure.
func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
