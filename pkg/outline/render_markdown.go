package outline

import "strings"

// markdownRenderer writes a titled document with one ATX heading per entry,
// one level deeper than the entry so the title stays the only top heading.
type markdownRenderer struct {
	title string
}

func (markdownRenderer) Format() Format { return FormatMarkdown }

func (r markdownRenderer) Render(entries []Entry) (string, error) {
	lines := make([]string, 0, 2+2*len(entries))
	lines = append(lines, "# "+r.title, "")
	for _, e := range entries {
		lines = append(lines, strings.Repeat("#", e.Level+1)+" "+e.Number+" "+e.Title, "")
	}
	return strings.Join(lines, "\n"), nil
}
