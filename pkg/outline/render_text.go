package outline

import "strings"

// textRenderer writes one line per entry, indented two spaces per level
// below the first.
type textRenderer struct{}

func (textRenderer) Format() Format { return FormatText }

func (textRenderer) Render(entries []Entry) (string, error) {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		indent := strings.Repeat("  ", max(e.Level-1, 0))
		lines = append(lines, indent+e.Number+" "+e.Title)
	}
	return strings.Join(lines, "\n"), nil
}
