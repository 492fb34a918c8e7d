package outline

import "iter"

// Entry is a heading kept in the outline.
type Entry struct {
	Number   string `json:"number" yaml:"number"`
	Title    string `json:"title" yaml:"title"`
	Level    int    `json:"level" yaml:"level"`
	FullText string `json:"full_text" yaml:"full_text"`
}

// Accumulate keeps the candidates at or above maxLevel, dropping any
// numeral path already seen (the first occurrence wins, so page headers that
// repeat a section number are ignored). Input order is preserved.
func Accumulate(candidates iter.Seq[Candidate], maxLevel int) []Entry {
	entries := make([]Entry, 0)
	seen := make(map[string]bool)

	for c := range candidates {
		if c.Level > maxLevel {
			continue
		}
		if seen[c.Number] {
			continue
		}
		seen[c.Number] = true
		entries = append(entries, Entry(c))
	}

	return entries
}
