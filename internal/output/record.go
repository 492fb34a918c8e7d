package output

import "github.com/jmylchreest/outlyne/pkg/outline"

// Record is the report of one input document.
type Record struct {
	Source     string             `json:"source" yaml:"source"`
	Entries    []outline.Entry    `json:"entries" yaml:"entries"`
	Candidates int                `json:"candidates" yaml:"candidates"`
	Stats      outline.CleanStats `json:"stats" yaml:"stats"`
	Warnings   []string           `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Error      string             `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewRecord builds the record of source from an extraction result or error.
func NewRecord(source string, result *outline.Result, err error) Record {
	rec := Record{Source: source, Entries: []outline.Entry{}}
	if err != nil {
		rec.Error = err.Error()
		return rec
	}

	rec.Entries = result.Entries
	rec.Candidates = result.Candidates
	rec.Stats = result.Stats
	for _, w := range result.Warnings {
		rec.Warnings = append(rec.Warnings, w.String())
	}
	return rec
}

// Failed reports whether the record carries an extraction error.
func (r Record) Failed() bool {
	return r.Error != ""
}
