package outline

import (
	"fmt"
	"strings"
)

// CleanStats counts what one Sanitize run removed. It is diagnostic only;
// nothing downstream reads it.
type CleanStats struct {
	TablesRemoved         int `json:"tables_removed" yaml:"tables_removed"`
	ImagesRemoved         int `json:"images_removed" yaml:"images_removed"`
	ScriptsRemoved        int `json:"scripts_removed" yaml:"scripts_removed"`
	CaptionsRemoved       int `json:"captions_removed" yaml:"captions_removed"`
	LongParagraphsRemoved int `json:"long_paragraphs_removed" yaml:"long_paragraphs_removed"`
}

// Total returns the number of subtrees removed.
func (s CleanStats) Total() int {
	return s.TablesRemoved + s.ImagesRemoved + s.ScriptsRemoved +
		s.CaptionsRemoved + s.LongParagraphsRemoved
}

// String returns a human-readable summary of the stats.
func (s CleanStats) String() string {
	var sb strings.Builder
	sb.WriteString("HTML cleaning complete:\n")
	sb.WriteString(fmt.Sprintf("  - tables removed: %d\n", s.TablesRemoved))
	sb.WriteString(fmt.Sprintf("  - images removed: %d\n", s.ImagesRemoved))
	sb.WriteString(fmt.Sprintf("  - scripts/styles removed: %d\n", s.ScriptsRemoved))
	sb.WriteString(fmt.Sprintf("  - captions removed: %d\n", s.CaptionsRemoved))
	sb.WriteString(fmt.Sprintf("  - long paragraphs removed: %d\n", s.LongParagraphsRemoved))
	return sb.String()
}

// Warning represents a non-fatal issue encountered during extraction.
type Warning struct {
	Phase   string `json:"phase" yaml:"phase"`     // "parse", "sanitize", "match"
	Message string `json:"message" yaml:"message"` // Human-readable description
	Context string `json:"context,omitempty" yaml:"context,omitempty"`
}

// String returns a formatted warning message.
func (w Warning) String() string {
	if w.Context != "" {
		return fmt.Sprintf("[%s] %s (context: %s)", w.Phase, w.Message, w.Context)
	}
	return fmt.Sprintf("[%s] %s", w.Phase, w.Message)
}

// Result contains the output of one extraction.
type Result struct {
	// Entries is the accumulated outline in document order.
	Entries []Entry `json:"entries" yaml:"entries"`

	// Stats describes what the sanitizer removed.
	Stats CleanStats `json:"stats" yaml:"stats"`

	// Candidates is the number of heading candidates seen before
	// depth bounding and deduplication.
	Candidates int `json:"candidates" yaml:"candidates"`

	// Warnings contains non-fatal issues encountered.
	Warnings []Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// AddWarning adds a warning to the result.
func (r *Result) AddWarning(phase, message, context string) {
	r.Warnings = append(r.Warnings, Warning{
		Phase:   phase,
		Message: message,
		Context: context,
	})
}

// HasWarnings returns true if any warnings were recorded.
func (r *Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}
