package outline

import (
	"bytes"
	"encoding/json"
	"strings"
)

// jsonRenderer writes the entries as an indented array. Non-ASCII text and
// HTML-significant characters are written verbatim.
type jsonRenderer struct {
	indent string
}

func (jsonRenderer) Format() Format { return FormatJSON }

func (r jsonRenderer) Render(entries []Entry) (string, error) {
	if entries == nil {
		entries = []Entry{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", r.indent)
	if err := enc.Encode(entries); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
