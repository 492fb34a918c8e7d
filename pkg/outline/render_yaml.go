package outline

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

// yamlRenderer writes the entries as a YAML sequence.
type yamlRenderer struct {
	indent int
}

func (yamlRenderer) Format() Format { return FormatYAML }

func (r yamlRenderer) Render(entries []Entry) (string, error) {
	if entries == nil {
		entries = []Entry{}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	if r.indent > 0 {
		enc.SetIndent(r.indent)
	}
	if err := enc.Encode(entries); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
