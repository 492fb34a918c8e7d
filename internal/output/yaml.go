package output

import (
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLWriter writes each record as its own YAML document.
type YAMLWriter struct {
	enc *yaml.Encoder
}

// NewYAMLWriter creates a YAML writer. An indent of zero keeps the encoder
// default.
func NewYAMLWriter(w io.Writer, indent int) *YAMLWriter {
	enc := yaml.NewEncoder(w)
	if indent > 0 {
		enc.SetIndent(indent)
	}
	return &YAMLWriter{enc: enc}
}

// Write encodes a record as a document.
func (w *YAMLWriter) Write(rec Record) error {
	return w.enc.Encode(rec)
}

// Close finishes the YAML stream.
func (w *YAMLWriter) Close() error {
	return w.enc.Close()
}
