package outline

import (
	"fmt"
	"strings"
)

// Format identifies an outline serialization.
type Format string

const (
	FormatText     Format = "txt"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

// Formats returns every supported format in sibling-file order.
func Formats() []Format {
	return []Format{FormatText, FormatMarkdown, FormatJSON, FormatYAML}
}

// ParseFormat resolves a format name or one of its aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "txt", "text", "plain":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Extension returns the file extension used for the format, dot included.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatJSON:
		return ".json"
	case FormatYAML:
		return ".yaml"
	default:
		return ".txt"
	}
}

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatJSON:
		return "application/json; charset=utf-8"
	case FormatYAML:
		return "application/yaml; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Renderer serializes an outline. Rendering is pure: the same entries
// always produce the same bytes.
type Renderer interface {
	Render(entries []Entry) (string, error)
	Format() Format
}

// RenderOption configures a Renderer.
type RenderOption func(*renderOptions)

type renderOptions struct {
	markdownTitle string
	indent        string
}

// WithMarkdownTitle sets the title line of the Markdown rendering.
func WithMarkdownTitle(title string) RenderOption {
	return func(o *renderOptions) {
		if title != "" {
			o.markdownTitle = title
		}
	}
}

// WithIndent sets the indentation unit of the JSON and YAML renderings.
func WithIndent(indent string) RenderOption {
	return func(o *renderOptions) {
		o.indent = indent
	}
}

// NewRenderer creates a Renderer for the given format.
func NewRenderer(format Format, opts ...RenderOption) (Renderer, error) {
	o := renderOptions{
		markdownTitle: DefaultConfig().MarkdownTitle,
		indent:        "  ",
	}
	for _, opt := range opts {
		opt(&o)
	}

	switch format {
	case FormatText:
		return textRenderer{}, nil
	case FormatMarkdown:
		return markdownRenderer{title: o.markdownTitle}, nil
	case FormatJSON:
		return jsonRenderer{indent: o.indent}, nil
	case FormatYAML:
		return yamlRenderer{indent: len(o.indent)}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
