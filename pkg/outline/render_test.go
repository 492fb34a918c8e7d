package outline

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

var sampleEntries = []Entry{
	{Number: "1", Title: "Introduction", Level: 1, FullText: "1 Introduction"},
	{Number: "1.1", Title: "Background & Scope", Level: 2, FullText: "1.1 Background & Scope 3"},
	{Number: "2", Title: "方法", Level: 1, FullText: "2 方法"},
}

func mustRender(t *testing.T, format Format, entries []Entry, opts ...RenderOption) string {
	t.Helper()
	r, err := NewRenderer(format, opts...)
	if err != nil {
		t.Fatalf("NewRenderer(%q): %v", format, err)
	}
	if r.Format() != format {
		t.Errorf("Format() = %q, want %q", r.Format(), format)
	}
	out, err := r.Render(entries)
	if err != nil {
		t.Fatalf("Render(%q): %v", format, err)
	}
	return out
}

func TestTextRenderer(t *testing.T) {
	got := mustRender(t, FormatText, sampleEntries)
	want := "1 Introduction\n  1.1 Background & Scope\n2 方法"
	if got != want {
		t.Errorf("got:\n%q\nwant:\n%q", got, want)
	}

	if got := mustRender(t, FormatText, nil); got != "" {
		t.Errorf("empty outline rendered as %q", got)
	}
}

func TestMarkdownRenderer(t *testing.T) {
	got := mustRender(t, FormatMarkdown, sampleEntries)
	want := "# Document Outline\n\n## 1 Introduction\n\n### 1.1 Background & Scope\n\n## 2 方法\n"
	if got != want {
		t.Errorf("got:\n%q\nwant:\n%q", got, want)
	}

	t.Run("custom title", func(t *testing.T) {
		got := mustRender(t, FormatMarkdown, nil, WithMarkdownTitle("Contents"))
		if got != "# Contents\n" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("empty title keeps default", func(t *testing.T) {
		got := mustRender(t, FormatMarkdown, nil, WithMarkdownTitle(""))
		if got != "# Document Outline\n" {
			t.Errorf("got %q", got)
		}
	})
}

func TestJSONRenderer(t *testing.T) {
	got := mustRender(t, FormatJSON, sampleEntries)

	if !strings.HasPrefix(got, "[\n  {\n    \"number\": \"1\",") {
		t.Errorf("unexpected layout:\n%s", got)
	}
	if strings.HasSuffix(got, "\n") {
		t.Error("expected no trailing newline")
	}
	for _, s := range []string{"方法", "Background & Scope", `"full_text": "1.1 Background & Scope 3"`} {
		if !strings.Contains(got, s) {
			t.Errorf("expected %q written verbatim in:\n%s", s, got)
		}
	}

	var decoded []Entry
	if err := json.Unmarshal([]byte(got), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !reflect.DeepEqual(decoded, sampleEntries) {
		t.Errorf("decoded %+v, want %+v", decoded, sampleEntries)
	}

	t.Run("empty", func(t *testing.T) {
		if got := mustRender(t, FormatJSON, nil); got != "[]" {
			t.Errorf("got %q, want []", got)
		}
	})
}

func TestYAMLRenderer(t *testing.T) {
	got := mustRender(t, FormatYAML, sampleEntries)
	if !strings.Contains(got, "full_text:") {
		t.Errorf("expected full_text key in:\n%s", got)
	}

	var decoded []Entry
	if err := yaml.Unmarshal([]byte(got), &decoded); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}
	if !reflect.DeepEqual(decoded, sampleEntries) {
		t.Errorf("decoded %+v, want %+v", decoded, sampleEntries)
	}

	if got := mustRender(t, FormatYAML, nil); got != "[]\n" {
		t.Errorf("empty outline rendered as %q", got)
	}
}

// markdownHeadings parses rendered Markdown and returns its ATX headings.
func markdownHeadings(src []byte) (levels []int, texts []string) {
	doc := goldmark.DefaultParser().Parse(text.NewReader(src))
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok {
			var buf bytes.Buffer
			for c := h.FirstChild(); c != nil; c = c.NextSibling() {
				if t, ok := c.(*ast.Text); ok {
					buf.Write(t.Segment.Value(src))
				}
			}
			levels = append(levels, h.Level)
			texts = append(texts, buf.String())
		}
		return ast.WalkContinue, nil
	})
	return levels, texts
}

func TestRenderersAgree(t *testing.T) {
	lines := strings.Split(mustRender(t, FormatText, sampleEntries), "\n")
	levels, texts := markdownHeadings([]byte(mustRender(t, FormatMarkdown, sampleEntries)))

	var decoded []Entry
	if err := json.Unmarshal([]byte(mustRender(t, FormatJSON, sampleEntries)), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if len(lines) != len(sampleEntries) || len(texts) != len(sampleEntries)+1 || len(decoded) != len(sampleEntries) {
		t.Fatalf("entry counts differ: text %d, markdown %d, json %d", len(lines), len(texts)-1, len(decoded))
	}
	if levels[0] != 1 || texts[0] != "Document Outline" {
		t.Errorf("markdown title = h%d %q", levels[0], texts[0])
	}

	for i, e := range sampleEntries {
		heading := e.Number + " " + e.Title
		if strings.TrimSpace(lines[i]) != heading {
			t.Errorf("text line %d = %q, want %q", i, lines[i], heading)
		}
		if texts[i+1] != heading || levels[i+1] != e.Level+1 {
			t.Errorf("markdown heading %d = h%d %q, want h%d %q", i, levels[i+1], texts[i+1], e.Level+1, heading)
		}
		if decoded[i] != e {
			t.Errorf("json record %d = %+v, want %+v", i, decoded[i], e)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"txt":      FormatText,
		"text":     FormatText,
		"Plain":    FormatText,
		"markdown": FormatMarkdown,
		"md":       FormatMarkdown,
		"json":     FormatJSON,
		" JSON ":   FormatJSON,
		"yaml":     FormatYAML,
		"yml":      FormatYAML,
	}
	for name, want := range tests {
		got, err := ParseFormat(name)
		if err != nil {
			t.Errorf("ParseFormat(%q): %v", name, err)
			continue
		}
		if got != want {
			t.Errorf("ParseFormat(%q) = %q, want %q", name, got, want)
		}
	}

	if _, err := ParseFormat("xml"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestNewRendererUnknownFormat(t *testing.T) {
	if _, err := NewRenderer(Format("csv")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestFormatExtension(t *testing.T) {
	want := map[Format]string{
		FormatText:     ".txt",
		FormatMarkdown: ".md",
		FormatJSON:     ".json",
		FormatYAML:     ".yaml",
	}
	for _, f := range Formats() {
		if f.Extension() != want[f] {
			t.Errorf("%s extension = %q, want %q", f, f.Extension(), want[f])
		}
		if !strings.Contains(f.ContentType(), "charset=utf-8") {
			t.Errorf("%s content type %q lacks charset", f, f.ContentType())
		}
	}
}
