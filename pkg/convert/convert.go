// Package convert renders office documents as HTML shaped like the output
// of an office converter, so they can be fed to the outline extractor.
package convert

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Result is the HTML produced from one source document.
type Result struct {
	HTML       string
	Paragraphs int
	Tables     int
	Images     int
	Warnings   []string
}

// Converter turns a source document into HTML.
type Converter interface {
	Convert(r io.ReaderAt, size int64) (*Result, error)
	Name() string
}

// SupportedExtensions lists the source extensions a converter exists for.
var SupportedExtensions = map[string]bool{
	".docx": true,
}

// ForFile returns the converter for a filename.
func ForFile(filename string) (Converter, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".docx":
		title := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
		return &DOCXConverter{Title: title}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension reports whether a converter exists for filename.
func IsSupportedExtension(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// ConvertFile converts the document at path with the converter for its
// extension.
func ConvertFile(path string) (*Result, error) {
	c, err := ForFile(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	return c.Convert(f, info.Size())
}

// element creates an empty element node.
func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}

// textNode creates a text node; Render escapes its content.
func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// newDocument builds the html/head/body skeleton and returns the root and
// the body to append to.
func newDocument(title string) (root, body *html.Node) {
	root = &html.Node{Type: html.DocumentNode}
	root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	htmlEl := element(atom.Html)
	root.AppendChild(htmlEl)

	head := element(atom.Head)
	meta := element(atom.Meta)
	meta.Attr = []html.Attribute{{Key: "charset", Val: "utf-8"}}
	head.AppendChild(meta)
	if title != "" {
		t := element(atom.Title)
		t.AppendChild(textNode(title))
		head.AppendChild(t)
	}
	htmlEl.AppendChild(head)

	body = element(atom.Body)
	htmlEl.AppendChild(body)
	return root, body
}

// render serializes a document tree.
func render(root *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return buf.String(), nil
}
