package convert

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fumiama/go-docx"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DOCXConverter renders .docx files. Heading styles become h1-h6,
// other paragraphs p, tables nested table/tr/td and drawings img.
type DOCXConverter struct {
	// Title is written to the head of the generated document.
	Title string
}

func (c *DOCXConverter) Name() string { return "docx" }

func (c *DOCXConverter) Convert(r io.ReaderAt, size int64) (*Result, error) {
	doc, err := docx.Parse(r, size)
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	res := &Result{}
	root, body := newDocument(c.Title)

	for _, item := range doc.Document.Body.Items {
		switch v := item.(type) {
		case *docx.Paragraph:
			body.AppendChild(c.paragraph(v, res))
		case *docx.Table:
			body.AppendChild(c.table(v, res))
		case *docx.SectPr:
			// page setup only
		default:
			res.Warnings = append(res.Warnings, fmt.Sprintf("skipped body item %T", item))
		}
	}

	out, err := render(root)
	if err != nil {
		return nil, err
	}
	res.HTML = out
	return res, nil
}

func (c *DOCXConverter) paragraph(p *docx.Paragraph, res *Result) *html.Node {
	res.Paragraphs++

	el := element(atom.P)
	if level := headingLevel(p); level > 0 {
		el = element(headingAtoms[level-1])
	}

	for _, child := range p.Children {
		switch v := child.(type) {
		case *docx.Run:
			c.run(el, v, res)
		case *docx.Hyperlink:
			c.run(el, &v.Run, res)
		}
	}
	return el
}

func (c *DOCXConverter) run(parent *html.Node, r *docx.Run, res *Result) {
	for _, child := range r.Children {
		switch v := child.(type) {
		case *docx.Text:
			parent.AppendChild(textNode(v.Text))
		case *docx.Tab:
			parent.AppendChild(textNode("\t"))
		case *docx.BarterRabbet:
			parent.AppendChild(element(atom.Br))
		case *docx.Drawing:
			res.Images++
			img := element(atom.Img)
			img.Attr = []html.Attribute{{Key: "alt", Val: "image" + strconv.Itoa(res.Images)}}
			parent.AppendChild(img)
		}
	}
}

func (c *DOCXConverter) table(t *docx.Table, res *Result) *html.Node {
	res.Tables++

	table := element(atom.Table)
	tbody := element(atom.Tbody)
	table.AppendChild(tbody)

	for _, row := range t.TableRows {
		tr := element(atom.Tr)
		for _, cell := range row.TableCells {
			td := element(atom.Td)
			for _, p := range cell.Paragraphs {
				td.AppendChild(c.paragraph(p, res))
			}
			for _, nested := range cell.Tables {
				td.AppendChild(c.table(nested, res))
			}
			tr.AppendChild(td)
		}
		tbody.AppendChild(tr)
	}
	return table
}

var headingAtoms = [...]atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

// headingLevel maps heading paragraph styles ("Title", "Heading1",
// "heading 2", "标题 3") to 1-6, and everything else to 0.
func headingLevel(p *docx.Paragraph) int {
	if p.Properties == nil || p.Properties.Style == nil {
		return 0
	}

	style := strings.ToLower(strings.ReplaceAll(p.Properties.Style.Val, " ", ""))
	if style == "title" {
		return 1
	}
	for _, prefix := range []string{"heading", "标题"} {
		if !strings.HasPrefix(style, prefix) {
			continue
		}
		level, err := strconv.Atoi(strings.TrimPrefix(style, prefix))
		if err == nil && level >= 1 && level <= len(headingAtoms) {
			return level
		}
	}
	return 0
}
