// Package markdown renders markdown files from the indexed tree to HTML for
// the preview endpoint, using Goldmark with GFM extensions and chroma-based
// syntax highlighting.
package markdown

import (
	"bytes"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// Heading is one heading found in the document, in source order.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Preview is the rendered result for one markdown file.
type Preview struct {
	HTML     string    `json:"html"`
	Title    string    `json:"title"`
	Headings []Heading `json:"headings"`
}

// Renderer converts markdown sources to HTML previews.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer builds a renderer with GFM extensions and highlighting.
func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Strikethrough,
			extension.TaskList,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
		),
	)
	return &Renderer{md: md}
}

// Render converts source to HTML and collects the document's headings.
// The first heading, if any, becomes the title.
func (r *Renderer) Render(source []byte) (*Preview, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(source, &buf); err != nil {
		return nil, err
	}

	headings := r.collectHeadings(source)
	title := ""
	if len(headings) > 0 {
		title = headings[0].Text
	}

	return &Preview{
		HTML:     buf.String(),
		Title:    title,
		Headings: headings,
	}, nil
}

// collectHeadings walks the AST and records every heading in order.
func (r *Renderer) collectHeadings(source []byte) []Heading {
	doc := r.md.Parser().Parse(text.NewReader(source))

	var headings []Heading
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if heading, ok := n.(*ast.Heading); ok {
			headings = append(headings, Heading{
				Level: heading.Level,
				Text:  headingText(heading, source),
			})
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil
	}
	return headings
}

func headingText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*ast.Text); ok {
			buf.Write(t.Segment.Value(source))
		}
	}
	return buf.String()
}
