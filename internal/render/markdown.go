package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// Converted is the HTML fragment for a document plus the code blocks found in
// its syntax tree, in document order.
type Converted struct {
	HTML   string
	Title  string
	Blocks []CodeBlock
}

// Converter turns Markdown into an HTML fragment using goldmark.
type Converter struct {
	md goldmark.Markdown
}

// NewConverter creates a Converter with GFM extensions and heading
// attributes, so "## Title {#custom}" keeps its author-supplied id.
func NewConverter() *Converter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
		),
		goldmark.WithParserOptions(
			parser.WithAttribute(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
			// Raw HTML is omitted so every <pre><code> in the output maps to a
			// code block node of the tree.
		),
	)
	return &Converter{md: md}
}

// Convert parses src once, records its code blocks and renders the tree.
func (c *Converter) Convert(ctx context.Context, src []byte) (*Converted, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := c.md.Parser().Parse(text.NewReader(src))

	out := &Converted{}
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.FencedCodeBlock:
			out.Blocks = append(out.Blocks, CodeBlock{
				Index:    len(out.Blocks),
				Declared: string(node.Language(src)),
				Source:   blockSource(node, src),
			})
		case *ast.CodeBlock:
			out.Blocks = append(out.Blocks, CodeBlock{
				Index:  len(out.Blocks),
				Source: blockSource(node, src),
			})
		case *ast.Heading:
			if out.Title == "" && node.Level == 1 {
				out.Title = inlineText(node, src)
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: walking tree: %v", ErrConversion, err)
	}

	var buf bytes.Buffer
	if err := c.md.Renderer().Render(&buf, src, doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConversion, err)
	}
	out.HTML = buf.String()
	return out, nil
}

func blockSource(n ast.Node, src []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(src))
	}
	return b.String()
}

func inlineText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
