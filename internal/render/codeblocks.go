package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ziadkadry99/docpage/internal/highlight"
)

// CodeBlock is a code block of the document. Declared is the language from
// the fence info string; Lang is its normalized, never empty form.
type CodeBlock struct {
	Index       int
	Declared    string
	Lang        string
	Source      string
	Highlighted bool
}

// Snippet is the plain text behind one copy control.
type Snippet struct {
	Block int
	Text  string
}

const (
	copyButtonClass = "copy-btn"
	langAttr        = "data-lang"
)

// CopyLabel and CopiedLabel are the two states of a copy control.
const (
	CopyLabel   = "Copy"
	CopiedLabel = "Copied"
)

// AugmentCodeBlocks highlights every pre > code element using the matching
// block's language and stamps the normalized language on the element and its
// parent. Blocks without a grammar stay unhighlighted. Elements that already
// carry a language stamp are left alone. A nil highlighter only stamps.
func (c *Container) AugmentCodeBlocks(blocks []CodeBlock, hl *highlight.Highlighter) ([]CodeBlock, error) {
	var (
		out  []CodeBlock
		errs []error
	)
	c.Content().Find("pre > code").Each(func(i int, code *goquery.Selection) {
		if _, done := code.Attr(langAttr); done {
			return
		}

		var b CodeBlock
		if i < len(blocks) {
			b = blocks[i]
		} else {
			b = CodeBlock{Source: code.Text()}
		}
		b.Index = i
		b.Lang = highlight.Normalize(b.Declared)

		if hl != nil {
			markup, ok, err := hl.Highlight(b.Lang, b.Source)
			switch {
			case err != nil:
				errs = append(errs, fmt.Errorf("block %d: %w", i, err))
			case ok:
				code.SetHtml(markup)
				b.Highlighted = true
			}
		}

		setLanguageClass(code, b.Lang)
		setLanguageClass(code.Parent(), b.Lang)
		code.SetAttr(langAttr, b.Lang)
		out = append(out, b)
	})
	return out, errors.Join(errs...)
}

// setLanguageClass replaces any language-* class with language-{lang},
// keeping other classes.
func setLanguageClass(s *goquery.Selection, lang string) {
	class, _ := s.Attr("class")
	var kept []string
	for _, f := range strings.Fields(class) {
		if !strings.HasPrefix(f, "language-") {
			kept = append(kept, f)
		}
	}
	kept = append(kept, "language-"+lang)
	s.SetAttr("class", strings.Join(kept, " "))
}

// AttachCopyControls appends one copy button to every preformatted block
// that does not have one yet and returns the text each button copies.
func (c *Container) AttachCopyControls() []Snippet {
	var snippets []Snippet
	c.Content().Find("pre").Each(func(i int, pre *goquery.Selection) {
		snippets = append(snippets, Snippet{Block: i, Text: plainText(pre)})
		if pre.ChildrenFiltered("button."+copyButtonClass).Length() > 0 {
			return
		}
		pre.AppendHtml(fmt.Sprintf(
			`<button type="button" class="%s" data-block="%d" data-copy-state="idle">%s</button>`,
			copyButtonClass, i, CopyLabel,
		))
	})
	return snippets
}

// plainText returns the text of a preformatted block without its copy button.
func plainText(pre *goquery.Selection) string {
	clone := pre.Clone()
	clone.Find("button." + copyButtonClass).Remove()
	return clone.Text()
}
