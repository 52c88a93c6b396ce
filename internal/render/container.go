package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	xhtml "golang.org/x/net/html"
)

// Class names forming the page's DOM contract.
const (
	WrapperClass = "doc-wrapper"
	ContentClass = "doc-content"
	TOCClass     = "doc-toc"
	ErrorClass   = "doc-error"
)

// Container owns the rendered document tree. Each Inject discards the
// previous document entirely.
type Container struct {
	doc     *goquery.Document
	wrapper *goquery.Selection
}

// NewContainer creates an empty wrapper element.
func NewContainer() (*Container, error) {
	root, err := xhtml.Parse(strings.NewReader(`<div class="` + WrapperClass + `"></div>`))
	if err != nil {
		return nil, fmt.Errorf("parsing wrapper: %w", err)
	}
	doc := goquery.NewDocumentFromNode(root)
	return &Container{doc: doc, wrapper: doc.Find("div." + WrapperClass).First()}, nil
}

// Inject replaces everything in the wrapper with a content region holding
// the given HTML fragment.
func (c *Container) Inject(fragment string) {
	c.wrapper.SetHtml(`<div class="` + ContentClass + `">` + fragment + `</div>`)
}

// Fail replaces everything in the wrapper with a user-visible message and no
// content region.
func (c *Container) Fail(message string) {
	c.wrapper.SetHtml(`<p class="` + ErrorClass + `" role="alert">` + html.EscapeString(message) + `</p>`)
}

// Content returns the content region, which is empty after Fail.
func (c *Container) Content() *goquery.Selection {
	return c.wrapper.ChildrenFiltered("div." + ContentClass)
}

// TOC returns the navigation region, if one was built.
func (c *Container) TOC() *goquery.Selection {
	return c.wrapper.ChildrenFiltered("nav." + TOCClass)
}

// IDs returns every element id present in the rendered subtree.
func (c *Container) IDs() map[string]struct{} {
	ids := make(map[string]struct{})
	c.wrapper.Find("[id]").Each(func(_ int, s *goquery.Selection) {
		if id, _ := s.Attr("id"); id != "" {
			ids[id] = struct{}{}
		}
	})
	return ids
}

// Markup serializes the wrapper element.
func (c *Container) Markup() (string, error) {
	return goquery.OuterHtml(c.wrapper)
}
