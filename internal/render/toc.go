package render

import (
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTOCMinimum is the number of level-2/3 headings a document needs
// before it gets a table of contents.
const DefaultTOCMinimum = 3

// TocEntry mirrors one level-2 or level-3 heading in the navigation list.
type TocEntry struct {
	ID    string
	Label string
	Level int
}

// BuildTOC collects the level-2 and level-3 headings of the content region
// and, when there are at least minHeadings of them, inserts a navigation region
// after the content. Any navigation region from an earlier build is removed.
func (c *Container) BuildTOC(minHeadings int) []TocEntry {
	if minHeadings <= 0 {
		minHeadings = DefaultTOCMinimum
	}
	c.TOC().Remove()

	headings := c.Content().Find("h2, h3")
	if headings.Length() < minHeadings {
		return nil
	}

	var (
		entries []TocEntry
		b       strings.Builder
	)
	b.WriteString(`<nav class="` + TOCClass + `" aria-label="On this page">`)
	b.WriteString(`<p class="doc-toc-title">On this page</p><ul>`)

	headings.Each(func(_ int, h *goquery.Selection) {
		id, _ := h.Attr("id")
		e := TocEntry{ID: id, Label: headingLabel(h), Level: headingLevel(h)}
		entries = append(entries, e)

		class := "toc-h2"
		if e.Level == 3 {
			class = "toc-h3 toc-sub"
		}
		b.WriteString(`<li class="` + class + `"><a href="#` + html.EscapeString(e.ID) +
			`" data-target="` + html.EscapeString(e.ID) + `">` + html.EscapeString(e.Label) + `</a></li>`)
	})

	b.WriteString(`</ul></nav>`)
	c.Content().AfterHtml(b.String())
	return entries
}
