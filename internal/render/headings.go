package render

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Heading is a heading of the rendered document with its anchor id.
type Heading struct {
	Level int
	ID    string
	Text  string
}

// fallbackSlug names headings whose text has no word characters.
const fallbackSlug = "section"

var nonWord = regexp.MustCompile(`\W+`)

// Slugify lowercases text, collapses every run of non-word characters into a
// single hyphen and trims leading and trailing hyphens.
func Slugify(text string) string {
	return strings.Trim(nonWord.ReplaceAllString(strings.ToLower(text), "-"), "-")
}

// AugmentHeadings gives every h1-h6 without an id a unique slug id and
// appends a self-link anchor to headings that lack one. Existing ids are kept
// and reserved. Running it again changes nothing.
func (c *Container) AugmentHeadings() []Heading {
	used := c.IDs()

	var out []Heading
	c.Content().Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, h *goquery.Selection) {
		label := headingLabel(h)

		id, _ := h.Attr("id")
		if strings.TrimSpace(id) == "" {
			id = uniqueID(Slugify(label), used)
			h.SetAttr("id", id)
		}

		if h.ChildrenFiltered("a.anchor").Length() == 0 {
			h.AppendHtml(`<a class="anchor" href="#` + html.EscapeString(id) + `" aria-hidden="true">#</a>`)
		}

		out = append(out, Heading{Level: headingLevel(h), ID: id, Text: label})
	})
	return out
}

// uniqueID reserves base, or base-1, base-2, ... when base is taken.
func uniqueID(base string, used map[string]struct{}) string {
	if base == "" {
		base = fallbackSlug
	}
	id := base
	for n := 1; ; n++ {
		if _, taken := used[id]; !taken {
			break
		}
		id = fmt.Sprintf("%s-%d", base, n)
	}
	used[id] = struct{}{}
	return id
}

// headingLabel is the heading's text without its self-link anchor.
func headingLabel(h *goquery.Selection) string {
	clone := h.Clone()
	clone.ChildrenFiltered("a.anchor").Remove()
	return strings.TrimSpace(clone.Text())
}

func headingLevel(h *goquery.Selection) int {
	name := goquery.NodeName(h)
	if len(name) == 2 && name[0] == 'h' && name[1] >= '1' && name[1] <= '6' {
		return int(name[1] - '0')
	}
	return 0
}
