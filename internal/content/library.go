package content

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Document is a Markdown file available in a Library.
type Document struct {
	Slug  string
	Title string
}

// Library lists the documents under a directory, filtered by glob patterns
// relative to that directory.
type Library struct {
	fsys    fs.FS
	include []string
	exclude []string
}

// NewLibrary creates a Library. An empty include list admits every file.
func NewLibrary(fsys fs.FS, include, exclude []string) *Library {
	return &Library{fsys: fsys, include: include, exclude: exclude}
}

// FS returns the directory the library lists.
func (l *Library) FS() fs.FS { return l.fsys }

// Allowed reports whether the relative path rel passes the include and
// exclude patterns.
func (l *Library) Allowed(rel string) bool {
	rel = strings.TrimPrefix(rel, "/")
	if len(l.include) > 0 && !matchAny(l.include, rel) {
		return false
	}
	return !matchAny(l.exclude, rel)
}

// matchAny matches name, then its base name, against each pattern.
func matchAny(patterns []string, name string) bool {
	base := path.Base(name)
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, name); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(p, base); err == nil && ok {
			return true
		}
	}
	return false
}

// List returns every allowed Markdown document sorted by slug.
func (l *Library) List() ([]Document, error) {
	matches, err := doublestar.Glob(l.fsys, "**/*.md")
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	sort.Strings(matches)

	var docs []Document
	for _, m := range matches {
		if !l.Allowed(m) {
			continue
		}
		slug := strings.TrimSuffix(m, ".md")
		docs = append(docs, Document{Slug: slug, Title: l.title(m, slug)})
	}
	return docs, nil
}

// title is the file's first level-1 heading, falling back to the file name.
func (l *Library) title(name, slug string) string {
	if src, err := fs.ReadFile(l.fsys, name); err == nil {
		if t := Title(src); t != "" {
			return t
		}
	}
	return path.Base(slug)
}
