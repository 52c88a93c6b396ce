// Package content fetches raw Markdown documents by slug.
package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"
)

// DocsDir is the directory segment under the base path holding documents.
const DocsDir = "docs"

// ErrInvalidSlug is returned for slugs that cannot name a document.
var ErrInvalidSlug = errors.New("invalid document slug")

// Response is the outcome of a document fetch. A non-success status is a
// Response, not an error.
type Response struct {
	StatusCode int
	OK         bool
	Body       string
}

// Loader fetches a document's raw Markdown by slug.
type Loader interface {
	Fetch(ctx context.Context, slug string) (*Response, error)
}

// DocumentPath joins the base path, the documents directory and the slug with
// a .md suffix. Each slug segment is path-escaped.
func DocumentPath(basePath, slug string) (string, error) {
	clean, err := CleanSlug(slug)
	if err != nil {
		return "", err
	}
	segments := strings.Split(clean, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return path.Join("/", basePath, DocsDir, strings.Join(segments, "/")+".md"), nil
}

// CleanSlug trims slashes and a trailing .md and rejects empty or
// parent-relative slugs.
func CleanSlug(slug string) (string, error) {
	s := strings.Trim(strings.TrimSpace(slug), "/")
	s = strings.TrimSuffix(s, ".md")
	if s == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidSlug)
	}
	for _, seg := range strings.Split(s, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return "", fmt.Errorf("%w: %q", ErrInvalidSlug, slug)
		}
	}
	return s, nil
}

// HTTPLoader fetches documents from {Origin}{BasePath}/docs/{slug}.md.
type HTTPLoader struct {
	client   *http.Client
	origin   string
	basePath string
}

// NewHTTPLoader creates an HTTPLoader. A nil client uses a client without a
// timeout; slow fetches delay the render rather than abort it.
func NewHTTPLoader(client *http.Client, origin, basePath string) *HTTPLoader {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPLoader{
		client:   client,
		origin:   strings.TrimRight(origin, "/"),
		basePath: basePath,
	}
}

// Fetch issues a single GET for the document.
func (l *HTTPLoader) Fetch(ctx context.Context, slug string) (*Response, error) {
	p, err := DocumentPath(l.basePath, slug)
	if err != nil {
		return nil, err
	}
	target := l.origin + p

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "text/markdown, text/plain")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", target, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		OK:         resp.StatusCode >= 200 && resp.StatusCode < 300,
		Body:       string(body),
	}, nil
}

// DirLoader serves documents from a file system rooted at the documents
// directory, reporting missing files as 404 responses.
type DirLoader struct {
	fsys fs.FS
}

// NewDirLoader creates a DirLoader over fsys.
func NewDirLoader(fsys fs.FS) *DirLoader {
	return &DirLoader{fsys: fsys}
}

// Fetch reads {slug}.md from the file system.
func (l *DirLoader) Fetch(ctx context.Context, slug string) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	clean, err := CleanSlug(slug)
	if err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(l.fsys, clean+".md")
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &Response{StatusCode: http.StatusNotFound}, nil
	case errors.Is(err, fs.ErrPermission):
		return &Response{StatusCode: http.StatusForbidden}, nil
	case err != nil:
		return nil, fmt.Errorf("reading %s: %w", clean, err)
	}

	return &Response{StatusCode: http.StatusOK, OK: true, Body: string(data)}, nil
}
