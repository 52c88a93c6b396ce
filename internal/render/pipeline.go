// Package render turns a fetched Markdown document into page markup:
// highlighted code blocks with copy controls, anchored headings and an
// optional table of contents.
package render

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ziadkadry99/docpage/internal/content"
	"github.com/ziadkadry99/docpage/internal/highlight"
)

// ErrConversion indicates Markdown to HTML conversion failed.
var ErrConversion = errors.New("markdown conversion failed")

// Request identifies the document to mount.
type Request struct {
	Slug string
}

// FailureKind classifies a failed mount.
type FailureKind int

const (
	// FailureStatus means the document fetch returned a non-success status.
	FailureStatus FailureKind = iota + 1
	// FailureException means fetching, grammar loading or conversion failed.
	FailureException
)

// Failure describes why a page has no content.
type Failure struct {
	Kind   FailureKind
	Status int
	Err    error
}

// Message is the user-visible text for the failure.
func (f *Failure) Message() string {
	if f.Kind == FailureStatus {
		return fmt.Sprintf("Failed to load document (HTTP %d).", f.Status)
	}
	return "Failed to render document."
}

// Page is the outcome of mounting one document.
type Page struct {
	Slug     string
	Title    string
	HTML     string
	Blocks   []CodeBlock
	Headings []Heading
	TOC      []TocEntry
	Snippets []Snippet
	IDs      map[string]struct{}
	Failure  *Failure
}

// OK reports whether the page carries document content.
func (p *Page) OK() bool { return p.Failure == nil }

// HasID reports whether the rendered subtree contains an element with id.
func (p *Page) HasID(id string) bool {
	_, ok := p.IDs[id]
	return ok
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the pipeline's logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithTOCMinimum sets how many level-2/3 headings a table of contents needs.
func WithTOCMinimum(n int) Option {
	return func(p *Pipeline) { p.tocMin = n }
}

// Pipeline fetches, converts and augments documents.
type Pipeline struct {
	loader   content.Loader
	registry *highlight.Registry
	conv     *Converter
	logger   *zap.Logger
	tocMin   int
}

// New creates a Pipeline that owns the given highlighter registry.
func New(loader content.Loader, registry *highlight.Registry, opts ...Option) *Pipeline {
	p := &Pipeline{
		loader:   loader,
		registry: registry,
		conv:     NewConverter(),
		logger:   zap.NewNop(),
		tocMin:   DefaultTOCMinimum,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Registry returns the pipeline's highlighter registry.
func (p *Pipeline) Registry() *highlight.Registry { return p.registry }

// Mount fetches the document and loads the highlighter concurrently, then
// renders once both have settled. Failures are reported on the page.
func (p *Pipeline) Mount(ctx context.Context, req Request) *Page {
	log := p.logger.With(zap.String("slug", req.Slug), zap.String("render_id", uuid.NewString()))

	var (
		resp *content.Response
		hl   *highlight.Highlighter
		g    errgroup.Group
	)
	g.Go(func() error {
		r, err := p.loader.Fetch(ctx, req.Slug)
		resp = r
		return err
	})
	g.Go(func() error {
		h, err := p.registry.Load(ctx)
		hl = h
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error("document render failed", zap.Error(err))
		return p.failed(req, &Failure{Kind: FailureException, Err: err})
	}

	if !resp.OK {
		log.Warn("document fetch failed", zap.Int("status", resp.StatusCode))
		return p.failed(req, &Failure{Kind: FailureStatus, Status: resp.StatusCode})
	}

	page, err := p.Render(ctx, req, resp.Body, hl)
	if err != nil {
		log.Error("document render failed", zap.Error(err))
		return p.failed(req, &Failure{Kind: FailureException, Err: err})
	}

	log.Debug("document rendered",
		zap.Int("code_blocks", len(page.Blocks)),
		zap.Int("headings", len(page.Headings)),
		zap.Int("toc_entries", len(page.TOC)),
	)
	return page
}

// Render converts src and augments the result synchronously.
func (p *Pipeline) Render(ctx context.Context, req Request, src string, hl *highlight.Highlighter) (*Page, error) {
	conv, err := p.conv.Convert(ctx, []byte(src))
	if err != nil {
		return nil, err
	}

	c, err := NewContainer()
	if err != nil {
		return nil, err
	}
	c.Inject(conv.HTML)

	blocks, err := c.AugmentCodeBlocks(conv.Blocks, hl)
	if err != nil {
		p.logger.Warn("code blocks left unhighlighted", zap.String("slug", req.Slug), zap.Error(err))
	}
	snippets := c.AttachCopyControls()
	headings := c.AugmentHeadings()
	toc := c.BuildTOC(p.tocMin)

	markup, err := c.Markup()
	if err != nil {
		return nil, fmt.Errorf("serializing document: %w", err)
	}

	return &Page{
		Slug:     req.Slug,
		Title:    conv.Title,
		HTML:     markup,
		Blocks:   blocks,
		Headings: headings,
		TOC:      toc,
		Snippets: snippets,
		IDs:      c.IDs(),
	}, nil
}

func (p *Pipeline) failed(req Request, f *Failure) *Page {
	page := &Page{Slug: req.Slug, Failure: f, IDs: map[string]struct{}{}}
	c, err := NewContainer()
	if err != nil {
		page.HTML = `<p class="` + ErrorClass + `" role="alert">` + f.Message() + `</p>`
		return page
	}
	c.Fail(f.Message())
	page.HTML, _ = c.Markup()
	return page
}
