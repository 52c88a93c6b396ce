package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/ziadkadry99/docpage/internal/content"
	"github.com/ziadkadry99/docpage/internal/interact"
	"github.com/ziadkadry99/docpage/internal/progress"
	"github.com/ziadkadry99/docpage/internal/render"
)

// Generator renders every library document into a static snapshot of the
// site. Snapshot pages carry no session; the page script copies snippets,
// tracks the active section and follows deep links on its own.
type Generator struct {
	// CopyWindow and DeepLinkDelay are handed to the page script.
	CopyWindow    time.Duration
	DeepLinkDelay time.Duration

	pipeline  *render.Pipeline
	library   *content.Library
	outputDir string
	basePath  string
	reporter  progress.Reporter
	logger    *zap.Logger
}

// NewGenerator creates a Generator writing to outputDir. reporter and logger
// may be nil.
func NewGenerator(pipeline *render.Pipeline, library *content.Library, outputDir, basePath string, reporter progress.Reporter, logger *zap.Logger) *Generator {
	if reporter == nil {
		reporter = progress.Discard{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		CopyWindow:    interact.DefaultCopyWindow,
		DeepLinkDelay: interact.DefaultDeepLinkDelay,

		pipeline:  pipeline,
		library:   library,
		outputDir: outputDir,
		basePath:  CleanBasePath(basePath),
		reporter:  reporter,
		logger:    logger,
	}
}

// Generate builds the snapshot. It returns the number of pages written; pages
// that failed to render are still written and reported in the joined error.
func (g *Generator) Generate(ctx context.Context) (int, error) {
	docs, err := g.library.List()
	if err != nil {
		return 0, err
	}
	if len(docs) == 0 {
		return 0, fmt.Errorf("no markdown documents found")
	}

	if err := g.writeAssets(ctx); err != nil {
		return 0, err
	}

	var index bytes.Buffer
	if err := indexTemplate.Execute(&index, indexData{Base: g.basePath, Documents: docs}); err != nil {
		return 0, fmt.Errorf("rendering index: %w", err)
	}
	if err := g.write("index.html", index.Bytes()); err != nil {
		return 0, err
	}

	g.reporter.Start(len(docs))
	defer g.reporter.Finish()

	var (
		failed []error
		n      int
	)
	for i, doc := range docs {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		g.reporter.Update(i+1, doc.Slug)

		page := g.pipeline.Mount(ctx, render.Request{Slug: doc.Slug})
		if !page.OK() {
			failed = append(failed, fmt.Errorf("%s: %s", doc.Slug, page.Failure.Message()))
		}
		if err := g.writePage(doc, page); err != nil {
			return n, err
		}
		if err := g.copySource(doc); err != nil {
			return n, err
		}
		n++
	}
	return n, errors.Join(failed...)
}

func (g *Generator) writePage(doc content.Document, page *render.Page) error {
	title := page.Title
	if title == "" {
		title = doc.Title
	}
	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, pageData{
		Title:      title,
		Base:       g.basePath,
		Body:       template.HTML(page.HTML),
		RootMargin: interact.RootMargin,

		CopyWindowMS:    millis(g.CopyWindow, interact.DefaultCopyWindow),
		DeepLinkDelayMS: millis(g.DeepLinkDelay, interact.DefaultDeepLinkDelay),
	})
	if err != nil {
		return fmt.Errorf("rendering %s: %w", doc.Slug, err)
	}
	return g.write(path.Join("view", doc.Slug, "index.html"), buf.Bytes())
}

func (g *Generator) copySource(doc content.Document) error {
	name := doc.Slug + ".md"
	data, err := fs.ReadFile(g.library.FS(), name)
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	return g.write(path.Join(content.DocsDir, name), data)
}

func (g *Generator) writeAssets(ctx context.Context) error {
	for src, dst := range map[string]string{
		"assets/docpage.js": "scripts/lib/docpage.js",
		"assets/style.css":  "assets/style.css",
	} {
		data, err := assets.ReadFile(src)
		if err != nil {
			return err
		}
		if err := g.write(dst, data); err != nil {
			return err
		}
	}

	hl, err := g.pipeline.Registry().Load(ctx)
	if err != nil {
		return err
	}
	var css bytes.Buffer
	if err := hl.WriteCSS(&css); err != nil {
		return fmt.Errorf("writing highlight css: %w", err)
	}
	return g.write("assets/chroma.css", css.Bytes())
}

// write stores data under the output directory at the slash-separated rel.
func (g *Generator) write(rel string, data []byte) error {
	dst := filepath.Join(g.outputDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return err
	}
	g.logger.Debug("wrote", zap.String("path", rel))
	return nil
}
