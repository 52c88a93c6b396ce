// Package highlight owns the syntax highlighting engine and the set of
// grammars loaded for a page. Grammars are loaded once per Registry and
// reused for every document rendered afterwards.
package highlight

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"golang.org/x/sync/errgroup"
)

var (
	ErrGrammarNotFound = errors.New("grammar not found")
	ErrStyleNotFound   = errors.New("highlight style not found")
)

// Grammar names a canonical language and the engine lexer that implements it.
type Grammar struct {
	Name  string
	Lexer string
}

// Manifest is the fixed set of grammars every Registry loads.
var Manifest = []Grammar{
	{Name: "markup", Lexer: "html"},
	{Name: "css", Lexer: "css"},
	{Name: "javascript", Lexer: "javascript"},
	{Name: "typescript", Lexer: "typescript"},
	{Name: "bash", Lexer: "bash"},
	{Name: "json", Lexer: "json"},
	{Name: "yaml", Lexer: "yaml"},
}

// Engine is the formatter and style pair used to produce highlighted markup.
type Engine struct {
	Formatter *chromahtml.Formatter
	Style     *chroma.Style
}

// Source resolves the engine and individual grammars.
type Source interface {
	Engine(ctx context.Context) (*Engine, error)
	Grammar(ctx context.Context, g Grammar) (chroma.Lexer, error)
}

// Registry lazily loads the engine and grammars exactly once.
type Registry struct {
	source Source
	extra  []Grammar

	mu     sync.Mutex
	loaded bool
	hl     *Highlighter
}

// NewRegistry creates a Registry. Extra grammar names are loaded in addition
// to the Manifest, using the name as the lexer name.
func NewRegistry(source Source, extra ...string) *Registry {
	r := &Registry{source: source}
	for _, name := range extra {
		name = Normalize(name)
		if inManifest(name) {
			continue
		}
		r.extra = append(r.extra, Grammar{Name: name, Lexer: name})
	}
	return r
}

func inManifest(name string) bool {
	for _, g := range Manifest {
		if g.Name == name {
			return true
		}
	}
	return false
}

// Load returns the loaded Highlighter, loading it first if needed.
// A failed load leaves the registry unloaded.
func (r *Registry) Load(ctx context.Context) (*Highlighter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.loaded {
		return r.hl, nil
	}

	engine, err := r.source.Engine(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading highlight engine: %w", err)
	}

	grammars := append(append([]Grammar(nil), Manifest...), r.extra...)
	lexers := make([]chroma.Lexer, len(grammars))

	g, gctx := errgroup.WithContext(ctx)
	for i, gr := range grammars {
		g.Go(func() error {
			lexer, err := r.source.Grammar(gctx, gr)
			if err != nil {
				return fmt.Errorf("loading grammar %s: %w", gr.Name, err)
			}
			lexers[i] = lexer
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	hl := &Highlighter{engine: engine, grammars: make(map[string]chroma.Lexer, len(grammars))}
	for i, gr := range grammars {
		hl.grammars[gr.Name] = lexers[i]
	}

	r.hl = hl
	r.loaded = true
	return hl, nil
}

// Loaded reports whether Load has completed successfully.
func (r *Registry) Loaded() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loaded
}

// Highlighter is an immutable snapshot of a loaded engine and its grammars.
type Highlighter struct {
	engine   *Engine
	grammars map[string]chroma.Lexer
}

// Grammar returns the lexer for a canonical language name.
func (h *Highlighter) Grammar(lang string) (chroma.Lexer, bool) {
	lexer, ok := h.grammars[lang]
	return lexer, ok
}

// Languages returns the number of loaded grammars.
func (h *Highlighter) Languages() int { return len(h.grammars) }

// Highlight renders code as highlighted inline markup for the given canonical
// language. The boolean is false when no grammar is loaded for lang.
func (h *Highlighter) Highlight(lang, code string) (string, bool, error) {
	lexer, ok := h.Grammar(lang)
	if !ok {
		return "", false, nil
	}
	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", false, fmt.Errorf("tokenising %s: %w", lang, err)
	}
	var buf bytes.Buffer
	if err := h.engine.Formatter.Format(&buf, h.engine.Style, it); err != nil {
		return "", false, fmt.Errorf("formatting %s: %w", lang, err)
	}
	return buf.String(), true, nil
}

// WriteCSS writes the stylesheet for the engine's token classes.
func (h *Highlighter) WriteCSS(w io.Writer) error {
	return h.engine.Formatter.WriteCSS(w, h.engine.Style)
}
