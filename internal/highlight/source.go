package highlight

import (
	"context"
	"fmt"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "github"

// ChromaSource resolves grammars from chroma's built-in lexer registry.
type ChromaSource struct {
	Style string
}

// Engine returns a class-based formatter that emits only token spans, so the
// output can replace the inner markup of an existing code element.
func (s ChromaSource) Engine(ctx context.Context) (*Engine, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := s.Style
	if name == "" {
		name = DefaultStyle
	}
	style, ok := styles.Registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}
	return &Engine{
		Formatter: chromahtml.New(
			chromahtml.WithClasses(true),
			chromahtml.PreventSurroundingPre(true),
		),
		Style: style,
	}, nil
}

// Grammar looks up the chroma lexer named by g.Lexer.
func (s ChromaSource) Grammar(ctx context.Context, g Grammar) (chroma.Lexer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	lexer := lexers.Get(g.Lexer)
	if lexer == nil {
		return nil, fmt.Errorf("%w: %s", ErrGrammarNotFound, g.Lexer)
	}
	return chroma.Coalesce(lexer), nil
}
