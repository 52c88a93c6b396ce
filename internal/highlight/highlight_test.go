package highlight

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"", "javascript"},
		{"   ", "javascript"},
		{"js", "javascript"},
		{" JS ", "javascript"},
		{"ts", "typescript"},
		{"html", "markup"},
		{"XML", "markup"},
		{"sh", "bash"},
		{"shell", "bash"},
		{"yml", "yaml"},
		{"json", "json"},
		{"css", "css"},
		{"go", "go"},
		{"Python", "python"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.input), "Normalize(%q)", tt.input)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"", "js", "ts", "html", "svg", "zsh", "yml", "jsonc", "rust", "Markup"}
	for alias := range aliases {
		inputs = append(inputs, alias)
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "Normalize not idempotent for %q", in)
	}
}

func TestAliasTargetsAreNotAliases(t *testing.T) {
	for alias, target := range aliases {
		_, isAlias := aliases[target]
		assert.False(t, isAlias, "alias %q maps to %q which is itself an alias", alias, target)
	}
}

// countingSource wraps ChromaSource and counts loads.
type countingSource struct {
	ChromaSource
	engines  atomic.Int32
	grammars atomic.Int32
	fail     string
}

func (s *countingSource) Engine(ctx context.Context) (*Engine, error) {
	s.engines.Add(1)
	return s.ChromaSource.Engine(ctx)
}

func (s *countingSource) Grammar(ctx context.Context, g Grammar) (chroma.Lexer, error) {
	s.grammars.Add(1)
	if g.Name == s.fail {
		return nil, ErrGrammarNotFound
	}
	return s.ChromaSource.Grammar(ctx, g)
}

func TestRegistryLoadsOnce(t *testing.T) {
	src := &countingSource{}
	reg := NewRegistry(src)

	first, err := reg.Load(context.Background())
	require.NoError(t, err)
	second, err := reg.Load(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), src.engines.Load())
	assert.Equal(t, int32(len(Manifest)), src.grammars.Load())
	assert.True(t, reg.Loaded())
}

func TestRegistryConcurrentLoad(t *testing.T) {
	src := &countingSource{}
	reg := NewRegistry(src)

	var wg sync.WaitGroup
	results := make([]*Highlighter, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hl, err := reg.Load(context.Background())
			assert.NoError(t, err)
			results[i] = hl
		}()
	}
	wg.Wait()

	for _, hl := range results {
		assert.Same(t, results[0], hl)
	}
	assert.Equal(t, int32(1), src.engines.Load())
}

func TestRegistryLoadFailure(t *testing.T) {
	src := &countingSource{fail: "bash"}
	reg := NewRegistry(src)

	_, err := reg.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGrammarNotFound))
	assert.False(t, reg.Loaded())
}

func TestRegistryExtraGrammars(t *testing.T) {
	reg := NewRegistry(ChromaSource{}, "go", "js", "python")
	hl, err := reg.Load(context.Background())
	require.NoError(t, err)

	_, ok := hl.Grammar("go")
	assert.True(t, ok)
	_, ok = hl.Grammar("python")
	assert.True(t, ok)
	// "js" normalizes to a manifest grammar and is not loaded twice.
	assert.Equal(t, len(Manifest)+2, hl.Languages())
}

func TestRegistryUnknownExtraGrammar(t *testing.T) {
	reg := NewRegistry(ChromaSource{}, "definitely-not-a-language")
	_, err := reg.Load(context.Background())
	assert.ErrorIs(t, err, ErrGrammarNotFound)
}

func TestChromaSourceUnknownStyle(t *testing.T) {
	_, err := ChromaSource{Style: "no-such-style"}.Engine(context.Background())
	assert.ErrorIs(t, err, ErrStyleNotFound)
}

func TestManifestLoadsFromChroma(t *testing.T) {
	hl, err := NewRegistry(ChromaSource{}).Load(context.Background())
	require.NoError(t, err)
	for _, g := range Manifest {
		_, ok := hl.Grammar(g.Name)
		assert.True(t, ok, "grammar %s not loaded", g.Name)
	}
}

func TestHighlight(t *testing.T) {
	hl, err := NewRegistry(ChromaSource{}).Load(context.Background())
	require.NoError(t, err)

	code := "const x = 1;\n"
	out, ok, err := hl.Highlight("javascript", code)
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotEqual(t, code, out)
	assert.Contains(t, out, `<span class="`)
	assert.NotContains(t, out, "<pre")

	_, ok, err = hl.Highlight("cobol", "DISPLAY 'HI'.")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWriteCSS(t *testing.T) {
	hl, err := NewRegistry(ChromaSource{Style: "monokai"}).Load(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, hl.WriteCSS(&buf))
	assert.True(t, strings.Contains(buf.String(), ".chroma"))
}
