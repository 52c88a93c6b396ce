package site

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/ziadkadry99/docpage/internal/content"
	"github.com/ziadkadry99/docpage/internal/highlight"
	"github.com/ziadkadry99/docpage/internal/render"
)

type countingReporter struct {
	total, updates int
	finished       bool
}

func (r *countingReporter) Start(total int)    { r.total = total }
func (r *countingReporter) Update(int, string) { r.updates++ }
func (r *countingReporter) Finish()            { r.finished = true }

func newGenerator(t *testing.T, docs fstest.MapFS, reporter *countingReporter) (*Generator, string) {
	t.Helper()
	out := t.TempDir()
	lib := content.NewLibrary(docs, nil, []string{"private/**"})
	p := render.New(content.NewDirLoader(docs), highlight.NewRegistry(highlight.ChromaSource{}))
	return NewGenerator(p, lib, out, "", reporter, nil), out
}

func readOutput(t *testing.T, dir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("reading %s: %v", rel, err)
	}
	return string(data)
}

func TestFullSiteGeneration(t *testing.T) {
	rep := &countingReporter{}
	g, out := newGenerator(t, testDocs(), rep)

	n, err := g.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 pages, got %d", n)
	}
	if rep.total != 2 || rep.updates != 2 || !rep.finished {
		t.Errorf("unexpected progress %+v", rep)
	}

	page := readOutput(t, out, "view/guide/index.html")
	for _, want := range []string{`class="doc-toc"`, `class="language-javascript"`, `data-session=""`} {
		if !strings.Contains(page, want) {
			t.Errorf("guide page missing %q", want)
		}
	}

	if got := readOutput(t, out, "docs/guide.md"); got != guide {
		t.Errorf("raw copy differs: %q", got)
	}
	if !strings.Contains(readOutput(t, out, "index.html"), `href="/view/api/client"`) {
		t.Error("index missing client link")
	}
	if !strings.Contains(readOutput(t, out, "assets/chroma.css"), ".chroma") {
		t.Error("chroma.css missing")
	}
	for _, rel := range []string{"assets/style.css", "scripts/lib/docpage.js"} {
		readOutput(t, out, rel)
	}
	if _, err := os.Stat(filepath.Join(out, "view", "private")); !os.IsNotExist(err) {
		t.Error("excluded document was generated")
	}
}

func TestSnapshotPagesWorkWithoutSession(t *testing.T) {
	g, out := newGenerator(t, testDocs(), &countingReporter{})
	g.CopyWindow = 3 * time.Second
	g.DeepLinkDelay = 250 * time.Millisecond
	if _, err := g.Generate(context.Background()); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	page := readOutput(t, out, "view/guide/index.html")
	for _, want := range []string{
		`data-session=""`,
		`<script src="/scripts/lib/docpage.js"`,
		`class="copy-btn"`,
		`data-copy-window="3000"`,
		`data-deep-link-delay="250"`,
		`data-root-margin="0px 0px -60% 0px"`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("snapshot page missing %q", want)
		}
	}

	// Without a session the script copies, scrolls and tracks on its own.
	script := readOutput(t, out, "scripts/lib/docpage.js")
	for _, want := range []string{"copyLocally(btn)", "scrollToId(id, true, true)", "deepLinkLocally()", "markActive(entry.target.id)"} {
		if !strings.Contains(script, want) {
			t.Errorf("page script missing %q", want)
		}
	}
}

func TestGenerateNoFiles(t *testing.T) {
	g, _ := newGenerator(t, fstest.MapFS{"notes.txt": {Data: []byte("x")}}, &countingReporter{})
	if _, err := g.Generate(context.Background()); err == nil {
		t.Fatal("expected error for empty library")
	}
}

func TestGenerateCanceled(t *testing.T) {
	g, _ := newGenerator(t, testDocs(), &countingReporter{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := g.Generate(ctx); err == nil {
		t.Fatal("expected error for canceled context")
	}
}
