package content

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentPath(t *testing.T) {
	tests := []struct {
		base, slug, want string
	}{
		{"", "install", "/docs/install.md"},
		{"/sdk", "install", "/sdk/docs/install.md"},
		{"/sdk/", "/guides/setup/", "/sdk/docs/guides/setup.md"},
		{"", "install.md", "/docs/install.md"},
		{"", "with space", "/docs/with%20space.md"},
	}
	for _, tt := range tests {
		got, err := DocumentPath(tt.base, tt.slug)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "DocumentPath(%q, %q)", tt.base, tt.slug)
	}
}

func TestCleanSlugRejects(t *testing.T) {
	for _, slug := range []string{"", "  ", "/", "../secret", "a/../b", "a//b", "./x"} {
		_, err := CleanSlug(slug)
		assert.ErrorIs(t, err, ErrInvalidSlug, "slug %q", slug)
	}
}

func TestHTTPLoaderFetch(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if r.URL.Path == "/base/docs/missing.md" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("# Hello"))
	}))
	defer srv.Close()

	loader := NewHTTPLoader(srv.Client(), srv.URL, "/base")

	resp, err := loader.Fetch(context.Background(), "intro")
	require.NoError(t, err)
	assert.Equal(t, "/base/docs/intro.md", gotPath)
	assert.True(t, resp.OK)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "# Hello", resp.Body)

	resp, err = loader.Fetch(context.Background(), "missing")
	require.NoError(t, err, "non-success status must not be an error")
	assert.False(t, resp.OK)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHTTPLoaderTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPLoader(nil, url, "").Fetch(context.Background(), "intro")
	assert.Error(t, err)
}

func TestDirLoader(t *testing.T) {
	fsys := fstest.MapFS{
		"intro.md":        {Data: []byte("# Intro")},
		"guides/setup.md": {Data: []byte("# Setup")},
	}
	loader := NewDirLoader(fsys)

	resp, err := loader.Fetch(context.Background(), "guides/setup")
	require.NoError(t, err)
	assert.True(t, resp.OK)
	assert.Equal(t, "# Setup", resp.Body)

	resp, err = loader.Fetch(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, resp.OK)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	_, err = loader.Fetch(context.Background(), "../etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidSlug)
}

func TestLibraryList(t *testing.T) {
	fsys := fstest.MapFS{
		"intro.md":         {Data: []byte("Some preface\n\n# Introduction\n\nBody")},
		"guides/setup.md":  {Data: []byte("no heading here")},
		"drafts/wip.md":    {Data: []byte("# WIP")},
		"assets/logo.png":  {Data: []byte{0x89}},
		"guides/notes.txt": {Data: []byte("ignored")},
	}
	lib := NewLibrary(fsys, nil, []string{"drafts/**"})

	docs, err := lib.List()
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, Document{Slug: "guides/setup", Title: "setup"}, docs[0])
	assert.Equal(t, Document{Slug: "intro", Title: "Introduction"}, docs[1])
}

func TestLibraryTitleSkipsCodeBlocks(t *testing.T) {
	fsys := fstest.MapFS{
		"install.md":  {Data: []byte("Intro text\n\n```bash\n# install the client\nnpm i x\n```\n\n# Installation\n")},
		"indented.md": {Data: []byte("Example:\n\n    # not a title\n\n## Usage\n\n# Indented *Code*\n")},
		"setext.md":   {Data: []byte("Getting Started\n===============\n\nBody\n")},
	}
	docs, err := NewLibrary(fsys, nil, nil).List()
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "Indented Code", docs[0].Title)
	assert.Equal(t, "Installation", docs[1].Title)
	assert.Equal(t, "Getting Started", docs[2].Title)
}

func TestTitle(t *testing.T) {
	tests := []struct {
		src, want string
	}{
		{"# Hello", "Hello"},
		{"# Custom {#custom-id}", "Custom"},
		{"## Only second level", ""},
		{"```\n# fenced\n```", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Title([]byte(tt.src)), tt.src)
	}
}

func TestLibraryAllowed(t *testing.T) {
	lib := NewLibrary(fstest.MapFS{}, []string{"guides/**"}, []string{"**/private-*.md"})
	assert.True(t, lib.Allowed("guides/setup.md"))
	assert.True(t, lib.Allowed("/guides/deep/x.md"))
	assert.False(t, lib.Allowed("intro.md"))
	assert.False(t, lib.Allowed("guides/private-keys.md"))

	// Patterns without a directory part also match the base name.
	partials := NewLibrary(fstest.MapFS{}, nil, []string{"_*.md"})
	assert.False(t, partials.Allowed("guides/deep/_snippet.md"))
	assert.True(t, partials.Allowed("guides/deep/snippet.md"))
}
