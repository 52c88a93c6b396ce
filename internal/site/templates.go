package site

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/ziadkadry99/docpage/internal/content"
)

//go:embed assets
var assets embed.FS

var (
	pageTemplate  = template.Must(template.ParseFS(assets, "assets/page.html"))
	indexTemplate = template.Must(template.ParseFS(assets, "assets/index.html"))
)

// pageData holds the data for rendering a document page.
type pageData struct {
	Title      string
	Base       string
	Body       template.HTML
	Session    string
	RootMargin string

	// Used by the page script when no session is connected.
	CopyWindowMS    int64
	DeepLinkDelayMS int64
}

// millis is d in milliseconds, or def when d is not positive.
func millis(d, def time.Duration) int64 {
	if d <= 0 {
		d = def
	}
	return d.Milliseconds()
}

// indexData holds the data for rendering the document index.
type indexData struct {
	Base      string
	Documents []content.Document
}

// serveAsset serves an embedded file with a fixed content type.
func serveAsset(name, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := assets.ReadFile(name)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "public, max-age=300")
		w.Write(data)
	}
}
