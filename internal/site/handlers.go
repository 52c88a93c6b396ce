package site

import (
	"bytes"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ziadkadry99/docpage/internal/content"
	"github.com/ziadkadry99/docpage/internal/interact"
	"github.com/ziadkadry99/docpage/internal/render"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	docs, err := s.library.List()
	if err != nil {
		s.logger.Error("listing documents", zap.Error(err))
		http.Error(w, "failed to list documents", http.StatusInternalServerError)
		return
	}
	s.writeTemplate(w, http.StatusOK, indexTemplate, indexData{Base: s.cfg.BasePath, Documents: docs})
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	slug, err := content.CleanSlug(chi.URLParam(r, "*"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	page := s.pipeline.Mount(r.Context(), render.Request{Slug: slug})

	data := pageData{
		Title:      page.Title,
		Base:       s.cfg.BasePath,
		Body:       template.HTML(page.HTML),
		RootMargin: interact.RootMargin,

		CopyWindowMS:    millis(s.cfg.CopyWindow, interact.DefaultCopyWindow),
		DeepLinkDelayMS: millis(s.cfg.DeepLinkDelay, interact.DefaultDeepLinkDelay),
	}
	if data.Title == "" {
		data.Title = path.Base(slug)
	}
	if page.OK() {
		data.Session = s.hub.Put(page)
	}
	s.writeTemplate(w, pageStatus(page), pageTemplate, data)
}

// pageStatus maps a mounted page onto a response status. A failed fetch
// passes a 404 through; every other failure is a bad gateway.
func pageStatus(page *render.Page) int {
	switch {
	case page.OK():
		return http.StatusOK
	case page.Failure.Kind == render.FailureStatus && page.Failure.Status == http.StatusNotFound:
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

func (s *Server) handleRawDocument(w http.ResponseWriter, r *http.Request) {
	rel := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if !strings.HasSuffix(rel, ".md") || !fs.ValidPath(rel) || !s.library.Allowed(rel) {
		http.NotFound(w, r)
		return
	}

	fsys := s.library.FS()
	if _, err := fs.Stat(fsys, rel); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "failed to read document", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	http.ServeFileFS(w, r, fsys, rel)
}

func (s *Server) handleChromaCSS(w http.ResponseWriter, r *http.Request) {
	hl, err := s.pipeline.Registry().Load(r.Context())
	if err != nil {
		s.logger.Error("loading highlighter", zap.Error(err))
		http.Error(w, "highlighter unavailable", http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	if err := hl.WriteCSS(w); err != nil {
		s.logger.Debug("writing highlight css", zap.Error(err))
	}
}

func (s *Server) writeTemplate(w http.ResponseWriter, status int, tmpl *template.Template, data any) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		s.logger.Error("executing template", zap.String("template", tmpl.Name()), zap.Error(err))
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
