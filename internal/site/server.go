// Package site serves rendered documents over HTTP together with the page
// script and the interaction socket each page connects back to.
package site

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ziadkadry99/docpage/internal/content"
	"github.com/ziadkadry99/docpage/internal/interact"
	"github.com/ziadkadry99/docpage/internal/render"
)

// Config holds server configuration.
type Config struct {
	Port          int
	BasePath      string        // URL prefix the site is mounted under
	AllowAll      bool          // allow all CORS and websocket origins (dev mode)
	CopyWindow    time.Duration // copied label duration
	DeepLinkDelay time.Duration // delay before the initial fragment scroll
}

// Server is the documentation site.
type Server struct {
	cfg        Config
	pipeline   *render.Pipeline
	library    *content.Library
	hub        *Hub
	logger     *zap.Logger
	upgrader   websocket.Upgrader
	router     chi.Router
	httpServer *http.Server
}

// New creates a site server rendering documents with pipeline. Raw documents
// and the index come from library.
func New(cfg Config, pipeline *render.Pipeline, library *content.Library, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg.BasePath = CleanBasePath(cfg.BasePath)

	s := &Server{
		cfg:      cfg,
		pipeline: pipeline,
		library:  library,
		hub:      NewHub(DefaultClaimTTL),
		logger:   logger,
	}
	if cfg.AllowAll {
		s.upgrader.CheckOrigin = func(r *http.Request) bool { return true }
	}
	s.router = s.buildRouter()
	return s
}

// CleanBasePath normalizes a mount prefix to "" or "/segment[/...]" with no
// trailing slash.
func CleanBasePath(base string) string {
	base = strings.Trim(strings.TrimSpace(base), "/")
	if base == "" {
		return ""
	}
	return "/" + base
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	corsOpts := cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	routes := func(r chi.Router) {
		// The socket outlives any request timeout.
		r.Get("/ws", s.handleSocket)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))
			r.Get("/", s.handleIndex)
			r.Get("/view/*", s.handleView)
			r.Get("/docs/*", s.handleRawDocument)
			r.Get("/scripts/lib/docpage.js", serveAsset("assets/docpage.js", "text/javascript; charset=utf-8"))
			r.Get("/assets/style.css", serveAsset("assets/style.css", "text/css; charset=utf-8"))
			r.Get("/assets/chroma.css", s.handleChromaCSS)
		})
	}
	if s.cfg.BasePath == "" {
		routes(r)
	} else {
		r.Route(s.cfg.BasePath, routes)
	}
	return r
}

// requestLogger logs one line per request with zap.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.Info("request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("duration", time.Since(start)),
					zap.String("request_id", middleware.GetReqID(r.Context())),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

// Router returns the chi router.
func (s *Server) Router() chi.Router { return s.router }

// Hub returns the page hub sessions are claimed from.
func (s *Server) Hub() *Hub { return s.hub }

func (s *Server) sessionOptions() interact.Options {
	return interact.Options{
		CopyWindow:    s.cfg.CopyWindow,
		DeepLinkDelay: s.cfg.DeepLinkDelay,
		Logger:        s.logger,
	}
}

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.logger.Info("docpage listening", zap.String("addr", addr), zap.String("base_path", s.cfg.BasePath))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
