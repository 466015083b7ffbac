// Package api exposes the docpipe pipeline over HTTP.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gaurav-prasanna/docpipe/config"
	"github.com/gaurav-prasanna/docpipe/core"
	"github.com/gaurav-prasanna/docpipe/core/pipeline"
	"github.com/gaurav-prasanna/docpipe/core/render"
)

// Server is the HTTP API server for docpipe.
type Server struct {
	router    chi.Router
	processor *pipeline.Processor
	renderers map[string]core.Renderer
	log       *slog.Logger
	cfg       config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(processor *pipeline.Processor, log *slog.Logger, cfg config.Config) *Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		processor: processor,
		renderers: map[string]core.Renderer{
			"html":     render.NewHTMLRenderer(),
			"markdown": render.NewMarkdownRenderer(),
			"json":     render.NewJSONRenderer(),
		},
		log: log,
		cfg: cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Post("/api/process", s.handleProcess)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
