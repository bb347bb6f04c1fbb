// Package server implements the HTTP viewer and JSON API.
//
// The server exposes the case catalog, the element pipeline, and upload
// handling behind a chi router. All responses except the viewer page and
// rendered artifacts are JSON.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/HaomingX/KnowledgeCircuitVis/pkg/catalog"
	"github.com/HaomingX/KnowledgeCircuitVis/pkg/layout"
	"github.com/HaomingX/KnowledgeCircuitVis/pkg/pipeline"
	"github.com/HaomingX/KnowledgeCircuitVis/pkg/upload"
)

// shutdownTimeout bounds how long in-flight requests may run after the serve
// context is canceled.
const shutdownTimeout = 10 * time.Second

// Options configures a Server. Catalog, Uploads, and Runner are required.
type Options struct {
	Addr    string
	Catalog *catalog.Catalog
	Uploads upload.Store
	Runner  *pipeline.Runner
	Logger  *log.Logger

	// LayoutWidth and LayoutHeight are the drawing-area defaults applied
	// when a request does not pass width/height query parameters. Zero
	// falls back to the layout package defaults.
	LayoutWidth  float64
	LayoutHeight float64
}

// Server serves the viewer page and the JSON API.
type Server struct {
	addr    string
	catalog *catalog.Catalog
	uploads upload.Store
	runner  *pipeline.Runner
	logger  *log.Logger

	layoutWidth  float64
	layoutHeight float64
}

// New builds a Server from options.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	if opts.LayoutWidth <= 0 {
		opts.LayoutWidth = layout.DefaultWidth
	}
	if opts.LayoutHeight <= 0 {
		opts.LayoutHeight = layout.DefaultHeight
	}
	return &Server{
		addr:         opts.Addr,
		catalog:      opts.Catalog,
		uploads:      opts.Uploads,
		runner:       opts.Runner,
		logger:       logger,
		layoutWidth:  opts.LayoutWidth,
		layoutHeight: opts.LayoutHeight,
	}
}

// Handler builds the router. Exposed separately from Run for tests.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/", s.handlePage)
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/models", s.handleModels)
		r.Get("/models/{model}/cases", s.handleCases)
		r.Get("/models/{model}/cases/{case}/elements", s.handleCaseElements)
		r.Get("/models/{model}/cases/{case}/render", s.handleCaseRender)

		r.Post("/uploads", s.handleUpload)
		r.Get("/uploads/{id}/elements", s.handleUploadElements)
		r.Delete("/uploads/{id}", s.handleUploadDelete)
	})

	return r
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
