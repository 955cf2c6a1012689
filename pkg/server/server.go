// Package server serves the portfolio site and its JSON API over HTTP.
//
// Pages are rendered by package site from content served by a [cms.Source].
// The API exposes the project index, the home grid for any viewport width,
// the raw layout engine, and the video-link classifier.
//
//	srv, err := server.New(cfg, source, cache, logger)
//	if err != nil {
//	    return err
//	}
//	return srv.Run(ctx)
package server

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/scaduxx/folio/pkg/cache"
	"github.com/scaduxx/folio/pkg/cms"
	"github.com/scaduxx/folio/pkg/config"
	"github.com/scaduxx/folio/pkg/errors"
	"github.com/scaduxx/folio/pkg/pipeline"
	"github.com/scaduxx/folio/pkg/site"
)

// Server is the portfolio HTTP server.
type Server struct {
	cfg    config.Config
	source cms.Source
	site   *site.Site
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New builds a server. c caches layouts and rendered grids and may be nil.
func New(cfg config.Config, source cms.Source, c cache.Cache, logger *log.Logger) (*Server, error) {
	if source == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "server requires a content source")
	}
	if logger == nil {
		logger = log.Default()
	}
	pages, err := site.New(cfg.Site)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:    cfg,
		source: source,
		site:   pages,
		runner: pipeline.NewRunner(c, nil, logger),
		logger: logger,
	}
	s.router = s.routes()
	return s, nil
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	if t := s.cfg.Server.RequestTimeout.Duration; t > 0 {
		r.Use(middleware.Timeout(t))
	}

	r.Get("/", s.handleHome)
	r.Get("/about", s.handleAbout)
	r.Get("/contact", s.handleContact)
	r.Post("/contact", s.handleContactSubmit)
	r.Get("/lab", s.handleLab)
	r.Get("/projects/{slug}", s.handleProject)
	r.Get("/go/{dir}/{slug}", s.handleGo)
	r.Get("/grid.svg", s.handleGridSVG)
	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/projects", s.handleProjects)
		r.Get("/grid", s.handleGrid)
		r.Post("/layout", s.handleLayout)
		r.Get("/embed", s.handleEmbed)
	})

	if dir := s.cfg.Server.Static; dir != "" {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(dir))))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.pageError(w, r, errors.New(errors.ErrCodeNotFound, "page not found"))
	})
	return r
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.cfg.Server.Addr)
	if err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "listen on %s", s.cfg.Server.Addr)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully within the configured shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadTimeout:       s.cfg.Server.ReadTimeout.Duration,
		ReadHeaderTimeout: s.cfg.Server.ReadTimeout.Duration,
		WriteTimeout:      s.cfg.Server.WriteTimeout.Duration,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving", "addr", ln.Addr().String(), "source", s.source.Name())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	timeout := s.cfg.Server.ShutdownTimeout.Duration
	if timeout <= 0 {
		timeout = config.DefaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
