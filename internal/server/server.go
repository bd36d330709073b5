// Package server exposes bstviz over HTTP.
//
// Routes:
//
//	POST   /api/sessions                         start a demo
//	GET    /api/sessions/{id}                    current state
//	DELETE /api/sessions/{id}                    forget a demo
//	POST   /api/sessions/{id}/step               one insertion step
//	POST   /api/sessions/{id}/finish             insert everything left
//	POST   /api/sessions/{id}/reset              discard the tree, keep the values
//	POST   /api/sessions/{id}/bounds             re-lay-out for a new width and height
//	POST   /api/sessions/{id}/values             append values
//	DELETE /api/sessions/{id}/values/{value}     delete a value
//	GET    /api/sessions/{id}/traversals/{order} traversal sequence
//	GET    /api/sessions/{id}/svg                current tree as SVG
//	POST   /api/render                           one-shot render pipeline
//	GET    /healthz
//	GET    /metrics
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/bstviz/pkg/buildinfo"
	"github.com/matzehuels/bstviz/pkg/httputil"
	"github.com/matzehuels/bstviz/pkg/pipeline"
	"github.com/matzehuels/bstviz/pkg/session"
)

// Server timeouts.
const (
	readTimeout     = 15 * time.Second
	writeTimeout    = 60 * time.Second
	idleTimeout     = 120 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Config holds server settings.
type Config struct {
	Addr string

	// Frame used for sessions that do not specify one.
	Width  float64
	Height float64
	Radius float64

	// CleanupInterval is how often idle sessions are evicted.
	CleanupInterval time.Duration
}

// Server serves the HTTP API.
type Server struct {
	cfg     Config
	store   *session.Store
	runner  *pipeline.Runner
	metrics http.Handler
	logger  *log.Logger
}

// New creates a server. A nil metrics handler disables /metrics.
func New(cfg Config, store *session.Store, runner *pipeline.Runner, metrics http.Handler, logger *log.Logger) *Server {
	if cfg.Width == 0 {
		cfg.Width = pipeline.DefaultWidth
	}
	if cfg.Height == 0 {
		cfg.Height = pipeline.DefaultHeight
	}
	if cfg.Radius == 0 {
		cfg.Radius = pipeline.DefaultRadius
	}
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	if store == nil {
		store = session.NewStore(session.WithLogger(logger))
	}
	return &Server{cfg: cfg, store: store, runner: runner, metrics: metrics, logger: logger}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/render", s.handleRender)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", s.handleCreateSession)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetSession)
				r.Delete("/", s.handleDeleteSession)
				r.Post("/step", s.handleStep)
				r.Post("/finish", s.handleFinish)
				r.Post("/reset", s.handleReset)
				r.Post("/bounds", s.handleBounds)
				r.Post("/values", s.handleAddValues)
				r.Delete("/values/{value}", s.handleDeleteValue)
				r.Get("/traversals/{order}", s.handleTraversal)
				r.Get("/svg", s.handleSessionSVG)
			})
		})
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	go s.store.Run(ctx, s.cfg.CleanupInterval)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.store.Len(),
		"build":    buildinfo.Get(),
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
