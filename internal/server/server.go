package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/folio/internal/models"
	"github.com/desertthunder/folio/internal/shared"
	"github.com/go-chi/chi/v5"
)

// Portfolio is the view surface the server renders. The application
// controller satisfies this.
type Portfolio interface {
	// Menu returns the home navigation menu node tree.
	Menu() models.Node
	// Grid returns the rendered grid and display name for a category,
	// reporting whether the category exists.
	Grid(ctx context.Context, category string) (models.Node, string, bool)
	// Categories returns the non-reserved category records.
	Categories() []*models.Category
}

// Renderer turns a titled node tree into a response body. The formatter
// package provides the production implementation.
type Renderer func(title string, node models.Node) ([]byte, error)

// Server hosts the portfolio views and the asset tree.
type Server struct {
	cfg       shared.ServerConfig
	portfolio Portfolio
	render    Renderer
	assetDir  string
	logger    *log.Logger
	router    chi.Router
}

// New creates a server for the given portfolio and asset directory.
func New(cfg shared.ServerConfig, portfolio Portfolio, render Renderer, assetDir string, logger *log.Logger) *Server {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	s := &Server{
		cfg:       cfg,
		portfolio: portfolio,
		render:    render,
		assetDir:  assetDir,
		logger:    logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(Recovery(s.logger))
	r.Use(Logger(s.logger))
	r.Use(Session)

	r.Get("/", s.handleHome)

	r.Route("/api", func(r chi.Router) {
		r.Get("/categories", s.handleCategories)
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	assets := &assetHandler{
		dir:      s.assetDir,
		fallback: http.HandlerFunc(s.handleHome),
	}
	r.Handle("/assets/*", http.StripPrefix("/assets", assets))

	r.Get("/{category}", s.handleCategory)

	return r
}

// ServeHTTP implements http.Handler for the whole server.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Addr(),
		Handler: s.router,
	}

	errs := make(chan error, 1)
	go func() {
		s.logger.Info("serving portfolio", "addr", s.cfg.Addr())
		errs <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errs:
		return err
	}
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.respondHTML(w, "Portfolio", s.portfolio.Menu())
}

func (s *Server) handleCategory(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "category")

	grid, displayName, ok := s.portfolio.Grid(r.Context(), name)
	if !ok {
		// Unknown categories fall back to the home document, matching
		// the client router's policy for stale links.
		s.logger.Warn("unknown category requested", "category", name)
		s.handleHome(w, r)
		return
	}

	s.respondHTML(w, displayName, grid)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.portfolio.Categories())
}

func (s *Server) respondHTML(w http.ResponseWriter, title string, node models.Node) {
	data, err := s.render(title, node)
	if err != nil {
		s.logger.Error("render failed", "title", title, "err", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encoding JSON response", "err", err)
	}
}
