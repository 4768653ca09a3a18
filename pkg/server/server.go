// Package server provides a public API for embedding the collocation catalog
// service.
package server

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rkm/sar-coloc/internal/api"
	"github.com/rkm/sar-coloc/internal/catalog"
	"github.com/rkm/sar-coloc/internal/config"
)

// Options configures an embedded catalog server.
type Options struct {
	// RootsDir is a directory of JSON sensor root definitions.
	// Default: "" (uses the built-in archive registry).
	RootsDir string

	// PeriodicStep is the cursor cadence for periodic (reanalysis) archives.
	// Default: 60m.
	PeriodicStep time.Duration

	// Lister is the discovery collaborator.
	// Default: catalog.GlobLister (local filesystem).
	Lister catalog.Lister

	// Logger is the slog logger to use.
	// Default: slog.Default()
	Logger *slog.Logger
}

// Server is a collocation catalog server that can be embedded in another
// application.
type Server struct {
	router chi.Router
	roots  *config.RootRegistry
}

// New creates a new catalog server with the given options.
func New(opts Options) (*Server, error) {
	if opts.PeriodicStep == 0 {
		opts.PeriodicStep = catalog.DefaultPeriodicStep
	}
	if opts.Lister == nil {
		opts.Lister = catalog.GlobLister{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	roots := config.DefaultRoots()
	if opts.RootsDir != "" {
		loaded, err := config.LoadRoots(opts.RootsDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load sensor roots: %w", err)
		}
		roots = loaded
	}

	cfg := &config.Config{
		Catalog: config.CatalogConfig{
			RootsDir:     opts.RootsDir,
			PeriodicStep: opts.PeriodicStep,
		},
	}

	resolver := catalog.NewResolver(roots, opts.Lister, opts.Logger).
		WithPeriodicStep(opts.PeriodicStep)

	handlers := api.NewHandlers(cfg, resolver, roots, opts.Logger)
	router := api.NewRouter(handlers, opts.Logger)

	return &Server{
		router: router,
		roots:  roots,
	}, nil
}

// Router returns the chi.Router for mounting in another application.
func (s *Server) Router() chi.Router {
	return s.router
}

// Sensors returns the registered sensor names.
func (s *Server) Sensors() []string {
	return s.roots.Sensors()
}
