// Package server exposes graphs and runs over HTTP. Graphs are
// uploaded once and referenced by id; runs materialize full traces
// that clients replay step by step, so the server never holds
// algorithm state beyond the stored sequences.
package server

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/Aryan-jain07/path-weaver/pkg/config"
	"github.com/Aryan-jain07/path-weaver/pkg/engine"
	"github.com/Aryan-jain07/path-weaver/pkg/graph"
	"github.com/Aryan-jain07/path-weaver/pkg/policy"
	"github.com/Aryan-jain07/path-weaver/pkg/trace"
	"github.com/Aryan-jain07/path-weaver/pkg/version"
)

// StoredGraph is one uploaded graph with its metadata.
type StoredGraph struct {
	ID      string
	Name    string
	Graph   *graph.Graph
	Created time.Time
}

// StoredRun is one materialized trace with its metadata.
type StoredRun struct {
	ID      string
	GraphID string
	Trace   *trace.Trace
	Created time.Time
}

// Server owns the in-memory stores and the HTTP handlers.
type Server struct {
	cfg    config.Config
	logger *slog.Logger
	runner *engine.Runner
	gate   *policy.Gate

	mu       sync.RWMutex
	graphs   map[string]*StoredGraph
	runs     map[string]*StoredRun
	runOrder []string
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithGate sets the admission gate. Without one every request is
// admitted.
func WithGate(g *policy.Gate) Option {
	return func(s *Server) { s.gate = g }
}

// WithRunner sets the engine runner.
func WithRunner(r *engine.Runner) Option {
	return func(s *Server) {
		if r != nil {
			s.runner = r
		}
	}
}

// New builds a server around the given configuration.
func New(cfg config.Config, opts ...Option) *Server {
	s := &Server{
		cfg:    cfg,
		logger: slog.Default(),
		graphs: make(map[string]*StoredGraph),
		runs:   make(map[string]*StoredRun),
	}
	for _, o := range opts {
		o(s)
	}
	if s.runner == nil {
		s.runner = engine.New(engine.WithLogger(s.logger))
	}
	return s
}

// App builds the fiber application with all routes registered.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{AppName: version.AppName})
	s.routes(app)
	return app
}

// Listen serves the API on the configured address until failure.
func (s *Server) Listen() error {
	s.logger.Info("listening", "addr", s.cfg.Server.Listen)
	return s.App().Listen(s.cfg.Server.Listen)
}

func (s *Server) routes(app *fiber.App) {
	api := app.Group("/api")

	api.Post("/graphs", s.createGraph)
	api.Get("/graphs", s.listGraphs)
	api.Get("/graphs/:id", s.getGraph)
	api.Delete("/graphs/:id", s.deleteGraph)
	api.Get("/graphs/:id/stats", s.graphStats)
	api.Get("/graphs/:id/export", s.exportGraph)
	api.Post("/graphs/:id/runs", s.createRun)

	api.Get("/runs", s.listRuns)
	api.Get("/runs/:id", s.getRun)
	api.Delete("/runs/:id", s.deleteRun)
	api.Get("/runs/:id/steps/:index", s.getStep)
	api.Get("/runs/:id/dot", s.runDOT)

	api.Get("/pseudocode/:algorithm", s.pseudocode)
	api.Get("/healthz", s.health)
}

// storeGraph registers g and returns its id.
func (s *Server) storeGraph(name string, g *graph.Graph) *StoredGraph {
	sg := &StoredGraph{
		ID:      uuid.NewString(),
		Name:    name,
		Graph:   g,
		Created: time.Now().UTC(),
	}
	s.mu.Lock()
	s.graphs[sg.ID] = sg
	s.mu.Unlock()
	return sg
}

// storeRun registers tr, evicting the oldest run beyond the retention
// cap.
func (s *Server) storeRun(graphID string, tr *trace.Trace) *StoredRun {
	sr := &StoredRun{
		ID:      uuid.NewString(),
		GraphID: graphID,
		Trace:   tr,
		Created: time.Now().UTC(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs[sr.ID] = sr
	s.runOrder = append(s.runOrder, sr.ID)
	if max := s.cfg.Server.MaxRuns; max > 0 {
		for len(s.runOrder) > max {
			oldest := s.runOrder[0]
			s.runOrder = s.runOrder[1:]
			delete(s.runs, oldest)
		}
	}
	return sr
}

func (s *Server) graphByID(id string) (*StoredGraph, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sg, ok := s.graphs[id]
	return sg, ok
}

func (s *Server) runByID(id string) (*StoredRun, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sr, ok := s.runs[id]
	return sr, ok
}
