// Package engine computes shortest-path traces. Two algorithm engines
// share one contract: given a graph and endpoints they synchronously
// materialize the complete, deterministic sequence of steps the
// algorithm takes, for a consumer to replay in either direction.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/Aryan-jain07/path-weaver/pkg/graph"
	"github.com/Aryan-jain07/path-weaver/pkg/heuristic"
	"github.com/Aryan-jain07/path-weaver/pkg/trace"
)

// Algorithm selects which engine produces a trace.
type Algorithm string

const (
	// AlgorithmDijkstra is the single-source engine. A target is
	// optional: without one the run finalizes every reachable node.
	AlgorithmDijkstra Algorithm = "dijkstra"

	// AlgorithmAStar is the heuristic-guided engine, point-to-point
	// only.
	AlgorithmAStar Algorithm = "astar"
)

var (
	// ErrTargetRequired indicates a heuristic-guided request without a
	// target node.
	ErrTargetRequired = errors.New("engine: heuristic-guided run requires a target")

	// ErrUnknownAlgorithm indicates an algorithm selector this package
	// does not implement.
	ErrUnknownAlgorithm = errors.New("engine: unknown algorithm")
)

// Request describes one run. Heuristic applies to AlgorithmAStar only
// and defaults to Euclidean with scale 1 when nil.
type Request struct {
	Graph     *graph.Graph
	Source    string
	Target    string
	Algorithm Algorithm
	Heuristic heuristic.Func
}

// Materialize validates the request and computes the full step
// sequence up front. It is pure: identical requests always produce
// identical traces, byte for byte.
//
// Structural problems (missing nodes, missing target, bad weights)
// fail before any step is produced. An unreachable target is not an
// error: the trace ends in a no-path step.
func Materialize(req Request) (*trace.Trace, error) {
	if req.Graph == nil {
		return nil, errors.New("engine: request graph must not be nil")
	}
	alg := req.Algorithm
	if alg == "" {
		alg = AlgorithmDijkstra
	}
	if alg != AlgorithmDijkstra && alg != AlgorithmAStar {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, req.Algorithm)
	}

	tr := &trace.Trace{Algorithm: string(alg), Source: req.Source, Target: req.Target}
	if req.Graph.NodeCount() == 0 {
		return tr, nil
	}

	if !req.Graph.HasNode(req.Source) {
		return nil, fmt.Errorf("engine: source %q: %w", req.Source, graph.ErrNodeNotFound)
	}
	if alg == AlgorithmAStar && req.Target == "" {
		return nil, ErrTargetRequired
	}
	if req.Target != "" && !req.Graph.HasNode(req.Target) {
		return nil, fmt.Errorf("engine: target %q: %w", req.Target, graph.ErrNodeNotFound)
	}
	// AddEdge already rejects these, but the run depends on every
	// weight being positive and finite, so re-check before looping.
	for _, e := range req.Graph.Edges() {
		if math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) || e.Weight <= 0 {
			return nil, fmt.Errorf("engine: edge %q weight %v: %w", e.ID, e.Weight, graph.ErrInvalidWeight)
		}
	}

	switch alg {
	case AlgorithmAStar:
		h := req.Heuristic
		if h == nil {
			h = heuristic.Euclidean(1)
		}
		tr.Steps = astar(req.Graph, req.Source, req.Target, h)
	default:
		tr.Steps = dijkstra(req.Graph, req.Source, req.Target)
	}
	return tr, nil
}

// Runner wraps Materialize with logging, tracing and run metrics. Use
// it at application surfaces; tests and embedders that want the pure
// computation call Materialize directly.
type Runner struct {
	logger *slog.Logger
	tracer oteltrace.Tracer
	runs   metric.Int64Counter
	steps  metric.Int64Counter
}

// Option defines a functional configuration override.
type Option func(*Runner)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// New initializes a Runner against the global telemetry providers.
func New(opts ...Option) *Runner {
	r := &Runner{
		logger: slog.Default(),
		tracer: otel.Tracer("pathweaver/engine"),
	}
	meter := otel.Meter("pathweaver/engine")
	r.runs, _ = meter.Int64Counter("pathweaver.runs",
		metric.WithDescription("Completed pathfinding runs."))
	r.steps, _ = meter.Int64Counter("pathweaver.trace.steps",
		metric.WithDescription("Steps produced across all runs."))
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes one request inside a span and records the outcome.
func (r *Runner) Run(ctx context.Context, req Request) (*trace.Trace, error) {
	ctx, span := r.tracer.Start(ctx, "Runner.Run", oteltrace.WithAttributes(
		attribute.String("run.algorithm", string(req.Algorithm)),
		attribute.String("run.source", req.Source),
		attribute.String("run.target", req.Target),
	))
	defer span.End()

	tr, err := Materialize(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "run rejected")
		r.logger.Error("run rejected",
			"algorithm", req.Algorithm, "source", req.Source, "target", req.Target, "error", err)
		return nil, err
	}

	sum := tr.Summarize()
	span.SetAttributes(
		attribute.Int("graph.nodes", req.Graph.NodeCount()),
		attribute.Int("graph.edges", req.Graph.EdgeCount()),
		attribute.Int("run.steps", sum.Steps),
		attribute.String("run.outcome", string(sum.Outcome)),
	)
	attrs := metric.WithAttributes(attribute.String("algorithm", sum.Algorithm))
	r.runs.Add(ctx, 1, attrs)
	r.steps.Add(ctx, int64(sum.Steps), attrs)

	r.logger.Info("run complete",
		"algorithm", sum.Algorithm, "source", sum.Source, "target", sum.Target,
		"outcome", sum.Outcome, "steps", sum.Steps, "visited", sum.Visited, "cost", sum.Cost)
	return tr, nil
}
