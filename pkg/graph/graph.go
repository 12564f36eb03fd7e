// Package graph implements the weighted graph value type the pathfinding
// engines run over. Graphs are immutable: every edit operation returns a
// new graph value and never mutates the receiver, so a caller can hold a
// reference across an engine run without observing intermediate states.
package graph

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors returned by edit operations. Wrapped with context at
// the call site; match with errors.Is.
var (
	// ErrNodeNotFound indicates an operation referenced a node id that is
	// not present in the graph.
	ErrNodeNotFound = errors.New("graph: node not found")

	// ErrEdgeNotFound indicates an operation referenced an edge id that is
	// not present in the graph.
	ErrEdgeNotFound = errors.New("graph: edge not found")

	// ErrInvalidWeight indicates an edge weight outside (0, +inf).
	// Non-positive weights break the shortest-path optimality guarantee,
	// so they are rejected at edit time rather than left undefined.
	ErrInvalidWeight = errors.New("graph: edge weight must be positive")
)

// Node is a vertex. X and Y are planar coordinates used only by
// heuristics and display layers; the engines never interpret them.
type Node struct {
	ID    string
	Label string
	X     float64
	Y     float64
}

// Edge is a weighted connection between two nodes. Directedness is a
// graph-level property, not an edge-level one: the same Edge value means
// Source->Target in a directed graph and Source<->Target otherwise.
type Edge struct {
	ID     string
	Source string
	Target string
	Weight float64
}

// Graph holds nodes, edges and an adjacency index mapping each node id
// to the set of incident edge ids. In undirected graphs an edge id
// appears in both endpoints' sets; in directed graphs only in the
// source's. The zero value is not usable; construct with New.
type Graph struct {
	directed  bool
	nodes     map[string]Node
	edges     map[string]Edge
	adjacency map[string]map[string]struct{}
}

// Option configures a graph at construction time.
type Option func(*Graph)

// WithDirected makes edges one-way, Source to Target.
func WithDirected() Option {
	return func(g *Graph) { g.directed = true }
}

// New returns an empty undirected graph unless options say otherwise.
func New(opts ...Option) *Graph {
	g := &Graph{
		nodes:     make(map[string]Node),
		edges:     make(map[string]Edge),
		adjacency: make(map[string]map[string]struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// AddNode returns a graph containing n. Adding an id that already exists
// replaces the node in place, keeping its incident edges. An empty id is
// a no-op.
func (g *Graph) AddNode(n Node) *Graph {
	if n.ID == "" {
		return g
	}
	out := g.clone()
	out.nodes[n.ID] = n
	if _, ok := out.adjacency[n.ID]; !ok {
		out.adjacency[n.ID] = make(map[string]struct{})
	}
	return out
}

// RemoveNode returns a graph without the node and without every edge
// that touched it. A missing id is a no-op.
func (g *Graph) RemoveNode(id string) *Graph {
	if _, ok := g.nodes[id]; !ok {
		return g
	}
	out := g.clone()
	// Directed adjacency only indexes outgoing edges, so the cascade
	// scans the edge map to also catch edges pointing at id.
	for eid, e := range out.edges {
		if e.Source == id || e.Target == id {
			out.detachEdge(eid)
		}
	}
	delete(out.adjacency, id)
	delete(out.nodes, id)
	return out
}

// AddEdge returns a graph containing e. Both endpoints must already
// exist and the weight must be strictly positive and finite. Adding an
// id that already exists replaces the edge, re-indexing adjacency for
// the new endpoints.
func (g *Graph) AddEdge(e Edge) (*Graph, error) {
	if e.ID == "" {
		return g, errors.New("graph: edge id must not be empty")
	}
	if math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) || e.Weight <= 0 {
		return g, fmt.Errorf("edge %q has weight %v: %w", e.ID, e.Weight, ErrInvalidWeight)
	}
	if _, ok := g.nodes[e.Source]; !ok {
		return g, fmt.Errorf("edge %q source %q: %w", e.ID, e.Source, ErrNodeNotFound)
	}
	if _, ok := g.nodes[e.Target]; !ok {
		return g, fmt.Errorf("edge %q target %q: %w", e.ID, e.Target, ErrNodeNotFound)
	}
	out := g.clone()
	out.detachEdge(e.ID)
	out.edges[e.ID] = e
	out.adjacency[e.Source][e.ID] = struct{}{}
	if !out.directed {
		out.adjacency[e.Target][e.ID] = struct{}{}
	}
	return out, nil
}

// RemoveEdge returns a graph without the edge. A missing id is a no-op.
func (g *Graph) RemoveEdge(id string) *Graph {
	if _, ok := g.edges[id]; !ok {
		return g
	}
	out := g.clone()
	out.detachEdge(id)
	return out
}

// detachEdge unlinks an edge from the edge map and from both endpoints'
// adjacency sets. Only called on a fresh clone, never on a shared value.
func (g *Graph) detachEdge(id string) {
	e, ok := g.edges[id]
	if !ok {
		return
	}
	delete(g.edges, id)
	if adj, ok := g.adjacency[e.Source]; ok {
		delete(adj, id)
	}
	if adj, ok := g.adjacency[e.Target]; ok {
		delete(adj, id)
	}
}

func (g *Graph) clone() *Graph {
	out := &Graph{
		directed:  g.directed,
		nodes:     make(map[string]Node, len(g.nodes)),
		edges:     make(map[string]Edge, len(g.edges)),
		adjacency: make(map[string]map[string]struct{}, len(g.adjacency)),
	}
	for id, n := range g.nodes {
		out.nodes[id] = n
	}
	for id, e := range g.edges {
		out.edges[id] = e
	}
	for id, set := range g.adjacency {
		cp := make(map[string]struct{}, len(set))
		for eid := range set {
			cp[eid] = struct{}{}
		}
		out.adjacency[id] = cp
	}
	return out
}
