package graphio

import (
	"fmt"

	"github.com/Aryan-jain07/path-weaver/pkg/graph"
	"github.com/Aryan-jain07/path-weaver/pkg/sys/intern"
)

// Document is the external graph description shared by the JSON and
// YAML codecs; the HCL reader lowers into it too. Field names follow
// the wire casing of both formats.
type Document struct {
	Directed bool       `json:"directed,omitempty" yaml:"directed,omitempty"`
	Nodes    []NodeSpec `json:"nodes" yaml:"nodes"`
	Edges    []EdgeSpec `json:"edges,omitempty" yaml:"edges,omitempty"`
}

// NodeSpec declares one node. X and Y feed the geometric heuristics
// and layout hints; they are optional.
type NodeSpec struct {
	ID    string  `json:"id" yaml:"id"`
	Label string  `json:"label,omitempty" yaml:"label,omitempty"`
	X     float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y     float64 `json:"y,omitempty" yaml:"y,omitempty"`
}

// EdgeSpec declares one edge. ID is optional; a missing one is derived
// from the endpoints.
type EdgeSpec struct {
	ID     string  `json:"id,omitempty" yaml:"id,omitempty"`
	From   string  `json:"from" yaml:"from"`
	To     string  `json:"to" yaml:"to"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// ToGraph builds the in-memory graph. Node ids are interned so the
// graph's indexes share one instance per id however often the document
// repeats it. Fails on the first invalid spec.
func (d Document) ToGraph() (*graph.Graph, error) {
	var opts []graph.Option
	if d.Directed {
		opts = append(opts, graph.WithDirected())
	}
	g := graph.New(opts...)
	pool := intern.NewPool()

	for i, n := range d.Nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("graphio: node %d has no id", i)
		}
		g = g.AddNode(graph.Node{
			ID:    pool.Intern(n.ID),
			Label: n.Label,
			X:     n.X,
			Y:     n.Y,
		})
	}

	used := make(map[string]bool, len(d.Edges))
	for _, e := range d.Edges {
		if e.From == "" || e.To == "" {
			return nil, fmt.Errorf("graphio: edge %q is missing an endpoint", e.ID)
		}
		id := e.ID
		if id == "" {
			id = deriveEdgeID(e.From, e.To, used)
		}
		used[id] = true

		var err error
		g, err = g.AddEdge(graph.Edge{
			ID:     pool.Intern(id),
			Source: pool.Intern(e.From),
			Target: pool.Intern(e.To),
			Weight: e.Weight,
		})
		if err != nil {
			return nil, fmt.Errorf("graphio: edge %q: %w", id, err)
		}
	}
	return g, nil
}

// deriveEdgeID names an anonymous edge after its endpoints, numbering
// duplicates so parallel edges survive the round trip.
func deriveEdgeID(from, to string, used map[string]bool) string {
	id := from + "-" + to
	if !used[id] {
		return id
	}
	for i := 2; ; i++ {
		cand := fmt.Sprintf("%s-%s.%d", from, to, i)
		if !used[cand] {
			return cand
		}
	}
}

// FromGraph flattens a graph back into a document, nodes and edges in
// id order.
func FromGraph(g *graph.Graph) Document {
	d := Document{Directed: g.Directed()}
	for _, n := range g.Nodes() {
		d.Nodes = append(d.Nodes, NodeSpec{ID: n.ID, Label: n.Label, X: n.X, Y: n.Y})
	}
	for _, e := range g.Edges() {
		d.Edges = append(d.Edges, EdgeSpec{ID: e.ID, From: e.Source, To: e.Target, Weight: e.Weight})
	}
	return d
}
