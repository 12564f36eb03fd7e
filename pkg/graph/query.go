package graph

import "sort"

// Neighbor is one entry of a node's adjacency listing: the node on the
// other end of an incident edge, plus the edge that reaches it.
type Neighbor struct {
	NodeID string
	EdgeID string
	Weight float64
}

// Directed reports whether edges are one-way.
func (g *Graph) Directed() bool { return g.directed }

// Node returns the node with the given id.
func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Edge returns the edge with the given id.
func (g *Graph) Edge(id string) (Edge, bool) {
	e, ok := g.edges[id]
	return e, ok
}

// HasNode reports whether the node exists.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Nodes returns every node sorted by id. The slice is owned by the
// caller.
func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Edges returns every edge sorted by id. The slice is owned by the
// caller.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Neighbors returns the nodes adjacent to id, honoring directedness.
// Entries are sorted by edge id so traversal order is deterministic;
// the engines depend on this for reproducible step sequences. A missing
// or isolated node yields nil.
func (g *Graph) Neighbors(id string) []Neighbor {
	adj, ok := g.adjacency[id]
	if !ok || len(adj) == 0 {
		return nil
	}
	eids := make([]string, 0, len(adj))
	for eid := range adj {
		eids = append(eids, eid)
	}
	sort.Strings(eids)

	out := make([]Neighbor, 0, len(eids))
	for _, eid := range eids {
		e := g.edges[eid]
		switch {
		case e.Source == id:
			out = append(out, Neighbor{NodeID: e.Target, EdgeID: eid, Weight: e.Weight})
		case !g.directed && e.Target == id:
			out = append(out, Neighbor{NodeID: e.Source, EdgeID: eid, Weight: e.Weight})
		}
	}
	return out
}

// EdgeBetween returns an edge connecting a and b, or false if none
// exists. Direction matters for directed graphs (a must be the source).
// When several parallel edges connect the pair, the one with the
// smallest id wins.
func (g *Graph) EdgeBetween(a, b string) (Edge, bool) {
	adj, ok := g.adjacency[a]
	if !ok {
		return Edge{}, false
	}
	eids := make([]string, 0, len(adj))
	for eid := range adj {
		eids = append(eids, eid)
	}
	sort.Strings(eids)

	for _, eid := range eids {
		e := g.edges[eid]
		if e.Source == a && e.Target == b {
			return e, true
		}
		if !g.directed && e.Source == b && e.Target == a {
			return e, true
		}
	}
	return Edge{}, false
}
