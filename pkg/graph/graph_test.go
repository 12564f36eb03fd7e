package graph

import (
	"errors"
	"fmt"
	"testing"
)

// buildDiamond returns a -> b, a -> c, b -> d, c -> d (ids e1..e4).
func buildDiamond(t *testing.T, opts ...Option) *Graph {
	t.Helper()
	g := New(opts...)
	for _, id := range []string{"a", "b", "c", "d"} {
		g = g.AddNode(Node{ID: id})
	}
	var err error
	for i, pair := range [][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}} {
		g, err = g.AddEdge(Edge{ID: fmt.Sprintf("e%d", i+1), Source: pair[0], Target: pair[1], Weight: float64(i + 1)})
		if err != nil {
			t.Fatalf("AddEdge: %v", err)
		}
	}
	return g
}

func TestAddNode(t *testing.T) {
	g := New()
	g2 := g.AddNode(Node{ID: "a", Label: "Alpha", X: 1, Y: 2})

	if g.NodeCount() != 0 {
		t.Errorf("receiver mutated: NodeCount = %d, want 0", g.NodeCount())
	}
	if g2.NodeCount() != 1 {
		t.Fatalf("NodeCount = %d, want 1", g2.NodeCount())
	}

	n, ok := g2.Node("a")
	if !ok || n.Label != "Alpha" || n.X != 1 || n.Y != 2 {
		t.Errorf("Node(a) = %+v, %v", n, ok)
	}

	// Replacing a node keeps its edges.
	g3 := buildDiamond(t).AddNode(Node{ID: "a", Label: "renamed"})
	if got := len(g3.Neighbors("a")); got != 2 {
		t.Errorf("neighbors after replace = %d, want 2", got)
	}

	// Empty id is a no-op.
	if g4 := g2.AddNode(Node{}); g4.NodeCount() != 1 {
		t.Errorf("empty id added a node")
	}
}

func TestAddEdgeValidation(t *testing.T) {
	g := New().AddNode(Node{ID: "a"}).AddNode(Node{ID: "b"})

	cases := []struct {
		name string
		edge Edge
		want error
	}{
		{"zero weight", Edge{ID: "e", Source: "a", Target: "b", Weight: 0}, ErrInvalidWeight},
		{"negative weight", Edge{ID: "e", Source: "a", Target: "b", Weight: -3}, ErrInvalidWeight},
		{"missing source", Edge{ID: "e", Source: "x", Target: "b", Weight: 1}, ErrNodeNotFound},
		{"missing target", Edge{ID: "e", Source: "a", Target: "x", Weight: 1}, ErrNodeNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g2, err := g.AddEdge(tc.edge)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
			if g2.EdgeCount() != 0 {
				t.Errorf("failed add changed the graph")
			}
		})
	}

	if _, err := g.AddEdge(Edge{Source: "a", Target: "b", Weight: 1}); err == nil {
		t.Errorf("empty edge id accepted")
	}
}

func TestAddEdgeReplaceReindexes(t *testing.T) {
	g := New()
	for _, id := range []string{"a", "b", "c"} {
		g = g.AddNode(Node{ID: id})
	}
	g, err := g.AddEdge(Edge{ID: "e1", Source: "a", Target: "b", Weight: 1})
	if err != nil {
		t.Fatal(err)
	}
	// Same id, new endpoints: old adjacency entries must vanish.
	g, err = g.AddEdge(Edge{ID: "e1", Source: "b", Target: "c", Weight: 2})
	if err != nil {
		t.Fatal(err)
	}

	if got := g.Neighbors("a"); len(got) != 0 {
		t.Errorf("a still has neighbors %v after edge moved away", got)
	}
	if _, ok := g.EdgeBetween("b", "c"); !ok {
		t.Errorf("replaced edge b-c not found")
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount = %d, want 1", g.EdgeCount())
	}
}

func TestRemoveNodeCascades(t *testing.T) {
	g := buildDiamond(t)
	g2 := g.RemoveNode("a")

	if g2.HasNode("a") {
		t.Fatal("node a survived removal")
	}
	// e1 (a-b) and e2 (a-c) must be gone, e3/e4 untouched.
	if g2.EdgeCount() != 2 {
		t.Errorf("EdgeCount = %d, want 2", g2.EdgeCount())
	}
	for _, eid := range []string{"e1", "e2"} {
		if _, ok := g2.Edge(eid); ok {
			t.Errorf("incident edge %s survived cascade", eid)
		}
	}
	if got := len(g2.Neighbors("b")); got != 1 {
		t.Errorf("b neighbors = %d, want 1", got)
	}

	// The original graph is untouched.
	if g.EdgeCount() != 4 || !g.HasNode("a") {
		t.Errorf("receiver mutated by RemoveNode")
	}

	// Missing id is a no-op.
	if g3 := g.RemoveNode("zzz"); g3.NodeCount() != 4 {
		t.Errorf("removing a missing node changed the graph")
	}
}

func TestRemoveNodeCascadesIncomingDirected(t *testing.T) {
	g := New(WithDirected())
	g = g.AddNode(Node{ID: "a"}).AddNode(Node{ID: "b"})
	g, err := g.AddEdge(Edge{ID: "e1", Source: "a", Target: "b", Weight: 1})
	if err != nil {
		t.Fatal(err)
	}

	// b's adjacency set does not index the incoming edge, but removing b
	// must still delete it.
	g2 := g.RemoveNode("b")
	if g2.EdgeCount() != 0 {
		t.Errorf("incoming edge survived target removal")
	}
	if got := g2.Neighbors("a"); len(got) != 0 {
		t.Errorf("a still lists removed neighbor: %v", got)
	}
}

func TestRemoveEdge(t *testing.T) {
	g := buildDiamond(t)
	g2 := g.RemoveEdge("e1")

	if _, ok := g2.Edge("e1"); ok {
		t.Fatal("edge e1 survived removal")
	}
	for _, nid := range []string{"a", "b"} {
		for _, nb := range g2.Neighbors(nid) {
			if nb.EdgeID == "e1" {
				t.Errorf("adjacency of %s still lists e1", nid)
			}
		}
	}
	if g.EdgeCount() != 4 {
		t.Errorf("receiver mutated by RemoveEdge")
	}
	if g3 := g.RemoveEdge("zzz"); g3.EdgeCount() != 4 {
		t.Errorf("removing a missing edge changed the graph")
	}
}

func TestNeighborsDeterministic(t *testing.T) {
	g := buildDiamond(t)

	got := g.Neighbors("a")
	if len(got) != 2 {
		t.Fatalf("Neighbors(a) = %v", got)
	}
	// Sorted by edge id: e1 before e2.
	if got[0].EdgeID != "e1" || got[0].NodeID != "b" || got[0].Weight != 1 {
		t.Errorf("first neighbor = %+v", got[0])
	}
	if got[1].EdgeID != "e2" || got[1].NodeID != "c" {
		t.Errorf("second neighbor = %+v", got[1])
	}

	// Undirected: the target side sees the edge too.
	foundBack := false
	for _, nb := range g.Neighbors("b") {
		if nb.NodeID == "a" && nb.EdgeID == "e1" {
			foundBack = true
		}
	}
	if !foundBack {
		t.Errorf("undirected edge invisible from target side: %v", g.Neighbors("b"))
	}
}

func TestNeighborsDirected(t *testing.T) {
	g := buildDiamond(t, WithDirected())

	if got := g.Neighbors("a"); len(got) != 2 {
		t.Errorf("Neighbors(a) = %v, want 2 outgoing", got)
	}
	// d has two incoming edges and no outgoing ones.
	if got := g.Neighbors("d"); len(got) != 0 {
		t.Errorf("Neighbors(d) = %v, want none", got)
	}
}

func TestEdgeBetween(t *testing.T) {
	g := buildDiamond(t)

	e, ok := g.EdgeBetween("a", "b")
	if !ok || e.ID != "e1" {
		t.Errorf("EdgeBetween(a,b) = %+v, %v", e, ok)
	}
	// Undirected lookup works from either side.
	if _, ok := g.EdgeBetween("b", "a"); !ok {
		t.Errorf("EdgeBetween(b,a) not found on undirected graph")
	}
	if _, ok := g.EdgeBetween("a", "d"); ok {
		t.Errorf("EdgeBetween(a,d) found a non-edge")
	}

	dg := buildDiamond(t, WithDirected())
	if _, ok := dg.EdgeBetween("b", "a"); ok {
		t.Errorf("directed EdgeBetween(b,a) matched a reversed edge")
	}
}

// checkInvariants asserts the structural invariants every edit must
// preserve: adjacency only names real edges, edges only name real
// nodes, and every edge is indexed under its endpoints per directedness.
func checkInvariants(t *testing.T, g *Graph) {
	t.Helper()
	for nid, set := range g.adjacency {
		if _, ok := g.nodes[nid]; !ok {
			t.Fatalf("adjacency entry for missing node %q", nid)
		}
		for eid := range set {
			if _, ok := g.edges[eid]; !ok {
				t.Fatalf("adjacency of %q names missing edge %q", nid, eid)
			}
		}
	}
	for eid, e := range g.edges {
		if _, ok := g.nodes[e.Source]; !ok {
			t.Fatalf("edge %q has dangling source %q", eid, e.Source)
		}
		if _, ok := g.nodes[e.Target]; !ok {
			t.Fatalf("edge %q has dangling target %q", eid, e.Target)
		}
		if _, ok := g.adjacency[e.Source][eid]; !ok {
			t.Fatalf("edge %q missing from source adjacency", eid)
		}
		if !g.directed {
			if _, ok := g.adjacency[e.Target][eid]; !ok {
				t.Fatalf("undirected edge %q missing from target adjacency", eid)
			}
		}
	}
}

func FuzzGraphEdits(f *testing.F) {
	f.Add([]byte("seed"), false)
	f.Add([]byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55}, true)

	f.Fuzz(func(t *testing.T, data []byte, directed bool) {
		var opts []Option
		if directed {
			opts = append(opts, WithDirected())
		}
		g := New(opts...)

		// Each byte drives one edit. High bits pick the operation, low
		// bits pick ids from a small alphabet so collisions are common.
		for i, b := range data {
			nid := string(rune('a' + int(b%8)))
			other := string(rune('a' + int(b>>3)%8))
			eid := fmt.Sprintf("e%d", int(b)%16)

			switch b % 4 {
			case 0:
				g = g.AddNode(Node{ID: nid, X: float64(i), Y: float64(b)})
			case 1:
				g2, err := g.AddEdge(Edge{ID: eid, Source: nid, Target: other, Weight: float64(b%5) + 1})
				if err == nil {
					g = g2
				}
			case 2:
				g = g.RemoveNode(nid)
			case 3:
				g = g.RemoveEdge(eid)
			}
			checkInvariants(t, g)
		}
	})
}
