package graph

import (
	"reflect"
	"testing"
)

func TestComponents(t *testing.T) {
	g := New()
	for _, id := range []string{"a", "b", "c", "x", "y", "lone"} {
		g = g.AddNode(Node{ID: id})
	}
	var err error
	for i, pair := range [][2]string{{"a", "b"}, {"b", "c"}, {"x", "y"}} {
		g, err = g.AddEdge(Edge{ID: string(rune('1' + i)), Source: pair[0], Target: pair[1], Weight: 1})
		if err != nil {
			t.Fatal(err)
		}
	}

	got := g.Components()
	want := [][]string{{"a", "b", "c"}, {"lone"}, {"x", "y"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Components() = %v, want %v", got, want)
	}
}

func TestComponentsIgnoresDirection(t *testing.T) {
	g := New(WithDirected())
	g = g.AddNode(Node{ID: "a"}).AddNode(Node{ID: "b"})
	g, err := g.AddEdge(Edge{ID: "e", Source: "a", Target: "b", Weight: 1})
	if err != nil {
		t.Fatal(err)
	}

	if got := g.Components(); len(got) != 1 {
		t.Errorf("Components() = %v, want one weakly connected component", got)
	}
}

func TestReachable(t *testing.T) {
	g := New(WithDirected())
	for _, id := range []string{"a", "b", "c"} {
		g = g.AddNode(Node{ID: id})
	}
	var err error
	for i, pair := range [][2]string{{"a", "b"}, {"b", "c"}} {
		g, err = g.AddEdge(Edge{ID: string(rune('1' + i)), Source: pair[0], Target: pair[1], Weight: 1})
		if err != nil {
			t.Fatal(err)
		}
	}

	reach := g.Reachable("a")
	for _, id := range []string{"a", "b", "c"} {
		if !reach[id] {
			t.Errorf("Reachable(a) missing %s", id)
		}
	}

	// Edges point away from c, so nothing else is reachable from it.
	if reach := g.Reachable("c"); len(reach) != 1 || !reach["c"] {
		t.Errorf("Reachable(c) = %v, want just c", reach)
	}

	if g.Reachable("missing") != nil {
		t.Errorf("Reachable on a missing node should be nil")
	}
}

func TestCanReach(t *testing.T) {
	g := New()
	for _, id := range []string{"a", "b", "island"} {
		g = g.AddNode(Node{ID: id})
	}
	g, err := g.AddEdge(Edge{ID: "e", Source: "a", Target: "b", Weight: 2})
	if err != nil {
		t.Fatal(err)
	}

	if !g.CanReach("a", "b") {
		t.Errorf("CanReach(a,b) = false")
	}
	if g.CanReach("a", "island") {
		t.Errorf("CanReach(a,island) = true")
	}
	if g.CanReach("missing", "b") {
		t.Errorf("CanReach from missing node = true")
	}
}

func TestUnionFind(t *testing.T) {
	uf := NewUnionFind(5)
	uf.Union(0, 1)
	uf.Union(3, 4)

	if !uf.Connected(0, 1) {
		t.Errorf("0 and 1 should be connected")
	}
	if uf.Connected(1, 3) {
		t.Errorf("1 and 3 should be separate")
	}

	uf.Union(1, 3)
	if !uf.Connected(0, 4) {
		t.Errorf("transitive union failed")
	}

	// Out-of-range indexes are inert.
	uf.Union(0, 99)
	if uf.Find(99) != -1 {
		t.Errorf("Find(99) = %d, want -1", uf.Find(99))
	}
}
