package heuristic

import (
	"errors"
	"math"
	"testing"

	"github.com/Aryan-jain07/path-weaver/pkg/graph"
)

func TestEuclidean(t *testing.T) {
	a := graph.Node{ID: "a", X: 0, Y: 0}
	b := graph.Node{ID: "b", X: 3, Y: 4}

	if got := Euclidean(1)(a, b); got != 5 {
		t.Errorf("Euclidean(1) = %v, want 5", got)
	}
	if got := Euclidean(2)(a, b); got != 10 {
		t.Errorf("Euclidean(2) = %v, want 10", got)
	}
	if got := Euclidean(1)(a, a); got != 0 {
		t.Errorf("distance to self = %v", got)
	}
}

func TestManhattan(t *testing.T) {
	a := graph.Node{ID: "a", X: 1, Y: 1}
	b := graph.Node{ID: "b", X: -2, Y: 5}

	if got := Manhattan(1)(a, b); got != 7 {
		t.Errorf("Manhattan(1) = %v, want 7", got)
	}
	if got := Manhattan(0.5)(a, b); got != 3.5 {
		t.Errorf("Manhattan(0.5) = %v, want 3.5", got)
	}
}

func TestGreatCircle(t *testing.T) {
	// X is longitude, Y is latitude.
	london := graph.Node{ID: "lhr", X: -0.1276, Y: 51.5072}
	paris := graph.Node{ID: "cdg", X: 2.3522, Y: 48.8566}

	km := GreatCircle()(london, paris)
	if km < 330 || km > 360 {
		t.Errorf("London-Paris = %v km, want ~344", km)
	}
	if d := GreatCircle()(london, london); d != 0 {
		t.Errorf("distance to self = %v", d)
	}
}

// On a unit grid the true shortest distance between two intersections
// is exactly the Manhattan distance, so both planar metrics must stay
// at or below it to remain admissible.
func TestAdmissibleOnUnitGrid(t *testing.T) {
	var nodes []graph.Node
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			nodes = append(nodes, graph.Node{X: float64(x), Y: float64(y)})
		}
	}

	euclid := Euclidean(1)
	manhattan := Manhattan(1)
	for _, a := range nodes {
		for _, b := range nodes {
			trueCost := math.Abs(a.X-b.X) + math.Abs(a.Y-b.Y)
			if h := manhattan(a, b); h > trueCost+1e-9 {
				t.Fatalf("manhattan overestimates: h=%v true=%v", h, trueCost)
			}
			if h := euclid(a, b); h > trueCost+1e-9 {
				t.Fatalf("euclidean overestimates: h=%v true=%v", h, trueCost)
			}
		}
	}
}

func TestByName(t *testing.T) {
	for _, name := range Names() {
		fn, err := ByName(name, 1)
		if err != nil || fn == nil {
			t.Errorf("ByName(%s) = %v, %v", name, fn, err)
		}
	}

	if _, err := ByName("teleport", 1); !errors.Is(err, ErrUnknown) {
		t.Errorf("unknown name error = %v", err)
	}

	zero, _ := ByName("zero", 99)
	if got := zero(graph.Node{X: 0}, graph.Node{X: 100}); got != 0 {
		t.Errorf("zero heuristic = %v", got)
	}
}
