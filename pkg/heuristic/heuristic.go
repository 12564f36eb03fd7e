// Package heuristic provides the distance estimators the heuristic
// engine steers by.
//
// Contract: a heuristic should be admissible (never overestimate the
// true remaining cost) and consistent (obey the triangle inequality
// along edges). The engine does not verify this at runtime: a
// heuristic that overestimates will not crash anything, but the
// returned path may no longer be optimal. Pick a scale that matches
// the unit of your edge weights.
package heuristic

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/umahmood/haversine"

	"github.com/Aryan-jain07/path-weaver/pkg/graph"
)

// ErrUnknown indicates a heuristic name with no registered function.
var ErrUnknown = errors.New("heuristic: unknown heuristic")

// Func estimates the remaining cost from a to b using the nodes'
// coordinates. It must be non-negative.
type Func func(a, b graph.Node) float64

// Euclidean returns straight-line distance scaled by the given factor.
func Euclidean(scale float64) Func {
	return func(a, b graph.Node) float64 {
		dx := a.X - b.X
		dy := a.Y - b.Y
		return math.Sqrt(dx*dx+dy*dy) * scale
	}
}

// Manhattan returns axis-aligned distance scaled by the given factor.
// Admissible on grids where movement is restricted to the axes.
func Manhattan(scale float64) Func {
	return func(a, b graph.Node) float64 {
		return (math.Abs(a.X-b.X) + math.Abs(a.Y-b.Y)) * scale
	}
}

// GreatCircle returns the haversine distance in kilometers, reading
// node X as longitude and Y as latitude in degrees. Coordinates are
// taken at face value; no geographic validation happens here.
func GreatCircle() Func {
	return func(a, b graph.Node) float64 {
		_, km := haversine.Distance(
			haversine.Coord{Lat: a.Y, Lon: a.X},
			haversine.Coord{Lat: b.Y, Lon: b.X},
		)
		return km
	}
}

// Zero estimates nothing, degrading the heuristic engine to plain
// uniform-cost order. Useful as a baseline in comparisons.
func Zero() Func {
	return func(a, b graph.Node) float64 { return 0 }
}

var registry = map[string]func(scale float64) Func{
	"euclidean": Euclidean,
	"manhattan": Manhattan,
	"haversine": func(float64) Func { return GreatCircle() },
	"zero":      func(float64) Func { return Zero() },
}

// ByName resolves a heuristic by its CLI/API name. Scale applies to the
// planar metrics and is ignored by haversine and zero.
func ByName(name string, scale float64) (Func, error) {
	mk, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %v)", ErrUnknown, name, Names())
	}
	return mk(scale), nil
}

// Names lists the registered heuristic names, sorted.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
