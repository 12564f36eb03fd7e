package graphio

import (
	"fmt"
	"strconv"

	"github.com/awalterschulze/gographviz"

	"github.com/Aryan-jain07/path-weaver/pkg/graph"
	"github.com/Aryan-jain07/path-weaver/pkg/trace"
)

// Fill colors per node class; classless and default nodes stay
// unfilled.
var nodeFill = map[trace.NodeClass]string{
	trace.NodeClassStart:   "palegreen",
	trace.NodeClassEnd:     "lightcoral",
	trace.NodeClassPath:    "gold",
	trace.NodeClassCurrent: "skyblue",
	trace.NodeClassVisited: "lightgrey",
	trace.NodeClassInQueue: "lightblue",
}

var edgeColor = map[trace.EdgeClass]string{
	trace.EdgeClassPath:        "red",
	trace.EdgeClassRelaxed:     "forestgreen",
	trace.EdgeClassConsidering: "orange",
	trace.EdgeClassRejected:    "grey",
}

// EncodeDOT renders the graph as Graphviz DOT. Class maps are optional
// overlays, typically taken from a step frame so the rendered graph
// shows that step's state; pass nil for an unstyled export. Node
// coordinates become pinned positions when present.
func EncodeDOT(g *graph.Graph, nodeClasses map[string]trace.NodeClass, edgeClasses map[string]trace.EdgeClass) ([]byte, error) {
	viz := gographviz.NewGraph()
	const name = "pathweaver"
	if err := viz.SetName(name); err != nil {
		return nil, fmt.Errorf("graphio: dot: %w", err)
	}
	if err := viz.SetDir(g.Directed()); err != nil {
		return nil, fmt.Errorf("graphio: dot: %w", err)
	}

	for _, n := range g.Nodes() {
		label := n.Label
		if label == "" {
			label = n.ID
		}
		attrs := map[string]string{"label": strconv.Quote(label)}
		if fill, ok := nodeFill[nodeClasses[n.ID]]; ok {
			attrs["style"] = `"filled"`
			attrs["fillcolor"] = strconv.Quote(fill)
		}
		if n.X != 0 || n.Y != 0 {
			attrs["pos"] = fmt.Sprintf(`"%v,%v!"`, n.X, n.Y)
		}
		if err := viz.AddNode(name, strconv.Quote(n.ID), attrs); err != nil {
			return nil, fmt.Errorf("graphio: dot node %q: %w", n.ID, err)
		}
	}

	for _, e := range g.Edges() {
		attrs := map[string]string{
			"label": strconv.Quote(strconv.FormatFloat(e.Weight, 'g', -1, 64)),
		}
		switch class := edgeClasses[e.ID]; class {
		case trace.EdgeClassPath:
			attrs["color"] = strconv.Quote(edgeColor[class])
			attrs["penwidth"] = `"2"`
		case trace.EdgeClassRejected:
			attrs["color"] = strconv.Quote(edgeColor[class])
			attrs["style"] = `"dashed"`
		case trace.EdgeClassRelaxed, trace.EdgeClassConsidering:
			attrs["color"] = strconv.Quote(edgeColor[class])
		}
		if err := viz.AddEdge(strconv.Quote(e.Source), strconv.Quote(e.Target), g.Directed(), attrs); err != nil {
			return nil, fmt.Errorf("graphio: dot edge %q: %w", e.ID, err)
		}
	}
	return []byte(viz.String()), nil
}
