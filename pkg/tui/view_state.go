package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Aryan-jain07/path-weaver/pkg/trace"
)

// viewState renders the step's algorithm state: the node table with
// per-class coloring, the classified edge list, and the queue snapshot.
func (m Model) viewState(f trace.Frame) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.viewNodes(f),
		lipgloss.JoinVertical(lipgloss.Left,
			m.viewQueue(f),
			m.viewEdges(f),
		),
	)
}

func (m Model) viewNodes(f trace.Frame) string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Nodes"))
	b.WriteString("\n")
	b.WriteString(subtle.Render(fmt.Sprintf("%-8s %-10s %8s  %s", "node", "state", "dist", "prev")))
	for _, n := range m.graph.Nodes() {
		class := f.NodeClasses[n.ID]
		prev := f.Predecessors[n.ID]
		if prev == "" {
			prev = "-"
		}
		row := fmt.Sprintf("%-8s %-10s %8s  %s",
			n.ID, class, fmtDist(f.Distances[n.ID]), prev)
		b.WriteString("\n")
		b.WriteString(styleNode(row, class))
	}
	return panelStyle.Render(b.String())
}

func (m Model) viewEdges(f trace.Frame) string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Edges"))
	arrow := "--"
	if m.graph.Directed() {
		arrow = "->"
	}
	for _, e := range m.graph.Edges() {
		class := f.EdgeClasses[e.ID]
		label := fmt.Sprintf("%s %s %s (%s)", e.Source, arrow, e.Target, fmtDist(e.Weight))
		b.WriteString("\n")
		b.WriteString(styleEdge(label, class))
	}
	return panelStyle.Render(b.String())
}

func (m Model) viewQueue(f trace.Frame) string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Queue"))
	if len(f.Queue) == 0 {
		b.WriteString("\n")
		b.WriteString(subtle.Render("(empty)"))
	}
	for i, entry := range f.Queue {
		b.WriteString("\n")
		line := fmt.Sprintf("%s @ %s", entry.ID, fmtDist(entry.Priority))
		if i == 0 {
			b.WriteString(highlight.Render(line + "  ← next"))
		} else {
			b.WriteString(line)
		}
	}
	return panelStyle.Render(b.String())
}

func fmtDist(d float64) string {
	if math.IsInf(d, 1) {
		return "∞"
	}
	return strconv.FormatFloat(d, 'g', -1, 64)
}
