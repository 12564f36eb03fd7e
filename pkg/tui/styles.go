package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Aryan-jain07/path-weaver/pkg/trace"
)

var (
	// Palette
	colorAccent   = lipgloss.Color("#874BFD") // headers / borders
	colorCurrent  = lipgloss.Color("#00CCFF") // node under examination
	colorVisited  = lipgloss.Color("#64748B") // finalized
	colorQueued   = lipgloss.Color("#F59E0B") // waiting in the queue
	colorPath     = lipgloss.Color("#FFD700") // final path
	colorStart    = lipgloss.Color("#00FF99") // source
	colorEnd      = lipgloss.Color("#FF0055") // target
	colorTextMain = lipgloss.Color("#E2E8F0")
	colorTextSub  = lipgloss.Color("#475569")

	subtle    = lipgloss.NewStyle().Foreground(colorTextSub)
	highlight = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)

	titleStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true).
			Padding(0, 1)

	hudStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1).
			Foreground(colorTextMain)

	hudLabelStyle = lipgloss.NewStyle().
			Foreground(colorTextSub).
			Bold(true).
			MarginRight(1)

	hudValueStyle = lipgloss.NewStyle().
			Foreground(colorStart).
			Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorTextSub).
			Padding(0, 1).
			MarginRight(1)

	panelTitleStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true).
			Underline(true)

	// Pseudocode listing
	codeLineStyle = lipgloss.NewStyle().Foreground(colorTextSub)
	codeHotStyle  = lipgloss.NewStyle().
			Foreground(colorTextMain).
			Background(lipgloss.Color("#331832")).
			Bold(true)

	// Explanation panel
	explainStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorStart).
			Padding(0, 1).
			Foreground(colorTextMain)

	footerStyle = lipgloss.NewStyle().Foreground(colorTextSub).MarginTop(1)
)

// nodeStyles maps a step's node classifications to colors; default
// class nodes render unstyled.
var nodeStyles = map[trace.NodeClass]lipgloss.Style{
	trace.NodeClassCurrent: lipgloss.NewStyle().Foreground(colorCurrent).Bold(true),
	trace.NodeClassVisited: lipgloss.NewStyle().Foreground(colorVisited),
	trace.NodeClassInQueue: lipgloss.NewStyle().Foreground(colorQueued),
	trace.NodeClassPath:    lipgloss.NewStyle().Foreground(colorPath).Bold(true),
	trace.NodeClassStart:   lipgloss.NewStyle().Foreground(colorStart).Bold(true),
	trace.NodeClassEnd:     lipgloss.NewStyle().Foreground(colorEnd).Bold(true),
}

var edgeStyles = map[trace.EdgeClass]lipgloss.Style{
	trace.EdgeClassConsidering: lipgloss.NewStyle().Foreground(colorQueued).Bold(true),
	trace.EdgeClassRelaxed:     lipgloss.NewStyle().Foreground(colorStart),
	trace.EdgeClassRejected:    lipgloss.NewStyle().Foreground(colorTextSub).Strikethrough(true),
	trace.EdgeClassPath:        lipgloss.NewStyle().Foreground(colorPath).Bold(true),
}

func styleNode(id string, class trace.NodeClass) string {
	if st, ok := nodeStyles[class]; ok {
		return st.Render(id)
	}
	return id
}

func styleEdge(label string, class trace.EdgeClass) string {
	if st, ok := edgeStyles[class]; ok {
		return st.Render(label)
	}
	return label
}
