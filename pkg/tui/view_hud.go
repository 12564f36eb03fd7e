package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Aryan-jain07/path-weaver/pkg/trace"
	"github.com/Aryan-jain07/path-weaver/pkg/version"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	step, ok := m.ctrl.Current()
	if !ok {
		return titleStyle.Render(version.AppName) + "\n" +
			subtle.Render("empty trace: the graph has no nodes") + "\n" +
			m.viewFooter()
	}
	f := step.StepFrame()

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.viewCode(f),
		m.viewState(f),
	)

	var b strings.Builder
	b.WriteString(m.viewHUD(step))
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(m.viewExplain(f))
	b.WriteString(m.viewFooter())
	return b.String()
}

func (m Model) viewHUD(step trace.Step) string {
	mode := "PAUSED"
	if m.ctrl.Playing() {
		mode = "PLAYING"
	}

	segTitle := highlight.Render(fmt.Sprintf("%s %s", version.AppName, version.Current))
	segAlg := hudLabelStyle.Render("ALG:") + hudValueStyle.Render(m.tr.Algorithm)
	segStep := hudLabelStyle.Render("STEP:") +
		hudValueStyle.Render(fmt.Sprintf("%d/%d", m.ctrl.Index()+1, m.ctrl.Len())) +
		subtle.Render(fmt.Sprintf(" (%s)", step.Kind()))
	segMode := hudLabelStyle.Render("MODE:") +
		hudValueStyle.Render(fmt.Sprintf("%s %gx", mode, m.ctrl.Speed()))
	segReach := hudLabelStyle.Render("REACH:") +
		hudValueStyle.Render(fmt.Sprintf("%d/%d", m.reach, m.graph.NodeCount()))

	bar := m.progress.ViewAs(m.ctrl.Progress())

	line := lipgloss.JoinHorizontal(lipgloss.Center,
		segTitle, "  ", segAlg, "  ", segStep, "  ", segMode, "  ", segReach, "  ", bar)
	return hudStyle.Render(line)
}

func (m Model) viewExplain(f trace.Frame) string {
	tier := "terse"
	text := f.Terse
	if m.plain {
		tier = "plain"
		text = f.Plain
	}
	label := subtle.Render(fmt.Sprintf("[%s] ", tier))
	return explainStyle.Render(label + text)
}

func (m Model) viewFooter() string {
	return footerStyle.Render(
		"space play/pause · ←/→ step · g/G ends · +/- speed · e explanation · q quit")
}
