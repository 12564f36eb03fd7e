package tui

import (
	"fmt"
	"strings"

	"github.com/Aryan-jain07/path-weaver/pkg/trace"
)

// viewCode renders the pseudocode listing with the step's line
// highlighted. Lines are 1-based in step frames.
func (m Model) viewCode(f trace.Frame) string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Pseudocode"))
	b.WriteString("\n")
	for i, line := range m.code {
		no := fmt.Sprintf("%2d ", i+1)
		if i+1 == f.Line {
			b.WriteString(codeHotStyle.Render("▶" + no + line))
		} else {
			b.WriteString(codeLineStyle.Render(" " + no + line))
		}
		if i < len(m.code)-1 {
			b.WriteString("\n")
		}
	}
	return panelStyle.Render(b.String())
}
