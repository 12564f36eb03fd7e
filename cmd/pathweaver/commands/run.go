package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Aryan-jain07/path-weaver/pkg/engine"
	"github.com/Aryan-jain07/path-weaver/pkg/graph"
	"github.com/Aryan-jain07/path-weaver/pkg/graphio"
	"github.com/Aryan-jain07/path-weaver/pkg/heuristic"
	"github.com/Aryan-jain07/path-weaver/pkg/policy"
	"github.com/Aryan-jain07/path-weaver/pkg/telemetry"
	"github.com/Aryan-jain07/path-weaver/pkg/trace"
	"github.com/Aryan-jain07/path-weaver/pkg/version"
)

// runFlags are the request flags shared by run, play and export.
type runFlags struct {
	algorithm string
	source    string
	target    string
	heuristic string
	scale     float64
}

func addRunFlags(cmd *cobra.Command, f *runFlags) {
	cmd.Flags().StringVarP(&f.algorithm, "algorithm", "a", string(engine.AlgorithmDijkstra),
		"algorithm: dijkstra or astar")
	cmd.Flags().StringVarP(&f.source, "source", "s", "", "source node id")
	cmd.Flags().StringVarP(&f.target, "target", "t", "", "target node id (required for astar)")
	cmd.Flags().StringVar(&f.heuristic, "heuristic", "",
		fmt.Sprintf("heuristic for astar (%s)", strings.Join(heuristic.Names(), ", ")))
	cmd.Flags().Float64Var(&f.scale, "scale", 0, "heuristic scale factor")
}

// materializeFile loads the graph file, gates it, and produces the
// trace. Every step-producing command funnels through here.
func materializeFile(ctx context.Context, path string, f runFlags) (*graph.Graph, *trace.Trace, error) {
	g, err := graphio.DecodeFile(path)
	if err != nil {
		return nil, nil, err
	}

	gate, err := buildGate()
	if err != nil {
		return nil, nil, err
	}
	if err := gate.Admit(policy.Input{
		Algorithm: f.algorithm,
		Source:    f.source,
		Target:    f.target,
		Graph:     g,
	}); err != nil {
		return nil, nil, err
	}

	var h heuristic.Func
	if engine.Algorithm(f.algorithm) == engine.AlgorithmAStar {
		name := f.heuristic
		if name == "" {
			name = cfg.Heuristic.Name
		}
		scale := f.scale
		if scale == 0 {
			scale = cfg.Heuristic.Scale
		}
		h, err = heuristic.ByName(name, scale)
		if err != nil {
			return nil, nil, err
		}
	}

	tr, err := engine.New(engine.WithLogger(logger)).Run(ctx, engine.Request{
		Graph:     g,
		Source:    f.source,
		Target:    f.target,
		Algorithm: engine.Algorithm(f.algorithm),
		Heuristic: h,
	})
	if err != nil {
		return nil, nil, err
	}
	return g, tr, nil
}

var (
	runOut   string
	runReq   runFlags
	runQuiet bool
)

var runCmd = &cobra.Command{
	Use:   "run <graph-file>",
	Short: "Run an algorithm and print the outcome",
	Long: `Load a graph file (json, yaml or hcl), run the chosen algorithm from
the source node, and print the outcome. With --out the full step trace
is written as JSON for later inspection.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		shutdown, err := telemetry.Init(ctx, "pathweaver", version.Current, cfg.Telemetry.Endpoint)
		if err != nil {
			return err
		}
		defer shutdown(context.Background())

		g, tr, err := materializeFile(ctx, args[0], runReq)
		if err != nil {
			return err
		}

		if runOut != "" {
			data, err := json.MarshalIndent(tr, "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(runOut, append(data, '\n'), 0o644); err != nil {
				return fmt.Errorf("write trace: %w", err)
			}
		}
		if !runQuiet {
			fmt.Println(renderSummary(g, tr))
		}
		return nil
	},
}

func init() {
	addRunFlags(runCmd, &runReq)
	runCmd.MarkFlagRequired("source")
	runCmd.Flags().StringVarP(&runOut, "out", "o", "", "write the full trace JSON to this file")
	runCmd.Flags().BoolVarP(&runQuiet, "quiet", "q", false, "suppress the summary")
	rootCmd.AddCommand(runCmd)
}

var (
	sumLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("#64748B")).Bold(true)
	sumValue = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF99")).Bold(true)
	sumWarn  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)
	sumBox   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(0, 1)
)

func renderSummary(g *graph.Graph, tr *trace.Trace) string {
	s := tr.Summarize()
	rows := []string{
		sumLabel.Render("ALGORITHM ") + s.Algorithm,
		sumLabel.Render("GRAPH     ") + fmt.Sprintf("%d nodes, %d edges", g.NodeCount(), g.EdgeCount()),
		sumLabel.Render("STEPS     ") + fmt.Sprintf("%d (%d finalized)", s.Steps, s.Visited),
	}
	switch s.Outcome {
	case trace.KindPathFound:
		rows = append(rows,
			sumLabel.Render("PATH      ")+sumValue.Render(strings.Join(s.Path, " → ")),
			sumLabel.Render("COST      ")+sumValue.Render(fmt.Sprintf("%g", s.Cost)),
		)
	case trace.KindNoPath:
		rows = append(rows, sumLabel.Render("OUTCOME   ")+sumWarn.Render(
			fmt.Sprintf("no path from %s to %s", s.Source, s.Target)))
		if !g.CanReach(s.Source, s.Target) {
			rows = append(rows, sumLabel.Render("REACH     ")+sumWarn.Render(
				fmt.Sprintf("%s lies outside the reachable set of %s", s.Target, s.Source)))
		}
	case trace.KindComplete:
		rows = append(rows,
			sumLabel.Render("OUTCOME   ")+sumValue.Render(
				fmt.Sprintf("all shortest distances from %s finalized", s.Source)),
			sumLabel.Render("REACH     ")+fmt.Sprintf("%d of %d nodes reachable",
				len(g.Reachable(s.Source)), g.NodeCount()),
		)
	default:
		rows = append(rows, sumLabel.Render("OUTCOME   ")+"empty graph, nothing to do")
	}
	return sumBox.Render(strings.Join(rows, "\n"))
}
