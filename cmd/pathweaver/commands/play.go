package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Aryan-jain07/path-weaver/pkg/telemetry"
	"github.com/Aryan-jain07/path-weaver/pkg/tui"
	"github.com/Aryan-jain07/path-weaver/pkg/version"
)

var playReq runFlags

var playCmd = &cobra.Command{
	Use:   "play <graph-file>",
	Short: "Run an algorithm and replay it interactively",
	Long: `Load a graph file, run the chosen algorithm, and open the terminal
player on the resulting trace. Space plays and pauses, the arrow keys
step in either direction, g and G jump to the ends.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		shutdown, err := telemetry.Init(ctx, "pathweaver", version.Current, cfg.Telemetry.Endpoint)
		if err != nil {
			return err
		}
		defer shutdown(context.Background())

		g, tr, err := materializeFile(ctx, args[0], playReq)
		if err != nil {
			return err
		}
		return tui.Run(g, tr, tui.WithSpeed(cfg.Playback.Speed))
	},
}

func init() {
	addRunFlags(playCmd, &playReq)
	playCmd.MarkFlagRequired("source")
	rootCmd.AddCommand(playCmd)
}
