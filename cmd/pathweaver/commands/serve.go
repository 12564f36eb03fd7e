package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Aryan-jain07/path-weaver/pkg/engine"
	"github.com/Aryan-jain07/path-weaver/pkg/server"
	"github.com/Aryan-jain07/path-weaver/pkg/telemetry"
	"github.com/Aryan-jain07/path-weaver/pkg/version"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve graphs and traces over HTTP",
	Long: `Start the HTTP API. Clients upload graphs, trigger runs, and fetch
full traces or single steps for remote playback. Everything is held in
memory; restarting the server forgets all graphs and runs.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		shutdown, err := telemetry.Init(ctx, "pathweaver", version.Current, cfg.Telemetry.Endpoint)
		if err != nil {
			return err
		}
		defer shutdown(context.Background())

		gate, err := buildGate()
		if err != nil {
			return err
		}
		if serveListen != "" {
			cfg.Server.Listen = serveListen
		}

		srv := server.New(cfg,
			server.WithLogger(logger),
			server.WithGate(gate),
			server.WithRunner(engine.New(engine.WithLogger(logger))),
		)
		return srv.Listen()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "bind address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
