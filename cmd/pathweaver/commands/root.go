package commands

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Aryan-jain07/path-weaver/pkg/config"
	"github.com/Aryan-jain07/path-weaver/pkg/policy"
	"github.com/Aryan-jain07/path-weaver/pkg/version"
)

var (
	cfgFile string
	cfg     config.Config
	logger  *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "pathweaver",
	Short: "Replayable shortest-path traces",
	Long: `PathWeaver - Shortest Paths, Step by Step

Run Dijkstra or A* over a graph file and inspect every decision the
algorithm makes: node selections, edge relaxations, rejections. Traces
replay forward and backward in the terminal or over HTTP.`,
	Version:       version.Current,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		logger = buildLogger(cfg.Log)
		slog.SetDefault(logger)
		return nil
	},
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default .pathweaver.yaml, then $HOME/.pathweaver.yaml)")
	rootCmd.SetGlobalNormalizationFunc(normalizeFlag)
}

// normalizeFlag accepts underscore spellings of flag names, matching
// the key style of the config file.
func normalizeFlag(f *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

func buildLogger(lc config.LogConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(lc.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if lc.Format == "json" {
		h = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		h = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(h)
}

// buildGate assembles the admission gate from the configured limits
// and optional CEL rules file.
func buildGate() (*policy.Gate, error) {
	limits := policy.Limits{
		MaxNodes: cfg.Policy.MaxNodes,
		MaxEdges: cfg.Policy.MaxEdges,
	}
	var rules []policy.Rule
	if cfg.Policy.RulesFile != "" {
		var err error
		rules, err = policy.LoadRulesFile(cfg.Policy.RulesFile)
		if err != nil {
			return nil, err
		}
	}
	return policy.NewGate(limits, rules, policy.WithLogger(logger))
}
