// Package config defines default configuration and the file/env loader
// shared by the CLI and the server.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the full runtime configuration.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Server    ServerConfig    `mapstructure:"server"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Playback  PlaybackConfig  `mapstructure:"playback"`
	Policy    PolicyConfig    `mapstructure:"policy"`
	Heuristic HeuristicConfig `mapstructure:"heuristic"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level"`
	// Format is text or json.
	Format string `mapstructure:"format"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	// Listen is the bind address.
	Listen string `mapstructure:"listen"`
	// MaxRuns caps the number of retained traces before the oldest is
	// evicted.
	MaxRuns int `mapstructure:"max_runs"`
}

// TelemetryConfig controls trace export. An empty endpoint keeps
// telemetry local.
type TelemetryConfig struct {
	// Endpoint is the OTLP HTTP collector address, host:port.
	Endpoint string `mapstructure:"endpoint"`
}

// PlaybackConfig controls the interactive player.
type PlaybackConfig struct {
	// Speed is the initial playback multiplier.
	Speed float64 `mapstructure:"speed"`
}

// PolicyConfig bounds admissible requests.
type PolicyConfig struct {
	// MaxNodes and MaxEdges cap graph size; zero disables a cap.
	MaxNodes int `mapstructure:"max_nodes"`
	MaxEdges int `mapstructure:"max_edges"`
	// RulesFile points to a YAML file of CEL admission rules.
	RulesFile string `mapstructure:"rules_file"`
}

// HeuristicConfig selects the default distance estimate for guided
// runs.
type HeuristicConfig struct {
	// Name is a registered heuristic: euclidean, manhattan, haversine
	// or zero.
	Name string `mapstructure:"name"`
	// Scale multiplies the estimate, for weights not in coordinate
	// units.
	Scale float64 `mapstructure:"scale"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Log:       LogConfig{Level: "info", Format: "text"},
		Server:    ServerConfig{Listen: ":8080", MaxRuns: 100},
		Telemetry: TelemetryConfig{},
		Playback:  PlaybackConfig{Speed: 1.0},
		Policy:    PolicyConfig{MaxNodes: 500, MaxEdges: 5000},
		Heuristic: HeuristicConfig{Name: "euclidean", Scale: 1.0},
	}
}

// Load reads configuration from the given file, falling back to
// .pathweaver.yaml in the working directory and then the home
// directory. Environment variables override file values with the
// PATHWEAVER_ prefix, underscores for dots. A missing search-path file
// is not an error; a missing explicit path is.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".pathweaver")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	v.SetEnvPrefix("PATHWEAVER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("server.listen", d.Server.Listen)
	v.SetDefault("server.max_runs", d.Server.MaxRuns)
	v.SetDefault("telemetry.endpoint", d.Telemetry.Endpoint)
	v.SetDefault("playback.speed", d.Playback.Speed)
	v.SetDefault("policy.max_nodes", d.Policy.MaxNodes)
	v.SetDefault("policy.max_edges", d.Policy.MaxEdges)
	v.SetDefault("policy.rules_file", d.Policy.RulesFile)
	v.SetDefault("heuristic.name", d.Heuristic.Name)
	v.SetDefault("heuristic.scale", d.Heuristic.Scale)
}
