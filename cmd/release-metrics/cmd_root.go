package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/newrelic/nrdot-release-metrics/internal/config"
	orchestrators "github.com/newrelic/nrdot-release-metrics/internal/domain-orchestrators"
	"github.com/newrelic/nrdot-release-metrics/internal/external-adapters/zerolog"
)

// flagKeys maps command line flags to configuration keys
var flagKeys = map[string]string{
	"distributions-dir": "distributions_dir",
	"log-level":         "log.level",
	"log-format":        "log.format",
	"repository":        "repository",
	"per-page":          "per_page",
	"sink":              "sink",
	"textfile-path":     "textfile_path",
	"region":            "newrelic.region",
	"metrics-url":       "newrelic.metrics_url",
	"github-api-url":    "github.api_url",
}

// commandState is filled by the root pre-run hook for the executing command
type commandState struct {
	v          *viper.Viper
	configFile string
	envFile    string
	cfg        *config.Config
}

// newRootCommand creates a fresh root command instance so tests get isolated state
func newRootCommand(a *app) *cobra.Command {
	state := &commandState{v: config.New()}
	defaults := config.Defaults()

	cmd := &cobra.Command{
		Use:   "release-metrics",
		Short: "Report release asset download counts as gauge metrics",
		Long: `release-metrics reads the distributions directory, fetches the most recent
GitHub releases of the repository and reports the download count of every
package asset to the New Relic Metric API.

Running without a subcommand is the same as 'release-metrics collect'.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          usageArgs(cobra.NoArgs),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.prepare(cmd, state)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runCollect(cmd.Context(), state.cfg)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&state.configFile, "config", "", "Path to a YAML config file")
	pf.StringVar(&state.envFile, "env-file", ".env", "Path to a .env file loaded when present")
	pf.String("distributions-dir", defaults.DistributionsDir, "Directory holding one subdirectory per distribution")
	pf.String("log-level", defaults.Log.Level, "Set log level (trace|debug|info|warn|error)")
	pf.String("log-format", defaults.Log.Format, "Log output format (console|json)")

	addCollectFlags(cmd.Flags(), defaults)

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{Err: err}
	})

	cmd.AddCommand(newCollectCommand(a, state))
	cmd.AddCommand(newListCommand(a, state))
	cmd.AddCommand(newMatchCommand(a, state))

	return cmd
}

// prepare loads configuration and the logger for the executing command
func (a *app) prepare(cmd *cobra.Command, state *commandState) error {
	if err := config.LoadDotEnv(state.envFile); err != nil {
		return &orchestrators.RunError{Kind: orchestrators.KindConfig, Err: err}
	}

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			_ = state.v.BindPFlag(key, f)
		}
	})

	cfg, err := config.Load(state.v, state.configFile)
	if err != nil {
		return &orchestrators.RunError{Kind: orchestrators.KindConfig, Err: err}
	}
	state.cfg = cfg

	a.logger = zerolog.New(zerolog.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Output:  a.stderr,
		Service: "release-metrics",
		Version: version,
	})

	return nil
}
