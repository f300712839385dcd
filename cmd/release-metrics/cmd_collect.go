package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/newrelic/nrdot-release-metrics/internal/config"
	"github.com/newrelic/nrdot-release-metrics/internal/domain-adapters/gateways"
	orchestrators "github.com/newrelic/nrdot-release-metrics/internal/domain-orchestrators"
	"github.com/newrelic/nrdot-release-metrics/internal/domain/interfaces"
	domaingateways "github.com/newrelic/nrdot-release-metrics/internal/domain/interfaces/gateways"
	"github.com/newrelic/nrdot-release-metrics/internal/domain/services"
	"github.com/newrelic/nrdot-release-metrics/internal/external-adapters/yaml"
)

func addCollectFlags(fs *pflag.FlagSet, defaults config.Config) {
	fs.String("repository", "", "Repository as owner/repo (default: GITHUB_REPOSITORY or the origin remote)")
	fs.Int("per-page", defaults.PerPage, "Number of most recent releases to inspect")
	fs.String("sink", defaults.Sink, "Where to deliver metrics (newrelic|stdout|textfile)")
	fs.String("textfile-path", "", "Output file for the textfile sink")
	fs.String("region", defaults.NewRelic.Region, "New Relic Metric API region (us|eu)")
	fs.String("metrics-url", "", "Override the Metric API endpoint")
	fs.String("github-api-url", defaults.GitHub.APIURL, "GitHub REST API root")
}

func newCollectCommand(a *app, state *commandState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Collect release download counts and send them as metrics",
		Example: `  release-metrics collect
  release-metrics collect --repository newrelic/nrdot-collector-releases --sink stdout
  release-metrics collect --sink textfile --textfile-path /var/lib/node_exporter/nrdot.prom`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runCollect(cmd.Context(), state.cfg)
		},
	}

	addCollectFlags(cmd.Flags(), config.Defaults())

	return cmd
}

func (a *app) runCollect(ctx context.Context, cfg *config.Config) error {
	if cfg.Repository == "" && a.resolveRepo != nil {
		slug, err := a.resolveRepo()
		if err != nil {
			a.logger.Debug("Repository not resolvable from git remote", interfaces.F("error", err))
		} else {
			a.logger.Info("Repository resolved from git remote", interfaces.F("repository", slug))
			cfg.Repository = slug
		}
	}

	if err := cfg.ValidateCollect(); err != nil {
		return &orchestrators.RunError{Kind: orchestrators.KindConfig, Err: err}
	}

	repoRef, err := services.ParseRepository(cfg.Repository)
	if err != nil {
		return &orchestrators.RunError{Kind: orchestrators.KindConfig, Err: err}
	}

	sink, err := a.newSink(cfg)
	if err != nil {
		return &orchestrators.RunError{Kind: orchestrators.KindConfig, Err: err}
	}

	distRepo := yaml.NewDistributionRepository(cfg.DistributionsDir, a.logger)
	releases := gateways.NewHTTPGitHubGateway(cfg.GitHub.Token,
		gateways.WithGitHubBaseURL(cfg.GitHub.APIURL),
		gateways.WithGitHubLogger(a.logger))

	orch := orchestrators.NewCollectOrchestrator(distRepo, releases, sink, orchestrators.CollectOrchestratorConfig{
		Logger: a.logger,
	})

	a.logger.Info("Collecting release download metrics",
		interfaces.F("repository", repoRef.String()),
		interfaces.F("sink", cfg.Sink))

	result, err := orch.Run(ctx, orchestrators.CollectRequest{
		Repository: repoRef,
		PerPage:    cfg.PerPage,
	})
	if err != nil {
		return err
	}

	a.logger.Debug(result.GetSummary())
	return nil
}

func (a *app) newSink(cfg *config.Config) (domaingateways.MetricsGateway, error) {
	switch cfg.Sink {
	case config.SinkNewRelic:
		return gateways.NewNewRelicMetricsGateway(cfg.MetricsEndpoint(), cfg.NewRelic.LicenseKey), nil
	case config.SinkStdout:
		return gateways.NewWriterMetricsGateway(a.stdout), nil
	case config.SinkTextfile:
		return gateways.NewTextfileMetricsGateway(cfg.TextfilePath), nil
	default:
		return nil, fmt.Errorf("unknown sink %q", cfg.Sink)
	}
}
