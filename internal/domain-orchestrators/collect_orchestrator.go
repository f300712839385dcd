// Package orchestrators coordinates complex workflows across multiple domain services.
package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/newrelic/nrdot-release-metrics/internal/domain/entities"
	"github.com/newrelic/nrdot-release-metrics/internal/domain/interfaces"
	"github.com/newrelic/nrdot-release-metrics/internal/domain/interfaces/gateways"
	"github.com/newrelic/nrdot-release-metrics/internal/domain/interfaces/repositories"
	"github.com/newrelic/nrdot-release-metrics/internal/domain/services"
)

// CollectOrchestrator runs discovery, release fetch, asset matching and metric delivery
type CollectOrchestrator struct {
	distRepo repositories.DistributionRepository
	releases gateways.ReleaseGateway
	sink     gateways.MetricsGateway
	logger   interfaces.Logger
	now      func() time.Time
}

// CollectOrchestratorConfig holds optional collaborators for the orchestrator
type CollectOrchestratorConfig struct {
	Logger interfaces.Logger
	Now    func() time.Time
}

// NewCollectOrchestrator creates a new collect orchestrator
func NewCollectOrchestrator(
	distRepo repositories.DistributionRepository,
	releases gateways.ReleaseGateway,
	sink gateways.MetricsGateway,
	config CollectOrchestratorConfig,
) *CollectOrchestrator {
	logger := config.Logger
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	now := config.Now
	if now == nil {
		now = time.Now
	}

	return &CollectOrchestrator{
		distRepo: distRepo,
		releases: releases,
		sink:     sink,
		logger:   logger,
		now:      now,
	}
}

// CollectRequest selects the repository to read releases from
type CollectRequest struct {
	Repository services.RepositoryRef
	PerPage    int
}

// CollectResult contains the outcome of a collect run
type CollectResult struct {
	Distributions []string
	Releases      int
	Matched       int
	Skipped       int
	Ignored       int
	Metrics       []entities.Metric
	Duration      time.Duration
	Success       bool
	Error         error
}

// Run executes one collect pass. Every failure is a *RunError and stops the run;
// the partially filled result is returned alongside it.
func (o *CollectOrchestrator) Run(ctx context.Context, req CollectRequest) (*CollectResult, error) {
	startTime := time.Now()
	result := &CollectResult{}

	fail := func(kind ErrorKind, err error) (*CollectResult, error) {
		result.Error = runError(kind, err)
		result.Duration = time.Since(startTime)
		return result, result.Error
	}

	if req.Repository.Owner == "" || req.Repository.Name == "" {
		return fail(KindConfig, errors.New("repository owner and name are required"))
	}
	perPage := req.PerPage
	if perPage <= 0 {
		perPage = gateways.DefaultReleasesPerPage
	}

	// Step 1: Discover distributions
	dists, err := o.distRepo.ListDistributions(ctx)
	if err != nil {
		return fail(KindDistributions, err)
	}
	result.Distributions = entities.DistributionNames(dists)
	if len(result.Distributions) == 0 {
		return fail(KindDistributions, ErrNoDistributions)
	}
	o.logger.Info("Distributions found", interfaces.F("distributions", result.Distributions))

	matcher, err := services.NewAssetMatcher(result.Distributions)
	if err != nil {
		return fail(KindDistributions, err)
	}
	o.logger.Debug("Asset pattern", interfaces.F("pattern", matcher.Pattern()))

	// Step 2: Fetch releases
	releases, err := o.releases.ListReleases(ctx, req.Repository.Owner, req.Repository.Name, perPage)
	if err != nil {
		return fail(KindFetchReleases, err)
	}
	result.Releases = len(releases)

	// Step 3: Match assets and build metrics, all stamped with the same time
	timestamp := o.now().UnixMilli()
	metrics := make([]entities.Metric, 0)

	for _, release := range releases {
		o.logger.Info("Processing release", interfaces.F("release", release.TagName))

		for _, asset := range release.Assets {
			match := matcher.Match(asset.Name)

			switch match.Outcome {
			case services.OutcomeMatched:
				o.logger.Info("Matched asset",
					interfaces.F("asset", asset.Name),
					interfaces.F("downloads", asset.DownloadCount))
				metrics = append(metrics, services.BuildDownloadMetric(*match.Asset, asset.DownloadCount, timestamp))
				result.Matched++
			case services.OutcomeSkipped:
				o.logger.Info("Skipping signature or checksum file", interfaces.F("asset", asset.Name))
				result.Skipped++
			default:
				o.logger.Info("Ignoring asset", interfaces.F("asset", asset.Name))
				result.Ignored++
			}
		}
	}
	result.Metrics = metrics

	if len(metrics) == 0 {
		return fail(KindNoMetrics, ErrNoMetrics)
	}

	// Step 4: Deliver the batch
	o.logger.Info("Metrics to be sent", interfaces.F("count", len(metrics)))
	if err := o.sink.Send(ctx, metrics); err != nil {
		return fail(KindSendMetrics, err)
	}
	o.logger.Info("Metrics sent successfully", interfaces.F("count", len(metrics)))

	result.Success = true
	result.Duration = time.Since(startTime)
	return result, nil
}

// GetSummary returns a human-readable summary of the run
func (r *CollectResult) GetSummary() string {
	if !r.Success {
		return fmt.Sprintf("Collect failed: %v", r.Error)
	}

	return fmt.Sprintf(`Collect successful!
Distributions: %d
Releases: %d
Assets matched: %d (skipped: %d, ignored: %d)
Duration: %v`,
		len(r.Distributions),
		r.Releases,
		r.Matched,
		r.Skipped,
		r.Ignored,
		r.Duration,
	)
}
