// Package gateways defines interfaces for external service adapters.
package gateways

import (
	"context"

	"github.com/newrelic/nrdot-release-metrics/internal/domain/entities"
)

// DefaultReleasesPerPage is the number of most recent releases inspected per run
const DefaultReleasesPerPage = 50

// ReleaseGateway defines read access to a repository's published releases
type ReleaseGateway interface {
	// ListReleases returns at most perPage of the most recent releases, with their assets
	ListReleases(ctx context.Context, owner, repo string, perPage int) ([]*entities.Release, error)
}
