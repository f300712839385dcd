// Package repositories defines interfaces for data access layers.
package repositories

import (
	"context"

	"github.com/newrelic/nrdot-release-metrics/internal/domain/entities"
)

// DistributionRepository defines the interface for discovering distributions
type DistributionRepository interface {
	// GetDistribution retrieves a single distribution by directory name
	GetDistribution(ctx context.Context, name string) (*entities.Distribution, error)

	// ListDistributions returns every directory that carries a manifest file
	ListDistributions(ctx context.Context) ([]*entities.Distribution, error)
}
