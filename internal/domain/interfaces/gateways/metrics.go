package gateways

import (
	"context"

	"github.com/newrelic/nrdot-release-metrics/internal/domain/entities"
)

// MetricsGateway delivers a batch of metric records in a single call
type MetricsGateway interface {
	// Send delivers the whole batch; a failure means nothing was accepted
	Send(ctx context.Context, metrics []entities.Metric) error
}
