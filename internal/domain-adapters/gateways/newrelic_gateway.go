package gateways

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/newrelic/nrdot-release-metrics/internal/domain/entities"
	"github.com/newrelic/nrdot-release-metrics/internal/domain/interfaces/gateways"
)

// New Relic Metric API endpoints
const (
	NewRelicMetricAPIURL   = "https://metric-api.newrelic.com/metric/v1"
	NewRelicMetricAPIURLEU = "https://metric-api.eu.newrelic.com/metric/v1"
)

var _ gateways.MetricsGateway = (*NewRelicMetricsGateway)(nil)

// metricsBatch is one element of the Metric API payload array
type metricsBatch struct {
	Metrics []entities.Metric `json:"metrics"`
}

// encodePayload renders the Metric API body: [{"metrics": [...]}]
func encodePayload(metrics []entities.Metric) ([]byte, error) {
	if metrics == nil {
		metrics = []entities.Metric{}
	}
	body, err := json.Marshal([]metricsBatch{{Metrics: metrics}})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metrics: %w", err)
	}
	return body, nil
}

// HTTPStatusError reports a non-success response from the Metric API
type HTTPStatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("metric API responded %s", e.Status)
	}
	return fmt.Sprintf("metric API responded %s: %s", e.Status, e.Body)
}

// NewRelicMetricsGateway posts metric batches to the New Relic Metric API
type NewRelicMetricsGateway struct {
	client   *http.Client
	endpoint string
	apiKey   string
}

// NewNewRelicMetricsGateway creates a gateway; an empty endpoint selects the US endpoint
func NewNewRelicMetricsGateway(endpoint, apiKey string) *NewRelicMetricsGateway {
	if endpoint == "" {
		endpoint = NewRelicMetricAPIURL
	}
	return &NewRelicMetricsGateway{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		endpoint: endpoint,
		apiKey:   apiKey,
	}
}

// Send posts the whole batch in a single request
func (g *NewRelicMetricsGateway) Send(ctx context.Context, metrics []entities.Metric) error {
	body, err := encodePayload(metrics)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send metrics: %w", err)
	}
	//nolint:errcheck // Defer close on HTTP response body
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &HTTPStatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(bodyBytes)),
		}
	}

	return nil
}
