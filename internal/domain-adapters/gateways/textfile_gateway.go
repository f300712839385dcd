package gateways

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/newrelic/nrdot-release-metrics/internal/domain/entities"
	"github.com/newrelic/nrdot-release-metrics/internal/domain/interfaces/gateways"
)

var _ gateways.MetricsGateway = (*TextfileMetricsGateway)(nil)

// TextfileMetricsGateway writes gauges in the Prometheus text exposition format,
// for pickup by the node_exporter textfile collector
type TextfileMetricsGateway struct {
	path string
}

// NewTextfileMetricsGateway creates a gateway writing to path
func NewTextfileMetricsGateway(path string) *TextfileMetricsGateway {
	return &TextfileMetricsGateway{path: path}
}

// promName converts dotted metric and attribute names to Prometheus names
func promName(name string) string {
	return strings.NewReplacer(".", "_", "-", "_").Replace(name)
}

// Send replaces the textfile with the given batch
func (g *TextfileMetricsGateway) Send(_ context.Context, metrics []entities.Metric) error {
	registry := prometheus.NewRegistry()
	vecs := make(map[string]*prometheus.GaugeVec)
	labelSets := make(map[string][]string)

	for _, m := range metrics {
		if m.Type != entities.MetricTypeGauge {
			return fmt.Errorf("unsupported metric type %q for %s", m.Type, m.Name)
		}

		name := promName(m.Name)
		vec, ok := vecs[name]
		if !ok {
			keys := make([]string, 0, len(m.Attributes))
			for k := range m.Attributes {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			labelNames := make([]string, len(keys))
			for i, k := range keys {
				labelNames[i] = promName(k)
			}

			vec = prometheus.NewGaugeVec(prometheus.GaugeOpts{
				Name: name,
				Help: "Cumulative download count of a release asset (" + m.Name + ").",
			}, labelNames)
			if err := registry.Register(vec); err != nil {
				return fmt.Errorf("failed to register %s: %w", name, err)
			}
			vecs[name] = vec
			labelSets[name] = keys
		}

		labels := make(prometheus.Labels, len(m.Attributes))
		for k, v := range m.Attributes {
			labels[promName(k)] = v
		}
		if len(labels) != len(labelSets[name]) {
			return fmt.Errorf("metric %s has inconsistent attributes", m.Name)
		}

		gauge, err := vec.GetMetricWith(labels)
		if err != nil {
			return fmt.Errorf("metric %s: %w", m.Name, err)
		}
		gauge.Set(float64(m.Value))
	}

	if err := prometheus.WriteToTextfile(g.path, registry); err != nil {
		return fmt.Errorf("failed to write textfile %s: %w", g.path, err)
	}
	return nil
}
