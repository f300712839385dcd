package gateways

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/newrelic/nrdot-release-metrics/internal/domain/entities"
	"github.com/newrelic/nrdot-release-metrics/internal/domain/interfaces/gateways"
)

var _ gateways.MetricsGateway = (*WriterMetricsGateway)(nil)

// WriterMetricsGateway prints the Metric API payload instead of sending it (dry run)
type WriterMetricsGateway struct {
	out io.Writer
}

// NewWriterMetricsGateway creates a dry-run gateway writing to out
func NewWriterMetricsGateway(out io.Writer) *WriterMetricsGateway {
	return &WriterMetricsGateway{out: out}
}

// Send writes the indented payload followed by a newline
func (g *WriterMetricsGateway) Send(_ context.Context, metrics []entities.Metric) error {
	body, err := encodePayload(metrics)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		return fmt.Errorf("failed to format metrics: %w", err)
	}
	buf.WriteByte('\n')

	if _, err := buf.WriteTo(g.out); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}
