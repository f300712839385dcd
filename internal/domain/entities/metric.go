package entities

// Metric names and attribute keys reported for release downloads
const (
	DownloadsMetricName = "nrdot.collector.downloads.package"
	MetricTypeGauge     = "gauge"

	AttrDistro  = "nrdot.distro"
	AttrVersion = "nrdot.version"
	AttrOS      = "package.os"
	AttrArch    = "package.arch"
	AttrExt     = "package.ext"
)

// Metric is a single record of the metric ingestion payload
type Metric struct {
	Name       string            `json:"name"`
	Type       string            `json:"type"`
	Value      int64             `json:"value"`
	Attributes map[string]string `json:"attributes"`
	Timestamp  int64             `json:"timestamp"` // Unix milliseconds
}
