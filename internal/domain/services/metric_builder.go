package services

import (
	"github.com/newrelic/nrdot-release-metrics/internal/domain/entities"
)

// BuildDownloadMetric turns a parsed asset and its download count into a gauge record.
// timestamp is Unix milliseconds and is shared by every record of one run.
func BuildDownloadMetric(asset entities.ParsedAsset, downloads int64, timestamp int64) entities.Metric {
	return entities.Metric{
		Name:  entities.DownloadsMetricName,
		Type:  entities.MetricTypeGauge,
		Value: downloads,
		Attributes: map[string]string{
			entities.AttrDistro:  asset.Distribution,
			entities.AttrVersion: asset.Version,
			entities.AttrOS:      asset.OS,
			entities.AttrArch:    asset.Arch,
			entities.AttrExt:     asset.Ext,
		},
		Timestamp: timestamp,
	}
}
