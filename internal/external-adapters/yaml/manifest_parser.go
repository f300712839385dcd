// Package yaml provides YAML-based distribution manifest parsing and repository implementations.
package yaml

import (
	"fmt"
	"os"

	"github.com/newrelic/nrdot-release-metrics/internal/domain/entities"
	"gopkg.in/yaml.v3"
)

// yamlManifest represents the parts of a collector builder manifest we read
type yamlManifest struct {
	Dist       yamlDist    `yaml:"dist"`
	Receivers  []yaml.Node `yaml:"receivers"`
	Processors []yaml.Node `yaml:"processors"`
	Exporters  []yaml.Node `yaml:"exporters"`
	Extensions []yaml.Node `yaml:"extensions"`
	Connectors []yaml.Node `yaml:"connectors"`
}

type yamlDist struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Version     string `yaml:"version"`
	Module      string `yaml:"module"`
}

// ManifestParser parses distribution manifest files
type ManifestParser struct{}

// NewManifestParser creates a new YAML parser
func NewManifestParser() *ManifestParser {
	return &ManifestParser{}
}

// ParseFile parses a manifest file into a DistributionManifest entity
func (p *ManifestParser) ParseFile(filePath string) (*entities.DistributionManifest, error) {
	//nolint:gosec // G304: filePath is a manifest path under the distributions root
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return p.Parse(data)
}

// Parse parses YAML bytes into a DistributionManifest entity
func (p *ManifestParser) Parse(data []byte) (*entities.DistributionManifest, error) {
	var ym yamlManifest
	if err := yaml.Unmarshal(data, &ym); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return &entities.DistributionManifest{
		Name:        ym.Dist.Name,
		Description: ym.Dist.Description,
		Version:     ym.Dist.Version,
		Module:      ym.Dist.Module,
		Components: entities.ComponentCounts{
			Receivers:  len(ym.Receivers),
			Processors: len(ym.Processors),
			Exporters:  len(ym.Exporters),
			Extensions: len(ym.Extensions),
			Connectors: len(ym.Connectors),
		},
	}, nil
}
