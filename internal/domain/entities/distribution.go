// Package entities defines core domain models and data structures.
package entities

// ManifestFileName marks a directory under the distributions root as a distribution
const ManifestFileName = "manifest.yaml"

// Distribution represents a collector distribution discovered on disk
type Distribution struct {
	Name     string
	Dir      string
	Manifest *DistributionManifest // nil when the manifest could not be parsed
}

// DistributionManifest holds the informational parts of a distribution manifest
type DistributionManifest struct {
	Name        string
	Description string
	Version     string
	Module      string
	Components  ComponentCounts
}

// ComponentCounts counts the components declared per manifest section
type ComponentCounts struct {
	Receivers  int
	Processors int
	Exporters  int
	Extensions int
	Connectors int
}

// Total returns the number of declared components
func (c ComponentCounts) Total() int {
	return c.Receivers + c.Processors + c.Exporters + c.Extensions + c.Connectors
}

// DistributionNames returns the names of the given distributions
func DistributionNames(dists []*Distribution) []string {
	names := make([]string, 0, len(dists))
	for _, d := range dists {
		names = append(names, d.Name)
	}
	return names
}
