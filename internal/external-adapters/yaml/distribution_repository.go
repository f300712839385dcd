package yaml

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/newrelic/nrdot-release-metrics/internal/domain/entities"
	"github.com/newrelic/nrdot-release-metrics/internal/domain/interfaces"
)

// DistributionRepository implements repositories.DistributionRepository over a
// directory whose children are distributions marked by a manifest file
type DistributionRepository struct {
	distributionsDir string
	parser           *ManifestParser
	logger           interfaces.Logger
}

// NewDistributionRepository creates a new YAML-based distribution repository
func NewDistributionRepository(distributionsDir string, logger interfaces.Logger) *DistributionRepository {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &DistributionRepository{
		distributionsDir: distributionsDir,
		parser:           NewManifestParser(),
		logger:           logger,
	}
}

// GetDistribution retrieves a distribution by directory name
func (r *DistributionRepository) GetDistribution(_ context.Context, name string) (*entities.Distribution, error) {
	if name == "" || name != filepath.Base(name) {
		return nil, fmt.Errorf("invalid distribution name: %q", name)
	}

	manifestPath := filepath.Join(r.distributionsDir, name, entities.ManifestFileName)
	if _, err := os.Stat(manifestPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("distribution not found: %s", name)
	}

	return r.load(name), nil
}

// ListDistributions returns every subdirectory that contains a manifest file,
// sorted by name
func (r *DistributionRepository) ListDistributions(_ context.Context) ([]*entities.Distribution, error) {
	info, err := os.Stat(r.distributionsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read distributions directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("distributions path is not a directory: %s", r.distributionsDir)
	}

	matches, err := doublestar.Glob(os.DirFS(r.distributionsDir), path.Join("*", entities.ManifestFileName))
	if err != nil {
		return nil, fmt.Errorf("failed to scan distributions directory: %w", err)
	}
	sort.Strings(matches)

	dists := make([]*entities.Distribution, 0, len(matches))
	for _, m := range matches {
		dists = append(dists, r.load(path.Dir(m)))
	}

	return dists, nil
}

// load builds the distribution entity; a broken manifest does not affect membership
func (r *DistributionRepository) load(name string) *entities.Distribution {
	dir := filepath.Join(r.distributionsDir, name)
	dist := &entities.Distribution{Name: name, Dir: dir}

	manifest, err := r.parser.ParseFile(filepath.Join(dir, entities.ManifestFileName))
	if err != nil {
		r.logger.Warn("Failed to parse distribution manifest",
			interfaces.F("distribution", name),
			interfaces.F("error", err))
		return dist
	}
	dist.Manifest = manifest

	return dist
}
