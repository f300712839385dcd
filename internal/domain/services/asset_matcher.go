// Package services implements domain business logic and use cases.
package services

import (
	"errors"
	"regexp"
	"sort"
	"strings"

	"github.com/newrelic/nrdot-release-metrics/internal/domain/entities"
)

// MatchOutcome describes what the matcher decided for an asset name
type MatchOutcome string

// Asset match outcomes
const (
	OutcomeMatched MatchOutcome = "matched"
	OutcomeSkipped MatchOutcome = "skipped" // signature or checksum file
	OutcomeIgnored MatchOutcome = "ignored" // does not follow the naming convention
)

// skippedSuffixes are side files published next to each package
var skippedSuffixes = []string{".asc", ".sum"}

// ErrNoDistributionNames is returned when a matcher is built without any distribution
var ErrNoDistributionNames = errors.New("asset matcher needs at least one distribution name")

// MatchResult is the outcome of matching one asset name
type MatchResult struct {
	Outcome MatchOutcome
	Asset   *entities.ParsedAsset // set only when Outcome is OutcomeMatched
}

// Matched reports whether the asset name produced a parsed asset
func (r MatchResult) Matched() bool {
	return r.Outcome == OutcomeMatched
}

// AssetMatcher extracts distribution, version, os, arch and extension from
// asset names of the form <distribution>_<major>.<minor>.<patch>_<os>_<arch>.<ext>
type AssetMatcher struct {
	pattern *regexp.Regexp
	names   []string
}

// NewAssetMatcher builds a matcher for the given distribution names.
// Names are quoted so regex metacharacters in them match literally.
func NewAssetMatcher(names []string) (*AssetMatcher, error) {
	seen := make(map[string]bool, len(names))
	unique := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		unique = append(unique, n)
	}
	if len(unique) == 0 {
		return nil, ErrNoDistributionNames
	}

	// Longest first keeps the alternation order independent of discovery order
	sort.Slice(unique, func(i, j int) bool {
		if len(unique[i]) != len(unique[j]) {
			return len(unique[i]) > len(unique[j])
		}
		return unique[i] < unique[j]
	})

	quoted := make([]string, len(unique))
	for i, n := range unique {
		quoted[i] = regexp.QuoteMeta(n)
	}

	expr := `^(?P<distribution>` + strings.Join(quoted, "|") + `)` +
		`_(?P<version>[0-9]+\.[0-9]+\.[0-9]+)` +
		`_(?P<os>[a-z]+)` +
		`_(?P<arch>[a-z0-9_]+)` +
		`\.(?P<ext>[a-z0-9.]+)$`

	pattern, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}

	return &AssetMatcher{pattern: pattern, names: unique}, nil
}

// Pattern returns the compiled expression, mostly for diagnostics
func (m *AssetMatcher) Pattern() string {
	return m.pattern.String()
}

// Names returns the distribution names the matcher accepts
func (m *AssetMatcher) Names() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

// Match classifies a single asset name
func (m *AssetMatcher) Match(name string) MatchResult {
	if IsSideFile(name) {
		return MatchResult{Outcome: OutcomeSkipped}
	}

	groups := m.pattern.FindStringSubmatch(name)
	if groups == nil {
		return MatchResult{Outcome: OutcomeIgnored}
	}

	field := func(group string) string {
		return groups[m.pattern.SubexpIndex(group)]
	}

	return MatchResult{
		Outcome: OutcomeMatched,
		Asset: &entities.ParsedAsset{
			Distribution: field("distribution"),
			Version:      field("version"),
			OS:           field("os"),
			Arch:         field("arch"),
			Ext:          field("ext"),
		},
	}
}

// IsSideFile reports whether the asset is a signature or checksum file
func IsSideFile(name string) bool {
	for _, suffix := range skippedSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}
