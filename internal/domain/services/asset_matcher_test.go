package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newrelic/nrdot-release-metrics/internal/domain/entities"
)

func TestAssetMatcher_Match(t *testing.T) {
	matcher, err := NewAssetMatcher([]string{"nrdot-collector", "nrdot-collector-host", "nrdot-collector-k8s"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		asset   string
		outcome MatchOutcome
		want    *entities.ParsedAsset
	}{
		{
			name:    "tarball",
			asset:   "nrdot-collector-host_1.2.3_linux_amd64.tar.gz",
			outcome: OutcomeMatched,
			want:    &entities.ParsedAsset{Distribution: "nrdot-collector-host", Version: "1.2.3", OS: "linux", Arch: "amd64", Ext: "tar.gz"},
		},
		{
			name:    "shortest distribution name",
			asset:   "nrdot-collector_0.9.0_darwin_arm64.tar.gz",
			outcome: OutcomeMatched,
			want:    &entities.ParsedAsset{Distribution: "nrdot-collector", Version: "0.9.0", OS: "darwin", Arch: "arm64", Ext: "tar.gz"},
		},
		{
			name:    "windows zip",
			asset:   "nrdot-collector-k8s_10.20.30_windows_amd64.zip",
			outcome: OutcomeMatched,
			want:    &entities.ParsedAsset{Distribution: "nrdot-collector-k8s", Version: "10.20.30", OS: "windows", Arch: "amd64", Ext: "zip"},
		},
		{
			name:    "arch with underscore",
			asset:   "nrdot-collector-host_1.2.3_linux_arm_v7.rpm",
			outcome: OutcomeMatched,
			want:    &entities.ParsedAsset{Distribution: "nrdot-collector-host", Version: "1.2.3", OS: "linux", Arch: "arm_v7", Ext: "rpm"},
		},
		{name: "signature", asset: "nrdot-collector-host_1.2.3_linux_amd64.tar.gz.asc", outcome: OutcomeSkipped},
		{name: "checksum", asset: "nrdot-collector-host_1.2.3_checksums.sum", outcome: OutcomeSkipped},
		{name: "unknown distribution", asset: "otelcol_1.2.3_linux_amd64.tar.gz", outcome: OutcomeIgnored},
		{name: "two part version", asset: "nrdot-collector-host_1.2_linux_amd64.tar.gz", outcome: OutcomeIgnored},
		{name: "prefixed version", asset: "nrdot-collector-host_v1.2.3_linux_amd64.tar.gz", outcome: OutcomeIgnored},
		{name: "uppercase os", asset: "nrdot-collector-host_1.2.3_Linux_amd64.tar.gz", outcome: OutcomeIgnored},
		{name: "no extension", asset: "nrdot-collector-host_1.2.3_linux_amd64", outcome: OutcomeIgnored},
		{name: "sbom", asset: "nrdot-collector-host_1.2.3_linux_amd64.sbom-JSON", outcome: OutcomeIgnored},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := matcher.Match(tt.asset)
			assert.Equal(t, tt.outcome, result.Outcome)
			assert.Equal(t, tt.want, result.Asset)
			assert.Equal(t, tt.outcome == OutcomeMatched, result.Matched())
		})
	}
}

func TestAssetMatcher_SkipsSideFilesEvenWhenConforming(t *testing.T) {
	matcher, err := NewAssetMatcher([]string{"dist"})
	require.NoError(t, err)

	// "dist_1.0.0_linux_amd64.sum" would match the pattern with ext "sum"
	assert.Equal(t, OutcomeSkipped, matcher.Match("dist_1.0.0_linux_amd64.sum").Outcome)
	assert.Equal(t, OutcomeSkipped, matcher.Match("dist_1.0.0_linux_amd64.asc").Outcome)
}

func TestAssetMatcher_QuotesDistributionNames(t *testing.T) {
	matcher, err := NewAssetMatcher([]string{"nrdot.collector", "c++"})
	require.NoError(t, err)

	result := matcher.Match("nrdot.collector_1.0.0_linux_amd64.tar.gz")
	require.True(t, result.Matched())
	assert.Equal(t, "nrdot.collector", result.Asset.Distribution)

	assert.Equal(t, OutcomeIgnored, matcher.Match("nrdotXcollector_1.0.0_linux_amd64.tar.gz").Outcome)

	result = matcher.Match("c++_2.0.1_linux_amd64.deb")
	require.True(t, result.Matched())
	assert.Equal(t, "c++", result.Asset.Distribution)

	assert.Contains(t, matcher.Pattern(), `nrdot\.collector`)
	assert.Contains(t, matcher.Pattern(), `c\+\+`)
}

func TestNewAssetMatcher_NoNames(t *testing.T) {
	_, err := NewAssetMatcher(nil)
	assert.ErrorIs(t, err, ErrNoDistributionNames)

	_, err = NewAssetMatcher([]string{""})
	assert.ErrorIs(t, err, ErrNoDistributionNames)
}

func TestNewAssetMatcher_DeduplicatesAndOrders(t *testing.T) {
	matcher, err := NewAssetMatcher([]string{"b", "aa", "b", "ccc"})
	require.NoError(t, err)

	assert.Equal(t, []string{"ccc", "aa", "b"}, matcher.Names())
}

func TestIsSideFile(t *testing.T) {
	assert.True(t, IsSideFile("x.tar.gz.asc"))
	assert.True(t, IsSideFile("checksums.sum"))
	assert.False(t, IsSideFile("x.tar.gz"))
	assert.False(t, IsSideFile("x.ascii"))
}

func FuzzAssetMatcher(f *testing.F) {
	f.Add("nrdot-collector-host_1.2.3_linux_amd64.tar.gz")
	f.Add("nrdot-collector-host_1.2.3_linux_amd64.tar.gz.asc")
	f.Add("")
	f.Add("___..")

	matcher, err := NewAssetMatcher([]string{"nrdot-collector-host", "a.b"})
	if err != nil {
		f.Fatal(err)
	}

	f.Fuzz(func(t *testing.T, name string) {
		result := matcher.Match(name)
		if result.Matched() {
			a := result.Asset
			want := a.Distribution + "_" + a.Version + "_" + a.OS + "_" + a.Arch + "." + a.Ext
			if want != name {
				t.Errorf("fields %+v do not reassemble %q", a, name)
			}
		}
	})
}
