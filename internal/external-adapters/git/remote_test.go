package git

import (
	"testing"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugFromURL(t *testing.T) {
	tests := []struct {
		url     string
		want    string
		wantErr bool
	}{
		{url: "https://github.com/newrelic/nrdot-collector-releases.git", want: "newrelic/nrdot-collector-releases"},
		{url: "https://github.com/newrelic/nrdot-collector-releases", want: "newrelic/nrdot-collector-releases"},
		{url: "https://github.com/newrelic/nrdot-collector-releases/", want: "newrelic/nrdot-collector-releases"},
		{url: "ssh://git@github.com/owner/repo.git", want: "owner/repo"},
		{url: "git@github.com:owner/repo.git", want: "owner/repo"},
		{url: "https://github.com/owner", wantErr: true},
		{url: "https://example.com/group/sub/repo.git", wantErr: true},
		{url: "/srv/git/repo", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, err := SlugFromURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRemoteResolver_Resolve(t *testing.T) {
	dir := t.TempDir()

	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	_, err = repo.CreateRemote(&config.RemoteConfig{
		Name: "origin",
		URLs: []string{"git@github.com:newrelic/nrdot-collector-releases.git"},
	})
	require.NoError(t, err)

	slug, err := NewRemoteResolver(dir).Resolve()
	require.NoError(t, err)
	assert.Equal(t, "newrelic/nrdot-collector-releases", slug)
}

func TestRemoteResolver_Resolve_NoRemote(t *testing.T) {
	dir := t.TempDir()

	_, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	_, err = NewRemoteResolver(dir).Resolve()
	assert.Error(t, err)
}

func TestRemoteResolver_Resolve_NotARepository(t *testing.T) {
	_, err := NewRemoteResolver(t.TempDir()).Resolve()
	assert.Error(t, err)
}
