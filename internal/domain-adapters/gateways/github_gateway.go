// Package gateways implements the domain gateway interfaces over HTTP and local files.
package gateways

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/newrelic/nrdot-release-metrics/internal/domain/entities"
	"github.com/newrelic/nrdot-release-metrics/internal/domain/interfaces"
	"github.com/newrelic/nrdot-release-metrics/internal/domain/interfaces/gateways"
)

const (
	// DefaultGitHubAPIURL is the public GitHub REST endpoint
	DefaultGitHubAPIURL = "https://api.github.com"
	// gitHubAPIVersion pins the REST API version
	gitHubAPIVersion = "2022-11-28"
	// rateLimitWarnThreshold triggers a warning when few requests remain
	rateLimitWarnThreshold = 10
)

var _ gateways.ReleaseGateway = (*HTTPGitHubGateway)(nil)

// HTTPGitHubGateway implements ReleaseGateway using standard HTTP client
type HTTPGitHubGateway struct {
	client    *http.Client
	baseURL   string
	token     string
	userAgent string
	logger    interfaces.Logger
}

// GitHubOption configures an HTTPGitHubGateway
type GitHubOption func(*HTTPGitHubGateway)

// WithGitHubBaseURL points the gateway at another API root (GitHub Enterprise, tests)
func WithGitHubBaseURL(baseURL string) GitHubOption {
	return func(g *HTTPGitHubGateway) {
		if baseURL != "" {
			g.baseURL = strings.TrimSuffix(baseURL, "/")
		}
	}
}

// WithGitHubHTTPClient replaces the HTTP client
func WithGitHubHTTPClient(client *http.Client) GitHubOption {
	return func(g *HTTPGitHubGateway) {
		g.client = client
	}
}

// WithGitHubLogger sets the logger used for rate limit warnings
func WithGitHubLogger(logger interfaces.Logger) GitHubOption {
	return func(g *HTTPGitHubGateway) {
		g.logger = logger
	}
}

// NewHTTPGitHubGateway creates a new GitHub gateway with HTTP client.
// An empty token sends unauthenticated requests.
func NewHTTPGitHubGateway(token string, opts ...GitHubOption) *HTTPGitHubGateway {
	g := &HTTPGitHubGateway{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:   DefaultGitHubAPIURL,
		token:     token,
		userAgent: "nrdot-release-metrics/1.0",
		logger:    &interfaces.NoOpLogger{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// checkRateLimit checks GitHub API rate limit headers and returns error if exhausted
func (g *HTTPGitHubGateway) checkRateLimit(resp *http.Response) error {
	remaining := resp.Header.Get("X-RateLimit-Remaining")
	if remaining == "" {
		return nil // No rate limit header, continue
	}

	remainingInt, err := strconv.Atoi(remaining)
	if err != nil {
		return nil // Invalid header, ignore
	}

	if remainingInt == 0 && resp.StatusCode != http.StatusOK {
		resetTime := resp.Header.Get("X-RateLimit-Reset")
		if resetTime != "" {
			if resetUnix, err := strconv.ParseInt(resetTime, 10, 64); err == nil {
				resetAt := time.Unix(resetUnix, 0)
				return fmt.Errorf("GitHub API rate limit exceeded (0 remaining), resets at %s", resetAt.UTC().Format(time.RFC3339))
			}
		}
		return fmt.Errorf("GitHub API rate limit exceeded (0 remaining)")
	}

	if remainingInt <= rateLimitWarnThreshold {
		g.logger.Warn("GitHub API rate limit low", interfaces.F("remaining", remainingInt))
	}

	return nil
}

// githubRelease represents the GitHub API release format
type githubRelease struct {
	ID          int64         `json:"id"`
	TagName     string        `json:"tag_name"`
	Name        string        `json:"name"`
	Draft       bool          `json:"draft"`
	Prerelease  bool          `json:"prerelease"`
	PublishedAt string        `json:"published_at"`
	Assets      []githubAsset `json:"assets"`
}

// githubAsset represents a GitHub release asset
type githubAsset struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	Size               int64  `json:"size"`
	DownloadCount      int64  `json:"download_count"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// ListReleases lists the most recent releases in a repository, one page only
func (g *HTTPGitHubGateway) ListReleases(ctx context.Context, owner, repo string, perPage int) ([]*entities.Release, error) {
	if perPage <= 0 {
		perPage = gateways.DefaultReleasesPerPage
	}

	endpoint := fmt.Sprintf("%s/repos/%s/%s/releases?per_page=%d",
		g.baseURL, url.PathEscape(owner), url.PathEscape(repo), perPage)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if g.token != "" {
		req.Header.Set("Authorization", "token "+g.token)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", gitHubAPIVersion)
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to list releases: %w", err)
	}
	//nolint:errcheck // Defer close on HTTP response body
	defer resp.Body.Close()

	if err := g.checkRateLimit(resp); err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to list releases: status %d: %s", resp.StatusCode, strings.TrimSpace(string(bodyBytes)))
	}

	var apiReleases []githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&apiReleases); err != nil {
		return nil, fmt.Errorf("failed to decode releases: %w", err)
	}

	releases := make([]*entities.Release, len(apiReleases))
	for i, r := range apiReleases {
		assets := make([]entities.Asset, len(r.Assets))
		for j, a := range r.Assets {
			assets[j] = entities.Asset{
				ID:                 a.ID,
				Name:               a.Name,
				Size:               a.Size,
				DownloadCount:      a.DownloadCount,
				BrowserDownloadURL: a.BrowserDownloadURL,
			}
		}

		releases[i] = &entities.Release{
			ID:          r.ID,
			TagName:     r.TagName,
			Name:        r.Name,
			Draft:       r.Draft,
			Prerelease:  r.Prerelease,
			PublishedAt: r.PublishedAt,
			Assets:      assets,
		}
	}

	return releases, nil
}
