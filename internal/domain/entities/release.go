package entities

// Release represents a published release of the source repository
type Release struct {
	ID          int64
	TagName     string
	Name        string
	Draft       bool
	Prerelease  bool
	PublishedAt string
	Assets      []Asset
}

// Asset represents a downloadable file attached to a release
type Asset struct {
	ID                 int64
	Name               string
	Size               int64
	DownloadCount      int64
	BrowserDownloadURL string
}

// ParsedAsset holds the fields extracted from a conforming asset name:
// <distribution>_<major>.<minor>.<patch>_<os>_<arch>.<ext>
type ParsedAsset struct {
	Distribution string
	Version      string
	OS           string
	Arch         string
	Ext          string
}
