// Package entities defines core domain models and data structures.
package entities

// CatalogEntry represents one download offered by the Microsoft product catalog
type CatalogEntry struct {
	FileName     string
	LanguageCode string // e.g. "en-us"
	Language     string // e.g. "English"
	Edition      string // e.g. "EnterpriseN"
	Architecture string // e.g. "x64"
	Size         int64  // bytes
	SHA1         string // hex digest published by the catalog, may be empty
	URL          string // direct download URL for the ESD
}

// SelectionCriteria describes the desired catalog entry
type SelectionCriteria struct {
	Language     string // language code, exact match (case-insensitive); empty matches any
	Edition      string // edition substring, space- and case-insensitive; empty matches any
	Architecture string // exact match (case-insensitive); empty matches any
}

// DownloadResult describes a successfully retrieved artifact
type DownloadResult struct {
	Path    string
	Size    int64
	Skipped bool // true when an existing file was reused instead of downloaded
}
