// Package assets abstracts the external media host: folder-existence checks,
// cursor-paginated resource listing and public URLs. The store is read-only
// from this system's point of view; uploads happen out of band.
package assets

import "context"

// FolderCheck is the outcome of a folder-existence probe. An absent folder
// is a legitimate terminal outcome, not an error.
type FolderCheck struct {
	Exists     bool
	SubFolders []string
}

// ResourcePage is one page of a folder listing. NextCursor is empty when
// the store has no further results.
type ResourcePage struct {
	URLs       []string
	NextCursor string
}

// Usage is an opaque storage usage summary.
type Usage struct {
	Objects int64 `json:"objects"`
	Bytes   int64 `json:"bytes"`
}

type AssetStore interface {
	// FolderExists probes a logical folder path and reports its immediate
	// subfolders when present.
	FolderExists(ctx context.Context, path string) (*FolderCheck, error)

	// ListResourcesByFolder returns one page of public URLs under the folder,
	// resuming from cursor when non-empty.
	ListResourcesByFolder(ctx context.Context, path, cursor string, maxResults int) (*ResourcePage, error)

	// ListSubfolders returns the immediate child folder names under path.
	ListSubfolders(ctx context.Context, path string) ([]string, error)

	// UsageStats tallies stored objects and bytes.
	UsageStats(ctx context.Context) (*Usage, error)
}
