package services

import (
	"context"
	"fmt"

	"craftfolio/internal/assets"
	"craftfolio/internal/common"
	"craftfolio/internal/models"
)

const (
	// DefaultPageSize is the per-page resource cap requested from the store.
	DefaultPageSize = 500
	// DefaultMaxPages bounds the cursor chain; a store that keeps returning
	// cursors past this is treated as misbehaving.
	DefaultMaxPages = 50
)

// MediaSyncService mirrors asset-store folder listings into entity media
// fields. It only reads from the store; the store's own listing order is
// authoritative and never re-sorted here.
type MediaSyncService interface {
	// ResolveFolderURLs returns every public URL under the folder, across
	// all pages. An absent folder is ErrNotFound.
	ResolveFolderURLs(ctx context.Context, folderPath string) ([]string, error)

	// RefreshThumbnail sets the category thumbnail to the first listed asset
	// of its folder. The mutation is in-memory; the caller persists.
	RefreshThumbnail(ctx context.Context, category *models.Category) error

	// RefreshFiles replaces the project file list wholesale with the folder
	// listing. Stale entries are dropped, never merged.
	RefreshFiles(ctx context.Context, project *models.Project) error

	// ListSubfolderNames returns the immediate child folder names under a
	// root. An absent root is ErrNotFound.
	ListSubfolderNames(ctx context.Context, rootPath string) ([]string, error)
}

type mediaSyncService struct {
	store    assets.AssetStore
	pageSize int
	maxPages int
}

func NewMediaSyncService(store assets.AssetStore, pageSize, maxPages int) MediaSyncService {
	if pageSize <= 0 || pageSize > DefaultPageSize {
		pageSize = DefaultPageSize
	}
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	return &mediaSyncService{
		store:    store,
		pageSize: pageSize,
		maxPages: maxPages,
	}
}

func (s *mediaSyncService) ResolveFolderURLs(ctx context.Context, folderPath string) ([]string, error) {
	check, err := s.store.FolderExists(ctx, folderPath)
	if err != nil {
		return nil, err
	}
	if !check.Exists {
		return nil, fmt.Errorf("%w: folder %q does not exist in the asset store", common.ErrNotFound, folderPath)
	}

	var urls []string
	cursor := ""
	for page := 0; ; page++ {
		if page >= s.maxPages {
			return nil, fmt.Errorf("%w: folder %q listing exceeded %d pages", common.ErrUpstream, folderPath, s.maxPages)
		}
		resourcePage, err := s.store.ListResourcesByFolder(ctx, folderPath, cursor, s.pageSize)
		if err != nil {
			return nil, err
		}
		urls = append(urls, resourcePage.URLs...)
		if resourcePage.NextCursor == "" {
			return urls, nil
		}
		cursor = resourcePage.NextCursor
	}
}

func (s *mediaSyncService) RefreshThumbnail(ctx context.Context, category *models.Category) error {
	urls, err := s.ResolveFolderURLs(ctx, categoryFolder(category))
	if err != nil {
		return err
	}
	// First listed asset wins.
	if len(urls) > 0 {
		category.Thumbnail = &urls[0]
	} else {
		category.Thumbnail = nil
	}
	return nil
}

func (s *mediaSyncService) RefreshFiles(ctx context.Context, project *models.Project) error {
	urls, err := s.ResolveFolderURLs(ctx, projectFolder(project))
	if err != nil {
		return err
	}
	project.Files = urls
	return nil
}

func (s *mediaSyncService) ListSubfolderNames(ctx context.Context, rootPath string) ([]string, error) {
	check, err := s.store.FolderExists(ctx, rootPath)
	if err != nil {
		return nil, err
	}
	if !check.Exists {
		return nil, fmt.Errorf("%w: folder %q does not exist in the asset store", common.ErrNotFound, rootPath)
	}
	return s.store.ListSubfolders(ctx, rootPath)
}
