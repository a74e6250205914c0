package services

import (
	"context"
	"log"
	"time"

	"craftfolio/internal/caching"
	"craftfolio/internal/common"
	"craftfolio/internal/models"
	"craftfolio/internal/repositories"

	"github.com/google/uuid"
)

const cacheTTL = 15 * time.Minute

// UpdateCategoryRequest carries the optional mutations of a category update.
// Direction and rename may be combined in one call; the move is applied
// first and never perturbed by the rename.
type UpdateCategoryRequest struct {
	Name      *string               `json:"name,omitempty"`
	Direction *models.MoveDirection `json:"direction,omitempty"`
}

type CategoryService interface {
	Create(ctx context.Context, name string) (*models.Category, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateCategoryRequest) (*models.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*models.Category, error)
	Details(ctx context.Context, id uuid.UUID) (*models.Category, error)
	RefreshThumbnail(ctx context.Context, id uuid.UUID) (*models.Category, error)
	FolderNames(ctx context.Context) ([]string, error)
}

type categoryService struct {
	categoryRepo repositories.CategoryRepository
	ordering     CategoryOrdering
	ledger       RelationshipLedger
	mediaSync    MediaSyncService
	cacheService caching.CacheService
}

func NewCategoryService(categoryRepo repositories.CategoryRepository, ordering CategoryOrdering,
	ledger RelationshipLedger, mediaSync MediaSyncService, cacheService caching.CacheService) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		ordering:     ordering,
		ledger:       ledger,
		mediaSync:    mediaSync,
		cacheService: cacheService,
	}
}

// Create requires the category's asset folder to already exist in the store;
// uploading media is an out-of-band step that precedes domain creation.
func (s *categoryService) Create(ctx context.Context, name string) (*models.Category, error) {
	if err := common.ValidateRequiredString(name, "name"); err != nil {
		return nil, err
	}

	urls, err := s.mediaSync.ResolveFolderURLs(ctx, CategoriesRoot+"/"+name)
	if err != nil {
		return nil, err
	}

	category := &models.Category{
		ID:             uuid.New(),
		Name:           name,
		CloudinaryName: name,
		Projects:       []uuid.UUID{},
	}
	if len(urls) > 0 {
		category.Thumbnail = &urls[0]
	}

	if err := s.ordering.Append(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req *UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Direction != nil {
		category, err = s.ordering.Move(ctx, id, *req.Direction)
		if err != nil {
			return nil, err
		}
	}

	if req.Name != nil {
		if err := common.ValidateRequiredString(*req.Name, "name"); err != nil {
			return nil, err
		}
		category.Name = *req.Name
		if err := s.categoryRepo.Update(ctx, category); err != nil {
			return nil, err
		}
	}

	s.invalidate(ctx, id)
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.ledger.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *categoryService) List(ctx context.Context) ([]*models.Category, error) {
	return s.categoryRepo.List(ctx)
}

func (s *categoryService) Details(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	if cached, err := s.cacheService.GetCategory(ctx, id); cached != nil {
		return cached, nil
	} else if err != nil {
		log.Printf("cache error for category %s: %v", id, err)
	}

	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if cacheErr := s.cacheService.SetCategory(ctx, category, cacheTTL); cacheErr != nil {
		log.Printf("failed to cache category %s: %v", id, cacheErr)
	}
	return category, nil
}

// RefreshThumbnail re-reads the category's asset folder and persists the
// first listed URL as the thumbnail.
func (s *categoryService) RefreshThumbnail(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.mediaSync.RefreshThumbnail(ctx, category); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return category, nil
}

// FolderNames lists the candidate category folders present in the asset
// store, whether or not a category exists for them yet.
func (s *categoryService) FolderNames(ctx context.Context) ([]string, error) {
	return s.mediaSync.ListSubfolderNames(ctx, CategoriesRoot)
}

func (s *categoryService) invalidate(ctx context.Context, id uuid.UUID) {
	if err := s.cacheService.DeleteCategory(ctx, id); err != nil {
		log.Printf("failed to invalidate cache for category %s: %v", id, err)
	}
}
