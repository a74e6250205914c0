package services

import (
	"context"
	"fmt"
	"log"

	"craftfolio/internal/caching"
	"craftfolio/internal/common"
	"craftfolio/internal/models"
	"craftfolio/internal/repositories"

	"github.com/google/uuid"
)

// UpdateProjectRequest carries the optional mutations of a project update.
// A changed CategoryID reparents the project.
type UpdateProjectRequest struct {
	Name             *string                  `json:"name,omitempty"`
	CategoryID       *uuid.UUID               `json:"category_id,omitempty"`
	CategorizedMedia *models.CategorizedMedia `json:"categorized_media,omitempty"`
}

type ProjectService interface {
	Create(ctx context.Context, name string, categoryID uuid.UUID) (*models.Project, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateProjectRequest) (*models.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*models.Project, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*models.Project, error)
	Details(ctx context.Context, id uuid.UUID) (*models.Project, error)
	RefreshFiles(ctx context.Context, id uuid.UUID) (*models.Project, error)
	FolderNames(ctx context.Context) ([]string, error)
	ShowcaseURLs(ctx context.Context) ([]string, error)
}

type projectService struct {
	projectRepo  repositories.ProjectRepository
	categoryRepo repositories.CategoryRepository
	ledger       RelationshipLedger
	mediaSync    MediaSyncService
	cacheService caching.CacheService
}

func NewProjectService(projectRepo repositories.ProjectRepository, categoryRepo repositories.CategoryRepository,
	ledger RelationshipLedger, mediaSync MediaSyncService, cacheService caching.CacheService) ProjectService {
	return &projectService{
		projectRepo:  projectRepo,
		categoryRepo: categoryRepo,
		ledger:       ledger,
		mediaSync:    mediaSync,
		cacheService: cacheService,
	}
}

// Create validates the owning category and the pre-existing asset folder
// before any write, so a failed precondition leaves no document behind.
func (s *projectService) Create(ctx context.Context, name string, categoryID uuid.UUID) (*models.Project, error) {
	if err := common.ValidateRequiredString(name, "name"); err != nil {
		return nil, err
	}
	if categoryID == uuid.Nil {
		return nil, fmt.Errorf("%w: category_id is required", common.ErrValidation)
	}

	if _, err := s.categoryRepo.GetByID(ctx, categoryID); err != nil {
		return nil, err
	}

	urls, err := s.mediaSync.ResolveFolderURLs(ctx, ProjectsRoot+"/"+name)
	if err != nil {
		return nil, err
	}

	if err := s.ledger.EnsureNameAvailable(ctx, categoryID, name); err != nil {
		return nil, err
	}

	project := &models.Project{
		ID:             uuid.New(),
		Name:           name,
		CloudinaryName: name,
		Files:          urls,
		CategoryID:     &categoryID,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}
	if err := s.ledger.Attach(ctx, project.ID, categoryID); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) Update(ctx context.Context, id uuid.UUID, req *UpdateProjectRequest) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := common.ValidateRequiredString(*req.Name, "name"); err != nil {
			return nil, err
		}
		project.Name = *req.Name
	}

	if req.CategoryID != nil && (project.CategoryID == nil || *project.CategoryID != *req.CategoryID) {
		// Reparent verifies the destination before touching the source.
		if err := s.ledger.Reparent(ctx, project.ID, project.CategoryID, *req.CategoryID); err != nil {
			return nil, err
		}
		project.CategoryID = req.CategoryID
	}

	if req.CategorizedMedia != nil {
		project.CategorizedMedia = *req.CategorizedMedia
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return project, nil
}

func (s *projectService) Delete(ctx context.Context, id uuid.UUID) error {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.ledger.DeleteProject(ctx, project); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *projectService) List(ctx context.Context) ([]*models.Project, error) {
	return s.projectRepo.List(ctx)
}

func (s *projectService) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*models.Project, error) {
	return s.projectRepo.ListByCategory(ctx, categoryID)
}

func (s *projectService) Details(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	if cached, err := s.cacheService.GetProject(ctx, id); cached != nil {
		return cached, nil
	} else if err != nil {
		log.Printf("cache error for project %s: %v", id, err)
	}

	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if cacheErr := s.cacheService.SetProject(ctx, project, cacheTTL); cacheErr != nil {
		log.Printf("failed to cache project %s: %v", id, cacheErr)
	}
	return project, nil
}

// RefreshFiles replaces the file list with the current folder listing.
func (s *projectService) RefreshFiles(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.mediaSync.RefreshFiles(ctx, project); err != nil {
		return nil, err
	}
	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return project, nil
}

func (s *projectService) FolderNames(ctx context.Context) ([]string, error) {
	return s.mediaSync.ListSubfolderNames(ctx, ProjectsRoot)
}

// ShowcaseURLs lists the fixed showcase folder served on the public site.
func (s *projectService) ShowcaseURLs(ctx context.Context) ([]string, error) {
	return s.mediaSync.ResolveFolderURLs(ctx, ShowcaseFolder)
}

func (s *projectService) invalidate(ctx context.Context, id uuid.UUID) {
	if err := s.cacheService.DeleteProject(ctx, id); err != nil {
		log.Printf("failed to invalidate cache for project %s: %v", id, err)
	}
}
