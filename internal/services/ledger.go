package services

import (
	"context"
	"fmt"
	"strings"

	"craftfolio/internal/common"
	"craftfolio/internal/models"
	"craftfolio/internal/repositories"

	"github.com/google/uuid"
)

// RelationshipLedger keeps Category.projects and Project.category_id
// consistent with each other. Every structural change to the link goes
// through here so that, for each project p in category c, p.id is in
// c.projects exactly when p.category_id == c.id.
type RelationshipLedger interface {
	// Attach adds the project to the category's member set. Idempotent.
	Attach(ctx context.Context, projectID, categoryID uuid.UUID) error

	// Detach removes the project from the category's member set. A missing
	// category or membership is a no-op.
	Detach(ctx context.Context, projectID, categoryID uuid.UUID) error

	// Reparent moves the project between categories. The destination is
	// verified before anything is mutated; on a missing destination the
	// source set is left untouched.
	Reparent(ctx context.Context, projectID uuid.UUID, from *uuid.UUID, to uuid.UUID) error

	// EnsureNameAvailable rejects a creation-time name collision among the
	// category's existing members.
	EnsureNameAvailable(ctx context.Context, categoryID uuid.UUID, name string) error

	// DeleteCategory removes an empty category and clears any stale
	// back-pointers. A non-empty category is a conflict.
	DeleteCategory(ctx context.Context, categoryID uuid.UUID) error

	// DeleteProject detaches the project from its category, then removes it.
	DeleteProject(ctx context.Context, project *models.Project) error
}

type relationshipLedger struct {
	categoryRepo repositories.CategoryRepository
	projectRepo  repositories.ProjectRepository
}

func NewRelationshipLedger(categoryRepo repositories.CategoryRepository, projectRepo repositories.ProjectRepository) RelationshipLedger {
	return &relationshipLedger{
		categoryRepo: categoryRepo,
		projectRepo:  projectRepo,
	}
}

func (l *relationshipLedger) Attach(ctx context.Context, projectID, categoryID uuid.UUID) error {
	category, err := l.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if category.HasProject(projectID) {
		return nil
	}
	category.AddProject(projectID)
	return l.categoryRepo.Update(ctx, category)
}

func (l *relationshipLedger) Detach(ctx context.Context, projectID, categoryID uuid.UUID) error {
	category, err := l.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		// Stale pointer to a deleted category; nothing to detach from.
		if isNotFound(err) {
			return nil
		}
		return err
	}
	if !category.HasProject(projectID) {
		return nil
	}
	category.RemoveProject(projectID)
	return l.categoryRepo.Update(ctx, category)
}

func (l *relationshipLedger) Reparent(ctx context.Context, projectID uuid.UUID, from *uuid.UUID, to uuid.UUID) error {
	// Check before mutate: the destination must resolve before the source
	// loses its membership.
	if _, err := l.categoryRepo.GetByID(ctx, to); err != nil {
		return err
	}
	if from != nil {
		if err := l.Detach(ctx, projectID, *from); err != nil {
			return err
		}
	}
	return l.Attach(ctx, projectID, to)
}

func (l *relationshipLedger) EnsureNameAvailable(ctx context.Context, categoryID uuid.UUID, name string) error {
	members, err := l.projectRepo.ListByCategory(ctx, categoryID)
	if err != nil {
		return err
	}
	for _, member := range members {
		if strings.EqualFold(member.Name, name) {
			return fmt.Errorf("%w: project %q already exists in this category", common.ErrConflict, name)
		}
	}
	return nil
}

func (l *relationshipLedger) DeleteCategory(ctx context.Context, categoryID uuid.UUID) error {
	category, err := l.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if len(category.Projects) > 0 {
		return fmt.Errorf("%w: disassociate projects to delete category %q", common.ErrConflict, category.Name)
	}
	// Projects whose back-pointer still references this category keep no
	// dangling id after the delete.
	if err := l.projectRepo.ClearCategory(ctx, categoryID); err != nil {
		return err
	}
	return l.categoryRepo.Delete(ctx, categoryID)
}

func (l *relationshipLedger) DeleteProject(ctx context.Context, project *models.Project) error {
	// Detach first: a crash between the two writes can leave a project with
	// a stale category pointer, never a category referencing a deleted
	// project.
	if project.CategoryID != nil {
		if err := l.Detach(ctx, project.ID, *project.CategoryID); err != nil {
			return err
		}
	}
	return l.projectRepo.Delete(ctx, project.ID)
}
