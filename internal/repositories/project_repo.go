package repositories

import (
	"context"
	"errors"
	"fmt"

	"craftfolio/internal/common"
	"craftfolio/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*models.Project, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*models.Project, error)
	ClearCategory(ctx context.Context, categoryID uuid.UUID) error
}

type projectRepo struct {
	db DB
}

func NewProjectRepo(db DB) ProjectRepository {
	return &projectRepo{db: db}
}

const projectColumns = `id, name, cloudinary_name, files, categorized_media, category_id, created_at, updated_at`

func scanProject(row pgx.Row) (*models.Project, error) {
	project := &models.Project{}
	err := row.Scan(&project.ID, &project.Name, &project.CloudinaryName, &project.Files,
		&project.CategorizedMedia, &project.CategoryID, &project.CreatedAt, &project.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return project, nil
}

func (r *projectRepo) Create(ctx context.Context, project *models.Project) error {
	query := `
		INSERT INTO projects (id, name, cloudinary_name, files, categorized_media, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, project.ID, project.Name, project.CloudinaryName,
		project.Files, project.CategorizedMedia, project.CategoryID)
	return err
}

func (r *projectRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE id = $1
	`
	project, err := scanProject(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: project %s", common.ErrNotFound, id)
		}
		return nil, err
	}
	return project, nil
}

func (r *projectRepo) Update(ctx context.Context, project *models.Project) error {
	query := `
		UPDATE projects
		SET name = $1, cloudinary_name = $2, files = $3, categorized_media = $4, category_id = $5, updated_at = NOW()
		WHERE id = $6
	`
	_, err := r.db.Exec(ctx, query, project.Name, project.CloudinaryName, project.Files,
		project.CategorizedMedia, project.CategoryID, project.ID)
	return err
}

func (r *projectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM projects WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *projectRepo) List(ctx context.Context) ([]*models.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects
		ORDER BY created_at ASC
	`
	return r.queryProjects(ctx, query)
}

func (r *projectRepo) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*models.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE category_id = $1
		ORDER BY created_at ASC
	`
	return r.queryProjects(ctx, query, categoryID)
}

// ClearCategory nulls the category back-pointer of every project that still
// references the category. Used after a category delete so no project keeps
// a dangling reference.
func (r *projectRepo) ClearCategory(ctx context.Context, categoryID uuid.UUID) error {
	query := `UPDATE projects SET category_id = NULL, updated_at = NOW() WHERE category_id = $1`
	_, err := r.db.Exec(ctx, query, categoryID)
	return err
}

func (r *projectRepo) queryProjects(ctx context.Context, query string, args ...any) ([]*models.Project, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}
