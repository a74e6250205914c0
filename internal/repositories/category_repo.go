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

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*models.Category, error)
	Count(ctx context.Context) (int, error)
	ListSortOrderBetween(ctx context.Context, lo, hi int) ([]*models.Category, error)
	UpdateSortOrder(ctx context.Context, id uuid.UUID, sortOrder int) error
}

type categoryRepo struct {
	db DB
}

func NewCategoryRepo(db DB) CategoryRepository {
	return &categoryRepo{db: db}
}

const categoryColumns = `id, name, cloudinary_name, projects, sort_order, thumbnail, created_at, updated_at`

func scanCategory(row pgx.Row) (*models.Category, error) {
	category := &models.Category{}
	err := row.Scan(&category.ID, &category.Name, &category.CloudinaryName, &category.Projects,
		&category.SortOrder, &category.Thumbnail, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (r *categoryRepo) Create(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (id, name, cloudinary_name, projects, sort_order, thumbnail, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, category.ID, category.Name, category.CloudinaryName,
		category.Projects, category.SortOrder, category.Thumbnail)
	return err
}

func (r *categoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE id = $1
	`
	category, err := scanCategory(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: category %s", common.ErrNotFound, id)
		}
		return nil, err
	}
	return category, nil
}

// Update writes the whole record back. Sort order is written too so callers
// that only touched name/thumbnail/projects must carry the loaded value.
func (r *categoryRepo) Update(ctx context.Context, category *models.Category) error {
	query := `
		UPDATE categories
		SET name = $1, cloudinary_name = $2, projects = $3, sort_order = $4, thumbnail = $5, updated_at = NOW()
		WHERE id = $6
	`
	_, err := r.db.Exec(ctx, query, category.Name, category.CloudinaryName, category.Projects,
		category.SortOrder, category.Thumbnail, category.ID)
	return err
}

func (r *categoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM categories WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *categoryRepo) List(ctx context.Context) ([]*models.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		ORDER BY sort_order ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *categoryRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count)
	return count, err
}

// ListSortOrderBetween returns the categories whose sort_order lies in the
// inclusive range [lo, hi], ordered ascending.
func (r *categoryRepo) ListSortOrderBetween(ctx context.Context, lo, hi int) ([]*models.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE sort_order BETWEEN $1 AND $2
		ORDER BY sort_order ASC
	`
	rows, err := r.db.Query(ctx, query, lo, hi)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *categoryRepo) UpdateSortOrder(ctx context.Context, id uuid.UUID, sortOrder int) error {
	query := `UPDATE categories SET sort_order = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, sortOrder, id)
	return err
}
