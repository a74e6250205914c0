package services

import (
	"context"
	"fmt"

	"craftfolio/internal/common"
	"craftfolio/internal/models"
	"craftfolio/internal/repositories"

	"github.com/google/uuid"
)

// CategoryOrdering owns the dense, 1-based, gap-free sort_order ranking
// across all categories. Only Append and Move touch sort_order, so the
// value set is always exactly {1..N}.
type CategoryOrdering interface {
	// Append persists the category with sort_order = current count + 1.
	Append(ctx context.Context, category *models.Category) error

	// Move shifts the category one position up or down, transposing it with
	// its displaced neighbors.
	Move(ctx context.Context, id uuid.UUID, direction models.MoveDirection) (*models.Category, error)
}

type categoryOrdering struct {
	categoryRepo repositories.CategoryRepository
}

func NewCategoryOrdering(categoryRepo repositories.CategoryRepository) CategoryOrdering {
	return &categoryOrdering{categoryRepo: categoryRepo}
}

func (o *categoryOrdering) Append(ctx context.Context, category *models.Category) error {
	count, err := o.categoryRepo.Count(ctx)
	if err != nil {
		return err
	}
	category.SortOrder = count + 1
	return o.categoryRepo.Create(ctx, category)
}

func (o *categoryOrdering) Move(ctx context.Context, id uuid.UUID, direction models.MoveDirection) (*models.Category, error) {
	if !direction.Valid() {
		return nil, fmt.Errorf("%w: direction must be %q or %q", common.ErrValidation, models.MoveUp, models.MoveDown)
	}

	category, err := o.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldOrder := category.SortOrder
	newOrder := oldOrder - 1
	if direction == models.MoveDown {
		newOrder = oldOrder + 1
	}

	count, err := o.categoryRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if newOrder < 1 || newOrder > count {
		return nil, fmt.Errorf("%w: cannot move category %q %s", common.ErrInvalidMove, category.Name, direction)
	}

	// Displaced range: [newOrder, oldOrder) for up, (oldOrder, newOrder] for
	// down. Inclusive integer bounds for the query.
	lo, hi, shift := newOrder, oldOrder-1, 1
	if direction == models.MoveDown {
		lo, hi, shift = oldOrder+1, newOrder, -1
	}

	displaced, err := o.categoryRepo.ListSortOrderBetween(ctx, lo, hi)
	if err != nil {
		return nil, err
	}

	// Neighbors first, the moved category last. A crash between the writes
	// leaves a transient duplicate/gap rather than a lost category.
	for _, neighbor := range displaced {
		if neighbor.ID == id {
			continue
		}
		if err := o.categoryRepo.UpdateSortOrder(ctx, neighbor.ID, neighbor.SortOrder+shift); err != nil {
			return nil, err
		}
	}
	if err := o.categoryRepo.UpdateSortOrder(ctx, id, newOrder); err != nil {
		return nil, err
	}

	category.SortOrder = newOrder
	return category, nil
}
