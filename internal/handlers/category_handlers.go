package handlers

import (
	"net/http"

	"craftfolio/internal/common"
	"craftfolio/internal/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/labstack/echo/v4"
)

// CategoryHandlers handles category-related HTTP requests
type CategoryHandlers struct {
	categoryService services.CategoryService
}

// NewCategoryHandlers creates a new category handlers instance
func NewCategoryHandlers(categoryService services.CategoryService) *CategoryHandlers {
	return &CategoryHandlers{categoryService: categoryService}
}

// CreateCategoryRequest represents the category creation payload
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

func (r CreateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 120)),
	)
}

// CreateCategory creates a category for an asset folder that already exists
// in the store.
func (h *CategoryHandlers) CreateCategory(c echo.Context) error {
	var req CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := req.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.categoryService.Create(c.Request().Context(), req.Name)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":  true,
		"category": category,
	})
}

// ListCategories returns all categories in display order
func (h *CategoryHandlers) ListCategories(c echo.Context) error {
	categories, err := h.categoryService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":    true,
		"count":      len(categories),
		"categories": categories,
	})
}

// CategoryDetails returns a single category
func (h *CategoryHandlers) CategoryDetails(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err)
	}

	category, err := h.categoryService.Details(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":  true,
		"category": category,
	})
}

// UpdateCategory renames a category and/or moves it one position up or down
func (h *CategoryHandlers) UpdateCategory(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err)
	}

	var req services.UpdateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	category, err := h.categoryService.Update(c.Request().Context(), id, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":  true,
		"message":  "Category updated successfully",
		"category": category,
	})
}

// DeleteCategory removes an empty category
func (h *CategoryHandlers) DeleteCategory(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.categoryService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Category deleted",
	})
}

// RefreshCategory re-syncs the category thumbnail from the asset store
func (h *CategoryHandlers) RefreshCategory(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err)
	}

	category, err := h.categoryService.RefreshThumbnail(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":  true,
		"message":  "Category refreshed successfully",
		"category": category,
	})
}

// CategoryFolderNames lists the category folders available in the asset store
func (h *CategoryHandlers) CategoryFolderNames(c echo.Context) error {
	names, err := h.categoryService.FolderNames(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"folders": names,
	})
}
