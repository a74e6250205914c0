package handlers

import (
	"net/http"

	"craftfolio/internal/common"
	"craftfolio/internal/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/labstack/echo/v4"
)

// ProjectHandlers handles project-related HTTP requests
type ProjectHandlers struct {
	projectService services.ProjectService
}

// NewProjectHandlers creates a new project handlers instance
func NewProjectHandlers(projectService services.ProjectService) *ProjectHandlers {
	return &ProjectHandlers{projectService: projectService}
}

// CreateProjectRequest represents the project creation payload
type CreateProjectRequest struct {
	Name       string `json:"name"`
	CategoryID string `json:"category_id"`
}

func (r CreateProjectRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&r.CategoryID, validation.Required, is.UUID),
	)
}

// CreateProject creates a project under a category, mirroring its asset folder
func (h *ProjectHandlers) CreateProject(c echo.Context) error {
	var req CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := req.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	categoryID, err := common.ValidateUUID(req.CategoryID, "category_id")
	if err != nil {
		return respondError(c, err)
	}

	project, err := h.projectService.Create(c.Request().Context(), req.Name, categoryID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Project added successfully and linked to the category",
		"project": project,
	})
}

// ListProjects returns all projects
func (h *ProjectHandlers) ListProjects(c echo.Context) error {
	projects, err := h.projectService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":  true,
		"projects": projects,
	})
}

// ListProjectsByCategory returns the projects owned by one category
func (h *ProjectHandlers) ListProjectsByCategory(c echo.Context) error {
	categoryID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err)
	}

	projects, err := h.projectService.ListByCategory(c.Request().Context(), categoryID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":  true,
		"projects": projects,
	})
}

// ProjectDetails returns a single project
func (h *ProjectHandlers) ProjectDetails(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err)
	}

	project, err := h.projectService.Details(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"project": project,
	})
}

// UpdateProject renames, reparents or re-groups a project's media
func (h *ProjectHandlers) UpdateProject(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err)
	}

	var req services.UpdateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	project, err := h.projectService.Update(c.Request().Context(), id, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"project": project,
	})
}

// DeleteProject removes a project, detaching it from its category first
func (h *ProjectHandlers) DeleteProject(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.projectService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Project deleted",
	})
}

// RefreshProject re-syncs the project file list from the asset store
func (h *ProjectHandlers) RefreshProject(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err)
	}

	project, err := h.projectService.RefreshFiles(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Project refreshed successfully",
		"project": project,
	})
}

// ProjectFolderNames lists the project folders available in the asset store
func (h *ProjectHandlers) ProjectFolderNames(c echo.Context) error {
	names, err := h.projectService.FolderNames(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"folders": names,
	})
}

// Showcase returns the full listing of the public showcase folder
func (h *ProjectHandlers) Showcase(c echo.Context) error {
	urls, err := h.projectService.ShowcaseURLs(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"urls":    urls,
	})
}
