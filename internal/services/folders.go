package services

import (
	"errors"

	"craftfolio/internal/common"
	"craftfolio/internal/models"
)

// Fixed asset-store folder roots. Entity folders are derived from the
// cloudinary name recorded at creation so a later rename does not detach
// the entity from its folder.
const (
	CategoriesRoot = "categories"
	ProjectsRoot   = "projects"
	ResumeFolder   = "resume"
	ShowcaseFolder = "some of my work"
)

func categoryFolder(category *models.Category) string {
	return CategoriesRoot + "/" + category.CloudinaryName
}

func projectFolder(project *models.Project) string {
	return ProjectsRoot + "/" + project.CloudinaryName
}

func isNotFound(err error) bool {
	return errors.Is(err, common.ErrNotFound)
}
