package models

import (
	"time"

	"github.com/google/uuid"
)

// Story is a named group of story files inside categorized media.
type Story struct {
	Files []string `json:"files"`
}

// CategorizedMedia is the free-form sub-grouping of a project's files.
// It is set only by explicit update and never synchronized from the
// asset store.
type CategorizedMedia struct {
	Videos  []string `json:"videos"`
	Images  []string `json:"images"`
	Stories []Story  `json:"stories"`
}

// Project is a named unit of work belonging to at most one category,
// mirroring a folder of media assets.
type Project struct {
	ID               uuid.UUID        `json:"id" db:"id"`
	Name             string           `json:"name" db:"name"`
	CloudinaryName   string           `json:"cloudinary_name" db:"cloudinary_name"`
	Files            []string         `json:"files" db:"files"`
	CategorizedMedia CategorizedMedia `json:"categorized_media" db:"categorized_media"`
	CategoryID       *uuid.UUID       `json:"category_id" db:"category_id"`
	CreatedAt        time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at" db:"updated_at"`
}
