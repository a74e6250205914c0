package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is a top-level grouping of projects with a manual display rank.
// The full row is the unit of mutation: handlers re-read, mutate and write
// back whole records.
type Category struct {
	ID             uuid.UUID   `json:"id" db:"id"`
	Name           string      `json:"name" db:"name"`
	CloudinaryName string      `json:"cloudinary_name" db:"cloudinary_name"`
	Projects       []uuid.UUID `json:"projects" db:"projects"`
	SortOrder      int         `json:"sort_order" db:"sort_order"`
	Thumbnail      *string     `json:"thumbnail" db:"thumbnail"`
	CreatedAt      time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at" db:"updated_at"`
}

// MoveDirection is the closed set of single-step reorder directions.
type MoveDirection string

const (
	MoveUp   MoveDirection = "up"
	MoveDown MoveDirection = "down"
)

// Valid reports whether d is one of the two supported directions.
func (d MoveDirection) Valid() bool {
	return d == MoveUp || d == MoveDown
}

// HasProject reports whether the project id is a member of the category.
func (c *Category) HasProject(id uuid.UUID) bool {
	for _, pid := range c.Projects {
		if pid == id {
			return true
		}
	}
	return false
}

// AddProject appends the project id if not already present.
func (c *Category) AddProject(id uuid.UUID) {
	if !c.HasProject(id) {
		c.Projects = append(c.Projects, id)
	}
}

// RemoveProject drops the project id if present.
func (c *Category) RemoveProject(id uuid.UUID) {
	kept := c.Projects[:0]
	for _, pid := range c.Projects {
		if pid != id {
			kept = append(kept, pid)
		}
	}
	c.Projects = kept
}
