package models

import (
	"time"

	"github.com/google/uuid"
)

// Experience is a single resume work entry.
type Experience struct {
	Office      string `json:"office"`
	Designation string `json:"designation"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

// Education is a single resume education entry.
type Education struct {
	Degree     string `json:"degree"`
	Department string `json:"department"`
	Institute  string `json:"institute"`
}

// Resume holds the portfolio owner's resume document. URL mirrors the
// first asset of the fixed resume folder in the asset store.
type Resume struct {
	Name       string       `json:"name"`
	Summary    string       `json:"summary"`
	Email      string       `json:"email"`
	Skills     string       `json:"skills"`
	URL        string       `json:"url"`
	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education"`
}

// EmptyResume returns the skeleton resume a fresh user starts with.
func EmptyResume(email string) Resume {
	return Resume{
		Email:      email,
		Experience: []Experience{{}},
		Education:  []Education{{}},
	}
}

// User is an administrative account. The first registered user is treated
// as the portfolio owner whose resume is publicly served.
type User struct {
	ID                  uuid.UUID  `json:"id" db:"id"`
	Email               string     `json:"email" db:"email"`
	PasswordHash        string     `json:"-" db:"password_hash"`
	Resume              Resume     `json:"resume" db:"resume"`
	ResetPasswordToken  *string    `json:"-" db:"reset_password_token"`
	ResetPasswordExpiry *time.Time `json:"-" db:"reset_password_expiry"`
	CreatedAt           time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at" db:"updated_at"`
}
