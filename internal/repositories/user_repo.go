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

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByResetToken(ctx context.Context, tokenHash string) (*models.User, error)
	First(ctx context.Context) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

type userRepo struct {
	db DB
}

func NewUserRepo(db DB) UserRepository {
	return &userRepo{db: db}
}

const userColumns = `id, email, password_hash, resume, reset_password_token, reset_password_expiry, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Resume,
		&user.ResetPasswordToken, &user.ResetPasswordExpiry, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, resume, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, user.ID, user.Email, user.PasswordHash, user.Resume)
	return err
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.getOne(ctx, query, email)
}

func (r *userRepo) GetByResetToken(ctx context.Context, tokenHash string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE reset_password_token = $1`
	return r.getOne(ctx, query, tokenHash)
}

// First returns the earliest-registered user, the portfolio owner.
func (r *userRepo) First(ctx context.Context) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at ASC LIMIT 1`
	return r.getOne(ctx, query)
}

func (r *userRepo) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET email = $1, password_hash = $2, resume = $3, reset_password_token = $4, reset_password_expiry = $5, updated_at = NOW()
		WHERE id = $6
	`
	_, err := r.db.Exec(ctx, query, user.Email, user.PasswordHash, user.Resume,
		user.ResetPasswordToken, user.ResetPasswordExpiry, user.ID)
	return err
}

func (r *userRepo) getOne(ctx context.Context, query string, args ...any) (*models.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: user", common.ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}
