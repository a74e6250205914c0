package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"craftfolio/internal/common"
	"craftfolio/internal/models"
	"craftfolio/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 8
	resetTokenTTL     = 15 * time.Minute
)

// AuthService handles credentials and JWT token management for the
// administrative account.
type AuthService interface {
	Register(ctx context.Context, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword, confirm string) (string, error)

	// ForgotPassword returns the plaintext reset token; only its hash is
	// stored, with a short expiry.
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, password, confirm string) (*models.User, string, error)
}

type authService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, tokenTTL time.Duration) AuthService {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

func (s *authService) Register(ctx context.Context, email, password string) (*models.User, string, error) {
	if err := common.ValidateRequiredString(email, "email"); err != nil {
		return nil, "", err
	}
	if len(password) < minPasswordLength {
		return nil, "", fmt.Errorf("%w: password should contain at least %d characters", common.ErrValidation, minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Resume:       models.EmptyResume(email),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", common.ErrValidation)
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", fmt.Errorf("%w: invalid email or password", common.ErrUnauthorized)
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *authService) UpdatePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword, confirm string) (string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return "", fmt.Errorf("%w: old password is not correct", common.ErrValidation)
	}
	if newPassword != confirm {
		return "", fmt.Errorf("%w: passwords do not match", common.ErrValidation)
	}
	if len(newPassword) < minPasswordLength {
		return "", fmt.Errorf("%w: password should contain at least %d characters", common.ErrValidation, minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	user.PasswordHash = string(hash)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return "", err
	}

	return s.generateToken(user.ID)
}

func (s *authService) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	raw := make([]byte, 20)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	token := hex.EncodeToString(raw)

	hash := hashResetToken(token)
	expiry := time.Now().Add(resetTokenTTL)
	user.ResetPasswordToken = &hash
	user.ResetPasswordExpiry = &expiry
	if err := s.userRepo.Update(ctx, user); err != nil {
		return "", err
	}

	return token, nil
}

func (s *authService) ResetPassword(ctx context.Context, token, password, confirm string) (*models.User, string, error) {
	user, err := s.userRepo.GetByResetToken(ctx, hashResetToken(token))
	if err != nil {
		if isNotFound(err) {
			return nil, "", fmt.Errorf("%w: reset password token is invalid or expired", common.ErrValidation)
		}
		return nil, "", err
	}
	if user.ResetPasswordExpiry == nil || time.Now().After(*user.ResetPasswordExpiry) {
		return nil, "", fmt.Errorf("%w: reset password token is invalid or expired", common.ErrValidation)
	}
	if password != confirm {
		return nil, "", fmt.Errorf("%w: passwords do not match", common.ErrValidation)
	}
	if len(password) < minPasswordLength {
		return nil, "", fmt.Errorf("%w: password should contain at least %d characters", common.ErrValidation, minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}
	user.PasswordHash = string(hash)
	user.ResetPasswordToken = nil
	user.ResetPasswordExpiry = nil
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, "", err
	}

	jwtToken, err := s.generateToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, jwtToken, nil
}

func (s *authService) generateToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
