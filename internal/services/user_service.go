package services

import (
	"context"
	"fmt"

	"craftfolio/internal/common"
	"craftfolio/internal/models"
	"craftfolio/internal/repositories"

	"github.com/google/uuid"
)

// UpdateResumeRequest carries the optional resume mutations. Empty slices
// are ignored the same way empty strings are.
type UpdateResumeRequest struct {
	Name       *string             `json:"name,omitempty"`
	Summary    *string             `json:"summary,omitempty"`
	Email      *string             `json:"email,omitempty"`
	Skills     *string             `json:"skills,omitempty"`
	Experience []models.Experience `json:"experience,omitempty"`
	Education  []models.Education  `json:"education,omitempty"`
}

type UserService interface {
	Details(ctx context.Context, id uuid.UUID) (*models.User, error)

	// ResumeDetails returns the portfolio owner, the first registered user.
	ResumeDetails(ctx context.Context) (*models.User, error)

	UpdateResume(ctx context.Context, id uuid.UUID, req *UpdateResumeRequest) (*models.User, error)

	// RefreshUserImage points resume.url at the first asset of the fixed
	// resume folder.
	RefreshUserImage(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type userService struct {
	userRepo  repositories.UserRepository
	mediaSync MediaSyncService
}

func NewUserService(userRepo repositories.UserRepository, mediaSync MediaSyncService) UserService {
	return &userService{
		userRepo:  userRepo,
		mediaSync: mediaSync,
	}
}

func (s *userService) Details(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *userService) ResumeDetails(ctx context.Context) (*models.User, error) {
	return s.userRepo.First(ctx)
}

func (s *userService) UpdateResume(ctx context.Context, id uuid.UUID, req *UpdateResumeRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Resume.Name = *req.Name
	}
	if req.Summary != nil {
		user.Resume.Summary = *req.Summary
	}
	if req.Email != nil {
		user.Resume.Email = *req.Email
	}
	if req.Skills != nil {
		user.Resume.Skills = *req.Skills
	}
	if len(req.Experience) > 0 {
		user.Resume.Experience = req.Experience
	}
	if len(req.Education) > 0 {
		user.Resume.Education = req.Education
	}

	// Best-effort mirror of the resume asset; a missing folder keeps the
	// current URL.
	urls, err := s.mediaSync.ResolveFolderURLs(ctx, ResumeFolder)
	if err != nil && !isNotFound(err) {
		return nil, err
	}
	if len(urls) > 0 {
		user.Resume.URL = urls[0]
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) RefreshUserImage(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	urls, err := s.mediaSync.ResolveFolderURLs(ctx, ResumeFolder)
	if err != nil {
		return nil, err
	}
	if len(urls) == 0 {
		return nil, fmt.Errorf("%w: no file found in the %s folder", common.ErrNotFound, ResumeFolder)
	}
	user.Resume.URL = urls[0]

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
