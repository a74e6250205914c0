package caching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"craftfolio/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CacheService is a read cache for category and project documents. A cache
// miss returns (nil, nil); every write path must invalidate with the Delete
// methods so a reader never sees a stale structural mutation.
type CacheService interface {
	GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error)
	SetCategory(ctx context.Context, category *models.Category, ttl time.Duration) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error)
	SetProject(ctx context.Context, project *models.Project, ttl time.Duration) error
	DeleteProject(ctx context.Context, id uuid.UUID) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &redisCacheService{client: client}
}

func categoryKey(id uuid.UUID) string {
	return fmt.Sprintf("category:%s", id)
}

func projectKey(id uuid.UUID) string {
	return fmt.Sprintf("project:%s", id)
}

func (s *redisCacheService) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category := &models.Category{}
	if ok, err := s.get(ctx, categoryKey(id), category); !ok {
		return nil, err
	}
	return category, nil
}

func (s *redisCacheService) SetCategory(ctx context.Context, category *models.Category, ttl time.Duration) error {
	return s.set(ctx, categoryKey(category.ID), category, ttl)
}

func (s *redisCacheService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.client.Del(ctx, categoryKey(id)).Err()
}

func (s *redisCacheService) GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	project := &models.Project{}
	if ok, err := s.get(ctx, projectKey(id), project); !ok {
		return nil, err
	}
	return project, nil
}

func (s *redisCacheService) SetProject(ctx context.Context, project *models.Project, ttl time.Duration) error {
	return s.set(ctx, projectKey(project.ID), project, ttl)
}

func (s *redisCacheService) DeleteProject(ctx context.Context, id uuid.UUID) error {
	return s.client.Del(ctx, projectKey(id)).Err()
}

func (s *redisCacheService) get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return false, err
	}
	return true, nil
}

func (s *redisCacheService) set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}
