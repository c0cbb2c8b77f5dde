// Package codes stores short-lived validation codes mailed to users during
// onboarding.
package codes

import (
	"context"
	"errors"
	"time"

	"github.com/nordvik-dev/medlemshub/internal/domain/common/errorz"
	"github.com/redis/go-redis/v9"
)

type Storage struct {
	redis *redis.Client
}

func NewStorage(client *redis.Client) *Storage {
	return &Storage{
		redis: client,
	}
}

func (s *Storage) Get(ctx context.Context, userID string) (string, error) {
	code, err := s.redis.Get(ctx, userID).Result()
	if errors.Is(err, redis.Nil) {
		return "", errorz.InvalidCode
	}
	return code, err
}

func (s *Storage) Set(ctx context.Context, userID, code string, expiration time.Duration) error {
	return s.redis.Set(ctx, userID, code, expiration).Err()
}

func (s *Storage) Clear(ctx context.Context, userID string) {
	s.redis.Del(ctx, userID)
}
