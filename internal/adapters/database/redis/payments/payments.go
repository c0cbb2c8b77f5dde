// Package payments caches provider payment states for a short time so a
// user refreshing an order page does not hammer the provider's status API.
package payments

import (
	"context"
	"errors"
	"time"

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

// GetState returns the cached provider state, or "" when nothing is cached.
func (s *Storage) GetState(ctx context.Context, orderID string) (string, error) {
	state, err := s.redis.Get(ctx, orderID).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return state, err
}

func (s *Storage) SetState(ctx context.Context, orderID, state string, expiration time.Duration) error {
	return s.redis.Set(ctx, orderID, state, expiration).Err()
}
