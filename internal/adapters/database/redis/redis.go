package redis

import (
	"context"
	"fmt"

	"github.com/nordvik-dev/medlemshub/internal/adapters/database/redis/codes"
	"github.com/nordvik-dev/medlemshub/internal/adapters/database/redis/payments"
	"github.com/redis/go-redis/v9"
)

// Client bundles the per-concern redis storages, each on its own logical DB.
type Client struct {
	Codes    *codes.Storage
	Payments *payments.Storage
}

type Options struct {
	Host     string
	Port     string
	Password string
}

func New(opts Options) (*Client, error) {
	codeStorage := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", opts.Host, opts.Port),
		Password: opts.Password,
		DB:       0,
	})
	if err := codeStorage.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping codes storage: %w", err)
	}

	paymentStorage := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", opts.Host, opts.Port),
		Password: opts.Password,
		DB:       1,
	})
	if err := paymentStorage.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping payments storage: %w", err)
	}

	return &Client{
		Codes:    codes.NewStorage(codeStorage),
		Payments: payments.NewStorage(paymentStorage),
	}, nil
}
