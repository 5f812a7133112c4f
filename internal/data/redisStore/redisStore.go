package redisStore

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/physai/bookrag/internal/config"
	"github.com/physai/bookrag/pkg/logger_i"
)

type Store struct {
	client *redis.Client
	logger *logger_i.Logger
}

// New connects and pings. A failed ping returns an error so the caller
// can fall back to the in-memory store.
func New(ctx context.Context, addr string, password string, db int) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:                  addr,
		Password:              password,
		DB:                    db,
		ContextTimeoutEnabled: true,
		DialTimeout:           config.RedisDialTimeout,
		ReadTimeout:           config.RedisReadTimeout,
		WriteTimeout:          config.RedisWriteTimeout,
	})

	logger := logger_i.NewLogger("Redis Store")

	pingCtx, cancel := context.WithTimeout(ctx, config.RedisDialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("redis offline at %s: %w", addr, err)
	}

	logger.Info("Redis Store init successfully", "addr", addr, "db", db)
	return &Store{
		client: client,
		logger: logger,
	}, nil
}

func (s *Store) Close() error {
	s.logger.Info("Closing Redis Store")
	return s.client.Close()
}

// Only in a _test.go file
func NewTestStore(client *redis.Client) *Store {
	return &Store{
		client: client,
		logger: logger_i.NewLogger("test redis"),
	}
}
