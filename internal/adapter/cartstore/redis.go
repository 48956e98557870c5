package cartstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/groveshop/storefront/pkg/retry"
	"github.com/redis/go-redis/v9"
)

const sessionTTL = 7 * 24 * time.Hour

var _ KV = (*RedisKV)(nil)

type RedisKV struct {
	cl *redis.Client
}

func NewRedisKV(ctx context.Context, addr string) (RedisKV, error) {
	const op = "NewRedisKV"

	cl := redis.NewClient(&redis.Options{Addr: addr})

	retryCfg := retry.RetryConfig{
		MaxAttempts: 5,
		Backoff:     retry.ExponentialBackoff(100 * time.Millisecond),
	}
	err := retry.Do(ctx, retryCfg, func() error {
		return cl.Ping(ctx).Err()
	})
	if err != nil {
		return RedisKV{}, fmt.Errorf("%s: store is unavailable: %w", op, err)
	}

	slog.Info("cart store is available", "op", op)
	return RedisKV{cl}, nil
}

func (s RedisKV) Get(ctx context.Context, key string) (string, error) {
	v, err := s.cl.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", err
	}
	return v, nil
}

func (s RedisKV) Set(ctx context.Context, key, value string) error {
	return s.cl.Set(ctx, key, value, sessionTTL).Err()
}

func (s RedisKV) Del(ctx context.Context, keys ...string) error {
	return s.cl.Del(ctx, keys...).Err()
}

func (s RedisKV) Close() {
	const op = "RedisKV.Close"
	log := slog.With("op", op)

	log.Info("closing cart store...")
	if err := s.cl.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("cart store is closed")
}
