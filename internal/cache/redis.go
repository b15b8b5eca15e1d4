package cache

import (
	"context"
	"fmt"
	"time"

	"filmlog/internal/config"

	"github.com/redis/go-redis/v9"
)

const denyKeyPrefix = "auth:denied:"

// TokenStore is a redis-backed denylist for revoked access tokens. Entries
// live exactly as long as the token they shadow, so the set stays small.
type TokenStore struct {
	client *redis.Client
}

func NewTokenStore(cfg *config.Config) (*TokenStore, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if cfg.RedisPassword != "" {
		opts.Password = cfg.RedisPassword
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &TokenStore{client: client}, nil
}

// Deny records the token as revoked for the given remaining lifetime.
func (s *TokenStore) Deny(ctx context.Context, token string, ttl time.Duration) error {
	return s.client.Set(ctx, denyKeyPrefix+token, "1", ttl).Err()
}

// IsDenied reports whether the token has been revoked.
func (s *TokenStore) IsDenied(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, denyKeyPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *TokenStore) Close() error {
	return s.client.Close()
}
