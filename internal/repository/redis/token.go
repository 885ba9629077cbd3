package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/clinicly/booking-api/internal/repository"
)

const revokedKeyPrefix = "revoked_token:"

type tokenStore struct {
	client *redis.Client
}

// NewTokenStore connects to Redis and returns a revocation store backed by
// keys with TTLs matching the remaining token lifetime.
func NewTokenStore(url string) (repository.TokenStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &tokenStore{client: client}, nil
}

func (s *tokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		// Already expired; nothing to track.
		return nil
	}
	if err := s.client.Set(ctx, revokedKeyPrefix+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (s *tokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return n > 0, nil
}

// NoopTokenStore is used when Redis is not configured; tokens then stay
// valid until expiry even after logout.
type NoopTokenStore struct{}

func (NoopTokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	return nil
}

func (NoopTokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return false, nil
}
