package tokens

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/unimeet/unimeet-api/internal/domain/common/errorz"
)

// Storage holds one-shot email verification tokens. A token expires with its
// TTL, so a missing key means invalid or expired.
type Storage struct {
	redis *redis.Client
}

func NewStorage(client *redis.Client) *Storage {
	return &Storage{
		redis: client,
	}
}

func (s *Storage) Set(ctx context.Context, token, email string, expiration time.Duration) error {
	return s.redis.Set(ctx, token, email, expiration).Err()
}

// Get resolves a token to the email it was issued for.
func (s *Storage) Get(ctx context.Context, token string) (string, error) {
	email, err := s.redis.Get(ctx, token).Result()
	if errors.Is(err, redis.Nil) {
		return "", errorz.ErrInvalidToken
	}
	return email, err
}

func (s *Storage) Clear(ctx context.Context, token string) error {
	return s.redis.Del(ctx, token).Err()
}
