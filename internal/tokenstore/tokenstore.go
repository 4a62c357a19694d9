package tokenstore

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

var ErrRefreshNotFound = errors.New("refresh token not known")

// TokenStore tracks live refresh tokens and blacklisted access tokens.
// A refresh token must be consumed exactly once; an access token on the
// blacklist stays there until it would have expired anyway.
type TokenStore interface {
	SaveRefresh(ctx context.Context, token, userID string, ttl time.Duration) error
	// ConsumeRefresh deletes the token and returns the user it was
	// issued to, so every refresh rotates the token.
	ConsumeRefresh(ctx context.Context, token string) (string, error)
	BlacklistAccess(ctx context.Context, token string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, token string) (bool, error)
}

const (
	refreshPrefix   = "refresh:"
	blacklistPrefix = "blacklist:"
)

// RedisStore keeps token state in Redis; TTLs line up with the JWT
// expiry so stale keys clean themselves up.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) SaveRefresh(ctx context.Context, token, userID string, ttl time.Duration) error {
	return s.client.Set(ctx, refreshPrefix+token, userID, ttl).Err()
}

func (s *RedisStore) ConsumeRefresh(ctx context.Context, token string) (string, error) {
	userID, err := s.client.GetDel(ctx, refreshPrefix+token).Result()
	if err == redis.Nil {
		return "", ErrRefreshNotFound
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

func (s *RedisStore) BlacklistAccess(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, blacklistPrefix+token, 1, ttl).Err()
}

func (s *RedisStore) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	exists, err := s.client.Exists(ctx, blacklistPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}
