package service

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationStore tracks a per-user revocation watermark. Access tokens
// issued before the watermark are dead; bumping it invalidates every
// outstanding token for the user at once.
type RevocationStore interface {
	RevokeAll(ctx context.Context, userID string, at time.Time) error
	RevokedAt(ctx context.Context, userID string) (time.Time, error)
}

type redisRevocationStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRevocationStore builds a RevocationStore over Redis. The watermark
// key expires after the access token TTL, by which point every token issued
// before it has expired on its own.
func NewRedisRevocationStore(client *redis.Client, tokenTTL time.Duration) RevocationStore {
	return &redisRevocationStore{client: client, ttl: tokenTTL}
}

func revocationKey(userID string) string {
	return "auth:revoked:" + userID
}

func (s *redisRevocationStore) RevokeAll(ctx context.Context, userID string, at time.Time) error {
	return s.client.Set(ctx, revocationKey(userID), at.Unix(), s.ttl).Err()
}

func (s *redisRevocationStore) RevokedAt(ctx context.Context, userID string) (time.Time, error) {
	val, err := s.client.Get(ctx, revocationKey(userID)).Result()
	if err == redis.Nil {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	unix, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(unix, 0), nil
}
