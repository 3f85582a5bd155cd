package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL is the inactivity window after which a session expires.
const DefaultTTL = 3600 * time.Second

// RedisStore keeps each session as a Redis hash under "session:<id>".
// Every read and write refreshes the key's TTL, which gives the
// expire-on-inactivity behavior; Redis itself reaps idle sessions.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{
		client: client,
		prefix: "session:",
		ttl:    ttl,
	}
}

func (r *RedisStore) key(sessionID string) string {
	return r.prefix + sessionID
}

func (r *RedisStore) Get(ctx context.Context, sessionID, field string) (string, bool, error) {
	val, err := r.client.HGet(ctx, r.key(sessionID), field).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("session: get %s: %w", field, err)
	}

	// Touch the session so activity keeps it alive.
	if err := r.client.Expire(ctx, r.key(sessionID), r.ttl).Err(); err != nil {
		return "", false, fmt.Errorf("session: refresh ttl: %w", err)
	}

	return val, true, nil
}

func (r *RedisStore) Set(ctx context.Context, sessionID string, fields map[string]string) error {
	if len(fields) == 0 {
		return fmt.Errorf("session: no fields to set")
	}

	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}

	// HSET writes every field in one command, so a session never ends up
	// with a principal but no role snapshot.
	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, r.key(sessionID), args...)
	pipe.Expire(ctx, r.key(sessionID), r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("session: set: %w", err)
	}
	return nil
}

func (r *RedisStore) Remove(ctx context.Context, sessionID string, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	if err := r.client.HDel(ctx, r.key(sessionID), fields...).Err(); err != nil {
		return fmt.Errorf("session: remove: %w", err)
	}
	return nil
}

func (r *RedisStore) Flush(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, r.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("session: flush: %w", err)
	}
	return nil
}
