package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "hookgen:history:"

// RedisStore is a HistoryStore backed by one Redis list per key.
type RedisStore struct {
	client   redis.Cmdable
	closer   func() error
	ttl      time.Duration
	maxLines int
}

// NewRedisStore connects to redisURL and verifies the connection.
func NewRedisStore(ctx context.Context, redisURL string, ttl time.Duration, maxLines int) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, &Error{Op: "connect", Key: redisURL, Cause: err}
	}

	client := redis.NewClient(opts)

	// Test connection
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, &Error{Op: "ping", Key: opts.Addr, Cause: err}
	}

	return NewRedisStoreFromClient(client, client.Close, ttl, maxLines), nil
}

// NewRedisStoreFromClient wraps an existing client. closer may be nil.
func NewRedisStoreFromClient(client redis.Cmdable, closer func() error, ttl time.Duration, maxLines int) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}
	return &RedisStore{client: client, closer: closer, ttl: ttl, maxLines: maxLines}
}

// Recent implements HistoryStore.
func (s *RedisStore) Recent(ctx context.Context, key string, limit int) ([]string, error) {
	start := int64(0)
	if limit > 0 {
		start = int64(-limit)
	}
	lines, err := s.client.LRange(ctx, redisKey(key), start, -1).Result()
	if err != nil {
		return nil, &Error{Op: "read", Key: key, Cause: err}
	}
	return lines, nil
}

// Remember implements HistoryStore.
func (s *RedisStore) Remember(ctx context.Context, key string, lines []string) error {
	lines = cleanLines(lines)
	if len(lines) == 0 {
		return nil
	}

	values := make([]interface{}, len(lines))
	for i, l := range lines {
		values[i] = l
	}

	rk := redisKey(key)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, rk, values...)
		pipe.LTrim(ctx, rk, int64(-s.maxLines), -1)
		pipe.Expire(ctx, rk, s.ttl)
		return nil
	})
	if err != nil {
		return &Error{Op: "write", Key: key, Cause: err}
	}
	return nil
}

// Close implements HistoryStore.
func (s *RedisStore) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}

func redisKey(key string) string {
	return redisKeyPrefix + key
}
