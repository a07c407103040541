package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisKeyPrefix namespaces every key written by RedisBackend.
const RedisKeyPrefix = "tasklist:"

// RedisBackend stores blobs as plain Redis strings without expiry.
type RedisBackend struct {
	client  *redis.Client
	prefix  string
	timeout time.Duration
}

// NewRedisBackend wraps an existing client. Each call is bounded by timeout.
func NewRedisBackend(client *redis.Client, timeout time.Duration) *RedisBackend {
	return &RedisBackend{client: client, prefix: RedisKeyPrefix, timeout: timeout}
}

// DialRedis connects to addr and verifies the server answers PING.
func DialRedis(opts *redis.Options, timeout time.Duration) (*RedisBackend, error) {
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", opts.Addr, err)
	}
	return NewRedisBackend(client, timeout), nil
}

// Get implements Backend.
func (r *RedisBackend) Get(key string) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get %q: %w", key, err)
	}
	return data, true, nil
}

// Set implements Backend.
func (r *RedisBackend) Set(key string, value []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if err := r.client.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

// Close implements Backend.
func (r *RedisBackend) Close() error { return r.client.Close() }
