package advisor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rgehrsitz/itrgo/internal/domain"
)

// Cache stores generated text by prompt kind and input
type Cache interface {
	Get(ctx context.Context, kind domain.AdviceKind, input string) (string, bool, error)
	Set(ctx context.Context, kind domain.AdviceKind, input, text string) error
	Close() error
}

// NopCache never stores anything
type NopCache struct{}

func (NopCache) Get(context.Context, domain.AdviceKind, string) (string, bool, error) {
	return "", false, nil
}

func (NopCache) Set(context.Context, domain.AdviceKind, string, string) error {
	return nil
}

func (NopCache) Close() error {
	return nil
}

// RedisCache handles caching of generated advice in Redis
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a cache instance. When Redis cannot be reached the
// returned cache has no client and every call is a no-op.
func NewRedisCache(addr, password string, db int, ttl time.Duration) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return &RedisCache{ttl: ttl}
	}
	return &RedisCache{client: client, ttl: ttl}
}

// Available reports whether a Redis connection is in use
func (c *RedisCache) Available() bool {
	return c.client != nil
}

// CacheKey generates the key for a prompt kind and input
func CacheKey(kind domain.AdviceKind, input string) string {
	sum := sha256.Sum256([]byte(string(kind) + "\x00" + input))
	return "advice:" + string(kind) + ":" + hex.EncodeToString(sum[:])
}

// Get retrieves cached text
func (c *RedisCache) Get(ctx context.Context, kind domain.AdviceKind, input string) (string, bool, error) {
	if c.client == nil {
		return "", false, nil
	}

	text, err := c.client.Get(ctx, CacheKey(kind, input)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return text, true, nil
}

// Set caches text with the configured TTL
func (c *RedisCache) Set(ctx context.Context, kind domain.AdviceKind, input, text string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Set(ctx, CacheKey(kind, input), text, c.ttl).Err()
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
