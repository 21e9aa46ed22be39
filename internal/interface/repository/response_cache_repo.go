package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

const responseCacheKeyPrefix = "bookingflow:resp:"

// RedisResponseCache shares idempotent backend responses across instances
// and restarts, keyed by the derived request key
type RedisResponseCache struct {
	client *redis.Client
}

func NewRedisResponseCache(client *redis.Client) *RedisResponseCache {
	return &RedisResponseCache{client: client}
}

// Get unmarshals the cached response into dest; a miss is (false, nil)
func (c *RedisResponseCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := c.client.Get(ctx, responseCacheKeyPrefix+key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get from Redis: %w", err)
	}
	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cached response: %w", err)
	}
	return true, nil
}

// Set stores the response with an expiration
func (c *RedisResponseCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}
	return c.client.Set(ctx, responseCacheKeyPrefix+key, jsonData, ttl).Err()
}

type memoryCacheEntry struct {
	data   []byte
	expiry time.Time
}

// MemoryResponseCache is the single-instance fallback used when Redis is
// not configured, and in tests
type MemoryResponseCache struct {
	mu      sync.RWMutex
	entries map[string]memoryCacheEntry
}

func NewMemoryResponseCache() *MemoryResponseCache {
	return &MemoryResponseCache{entries: make(map[string]memoryCacheEntry)}
}

func (c *MemoryResponseCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if time.Now().After(entry.expiry) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return false, nil
	}
	if err := json.Unmarshal(entry.data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *MemoryResponseCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.entries[key] = memoryCacheEntry{data: jsonData, expiry: time.Now().Add(ttl)}
	c.mu.Unlock()
	return nil
}
