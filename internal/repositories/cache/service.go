package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"wasit/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	keyMethodsEnabled = "transfer:methods:enabled"
	keyMethodsAll     = "transfer:methods:all"
)

// CacheService is a JSON-over-redis cache with hit/miss counters.
type CacheService struct {
	client *redis.Client
	ttl    time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// Base operations
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

// Get decodes key into dest and reports whether it was present.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			s.misses.Add(1)
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	s.hits.Add(1)
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

// Key generation
func (s *CacheService) GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

// Method list caching. onlyEnabled selects the storefront list or the admin list.
func (s *CacheService) GetMethods(ctx context.Context, onlyEnabled bool) ([]models.TransferMethod, bool, error) {
	var methods []models.TransferMethod
	found, err := s.Get(ctx, methodsKey(onlyEnabled), &methods)
	if err != nil || !found {
		return nil, false, err
	}
	return methods, true, nil
}

func (s *CacheService) SetMethods(ctx context.Context, onlyEnabled bool, methods []models.TransferMethod) error {
	return s.Set(ctx, methodsKey(onlyEnabled), methods)
}

// InvalidateMethods drops both method lists. Called after every admin mutation.
func (s *CacheService) InvalidateMethods(ctx context.Context) error {
	return s.Delete(ctx, keyMethodsEnabled, keyMethodsAll)
}

// Stats returns the hit/miss counters since start.
func (s *CacheService) Stats() (hits, misses int64) {
	return s.hits.Load(), s.misses.Load()
}

// FlushAll flushes all keys from the cache
func (s *CacheService) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

// Close closes the Redis client connection
func (s *CacheService) Close() error {
	return s.client.Close()
}

func methodsKey(onlyEnabled bool) string {
	if onlyEnabled {
		return keyMethodsEnabled
	}
	return keyMethodsAll
}
