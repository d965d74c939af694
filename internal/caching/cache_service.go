package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"servicefinder/internal/models"
)

// DefaultListTTL bounds staleness of cached catalog listings.
const DefaultListTTL = 5 * time.Minute

// CacheService caches filtered catalog listings. A nil slice with a nil error
// is a cache miss; Redis outages surface as errors the caller treats as a miss.
type CacheService interface {
	GetServiceList(ctx context.Context, key string) ([]*models.Service, error)
	SetServiceList(ctx context.Context, key string, services []*models.Service, ttl time.Duration) error
	InvalidateServiceLists(ctx context.Context) error
}

const listKeyPrefix = "services:list:"

// ListKey builds the cache key for a (category, available) filter pair.
func ListKey(category *string, available *bool) string {
	c, a := "*", "*"
	if category != nil {
		c = *category
	}
	if available != nil {
		a = fmt.Sprintf("%t", *available)
	}
	return listKeyPrefix + c + ":" + a
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &redisCacheService{client: client}
}

func (s *redisCacheService) GetServiceList(ctx context.Context, key string) ([]*models.Service, error) {
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var services []*models.Service
	if err := json.Unmarshal([]byte(data), &services); err != nil {
		// Stale or corrupt entry; drop it and report a miss.
		s.client.Del(ctx, key)
		return nil, nil
	}
	return services, nil
}

func (s *redisCacheService) SetServiceList(ctx context.Context, key string, services []*models.Service, ttl time.Duration) error {
	data, err := json.Marshal(services)
	if err != nil {
		return fmt.Errorf("failed to marshal service list: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *redisCacheService) InvalidateServiceLists(ctx context.Context) error {
	keys, err := s.client.Keys(ctx, listKeyPrefix+"*").Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("Failed to invalidate service list cache: %v", err)
		return err
	}
	return nil
}
