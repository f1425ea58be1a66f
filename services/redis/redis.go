package redis

import (
	redis_utils "Tankard/services/redis/utils"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when the requested key is not cached.
var ErrCacheMiss = errors.New("redis: cache miss")

// RedisClient handles Redis operations
type RedisClient struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisClient creates a new Redis client instance
func NewRedisClient(Addr string, DB int) *RedisClient {
	var client *redis.Client
	if Addr != "localhost:6379" {
		log.Println("Connecting to remote Redis...")
		opt, err := redis.ParseURL(Addr)
		if err != nil {
			panic("Error parsing Redis URL")
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: Addr,
			DB:   DB,
		})
	}
	return &RedisClient{
		client: client,
		ctx:    context.Background(),
	}
}

// SaveEventSlots caches an event's availability map.
// Key format: "event:{eventID}:slots". A non-positive ttl falls back to
// 24 hours so stale availability always ages out.
func (rc *RedisClient) SaveEventSlots(eventID string, slotMap map[string]int, ttl time.Duration) error {
	key := redis_utils.FormatEventSlotsKey(eventID)
	data, err := json.Marshal(slotMap)
	if err != nil {
		return fmt.Errorf("error marshaling slot map: %v", err)
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return rc.client.Set(rc.ctx, key, data, ttl).Err()
}

// GetEventSlots retrieves an event's cached availability map.
func (rc *RedisClient) GetEventSlots(eventID string) (map[string]int, error) {
	key := redis_utils.FormatEventSlotsKey(eventID)
	data, err := rc.client.Get(rc.ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("error getting slot map from Redis: %v", err)
	}
	var slotMap map[string]int
	if err := json.Unmarshal(data, &slotMap); err != nil {
		return nil, fmt.Errorf("error unmarshaling slot map: %v", err)
	}
	return slotMap, nil
}

// DeleteEventSlots drops the cached availability of one event.
func (rc *RedisClient) DeleteEventSlots(eventID string) error {
	return rc.client.Del(rc.ctx, redis_utils.FormatEventSlotsKey(eventID)).Err()
}

// CleanupKeys removes the specified keys from Redis
func (rc *RedisClient) CleanupKeys(keys []string) error {
	for _, key := range keys {
		if err := rc.client.Del(rc.ctx, key).Err(); err != nil {
			return fmt.Errorf("failed to cleanup Redis key %s: %v", key, err)
		}
	}
	return nil
}
