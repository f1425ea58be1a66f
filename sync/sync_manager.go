package sync

import (
	constants "Tankard/constants/events"
	models "Tankard/models/postgres"
	redis_service "Tankard/services/redis"
	redis_utils "Tankard/services/redis/utils"
	"Tankard/services/store"
	"context"
	"fmt"
	"time"
)

// SyncManager keeps the Redis availability cache in step with the
// persistent event records.
type SyncManager struct {
	redisClient *redis_service.RedisClient
	store       store.Store
}

// NewSyncManager creates a new instance of the synchronization manager
func NewSyncManager(redisClient *redis_service.RedisClient, st store.Store) *SyncManager {
	return &SyncManager{
		redisClient: redisClient,
		store:       st,
	}
}

// RefreshEventSlots reloads one event's slot map from the store and
// rewrites its cache entry, with the TTL aligned to the event's expiry.
func (sm *SyncManager) RefreshEventSlots(ctx context.Context, eventID string) error {
	var event models.Event
	if err := sm.store.Get(ctx, constants.CollectionEvents, eventID, &event); err != nil {
		return fmt.Errorf("error getting event state from store: %v", err)
	}

	slotMap, err := models.DecodeSlotMap(event.AvailableSlots)
	if err != nil {
		return fmt.Errorf("error decoding event slots: %v", err)
	}

	ttl := time.Until(event.Expires)
	if err := sm.redisClient.SaveEventSlots(eventID, slotMap, ttl); err != nil {
		return fmt.Errorf("error caching event slots in Redis: %v", err)
	}
	return nil
}

// CleanupEventData removes the cached state of an event, used once its
// expiry passed.
func (sm *SyncManager) CleanupEventData(eventID string) error {
	keys := []string{redis_utils.FormatEventSlotsKey(eventID)}
	if err := sm.redisClient.CleanupKeys(keys); err != nil {
		return fmt.Errorf("error cleaning Redis event data: %v", err)
	}
	return nil
}
