package utils

import "fmt"

// FormatEventSlotsKey builds the cache key for an event's slot map.
// Key format: "event:{eventID}:slots"
func FormatEventSlotsKey(eventID string) string {
	return fmt.Sprintf("event:%s:slots", eventID)
}
