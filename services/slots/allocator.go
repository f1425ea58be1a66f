package slots

import (
	constants "Tankard/constants/events"
	"fmt"
	"time"
)

/*
 * The slot allocator turns an event's time span into one capacity bucket
 * per hour ("18:00-19:00" -> remaining units) and adjusts those buckets as
 * games book and release capacity. Allocate and Release are pure: they
 * return a fresh map and never touch the input, so a failed allocation
 * leaves the event's slots exactly as they were.
 */

// Aligned reports whether t sits exactly on an hour boundary.
func Aligned(t time.Time) bool {
	return t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}

// hourOf maps a time to its hour-of-day for slot comparison, treating a
// midnight end as hour 24 so "23:00-24:00" windows work.
func hourOf(t time.Time, isEnd bool) int {
	h := t.Hour()
	if isEnd && h == 0 {
		return 24
	}
	return h
}

// Initialize builds the hourly slot map for an event. Every hour in
// [startTime, endTime) gets one key mapped to capacity: the seat count for
// Seat Based events, the table count for Table Based ones.
func Initialize(startTime, endTime time.Time, gameType string, capacity int) (map[string]int, error) {
	if gameType != constants.GameTypeSeatBased && gameType != constants.GameTypeTableBased {
		return nil, fmt.Errorf("%w: %q", ErrInvalidGameType, gameType)
	}
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if !Aligned(startTime) || !Aligned(endTime) {
		return nil, ErrUnalignedTime
	}
	if !endTime.After(startTime) {
		return nil, fmt.Errorf("%w: end must be after start", ErrInvalidTimeRange)
	}

	totalHours := int(endTime.Sub(startTime).Seconds()) / constants.SecondsPerHour
	startHour := startTime.Hour()
	if startHour+totalHours > 24 {
		return nil, fmt.Errorf("%w: event must not span days", ErrInvalidTimeRange)
	}

	slotMap := make(map[string]int, totalHours)
	for i := 0; i < totalHours; i++ {
		key := fmt.Sprintf(constants.SlotKeyFormat, startHour+i, startHour+i+1)
		slotMap[key] = capacity
	}
	return slotMap, nil
}

// CoveredKeys returns the slot keys whose hour lies within the requested
// window. Comparison is on time-of-day only.
func CoveredKeys(slotMap map[string]int, reqStart, reqEnd time.Time) []string {
	startHour := hourOf(reqStart, false)
	endHour := hourOf(reqEnd, true)

	covered := make([]string, 0, len(slotMap))
	for key := range slotMap {
		var slotStart, slotEnd int
		if _, err := fmt.Sscanf(key, constants.SlotKeyFormat, &slotStart, &slotEnd); err != nil {
			continue
		}
		if slotStart >= startHour && slotEnd <= endHour {
			covered = append(covered, key)
		}
	}
	return covered
}

// Covers reports whether an event span contains the requested window,
// comparing time-of-day hours only.
func Covers(evStart, evEnd, reqStart, reqEnd time.Time) bool {
	return hourOf(evStart, false) <= hourOf(reqStart, false) &&
		hourOf(evEnd, true) >= hourOf(reqEnd, true)
}

// UnitsFor computes how many units of each covered slot one game consumes:
// a seat per player for Seat Based events, ceil(maxPlayers/tableCapacity)
// whole tables for Table Based ones.
func UnitsFor(gameType string, maxPlayers, tableCapacity int) (int, error) {
	if maxPlayers <= 0 {
		return 0, ErrInvalidCapacity
	}
	switch gameType {
	case constants.GameTypeSeatBased:
		return maxPlayers, nil
	case constants.GameTypeTableBased:
		if tableCapacity <= 0 {
			return 0, ErrInvalidCapacity
		}
		return (maxPlayers + tableCapacity - 1) / tableCapacity, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidGameType, gameType)
	}
}

// Allocate stages the decrement on every covered slot and commits only if
// none would go negative. The returned map is a copy; on error the input
// is untouched and no slot was mutated.
func Allocate(slotMap map[string]int, reqStart, reqEnd time.Time, units int) (map[string]int, error) {
	covered := CoveredKeys(slotMap, reqStart, reqEnd)
	if len(covered) == 0 {
		return nil, fmt.Errorf("%w: window covers no slot", ErrInvalidTimeRange)
	}

	updated := make(map[string]int, len(slotMap))
	for k, v := range slotMap {
		updated[k] = v
	}
	for _, key := range covered {
		remaining := updated[key] - units
		if remaining < 0 {
			return nil, fmt.Errorf("%w: slot %s has %d left, need %d",
				ErrInsufficientCapacity, key, updated[key], units)
		}
		updated[key] = remaining
	}
	return updated, nil
}

// Release returns units to every covered slot, clamped at the event's
// initial capacity so repeated releases can never overfill a slot.
func Release(slotMap map[string]int, reqStart, reqEnd time.Time, units, initialCapacity int) map[string]int {
	updated := make(map[string]int, len(slotMap))
	for k, v := range slotMap {
		updated[k] = v
	}
	for _, key := range CoveredKeys(updated, reqStart, reqEnd) {
		restored := updated[key] + units
		if restored > initialCapacity {
			restored = initialCapacity
		}
		updated[key] = restored
	}
	return updated
}
