package slots

import "errors"

var (
	// ErrInvalidGameType means the event's game type is neither Seat Based
	// nor Table Based.
	ErrInvalidGameType = errors.New("invalid game type")

	// ErrInsufficientCapacity means at least one covered hourly slot would
	// go negative; nothing was allocated.
	ErrInsufficientCapacity = errors.New("insufficient slot capacity")

	// ErrUnalignedTime means a start/end time is not on an hour boundary.
	ErrUnalignedTime = errors.New("times must align to hour boundaries")

	// ErrInvalidTimeRange covers end <= start, multi-day spans and windows
	// that cover no slot at all.
	ErrInvalidTimeRange = errors.New("invalid time range")

	// ErrInvalidCapacity means a non-positive seat/table/table-capacity
	// parameter.
	ErrInvalidCapacity = errors.New("capacity parameters must be positive")
)
