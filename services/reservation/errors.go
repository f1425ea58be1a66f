package reservation

import "errors"

var (
	// ErrAccessDenied means a private game's access code did not match.
	ErrAccessDenied = errors.New("access denied: invalid access code")

	// ErrGameFull means the roster already holds max_players participants.
	ErrGameFull = errors.New("game is full")

	// ErrAlreadyJoined means the gamer already holds a place in this game.
	ErrAlreadyJoined = errors.New("participant has already joined the game")

	// ErrNotJoined means the gamer holds no place in this game.
	ErrNotJoined = errors.New("participant not found in game")

	// ErrInvalidSeat means the seat number is not part of the game.
	ErrInvalidSeat = errors.New("invalid seat number")

	// ErrSeatTaken means the seat already has an occupant.
	ErrSeatTaken = errors.New("seat already taken")

	// ErrTableNotFound means the named table is not part of the game.
	ErrTableNotFound = errors.New("table not found")

	// ErrTableFull means the table reached its per-table occupancy cap.
	ErrTableFull = errors.New("table is full")
)
