package coordination

import "errors"

var (
	// ErrMissingFields means a required parameter for the operation or the
	// chosen game type is absent or malformed.
	ErrMissingFields = errors.New("missing required fields")

	// ErrEmailTaken means an account with that email already exists.
	ErrEmailTaken = errors.New("email already registered")

	ErrGamerNotFound    = errors.New("gamer not found")
	ErrPublicanNotFound = errors.New("publican not found")
	ErrEventNotFound    = errors.New("event not found")
	ErrGameNotFound     = errors.New("game not found")

	// ErrNoCoveringEvent means no event at the pub spans the requested
	// game window.
	ErrNoCoveringEvent = errors.New("no event covers the requested time window")

	// ErrNotHost means a game operation reserved to its host was attempted
	// by someone else.
	ErrNotHost = errors.New("only the host can do that")

	// ErrNoTablesLeft means the pub's walk-in table counter is at zero.
	ErrNoTablesLeft = errors.New("no tables left to reserve")
)
