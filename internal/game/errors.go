package game

import "errors"

// Domain error taxonomy. All of these are recoverable: a failed action
// leaves the session intact and playable.
var (
	// ErrInsufficientResource is returned when a consumption precondition is unmet
	ErrInsufficientResource = errors.New("insufficient resource")

	// ErrInvalidPhase is returned when an action is attempted outside the active phase
	ErrInvalidPhase = errors.New("session is not active")

	// ErrInvalidArgument is returned for inputs the core rejects outright
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOutOfRange is returned for stage threshold lookups beyond the terminal tier
	ErrOutOfRange = errors.New("stage ordinal out of range")

	// ErrSessionNotFound is returned when a session ID is unknown to the manager
	ErrSessionNotFound = errors.New("session not found")
)
