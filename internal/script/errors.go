package script

import "errors"

// Errors for script engine operations.
var (
	// ErrStateClosed is returned when operating on a closed engine.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrNilManager is returned when creating an engine without a manager.
	ErrNilManager = errors.New("nil undo manager")
)
