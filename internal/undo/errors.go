package undo

import "errors"

// ErrInvalidLimit is returned when a negative history limit is requested.
var ErrInvalidLimit = errors.New("limit must be a non-negative integer")
