package domain

import "errors"

var (
	// ErrNotLoaded is returned by every read before the first successful load.
	ErrNotLoaded = errors.New("not_loaded")
	// ErrInvalidParameter marks an unknown metric, view or variant supplied by a caller.
	ErrInvalidParameter = errors.New("invalid_parameter")
	// ErrEmptySchedule is the structural load failure: a variant has no usable visits.
	ErrEmptySchedule = errors.New("empty_schedule")
)
