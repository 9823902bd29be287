package readyq

import (
	"errors"
)

var (
	// ErrInvalidStrategy indicates an unrecognized queueing strategy. It is
	// an integration bug, and the item is not enqueued.
	ErrInvalidStrategy = errors.New(`readyq: invalid queueing strategy`)

	// ErrInvalidPriority indicates a malformed priority for a keyed
	// strategy, e.g. too few words for the declared width.
	ErrInvalidPriority = errors.New(`readyq: invalid priority`)

	// ErrInvalidOption indicates an option with an out of range value.
	ErrInvalidOption = errors.New(`readyq: invalid option`)

	// ErrClosed is returned by Pool methods after Pool.Close.
	ErrClosed = errors.New(`readyq: pool closed`)
)
