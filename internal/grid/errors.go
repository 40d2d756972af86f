package grid

import "errors"

var (
	// ErrOutOfRange is returned when an info point mutation would leave the
	// cell's bounded range.
	ErrOutOfRange = errors.New("info points out of range")

	// ErrOutOfBounds is returned for coordinates outside the grid.
	ErrOutOfBounds = errors.New("coordinates outside the grid")

	// ErrInvalidConfig is returned when a grid cannot be built from its config.
	ErrInvalidConfig = errors.New("invalid grid config")
)
