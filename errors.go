package slab

import "github.com/pkg/errors"

var (
	// ErrInvalidConfig is returned by NewWithConfig when Config.Validate fails.
	ErrInvalidConfig = errors.New("slab: invalid config")

	// ErrNegativeCapacity is returned when a capacity or an additional
	// capacity is negative.
	ErrNegativeCapacity = errors.New("slab: negative capacity")

	// ErrCapacityOverflow is returned when a requested capacity does not fit
	// into an int.
	ErrCapacityOverflow = errors.New("slab: capacity overflow")
)
