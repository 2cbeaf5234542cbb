package slab

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// DefaultConfig provides a Config with default settings. It is used by New
// and WithCapacity, which panic if it has been set to an invalid Config.
// Pass a Config to NewWithConfig instead of changing it.
var DefaultConfig = NewConfig()

// Config is used by a slab when it has to grow its backing storage.
type Config struct {
	// MinCapacity is the capacity the first growth of an empty slab jumps to.
	MinCapacity int

	// GrowthFactor multiplies the capacity whenever an insert finds the slab
	// full. It must be at least 2 so that repeated inserts stay amortized O(1).
	GrowthFactor float64

	// Logger receives debug events for growth and index promotion.
	// A nil Logger disables logging.
	Logger *zap.Logger
}

// NewConfig returns a new slab configuration with default settings.
func NewConfig() Config {
	return Config{
		MinCapacity:  4,
		GrowthFactor: 2,
		Logger:       zap.NewNop(),
	}
}

// Validate checks that the configuration can drive the growth policy.
func (c Config) Validate() error {
	if c.MinCapacity < 1 {
		return errors.Wrapf(ErrInvalidConfig, "MinCapacity %d must be at least 1", c.MinCapacity)
	}
	if math.IsNaN(c.GrowthFactor) || c.GrowthFactor < 2 {
		return errors.Wrapf(ErrInvalidConfig, "GrowthFactor %v must be at least 2", c.GrowthFactor)
	}
	if math.IsInf(c.GrowthFactor, 0) {
		return errors.Wrap(ErrInvalidConfig, "GrowthFactor must be finite")
	}
	return nil
}

// logger returns the configured logger or a no-op one.
func (c Config) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// nextCapacity returns the capacity a full slab of capacity cur grows to.
func (c Config) nextCapacity(cur int) int {
	grown := math.Ceil(float64(cur) * c.GrowthFactor)
	next := cur + 1
	if grown >= float64(math.MaxInt) {
		next = math.MaxInt
	} else if int(grown) > next {
		next = int(grown)
	}
	if next < c.MinCapacity {
		next = c.MinCapacity
	}
	return next
}
