package slab

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Dropper is implemented by values that need to release something when the
// slab discards them. Drop is called exactly once for every value the slab
// discards on its own: through Clear, Release, Retain, a shrinking Resize, or
// an unfinished consuming iterator being closed. Values handed back to the
// caller by Remove or by a consuming iterator are never dropped.
type Dropper interface {
	Drop()
}

func drop[T any](v T) {
	if d, ok := any(v).(Dropper); ok {
		d.Drop()
	}
}

// slot is one position of the backing array.
type slot[T any] struct {
	value    T
	occupied bool
}

func (s *slot[T]) fill(v T) {
	if s.occupied {
		panic("slab: fill of an occupied slot")
	}
	s.value = v
	s.occupied = true
}

// take moves the value out and leaves the slot vacant and zeroed.
func (s *slot[T]) take() T {
	if !s.occupied {
		panic("slab: take from a vacant slot")
	}
	v := s.value
	var zero T
	s.value = zero
	s.occupied = false
	return v
}

// Slab stores values of a single type in a dense array of slots and hands
// out a Key for each of them.
//
// Inserts always take the lowest free slot, so a slab never grows while it
// has room. Iteration only visits occupied slots, however sparse the slab is.
//
// A Slab is not safe for concurrent use.
type Slab[T any] struct {
	index *Index
	slots []slot[T]
	cfg   Config
	log   *zap.Logger
}

// New returns an empty slab using DefaultConfig.
func New[T any]() *Slab[T] {
	return WithCapacity[T](0)
}

// WithCapacity returns an empty slab with room for capacity values, using
// DefaultConfig. A negative capacity is treated as zero.
func WithCapacity[T any](capacity int) *Slab[T] {
	if capacity < 0 {
		capacity = 0
	}
	s, err := NewWithConfig[T](DefaultConfig, capacity)
	if err != nil {
		panic(err)
	}
	return s
}

// NewWithConfig returns an empty slab with room for capacity values that
// grows according to cfg.
func NewWithConfig[T any](cfg Config, capacity int) (*Slab[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if capacity < 0 {
		return nil, errors.Wrapf(ErrNegativeCapacity, "capacity %d", capacity)
	}
	log := cfg.logger()
	return &Slab[T]{
		index: newIndex(capacity, log),
		slots: make([]slot[T], capacity),
		cfg:   cfg,
		log:   log,
	}, nil
}

// Len returns the number of stored values.
func (s *Slab[T]) Len() int {
	return s.index.Len()
}

// Cap returns the number of values the slab can hold before it has to grow.
func (s *Slab[T]) Cap() int {
	return s.index.Cap()
}

// IsEmpty reports whether the slab holds no values.
func (s *Slab[T]) IsEmpty() bool {
	return s.index.IsEmpty()
}

// Insert stores v in the lowest free slot and returns its key. A full slab
// grows by Config.GrowthFactor first.
func (s *Slab[T]) Insert(v T) Key {
	pos, ok := s.index.NextUnoccupied()
	if !ok {
		pos = s.index.Cap()
		s.grow(s.cfg.nextCapacity(pos))
	}
	s.index.Insert(pos)
	s.slots[pos].fill(v)
	return Key{pos: pos}
}

// ContainsKey reports whether k refers to a stored value.
func (s *Slab[T]) ContainsKey(k Key) bool {
	return s.index.Contains(k.pos)
}

// Get returns the value stored under k.
// The second return value is false if k refers to no value.
func (s *Slab[T]) Get(k Key) (T, bool) {
	if !s.index.Contains(k.pos) {
		var zero T
		return zero, false
	}
	return s.slots[k.pos].value, true
}

// GetMut returns a pointer to the value stored under k, or nil if k refers
// to no value. The pointer is valid until the value is removed or the slab
// grows.
func (s *Slab[T]) GetMut(k Key) *T {
	if !s.index.Contains(k.pos) {
		return nil
	}
	return &s.slots[k.pos].value
}

// Remove takes the value stored under k out of the slab. The slot becomes
// free and its key may be handed out again by a later Insert.
// The second return value is false if k refers to no value; any key,
// including one far past the current capacity, is accepted.
func (s *Slab[T]) Remove(k Key) (T, bool) {
	if !s.index.Remove(k.pos) {
		var zero T
		return zero, false
	}
	return s.slots[k.pos].take(), true
}

// Clear drops every stored value. The capacity is kept.
func (s *Slab[T]) Clear() {
	for pos := range s.index.Occupied() {
		drop(s.slots[pos].take())
	}
	s.index.Clear()
}

// Retain drops every value for which keep returns false, visiting values in
// ascending key order. keep may modify the value it is handed.
func (s *Slab[T]) Retain(keep func(Key, *T) bool) {
	for pos := range s.index.Occupied() {
		if keep(Key{pos: pos}, &s.slots[pos].value) {
			continue
		}
		s.index.Remove(pos)
		drop(s.slots[pos].take())
	}
}

// Reserve grows the capacity by additional slots. Existing keys keep
// resolving to their values.
func (s *Slab[T]) Reserve(additional int) error {
	if additional < 0 {
		return errors.Wrapf(ErrNegativeCapacity, "reserve of %d slots", additional)
	}
	if additional == 0 {
		return nil
	}
	if s.Cap() > math.MaxInt-additional {
		return errors.Wrapf(ErrCapacityOverflow, "reserve of %d slots on top of %d", additional, s.Cap())
	}
	s.grow(s.Cap() + additional)
	return nil
}

// Resize sets the capacity to newLen. Shrinking drops every value stored at
// or beyond newLen before the slots are released, so no freed slot ever
// holds a live value.
func (s *Slab[T]) Resize(newLen int) error {
	switch {
	case newLen < 0:
		return errors.Wrapf(ErrNegativeCapacity, "resize to %d slots", newLen)
	case newLen > s.Cap():
		s.grow(newLen)
	case newLen < s.Cap():
		s.shrink(newLen)
	}
	return nil
}

// Release drops every stored value and frees the backing storage. The slab
// is empty afterwards and can be used again.
func (s *Slab[T]) Release() {
	s.Clear()
	s.slots = nil
	s.index = newIndex(0, s.log)
}

// grow moves the slots into an array of length n and widens the index to
// match. The new array is allocated before anything is modified.
func (s *Slab[T]) grow(n int) {
	slots := make([]slot[T], n)
	copy(slots, s.slots)

	s.log.Debug("slab grown",
		zap.Int("from", len(s.slots)),
		zap.Int("to", n),
		zap.Int("len", s.index.Len()),
	)
	s.index.Resize(n)
	s.slots = slots
}

// shrink drops the values at or beyond n, then truncates the slots and the
// index together.
func (s *Slab[T]) shrink(n int) {
	slots := make([]slot[T], n)

	dropped := 0
	for pos, ok := s.index.NextOccupied(n); ok; pos, ok = s.index.NextOccupied(pos + 1) {
		s.index.Remove(pos)
		drop(s.slots[pos].take())
		dropped++
	}
	copy(slots, s.slots[:n])

	s.log.Debug("slab truncated",
		zap.Int("from", len(s.slots)),
		zap.Int("to", n),
		zap.Int("dropped", dropped),
	)
	s.index.Resize(n)
	s.slots = slots
}

// String creates a long multi-line string which illustrates the slab in a
// human-readable format: its index words followed by every occupied slot.
func (s *Slab[T]) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "-------------------------------\n")
	fmt.Fprintf(&b, "Slab Len: %d\n", s.Len())
	fmt.Fprintf(&b, "Slab Cap: %d\n", s.Cap())
	b.WriteString(s.index.String())
	for pos := range s.index.Occupied() {
		fmt.Fprintf(&b, "slot[%d]: %v\n", pos, s.slots[pos].value)
	}
	return b.String()
}
