// Package oracle provides a deliberately simple slot allocator with the same
// observable behavior as slab.Slab.
//
// It is intentionally easy to audit: every slot is a pointer, nil when free,
// and every search is a linear scan. Differential tests drive it and the
// real slab through the same operations and compare the results.
package oracle

// Slab hands out the lowest free position for each inserted value.
type Slab[T any] struct {
	Slots []*T
	Count int
}

// New returns an empty oracle slab.
func New[T any]() *Slab[T] {
	return &Slab[T]{}
}

// Insert stores v in the lowest free slot, appending one if none is free,
// and returns its position.
func (s *Slab[T]) Insert(v T) int {
	for pos, p := range s.Slots {
		if p == nil {
			s.Slots[pos] = &v
			s.Count++
			return pos
		}
	}
	s.Slots = append(s.Slots, &v)
	s.Count++
	return len(s.Slots) - 1
}

// Get returns the value at pos.
func (s *Slab[T]) Get(pos int) (T, bool) {
	if !s.Contains(pos) {
		var zero T
		return zero, false
	}
	return *s.Slots[pos], true
}

// Contains reports whether pos holds a value.
func (s *Slab[T]) Contains(pos int) bool {
	return pos >= 0 && pos < len(s.Slots) && s.Slots[pos] != nil
}

// Remove takes the value at pos out.
func (s *Slab[T]) Remove(pos int) (T, bool) {
	v, ok := s.Get(pos)
	if ok {
		s.Slots[pos] = nil
		s.Count--
	}
	return v, ok
}

// Clear frees every slot.
func (s *Slab[T]) Clear() {
	for pos := range s.Slots {
		s.Slots[pos] = nil
	}
	s.Count = 0
}

// Reserve appends additional free slots.
func (s *Slab[T]) Reserve(additional int) {
	if additional > 0 {
		s.Slots = append(s.Slots, make([]*T, additional)...)
	}
}

// Len returns the number of stored values.
func (s *Slab[T]) Len() int {
	return s.Count
}

// Keys returns the occupied positions in ascending order.
func (s *Slab[T]) Keys() []int {
	keys := make([]int, 0, s.Count)
	for pos, p := range s.Slots {
		if p != nil {
			keys = append(keys, pos)
		}
	}
	return keys
}
