package slab

import (
	"iter"
	"runtime"
)

// All yields every key and value in ascending key order. The slab must not
// be modified while the sequence is being ranged over.
func (s *Slab[T]) All() iter.Seq2[Key, T] {
	return func(yield func(Key, T) bool) {
		for pos := range s.index.Occupied() {
			if !yield(Key{pos: pos}, s.slots[pos].value) {
				return
			}
		}
	}
}

// Keys yields every key in ascending order.
func (s *Slab[T]) Keys() iter.Seq[Key] {
	return func(yield func(Key) bool) {
		for pos := range s.index.Occupied() {
			if !yield(Key{pos: pos}) {
				return
			}
		}
	}
}

// Values yields every value in ascending key order.
func (s *Slab[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for pos := range s.index.Occupied() {
			if !yield(s.slots[pos].value) {
				return
			}
		}
	}
}

// AllMut yields every key with a pointer to its value, in ascending key
// order. Values may be modified through the pointers; the slab itself must
// not be modified while the sequence is being ranged over.
func (s *Slab[T]) AllMut() iter.Seq2[Key, *T] {
	return func(yield func(Key, *T) bool) {
		// Walk the slots alongside the occupied positions, stepping over the
		// vacant run between two of them.
		rest := s.slots
		prev := -1
		for pos := range s.index.Occupied() {
			skip := pos - prev - 1
			if skip >= len(rest) {
				return
			}
			rest = rest[skip:]
			if !yield(Key{pos: pos}, &rest[0].value) {
				return
			}
			rest = rest[1:]
			prev = pos
		}
	}
}

// ValuesMut yields a pointer to every value in ascending key order.
func (s *Slab[T]) ValuesMut() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for _, v := range s.AllMut() {
			if !yield(v) {
				return
			}
		}
	}
}

// IntoIter moves values out of a drained slab in ascending key order.
//
// The iterator owns every value it has not handed out yet. Close drops them.
// An IntoIter that is abandoned without reaching the end or calling Close
// drops them once the garbage collector finalizes it, on the finalizer
// goroutine and at no predictable time; call Close to drop them promptly.
type IntoIter[T any] struct {
	cursor *drainCursor
	slots  []slot[T]
}

// Drain moves every value out of the slab into an iterator. The slab is left
// empty with no capacity, and stays usable.
func (s *Slab[T]) Drain() *IntoIter[T] {
	it := &IntoIter[T]{
		cursor: s.index.drain(),
		slots:  s.slots,
	}
	s.index = newIndex(0, s.log)
	s.slots = nil
	runtime.SetFinalizer(it, (*IntoIter[T]).Close)
	return it
}

// Next moves the next value out of the iterator.
// The third return value is false once the iterator is exhausted.
func (it *IntoIter[T]) Next() (Key, T, bool) {
	pos, ok := it.cursor.take()
	if !ok {
		var zero T
		return Key{}, zero, false
	}
	return Key{pos: pos}, it.slots[pos].take(), true
}

// Len returns the number of values not yet handed out.
func (it *IntoIter[T]) Len() int {
	return it.cursor.remaining()
}

// Close drops every value not yet handed out. Calling Close more than once,
// or after the iterator is exhausted, does nothing.
func (it *IntoIter[T]) Close() {
	runtime.SetFinalizer(it, nil)
	for pos, ok := it.cursor.take(); ok; pos, ok = it.cursor.take() {
		drop(it.slots[pos].take())
	}
	it.slots = nil
}

// All yields the remaining keys and values, then closes the iterator. If the
// loop stops early the values it did not reach are dropped.
func (it *IntoIter[T]) All() iter.Seq2[Key, T] {
	return func(yield func(Key, T) bool) {
		defer it.Close()
		for {
			k, v, ok := it.Next()
			if !ok || !yield(k, v) {
				return
			}
		}
	}
}

// IntoValues is an IntoIter that hands out values without their keys.
type IntoValues[T any] struct {
	inner *IntoIter[T]
}

// DrainValues moves every value out of the slab into an iterator over the
// values alone. See Drain.
func (s *Slab[T]) DrainValues() *IntoValues[T] {
	return &IntoValues[T]{inner: s.Drain()}
}

// Next moves the next value out of the iterator.
func (it *IntoValues[T]) Next() (T, bool) {
	_, v, ok := it.inner.Next()
	return v, ok
}

// Len returns the number of values not yet handed out.
func (it *IntoValues[T]) Len() int {
	return it.inner.Len()
}

// Close drops every value not yet handed out.
func (it *IntoValues[T]) Close() {
	it.inner.Close()
}

// All yields the remaining values, then closes the iterator.
func (it *IntoValues[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range it.inner.All() {
			if !yield(v) {
				return
			}
		}
	}
}
