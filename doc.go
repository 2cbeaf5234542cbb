// Package slab provides a generic slot allocator.
//
// A Slab stores values of one type in a dense array and returns a Key for
// each inserted value. Keys are plain slot positions: cheap to copy, safe to
// keep in other data structures, and reused once their value is removed.
//
// Unlike a slab that tracks free slots with a linked list, occupancy is kept
// in a bit index, so iterating a slab with a million slots and one value
// touches one value, and the lowest free slot is found a word at a time.
//
// # Basic Usage
//
//	s := slab.New[*Conn]()
//	key := s.Insert(conn)
//
//	if c, ok := s.Get(key); ok {
//	    c.Ping()
//	}
//
//	for key, c := range s.All() {
//	    ...
//	}
//
//	c, ok := s.Remove(key)
//
// # Dropping values
//
// Values whose type implements Dropper are told when the slab discards them
// on its own (Clear, Release, Retain, a shrinking Resize, closing a
// consuming iterator early). Values returned to the caller are not dropped.
//
// # Concurrency
//
// A Slab is meant to be owned by a single goroutine. Concurrent readers are
// fine as long as nothing writes; anything else needs external locking.
package slab
