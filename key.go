package slab

import "strconv"

// Key is the handle returned by Insert. It wraps the position of the slot
// holding the value and is the only way to reach that value again.
//
// Keys are not versioned: once the value behind a key is removed, the next
// Insert that lands on the same slot hands out an equal key.
type Key struct {
	pos int
}

// KeyFrom converts a slot position back into a Key, for callers that keep
// keys in their own indexes as plain integers. Negative positions produce a
// key that never resolves.
func KeyFrom(pos int) Key {
	return Key{pos: pos}
}

// Index returns the slot position wrapped by the key.
func (k Key) Index() int {
	return k.pos
}

// Compare orders keys by slot position. It returns -1, 0 or +1.
func (k Key) Compare(other Key) int {
	switch {
	case k.pos < other.pos:
		return -1
	case k.pos > other.pos:
		return 1
	}
	return 0
}

func (k Key) String() string {
	return "Key(" + strconv.Itoa(k.pos) + ")"
}
