package slab

import (
	"fmt"
	"iter"
	"strings"

	"go.uber.org/zap"
)

// bitStore is the storage behind an Index. The Index keeps capacity and
// count itself; a bitStore only flips and scans bits.
type bitStore interface {
	// span is the number of positions addressable without calling grow.
	span() uint
	test(pos uint) bool
	set(pos uint)
	unset(pos uint)
	reset()
	// words exposes the backing words for dumps. Callers must not modify or
	// retain the slice.
	words() []uint64
	nextSet(from, limit uint) (uint, bool)
	nextClear(from, limit uint) (uint, bool)
	count() int
	// grow returns a store addressing at least n positions with the same
	// bits set. It may return a different backend.
	grow(n uint) bitStore
	// truncate clears every position at or beyond n.
	truncate(n uint)
	kind() string
}

// Index records which slot positions in 0..Cap() are occupied.
//
// Small indexes live in a fixed inline array; the first time an index has to
// address a position beyond it, every set bit is copied into a growable bit
// set and the index stays there for the rest of its life.
//
// Len, Cap, IsEmpty, IsFull and Contains are O(1). Free positions are found
// by scanning whole words, skipping fully occupied words in one step.
type Index struct {
	store    bitStore
	capacity int
	count    int
	log      *zap.Logger
}

// NewIndex returns an empty index addressing capacity positions. A negative
// capacity is treated as zero.
func NewIndex(capacity int) *Index {
	return newIndex(capacity, nil)
}

func newIndex(capacity int, log *zap.Logger) *Index {
	if capacity < 0 {
		capacity = 0
	}
	if log == nil {
		log = zap.NewNop()
	}
	x := &Index{store: &inlineBits{}, log: log}
	x.store = x.store.grow(uint(capacity))
	x.capacity = capacity
	return x
}

// Cap returns the number of addressable positions.
func (x *Index) Cap() int {
	return x.capacity
}

// Len returns the number of occupied positions.
func (x *Index) Len() int {
	return x.count
}

// IsEmpty reports whether no position is occupied.
func (x *Index) IsEmpty() bool {
	return x.count == 0
}

// IsFull reports whether every addressable position is occupied.
func (x *Index) IsFull() bool {
	return x.count == x.capacity
}

// Contains reports whether pos is occupied. Positions outside 0..Cap() are
// never occupied.
func (x *Index) Contains(pos int) bool {
	if pos < 0 || pos >= x.capacity {
		return false
	}
	return x.store.test(uint(pos))
}

// Insert marks pos as occupied. Inserting an occupied position is a no-op.
//
// An Index used on its own grows to address pos when pos >= Cap(), at least
// doubling its capacity. A Slab always resizes first, so its index never
// takes that path. Insert panics on a negative position.
func (x *Index) Insert(pos int) {
	if pos < 0 {
		panic(fmt.Sprintf("slab: insert of negative index position %d", pos))
	}
	if pos >= x.capacity {
		x.Resize(max(pos+1, 2*x.capacity))
	}
	if x.store.test(uint(pos)) {
		return
	}
	x.store.set(uint(pos))
	x.count++
}

// Remove clears pos and reports whether it had been occupied. Positions
// outside 0..Cap() report false and change nothing.
func (x *Index) Remove(pos int) bool {
	if !x.Contains(pos) {
		return false
	}
	x.store.unset(uint(pos))
	x.count--
	return true
}

// Clear marks every position free. The capacity is kept.
func (x *Index) Clear() {
	x.store.reset()
	x.count = 0
}

// Resize changes the number of addressable positions. Growing appends free
// positions and may move the index off its inline array. Shrinking forgets
// the positions at or beyond newCap and recounts the ones that remain; it is
// up to the caller to deal with whatever those positions referred to.
// Resize panics on a negative capacity.
func (x *Index) Resize(newCap int) {
	switch {
	case newCap < 0:
		panic(fmt.Sprintf("slab: resize of index to negative capacity %d", newCap))
	case newCap > x.capacity:
		before := x.store.kind()
		x.store = x.store.grow(uint(newCap))
		if after := x.store.kind(); after != before {
			x.log.Debug("index promoted",
				zap.String("from", before),
				zap.String("to", after),
				zap.Int("capacity", newCap),
				zap.Int("len", x.count),
			)
		}
	case newCap < x.capacity:
		x.store.truncate(uint(newCap))
		x.count = x.store.count()
	}
	x.capacity = newCap
}

// NextOccupied returns the lowest occupied position at or after from.
func (x *Index) NextOccupied(from int) (int, bool) {
	if from < 0 {
		from = 0
	}
	if from >= x.capacity || x.count == 0 {
		return 0, false
	}
	pos, ok := x.store.nextSet(uint(from), uint(x.capacity))
	return int(pos), ok
}

// NextUnoccupied returns the lowest free position, which is where a Slab
// places its next value. It reports false when the index is full.
func (x *Index) NextUnoccupied() (int, bool) {
	return x.nextUnoccupied(0)
}

func (x *Index) nextUnoccupied(from int) (int, bool) {
	if x.IsFull() || from >= x.capacity {
		return 0, false
	}
	pos, ok := x.store.nextClear(uint(from), uint(x.capacity))
	return int(pos), ok
}

// Occupied yields the occupied positions in ascending order. Every call
// starts over from position zero.
func (x *Index) Occupied() iter.Seq[int] {
	return func(yield func(int) bool) {
		for pos, ok := x.NextOccupied(0); ok; pos, ok = x.NextOccupied(pos + 1) {
			if !yield(pos) {
				return
			}
		}
	}
}

// Unoccupied yields the free positions below Cap() in ascending order.
func (x *Index) Unoccupied() iter.Seq[int] {
	return func(yield func(int) bool) {
		for pos, ok := x.nextUnoccupied(0); ok; pos, ok = x.nextUnoccupied(pos + 1) {
			if !yield(pos) {
				return
			}
		}
	}
}

// drain hands the index over to a cursor that removes each occupied
// position as it is taken.
func (x *Index) drain() *drainCursor {
	return &drainCursor{index: x}
}

// drainCursor walks an index it owns in ascending order. Whatever is still
// set in the index has not been taken yet.
type drainCursor struct {
	index *Index
	from  int
}

// take returns the next occupied position and clears it.
func (c *drainCursor) take() (int, bool) {
	pos, ok := c.index.NextOccupied(c.from)
	if !ok {
		return 0, false
	}
	c.index.Remove(pos)
	c.from = pos + 1
	return pos, true
}

func (c *drainCursor) remaining() int {
	return c.index.Len()
}

// String creates a multi-line string which shows the backend and every word
// of the index in binary, lowest position on the right.
func (x *Index) String() string {
	var b strings.Builder
	words := x.store.words()

	fmt.Fprintf(&b, "Index Backend: %s\n", x.store.kind())
	fmt.Fprintf(&b, "Index Len: %d\n", x.count)
	fmt.Fprintf(&b, "Index Cap: %d\n", x.capacity)
	for i := 0; i < wordsFor(uint(x.capacity)) && i < len(words); i++ {
		fmt.Fprintf(&b, "index[%d]: %064b\n", i, words[i])
	}
	return b.String()
}
