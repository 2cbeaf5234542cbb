package slab

import "math/bits"

// inlineWords is the word budget of the inline backend. Indexes addressing
// fewer than inlineWords*64 positions never allocate.
const inlineWords = 2

// inlineBits keeps track of up to inlineWords*64 positions in a fixed array.
type inlineBits [inlineWords]uint64

func (b *inlineBits) span() uint {
	return inlineWords * wordSize
}

func (b *inlineBits) test(pos uint) bool {
	w, mask := locate(pos)
	if w >= inlineWords {
		return false
	}
	return b[w]&mask != 0
}

func (b *inlineBits) set(pos uint) {
	w, mask := locate(pos)
	if w >= inlineWords {
		panic("slab: write past the inline index budget")
	}
	b[w] |= mask
}

func (b *inlineBits) unset(pos uint) {
	w, mask := locate(pos)
	if w >= inlineWords {
		return
	}
	b[w] &^= mask
}

func (b *inlineBits) reset() {
	*b = inlineBits{}
}

func (b *inlineBits) words() []uint64 {
	return b[:]
}

func (b *inlineBits) nextSet(from, limit uint) (uint, bool) {
	return nextSetIn(b[:], from, limit)
}

func (b *inlineBits) nextClear(from, limit uint) (uint, bool) {
	return nextClearIn(b[:], from, limit)
}

func (b *inlineBits) count() int {
	n := 0
	for _, word := range b {
		n += bits.OnesCount64(word)
	}
	return n
}

// grow widens the backend to address n positions. Past the inline budget
// the bits move to a dynamic backend; the inline array is left untouched.
func (b *inlineBits) grow(n uint) bitStore {
	if n <= b.span() {
		return b
	}
	promoted := newDynamicBits(n)
	for pos, ok := b.nextSet(0, b.span()); ok; pos, ok = b.nextSet(pos+1, b.span()) {
		promoted.set(pos)
	}
	return promoted
}

func (b *inlineBits) truncate(n uint) {
	for w := range b {
		lo := uint(w) << log2WordSize
		switch {
		case lo >= n:
			b[w] = 0
		case n-lo < wordSize:
			b[w] &= 1<<(n-lo) - 1
		}
	}
}

func (b *inlineBits) kind() string {
	return "inline"
}
