package slab

import "github.com/willf/bitset"

// dynamicBits is the growable backend. Its bit set length always equals the
// capacity of the owning Index.
type dynamicBits struct {
	bs *bitset.BitSet
}

func newDynamicBits(n uint) *dynamicBits {
	return &dynamicBits{bs: bitset.New(n)}
}

func (b *dynamicBits) span() uint {
	return b.bs.Len()
}

func (b *dynamicBits) test(pos uint) bool {
	return b.bs.Test(pos)
}

func (b *dynamicBits) set(pos uint) {
	if pos >= b.bs.Len() {
		// BitSet.Set would silently extend the set.
		panic("slab: write past the dynamic index length")
	}
	b.bs.Set(pos)
}

func (b *dynamicBits) unset(pos uint) {
	b.bs.Clear(pos)
}

func (b *dynamicBits) reset() {
	b.bs.ClearAll()
}

func (b *dynamicBits) words() []uint64 {
	return b.bs.Bytes()
}

func (b *dynamicBits) nextSet(from, limit uint) (uint, bool) {
	pos, ok := b.bs.NextSet(from)
	if !ok || pos >= limit {
		return 0, false
	}
	return pos, true
}

// nextClear relies on the bit set length matching the index capacity:
// BitSet.NextClear never reports a position at or past Len.
func (b *dynamicBits) nextClear(from, limit uint) (uint, bool) {
	pos, ok := b.bs.NextClear(from)
	if !ok || pos >= limit {
		return 0, false
	}
	return pos, true
}

func (b *dynamicBits) count() int {
	return int(b.bs.Count())
}

// grow replaces the bit set by one of length n holding the same bits.
func (b *dynamicBits) grow(n uint) bitStore {
	if n <= b.bs.Len() {
		return b
	}
	grown := bitset.New(n)
	grown.InPlaceUnion(b.bs)
	b.bs = grown
	return b
}

// truncate copies the bits below n into a bit set of length n.
func (b *dynamicBits) truncate(n uint) {
	if n >= b.bs.Len() {
		return
	}
	kept := bitset.New(n)
	for pos, ok := b.bs.NextSet(0); ok && pos < n; pos, ok = b.bs.NextSet(pos + 1) {
		kept.Set(pos)
	}
	b.bs = kept
}

func (b *dynamicBits) kind() string {
	return "dynamic"
}
