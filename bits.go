package slab

import (
	"math"
	"math/bits"
)

const (
	wordSize     = 64
	log2WordSize = 6
)

// wordsFor takes a length and calculates how many words (uint64) of space
// a bit set needs to track that many positions.
func wordsFor(length uint) int {
	if length > (math.MaxUint - wordSize + 1) {
		return int(math.MaxUint >> log2WordSize)
	}
	return int((length + (wordSize - 1)) >> log2WordSize)
}

// locate splits a position into the index of the word that holds it and the
// mask selecting its bit within that word.
func locate(pos uint) (int, uint64) {
	return int(pos >> log2WordSize), 1 << (pos & (wordSize - 1))
}

// nextSetIn returns the lowest set position p with from <= p < limit.
// Words past the end of the slice count as all clear.
func nextSetIn(words []uint64, from, limit uint) (uint, bool) {
	for from < limit {
		w := from >> log2WordSize
		if w >= uint(len(words)) {
			return 0, false
		}
		if word := words[w] >> (from & (wordSize - 1)); word != 0 {
			pos := from + uint(bits.TrailingZeros64(word))
			if pos >= limit {
				return 0, false
			}
			return pos, true
		}
		from = (w + 1) << log2WordSize
	}
	return 0, false
}

// nextClearIn returns the lowest clear position p with from <= p < limit.
// A word with every bit set is stepped over as a whole, so a densely packed
// range costs one comparison per 64 positions. Words past the end of the
// slice count as all clear.
func nextClearIn(words []uint64, from, limit uint) (uint, bool) {
	for from < limit {
		w := from >> log2WordSize
		if w >= uint(len(words)) {
			return from, true
		}
		word := words[w]
		if word == math.MaxUint64 {
			from = (w + 1) << log2WordSize
			continue
		}
		if free := ^word >> (from & (wordSize - 1)); free != 0 {
			pos := from + uint(bits.TrailingZeros64(free))
			if pos >= limit {
				return 0, false
			}
			return pos, true
		}
		from = (w + 1) << log2WordSize
	}
	return 0, false
}
