package slab

import (
	"fmt"
	"slices"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestIndexSmoke(t *testing.T) {
	Convey("When filling an index position by position", t, func() {
		size := 256
		index := NewIndex(0)

		for n := 0; n < size; n++ {
			index.Insert(n)
			So(index.Contains(n), ShouldBeTrue)
		}
		So(index.Len(), ShouldEqual, size)

		Convey("then we can empty it again position by position", func() {
			for n := 0; n < size; n++ {
				So(index.Contains(n), ShouldBeTrue)
				So(index.Remove(n), ShouldBeTrue)
				So(index.Contains(n), ShouldBeFalse)
			}
			So(index.Len(), ShouldEqual, 0)
			So(index.IsEmpty(), ShouldBeTrue)
		})
	})
}

func TestIndexBounds(t *testing.T) {
	Convey("When creating an index with 10 positions", t, func() {
		index := NewIndex(10)
		So(index.Cap(), ShouldEqual, 10)
		So(index.Len(), ShouldEqual, 0)
		So(index.IsEmpty(), ShouldBeTrue)
		So(index.IsFull(), ShouldBeFalse)

		Convey("positions outside of it are never occupied", func() {
			So(index.Contains(-1), ShouldBeFalse)
			So(index.Contains(10), ShouldBeFalse)
			So(index.Contains(4215), ShouldBeFalse)
		})

		Convey("removing positions outside of it changes nothing", func() {
			index.Insert(3)
			So(index.Remove(-1), ShouldBeFalse)
			So(index.Remove(10), ShouldBeFalse)
			So(index.Remove(1<<40), ShouldBeFalse)
			So(index.Len(), ShouldEqual, 1)
			So(index.Contains(3), ShouldBeTrue)
		})

		Convey("removing a free position reports false and keeps the count", func() {
			index.Insert(3)
			So(index.Remove(4), ShouldBeFalse)
			So(index.Remove(3), ShouldBeTrue)
			So(index.Remove(3), ShouldBeFalse)
			So(index.Len(), ShouldEqual, 0)
		})

		Convey("inserting the same position twice counts it once", func() {
			index.Insert(3)
			index.Insert(3)
			So(index.Len(), ShouldEqual, 1)
		})

		Convey("a negative position can't be inserted", func() {
			So(func() { index.Insert(-1) }, ShouldPanic)
		})
	})
}

func TestIndexPromotion(t *testing.T) {
	Convey("When inserting next to the end of the inline budget", t, func() {
		index := NewIndex(0)
		So(index.store.kind(), ShouldEqual, "inline")

		index.Insert(0)
		index.Insert(2)
		index.Insert(inlineWords*64 - 1)
		So(index.store.kind(), ShouldEqual, "inline")

		Convey("and then far beyond it", func() {
			far := index.Cap() * 2
			index.Insert(far)

			Convey("the index moves to the dynamic backend and keeps every position", func() {
				So(index.store.kind(), ShouldEqual, "dynamic")
				So(index.Cap(), ShouldBeGreaterThan, far)
				So(index.Len(), ShouldEqual, 4)
				So(index.Contains(0), ShouldBeTrue)
				So(index.Contains(2), ShouldBeTrue)
				So(index.Contains(inlineWords*64-1), ShouldBeTrue)
				So(index.Contains(far), ShouldBeTrue)
				So(slices.Collect(index.Occupied()), ShouldResemble, []int{0, 2, inlineWords*64 - 1, far})
			})

			Convey("shrinking again does not move it back", func() {
				index.Resize(4)
				So(index.store.kind(), ShouldEqual, "dynamic")
				So(index.Cap(), ShouldEqual, 4)
				So(index.Len(), ShouldEqual, 2)
				So(slices.Collect(index.Occupied()), ShouldResemble, []int{0, 2})
			})
		})
	})

	Convey("When creating an index larger than the inline budget", t, func() {
		index := NewIndex(inlineWords*64 + 1)
		So(index.store.kind(), ShouldEqual, "dynamic")
		So(index.Cap(), ShouldEqual, inlineWords*64+1)
	})
}

func TestIndexResize(t *testing.T) {
	Convey("When shrinking an inline index with positions past the new end", t, func() {
		index := NewIndex(100)
		for _, pos := range []int{1, 5, 63, 64, 70, 99} {
			index.Insert(pos)
		}
		index.Resize(65)

		Convey("the count only covers the retained range", func() {
			So(index.Cap(), ShouldEqual, 65)
			So(index.Len(), ShouldEqual, 4)
			So(slices.Collect(index.Occupied()), ShouldResemble, []int{1, 5, 63, 64})
		})

		Convey("growing again does not bring truncated positions back", func() {
			index.Resize(100)
			So(index.Contains(70), ShouldBeFalse)
			So(index.Contains(99), ShouldBeFalse)
			So(index.Len(), ShouldEqual, 4)
		})
	})

	Convey("When shrinking a dynamic index", t, func() {
		index := NewIndex(1000)
		for pos := 0; pos < 1000; pos += 3 {
			index.Insert(pos)
		}
		index.Resize(500)

		So(index.Cap(), ShouldEqual, 500)
		So(index.Len(), ShouldEqual, 167)
		next, ok := index.NextUnoccupied()
		So(ok, ShouldBeTrue)
		So(next, ShouldEqual, 1)
	})

	Convey("Resizing to a negative capacity panics", t, func() {
		So(func() { NewIndex(3).Resize(-1) }, ShouldPanic)
	})
}

func TestIndexClear(t *testing.T) {
	Convey("When clearing an index", t, func() {
		index := NewIndex(300)
		for pos := 0; pos < 300; pos += 7 {
			index.Insert(pos)
		}
		index.Clear()

		So(index.Len(), ShouldEqual, 0)
		So(index.Cap(), ShouldEqual, 300)
		So(slices.Collect(index.Occupied()), ShouldBeEmpty)

		Convey("clearing twice leaves it empty", func() {
			index.Clear()
			So(index.IsEmpty(), ShouldBeTrue)
		})
	})
}

func TestIndexUnoccupied(t *testing.T) {
	Convey("When every position but a few is occupied", t, func() {
		index := NewIndex(200)
		free := map[int]bool{3: true, 64: true, 150: true, 199: true}
		for pos := 0; pos < 200; pos++ {
			if !free[pos] {
				index.Insert(pos)
			}
		}

		Convey("the free positions come back in ascending order", func() {
			So(slices.Collect(index.Unoccupied()), ShouldResemble, []int{3, 64, 150, 199})
		})

		Convey("the lowest free position is handed out first", func() {
			next, ok := index.NextUnoccupied()
			So(ok, ShouldBeTrue)
			So(next, ShouldEqual, 3)

			index.Insert(3)
			next, ok = index.NextUnoccupied()
			So(ok, ShouldBeTrue)
			So(next, ShouldEqual, 64)
		})

		Convey("a full index has no free position", func() {
			for pos := range free {
				index.Insert(pos)
			}
			So(index.IsFull(), ShouldBeTrue)
			_, ok := index.NextUnoccupied()
			So(ok, ShouldBeFalse)
			So(slices.Collect(index.Unoccupied()), ShouldBeEmpty)
		})
	})

	Convey("An index without capacity has no free position", t, func() {
		_, ok := NewIndex(0).NextUnoccupied()
		So(ok, ShouldBeFalse)
	})
}

func TestIndexFreeSearchPerBackend(t *testing.T) {
	for _, capacity := range []int{100, 128, 130, 1000} {
		Convey(fmt.Sprintf("When filling an index of %d positions from the bottom", capacity), t, func() {
			index := NewIndex(capacity)

			for want := 0; want < capacity; want++ {
				next, ok := index.NextUnoccupied()
				So(ok, ShouldBeTrue)
				So(next, ShouldEqual, want)
				index.Insert(next)
			}

			Convey("the search stops at the capacity", func() {
				_, ok := index.NextUnoccupied()
				So(ok, ShouldBeFalse)
			})

			Convey("a freed position in a full word is found again", func() {
				index.Remove(capacity - 1)
				index.Remove(capacity / 2)
				So(slices.Collect(index.Unoccupied()), ShouldResemble, []int{capacity / 2, capacity - 1})

				next, ok := index.NextUnoccupied()
				So(ok, ShouldBeTrue)
				So(next, ShouldEqual, capacity/2)
			})
		})
	}
}

func TestIndexOccupied(t *testing.T) {
	Convey("When occupying a sparse set of positions", t, func() {
		index := NewIndex(0)
		positions := []int{0, 9, 63, 64, 127, 128, 1000, 4095}
		for _, pos := range positions {
			index.Insert(pos)
		}

		Convey("they come back in ascending order, as often as asked", func() {
			So(slices.Collect(index.Occupied()), ShouldResemble, positions)
			So(slices.Collect(index.Occupied()), ShouldResemble, positions)
		})

		Convey("stopping early stops the walk", func() {
			var seen []int
			for pos := range index.Occupied() {
				seen = append(seen, pos)
				if len(seen) == 3 {
					break
				}
			}
			So(seen, ShouldResemble, positions[:3])
		})

		Convey("the cursor walks from any position", func() {
			pos, ok := index.NextOccupied(65)
			So(ok, ShouldBeTrue)
			So(pos, ShouldEqual, 127)

			pos, ok = index.NextOccupied(-5)
			So(ok, ShouldBeTrue)
			So(pos, ShouldEqual, 0)

			_, ok = index.NextOccupied(4096)
			So(ok, ShouldBeFalse)
		})

		Convey("draining removes positions as they are taken", func() {
			cursor := index.drain()
			pos, ok := cursor.take()
			So(ok, ShouldBeTrue)
			So(pos, ShouldEqual, 0)
			So(cursor.remaining(), ShouldEqual, len(positions)-1)
			So(index.Contains(0), ShouldBeFalse)
		})
	})
}

func TestIndexString(t *testing.T) {
	Convey("When printing an index", t, func() {
		index := NewIndex(70)
		index.Insert(0)
		index.Insert(65)
		out := index.String()

		So(out, ShouldContainSubstring, "Index Backend: inline")
		So(out, ShouldContainSubstring, "Index Len: 2")
		So(out, ShouldContainSubstring, "index[0]: 0000000000000000000000000000000000000000000000000000000000000001")
		So(out, ShouldContainSubstring, "index[1]: 0000000000000000000000000000000000000000000000000000000000000010")
	})
}
