package slab

import (
	"fmt"
	"sync/atomic"
)

// tracked counts how often the slab drops it.
type tracked struct {
	id    int
	drops map[int]int
}

func (t *tracked) Drop() {
	t.drops[t.id]++
}

// dropCounter hands out tracked values and checks how often each was dropped.
type dropCounter struct {
	drops map[int]int
}

func newDropCounter() *dropCounter {
	return &dropCounter{drops: make(map[int]int)}
}

func (c *dropCounter) value(id int) *tracked {
	return &tracked{id: id, drops: c.drops}
}

func (c *dropCounter) total() int {
	n := 0
	for _, d := range c.drops {
		n += d
	}
	return n
}

// droppedTwice returns the ids dropped more than once.
func (c *dropCounter) droppedTwice() []int {
	var ids []int
	for id, d := range c.drops {
		if d > 1 {
			ids = append(ids, id)
		}
	}
	return ids
}

func (t *tracked) String() string {
	return fmt.Sprintf("tracked(%d)", t.id)
}

// sharedDrop counts drops from any goroutine, including the finalizer's.
type sharedDrop struct {
	drops *atomic.Int32
}

func (d sharedDrop) Drop() {
	d.drops.Add(1)
}
