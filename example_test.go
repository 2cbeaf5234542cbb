package slab_test

import (
	"fmt"

	slab "github.com/replay/go-generic-slab"
)

func Example() {
	s := slab.New[string]()
	a := s.Insert("a")
	b := s.Insert("b")
	s.Insert("c")

	s.Remove(b)
	fmt.Println(s.Insert("d") == b)

	v, ok := s.Get(a)
	fmt.Println(v, ok)

	for k, v := range s.All() {
		fmt.Println(k.Index(), v)
	}
	// Output:
	// true
	// a true
	// 0 a
	// 1 d
	// 2 c
}

func ExampleSlab_Drain() {
	s := slab.New[int]()
	for i := 1; i <= 5; i++ {
		s.Insert(i * i)
	}

	it := s.Drain()
	defer it.Close()

	for {
		k, v, ok := it.Next()
		if !ok || v > 9 {
			break
		}
		fmt.Println(k, v)
	}
	fmt.Println(it.Len(), "left,", s.Len(), "in slab")
	// Output:
	// Key(0) 1
	// Key(1) 4
	// Key(2) 9
	// 1 left, 0 in slab
}
