package model

import (
	"fortio.org/safecast"
)

// slab is an append-only store addressed by 1-based uint32 indices;
// index 0 is reserved for "none".
type slab[T any] struct {
	data []T
}

// newSlab allocates a slab whose backing slice has capacity capHint.
func newSlab[T any](capHint uint) *slab[T] {
	return &slab[T]{
		data: make([]T, 0, capHint),
	}
}

// allocate returns the 1-based index of the new element.
func (s *slab[T]) allocate(value T) uint32 {
	s.data = append(s.data, value)
	n, err := safecast.Conv[uint32](len(s.data))
	if err != nil {
		panic("model: slab index overflow")
	}
	return n
}

func (s *slab[T]) get(index uint32) *T {
	if index == 0 || int(index) > len(s.data) {
		return nil
	}
	return &s.data[index-1]
}

// READONLY
func (s *slab[T]) slice() []T {
	return s.data
}

func (s *slab[T]) len() uint32 {
	return uint32(len(s.data)) //nolint:gosec // bounded by allocate
}
