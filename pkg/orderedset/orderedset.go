// Package orderedset provides a set that remembers insertion order.
package orderedset

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// Set is not safe for concurrent use.
type Set[T comparable] struct {
	members mapset.Set[T]
	order   []T
}

func New[T comparable]() *Set[T] {
	return &Set[T]{members: mapset.NewThreadUnsafeSet[T]()}
}

// Add inserts v and reports whether it was not already present.
func (s *Set[T]) Add(v T) bool {
	if !s.members.Add(v) {
		return false
	}
	s.order = append(s.order, v)
	return true
}

func (s *Set[T]) Contains(v T) bool {
	return s.members.Contains(v)
}

func (s *Set[T]) Len() int {
	return len(s.order)
}

// Values returns the members in first-seen order.
func (s *Set[T]) Values() []T {
	out := make([]T, len(s.order))
	copy(out, s.order)
	return out
}
