// Package types holds small generic containers shared across addresswatch.
package types

import (
	"iter"
	"maps"
	"slices"
)

// Set is a generic hash set for comparable types.
//
// It is mutable: Add, Delete, and Clear modify the set in place. A Set is not
// safe for concurrent use; owners guard it with their own lock.
type Set[T comparable] map[T]struct{}

// NewSet creates a new Set holding the provided elements.
func NewSet[T comparable](data ...T) Set[T] {
	set := make(Set[T], len(data))
	for _, d := range data {
		set[d] = struct{}{}
	}
	return set
}

// Add inserts one or more elements into the set.
func (s Set[T]) Add(values ...T) {
	for _, val := range values {
		s[val] = struct{}{}
	}
}

// AddNew inserts value and reports whether it was not already present.
func (s Set[T]) AddNew(value T) bool {
	if s.Has(value) {
		return false
	}

	s[value] = struct{}{}
	return true
}

// Has reports whether value is in the set.
func (s Set[T]) Has(value T) bool {
	_, ok := s[value]
	return ok
}

// Delete removes one or more elements from the set.
func (s Set[T]) Delete(values ...T) {
	for _, val := range values {
		delete(s, val)
	}
}

// Clear removes every element.
func (s Set[T]) Clear() {
	clear(s)
}

// ToIter returns an iterator over all elements in the set.
func (s Set[T]) ToIter() iter.Seq[T] {
	return maps.Keys(s)
}

// ToSlice returns the elements in no particular order.
func (s Set[T]) ToSlice() []T {
	return slices.Collect(s.ToIter())
}
