package fca

import (
	"fmt"
	"sort"
	"strings"
)

// Set is an unordered set of comparable elements.
type Set[T comparable] map[T]struct{}

// NewSet returns a set holding elems.
func NewSet[T comparable](elems ...T) Set[T] {
	s := make(Set[T], len(elems))
	for _, e := range elems {
		s[e] = struct{}{}
	}
	return s
}

func (s Set[T]) Add(e T) { s[e] = struct{}{} }

func (s Set[T]) AddAll(other Set[T]) {
	for e := range other {
		s[e] = struct{}{}
	}
}

func (s Set[T]) Remove(e T) { delete(s, e) }

func (s Set[T]) Has(e T) bool {
	_, ok := s[e]
	return ok
}

func (s Set[T]) Len() int { return len(s) }

// Clone returns a detached copy. A nil set clones to an empty, non-nil set.
func (s Set[T]) Clone() Set[T] {
	out := make(Set[T], len(s))
	for e := range s {
		out[e] = struct{}{}
	}
	return out
}

// ContainsAll reports whether every element of other is in s.
func (s Set[T]) ContainsAll(other Set[T]) bool {
	if len(other) > len(s) {
		return false
	}
	for e := range other {
		if _, ok := s[e]; !ok {
			return false
		}
	}
	return true
}

func (s Set[T]) Equal(other Set[T]) bool {
	return len(s) == len(other) && s.ContainsAll(other)
}

// Intersect returns a new set with the elements present in both s and other.
func (s Set[T]) Intersect(other Set[T]) Set[T] {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	out := make(Set[T])
	for e := range small {
		if _, ok := large[e]; ok {
			out[e] = struct{}{}
		}
	}
	return out
}

// RetainAll removes from s every element not in other.
func (s Set[T]) RetainAll(other Set[T]) {
	for e := range s {
		if _, ok := other[e]; !ok {
			delete(s, e)
		}
	}
}

// Union returns a new set with the elements of s and other.
func (s Set[T]) Union(other Set[T]) Set[T] {
	out := s.Clone()
	out.AddAll(other)
	return out
}

// Slice returns the elements ordered by less.
func (s Set[T]) Slice(less func(a, b T) bool) []T {
	out := make([]T, 0, len(s))
	for e := range s {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// Strings renders every element with fmt and returns them sorted.
func (s Set[T]) Strings() []string {
	out := make([]string, 0, len(s))
	for e := range s {
		out = append(out, fmt.Sprint(e))
	}
	sort.Strings(out)
	return out
}

func (s Set[T]) String() string {
	return "{" + strings.Join(s.Strings(), ", ") + "}"
}
