package fca

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetBasics(t *testing.T) {
	s := NewSet("a", "b")
	s.Add("c")
	s.Add("a")
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Has("c"))

	s.Remove("b")
	s.Remove("missing")
	assert.False(t, s.Has("b"))
	assert.Equal(t, "{a, c}", s.String())
}

func TestSetCloneIsDetached(t *testing.T) {
	s := NewSet(1, 2)
	c := s.Clone()
	c.Add(3)
	assert.Equal(t, 2, s.Len())

	var nilSet Set[int]
	cloned := nilSet.Clone()
	assert.NotNil(t, cloned)
	cloned.Add(1)
	assert.Equal(t, 1, cloned.Len())
}

func TestSetAlgebra(t *testing.T) {
	a := NewSet("x", "y", "z")
	b := NewSet("y", "z", "w")

	assert.True(t, a.Intersect(b).Equal(NewSet("y", "z")))
	assert.True(t, a.Union(b).Equal(NewSet("w", "x", "y", "z")))
	assert.True(t, a.ContainsAll(NewSet("x", "z")))
	assert.False(t, a.ContainsAll(b))
	assert.True(t, a.ContainsAll(nil))
	assert.False(t, a.Equal(b))

	a.RetainAll(b)
	assert.Equal(t, []string{"y", "z"}, a.Strings())
}

func TestSetSlice(t *testing.T) {
	s := NewSet(3, 1, 2)
	got := s.Slice(func(a, b int) bool { return a > b })
	assert.Equal(t, []int{3, 2, 1}, got)
}
