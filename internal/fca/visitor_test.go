package fca

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// diamond builds top -> {left, right} -> bottom.
func diamond(t *testing.T) (*Lattice[string, string], [4]NodeID) {
	t.Helper()
	l := NewLattice[string, string]()
	top := l.NewNode(NewSet("A", "B"), nil)
	left := l.NewNode(NewSet("A"), NewSet("m1"))
	right := l.NewNode(NewSet("B"), NewSet("m2"))
	bottom := l.NewNode(nil, NewSet("m1", "m2"))
	l.Link(top, left)
	l.Link(top, right)
	l.Link(left, bottom)
	l.Link(right, bottom)
	l.SetTop(top)
	l.SetBottom(bottom)
	return l, [4]NodeID{top, left, right, bottom}
}

func TestWalkProcessesSharedNodeOnce(t *testing.T) {
	l, ids := diamond(t)

	var processed, revisited []NodeID
	err := Walk(l, TopDown, make(Visited), Hooks[string, string]{
		Process:        func(n *Node[string, string]) { processed = append(processed, n.ID()) },
		ProcessVisited: func(n *Node[string, string]) { revisited = append(revisited, n.ID()) },
	})
	require.NoError(t, err)

	assert.Equal(t, []NodeID{ids[0], ids[1], ids[3], ids[2]}, processed)
	assert.Equal(t, []NodeID{ids[3]}, revisited)
}

func TestWalkBottomUp(t *testing.T) {
	l, ids := diamond(t)

	var processed []NodeID
	err := Walk(l, BottomUp, make(Visited), Hooks[string, string]{
		Process: func(n *Node[string, string]) { processed = append(processed, n.ID()) },
	})
	require.NoError(t, err)
	assert.Equal(t, []NodeID{ids[3], ids[1], ids[0], ids[2]}, processed)
}

func TestWalkPreDescendSkipsLeaves(t *testing.T) {
	l, ids := diamond(t)

	var pre []NodeID
	err := Walk(l, TopDown, make(Visited), Hooks[string, string]{
		PreDescend: func(n *Node[string, string]) { pre = append(pre, n.ID()) },
	})
	require.NoError(t, err)
	assert.Equal(t, []NodeID{ids[0], ids[1], ids[2]}, pre)
}

func TestWalkErrors(t *testing.T) {
	empty := NewLattice[string, string]()
	err := Walk(empty, TopDown, make(Visited), Hooks[string, string]{})
	assert.ErrorIs(t, err, ErrInvalidLattice)

	l, _ := diamond(t)
	err = Walk(l, Undefined, make(Visited), Hooks[string, string]{})
	assert.ErrorIs(t, err, ErrInvalidDirection)
}

func TestVisitorReset(t *testing.T) {
	l, ids := diamond(t)

	count := 0
	v := NewVisitor(Hooks[string, string]{
		Process: func(*Node[string, string]) { count++ },
	})

	require.NoError(t, v.VisitFromTop(l))
	assert.Equal(t, 4, count)
	assert.Equal(t, TopDown, v.Direction())
	assert.True(t, v.Visited(ids[2]))

	// A second run without Reset finds everything already visited.
	require.NoError(t, v.VisitFromBottom(l))
	assert.Equal(t, 4, count)
	assert.Equal(t, BottomUp, v.Direction())

	v.Reset()
	assert.Equal(t, Undefined, v.Direction())
	assert.False(t, v.Visited(ids[0]))
	require.NoError(t, v.VisitFromBottom(l))
	assert.Equal(t, 8, count)
}

func TestDirectionString(t *testing.T) {
	assert.Equal(t, "top-down", TopDown.String())
	assert.Equal(t, "bottom-up", BottomUp.String())
	assert.Equal(t, "undefined", Undefined.String())
}

func TestFillBuckets(t *testing.T) {
	l, ids := diamond(t)

	b, err := FillBuckets(l)
	require.NoError(t, err)
	assert.Equal(t, 4, b.Len())
	assert.Equal(t, []int{0, 1, 2}, b.Sizes())
	assert.Equal(t, []int{0, 1}, b.SizesBelow(2))
	assert.Empty(t, b.SizesBelow(0))

	var size1 []NodeID
	for _, n := range b.Bucket(1) {
		size1 = append(size1, n.ID())
	}
	assert.Equal(t, []NodeID{ids[1], ids[2]}, size1)
	assert.Nil(t, b.Bucket(7))

	b.Record(l.Node(ids[1]))
	assert.Len(t, b.Bucket(1), 2)
}
