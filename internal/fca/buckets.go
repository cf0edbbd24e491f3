package fca

import "sort"

// Buckets partitions nodes by the cardinality of their intent. Each
// bucket keeps first-recorded order and ignores duplicates.
type Buckets[O, A comparable] struct {
	bySize map[int][]*Node[O, A]
	seen   map[NodeID]struct{}
}

// NewBuckets returns an empty bucket structure.
func NewBuckets[O, A comparable]() *Buckets[O, A] {
	return &Buckets[O, A]{
		bySize: make(map[int][]*Node[O, A]),
		seen:   make(map[NodeID]struct{}),
	}
}

// Record files n under |intent(n)|.
func (b *Buckets[O, A]) Record(n *Node[O, A]) {
	if _, ok := b.seen[n.id]; ok {
		return
	}
	b.seen[n.id] = struct{}{}
	size := n.intent.Len()
	b.bySize[size] = append(b.bySize[size], n)
}

// Sizes returns the populated cardinalities in ascending order.
func (b *Buckets[O, A]) Sizes() []int {
	sizes := make([]int, 0, len(b.bySize))
	for size := range b.bySize {
		sizes = append(sizes, size)
	}
	sort.Ints(sizes)
	return sizes
}

// SizesBelow returns the populated cardinalities strictly smaller than
// limit, ascending.
func (b *Buckets[O, A]) SizesBelow(limit int) []int {
	all := b.Sizes()
	i := sort.SearchInts(all, limit)
	return all[:i]
}

// Bucket returns the nodes whose intent has the given size; nil if none.
func (b *Buckets[O, A]) Bucket(size int) []*Node[O, A] {
	return b.bySize[size]
}

// Len returns the number of recorded nodes.
func (b *Buckets[O, A]) Len() int { return len(b.seen) }

// NewBucketFiller returns a visitor that records every node it reaches
// into buckets.
func NewBucketFiller[O, A comparable](buckets *Buckets[O, A]) *Visitor[O, A] {
	return NewVisitor(Hooks[O, A]{Process: buckets.Record})
}

// FillBuckets walks l top-down and returns its nodes bucketed by intent
// cardinality.
func FillBuckets[O, A comparable](l *Lattice[O, A]) (*Buckets[O, A], error) {
	buckets := NewBuckets[O, A]()
	if err := NewBucketFiller(buckets).VisitFromTop(l); err != nil {
		return nil, err
	}
	return buckets, nil
}
