package fca

import "sort"

// NodeID addresses a node inside its lattice's arena.
type NodeID int

// NoNode marks an unset top or bottom.
const NoNode NodeID = -1

// Node is a formal concept: an extent of objects and an intent of
// attributes, linked to its parents (more general concepts) and children
// (more specific concepts).
type Node[O, A comparable] struct {
	id       NodeID
	extent   Set[O]
	intent   Set[A]
	parents  map[NodeID]struct{}
	children map[NodeID]struct{}
}

func (n *Node[O, A]) ID() NodeID { return n.id }

// Extent returns the live extent set. Mutations act in place; callers
// restore the ordering invariant themselves.
func (n *Node[O, A]) Extent() Set[O] { return n.extent }

// Intent returns the live intent set.
func (n *Node[O, A]) Intent() Set[A] { return n.intent }

func (n *Node[O, A]) AddToExtent(obj O) { n.extent.Add(obj) }
func (n *Node[O, A]) AddAllToExtent(objs Set[O]) { n.extent.AddAll(objs) }
func (n *Node[O, A]) RemoveFromExtent(obj O) { n.extent.Remove(obj) }
func (n *Node[O, A]) AddToIntent(attr A) { n.intent.Add(attr) }
func (n *Node[O, A]) AddAllToIntent(attrs Set[A]) {
	n.intent.AddAll(attrs)
}
func (n *Node[O, A]) RemoveFromIntent(attr A) { n.intent.Remove(attr) }

func (n *Node[O, A]) SetExtent(extent Set[O]) { n.extent = extent.Clone() }
func (n *Node[O, A]) SetIntent(intent Set[A]) { n.intent = intent.Clone() }

// NumParents and NumChildren report edge counts without allocating.
func (n *Node[O, A]) NumParents() int { return len(n.parents) }
func (n *Node[O, A]) NumChildren() int { return len(n.children) }

// Lattice is an arena of concept nodes with a distinguished top and bottom.
// It has no internal locking: the builder and every visitor need
// exclusive access for their whole run.
type Lattice[O, A comparable] struct {
	nodes  []*Node[O, A]
	top    NodeID
	bottom NodeID
}

// NewLattice returns an empty lattice with neither top nor bottom set.
func NewLattice[O, A comparable]() *Lattice[O, A] {
	return &Lattice[O, A]{top: NoNode, bottom: NoNode}
}

// NewNode allocates an unlinked node holding copies of extent and intent.
func (l *Lattice[O, A]) NewNode(extent Set[O], intent Set[A]) NodeID {
	id := NodeID(len(l.nodes))
	l.nodes = append(l.nodes, &Node[O, A]{
		id:       id,
		extent:   extent.Clone(),
		intent:   intent.Clone(),
		parents:  make(map[NodeID]struct{}),
		children: make(map[NodeID]struct{}),
	})
	return id
}

// Node returns the node for id, or nil if id is outside the arena.
func (l *Lattice[O, A]) Node(id NodeID) *Node[O, A] {
	if id < 0 || int(id) >= len(l.nodes) {
		return nil
	}
	return l.nodes[id]
}

func (l *Lattice[O, A]) Top() NodeID { return l.top }
func (l *Lattice[O, A]) Bottom() NodeID { return l.bottom }
func (l *Lattice[O, A]) SetTop(id NodeID) { l.top = id }
func (l *Lattice[O, A]) SetBottom(id NodeID) { l.bottom = id }
func (l *Lattice[O, A]) TopNode() *Node[O, A] { return l.Node(l.top) }
func (l *Lattice[O, A]) BottomNode() *Node[O, A] {
	return l.Node(l.bottom)
}

// Validate reports ErrInvalidLattice unless both top and bottom are set.
func (l *Lattice[O, A]) Validate() error {
	if l.Node(l.top) == nil || l.Node(l.bottom) == nil {
		return ErrInvalidLattice
	}
	return nil
}

// Len returns the arena size, including absorbed nodes that are no
// longer reachable.
func (l *Lattice[O, A]) Len() int { return len(l.nodes) }

// Link adds the edge parent -> child on both ends.
func (l *Lattice[O, A]) Link(parent, child NodeID) {
	l.nodes[parent].children[child] = struct{}{}
	l.nodes[child].parents[parent] = struct{}{}
}

// Unlink removes the edge parent -> child on both ends.
func (l *Lattice[O, A]) Unlink(parent, child NodeID) {
	delete(l.nodes[parent].children, child)
	delete(l.nodes[child].parents, parent)
}

// HasParent reports whether parent -> id is an edge.
func (l *Lattice[O, A]) HasParent(id, parent NodeID) bool {
	_, ok := l.nodes[id].parents[parent]
	return ok
}

// HasChild reports whether id -> child is an edge.
func (l *Lattice[O, A]) HasChild(id, child NodeID) bool {
	_, ok := l.nodes[id].children[child]
	return ok
}

// Parents returns the parents of id in ascending NodeID order.
func (l *Lattice[O, A]) Parents(id NodeID) []NodeID {
	return sortedIDs(l.nodes[id].parents)
}

// Children returns the children of id in ascending NodeID order.
func (l *Lattice[O, A]) Children(id NodeID) []NodeID {
	return sortedIDs(l.nodes[id].children)
}

// Copy allocates a detached node with a snapshot of id's extent and
// intent and no edges, for staging before it is wired in.
func (l *Lattice[O, A]) Copy(id NodeID) NodeID {
	n := l.nodes[id]
	return l.NewNode(n.extent, n.intent)
}

// TakePlaceOf moves every parent and child edge of other onto receiver.
// other is left orphaned; the caller discards it.
func (l *Lattice[O, A]) TakePlaceOf(receiver, other NodeID) {
	for _, child := range l.Children(other) {
		l.Link(receiver, child)
		l.Unlink(other, child)
	}
	for _, parent := range l.Parents(other) {
		l.Link(parent, receiver)
		l.Unlink(parent, other)
	}
}

// Nodes returns every node reachable from top, in the order a TopDown
// walk first reaches them.
func (l *Lattice[O, A]) Nodes() ([]*Node[O, A], error) {
	var out []*Node[O, A]
	err := Walk(l, TopDown, make(Visited), Hooks[O, A]{
		Process: func(n *Node[O, A]) { out = append(out, n) },
	})
	return out, err
}

// Concepts counts the nodes reachable from top.
func (l *Lattice[O, A]) Concepts() (int, error) {
	nodes, err := l.Nodes()
	return len(nodes), err
}

func sortedIDs(m map[NodeID]struct{}) []NodeID {
	ids := make([]NodeID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
