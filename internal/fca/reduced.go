package fca

// Reduce derives the reduced labeling of l: a lattice with the same shape
// where each node keeps only the attributes it introduces (absent from
// every parent) and the objects it owns (absent from every child). It
// returns the new lattice and the mapping from l's nodes to their copies.
func Reduce[O, A comparable](l *Lattice[O, A]) (*Lattice[O, A], map[NodeID]NodeID, error) {
	reduced := NewLattice[O, A]()
	copies := make(map[NodeID]NodeID)

	err := Walk(l, TopDown, make(Visited), Hooks[O, A]{
		Process: func(n *Node[O, A]) {
			intent := n.intent.Clone()
			for _, p := range l.Parents(n.id) {
				for attr := range l.nodes[p].intent {
					intent.Remove(attr)
				}
			}
			extent := n.extent.Clone()
			for _, c := range l.Children(n.id) {
				for obj := range l.nodes[c].extent {
					extent.Remove(obj)
				}
			}
			copies[n.id] = reduced.NewNode(extent, intent)
		},
	})
	if err != nil {
		return nil, nil, err
	}

	for orig, cp := range copies {
		for _, child := range l.Children(orig) {
			reduced.Link(cp, copies[child])
		}
	}
	reduced.SetTop(copies[l.top])
	reduced.SetBottom(copies[l.bottom])
	return reduced, copies, nil
}
