package fca

// Direction selects which edges a traversal follows.
type Direction int

const (
	Undefined Direction = iota
	TopDown             // follow children, starting at top
	BottomUp            // follow parents, starting at bottom
)

func (d Direction) String() string {
	switch d {
	case TopDown:
		return "top-down"
	case BottomUp:
		return "bottom-up"
	default:
		return "undefined"
	}
}

// Visited records the nodes a traversal has already processed. It is
// owned by the caller, so several walks can share or reset it.
type Visited map[NodeID]struct{}

// Hooks are the per-node callbacks of a traversal. Any of them may be nil.
type Hooks[O, A comparable] struct {
	// Process runs the first time a node is reached.
	Process func(n *Node[O, A])
	// ProcessVisited runs on every later encounter of a node.
	ProcessVisited func(n *Node[O, A])
	// PreDescend runs once per node, after Process and before the walk
	// descends into the node's successors. Nodes without successors in
	// the walk direction skip it.
	PreDescend func(n *Node[O, A])
}

// Walk traverses l from top (TopDown) or bottom (BottomUp), deduplicating
// diamond-shared nodes through visited.
func Walk[O, A comparable](l *Lattice[O, A], dir Direction, visited Visited, hooks Hooks[O, A]) error {
	if err := l.Validate(); err != nil {
		return err
	}
	var start NodeID
	switch dir {
	case TopDown:
		start = l.top
	case BottomUp:
		start = l.bottom
	default:
		return ErrInvalidDirection
	}
	walkNode(l, start, dir, visited, hooks)
	return nil
}

func walkNode[O, A comparable](l *Lattice[O, A], id NodeID, dir Direction, visited Visited, hooks Hooks[O, A]) {
	n := l.nodes[id]
	if _, seen := visited[id]; seen {
		if hooks.ProcessVisited != nil {
			hooks.ProcessVisited(n)
		}
		return
	}
	if hooks.Process != nil {
		hooks.Process(n)
	}
	visited[id] = struct{}{}

	var next []NodeID
	if dir == TopDown {
		next = l.Children(id)
	} else {
		next = l.Parents(id)
	}
	if len(next) == 0 {
		return
	}
	if hooks.PreDescend != nil {
		hooks.PreDescend(n)
	}
	for _, succ := range next {
		walkNode(l, succ, dir, visited, hooks)
	}
}

// Visitor bundles hooks with the per-run state of a traversal: its
// visited set and the direction of the last run. Call Reset between
// independent runs. A Visitor is not safe for concurrent use.
type Visitor[O, A comparable] struct {
	hooks     Hooks[O, A]
	visited   Visited
	direction Direction
}

// NewVisitor returns a visitor running hooks.
func NewVisitor[O, A comparable](hooks Hooks[O, A]) *Visitor[O, A] {
	return &Visitor[O, A]{hooks: hooks, visited: make(Visited)}
}

// VisitFromTop walks l top-down.
func (v *Visitor[O, A]) VisitFromTop(l *Lattice[O, A]) error {
	v.direction = TopDown
	return Walk(l, TopDown, v.visited, v.hooks)
}

// VisitFromBottom walks l bottom-up.
func (v *Visitor[O, A]) VisitFromBottom(l *Lattice[O, A]) error {
	v.direction = BottomUp
	return Walk(l, BottomUp, v.visited, v.hooks)
}

// Direction returns the direction of the last run; it is kept until the
// next VisitFrom* call or Reset.
func (v *Visitor[O, A]) Direction() Direction { return v.direction }

// Visited reports whether the current run has processed id.
func (v *Visitor[O, A]) Visited(id NodeID) bool {
	_, ok := v.visited[id]
	return ok
}

// Reset clears the visited set and the direction.
func (v *Visitor[O, A]) Reset() {
	v.visited = make(Visited)
	v.direction = Undefined
}
