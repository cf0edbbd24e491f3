package feature

import (
	"github.com/olehluchkiv/gofeatures/internal/fca"
	"github.com/olehluchkiv/gofeatures/internal/model"
)

// ValidateAdhoc decides, for every reachable node, which plain attributes
// of its intent are ad hoc: those without a root extended attribute of
// the same name in the same intent. It returns the ad hoc attributes per
// node. Attributes are shared between nodes, so each attribute's own flag
// is left as set by the last node visited that holds it.
func ValidateAdhoc(l *Lattice) (map[fca.NodeID]fca.Set[*model.Attribute], error) {
	out := make(map[fca.NodeID]fca.Set[*model.Attribute])
	err := fca.Walk(l, fca.TopDown, make(fca.Visited), fca.Hooks[model.Type, *model.Attribute]{
		Process: func(n *Node) {
			roots := make(map[string]struct{})
			for attr := range n.Intent() {
				if attr.Extended && attr.Root {
					roots[attr.Name] = struct{}{}
				}
			}
			adhoc := fca.NewSet[*model.Attribute]()
			for attr := range n.Intent() {
				if attr.Extended {
					continue
				}
				_, explained := roots[attr.Name]
				attr.SetAdhoc(!explained)
				if !explained {
					adhoc.Add(attr)
				}
			}
			out[n.ID()] = adhoc
		},
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
