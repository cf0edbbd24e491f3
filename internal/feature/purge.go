package feature

import (
	"io"
	"log/slog"

	"github.com/olehluchkiv/gofeatures/internal/fca"
	"github.com/olehluchkiv/gofeatures/internal/model"
)

// Purger removes from every extent the members that are supertypes of
// another member, since the more specific member already accounts for
// the occurrence. A supertype whose own local domain interface covers the
// whole intent is an independent occurrence and stays.
type Purger struct {
	di      DomainInterfaces
	logger  *slog.Logger
	removed int
}

// NewPurger returns a purger. A nil logger discards output.
func NewPurger(di DomainInterfaces, logger *slog.Logger) *Purger {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Purger{di: di, logger: logger.With("component", "feature.purge")}
}

// Run purges every node of l, top-down. Extents are edited in place.
func (p *Purger) Run(l *Lattice) error {
	err := fca.Walk(l, fca.TopDown, make(fca.Visited), fca.Hooks[model.Type, *model.Attribute]{
		Process: p.purge,
	})
	if err != nil {
		return err
	}
	p.logger.Debug("extents purged", "removed", p.removed)
	return nil
}

// Removed returns how many extent members Run removed so far.
func (p *Purger) Removed() int { return p.removed }

func (p *Purger) purge(n *Node) {
	intent := n.Intent()
	if intent.Len() == 0 {
		return
	}
	extent := n.Extent()

	// Each member is processed once; an ancestor handled on behalf of a
	// descendant leaves the work-list whether or not it is removed.
	work := sortedTypes(extent)
	for len(work) > 0 {
		next := work[0]
		work = work[1:]
		for _, ancestor := range next.Supertypes() {
			if !extent.Has(ancestor) {
				continue
			}
			if !p.di.Local(ancestor).ContainsAll(intent) {
				extent.Remove(ancestor)
				p.removed++
			}
			work = without(work, ancestor)
		}
	}
}

func without(types []model.Type, t model.Type) []model.Type {
	for i, x := range types {
		if x == t {
			return append(types[:i], types[i+1:]...)
		}
	}
	return types
}
