package fca

import (
	"fmt"
	"io"
	"log/slog"
)

// Builder constructs concept lattices incrementally, following Godin,
// Missaoui and Alaoui's algorithm: every (object, image) pair is folded
// into the lattice built so far.
type Builder[O, A comparable] struct {
	logger *slog.Logger
}

// NewBuilder returns a builder. A nil logger discards output.
func NewBuilder[O, A comparable](logger *slog.Logger) *Builder[O, A] {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Builder[O, A]{logger: logger.With("component", "fca.builder")}
}

// BuildLattice builds the concept lattice of rel with a silent builder.
func BuildLattice[O, A comparable](rel Context[O, A]) (*Lattice[O, A], error) {
	return NewBuilder[O, A](nil).Build(rel)
}

// Build creates top and bottom from rel, then adds every domain object
// with its image, in domain order.
func (b *Builder[O, A]) Build(rel Context[O, A]) (*Lattice[O, A], error) {
	l := NewLattice[O, A]()
	b.InitializeTopBottom(l, rel)

	for _, obj := range rel.Domain() {
		image, err := rel.Image(obj)
		if err != nil {
			return nil, fmt.Errorf("building lattice: %w", err)
		}
		if err := b.Add(l, obj, image); err != nil {
			return nil, fmt.Errorf("adding %v: %w", obj, err)
		}
	}

	b.logger.Debug("lattice built", "objects", len(rel.Domain()), "nodes", l.Len())
	return l, nil
}

// InitializeTopBottom sets top to (domain, ∅) and bottom to
// (∅, all attributes), joined by a single edge.
func (b *Builder[O, A]) InitializeTopBottom(l *Lattice[O, A], rel Context[O, A]) {
	top := l.NewNode(NewSet(rel.Domain()...), nil)
	bottom := l.NewNode(nil, rel.AllImages())
	l.SetTop(top)
	l.SetBottom(bottom)
	l.Link(top, bottom)
}

// Add folds entity, carrying image, into l. Add mutates l in place and
// cannot be undone; an entity must be added at most once.
func (b *Builder[O, A]) Add(l *Lattice[O, A], entity O, image Set[A]) error {
	if err := l.Validate(); err != nil {
		return err
	}
	created := 0
	defer func() {
		b.logger.Debug("entity added", "entity", entity, "image", image.Len(), "created", created)
	}()

	if b.extendBottom(l, image) {
		created++
	}

	// Buckets of the lattice as it stands, and of the nodes modified or
	// created by this insertion.
	current, err := FillBuckets(l)
	if err != nil {
		return err
	}
	touched := NewBuckets[O, A]()

	for _, size := range current.Sizes() {
		for _, h := range current.Bucket(size) {
			if image.ContainsAll(h.intent) {
				// Modified pair: entity joins the extent, intent unchanged.
				h.AddToExtent(entity)
				touched.Record(h)
				if image.Len() == h.intent.Len() {
					return nil
				}
				continue
			}

			// Old pair.
			inter := image.Intersect(h.intent)
			if !isGenerator(touched, inter) {
				continue
			}

			extent := h.extent.Clone()
			extent.Add(entity)
			hn := l.NewNode(extent, inter)
			created++
			newNode := l.nodes[hn]
			touched.Record(newNode)
			l.Link(hn, h.id)

			for _, smaller := range touched.SizesBelow(inter.Len()) {
				for _, ha := range touched.Bucket(smaller) {
					if !inter.ContainsAll(ha.intent) {
						continue
					}
					// Every child of ha is checked, even after one has
					// already disqualified it.
					isParent := true
					for _, child := range l.Children(ha.id) {
						if inter.ContainsAll(l.nodes[child].intent) {
							isParent = false
						}
					}
					if !isParent {
						continue
					}
					if l.HasParent(h.id, ha.id) {
						l.Unlink(ha.id, h.id)
					}
					l.Link(ha.id, hn)
				}
			}

			if inter.Equal(image) {
				return nil
			}
		}
	}
	return nil
}

// isGenerator reports whether no node already recorded for this insertion
// carries exactly inter as its intent.
func isGenerator[O, A comparable](touched *Buckets[O, A], inter Set[A]) bool {
	for _, n := range touched.Bucket(inter.Len()) {
		if n.intent.Equal(inter) {
			return false
		}
	}
	return true
}

// extendBottom makes the bottom intent cover image. The bottom grows in
// place while its extent is empty; otherwise a new bottom is linked below
// it. It reports whether a node was created.
func (b *Builder[O, A]) extendBottom(l *Lattice[O, A], image Set[A]) bool {
	bottom := l.nodes[l.bottom]
	if bottom.intent.ContainsAll(image) {
		return false
	}
	if bottom.extent.Len() == 0 {
		bottom.AddAllToIntent(image)
		return false
	}
	fresh := l.NewNode(nil, bottom.intent.Union(image))
	l.Link(bottom.id, fresh)
	l.SetBottom(fresh)
	return true
}
