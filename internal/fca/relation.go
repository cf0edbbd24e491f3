package fca

import (
	"fmt"
	"sort"
	"strings"
)

// Context is the read side of a binary relation, as consumed by the
// lattice builder. Specialized relations may implement AllImages faster
// than a union over every image.
type Context[O, A comparable] interface {
	Domain() []O
	Image(obj O) (Set[A], error)
	AllImages() Set[A]
}

// Relation maps domain objects to sets of attributes. An object with an
// empty image is still part of the domain.
type Relation[O, A comparable] struct {
	order  []O
	images map[O]Set[A]
}

// NewRelation returns an empty relation.
func NewRelation[O, A comparable]() *Relation[O, A] {
	return &Relation[O, A]{images: make(map[O]Set[A])}
}

// AddToDomain registers obj with an empty image. Registering an object
// twice has no effect.
func (r *Relation[O, A]) AddToDomain(obj O) {
	if _, ok := r.images[obj]; ok {
		return
	}
	r.images[obj] = make(Set[A])
	r.order = append(r.order, obj)
}

// RemoveFromDomain drops obj and its image. No-op if obj is absent.
func (r *Relation[O, A]) RemoveFromDomain(obj O) {
	if _, ok := r.images[obj]; !ok {
		return
	}
	delete(r.images, obj)
	for i, o := range r.order {
		if o == obj {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// AddRelation adds attr to the image of obj, registering obj if needed.
func (r *Relation[O, A]) AddRelation(obj O, attr A) {
	r.AddToDomain(obj)
	r.images[obj].Add(attr)
}

// RemoveRelation removes the (obj, attr) pair. No-op unless it exists.
func (r *Relation[O, A]) RemoveRelation(obj O, attr A) {
	if !r.ContainsRelation(obj, attr) {
		return
	}
	r.images[obj].Remove(attr)
}

func (r *Relation[O, A]) DomainContains(obj O) bool {
	_, ok := r.images[obj]
	return ok
}

func (r *Relation[O, A]) ContainsRelation(obj O, attr A) bool {
	image, ok := r.images[obj]
	return ok && image.Has(attr)
}

// Domain returns the domain objects in registration order. The returned
// slice is shared with the relation and must not be modified.
func (r *Relation[O, A]) Domain() []O {
	return r.order
}

// Image returns a detached copy of the image of obj.
func (r *Relation[O, A]) Image(obj O) (Set[A], error) {
	image, ok := r.images[obj]
	if !ok {
		return nil, fmt.Errorf("image of %v: %w", obj, ErrNotInDomain)
	}
	return image.Clone(), nil
}

// AllImages returns the union of every image.
func (r *Relation[O, A]) AllImages() Set[A] {
	all := make(Set[A])
	for _, image := range r.images {
		all.AddAll(image)
	}
	return all
}

// Len returns the number of domain objects.
func (r *Relation[O, A]) Len() int {
	return len(r.order)
}

// String prints one line per domain object, sorted by the object's
// printed form: "obj =====> [ a, b ]".
func (r *Relation[O, A]) String() string {
	type line struct {
		key  string
		text string
	}
	lines := make([]line, 0, len(r.order))
	for _, obj := range r.order {
		key := fmt.Sprint(obj)
		attrs := r.images[obj].Strings()
		lines = append(lines, line{key: key, text: key + " =====> [ " + strings.Join(attrs, ", ") + " ]"})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].key < lines[j].key })

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l.text)
		b.WriteString("\n")
	}
	return b.String()
}
