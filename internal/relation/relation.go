// Package relation turns a source model into the type/method relation a
// concept lattice is built from.
//
// Three builders are provided. ReverseInheritance gives every type its
// cumulative domain interface: its own domain methods plus those of all
// its subtypes. Usual gives every type the domain methods it declares or
// inherits from supertypes inside the project. Extended is
// ReverseInheritance plus one owner-bound attribute per declared method.
package relation

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/olehluchkiv/gofeatures/internal/fca"
	"github.com/olehluchkiv/gofeatures/internal/model"
)

// Kind selects a relation builder.
type Kind string

const (
	KindReverse  Kind = "reverse"
	KindUsual    Kind = "usual"
	KindExtended Kind = "extended"
)

// ErrUnknownKind is returned by Build for an unsupported Kind.
var ErrUnknownKind = errors.New("unknown relation kind")

// ParseKind validates s as a relation kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(s)); k {
	case KindReverse, KindUsual, KindExtended:
		return k, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrUnknownKind)
	}
}

// Options tunes domain method selection.
type Options struct {
	// ExcludeAccessors drops getters, setters and constructors from the
	// reverse-inheritance and extended relations. The usual relation
	// always drops them.
	ExcludeAccessors bool
}

// Relation is the type → attribute relation handled by the lattice.
type Relation = fca.Relation[model.Type, *model.Attribute]

// Result is a built relation together with the domain interfaces it was
// derived from.
type Result struct {
	Relation *Relation

	kind       Kind
	project    model.Project
	local      map[model.Type]fca.Set[*model.Attribute]
	cumulative map[model.Type]fca.Set[*model.Attribute]
	entries    map[string]*model.MethodEntry
}

func (r *Result) Kind() Kind { return r.kind }

func (r *Result) Project() model.Project { return r.project }

// Local returns the domain interface of t, as canonical attributes. It is
// empty for types outside the project.
func (r *Result) Local(t model.Type) fca.Set[*model.Attribute] {
	if s, ok := r.local[t]; ok {
		return s
	}
	return fca.NewSet[*model.Attribute]()
}

// Cumulative returns the domain interface of t and all its subtypes.
func (r *Result) Cumulative(t model.Type) fca.Set[*model.Attribute] {
	if s, ok := r.cumulative[t]; ok {
		return s
	}
	return fca.NewSet[*model.Attribute]()
}

// Entry returns the method entry for a signature, or nil.
func (r *Result) Entry(signature string) *model.MethodEntry {
	return r.entries[signature]
}

// Entries returns every method entry ordered by signature.
func (r *Result) Entries() []*model.MethodEntry {
	out := make([]*model.MethodEntry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Attribute.Name < out[j].Attribute.Name })
	return out
}

// Builder builds relations from a project.
type Builder struct {
	opts   Options
	logger *slog.Logger
}

// NewBuilder returns a builder. A nil logger discards output.
func NewBuilder(opts Options, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Builder{opts: opts, logger: logger.With("component", "relation")}
}

// Build dispatches on kind.
func (b *Builder) Build(kind Kind, project model.Project) (*Result, error) {
	var res *Result
	switch kind {
	case KindReverse:
		res = b.ReverseInheritance(project)
	case KindUsual:
		res = b.Usual(project)
	case KindExtended:
		res = b.Extended(project)
	default:
		return nil, fmt.Errorf("building relation %q: %w", kind, ErrUnknownKind)
	}
	b.logger.Info("relation built",
		"kind", string(kind),
		"types", res.Relation.Len(),
		"methods", len(res.entries),
	)
	return res, nil
}

// ReverseInheritance relates every defined type to its cumulative domain
// interface.
func (b *Builder) ReverseInheritance(project model.Project) *Result {
	defined := project.Types()
	inProject := typeSet(defined)

	unpurged := make(map[model.Type][]model.Method, len(defined))
	for _, t := range defined {
		unpurged[t] = b.localDomainInterface(inProject, t, b.opts.ExcludeAccessors)
	}

	res := newResult(KindReverse, project)
	res.canonicalize(defined, unpurged)
	res.accumulate(defined)
	res.fill(defined, res.cumulative)
	return res
}

// Usual relates every defined type to the domain methods it declares or
// inherits from project supertypes.
func (b *Builder) Usual(project model.Project) *Result {
	defined := project.Types()
	inProject := typeSet(defined)

	unpurged := make(map[model.Type][]model.Method, len(defined))
	for _, t := range defined {
		unpurged[t] = b.usualDomainInterface(inProject, t)
	}

	res := newResult(KindUsual, project)
	res.canonicalize(defined, unpurged)
	res.accumulate(defined)
	res.fill(defined, res.local)
	return res
}

// Extended builds the reverse-inheritance relation, then relates every
// type in its domain to one extended attribute per local method. An
// attribute is a root when no supertype declares a similar method, and a
// leaf when no subtype does.
func (b *Builder) Extended(project model.Project) *Result {
	res := b.ReverseInheritance(project)
	res.kind = KindExtended

	for _, t := range res.Relation.Domain() {
		for _, m := range t.LocalMethods() {
			root := !declaresSimilar(t.Supertypes(), m)
			leaf := !declaresSimilar(t.Subtypes(), m)
			res.Relation.AddRelation(t, model.NewExtendedAttribute(m, root, leaf))
		}
	}
	return res
}

func newResult(kind Kind, project model.Project) *Result {
	return &Result{
		Relation:   fca.NewRelation[model.Type, *model.Attribute](),
		kind:       kind,
		project:    project,
		local:      make(map[model.Type]fca.Set[*model.Attribute]),
		cumulative: make(map[model.Type]fca.Set[*model.Attribute]),
		entries:    make(map[string]*model.MethodEntry),
	}
}

// canonicalize groups methods by signature into entries and stores each
// type's domain interface as the entries' representative attributes.
func (r *Result) canonicalize(defined []model.Type, unpurged map[model.Type][]model.Method) {
	for _, t := range defined {
		for _, m := range unpurged[t] {
			if e, ok := r.entries[m.Signature()]; ok {
				e.Add(m)
				continue
			}
			r.entries[m.Signature()] = model.NewMethodEntry(m)
		}
	}
	for _, t := range defined {
		attrs := fca.NewSet[*model.Attribute]()
		for _, m := range unpurged[t] {
			attrs.Add(r.entries[m.Signature()].Attribute)
		}
		r.local[t] = attrs
	}
}

// accumulate computes every cumulative interface from the local ones.
func (r *Result) accumulate(defined []model.Type) {
	for _, t := range defined {
		acc := r.local[t].Clone()
		for _, sub := range t.Subtypes() {
			if s, ok := r.local[sub]; ok {
				acc.AddAll(s)
			}
		}
		r.cumulative[t] = acc
	}
}

// fill relates each type to its interface. Types with an empty interface
// stay out of the domain.
func (r *Result) fill(defined []model.Type, interfaces map[model.Type]fca.Set[*model.Attribute]) {
	for _, t := range defined {
		for attr := range interfaces[t] {
			r.Relation.AddRelation(t, attr)
		}
	}
}

// localDomainInterface returns the local methods of t that do not
// implement a method of a supertype declared outside the project.
func (b *Builder) localDomainInterface(inProject map[model.Type]struct{}, t model.Type, excludeAccessors bool) []model.Method {
	external := externalMethods(inProject, t)

	var out []model.Method
	for _, m := range t.LocalMethods() {
		if similarToAny(external, m) {
			b.logger.Debug("method satisfies external type", "type", t.QualifiedName(), "method", m.Signature())
			continue
		}
		if excludeAccessors && IsAccessor(m) {
			b.logger.Debug("accessor excluded", "type", t.QualifiedName(), "method", m.Signature())
			continue
		}
		out = append(out, m)
	}
	return out
}

// usualDomainInterface returns the local methods of t plus those of its
// project supertypes that t does not redefine, minus external and
// accessor methods.
func (b *Builder) usualDomainInterface(inProject map[model.Type]struct{}, t model.Type) []model.Method {
	all := t.LocalMethods()
	for _, super := range t.Supertypes() {
		if _, ok := inProject[super]; !ok {
			continue
		}
		for _, m := range super.LocalMethods() {
			if !similarToAny(all, m) {
				all = append(all, m)
			}
		}
	}

	external := externalMethods(inProject, t)
	var out []model.Method
	for _, m := range all {
		if similarToAny(external, m) || IsAccessor(m) {
			b.logger.Debug("method excluded", "type", t.QualifiedName(), "method", m.Signature())
			continue
		}
		out = append(out, m)
	}
	return out
}

// IsAccessor reports whether m is a getter (Get prefix, no parameters,
// some result), a setter (Set prefix, one parameter, no result) or a
// constructor.
func IsAccessor(m model.Method) bool {
	name := m.Name()
	params := len(m.ParameterNames())
	void := m.ReturnType() == ""
	switch {
	case m.IsConstructor():
		return true
	case hasPrefixFold(name, "get") && params == 0 && !void:
		return true
	case hasPrefixFold(name, "set") && params == 1 && void:
		return true
	}
	return false
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func externalMethods(inProject map[model.Type]struct{}, t model.Type) []model.Method {
	var out []model.Method
	for _, super := range t.Supertypes() {
		if _, ok := inProject[super]; ok {
			continue
		}
		out = append(out, super.Methods()...)
	}
	return out
}

func similarToAny(methods []model.Method, m model.Method) bool {
	for _, x := range methods {
		if x.IsSimilar(m) {
			return true
		}
	}
	return false
}

func declaresSimilar(types []model.Type, m model.Method) bool {
	for _, t := range types {
		if similarToAny(t.LocalMethods(), m) {
			return true
		}
	}
	return false
}

func typeSet(types []model.Type) map[model.Type]struct{} {
	out := make(map[model.Type]struct{}, len(types))
	for _, t := range types {
		out[t] = struct{}{}
	}
	return out
}
