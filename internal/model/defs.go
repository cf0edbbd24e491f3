package model

import (
	"go/token"
	"sort"
	"strings"
)

// TypeSpec describes a type to create with NewType.
type TypeSpec struct {
	PkgPath   string
	Name      string
	Interface bool
	Anonymous bool
	// External marks types declared outside the analyzed module.
	External bool
}

// TypeDef is the in-memory Type.
type TypeDef struct {
	spec         TypeSpec
	local        []*MethodDef
	fields       []*FieldDef
	supers       []*TypeDef
	subs         []*TypeDef
	implementors []*TypeDef
}

// NewType returns a type with no methods, fields or relatives.
func NewType(spec TypeSpec) *TypeDef {
	return &TypeDef{spec: spec}
}

func (t *TypeDef) Name() string { return t.spec.Name }
func (t *TypeDef) Package() string { return t.spec.PkgPath }
func (t *TypeDef) IsInterface() bool { return t.spec.Interface }
func (t *TypeDef) IsAnonymous() bool { return t.spec.Anonymous }
func (t *TypeDef) IsDefined() bool { return !t.spec.External }

func (t *TypeDef) QualifiedName() string {
	if t.spec.PkgPath == "" {
		return t.spec.Name
	}
	return t.spec.PkgPath + "." + t.spec.Name
}

func (t *TypeDef) String() string { return t.QualifiedName() }

// AddMethod declares m on t and returns it.
func (t *TypeDef) AddMethod(m *MethodDef) *MethodDef {
	m.owner = t
	t.local = append(t.local, m)
	return m
}

// AddField appends f to t's fields and returns it.
func (t *TypeDef) AddField(f *FieldDef) *FieldDef {
	t.fields = append(t.fields, f)
	return f
}

func (t *TypeDef) LocalMethods() []Method {
	out := make([]Method, len(t.local))
	for i, m := range t.local {
		out[i] = m
	}
	return out
}

// Methods returns the local methods followed by the supertypes' methods
// that no earlier method is similar to.
func (t *TypeDef) Methods() []Method {
	out := t.LocalMethods()
	seen := make(map[string]struct{}, len(out))
	for _, m := range out {
		seen[m.Signature()] = struct{}{}
	}
	for _, super := range t.supertypes() {
		for _, m := range super.local {
			if _, ok := seen[m.Signature()]; ok {
				continue
			}
			seen[m.Signature()] = struct{}{}
			out = append(out, m)
		}
	}
	return out
}

func (t *TypeDef) Fields() []Field {
	out := make([]Field, len(t.fields))
	for i, f := range t.fields {
		out[i] = f
	}
	return out
}

func (t *TypeDef) Supertypes() []Type { return asTypes(t.supertypes()) }

func (t *TypeDef) Subtypes() []Type {
	return asTypes(closure(t, func(x *TypeDef) []*TypeDef { return x.subs }))
}

func (t *TypeDef) Implementors() []Type {
	return asTypes(sortDefs(append([]*TypeDef(nil), t.implementors...)))
}

func (t *TypeDef) supertypes() []*TypeDef {
	return closure(t, func(x *TypeDef) []*TypeDef { return x.supers })
}

// HasSamePublicInterface reports whether t and other expose the same
// exported method signatures.
func (t *TypeDef) HasSamePublicInterface(other Type) bool {
	mine := publicSignatures(t)
	theirs := publicSignatures(other)
	if len(mine) != len(theirs) {
		return false
	}
	for sig := range mine {
		if _, ok := theirs[sig]; !ok {
			return false
		}
	}
	return true
}

func publicSignatures(t Type) map[string]struct{} {
	out := make(map[string]struct{})
	for _, m := range t.Methods() {
		if m.IsExported() {
			out[m.Signature()] = struct{}{}
		}
	}
	return out
}

// Link records super as a direct supertype of sub. A concrete sub of an
// interface is also one of its implementors. Repeated links are ignored.
func Link(sub, super *TypeDef) {
	if sub == super || containsDef(sub.supers, super) {
		return
	}
	sub.supers = append(sub.supers, super)
	super.subs = append(super.subs, sub)
	if super.IsInterface() && !sub.IsInterface() {
		super.implementors = append(super.implementors, sub)
	}
}

// closure collects every type reachable from t through next, excluding t,
// ordered by qualified name.
func closure(t *TypeDef, next func(*TypeDef) []*TypeDef) []*TypeDef {
	seen := map[*TypeDef]struct{}{t: {}}
	var out []*TypeDef
	queue := append([]*TypeDef(nil), next(t)...)
	for len(queue) > 0 {
		x := queue[0]
		queue = queue[1:]
		if _, ok := seen[x]; ok {
			continue
		}
		seen[x] = struct{}{}
		out = append(out, x)
		queue = append(queue, next(x)...)
	}
	return sortDefs(out)
}

func sortDefs(defs []*TypeDef) []*TypeDef {
	sort.Slice(defs, func(i, j int) bool { return defs[i].QualifiedName() < defs[j].QualifiedName() })
	return defs
}

func asTypes(defs []*TypeDef) []Type {
	out := make([]Type, len(defs))
	for i, d := range defs {
		out[i] = d
	}
	return out
}

func containsDef(defs []*TypeDef, d *TypeDef) bool {
	for _, x := range defs {
		if x == d {
			return true
		}
	}
	return false
}

// Param is a method parameter. Name may be empty.
type Param struct {
	Name string
	Type string
}

// MethodDef is the in-memory Method.
type MethodDef struct {
	name        string
	params      []Param
	results     []string
	constructor bool
	owner       *TypeDef
}

// NewMethod returns a method with the given parameters and result types.
// It has no owner until added to a type.
func NewMethod(name string, params []Param, results ...string) *MethodDef {
	return &MethodDef{name: name, params: params, results: results}
}

// MarkConstructor flags m as a constructor and returns it.
func (m *MethodDef) MarkConstructor() *MethodDef {
	m.constructor = true
	return m
}

func (m *MethodDef) Name() string { return m.name }
func (m *MethodDef) IsConstructor() bool { return m.constructor }
func (m *MethodDef) IsExported() bool { return token.IsExported(m.name) }

func (m *MethodDef) Owner() Type {
	if m.owner == nil {
		return nil
	}
	return m.owner
}

func (m *MethodDef) Signature() string {
	var b strings.Builder
	b.WriteString(m.name)
	b.WriteString("(")
	for i, p := range m.params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Type)
	}
	b.WriteString(")")
	switch len(m.results) {
	case 0:
	case 1:
		b.WriteString(" ")
		b.WriteString(m.results[0])
	default:
		b.WriteString(" (")
		b.WriteString(strings.Join(m.results, ", "))
		b.WriteString(")")
	}
	return b.String()
}

func (m *MethodDef) FullSignature() string {
	if m.owner == nil {
		return m.Signature()
	}
	return m.owner.QualifiedName() + "." + m.Signature()
}

func (m *MethodDef) ParameterNames() []string {
	names := make([]string, len(m.params))
	for i, p := range m.params {
		names[i] = p.Name
	}
	return names
}

func (m *MethodDef) ReturnType() string {
	switch len(m.results) {
	case 0:
		return ""
	case 1:
		return m.results[0]
	default:
		return "(" + strings.Join(m.results, ", ") + ")"
	}
}

func (m *MethodDef) IsSimilar(other Method) bool {
	return other != nil && m.Signature() == other.Signature()
}

func (m *MethodDef) String() string { return m.FullSignature() }

// FieldSpec describes a field to create with NewField.
type FieldSpec struct {
	Name          string
	TypeSignature string
	Resolved      bool
	ClassType     bool
	Location      string
}

// FieldDef is the in-memory Field.
type FieldDef struct {
	spec FieldSpec
}

func NewField(spec FieldSpec) *FieldDef { return &FieldDef{spec: spec} }

func (f *FieldDef) Name() string { return f.spec.Name }
func (f *FieldDef) TypeSignature() string { return f.spec.TypeSignature }
func (f *FieldDef) IsResolved() bool { return f.spec.Resolved }
func (f *FieldDef) Location() string { return f.spec.Location }
func (f *FieldDef) IsClassType() bool { return f.spec.ClassType }

// BaseTypeName strips pointer, slice, array, channel and map-value
// wrappers from a type signature: "map[string][]*pkg.T" gives "pkg.T".
func BaseTypeName(sig string) string {
	for {
		sig = strings.TrimSpace(sig)
		switch {
		case strings.HasPrefix(sig, "*"):
			sig = sig[1:]
		case strings.HasPrefix(sig, "<-chan "):
			sig = sig[len("<-chan "):]
		case strings.HasPrefix(sig, "chan<- "):
			sig = sig[len("chan<- "):]
		case strings.HasPrefix(sig, "chan "):
			sig = sig[len("chan "):]
		case strings.HasPrefix(sig, "map["):
			end := closingBracket(sig, len("map"))
			if end < 0 {
				return sig
			}
			sig = sig[end+1:]
		case strings.HasPrefix(sig, "["):
			end := closingBracket(sig, 0)
			if end < 0 {
				return sig
			}
			sig = sig[end+1:]
		default:
			return sig
		}
	}
}

// closingBracket returns the index of the ']' matching the '[' at open.
func closingBracket(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
