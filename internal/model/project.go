package model

import (
	"fmt"
	"strings"
)

// ProjectDef is the in-memory Project. It also keeps the external types
// the defined ones refer to.
type ProjectDef struct {
	types  []*TypeDef
	byName map[string]*TypeDef
}

func NewProject() *ProjectDef {
	return &ProjectDef{byName: make(map[string]*TypeDef)}
}

// Add registers t. If a type with the same qualified name exists, that
// type is returned instead.
func (p *ProjectDef) Add(t *TypeDef) *TypeDef {
	if existing, ok := p.byName[t.QualifiedName()]; ok {
		return existing
	}
	p.byName[t.QualifiedName()] = t
	p.types = append(p.types, t)
	return t
}

// Lookup returns the type registered under qualified, or nil.
func (p *ProjectDef) Lookup(qualified string) *TypeDef {
	return p.byName[qualified]
}

// All returns every registered type, defined or external, in
// registration order.
func (p *ProjectDef) All() []*TypeDef {
	return p.types
}

// Types returns the defined types in registration order.
func (p *ProjectDef) Types() []Type {
	var out []Type
	for _, t := range p.types {
		if t.IsDefined() {
			out = append(out, t)
		}
	}
	return out
}

func (p *ProjectDef) FindType(name string) (Type, error) {
	if t, ok := p.byName[name]; ok {
		return t, nil
	}

	var matches []*TypeDef
	for _, t := range p.types {
		if t.Name() == name || lastElem(t) == name {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("finding %q: %w", name, ErrUnresolvedType)
	case 1:
		return matches[0], nil
	default:
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.QualifiedName()
		}
		return nil, fmt.Errorf("finding %q among %s: %w", name, strings.Join(names, ", "), ErrAmbiguousType)
	}
}

// lastElem renders t as "pkgname.Name", using the last element of its
// package path.
func lastElem(t *TypeDef) string {
	pkg := t.Package()
	if i := strings.LastIndexByte(pkg, '/'); i >= 0 {
		pkg = pkg[i+1:]
	}
	if pkg == "" {
		return t.Name()
	}
	return pkg + "." + t.Name()
}
