package model

import "strings"

// Attribute is a lattice attribute: a method signature, optionally bound
// to the type that declares it.
//
// Plain attributes stand for a signature wherever it is implemented; the
// relation builders hand out one pointer per signature so that pointer
// equality is signature equality. Extended attributes carry an owner and
// are unique per (owner, signature).
type Attribute struct {
	Name string
	// Root and Leaf are set on extended attributes whose owner is the
	// topmost, or bottommost, declarer of the signature in its hierarchy.
	Root     bool
	Leaf     bool
	Extended bool
	Owner    Type
	// Method is the representative method behind the attribute.
	Method Method

	adhoc bool
}

// NewAttribute returns a plain attribute for m.
func NewAttribute(m Method) *Attribute {
	return &Attribute{Name: m.Signature(), Method: m}
}

// NewExtendedAttribute returns the attribute of m bound to its owner.
func NewExtendedAttribute(m Method, root, leaf bool) *Attribute {
	return &Attribute{
		Name:     m.Signature(),
		Root:     root,
		Leaf:     leaf,
		Extended: true,
		Owner:    m.Owner(),
		Method:   m,
	}
}

func (a *Attribute) SetAdhoc(adhoc bool) { a.adhoc = adhoc }
func (a *Attribute) IsAdhoc() bool { return a.adhoc }

func (a *Attribute) String() string {
	if !a.Extended {
		return a.Name
	}
	var b strings.Builder
	if a.Root {
		b.WriteString("root ")
	}
	if a.Leaf {
		b.WriteString("leaf ")
	}
	if a.Owner != nil {
		b.WriteString(a.Owner.QualifiedName())
		b.WriteString(" ")
	}
	b.WriteString(a.Name)
	return b.String()
}

// MethodEntry groups the methods sharing one signature behind a single
// representative Attribute, built from the first method added.
type MethodEntry struct {
	Attribute       *Attribute
	Implementations []Method
}

// NewMethodEntry returns an entry represented by m.
func NewMethodEntry(m Method) *MethodEntry {
	e := &MethodEntry{}
	e.Add(m)
	return e
}

// Add records another implementation. The first one becomes the
// representative; nil is ignored.
func (e *MethodEntry) Add(m Method) {
	if m == nil {
		return
	}
	for _, existing := range e.Implementations {
		if existing == m {
			return
		}
	}
	if e.Attribute == nil {
		e.Attribute = NewAttribute(m)
	}
	e.Implementations = append(e.Implementations, m)
}
