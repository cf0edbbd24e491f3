// Package model describes the source model that relations and lattices are
// built from: types, their methods and fields, and the project that owns
// them. The interfaces are what the analysis consumes; the *Def types are
// the in-memory implementation the Go analyzer fills in.
package model

import "errors"

var (
	// ErrUnresolvedType is returned when a type name matches no known type.
	ErrUnresolvedType = errors.New("type not resolved")

	// ErrAmbiguousType is returned when a short type name matches more
	// than one known type.
	ErrAmbiguousType = errors.New("type name is ambiguous")
)

// Type is a named type of the analyzed code, or a type it refers to.
type Type interface {
	Name() string
	// QualifiedName is the package path and name, "example.com/pkg.Name".
	QualifiedName() string
	Package() string
	IsInterface() bool
	IsAnonymous() bool
	// IsDefined reports whether the type is declared inside the analyzed
	// module, as opposed to an imported or builtin type.
	IsDefined() bool
	// LocalMethods are the methods the type declares itself.
	LocalMethods() []Method
	// Methods are the local methods plus those inherited from supertypes.
	Methods() []Method
	// Fields in declaration order. A field referenced by several methods
	// appears once per referencing method.
	Fields() []Field
	// Supertypes and Subtypes are transitive closures.
	Supertypes() []Type
	Subtypes() []Type
	// Implementors are the concrete types directly implementing an
	// interface. Empty for non-interfaces.
	Implementors() []Type
	HasSamePublicInterface(other Type) bool
}

// Method is a method declared on a type.
type Method interface {
	// Signature identifies the method independently of its declaring type:
	// "Name(int, string) error".
	Signature() string
	// FullSignature prefixes Signature with the owner's qualified name.
	FullSignature() string
	Name() string
	ParameterNames() []string
	// ReturnType is empty for methods with no results.
	ReturnType() string
	IsConstructor() bool
	IsExported() bool
	// IsSimilar reports whether other overrides or implements the same
	// method, whoever declares it.
	IsSimilar(other Method) bool
	Owner() Type
}

// Field is a struct field.
type Field interface {
	Name() string
	TypeSignature() string
	// IsResolved reports whether TypeSignature carries full package paths.
	IsResolved() bool
	// Location is the name of the method referencing the field, empty if
	// no method does.
	Location() string
	// IsClassType reports whether the field refers to a named type,
	// possibly through pointers, slices, arrays, maps or channels.
	IsClassType() bool
}

// Project enumerates the defined types of the analyzed code.
type Project interface {
	Types() []Type
	// FindType resolves a qualified name, or a short name such as
	// "pkg.Name" or "Name" when it is unique.
	FindType(name string) (Type, error)
}

// Less orders types by qualified name.
func Less(a, b Type) bool { return a.QualifiedName() < b.QualifiedName() }
