package fca

import "errors"

var (
	// ErrNotInDomain is returned when a relation query names an object
	// that was never registered in the domain.
	ErrNotInDomain = errors.New("object not in relation domain")

	// ErrInvalidLattice is returned when a lattice is traversed before
	// both its top and bottom are set.
	ErrInvalidLattice = errors.New("lattice has no top or bottom")

	// ErrInvalidDirection is returned by Walk for the Undefined direction.
	ErrInvalidDirection = errors.New("traversal direction undefined")
)
