// Package feature finds refactoring candidates in a concept lattice of
// types and their domain methods, and classifies the mechanism, if any,
// behind each shared behavior.
//
// The passes run in order over a built lattice: a Purger removes extent
// members already accounted for by a more specific member, a Detector
// classifies candidate nodes, and ValidateAdhoc flags the plain
// attributes no root declaration explains.
package feature

import (
	"github.com/olehluchkiv/gofeatures/internal/fca"
	"github.com/olehluchkiv/gofeatures/internal/model"
)

type (
	Lattice = fca.Lattice[model.Type, *model.Attribute]
	Node    = fca.Node[model.Type, *model.Attribute]
)

// DomainInterfaces gives the per-type method sets a relation was built
// from. *relation.Result implements it.
type DomainInterfaces interface {
	// Local is the type's own domain interface.
	Local(t model.Type) fca.Set[*model.Attribute]
	// Cumulative is the domain interface of the type and its subtypes.
	Cumulative(t model.Type) fca.Set[*model.Attribute]
	Project() model.Project
}

func sortedTypes(s fca.Set[model.Type]) []model.Type {
	return s.Slice(model.Less)
}
