// Package fca implements Formal Concept Analysis over a binary relation.
//
// A Relation maps domain objects to attribute sets. BuildLattice turns it
// into a concept Lattice, adding one object at a time (Godin, Missaoui and
// Alaoui, 1995), so that every node is a closed (extent, intent) pair and
// for every edge parent -> child:
//
//	intent(parent) ⊆ intent(child)
//	extent(parent) ⊇ extent(child)
//
// Nodes live in an arena owned by the Lattice and are addressed by NodeID.
// Walk and Visitor traverse the lattice top-down or bottom-up, processing
// each node once per run.
//
// Nothing in this package is safe for concurrent use. Independent
// lattices may be built in parallel.
package fca
