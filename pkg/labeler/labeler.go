// Package labeler defines the abstract contract the HS-DAG engine uses to
// obtain a minimal conflict (or a signal that none exists) for a node's
// parameters, and to derive a child node's parameters along a given arc.
//
// This mirrors the small sealed-capability shape of solver.Constraint in
// the teacher's dependency resolver: a narrow interface consulted
// polymorphically by a single driving engine, rather than resolved through
// runtime reflection.
package labeler

import "github.com/manleviet/cdiag/pkg/cnf"

// Parameters is the opaque state a Labeler threads through recursive or
// iterative conflict search. Concrete labelers (e.g. quickxplain.Parameters)
// define their own shape; the HS-DAG engine only ever passes Parameters
// back to the same Labeler that produced them.
type Parameters interface {
	// Candidates returns the current candidate set C these parameters
	// describe a search over.
	Candidates() cnf.LiteralSet
}

// Grouping partitions a conflict into subsets relevant to a particular
// labeler's child-parameter derivation. QuickXPlain does not need more than
// "the whole conflict", but the interface leaves room for labelers that
// group literals (e.g. by the half of C they originated from).
type Grouping [][]cnf.Literal

// Labeler produces minimal conflicts from Parameters and derives child
// Parameters for the HS-DAG engine's BFS expansion.
type Labeler interface {
	// GetLabel returns a minimal conflict for the given parameters, or an
	// empty LiteralSet if the parameters describe a consistent instance.
	GetLabel(p Parameters) (cnf.LiteralSet, error)

	// IdentifyGroups partitions a conflict into the subsets relevant to
	// this labeler's internal bookkeeping.
	IdentifyGroups(conflict cnf.LiteralSet) Grouping

	// GetChildParameters derives the Parameters for a child node reached
	// from a node with parameters p via the arc labeled by arcLabel, given
	// that node's conflict label.
	GetChildParameters(p Parameters, conflict cnf.LiteralSet, arcLabel cnf.Literal) Parameters

	// Rollback restores any solver-visible state a Labeler may have
	// mutated between invocations. A no-op for assumption-based labelers.
	Rollback()
}
