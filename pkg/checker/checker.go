// Package checker adapts a solver.Adapter into the "is this candidate set
// consistent under background B?" query the labeler and HS-DAG packages
// need.
package checker

import (
	"github.com/manleviet/cdiag/pkg/cnf"
	"github.com/manleviet/cdiag/pkg/solver"
)

// Checker tests consistency of arbitrary subsets of a fixed universe of
// assumption literals against a fixed KB, via repeated incremental solves.
type Checker struct {
	adapter    *solver.Adapter
	allAssumed cnf.LiteralSet // A = B ∪ C, fixed at construction
}

// New returns a Checker backed by adapter, fixing allAssumed (typically
// B ∪ C) as the universe of literals that may be asserted or negated on any
// given IsConsistent call.
func New(adapter *solver.Adapter, allAssumed cnf.LiteralSet) *Checker {
	return &Checker{adapter: adapter, allAssumed: allAssumed}
}

// IsConsistent reports whether KB ∪ setC ∪ ¬(allAssumed \ setC) is
// satisfiable: literals in setC are asserted, and every other literal of
// the fixed assumption universe is explicitly negated so the solver cannot
// use it as unintended support.
func (c *Checker) IsConsistent(setC cnf.LiteralSet) (bool, error) {
	assumptions := make([]cnf.Literal, 0, len(c.allAssumed))
	assumptions = append(assumptions, setC...)
	for _, l := range c.allAssumed {
		if !setC.Contains(l) {
			assumptions = append(assumptions, l.Not())
		}
	}
	return c.adapter.Solve(assumptions)
}

// Dispose releases the underlying solver adapter.
func (c *Checker) Dispose() {
	c.adapter.Dispose()
}
