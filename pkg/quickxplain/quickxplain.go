// Package quickxplain implements the QuickXPlain divide-and-conquer minimal
// conflict search, as a labeler.Labeler usable by the hsdag engine.
package quickxplain

import (
	"github.com/manleviet/cdiag/pkg/checker"
	"github.com/manleviet/cdiag/pkg/cnf"
	"github.com/manleviet/cdiag/pkg/labeler"
)

// Parameters is the (C, B) pair QuickXPlain searches over: C is the
// candidate set a node's conflict is sought within, B the background it is
// tested against. The recursion's own delta/gate bookkeeping (classically
// named D) never outlives a single GetLabel call, so it has no field here;
// see quickXPlain.
type Parameters struct {
	C cnf.LiteralSet
	B cnf.LiteralSet
}

// Candidates implements labeler.Parameters.
func (p Parameters) Candidates() cnf.LiteralSet {
	return p.C
}

// InitialParameters returns the root parameters for a QuickXPlain search
// over candidates against background.
func InitialParameters(candidates, background cnf.LiteralSet) Parameters {
	return Parameters{C: candidates, B: background}
}

// Labeler computes one minimal conflict per GetLabel call via the
// divide-and-conquer recursion of the QuickXPlain algorithm.
type Labeler struct {
	checker *checker.Checker
}

var _ labeler.Labeler = (*Labeler)(nil)

// New returns a Labeler that issues its consistency queries through c.
func New(c *checker.Checker) *Labeler {
	return &Labeler{checker: c}
}

// GetLabel returns a minimal conflict for p, or an empty LiteralSet if no
// conflict exists (KB ∪ B ∪ C is consistent, or C is empty). This is the
// driver half of QuickXPlain: it establishes, once, the invariant the
// recursive helper quickXPlain depends on throughout its own calls — that
// B ∪ C is actually inconsistent — before ever touching it. Skipping this
// check and calling quickXPlain directly would let its |C| = 1 base case
// return a spurious "conflict" consisting of a candidate that isn't
// actually responsible for any inconsistency.
func (l *Labeler) GetLabel(p labeler.Parameters) (cnf.LiteralSet, error) {
	qp, ok := p.(Parameters)
	if !ok {
		return nil, &InvalidParameters{p}
	}
	if len(qp.C) == 0 {
		return nil, nil
	}
	consistent, err := l.checker.IsConsistent(qp.B.Union(qp.C))
	if err != nil {
		return nil, err
	}
	if consistent {
		return nil, nil
	}
	return l.quickXPlain(qp.C, qp.B, nil)
}

// quickXPlain implements §4.D's recursive search, invoked only once its
// caller (GetLabel) has confirmed B ∪ C is inconsistent:
//
//  1. If D ≠ ∅ and B is already inconsistent on its own, this call
//     contributes nothing further: the conflict is already complete using
//     only literals folded into B by an enclosing call.
//  2. If |C| = 1, C itself is the minimal conflict (valid only under the
//     invariant above, which both recursive calls below preserve: the first
//     keeps B ∪ C as the same set, and the second replaces c2 by delta1,
//     the part of c2 that b ∪ c1 still needs to be inconsistent).
//  3. Otherwise split C in half, preserving input order, and recurse twice.
//     The result lists delta2 (from c1) before delta1 (from c2), so its
//     elements keep the input order of C.
func (l *Labeler) quickXPlain(c, b, d cnf.LiteralSet) (cnf.LiteralSet, error) {
	if len(d) > 0 {
		consistent, err := l.checker.IsConsistent(b)
		if err != nil {
			return nil, err
		}
		if !consistent {
			return nil, nil
		}
	}
	if len(c) == 1 {
		return c, nil
	}

	mid := len(c) / 2
	c1, c2 := c[:mid], c[mid:]

	delta1, err := l.quickXPlain(c2, b.Union(c1), c1)
	if err != nil {
		return nil, err
	}

	// delta2 is always computed, even when delta1 is empty: an empty delta1
	// passed as the next call's D re-disables the gate above (len(d) == 0),
	// so this is a fresh, ungated search of c1 rather than a redundant
	// repeat of the check that just ran. Skipping this call whenever delta1
	// happens to be empty would silently drop literals of c1 that are
	// themselves part of the minimal conflict.
	delta2, err := l.quickXPlain(c1, b.Union(delta1), delta1)
	if err != nil {
		return nil, err
	}

	return delta2.Union(delta1), nil
}

// IdentifyGroups partitions a conflict into a single group: QuickXPlain's
// own recursion already does all relevant subset bookkeeping internally,
// so a consuming HS-DAG engine has nothing additional to learn here.
func (l *Labeler) IdentifyGroups(conflict cnf.LiteralSet) labeler.Grouping {
	group := make([]cnf.Literal, len(conflict))
	copy(group, conflict)
	return labeler.Grouping{group}
}

// GetChildParameters implements the HS-DAG child-derivation rule of §4.D:
// remove arcLabel from the candidate set; background is unchanged.
func (l *Labeler) GetChildParameters(p labeler.Parameters, _ cnf.LiteralSet, arcLabel cnf.Literal) labeler.Parameters {
	qp := p.(Parameters)
	return Parameters{
		C: qp.C.Without(arcLabel),
		B: qp.B,
	}
}

// Rollback is a no-op: this Labeler's checker is purely assumption-based
// and carries no mutable state between invocations.
func (l *Labeler) Rollback() {}

// InvalidParameters reports that GetLabel was called with a Parameters
// value this Labeler did not produce.
type InvalidParameters struct {
	Got labeler.Parameters
}

func (e *InvalidParameters) Error() string {
	return "quickxplain: labeler.Parameters value was not produced by this Labeler"
}
