// Package cnf defines the literal/clause/knowledge-base data model shared by
// the solver, checker, labeler and hsdag packages.
package cnf

import "fmt"

// Literal is a signed nonzero integer identifying a propositional variable
// (positive) or its negation (negative).
type Literal int

// Not returns the negation of l.
func (l Literal) Not() Literal {
	return -l
}

// Var returns the unsigned variable underlying l.
func (l Literal) Var() int {
	if l < 0 {
		return int(-l)
	}
	return int(l)
}

func (l Literal) String() string {
	return fmt.Sprintf("%d", int(l))
}

// Clause is an unordered set of literals, represented as an ordered
// sequence for solver I/O.
type Clause []Literal

// KB is a finite sequence of clauses, permanently taught to a solver.
type KB []Clause

// InputError reports a malformed literal or clause in a KB, candidate set,
// or background set.
type InputError string

func (e InputError) Error() string {
	return string(e)
}

// Validate rejects the zero literal and clauses containing the same literal
// more than once.
func Validate(kb KB) error {
	for ci, clause := range kb {
		seen := make(map[Literal]bool, len(clause))
		for _, l := range clause {
			if l == 0 {
				return InputError(fmt.Sprintf("clause %d contains the zero literal", ci))
			}
			if seen[l] {
				return InputError(fmt.Sprintf("clause %d contains duplicate literal %s", ci, l))
			}
			seen[l] = true
		}
	}
	return nil
}

// LiteralSet is an ordered, duplicate-free sequence of literals. Order is
// significant: QuickXPlain's output is conflict-order-stable, and the
// HS-DAG enqueues children in label order.
type LiteralSet []Literal

// Contains reports whether s contains l.
func (s LiteralSet) Contains(l Literal) bool {
	for _, m := range s {
		if m == l {
			return true
		}
	}
	return false
}

// Without returns a copy of s with l removed, preserving order.
func (s LiteralSet) Without(l Literal) LiteralSet {
	out := make(LiteralSet, 0, len(s))
	for _, m := range s {
		if m != l {
			out = append(out, m)
		}
	}
	return out
}

// Minus returns a copy of s with every element of other removed, preserving
// order.
func (s LiteralSet) Minus(other LiteralSet) LiteralSet {
	set := other.AsSet()
	out := make(LiteralSet, 0, len(s))
	for _, l := range s {
		if _, excluded := set[l]; !excluded {
			out = append(out, l)
		}
	}
	return out
}

// Union returns the order-preserving union of s and other: every element of
// s, followed by every element of other not already present.
func (s LiteralSet) Union(other LiteralSet) LiteralSet {
	out := make(LiteralSet, len(s), len(s)+len(other))
	copy(out, s)
	for _, l := range other {
		if !out.Contains(l) {
			out = append(out, l)
		}
	}
	return out
}

// Disjoint reports whether s and other share no literal.
func (s LiteralSet) Disjoint(other LiteralSet) bool {
	for _, l := range s {
		if other.Contains(l) {
			return false
		}
	}
	return true
}

// AsSet returns a map-backed set view of s, used as a key for node reuse
// and subset/superset comparisons where order does not matter.
func (s LiteralSet) AsSet() map[Literal]struct{} {
	out := make(map[Literal]struct{}, len(s))
	for _, l := range s {
		out[l] = struct{}{}
	}
	return out
}

// SubsetOf reports whether every element of s appears in other.
func (s LiteralSet) SubsetOf(other LiteralSet) bool {
	set := other.AsSet()
	for _, l := range s {
		if _, ok := set[l]; !ok {
			return false
		}
	}
	return true
}

// Equal reports whether s and other contain exactly the same literals,
// irrespective of order.
func (s LiteralSet) Equal(other LiteralSet) bool {
	if len(s) != len(other) {
		return false
	}
	return s.SubsetOf(other)
}

// Key returns a canonical, order-independent string identifying the set of
// elements in s. Used by the HS-DAG's nodes_lookup table.
func (s LiteralSet) Key() string {
	sorted := append(LiteralSet(nil), s...)
	sortLiterals(sorted)
	buf := make([]byte, 0, len(sorted)*6)
	for i, l := range sorted {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, []byte(l.String())...)
	}
	return string(buf)
}

func sortLiterals(s LiteralSet) {
	// insertion sort: candidate sets in this engine are small (bounded by
	// the number of controllable assumptions in one problem instance).
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
