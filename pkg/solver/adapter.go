// Package solver wraps an incremental propositional SAT backend
// (github.com/go-air/gini) behind the narrow contract the diagnosis engine
// needs: teach a fixed KB once, then answer repeated solve(assumptions)
// queries against it.
package solver

import (
	"fmt"

	"github.com/go-air/gini"
	"github.com/go-air/gini/inter"
	"github.com/go-air/gini/z"

	"github.com/manleviet/cdiag/pkg/cnf"
)

// SolverFailure reports that the underlying SAT backend refused a query or
// returned an unexpected result. It is always fatal: the engine does not
// retry, since determinism of the search depends on every solve call
// behaving identically given identical input.
type SolverFailure struct {
	Op  string
	Err error
}

func (e *SolverFailure) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("solver: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("solver: %s", e.Op)
}

func (e *SolverFailure) Unwrap() error {
	return e.Err
}

// ConfigurationError reports an unknown solver backend name or a
// self-contradictory configuration.
type ConfigurationError string

func (e ConfigurationError) Error() string {
	return string(e)
}

// Adapter is an incremental CNF SAT solver instance, taught a fixed KB at
// construction and reused across many Solve calls.
type Adapter struct {
	name string
	g    inter.S
	vars map[cnf.Literal]z.Lit
	buf  []z.Lit
}

// supportedBackends lists the solver names this adapter accepts. "glucose3"
// is accepted for fidelity with the pysat-metamodel origin, which always
// names its backend "glucose3"; "gini" names the actual engine underneath.
var supportedBackends = map[string]bool{
	"glucose3": true,
	"gini":     true,
}

// New initializes an incremental SAT solver with all clauses of kb. Multiple
// Solve calls are legal against the returned Adapter.
func New(name string, kb cnf.KB) (*Adapter, error) {
	if !supportedBackends[name] {
		return nil, ConfigurationError(fmt.Sprintf("unknown solver backend %q", name))
	}
	if err := cnf.Validate(kb); err != nil {
		return nil, err
	}

	a := &Adapter{
		name: name,
		g:    gini.New(),
		vars: make(map[cnf.Literal]z.Lit),
	}

	for _, clause := range kb {
		a.buf = a.buf[:0]
		for _, l := range clause {
			a.buf = append(a.buf, a.litOf(l))
		}
		for _, m := range a.buf {
			a.g.Add(m)
		}
		a.g.Add(0)
	}

	return a, nil
}

// litOf returns the gini literal corresponding to l, allocating a fresh
// solver variable the first time a given variable is seen.
func (a *Adapter) litOf(l cnf.Literal) z.Lit {
	v := cnf.Literal(l.Var())
	m, ok := a.vars[v]
	if !ok {
		m = a.g.Lit()
		a.vars[v] = m
	}
	if l < 0 {
		return m.Not()
	}
	return m
}

// Solve runs the decision procedure under the given unit assumptions and
// reports SAT (true) or UNSAT (false).
func (a *Adapter) Solve(assumptions []cnf.Literal) (bool, error) {
	a.buf = a.buf[:0]
	for _, l := range assumptions {
		a.buf = append(a.buf, a.litOf(l))
	}
	a.g.Assume(a.buf...)

	switch outcome := a.g.Solve(); outcome {
	case 1:
		return true, nil
	case -1:
		return false, nil
	default:
		return false, &SolverFailure{Op: "solve", Err: fmt.Errorf("indeterminate result %d", outcome)}
	}
}

// Dispose releases the Adapter's solver state. gini keeps no native (cgo)
// resources, so there is nothing to free, but callers still acquire an
// Adapter and defer Dispose immediately: the scoped-acquisition contract is
// part of this package's API regardless of what a given backend needs, so
// swapping in a backend that does hold native resources never requires
// call-site changes.
func (a *Adapter) Dispose() {
	a.g = nil
	a.vars = nil
}

// Name returns the backend identifier the Adapter was constructed with.
func (a *Adapter) Name() string {
	return a.name
}
