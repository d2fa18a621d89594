package diagnosis

import (
	"context"

	"github.com/manleviet/cdiag/pkg/checker"
	"github.com/manleviet/cdiag/pkg/cnf"
	"github.com/manleviet/cdiag/pkg/solver"
)

// FastDiag finds a single minimal diagnosis directly against cfg's checker,
// without constructing an HS-DAG. Where ComputeConflictsAndDiagnoses finds
// every minimal conflict and hits all of them, FastDiag bisects the
// candidate set the same way QuickXPlain does but dualized: instead of
// searching for a minimal subset that causes inconsistency, it searches for
// a minimal subset whose removal restores consistency.
func FastDiag(ctx context.Context, cfg *Config) (cnf.LiteralSet, error) {
	adapter, err := solver.New(cfg.SolverName, cfg.KB)
	if err != nil {
		return nil, err
	}
	defer adapter.Dispose()

	allAssumed := cfg.Background.Union(cfg.Candidates)
	chk := checker.New(adapter, allAssumed)

	backgroundConsistent, err := chk.IsConsistent(cfg.Background)
	if err != nil {
		return nil, err
	}
	if !backgroundConsistent {
		return nil, nil
	}

	alreadyConsistent, err := chk.IsConsistent(cfg.Background.Union(cfg.Candidates))
	if err != nil {
		return nil, err
	}
	if alreadyConsistent || len(cfg.Candidates) == 0 {
		return nil, nil
	}

	return fastDiag(chk, cfg.Candidates, cfg.Background)
}

// fastDiag finds a minimal Δ ⊆ c such that b ∪ (c \ Δ) is consistent,
// assuming b is already known consistent and b ∪ c is not.
func fastDiag(chk *checker.Checker, c, b cnf.LiteralSet) (cnf.LiteralSet, error) {
	if len(c) == 0 {
		return nil, nil
	}
	if len(c) == 1 {
		return c, nil
	}

	mid := len(c) / 2
	c1, c2 := c[:mid], c[mid:]

	consistentWithC1, err := chk.IsConsistent(b.Union(c1))
	if err != nil {
		return nil, err
	}
	if consistentWithC1 {
		// b ∪ c1 alone is fine: nothing in c1 needs removing, so c1 is kept
		// in full and folded into the background the remaining search runs
		// against. The diagnosis, if any, lies entirely within c2.
		return fastDiag(chk, c2, b.Union(c1))
	}

	// b ∪ c1 is still inconsistent by itself, so some of c1 must go too.
	delta1, err := fastDiag(chk, c1, b)
	if err != nil {
		return nil, err
	}

	consistentWithRest, err := chk.IsConsistent(b.Union(c1.Minus(delta1)).Union(c2))
	if err != nil {
		return nil, err
	}
	if consistentWithRest {
		return delta1, nil
	}

	delta2, err := fastDiag(chk, c2, b.Union(c1.Minus(delta1)))
	if err != nil {
		return nil, err
	}
	return delta1.Union(delta2), nil
}
