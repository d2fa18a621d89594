// Package diagnosis assembles the solver, checker, quickxplain and hsdag
// packages into the two operation façades a caller actually needs: finding
// every minimal conflict and diagnosis, or finding a single diagnosis fast.
package diagnosis

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/manleviet/cdiag/pkg/checker"
	"github.com/manleviet/cdiag/pkg/cnf"
	"github.com/manleviet/cdiag/pkg/hsdag"
	"github.com/manleviet/cdiag/pkg/quickxplain"
	"github.com/manleviet/cdiag/pkg/solver"
)

// Config collects everything a façade needs to run: the knowledge base, the
// background/candidate split, and the engine's tuning knobs. Fields left
// unset by the options passed to NewConfig take its defaults.
type Config struct {
	SolverName   string
	KB           cnf.KB
	Background   cnf.LiteralSet
	Candidates   cnf.LiteralSet
	MaxConflicts int
	MaxDepth     int
	Tracer       hsdag.Tracer
	Log          logrus.FieldLogger
}

// Option mutates a Config at construction, mirroring the teacher's
// functional-options constructor.
type Option func(*Config)

// WithSolverName selects the SAT backend ("glucose3" or "gini").
func WithSolverName(name string) Option {
	return func(c *Config) { c.SolverName = name }
}

// WithKB supplies the knowledge base clauses.
func WithKB(kb cnf.KB) Option {
	return func(c *Config) { c.KB = kb }
}

// WithBackground supplies the background literal set B.
func WithBackground(b cnf.LiteralSet) Option {
	return func(c *Config) { c.Background = b }
}

// WithCandidates supplies the candidate literal set C.
func WithCandidates(cands cnf.LiteralSet) Option {
	return func(c *Config) { c.Candidates = cands }
}

// WithMaxConflicts bounds the number of minimal conflicts the HS-DAG engine
// will discover (-1 for unlimited).
func WithMaxConflicts(n int) Option {
	return func(c *Config) { c.MaxConflicts = n }
}

// WithMaxDepth bounds the HS-DAG expansion depth (0 for unlimited).
func WithMaxDepth(n int) Option {
	return func(c *Config) { c.MaxDepth = n }
}

// WithTracer installs an hsdag.Tracer to observe expansion events.
func WithTracer(t hsdag.Tracer) Option {
	return func(c *Config) { c.Tracer = t }
}

// WithLogger installs a structured logger used for the degenerate shortcut
// this package takes before ever touching the HS-DAG engine.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Config) { c.Log = log }
}

// NewConfig builds a Config from options, applying defaults for anything
// left unset.
func NewConfig(opts ...Option) *Config {
	c := &Config{
		SolverName:   "gini",
		MaxConflicts: -1,
		MaxDepth:     0,
		Tracer:       hsdag.DefaultTracer{},
		Log:          logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Result holds every minimal conflict and minimal diagnosis found for one
// instance, in canonical order (§4.F: ascending by size, then lexicographic
// by element).
type Result struct {
	Conflicts []cnf.LiteralSet
	Diagnoses []cnf.LiteralSet
}

// ConflictsMessage renders Conflicts with the singular/plural wording rule.
func (r Result) ConflictsMessage() string {
	return formatMessage("conflicts", "conflict", r.Conflicts)
}

// DiagnosesMessage renders Diagnoses with the singular/plural wording rule.
func (r Result) DiagnosesMessage() string {
	return formatMessage("diagnoses", "diagnosis", r.Diagnoses)
}

func formatMessage(plural, singular string, sets []cnf.LiteralSet) string {
	if len(sets) == 0 {
		if singular == "diagnosis" {
			return "No diagnosis found"
		}
		return fmt.Sprintf("No %s found", plural)
	}
	label := "Conflict"
	if singular == "diagnosis" {
		label = "Diagnosis"
	}
	if len(sets) > 1 {
		label = strings.ToUpper(plural[:1]) + plural[1:]
	}
	rendered := make([]string, len(sets))
	for i, s := range sets {
		rendered[i] = prettySet(s)
	}
	return fmt.Sprintf("%s: %s", label, strings.Join(rendered, "; "))
}

// prettySet renders a literal set as "{l1, l2, ...}" in its existing order.
func prettySet(s cnf.LiteralSet) string {
	parts := make([]string, len(s))
	for i, l := range s {
		parts[i] = l.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// ComputeConflictsAndDiagnoses runs the full pipeline described by §4.G:
// it builds a solver.Adapter and checker.Checker over cfg's KB, checks the
// degenerate precondition (background alone inconsistent), and otherwise
// drives a quickxplain.Labeler-backed hsdag.Engine to exhaustion.
//
// Two cases never reach the HS-DAG engine's BFS loop at all:
//   - Degenerate: B alone is already inconsistent. No conflict or diagnosis
//     is meaningful; Result is empty and no error is returned.
//   - Already consistent: B ∪ C is satisfiable as given. There is nothing to
//     hit, so the sole minimal diagnosis is the empty set, not reported as
//     "no diagnosis found", which would wrongly suggest the instance is
//     unsatisfiable with no fix.
func ComputeConflictsAndDiagnoses(ctx context.Context, cfg *Config) (Result, error) {
	adapter, err := solver.New(cfg.SolverName, cfg.KB)
	if err != nil {
		return Result{}, err
	}
	defer adapter.Dispose()

	allAssumed := cfg.Background.Union(cfg.Candidates)
	chk := checker.New(adapter, allAssumed)

	backgroundConsistent, err := chk.IsConsistent(cfg.Background)
	if err != nil {
		return Result{}, err
	}
	if !backgroundConsistent {
		cfg.Log.WithFields(logrus.Fields{
			"background": prettySet(cfg.Background),
		}).Debug("diagnosis: background alone is inconsistent, instance is degenerate")
		return Result{}, nil
	}

	lbl := quickxplain.New(chk)
	initParams := quickxplain.InitialParameters(cfg.Candidates, cfg.Background)
	engine := hsdag.New(lbl, initParams,
		hsdag.WithMaxConflicts(cfg.MaxConflicts),
		hsdag.WithMaxDepth(cfg.MaxDepth),
		hsdag.WithTracer(cfg.Tracer),
	)

	if err := engine.Construct(ctx); err != nil {
		return Result{}, err
	}

	conflicts := engine.Conflicts()
	diagnoses := engine.Diagnoses()

	if len(conflicts) == 0 && len(diagnoses) == 0 {
		// The root label itself came back empty: B ∪ C is consistent as
		// given, so the empty set is the (only) minimal diagnosis.
		return Result{Diagnoses: []cnf.LiteralSet{{}}}, nil
	}

	return Result{Conflicts: conflicts, Diagnoses: diagnoses}, nil
}
