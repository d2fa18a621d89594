// Package hsdag implements Reiter's hitting-set DAG: breadth-first
// expansion of conflict labels into minimal diagnoses, with node reuse,
// closure and retroactive pruning of non-minimal conflicts.
package hsdag

import (
	"context"
	"sort"

	"github.com/manleviet/cdiag/pkg/cnf"
	"github.com/manleviet/cdiag/pkg/labeler"
)

// conflictRecord tracks one discovered minimal conflict and every currently
// OPEN node labelled with it, so that a later pruning decision can mark
// them all PRUNED in one pass.
type conflictRecord struct {
	label cnf.LiteralSet
	nodes []*Node
}

// Engine drives the BFS construction of an HS-DAG from a Labeler.
type Engine struct {
	lbl    labeler.Labeler
	root0  labeler.Parameters
	tracer Tracer

	// MaxConflicts bounds the number of distinct minimal conflicts the
	// engine will discover before it stops expanding nodes; -1 means
	// unlimited.
	MaxConflicts int
	// MaxDepth bounds the level at which nodes stop being expanded; 0
	// means unlimited.
	MaxDepth int

	nextID    int
	root      *Node
	openNodes []*Node // FIFO
	labels    []*conflictRecord
	paths     []cnf.LiteralSet // CHECKED diagnoses, discovery order
	lookup    map[string]*Node // path-set key -> node, for reuse

	nodeParams map[int]labeler.Parameters // node id -> parameters used to label it
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithMaxConflicts sets the conflict-count bound (-1 for unlimited).
func WithMaxConflicts(n int) Option {
	return func(e *Engine) { e.MaxConflicts = n }
}

// WithMaxDepth sets the depth bound (0 for unlimited).
func WithMaxDepth(n int) Option {
	return func(e *Engine) { e.MaxDepth = n }
}

// WithTracer installs a Tracer to observe expansion events.
func WithTracer(t Tracer) Option {
	return func(e *Engine) { e.tracer = t }
}

// New returns an Engine that will search for conflicts/diagnoses starting
// from initialParams via lbl.
func New(lbl labeler.Labeler, initialParams labeler.Parameters, opts ...Option) *Engine {
	e := &Engine{
		lbl:          lbl,
		root0:        initialParams,
		tracer:       DefaultTracer{},
		MaxConflicts: -1,
		MaxDepth:     0,
		lookup:       make(map[string]*Node),
		nodeParams:   make(map[int]labeler.Parameters),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) allocID() int {
	id := e.nextID
	e.nextID++
	return id
}

// Construct runs the BFS expansion to completion (or until ctx is
// cancelled). It is safe to call exactly once per Engine.
func (e *Engine) Construct(ctx context.Context) error {
	label, err := e.lbl.GetLabel(e.root0)
	if err != nil {
		return err
	}
	if len(label) == 0 {
		// Already consistent: no root, no diagnoses from this engine's
		// point of view. Callers that need the "trivial empty diagnosis"
		// convention for an already-consistent instance apply it above
		// this package (see package diagnosis).
		return nil
	}

	e.root = newRoot(e.allocID(), label)
	e.nodeParams[e.root.ID] = e.root0
	e.recordLabel(label, e.root)
	e.lookup[e.root.PathLabel.Key()] = e.root
	e.openNodes = append(e.openNodes, e.root)

	for len(e.openNodes) > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n := e.openNodes[0]
		e.openNodes = e.openNodes[1:]

		if n.Status != StatusOpen {
			continue
		}
		if e.MaxDepth > 0 && n.Level >= e.MaxDepth {
			continue
		}
		if e.MaxConflicts > 0 && len(e.labels) >= e.MaxConflicts {
			continue
		}

		if err := e.expand(n); err != nil {
			return err
		}
	}

	return nil
}

// expand creates, for every literal in n's conflict label, the child node
// reached by that arc, applying reuse, closure, and labeling in turn.
func (e *Engine) expand(n *Node) error {
	for _, arc := range n.Label {
		path := append(append(cnf.LiteralSet{}, n.PathLabel...), arc)
		key := path.Key()

		if existing, ok := e.lookup[key]; ok {
			existing.addParent(n)
			n.Children[arc] = existing
			e.tracer.Trace(Event{Kind: EventReused, Node: existing})
			continue
		}

		// Not a reuse: this path hasn't been reached by any prior node.
		// Per §4.F the closure check runs before a fresh label is ever
		// derived, so a path already dominated by a known diagnosis never
		// costs a solver call.
		if e.closedBy(path) {
			child := e.attachChild(n, arc, key)
			child.Status = StatusClosed
			e.tracer.Trace(Event{Kind: EventClosed, Node: child})
			continue
		}

		if reusable, ok := e.findDisjointLabel(path); ok {
			child := e.attachChild(n, arc, key)
			child.Label = reusable.label
			e.nodeParams[child.ID] = e.lbl.GetChildParameters(e.nodeParams[n.ID], n.Label, arc)
			reusable.nodes = append(reusable.nodes, child)
			e.tracer.Trace(Event{Kind: EventLabelReused, Node: child})
			e.openNodes = append(e.openNodes, child)
			continue
		}

		parentParams := e.nodeParams[n.ID]
		childParams := e.lbl.GetChildParameters(parentParams, n.Label, arc)
		childLabel, err := e.lbl.GetLabel(childParams)
		if err != nil {
			return err
		}

		child := e.attachChild(n, arc, key)
		e.nodeParams[child.ID] = childParams

		if len(childLabel) == 0 {
			child.Status = StatusChecked
			e.paths = append(e.paths, path)
			e.tracer.Trace(Event{Kind: EventChecked, Node: child})
			continue
		}

		child.Label = childLabel
		rec := e.recordLabel(childLabel, child)
		e.pruneSupersetsOf(childLabel, rec)
		e.tracer.Trace(Event{Kind: EventExpanded, Node: child})
		e.openNodes = append(e.openNodes, child)
	}
	return nil
}

// attachChild creates a new node, links it into the DAG, and registers it
// in the path lookup table so that any later arc reaching the same
// path-set is collapsed into a reuse rather than a new node.
func (e *Engine) attachChild(parent *Node, arc cnf.Literal, key string) *Node {
	child := newChild(e.allocID(), parent, arc)
	e.lookup[key] = child
	return child
}

// closedBy reports whether path is a superset of some already-discovered
// diagnosis, in which case a node reaching path would be redundant.
func (e *Engine) closedBy(path cnf.LiteralSet) bool {
	for _, p := range e.paths {
		if p.SubsetOf(path) {
			return true
		}
	}
	return false
}

// findDisjointLabel returns a previously recorded minimal conflict disjoint
// from path, if one exists, so a new node can reuse it as its label
// without issuing another solver call.
func (e *Engine) findDisjointLabel(path cnf.LiteralSet) (*conflictRecord, bool) {
	for _, rec := range e.labels {
		if rec.label.Disjoint(path) {
			return rec, true
		}
	}
	return nil, false
}

// recordLabel appends a freshly discovered conflict to e.labels and
// returns its record.
func (e *Engine) recordLabel(label cnf.LiteralSet, node *Node) *conflictRecord {
	rec := &conflictRecord{label: label, nodes: []*Node{node}}
	e.labels = append(e.labels, rec)
	return rec
}

// pruneSupersetsOf marks every older recorded conflict that is a proper
// superset of label as non-minimal: every OPEN node carrying that label is
// moved to PRUNED, and the record itself is dropped from e.labels so it is
// never again offered by findDisjointLabel or returned by Conflicts.
func (e *Engine) pruneSupersetsOf(label cnf.LiteralSet, keep *conflictRecord) {
	kept := e.labels[:0]
	for _, rec := range e.labels {
		if rec == keep || !label.SubsetOf(rec.label) || len(rec.label) <= len(label) {
			kept = append(kept, rec)
			continue
		}
		// rec.label is a proper superset of label: prune it.
		for _, n := range rec.nodes {
			if n.Status == StatusOpen {
				n.Status = StatusPruned
				e.tracer.Trace(Event{Kind: EventPruned, Node: n})
			}
		}
	}
	e.labels = kept
}

// Diagnoses returns every CHECKED node's path, canonically sorted (§4.F):
// ascending by size, then lexicographic by element.
func (e *Engine) Diagnoses() []cnf.LiteralSet {
	out := make([]cnf.LiteralSet, len(e.paths))
	copy(out, e.paths)
	sortCanonically(out)
	return out
}

// Conflicts returns every surviving minimal conflict label, canonically
// sorted the same way as Diagnoses.
func (e *Engine) Conflicts() []cnf.LiteralSet {
	out := make([]cnf.LiteralSet, len(e.labels))
	for i, rec := range e.labels {
		out[i] = rec.label
	}
	sortCanonically(out)
	return out
}

func sortCanonically(sets []cnf.LiteralSet) {
	sort.SliceStable(sets, func(i, j int) bool {
		a, b := sets[i], sets[j]
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		sa, sb := append(cnf.LiteralSet{}, a...), append(cnf.LiteralSet{}, b...)
		sortLiteralsAsc(sa)
		sortLiteralsAsc(sb)
		for k := range sa {
			if sa[k] != sb[k] {
				return sa[k] < sb[k]
			}
		}
		return false
	})
}

func sortLiteralsAsc(s cnf.LiteralSet) {
	sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })
}
