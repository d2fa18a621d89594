package hsdag

import "github.com/manleviet/cdiag/pkg/cnf"

// Status is the lifecycle state of a Node.
type Status int

const (
	// StatusOpen nodes are awaiting expansion.
	StatusOpen Status = iota
	// StatusClosed nodes have a path that is a known superset of an
	// already-discovered diagnosis; they are never expanded.
	StatusClosed
	// StatusPruned nodes were labeled with a conflict later found to be
	// non-minimal; they are not re-expanded once pruned.
	StatusPruned
	// StatusChecked nodes have an empty label: their path is a diagnosis.
	StatusChecked
)

func (s Status) String() string {
	switch s {
	case StatusOpen:
		return "Open"
	case StatusClosed:
		return "Closed"
	case StatusPruned:
		return "Pruned"
	case StatusChecked:
		return "Checked"
	default:
		return "Unknown"
	}
}

// Node is a single vertex of the hitting-set DAG: its path from the root
// (path_label) is a candidate diagnosis under construction, and its label
// is either a minimal conflict still to be hit or, once empty, a signal
// that the path is itself a diagnosis.
type Node struct {
	ID        int
	Level     int
	ArcLabel  cnf.Literal // zero value for the root, which has none
	PathLabel cnf.LiteralSet
	Label     cnf.LiteralSet
	Status    Status
	Parents   []*Node
	Children  map[cnf.Literal]*Node
}

// newRoot constructs the root node of a fresh HS-DAG. id is supplied by the
// owning Engine's per-run counter, never a package-level one, so that two
// Engines can run concurrently without sharing node identity.
func newRoot(id int, label cnf.LiteralSet) *Node {
	return &Node{
		ID:       id,
		Level:    0,
		Label:    label,
		Status:   StatusOpen,
		Children: make(map[cnf.Literal]*Node),
	}
}

// newChild constructs a node reached from parent via arcLabel, appending
// arcLabel to the parent's path to form this node's path_label.
func newChild(id int, parent *Node, arcLabel cnf.Literal) *Node {
	path := make(cnf.LiteralSet, len(parent.PathLabel), len(parent.PathLabel)+1)
	copy(path, parent.PathLabel)
	path = append(path, arcLabel)

	child := &Node{
		ID:        id,
		Level:     parent.Level + 1,
		ArcLabel:  arcLabel,
		PathLabel: path,
		Status:    StatusOpen,
		Parents:   []*Node{parent},
		Children:  make(map[cnf.Literal]*Node),
	}
	parent.Children[arcLabel] = child
	return child
}

// addParent links an additional parent to a reused node. The engine is
// responsible for ensuring a given parent is never added twice; addParent
// itself performs no deduplication.
func (n *Node) addParent(p *Node) {
	n.Parents = append(n.Parents, p)
}

// IsRoot reports whether n is the root of its HS-DAG.
func (n *Node) IsRoot() bool {
	return len(n.Parents) == 0
}
