package hsdag

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/manleviet/cdiag/pkg/cnf"
)

// EventKind identifies what happened to a Node during BFS expansion, for
// tracing/debugging purposes.
type EventKind int

const (
	EventLabelReused EventKind = iota
	EventClosed
	EventReused
	EventChecked
	EventPruned
	EventExpanded
)

func (k EventKind) String() string {
	switch k {
	case EventLabelReused:
		return "label-reused"
	case EventClosed:
		return "closed"
	case EventReused:
		return "reused"
	case EventChecked:
		return "checked"
	case EventPruned:
		return "pruned"
	case EventExpanded:
		return "expanded"
	default:
		return "unknown"
	}
}

// Event describes a single BFS expansion decision, handed to a Tracer.
type Event struct {
	Kind EventKind
	Node *Node
}

// Tracer observes HS-DAG expansion events. This mirrors the narrow
// Tracer/DefaultTracer/LoggingTracer split the teacher uses for its SAT
// search, generalized from "search position" to "HS-DAG expansion event".
type Tracer interface {
	Trace(Event)
}

// DefaultTracer discards every event.
type DefaultTracer struct{}

func (DefaultTracer) Trace(Event) {}

// LoggingTracer reports every event through a logrus.FieldLogger at debug
// level.
type LoggingTracer struct {
	Log logrus.FieldLogger
}

func (t LoggingTracer) Trace(e Event) {
	t.Log.WithFields(logrus.Fields{
		"event":      e.Kind.String(),
		"node_id":    e.Node.ID,
		"level":      e.Node.Level,
		"path_label": fmt.Sprintf("%v", []cnf.Literal(e.Node.PathLabel)),
	}).Debug("hsdag: expansion event")
}
