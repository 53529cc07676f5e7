package eval

import (
	"time"

	"github.com/lathehq/lathe/graph"
	"go.uber.org/multierr"
)

// NodeStatus is the per-node outcome of an evaluation pass.
type NodeStatus uint8

const (
	// StatusHit means the cached output was reused.
	StatusHit NodeStatus = iota
	// StatusComputed means the node recomputed successfully.
	StatusComputed
	// StatusFailed means the node's compute returned an error.
	StatusFailed
	// StatusSkipped means the node never ran because an upstream failed.
	StatusSkipped
)

func (s NodeStatus) String() string {
	switch s {
	case StatusHit:
		return "hit"
	case StatusComputed:
		return "computed"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// NodeReport is one node's row in an evaluation report.
type NodeReport struct {
	Node          graph.NodeID
	Status        NodeStatus
	Reason        DirtyReason
	OutputVersion uint64
	Elapsed       time.Duration
	Err           error
}

// Report summarizes one evaluation pass.
type Report struct {
	// Target is the node the pass was asked to bring up to date.
	Target graph.NodeID
	// Order is the schedule the pass walked, target last.
	Order []graph.NodeID
	// Computed lists the nodes that actually recomputed, in schedule order.
	Computed []graph.NodeID
	// Nodes holds one row per scheduled node, in schedule order.
	Nodes []NodeReport

	CacheHits   int
	CacheMisses int

	// Errors collects every failure in the pass: compute errors first
	// come as NodeError, skipped dependents as UpstreamError.
	Errors []error

	// OutputValid reports whether the target's output can be trusted,
	// which is the case exactly when the pass saw no errors.
	OutputValid bool

	Elapsed time.Duration
}

// DirtyEntry pairs a stale node with the reason it went stale.
type DirtyEntry struct {
	Node   graph.NodeID
	Reason DirtyReason
}

// Dirty lists every node whose recompute was attempted this pass, with its
// dirty reason, in schedule order. Hits and skipped nodes are absent.
func (r *Report) Dirty() []DirtyEntry {
	var entries []DirtyEntry
	for _, row := range r.Nodes {
		if row.Reason == ReasonNone {
			continue
		}
		entries = append(entries, DirtyEntry{Node: row.Node, Reason: row.Reason})
	}
	return entries
}

// Err folds all pass errors into one, or nil for a clean pass.
func (r *Report) Err() error {
	return multierr.Combine(r.Errors...)
}

// Failed reports whether anything in the pass went wrong.
func (r *Report) Failed() bool { return len(r.Errors) > 0 }
