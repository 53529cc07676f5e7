package eval

import "github.com/lathehq/lathe/graph"

// ProgressSink receives evaluation progress. Only recomputed nodes emit
// events; cache hits are silent. Sinks are called synchronously from the
// evaluation goroutine, so slow sinks slow the pass down.
type ProgressSink interface {
	// NodeStarted fires before a node's compute runs. index counts
	// recomputed nodes so far in this pass, total is the schedule length.
	NodeStarted(node graph.NodeID, index, total int)
	// NodeProgress fires when a compute reports partial progress.
	// fraction is within [0, 1].
	NodeProgress(node graph.NodeID, fraction float64)
	// NodeFinished fires after a node's compute returns, err is nil on
	// success. It fires for every started node, also on failure.
	NodeFinished(node graph.NodeID, err error)
}

type nopSink struct{}

func (nopSink) NodeStarted(graph.NodeID, int, int) {}
func (nopSink) NodeProgress(graph.NodeID, float64) {}
func (nopSink) NodeFinished(graph.NodeID, error) {}

// Call carries one node's compute context: its identity, its parameters and
// a progress channel back to the host.
type Call struct {
	node   graph.NodeID
	name   string
	params *graph.ParamBag
	sink   ProgressSink
}

// Node returns the node being computed.
func (c *Call) Node() graph.NodeID { return c.node }

// Name returns the node's display name.
func (c *Call) Name() string { return c.name }

// Params returns the node's parameter bag.
func (c *Call) Params() *graph.ParamBag { return c.params }

// Advance reports partial progress. fraction is clamped to [0, 1].
func (c *Call) Advance(fraction float64) {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	c.sink.NodeProgress(c.node, fraction)
}
