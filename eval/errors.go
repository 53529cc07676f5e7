package eval

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lathehq/lathe/graph"
)

// NodeError wraps a compute failure with the node it happened on. The
// original error is preserved for errors.Is and errors.As.
type NodeError struct {
	Node graph.NodeID
	Err  error
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("node %s: %s", e.Node, e.Err)
}

func (e *NodeError) Unwrap() error { return e.Err }

// UpstreamError marks a node that was skipped because one or more of its
// direct upstreams failed or was itself skipped. Upstream lists the failed
// direct upstreams in ascending ID order.
type UpstreamError struct {
	Node     graph.NodeID
	Upstream []graph.NodeID
}

func (e *UpstreamError) Error() string {
	ids := make([]string, 0, len(e.Upstream))
	for _, id := range e.Upstream {
		ids = append(ids, id.String())
	}
	return fmt.Sprintf("node %s: upstream failed: %s", e.Node, strings.Join(ids, ", "))
}

// Sentinel errors for state persistence.
var (
	ErrKeyNotFound = errors.New("state store: key not found")
	ErrBadSnapshot = errors.New("malformed state snapshot")
)
