package eval

import "github.com/lathehq/lathe/graph"

// entry is the cached evaluation record for one node.
type entry struct {
	lastSignature         Signature
	lastParamVersion      uint64
	lastUpstreamSignature Signature
	initialized           bool
	outputVersion         uint64
}

// State is the evaluation cache: one entry per node the evaluator has seen.
// Entries appear lazily on first evaluation, so a State built for a graph
// with thousands of nodes stays small while only a corner of the graph is
// being cooked.
//
// State is not safe for concurrent use. Each evaluation pass owns its State
// for the duration of the call.
type State struct {
	entries map[graph.NodeID]*entry

	hits   uint64
	misses uint64
}

// NewState creates an empty evaluation cache.
func NewState() *State {
	return &State{entries: make(map[graph.NodeID]*entry)}
}

// get returns the entry for id, creating an uninitialized one if needed.
func (s *State) get(id graph.NodeID) *entry {
	e, ok := s.entries[id]
	if !ok {
		e = &entry{}
		s.entries[id] = e
	}
	return e
}

// OutputVersion reports the node's current output version. It returns false
// for nodes that have never computed successfully.
func (s *State) OutputVersion(id graph.NodeID) (uint64, bool) {
	e, ok := s.entries[id]
	if !ok || !e.initialized {
		return 0, false
	}
	return e.outputVersion, true
}

// Forget drops the cached entry for a node. The next evaluation treats it as
// new. Hosts call this after removing a node so the cache does not hold
// state for IDs that can never come back.
func (s *State) Forget(id graph.NodeID) {
	delete(s.entries, id)
}

// Len reports how many nodes have cache entries.
func (s *State) Len() int { return len(s.entries) }

// Hits reports the cumulative cache hit count across evaluations.
func (s *State) Hits() uint64 { return s.hits }

// Misses reports the cumulative cache miss count across evaluations.
func (s *State) Misses() uint64 { return s.misses }
