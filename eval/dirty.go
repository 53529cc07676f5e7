package eval

// DirtyReason explains why a node was recomputed. It is diagnostic: the
// recompute decision itself is made by comparing full signatures, the reason
// only breaks that decision down for progress UIs and logs.
type DirtyReason uint8

const (
	// ReasonNone marks a cache hit.
	ReasonNone DirtyReason = iota
	// ReasonNewNode marks a node with no initialized cache entry.
	ReasonNewNode
	// ReasonParamChanged marks a node whose own parameters moved.
	ReasonParamChanged
	// ReasonUpstreamChanged marks a node whose upstream outputs moved.
	ReasonUpstreamChanged
	// ReasonParamAndUpstreamChanged marks both at once.
	ReasonParamAndUpstreamChanged
)

func (r DirtyReason) String() string {
	switch r {
	case ReasonNone:
		return "clean"
	case ReasonNewNode:
		return "new-node"
	case ReasonParamChanged:
		return "param-changed"
	case ReasonUpstreamChanged:
		return "upstream-changed"
	case ReasonParamAndUpstreamChanged:
		return "param+upstream-changed"
	default:
		return "unknown"
	}
}

// classify names what moved for a node already known to be dirty. When
// neither component moved individually, the full signature mismatch can only
// have come from upstream identity, so that case reports upstream movement.
func classify(e *entry, paramVersion uint64, upstreamSig Signature) DirtyReason {
	if !e.initialized {
		return ReasonNewNode
	}
	paramMoved := e.lastParamVersion != paramVersion
	upstreamMoved := e.lastUpstreamSignature != upstreamSig
	switch {
	case paramMoved && upstreamMoved:
		return ReasonParamAndUpstreamChanged
	case paramMoved:
		return ReasonParamChanged
	default:
		return ReasonUpstreamChanged
	}
}
