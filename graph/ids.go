package graph

import "strconv"

// NodeID is a strongly-typed identifier for nodes. IDs are issued by the
// owning Graph, start at 1 and are never reused; 0 is never issued, so the
// zero value always means "no node".
type NodeID uint64

// PinID is a strongly-typed identifier for pins, issued like NodeID.
type PinID uint64

// LinkID is a strongly-typed identifier for links, issued like NodeID.
type LinkID uint64

func (id NodeID) String() string { return strconv.FormatUint(uint64(id), 10) }

func (id PinID) String() string { return strconv.FormatUint(uint64(id), 10) }

func (id LinkID) String() string { return strconv.FormatUint(uint64(id), 10) }
