package eval

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/lathehq/lathe/graph"
)

// Signature is a 64-bit digest of everything that feeds a node's compute:
// its own param version plus the identity and output version of every direct
// upstream. Equal signatures mean the cached output is reusable.
type Signature uint64

// upstreamPair is one direct upstream's contribution to a signature. Pairs
// are always hashed in ascending node ID order so the digest is independent
// of link creation order.
type upstreamPair struct {
	id      graph.NodeID
	version uint64
}

// signatureOf digests the node's param version and its upstream pairs. The
// upstream IDs participate, not just the versions: rewiring an input to a
// different node must change the signature even when both candidates happen
// to be at the same output version.
func signatureOf(paramVersion uint64, ups []upstreamPair) Signature {
	buf := make([]byte, 8+16*len(ups))
	binary.BigEndian.PutUint64(buf, paramVersion)
	putPairs(buf[8:], ups)
	return Signature(xxhash.Sum64(buf))
}

// upstreamSignatureOf digests the upstream pairs alone. It feeds the dirty
// reason classifier, which needs to tell param movement apart from upstream
// movement.
func upstreamSignatureOf(ups []upstreamPair) Signature {
	buf := make([]byte, 16*len(ups))
	putPairs(buf, ups)
	return Signature(xxhash.Sum64(buf))
}

func putPairs(buf []byte, ups []upstreamPair) {
	for i, up := range ups {
		binary.BigEndian.PutUint64(buf[16*i:], uint64(up.id))
		binary.BigEndian.PutUint64(buf[16*i+8:], up.version)
	}
}
