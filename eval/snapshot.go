package eval

import (
	"encoding/binary"
	"fmt"

	"github.com/lathehq/lathe/graph"
)

// Snapshot record layout.
//
// Key: 8 bytes, big-endian node ID.
//
// Value: 34 bytes
//
//	[0]     format version (currently 1)
//	[1]     initialized flag, 0 or 1
//	[2:10]  last combined signature
//	[10:18] last param version
//	[18:26] last upstream signature
//	[26:34] output version
const (
	snapshotVersion = 1
	snapshotLen     = 34
)

// Save writes every cache entry to the store and flushes it. A snapshot is
// only meaningful against the same graph lineage: param versions and node
// IDs must mean the same thing when it is loaded back.
func (s *State) Save(store StateStore) error {
	var key [8]byte
	var val [snapshotLen]byte

	for id, e := range s.entries {
		binary.BigEndian.PutUint64(key[:], uint64(id))

		val[0] = snapshotVersion
		val[1] = 0
		if e.initialized {
			val[1] = 1
		}
		binary.BigEndian.PutUint64(val[2:], uint64(e.lastSignature))
		binary.BigEndian.PutUint64(val[10:], e.lastParamVersion)
		binary.BigEndian.PutUint64(val[18:], uint64(e.lastUpstreamSignature))
		binary.BigEndian.PutUint64(val[26:], e.outputVersion)

		if err := store.Set(key[:], val[:]); err != nil {
			return fmt.Errorf("save %s: %w", id, err)
		}
	}
	return store.Flush()
}

// Load replaces the cache with the store's contents and resets the hit and
// miss counters. On any decode error the State is left unchanged.
func (s *State) Load(store StateStore) error {
	it, err := store.All()
	if err != nil {
		return err
	}
	defer it.Close()

	entries := make(map[graph.NodeID]*entry)
	for it.Next() {
		key, val := it.Key(), it.Value()
		if len(key) != 8 {
			return fmt.Errorf("%w: key length %d", ErrBadSnapshot, len(key))
		}
		if len(val) != snapshotLen {
			return fmt.Errorf("%w: record length %d", ErrBadSnapshot, len(val))
		}
		if val[0] != snapshotVersion {
			return fmt.Errorf("%w: unknown format version %d", ErrBadSnapshot, val[0])
		}

		id := graph.NodeID(binary.BigEndian.Uint64(key))
		entries[id] = &entry{
			initialized:           val[1] == 1,
			lastSignature:         Signature(binary.BigEndian.Uint64(val[2:])),
			lastParamVersion:      binary.BigEndian.Uint64(val[10:]),
			lastUpstreamSignature: Signature(binary.BigEndian.Uint64(val[18:])),
			outputVersion:         binary.BigEndian.Uint64(val[26:]),
		}
	}
	if err := it.Err(); err != nil {
		return err
	}

	s.entries = entries
	s.hits = 0
	s.misses = 0
	return nil
}
