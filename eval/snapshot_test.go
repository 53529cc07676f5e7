package eval

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/lathehq/lathe/graph"
	"golang.org/x/exp/maps"
)

// memStore is an in-memory StateStore for snapshot tests. Iteration is over
// sorted keys so tests are deterministic.
type memStore struct {
	data    map[string][]byte
	flushes int
}

var _ = StateStore(&memStore{})

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (m *memStore) Set(key, value []byte) error {
	if value == nil {
		delete(m.data, string(key))
		return nil
	}
	m.data[string(key)] = slices.Clone(value)
	return nil
}

func (m *memStore) Get(key []byte) ([]byte, error) {
	v, ok := m.data[string(key)]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return slices.Clone(v), nil
}

func (m *memStore) Delete(key []byte) error {
	delete(m.data, string(key))
	return nil
}

func (m *memStore) All() (Iterator, error) {
	keys := maps.Keys(m.data)
	slices.Sort(keys)
	return &memIterator{store: m, keys: keys, pos: -1}, nil
}

func (m *memStore) Flush() error {
	m.flushes++
	return nil
}

func (m *memStore) Close() error { return nil }

type memIterator struct {
	store *memStore
	keys  []string
	pos   int
}

func (it *memIterator) Next() bool {
	it.pos++
	return it.pos < len(it.keys)
}

func (it *memIterator) Key() []byte   { return []byte(it.keys[it.pos]) }
func (it *memIterator) Value() []byte { return it.store.data[it.keys[it.pos]] }
func (it *memIterator) Err() error    { return nil }
func (it *memIterator) Close() error  { return nil }

func TestSnapshotRoundTrip(t *testing.T) {
	g := graph.New()
	a := g.AddNode(sourceDef())
	b := g.AddNode(filterDef())
	link(t, g, a, b)

	ev := New(g)
	st := NewState()
	ctx := context.Background()

	_, err := ev.Evaluate(ctx, b, st, noopCompute)
	assert.NoError(t, err)
	assert.NoError(t, g.SetParam(b, "iterations", graph.NewInt(4)))
	_, err = ev.Evaluate(ctx, b, st, noopCompute)
	assert.NoError(t, err)

	store := newMemStore()
	assert.NoError(t, st.Save(store))
	assert.Equal(t, 2, len(store.data))
	assert.Equal(t, 1, store.flushes)

	restored := NewState()
	assert.NoError(t, restored.Load(store))
	assert.Equal(t, st.Len(), restored.Len())

	for id, want := range st.entries {
		got, ok := restored.entries[id]
		assert.True(t, ok)
		assert.Equal(t, *want, *got)
	}

	// Counters start over with the restored cache.
	assert.Equal(t, uint64(0), restored.Hits())
	assert.Equal(t, uint64(0), restored.Misses())

	// The restored state makes the same graph an all-hit pass.
	r, err := ev.Evaluate(ctx, b, restored, noopCompute)
	assert.NoError(t, err)
	assert.Equal(t, 2, r.CacheHits)
	assert.Equal(t, 0, len(r.Computed))
}

func TestSnapshotLoadValidation(t *testing.T) {
	key := func(id uint64) []byte {
		k := make([]byte, 8)
		k[7] = byte(id)
		return k
	}
	goodValue := func() []byte {
		v := make([]byte, snapshotLen)
		v[0] = snapshotVersion
		v[1] = 1
		return v
	}

	t.Run("truncated record", func(t *testing.T) {
		store := newMemStore()
		assert.NoError(t, store.Set(key(1), goodValue()[:10]))

		st := NewState()
		err := st.Load(store)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, ErrBadSnapshot))
		assert.Equal(t, 0, st.Len())
	})

	t.Run("unknown format version", func(t *testing.T) {
		store := newMemStore()
		v := goodValue()
		v[0] = 9
		assert.NoError(t, store.Set(key(1), v))

		st := NewState()
		err := st.Load(store)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, ErrBadSnapshot))
	})

	t.Run("bad key length", func(t *testing.T) {
		store := newMemStore()
		assert.NoError(t, store.Set([]byte("abc"), goodValue()))

		st := NewState()
		err := st.Load(store)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, ErrBadSnapshot))
	})

	t.Run("load failure leaves state untouched", func(t *testing.T) {
		st := NewState()
		e := st.get(graph.NodeID(5))
		e.initialized = true
		e.outputVersion = 2

		store := newMemStore()
		assert.NoError(t, store.Set(key(1), goodValue()[:3]))

		assert.Error(t, st.Load(store))
		v, ok := st.OutputVersion(graph.NodeID(5))
		assert.True(t, ok)
		assert.Equal(t, uint64(2), v)
	})

	t.Run("empty store loads empty state", func(t *testing.T) {
		st := NewState()
		st.get(graph.NodeID(1))

		assert.NoError(t, st.Load(newMemStore()))
		assert.Equal(t, 0, st.Len())
	})
}
