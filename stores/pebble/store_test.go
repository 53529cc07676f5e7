package pebble

import (
	"context"
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/lathehq/lathe/eval"
	"github.com/lathehq/lathe/graph"
)

func TestPebbleStore(t *testing.T) {
	t.Run("basic CRUD operations", func(t *testing.T) {
		store, err := New(t.TempDir())
		assert.NoError(t, err)
		defer store.Close()

		err = store.Set([]byte("key1"), []byte("value1"))
		assert.NoError(t, err)

		value, err := store.Get([]byte("key1"))
		assert.NoError(t, err)
		assert.Equal(t, []byte("value1"), value)

		err = store.Set([]byte("key1"), []byte("value1-updated"))
		assert.NoError(t, err)

		value, err = store.Get([]byte("key1"))
		assert.NoError(t, err)
		assert.Equal(t, []byte("value1-updated"), value)

		err = store.Delete([]byte("key1"))
		assert.NoError(t, err)

		_, err = store.Get([]byte("key1"))
		assert.Error(t, err)
		assert.True(t, errors.Is(err, eval.ErrKeyNotFound))
	})

	t.Run("get non-existent key", func(t *testing.T) {
		store, err := New(t.TempDir())
		assert.NoError(t, err)
		defer store.Close()

		_, err = store.Get([]byte("non-existent"))
		assert.Error(t, err)
		assert.True(t, errors.Is(err, eval.ErrKeyNotFound))
	})

	t.Run("nil value as tombstone", func(t *testing.T) {
		store, err := New(t.TempDir())
		assert.NoError(t, err)
		defer store.Close()

		err = store.Set([]byte("key1"), []byte("value1"))
		assert.NoError(t, err)

		// Set nil should delete the key
		err = store.Set([]byte("key1"), nil)
		assert.NoError(t, err)

		_, err = store.Get([]byte("key1"))
		assert.Error(t, err)
		assert.True(t, errors.Is(err, eval.ErrKeyNotFound))
	})

	t.Run("delete non-existent key", func(t *testing.T) {
		store, err := New(t.TempDir())
		assert.NoError(t, err)
		defer store.Close()

		err = store.Delete([]byte("non-existent"))
		assert.NoError(t, err)
	})
}

func TestPebbleStoreIterator(t *testing.T) {
	t.Run("all keys iteration", func(t *testing.T) {
		store, err := New(t.TempDir())
		assert.NoError(t, err)
		defer store.Close()

		for i := 0; i < 10; i++ {
			key := []byte{byte(i)}
			value := []byte{byte(i * 10)}
			err := store.Set(key, value)
			assert.NoError(t, err)
		}

		iter, err := store.All()
		assert.NoError(t, err)
		defer iter.Close()

		count := 0
		for iter.Next() {
			count++
		}
		assert.NoError(t, iter.Err())
		assert.Equal(t, 10, count)
	})

	t.Run("iterator data copy safety", func(t *testing.T) {
		store, err := New(t.TempDir())
		assert.NoError(t, err)
		defer store.Close()

		assert.NoError(t, store.Set([]byte("key1"), []byte("value1")))
		assert.NoError(t, store.Set([]byte("key2"), []byte("value2")))

		iter, err := store.All()
		assert.NoError(t, err)

		var keys [][]byte
		var values [][]byte
		for iter.Next() {
			keys = append(keys, iter.Key())
			values = append(values, iter.Value())
		}
		assert.NoError(t, iter.Err())
		assert.NoError(t, iter.Close())

		// The iterator makes copies, so the data outlives it.
		assert.Equal(t, 2, len(keys))
		assert.Equal(t, []byte("key1"), keys[0])
		assert.Equal(t, []byte("value2"), values[1])
	})

	t.Run("empty store iterates nothing", func(t *testing.T) {
		store, err := New(t.TempDir())
		assert.NoError(t, err)
		defer store.Close()

		iter, err := store.All()
		assert.NoError(t, err)
		defer iter.Close()

		assert.False(t, iter.Next())
		assert.NoError(t, iter.Err())
	})
}

func TestPebbleStoreLifecycle(t *testing.T) {
	t.Run("flush and close", func(t *testing.T) {
		store, err := New(t.TempDir())
		assert.NoError(t, err)

		assert.NoError(t, store.Set([]byte("key"), []byte("value")))
		assert.NoError(t, store.Flush())
		assert.NoError(t, store.Close())
	})

	t.Run("persistence across reopens", func(t *testing.T) {
		dir := t.TempDir()

		{
			store, err := New(dir)
			assert.NoError(t, err)

			assert.NoError(t, store.Set([]byte("persistent-key"), []byte("persistent-value")))
			assert.NoError(t, store.Close())
		}

		{
			store, err := New(dir)
			assert.NoError(t, err)
			defer store.Close()

			value, err := store.Get([]byte("persistent-key"))
			assert.NoError(t, err)
			assert.Equal(t, []byte("persistent-value"), value)
		}
	})
}

func TestSnapshotThroughPebble(t *testing.T) {
	g := graph.New()
	a := g.AddNode(graph.Definition{
		Kind:    "grid",
		Outputs: []graph.PinDef{{Name: "mesh", Type: graph.TypeMesh}},
	})
	b := g.AddNode(graph.Definition{
		Kind:    "smooth",
		Inputs:  []graph.PinDef{{Name: "in", Type: graph.TypeMesh}},
		Outputs: []graph.PinDef{{Name: "out", Type: graph.TypeMesh}},
	})
	an, _ := g.Node(a)
	bn, _ := g.Node(b)
	_, err := g.AddLink(an.Outputs[0], bn.Inputs[0])
	assert.NoError(t, err)

	noop := func(context.Context, *eval.Call) error { return nil }
	ev := eval.New(g)
	ctx := context.Background()
	dir := t.TempDir()

	// First session: evaluate and persist.
	{
		st := eval.NewState()
		_, err := ev.Evaluate(ctx, b, st, noop)
		assert.NoError(t, err)

		store, err := New(dir)
		assert.NoError(t, err)
		assert.NoError(t, st.Save(store))
		assert.NoError(t, store.Close())
	}

	// Second session: restore and verify an all-hit pass.
	{
		store, err := New(dir)
		assert.NoError(t, err)
		defer store.Close()

		st := eval.NewState()
		assert.NoError(t, st.Load(store))
		assert.Equal(t, 2, st.Len())

		r, err := ev.Evaluate(ctx, b, st, noop)
		assert.NoError(t, err)
		assert.Equal(t, 2, r.CacheHits)
		assert.Equal(t, 0, len(r.Computed))
	}
}
