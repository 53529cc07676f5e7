package eval

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/lathehq/lathe/graph"
)

func TestState(t *testing.T) {
	t.Run("entries appear lazily", func(t *testing.T) {
		st := NewState()
		assert.Equal(t, 0, st.Len())

		e := st.get(graph.NodeID(1))
		assert.NotZero(t, e)
		assert.Equal(t, 1, st.Len())

		// Same entry on repeat access.
		assert.Equal(t, e, st.get(graph.NodeID(1)))
		assert.Equal(t, 1, st.Len())
	})

	t.Run("output version requires a successful compute", func(t *testing.T) {
		st := NewState()

		_, ok := st.OutputVersion(graph.NodeID(1))
		assert.False(t, ok)

		// An uninitialized entry still reads as absent.
		st.get(graph.NodeID(1))
		_, ok = st.OutputVersion(graph.NodeID(1))
		assert.False(t, ok)

		e := st.get(graph.NodeID(1))
		e.initialized = true
		e.outputVersion = 7
		v, ok := st.OutputVersion(graph.NodeID(1))
		assert.True(t, ok)
		assert.Equal(t, uint64(7), v)
	})

	t.Run("forget drops the entry", func(t *testing.T) {
		st := NewState()
		e := st.get(graph.NodeID(2))
		e.initialized = true
		e.outputVersion = 3

		st.Forget(graph.NodeID(2))
		assert.Equal(t, 0, st.Len())
		_, ok := st.OutputVersion(graph.NodeID(2))
		assert.False(t, ok)

		// Forgetting twice is harmless.
		st.Forget(graph.NodeID(2))
	})

	t.Run("fresh state has zero counters", func(t *testing.T) {
		st := NewState()
		assert.Equal(t, uint64(0), st.Hits())
		assert.Equal(t, uint64(0), st.Misses())
	})
}
