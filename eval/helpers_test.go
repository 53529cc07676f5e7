package eval

import (
	"context"
	"fmt"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/lathehq/lathe/graph"
)

func sourceDef() graph.Definition {
	return graph.Definition{
		Kind:     "grid",
		Category: "primitives",
		Outputs:  []graph.PinDef{{Name: "mesh", Type: graph.TypeMesh}},
		Defaults: map[string]graph.Value{"size": graph.NewVec2(10, 10)},
	}
}

func filterDef() graph.Definition {
	return graph.Definition{
		Kind:     "smooth",
		Category: "filters",
		Inputs:   []graph.PinDef{{Name: "in", Type: graph.TypeMesh}},
		Outputs:  []graph.PinDef{{Name: "out", Type: graph.TypeMesh}},
		Defaults: map[string]graph.Value{"iterations": graph.NewInt(2)},
	}
}

func mergeDef(n int) graph.Definition {
	ins := make([]graph.PinDef, n)
	for i := range ins {
		ins[i] = graph.PinDef{Name: fmt.Sprintf("in%d", i), Type: graph.TypeMesh}
	}
	return graph.Definition{
		Kind:    "merge",
		Inputs:  ins,
		Outputs: []graph.PinDef{{Name: "out", Type: graph.TypeMesh}},
	}
}

// link connects from's first output to to's first input.
func link(t *testing.T, g *graph.Graph, from, to graph.NodeID) {
	t.Helper()
	linkAt(t, g, from, to, 0)
}

// linkAt connects from's first output to to's index-th input.
func linkAt(t *testing.T, g *graph.Graph, from, to graph.NodeID, index int) {
	t.Helper()
	src, ok := g.Node(from)
	assert.True(t, ok)
	dst, ok := g.Node(to)
	assert.True(t, ok)
	_, err := g.AddLink(src.Outputs[0], dst.Inputs[index])
	assert.NoError(t, err)
}

func noopCompute(context.Context, *Call) error { return nil }

// failOn fails the given node's compute and succeeds everywhere else.
func failOn(bad graph.NodeID) ComputeFunc {
	return func(_ context.Context, call *Call) error {
		if call.Node() == bad {
			return fmt.Errorf("synthetic failure on %s", bad)
		}
		return nil
	}
}

// rowFor finds the report row for a node.
func rowFor(t *testing.T, r *Report, id graph.NodeID) NodeReport {
	t.Helper()
	for _, row := range r.Nodes {
		if row.Node == id {
			return row
		}
	}
	t.Fatalf("no report row for node %s", id)
	return NodeReport{}
}

// version reads a node's output version, failing the test for uninitialized
// nodes.
func version(t *testing.T, st *State, id graph.NodeID) uint64 {
	t.Helper()
	v, ok := st.OutputVersion(id)
	assert.True(t, ok)
	return v
}
