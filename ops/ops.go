// Package ops ships the stock operator definitions: primitive generators,
// mesh filters and utility nodes. Hosts register them in a Catalog at
// startup; the definitions only describe pin layouts and parameter
// defaults, the cooking itself lives in the host's ComputeFunc.
package ops

import (
	"fmt"

	"github.com/lathehq/lathe/graph"
)

// Grid is a flat rectangular mesh generator.
func Grid() graph.Definition {
	return graph.Definition{
		Kind:     "grid",
		Category: "primitives",
		Outputs:  []graph.PinDef{{Name: "mesh", Type: graph.TypeMesh}},
		Defaults: map[string]graph.Value{
			"size":    graph.NewVec2(10, 10),
			"rows":    graph.NewInt(10),
			"columns": graph.NewInt(10),
		},
	}
}

// Box is an axis-aligned box mesh generator.
func Box() graph.Definition {
	return graph.Definition{
		Kind:     "box",
		Category: "primitives",
		Outputs:  []graph.PinDef{{Name: "mesh", Type: graph.TypeMesh}},
		Defaults: map[string]graph.Value{
			"size":      graph.NewVec3(1, 1, 1),
			"center":    graph.NewVec3(0, 0, 0),
			"divisions": graph.NewInt(1),
		},
	}
}

// Sphere is a UV sphere mesh generator.
func Sphere() graph.Definition {
	return graph.Definition{
		Kind:     "sphere",
		Category: "primitives",
		Outputs:  []graph.PinDef{{Name: "mesh", Type: graph.TypeMesh}},
		Defaults: map[string]graph.Value{
			"radius":  graph.NewFloat(1),
			"rows":    graph.NewInt(16),
			"columns": graph.NewInt(32),
		},
	}
}

// Circle is a circular curve generator, the usual feed for Revolve.
func Circle() graph.Definition {
	return graph.Definition{
		Kind:     "circle",
		Category: "primitives",
		Outputs:  []graph.PinDef{{Name: "curve", Type: graph.TypeCurve}},
		Defaults: map[string]graph.Value{
			"radius":   graph.NewFloat(1),
			"segments": graph.NewInt(32),
		},
	}
}

// Scatter distributes points over a mesh surface.
func Scatter() graph.Definition {
	return graph.Definition{
		Kind:     "scatter",
		Category: "filters",
		Inputs:   []graph.PinDef{{Name: "mesh", Type: graph.TypeMesh}},
		Outputs:  []graph.PinDef{{Name: "points", Type: graph.TypePoints}},
		Defaults: map[string]graph.Value{
			"count": graph.NewInt(1000),
			"seed":  graph.NewInt(0),
		},
	}
}

// Transform applies translation, rotation and scale to any geometry.
func Transform() graph.Definition {
	return graph.Definition{
		Kind:     "transform",
		Category: "filters",
		Inputs:   []graph.PinDef{{Name: "in", Type: graph.TypeAny}},
		Outputs:  []graph.PinDef{{Name: "out", Type: graph.TypeAny}},
		Defaults: map[string]graph.Value{
			"translate":     graph.NewVec3(0, 0, 0),
			"rotate":        graph.NewVec3(0, 0, 0),
			"scale":         graph.NewVec3(1, 1, 1),
			"uniform_scale": graph.NewFloat(1),
		},
	}
}

// Noise displaces mesh points with procedural noise.
func Noise() graph.Definition {
	return graph.Definition{
		Kind:     "noise",
		Category: "filters",
		Inputs:   []graph.PinDef{{Name: "mesh", Type: graph.TypeMesh}},
		Outputs:  []graph.PinDef{{Name: "mesh", Type: graph.TypeMesh}},
		Defaults: map[string]graph.Value{
			"amplitude": graph.NewFloat(1),
			"frequency": graph.NewFloat(1),
			"seed":      graph.NewInt(0),
		},
	}
}

// Revolve sweeps a curve around an axis into a mesh.
func Revolve() graph.Definition {
	return graph.Definition{
		Kind:     "revolve",
		Category: "filters",
		Inputs:   []graph.PinDef{{Name: "curve", Type: graph.TypeCurve}},
		Outputs:  []graph.PinDef{{Name: "mesh", Type: graph.TypeMesh}},
		Defaults: map[string]graph.Value{
			"sides": graph.NewInt(24),
			"angle": graph.NewFloat(360),
		},
	}
}

// Merge combines n inputs of any geometry type into one. Pin names are in0
// through in(n-1).
func Merge(n int) graph.Definition {
	ins := make([]graph.PinDef, n)
	for i := range ins {
		ins[i] = graph.PinDef{Name: fmt.Sprintf("in%d", i), Type: graph.TypeAny}
	}
	return graph.Definition{
		Kind:     "merge",
		Category: "utility",
		Inputs:   ins,
		Outputs:  []graph.PinDef{{Name: "out", Type: graph.TypeAny}},
	}
}

// Output marks a graph's display or export node. It consumes anything and
// produces nothing; hosts evaluate it as the target.
func Output() graph.Definition {
	return graph.Definition{
		Kind:     "output",
		Category: "utility",
		Inputs:   []graph.PinDef{{Name: "in", Type: graph.TypeAny}},
	}
}

// All returns every stock definition with fixed arity. Variadic kinds like
// Merge are instantiated per call site instead.
func All() []graph.Definition {
	return []graph.Definition{
		Grid(),
		Box(),
		Sphere(),
		Circle(),
		Scatter(),
		Transform(),
		Noise(),
		Revolve(),
		Output(),
	}
}
