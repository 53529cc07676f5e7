// Package graph provides the dependency-graph data model for procedural
// scenes: nodes with ordered, typed pins, parameter bags, and directional
// links from outputs to inputs.
//
// # Overview
//
// A Graph is an arena. Every node, pin and link carries an opaque numeric ID
// issued from a monotonic counter; IDs start at 1 and are never reused, so a
// stale ID held by an editor can never silently alias a newer element. All
// lookups are map-backed and return (value, ok) pairs.
//
// Nodes are created from a Definition, which fixes the pin layout up front:
//
//	grid := g.AddNode(graph.Definition{
//	    Kind:     "grid",
//	    Category: "primitives",
//	    Outputs:  []graph.PinDef{{Name: "mesh", Type: graph.TypeMesh}},
//	    Defaults: map[string]graph.Value{
//	        "size": graph.NewVec2(10, 10),
//	    },
//	})
//
// Pin arity is fixed for the node's lifetime. Parameters are mutated
// exclusively through Graph.SetParam, which bumps the node's param version on
// every call - the version is a change counter, not a content hash, so
// writing the same value twice still moves it.
//
// # Links
//
// Links connect one output pin to one input pin. An input accepts at most one
// incoming link; reconnecting means removing the old link first. Pin types
// must match exactly unless either side is TypeAny:
//
//	l, err := g.AddLink(gridMeshOut, noiseMeshIn)
//	if errors.Is(err, graph.ErrInputOccupied) {
//	    // disconnect first, then retry
//	}
//
// AddLink does not check for cycles. Interactive editors routinely pass
// through transient invalid states; cycle detection is deferred to
// DependencyOrder and Validate, whose errors spell out the offending path.
//
// # Scheduling
//
// DependencyOrder(target) computes the evaluation schedule: the target's
// transitive upstream closure in topological order, target last. Ties are
// broken by ascending node ID, making the schedule deterministic for a given
// graph shape. Nodes outside the closure never appear, so sibling branches
// cost nothing.
//
// # Thread Safety
//
// Graph is NOT safe for concurrent mutation. All writes must come from a
// single goroutine; reads are safe while no writer is active.
package graph
