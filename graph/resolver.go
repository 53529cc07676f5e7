package graph

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// DependencyOrder returns the evaluation schedule for target: every node
// target transitively depends on, topologically sorted, target last. Nodes
// outside target's upstream closure never appear, so editing a sibling
// branch costs nothing here.
//
// Ties are broken by ascending node ID, which keeps the schedule fully
// deterministic for a given graph shape.
func (g *Graph) DependencyOrder(target NodeID) ([]NodeID, error) {
	if _, ok := g.nodes[target]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingNode, target)
	}

	// Reverse reachability from the target.
	closure := mapset.NewThreadUnsafeSet(target)
	stack := []NodeID{target}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, up := range g.UpstreamNodes(id).ToSlice() {
			if closure.Contains(up) {
				continue
			}
			closure.Add(up)
			stack = append(stack, up)
		}
	}

	// Kahn's algorithm restricted to the closure. Every upstream of a
	// closure member is itself in the closure, so in-degrees need no
	// filtering.
	inDegree := make(map[NodeID]int, closure.Cardinality())
	var queue []NodeID
	closure.Each(func(id NodeID) bool {
		d := g.UpstreamNodes(id).Cardinality()
		inDegree[id] = d
		if d == 0 {
			queue = insertSorted(queue, id)
		}
		return false
	})

	order := make([]NodeID, 0, closure.Cardinality())
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)

		for _, down := range sortedSet(g.DownstreamNodes(id)) {
			if !closure.Contains(down) {
				continue
			}
			inDegree[down]--
			if inDegree[down] == 0 {
				queue = insertSorted(queue, down)
			}
		}
	}

	if len(order) != closure.Cardinality() {
		if err := g.cycleWithin(closure); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: in dependencies of %s", ErrCycleDetected, target)
	}
	return order, nil
}

// Validate checks the whole graph for cycles. The error names the offending
// path. AddLink deliberately does not run this; hosts validate when it suits
// their edit flow.
func (g *Graph) Validate() error {
	return g.cycleWithin(mapset.NewThreadUnsafeSet(g.nodeOrder...))
}

// cycleWithin runs a DFS over the given node set and reports the first cycle
// found, with the path spelled out.
func (g *Graph) cycleWithin(scope mapset.Set[NodeID]) error {
	visited := mapset.NewThreadUnsafeSet[NodeID]()
	recStack := mapset.NewThreadUnsafeSet[NodeID]()
	var path []NodeID

	var visit func(id NodeID) error
	visit = func(id NodeID) error {
		visited.Add(id)
		recStack.Add(id)
		path = append(path, id)

		for _, down := range sortedSet(g.DownstreamNodes(id)) {
			if !scope.Contains(down) {
				continue
			}
			if recStack.Contains(down) {
				path = append(path, down)
				pathStr := make([]string, 0, len(path))
				for _, p := range path {
					pathStr = append(pathStr, p.String())
				}
				return fmt.Errorf("%w: %s", ErrCycleDetected, strings.Join(pathStr, " -> "))
			}
			if visited.Contains(down) {
				continue
			}
			if err := visit(down); err != nil {
				return err
			}
		}

		recStack.Remove(id)
		path = path[:len(path)-1]
		return nil
	}

	for _, id := range sortedSet(scope) {
		if visited.Contains(id) {
			continue
		}
		if err := visit(id); err != nil {
			return err
		}
	}
	return nil
}

// insertSorted inserts id into a sorted slice, keeping it sorted.
func insertSorted(ids []NodeID, id NodeID) []NodeID {
	i := sort.Search(len(ids), func(i int) bool { return ids[i] >= id })
	return slices.Insert(ids, i, id)
}

// sortedSet flattens a set into an ascending slice.
func sortedSet(s mapset.Set[NodeID]) []NodeID {
	ids := s.ToSlice()
	slices.Sort(ids)
	return ids
}
