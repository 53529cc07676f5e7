package graph

import (
	"errors"
	"fmt"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
)

// Graph is an arena of nodes, pins and links addressed by ID. IDs are issued
// monotonically and never reused, so a stale ID held by the host can never
// alias a newer record; lookups on removed IDs simply miss.
//
// Graph is NOT safe for concurrent mutation. One writer at a time; any
// number of readers while no writer is active.
type Graph struct {
	nodes map[NodeID]*Node
	pins  map[PinID]*Pin
	links map[LinkID]*Link

	inputLink   map[PinID]LinkID   // input pin -> the single link feeding it
	outputLinks map[PinID][]LinkID // output pin -> fan-out links, creation order

	nodeOrder []NodeID // creation order, ascending IDs

	nextNode NodeID
	nextPin  PinID
	nextLink LinkID
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes:       make(map[NodeID]*Node),
		pins:        make(map[PinID]*Pin),
		links:       make(map[LinkID]*Link),
		inputLink:   make(map[PinID]LinkID),
		outputLinks: make(map[PinID][]LinkID),
	}
}

// AddNode instantiates def and returns the new node's ID. It always succeeds
// and touches nothing else in the graph.
func (g *Graph) AddNode(def Definition) NodeID {
	g.nextNode++
	id := g.nextNode

	name := def.Name
	if name == "" {
		name = def.Kind
	}

	n := &Node{
		ID:       id,
		Name:     name,
		Category: def.Category,
		Kind:     def.Kind,
		params:   newParamBag(),
	}

	for i, pd := range def.Inputs {
		n.Inputs = append(n.Inputs, g.addPin(id, PinInput, pd, i))
	}
	for i, pd := range def.Outputs {
		n.Outputs = append(n.Outputs, g.addPin(id, PinOutput, pd, i))
	}

	// Defaults land in the bag without moving the param version; a fresh
	// node always starts at version 0.
	for key, v := range def.Defaults {
		n.params.set(key, v)
	}

	g.nodes[id] = n
	g.nodeOrder = append(g.nodeOrder, id)
	return id
}

func (g *Graph) addPin(owner NodeID, kind PinKind, def PinDef, index int) PinID {
	g.nextPin++
	p := &Pin{
		ID:    g.nextPin,
		Node:  owner,
		Kind:  kind,
		Type:  def.Type,
		Index: index,
		Name:  def.Name,
	}
	g.pins[p.ID] = p
	return p.ID
}

// RemoveNode removes a node, its pins, and every link touching those pins.
// No dangling link ever survives.
func (g *Graph) RemoveNode(id NodeID) error {
	n, ok := g.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrMissingNode, id)
	}

	for _, pid := range n.Inputs {
		if lid, ok := g.inputLink[pid]; ok {
			g.unlink(g.links[lid])
		}
		delete(g.pins, pid)
	}
	for _, pid := range n.Outputs {
		for _, lid := range slices.Clone(g.outputLinks[pid]) {
			g.unlink(g.links[lid])
		}
		delete(g.outputLinks, pid)
		delete(g.pins, pid)
	}

	delete(g.nodes, id)
	if i := slices.Index(g.nodeOrder, id); i >= 0 {
		g.nodeOrder = slices.Delete(g.nodeOrder, i, i+1)
	}
	return nil
}

// SetParam stores value under key on the node and bumps its param version.
// The version moves on every call, also when the stored value is unchanged.
func (g *Graph) SetParam(id NodeID, key string, value Value) error {
	n, ok := g.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrMissingNode, id)
	}
	n.params.set(key, value)
	n.paramVersion++
	return nil
}

// AddLink connects an output pin to an input pin. The input must be free;
// editors disconnect first and reconnect after. Cycles are not checked here,
// DependencyOrder and Validate report them.
func (g *Graph) AddLink(from, to PinID) (LinkID, error) {
	src, ok := g.pins[from]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingPin, from)
	}
	dst, ok := g.pins[to]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingPin, to)
	}
	if src.Kind != PinOutput {
		return 0, fmt.Errorf("%w: %s is an %s pin, want output", ErrPinKind, from, src.Kind)
	}
	if dst.Kind != PinInput {
		return 0, fmt.Errorf("%w: %s is an %s pin, want input", ErrPinKind, to, dst.Kind)
	}
	if !src.Type.CompatibleWith(dst.Type) {
		return 0, fmt.Errorf("%w: cannot connect %s to %s", ErrTypeMismatch, src.Type, dst.Type)
	}
	if lid, ok := g.inputLink[to]; ok {
		return 0, fmt.Errorf("%w: %s is fed by link %s", ErrInputOccupied, to, lid)
	}

	g.nextLink++
	l := &Link{ID: g.nextLink, From: from, To: to}
	g.links[l.ID] = l
	g.inputLink[to] = l.ID
	g.outputLinks[from] = append(g.outputLinks[from], l.ID)
	return l.ID, nil
}

// RemoveLink disconnects a link.
func (g *Graph) RemoveLink(id LinkID) error {
	l, ok := g.links[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrMissingLink, id)
	}
	g.unlink(l)
	return nil
}

func (g *Graph) unlink(l *Link) {
	delete(g.links, l.ID)
	delete(g.inputLink, l.To)
	outs := g.outputLinks[l.From]
	if i := slices.Index(outs, l.ID); i >= 0 {
		g.outputLinks[l.From] = slices.Delete(outs, i, i+1)
	}
}

// Node looks up a node by ID.
func (g *Graph) Node(id NodeID) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Pin looks up a pin by ID.
func (g *Graph) Pin(id PinID) (*Pin, bool) {
	p, ok := g.pins[id]
	return p, ok
}

// Link looks up a link by ID.
func (g *Graph) Link(id LinkID) (*Link, bool) {
	l, ok := g.links[id]
	return l, ok
}

// IncomingLink returns the link feeding an input pin, if connected.
func (g *Graph) IncomingLink(pin PinID) (*Link, bool) {
	lid, ok := g.inputLink[pin]
	if !ok {
		return nil, false
	}
	return g.links[lid], true
}

// NodeIDs returns every node ID in creation order, which is ascending.
func (g *Graph) NodeIDs() []NodeID {
	return slices.Clone(g.nodeOrder)
}

// Len reports the node count.
func (g *Graph) Len() int { return len(g.nodes) }

// UpstreamNodes returns the distinct nodes whose outputs feed id's inputs.
// Unknown IDs yield an empty set.
func (g *Graph) UpstreamNodes(id NodeID) mapset.Set[NodeID] {
	ups := mapset.NewThreadUnsafeSet[NodeID]()
	n, ok := g.nodes[id]
	if !ok {
		return ups
	}
	for _, pid := range n.Inputs {
		lid, ok := g.inputLink[pid]
		if !ok {
			continue
		}
		src := g.pins[g.links[lid].From]
		ups.Add(src.Node)
	}
	return ups
}

// DownstreamNodes returns the distinct nodes consuming id's outputs. Editors
// use it to decide what turned stale after an edit.
func (g *Graph) DownstreamNodes(id NodeID) mapset.Set[NodeID] {
	downs := mapset.NewThreadUnsafeSet[NodeID]()
	n, ok := g.nodes[id]
	if !ok {
		return downs
	}
	for _, pid := range n.Outputs {
		for _, lid := range g.outputLinks[pid] {
			dst := g.pins[g.links[lid].To]
			downs.Add(dst.Node)
		}
	}
	return downs
}

// Sentinel errors for common failure cases.
var (
	ErrMissingNode   = errors.New("node not found")
	ErrMissingPin    = errors.New("pin not found")
	ErrMissingLink   = errors.New("link not found")
	ErrPinKind       = errors.New("wrong pin kind")
	ErrTypeMismatch  = errors.New("pin type mismatch")
	ErrInputOccupied = errors.New("input pin already connected")
	ErrCycleDetected = errors.New("cycle detected in graph")
)
