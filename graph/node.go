package graph

// PinKind says which side of its node a pin sits on.
type PinKind uint8

const (
	PinInput PinKind = iota
	PinOutput
)

func (k PinKind) String() string {
	switch k {
	case PinInput:
		return "input"
	case PinOutput:
		return "output"
	default:
		return "unknown"
	}
}

// PinType is the declared payload type of a pin. Links require compatible
// types on both ends.
type PinType uint8

const (
	// TypeAny connects to every other type.
	TypeAny PinType = iota
	TypeMesh
	TypeCurve
	TypePoints
	TypeVolume
	TypeValue
)

func (t PinType) String() string {
	switch t {
	case TypeAny:
		return "any"
	case TypeMesh:
		return "mesh"
	case TypeCurve:
		return "curve"
	case TypePoints:
		return "points"
	case TypeVolume:
		return "volume"
	case TypeValue:
		return "value"
	default:
		return "unknown"
	}
}

// CompatibleWith reports whether a link may connect pins of these two types:
// exact match, or either side is TypeAny.
func (t PinType) CompatibleWith(other PinType) bool {
	return t == other || t == TypeAny || other == TypeAny
}

// Pin is one connection point on a node. Pins are created with their node
// and never change afterwards.
type Pin struct {
	ID    PinID
	Node  NodeID
	Kind  PinKind
	Type  PinType
	Index int // position among the node's pins of the same kind
	Name  string
}

// Link is a directed connection from an output pin to an input pin.
type Link struct {
	ID   LinkID
	From PinID // output pin
	To   PinID // input pin
}

// Node is one operator instance. The pin lists are fixed at creation; Name,
// Category and Kind are plain labels. Parameters live in the bag and are
// written through Graph.SetParam only, which keeps the param version honest.
type Node struct {
	ID       NodeID
	Name     string
	Category string
	Kind     string

	Inputs  []PinID // ordered, fixed arity
	Outputs []PinID // ordered, fixed arity

	params       *ParamBag
	paramVersion uint64
}

// Params is the node's parameter bag, read-only outside this package.
func (n *Node) Params() *ParamBag { return n.params }

// ParamVersion counts SetParam calls against this node. It never decreases
// and never resets.
func (n *Node) ParamVersion() uint64 { return n.paramVersion }

// PinDef declares one pin of a Definition.
type PinDef struct {
	Name string
	Type PinType
}

// Definition describes a node kind: display metadata, pin layout, and
// default parameter values. Graph.AddNode instantiates it; the lathe.Catalog
// registers definitions as an editor's palette.
type Definition struct {
	Kind     string
	Name     string // display name, defaults to Kind
	Category string
	Inputs   []PinDef
	Outputs  []PinDef
	Defaults map[string]Value
}
