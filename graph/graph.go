// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package graph

import (
	"iter"
)

// Bit is the index of a boolean state variable.
type Bit int

// Int is the index of an integer state variable.
type Int int

// NodeID is the index of a node in a Graph.
type NodeID int

// NONE is the NodeID of no node at all.
const NONE = NodeID(-1)

//go:generate go tool stringer -linecomment -type=WriteOp

// WriteOp is the kind of a state write.
type WriteOp int

const (
	WRITE_SET_BIT  = WriteOp(0) // set
	WRITE_COPY_BIT = WriteOp(1) // copy
	WRITE_SET_INT  = WriteOp(2) // iset
	WRITE_COPY_INT = WriteOp(3) // icopy
)

// Write is a single deterministic state write.
type Write struct {
	Op    WriteOp
	Dst   int // Destination Bit or Int.
	Src   int // Source Bit or Int, for copies.
	Value int // Value, for sets.
}

// SetBit writes a constant to a bit.
func SetBit(dst Bit, value bool) Write {
	v := 0
	if value {
		v = 1
	}
	return Write{Op: WRITE_SET_BIT, Dst: int(dst), Value: v}
}

// CopyBit copies one bit to another.
func CopyBit(dst, src Bit) Write {
	return Write{Op: WRITE_COPY_BIT, Dst: int(dst), Src: int(src)}
}

// SetInt writes a constant to an integer.
func SetInt(dst Int, value int) Write {
	return Write{Op: WRITE_SET_INT, Dst: int(dst), Value: value}
}

// CopyInt copies one integer to another.
func CopyInt(dst, src Int) Write {
	return Write{Op: WRITE_COPY_INT, Dst: int(dst), Src: int(src)}
}

// Edge is an outgoing transition of a node.
type Edge struct {
	To     NodeID  // Target node.
	Guard  Guard   // Guard, or nil for an automatic edge.
	Dwell  int     // Ticks the source must be active before an automatic edge fires.
	Writes []Write // Writes applied as the edge fires.
}

// Automatic returns true if the edge has no guard.
func (e *Edge) Automatic() bool {
	return len(e.Guard) == 0
}

// Node is an atomic state of the automaton.
type Node struct {
	Name   string  // Diagnostic name.
	Writes []Write // Writes applied on entry.
	Edges  []Edge  // Outgoing edges, in insertion order.
}

// Variable is a named state variable with its initial value.
type Variable struct {
	Name string
	Init int
}

// Graph is a guarded-transition automaton under construction.
//
// A Graph holds no maps or pointers, so two graphs built from the same
// source compare equal with reflect.DeepEqual.
type Graph struct {
	Nodes []Node     // Node arena.
	Bits  []Variable // Boolean variables.
	Ints  []Variable // Integer variables.
	Start NodeID     // Initial node.
}

// New creates an empty graph.
func New() (g *Graph) {
	g = &Graph{
		Start: NONE,
	}

	return
}

// NewBit allocates a boolean variable.
func (g *Graph) NewBit(name string, init bool) Bit {
	v := 0
	if init {
		v = 1
	}
	g.Bits = append(g.Bits, Variable{Name: name, Init: v})
	return Bit(len(g.Bits) - 1)
}

// NewInt allocates an integer variable.
func (g *Graph) NewInt(name string, init int) Int {
	g.Ints = append(g.Ints, Variable{Name: name, Init: init})
	return Int(len(g.Ints) - 1)
}

// NewNode adds a node that performs writes on entry.
func (g *Graph) NewNode(name string, writes ...Write) NodeID {
	g.Nodes = append(g.Nodes, Node{Name: name, Writes: writes})
	return NodeID(len(g.Nodes) - 1)
}

// Node returns a node by id.
func (g *Graph) Node(id NodeID) *Node {
	return &g.Nodes[id]
}

// Write appends entry writes to a node.
func (g *Graph) Write(id NodeID, writes ...Write) {
	node := &g.Nodes[id]
	node.Writes = append(node.Writes, writes...)
}

// Connect adds an edge. A nil guard makes it an automatic edge.
func (g *Graph) Connect(from, to NodeID, guard Guard, writes ...Write) {
	node := &g.Nodes[from]
	node.Edges = append(node.Edges, Edge{To: to, Guard: guard, Writes: writes})
}

// Delay adds an automatic edge that fires once the source node has been
// active for ticks ticks.
func (g *Graph) Delay(from, to NodeID, ticks int) {
	node := &g.Nodes[from]
	node.Edges = append(node.Edges, Edge{To: to, Dwell: ticks})
}

// Edges returns the number of edges in the graph.
func (g *Graph) Edges() (count int) {
	for n := range g.Nodes {
		count += len(g.Nodes[n].Edges)
	}
	return
}

// Successors iterates over the distinct targets of a node's edges.
func (g *Graph) Successors(id NodeID) iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		seen := map[NodeID]bool{}
		for _, edge := range g.Nodes[id].Edges {
			if seen[edge.To] {
				continue
			}
			seen[edge.To] = true
			if !yield(edge.To) {
				return
			}
		}
	}
}

// Reachable returns the set of nodes reachable from a node, itself included.
func (g *Graph) Reachable(from NodeID) (seen []bool) {
	seen = make([]bool, len(g.Nodes))
	if from == NONE {
		return
	}

	work := []NodeID{from}
	seen[from] = true
	for len(work) > 0 {
		id := work[len(work)-1]
		work = work[:len(work)-1]
		for to := range g.Successors(id) {
			if !seen[to] {
				seen[to] = true
				work = append(work, to)
			}
		}
	}

	return
}
