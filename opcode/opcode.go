package opcode

import (
	"github.com/ezrec/gtac/graph"
	"github.com/ezrec/gtac/regfile"
)

// Unit is a subgraph with one entry node and one exit node.
type Unit struct {
	Entry graph.NodeID
	Exit  graph.NodeID
}

// Opcode is a compiled instruction.
type Opcode interface {
	Kind() Kind
	Name() string        // Unique instance name.
	Entry() graph.NodeID // Single entry node.
	Exit() graph.NodeID  // Single exit node.
	Detached() bool      // Not entered by falling through from its predecessor.
	Terminal() bool      // Its exit never falls through to its successor.
}

// Linkable opcodes resolve names once every opcode has an address.
type Linkable interface {
	Link(ln Linker, index int) error
}

// Linker is the view of the whole program available while linking.
type Linker interface {
	Label(name string) (index int, err error)      // Index of LBL name.
	Subroutine(name string) (index int, err error) // Index of SBR name.
	Enclosing(index int) (name string, ok bool)    // Nearest SBR at or before index.
	CallSites(name string) []int                   // Indexes of every CALL name.
	Opcode(index int) Opcode
}

// Operand is a bound instruction argument.
type Operand struct {
	Word      string            // Source text.
	Register  *regfile.Register // Bound register, if not a literal.
	Value     int               // Literal value.
	Immediate bool              // Set if the operand is a literal.
}

// base implements the common parts of Opcode.
type base struct {
	ctx   *Context
	kind  Kind
	name  string
	entry graph.NodeID
	exit  graph.NodeID
}

func newBase(ctx *Context, kind Kind) base {
	return base{
		ctx:   ctx,
		kind:  kind,
		name:  ctx.name(kind),
		entry: graph.NONE,
		exit:  graph.NONE,
	}
}

func (op *base) wrap(unit Unit) {
	op.entry = unit.Entry
	op.exit = unit.Exit
}

func (op *base) Kind() Kind {
	return op.kind
}

func (op *base) Name() string {
	return op.name
}

func (op *base) Entry() graph.NodeID {
	return op.entry
}

func (op *base) Exit() graph.NodeID {
	return op.exit
}

func (op *base) Detached() bool {
	return false
}

func (op *base) Terminal() bool {
	return false
}

// Simple is an opcode whose whole behavior lives in its subgraph.
type Simple struct {
	base
}

func newSimple(ctx *Context, kind Kind, build func(name string) Unit) *Simple {
	op := &Simple{base: newBase(ctx, kind)}
	op.wrap(build(op.name))
	return op
}
