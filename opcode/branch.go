package opcode

import (
	"fmt"

	"github.com/ezrec/gtac/graph"
	"github.com/ezrec/gtac/regfile"
)

// compare scans x and y from the most significant bit down. The first bit
// that differs decides between gt and lt; if none differ the scan falls
// through to eq. The comparison is unsigned. It returns the first scan node.
func compare(ctx *Context, name string, x, y *regfile.Register, gt, lt, eq graph.NodeID) (entry graph.NodeID) {
	g := ctx.Graph

	entry = graph.NONE
	prev := graph.NONE
	for i := ctx.Depth() - 1; i >= 0; i-- {
		node := g.NewNode(fmt.Sprintf("%s.cmp[%d]", name, i))
		if prev == graph.NONE {
			entry = node
		} else {
			g.Connect(prev, node, nil)
		}

		g.Connect(node, gt, graph.When(graph.BitIs(x.Bit(i), true), graph.BitIs(y.Bit(i), false)))
		g.Connect(node, lt, graph.When(graph.BitIs(x.Bit(i), false), graph.BitIs(y.Bit(i), true)))

		prev = node
	}

	if prev == graph.NONE {
		return eq
	}
	g.Connect(prev, eq, nil)

	return
}

// Branch is a jump. Its away node is wired to the target label at link time;
// its exit falls through to the next instruction.
type Branch struct {
	base
	Target string       // Label to jump to.
	Away   graph.NodeID // Node taking the jump.
}

// Link wires the away node to the target label.
func (op *Branch) Link(ln Linker, index int) (err error) {
	target, err := ln.Label(op.Target)
	if err != nil {
		return
	}

	op.ctx.jump(op.Away, ln, target)

	return
}

// Terminal is true for an unconditional jump.
func (op *Branch) Terminal() bool {
	return op.kind == OP_JMP
}

// outcome is which comparison results take the jump.
type outcome struct {
	gt, lt, eq bool
}

var branchOutcome = map[Kind]outcome{
	OP_JEQ: {eq: true},
	OP_JNE: {gt: true, lt: true},
	OP_JLT: {lt: true},
	OP_JLE: {lt: true, eq: true},
	OP_JGE: {gt: true, eq: true},
	OP_JGT: {gt: true},
}

func newCompareBranch(ctx *Context, kind Kind, args []Operand) (Opcode, error) {
	a, b, target := ctx.reg(args[0]), ctx.reg(args[1]), args[2].Word
	taken := branchOutcome[kind]

	op := &Branch{base: newBase(ctx, kind), Target: target}

	g := ctx.Graph
	op.Away = g.NewNode(op.name + ".away")
	exit := g.NewNode(op.name + ".exit")

	pick := func(jump bool) graph.NodeID {
		if jump {
			return op.Away
		}
		return exit
	}

	entry := compare(ctx, op.name, a, b, pick(taken.gt), pick(taken.lt), pick(taken.eq))
	op.wrap(Unit{Entry: entry, Exit: exit})

	return op, nil
}

// NewJeq builds JEQ a b label.
func NewJeq(ctx *Context, args []Operand) (Opcode, error) {
	return newCompareBranch(ctx, OP_JEQ, args)
}

// NewJne builds JNE a b label.
func NewJne(ctx *Context, args []Operand) (Opcode, error) {
	return newCompareBranch(ctx, OP_JNE, args)
}

// NewJlt builds JLT a b label.
func NewJlt(ctx *Context, args []Operand) (Opcode, error) {
	return newCompareBranch(ctx, OP_JLT, args)
}

// NewJle builds JLE a b label.
func NewJle(ctx *Context, args []Operand) (Opcode, error) {
	return newCompareBranch(ctx, OP_JLE, args)
}

// NewJge builds JGE a b label.
func NewJge(ctx *Context, args []Operand) (Opcode, error) {
	return newCompareBranch(ctx, OP_JGE, args)
}

// NewJgt builds JGT a b label.
func NewJgt(ctx *Context, args []Operand) (Opcode, error) {
	return newCompareBranch(ctx, OP_JGT, args)
}

// NewJneg builds JNEG a label.
//
// Unlike the compare family, which is unsigned, this tests the two's
// complement sign bit directly, in a single node.
func NewJneg(ctx *Context, args []Operand) (Opcode, error) {
	a, target := ctx.reg(args[0]), args[1].Word

	op := &Branch{base: newBase(ctx, OP_JNEG), Target: target}

	g := ctx.Graph
	entry := g.NewNode(op.name)
	op.Away = g.NewNode(op.name + ".away")
	exit := g.NewNode(op.name + ".exit")

	g.Connect(entry, op.Away, graph.When(graph.BitIs(a.Sign(), true)))
	g.Connect(entry, exit, nil)

	op.wrap(Unit{Entry: entry, Exit: exit})

	return op, nil
}

// NewJmp builds JMP label. The single placeholder node is entry, exit,
// and away node at once.
func NewJmp(ctx *Context, args []Operand) (Opcode, error) {
	op := &Branch{base: newBase(ctx, OP_JMP), Target: args[0].Word}

	node := ctx.Graph.NewNode(op.name)
	op.Away = node
	op.wrap(Unit{Entry: node, Exit: node})

	return op, nil
}
