package opcode

import (
	"github.com/ezrec/gtac/graph"
	"github.com/ezrec/gtac/regfile"
)

// Marker is a label (LBL) or subroutine (SBR) marker. It does nothing; its
// position in the program is its address.
type Marker struct {
	base
	Label string
}

// Detached is true for subroutines, which are only entered by CALL.
func (op *Marker) Detached() bool {
	return op.kind == OP_SBR
}

func newMarker(ctx *Context, kind Kind, label string) *Marker {
	op := &Marker{base: newBase(ctx, kind), Label: label}
	node := ctx.Graph.NewNode(op.name + ":" + label)
	op.wrap(Unit{Entry: node, Exit: node})
	return op
}

// NewLbl builds LBL name.
func NewLbl(ctx *Context, args []Operand) (Opcode, error) {
	return newMarker(ctx, OP_LBL, args[0].Word), nil
}

// NewSbr builds SBR name.
func NewSbr(ctx *Context, args []Operand) (Opcode, error) {
	return newMarker(ctx, OP_SBR, args[0].Word), nil
}

// Call pushes the program counter and jumps to a subroutine.
//
// The exit node is only reached from the dispatch edges of the RET of the
// callee, when the popped program counter equals this call's address.
type Call struct {
	base
	Callee string
	Push   graph.NodeID // Node pushing the program counter.
}

// NewCall builds CALL name.
func NewCall(ctx *Context, args []Operand) (Opcode, error) {
	op := &Call{base: newBase(ctx, OP_CALL), Callee: args[0].Word}

	g := ctx.Graph

	entry := g.NewNode(op.name)
	op.Push = g.NewNode(op.name+".push", ctx.Stack.Push(ctx.PC)...)
	overflow := g.NewNode(op.name+".overflow", graph.SetBit(ctx.FaultStack, true))
	exit := g.NewNode(op.name + ".resume")

	g.Connect(entry, op.Push, graph.When(graph.IntIs(ctx.Stack.Last(), regfile.STACK_EMPTY)))
	g.Connect(entry, overflow, nil)

	op.wrap(Unit{Entry: entry, Exit: exit})

	return op, nil
}

// Link wires the push node to the subroutine.
func (op *Call) Link(ln Linker, index int) (err error) {
	target, err := ln.Subroutine(op.Callee)
	if err != nil {
		return
	}

	op.ctx.jump(op.Push, ln, target)

	return
}

// Return pops the program counter, then dispatches on it to the call site
// it came from. There is no indirect jump, so every call site of the
// enclosing subroutine gets its own guarded edge.
type Return struct {
	base
	Sites []int // Call sites dispatched to, once linked.
}

// NewRet builds RET.
func NewRet(ctx *Context, args []Operand) (Opcode, error) {
	op := &Return{base: newBase(ctx, OP_RET)}

	node := ctx.Graph.NewNode(op.name, ctx.Stack.Pop(ctx.PC)...)
	op.wrap(Unit{Entry: node, Exit: node})

	return op, nil
}

func (op *Return) Terminal() bool {
	return true
}

// Link adds one dispatch edge per call site of the enclosing subroutine.
func (op *Return) Link(ln Linker, index int) (err error) {
	name, ok := ln.Enclosing(index)
	if !ok {
		err = ErrReturnOrphan
		return
	}

	op.Sites = ln.CallSites(name)
	for _, site := range op.Sites {
		op.ctx.Graph.Connect(op.exit, ln.Opcode(site).Exit(), graph.When(graph.IntIs(op.ctx.PC, site)))
	}

	return
}

// Halt stops the automaton: its node has no way out.
type Halt struct {
	base
}

// NewHlt builds HLT.
func NewHlt(ctx *Context, args []Operand) (Opcode, error) {
	op := &Halt{base: newBase(ctx, OP_HLT)}
	node := ctx.Graph.NewNode(op.name)
	op.wrap(Unit{Entry: node, Exit: node})
	return op, nil
}

func (op *Halt) Terminal() bool {
	return true
}

// NewNop builds NOP [ticks]. Without a tick count it is a single node,
// otherwise the automaton dwells in the entry node for ticks ticks.
func NewNop(ctx *Context, args []Operand) (Opcode, error) {
	ticks := 0
	if len(args) > 0 {
		ticks = args[0].Value
	}
	if ticks < 0 {
		return nil, ErrOperand
	}

	return newSimple(ctx, OP_NOP, func(name string) Unit {
		g := ctx.Graph
		entry := g.NewNode(name)
		if ticks == 0 {
			return Unit{Entry: entry, Exit: entry}
		}
		exit := g.NewNode(name + ".exit")
		g.Delay(entry, exit, ticks)
		return Unit{Entry: entry, Exit: exit}
	}), nil
}
