package opcode

import (
	"fmt"

	"github.com/ezrec/gtac/graph"
	"github.com/ezrec/gtac/regfile"
)

// add builds dest = a + b, modulo 2^depth.
//
// One full adder per bit, run in sequence from the least significant bit.
// The carry out of each adder is copied into the carry in of the next on
// the edge between them, and the sum is copied into dest on exit, so dest
// may alias a or b.
func add(ctx *Context, name string, a, b, dest *regfile.Register) Unit {
	s, release := ctx.enter(OP_ADD)
	defer release()

	g := ctx.Graph

	sum := s.Register("sum")
	carry := s.Bit("carry")
	cout := s.Bit("cout")

	entry := g.NewNode(name+".add", graph.SetBit(carry, false))

	prev := entry
	var writes []graph.Write
	for i := range ctx.Depth() {
		fa := FullAdder(ctx, fmt.Sprintf("%s.add[%d]", name, i), a.Bit(i), b.Bit(i), carry, sum.Bit(i), cout)
		g.Connect(prev, fa.Entry, nil, writes...)
		writes = []graph.Write{graph.CopyBit(carry, cout)}
		prev = fa.Exit
	}

	exit := g.NewNode(name+".add.exit", dest.CopyFrom(sum)...)
	g.Connect(prev, exit, nil, writes...)

	return Unit{Entry: entry, Exit: exit}
}

// complement builds dest = -src in two's complement: flip every bit, then
// add one.
func complement(ctx *Context, name string, src, dest *regfile.Register) Unit {
	s, release := ctx.enter(OP_CPL)
	defer release()

	flipped := s.Register("flip")

	inv := invert(ctx, name, src, flipped)
	inc := add(ctx, name+".inc", flipped, ctx.Registers.Constant(1), dest)
	ctx.Graph.Connect(inv.Exit, inc.Entry, nil)

	return Unit{Entry: inv.Entry, Exit: inc.Exit}
}

// sub builds dest = a - b, modulo 2^depth, as a + complement(b).
func sub(ctx *Context, name string, a, b, dest *regfile.Register) Unit {
	s, release := ctx.enter(OP_SUB)
	defer release()

	negated := s.Register("negated")

	neg := complement(ctx, name+".sub", b, negated)
	sum := add(ctx, name+".sub", a, negated, dest)
	ctx.Graph.Connect(neg.Exit, sum.Entry, nil)

	return Unit{Entry: neg.Entry, Exit: sum.Exit}
}

// NewLd loads a register with a literal or another register, in one node.
//
//	LD dst value
func NewLd(ctx *Context, args []Operand) (Opcode, error) {
	dst, src := args[0].Register, args[1]
	return newSimple(ctx, OP_LD, func(name string) Unit {
		var writes []graph.Write
		if src.Immediate {
			writes = dst.Constant(src.Value)
		} else {
			writes = dst.CopyFrom(src.Register)
		}
		node := ctx.Graph.NewNode(name, writes...)
		return Unit{Entry: node, Exit: node}
	}), nil
}

// NewAdd builds ADD a b dest.
func NewAdd(ctx *Context, args []Operand) (Opcode, error) {
	a, b, dest := ctx.reg(args[0]), ctx.reg(args[1]), args[2].Register
	return newSimple(ctx, OP_ADD, func(name string) Unit {
		return add(ctx, name, a, b, dest)
	}), nil
}

// NewSub builds SUB a b dest.
func NewSub(ctx *Context, args []Operand) (Opcode, error) {
	a, b, dest := ctx.reg(args[0]), ctx.reg(args[1]), args[2].Register
	return newSimple(ctx, OP_SUB, func(name string) Unit {
		return sub(ctx, name, a, b, dest)
	}), nil
}

// NewInc builds INC r, which is ADD r 1 r.
func NewInc(ctx *Context, args []Operand) (Opcode, error) {
	r := args[0].Register
	return newSimple(ctx, OP_INC, func(name string) Unit {
		return add(ctx, name, r, ctx.Registers.Constant(1), r)
	}), nil
}

// NewDec builds DEC r, which is SUB r 1 r.
func NewDec(ctx *Context, args []Operand) (Opcode, error) {
	r := args[0].Register
	return newSimple(ctx, OP_DEC, func(name string) Unit {
		return sub(ctx, name, r, ctx.Registers.Constant(1), r)
	}), nil
}

// NewNeg builds NEG r, negating r in place.
func NewNeg(ctx *Context, args []Operand) (Opcode, error) {
	r := args[0].Register
	return newSimple(ctx, OP_NEG, func(name string) Unit {
		return complement(ctx, name, r, r)
	}), nil
}

// NewCpl builds CPL src dest, the two's complement of src.
func NewCpl(ctx *Context, args []Operand) (Opcode, error) {
	src, dest := ctx.reg(args[0]), args[1].Register
	return newSimple(ctx, OP_CPL, func(name string) Unit {
		return complement(ctx, name, src, dest)
	}), nil
}

// NewFlip builds FLIP r, the bitwise complement of r in place.
func NewFlip(ctx *Context, args []Operand) (Opcode, error) {
	r := args[0].Register
	return newSimple(ctx, OP_FLIP, func(name string) Unit {
		return invert(ctx, name, r, r)
	}), nil
}
