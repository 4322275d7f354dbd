package opcode

import (
	"fmt"

	"github.com/ezrec/gtac/graph"
	"github.com/ezrec/gtac/regfile"
)

const (
	DIV_QUOTIENT  = "$QUO" // Default DIV quotient register.
	DIV_REMAINDER = "$REM" // Default DIV remainder register.
)

// mul builds dest = a * b, modulo 2^depth, by long multiplication: for every
// bit i of b, a shifted left by i is added into an accumulator when b[i] is
// set.
func mul(ctx *Context, name string, a, b, dest *regfile.Register) Unit {
	s, release := ctx.enter(OP_MUL)
	defer release()

	g := ctx.Graph

	acc := s.Register("acc")
	shifted := s.Register("shifted")

	entry := g.NewNode(name+".mul", append(acc.Clear(), shifted.CopyFrom(a)...)...)

	prev := entry
	for i := range ctx.Depth() {
		step := fmt.Sprintf("%s.mul[%d]", name, i)
		test := g.NewNode(step)
		g.Connect(prev, test, nil)

		sum := add(ctx, step, acc, shifted, acc)
		next := shift(ctx, step, OP_SHL, shifted, 1)

		g.Connect(test, sum.Entry, graph.When(graph.BitIs(b.Bit(i), true)))
		g.Connect(test, next.Entry, nil)
		g.Connect(sum.Exit, next.Entry, nil)

		prev = next.Exit
	}

	exit := g.NewNode(name+".mul.exit", dest.CopyFrom(acc)...)
	g.Connect(prev, exit, nil)

	return Unit{Entry: entry, Exit: exit}
}

// div builds quo, rem = a / b, a % b by repeated subtraction.
//
// A zero divisor sets the divide fault bit and halts instead of looping.
func div(ctx *Context, name string, a, b, quo, rem *regfile.Register) Unit {
	s, release := ctx.enter(OP_DIV)
	defer release()

	g := ctx.Graph

	r := s.Register("remainder")
	q := s.Register("quotient")

	entry := g.NewNode(name + ".div")

	var zero graph.Clause
	for i := range ctx.Depth() {
		zero = append(zero, graph.BitIs(b.Bit(i), false))
	}
	fault := g.NewNode(name+".div.zero", graph.SetBit(ctx.FaultDivide, true))
	g.Connect(entry, fault, graph.Guard{zero})

	start := g.NewNode(name+".div.init", append(r.CopyFrom(a), q.Clear()...)...)
	g.Connect(entry, start, nil)

	body := sub(ctx, name+".div", r, b, r)
	count := add(ctx, name+".div.count", q, ctx.Registers.Constant(1), q)
	exit := g.NewNode(name+".div.exit", append(quo.CopyFrom(q), rem.CopyFrom(r)...)...)

	// Keep subtracting while r >= b.
	loop := compare(ctx, name+".div", r, b, body.Entry, exit, body.Entry)

	g.Connect(start, loop, nil)
	g.Connect(body.Exit, count.Entry, nil)
	g.Connect(count.Exit, loop, nil)

	return Unit{Entry: entry, Exit: exit}
}

// NewMul builds MUL a b dest.
func NewMul(ctx *Context, args []Operand) (Opcode, error) {
	a, b, dest := ctx.reg(args[0]), ctx.reg(args[1]), args[2].Register
	return newSimple(ctx, OP_MUL, func(name string) Unit {
		return mul(ctx, name, a, b, dest)
	}), nil
}

// NewDiv builds DIV a b [quo [rem]].
func NewDiv(ctx *Context, args []Operand) (Opcode, error) {
	a, b := ctx.reg(args[0]), ctx.reg(args[1])

	var quo, rem *regfile.Register
	if len(args) > 2 {
		quo = args[2].Register
	} else {
		quo = ctx.Registers.Create(DIV_QUOTIENT)
	}
	if len(args) > 3 {
		rem = args[3].Register
	} else {
		rem = ctx.Registers.Create(DIV_REMAINDER)
	}
	if quo == rem {
		return nil, ErrOperand
	}

	return newSimple(ctx, OP_DIV, func(name string) Unit {
		return div(ctx, name, a, b, quo, rem)
	}), nil
}
