package opcode

import (
	"github.com/ezrec/gtac/graph"
	"github.com/ezrec/gtac/regfile"
)

// shift moves reg by amount bits through a buffer register; vacated bits
// are cleared. kind is OP_SHL or OP_SHR.
func shift(ctx *Context, name string, kind Kind, reg *regfile.Register, amount int) Unit {
	s, release := ctx.enter(kind)
	defer release()

	g := ctx.Graph

	buffer := s.Register("buffer")

	load := g.NewNode(name+".buffer", buffer.CopyFrom(reg)...)

	var writes []graph.Write
	for i := range ctx.Depth() {
		from := i - amount
		if kind == OP_SHR {
			from = i + amount
		}
		if from < 0 || from >= ctx.Depth() {
			writes = append(writes, graph.SetBit(reg.Bit(i), false))
		} else {
			writes = append(writes, graph.CopyBit(reg.Bit(i), buffer.Bit(from)))
		}
	}
	store := g.NewNode(name+"."+kind.String(), writes...)

	g.Connect(load, store, nil)

	return Unit{Entry: load, Exit: store}
}

func newShift(ctx *Context, kind Kind, args []Operand) (Opcode, error) {
	r := args[0].Register
	amount := 1
	if len(args) > 1 {
		amount = args[1].Value
	}
	if amount < 0 {
		return nil, ErrOperand
	}

	return newSimple(ctx, kind, func(name string) Unit {
		return shift(ctx, name, kind, r, amount)
	}), nil
}

// NewShl builds SHL r [amount].
func NewShl(ctx *Context, args []Operand) (Opcode, error) {
	return newShift(ctx, OP_SHL, args)
}

// NewShr builds SHR r [amount].
func NewShr(ctx *Context, args []Operand) (Opcode, error) {
	return newShift(ctx, OP_SHR, args)
}
