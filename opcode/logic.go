package opcode

import (
	"fmt"

	"github.com/ezrec/gtac/graph"
	"github.com/ezrec/gtac/regfile"
)

// HalfAdder builds a subgraph computing sum = a XOR b and carry = a AND b.
//
// The entry node has four mutually exclusive guarded edges, one per row of
// the truth table, each leading to a node that sets sum and carry. All four
// merge at the exit node.
func HalfAdder(ctx *Context, name string, a, b graph.Bit, sum, carry graph.Bit) Unit {
	g := ctx.Graph

	entry := g.NewNode(name + ".ha")

	var rows []graph.NodeID
	for _, va := range []bool{false, true} {
		for _, vb := range []bool{false, true} {
			row := g.NewNode(fmt.Sprintf("%s.ha.%v%v", name, digit(va), digit(vb)),
				graph.SetBit(sum, va != vb),
				graph.SetBit(carry, va && vb),
			)
			g.Connect(entry, row, graph.When(graph.BitIs(a, va), graph.BitIs(b, vb)))
			rows = append(rows, row)
		}
	}

	exit := g.NewNode(name + ".ha.exit")
	for _, row := range rows {
		g.Connect(row, exit, nil)
	}

	return Unit{Entry: entry, Exit: exit}
}

// FullAdder builds a subgraph computing sum and cout of a + b + cin, as two
// chained half adders whose carries are or'ed together.
func FullAdder(ctx *Context, name string, a, b, cin graph.Bit, sum, cout graph.Bit) Unit {
	s, release := ctx.enter(OP_FULL_ADDER)
	defer release()

	g := ctx.Graph

	s1 := s.Bit("s1")
	c1 := s.Bit("c1")
	c2 := s.Bit("c2")

	h1 := HalfAdder(ctx, name+".h1", a, b, s1, c1)
	h2 := HalfAdder(ctx, name+".h2", s1, cin, sum, c2)
	or := orBits(ctx, name, c1, c2, cout)

	g.Connect(h1.Exit, h2.Entry, nil)
	g.Connect(h2.Exit, or.Entry, nil)

	return Unit{Entry: h1.Entry, Exit: or.Exit}
}

// orBits sets out to a OR b.
func orBits(ctx *Context, name string, a, b graph.Bit, out graph.Bit) Unit {
	g := ctx.Graph

	entry := g.NewNode(name + ".or")
	one := g.NewNode(name+".or.1", graph.SetBit(out, true))
	zero := g.NewNode(name+".or.0", graph.SetBit(out, false))
	exit := g.NewNode(name + ".or.exit")

	g.Connect(entry, one, graph.Either(
		graph.Clause{graph.BitIs(a, true)},
		graph.Clause{graph.BitIs(b, true)},
	))
	g.Connect(entry, zero, nil)
	g.Connect(one, exit, nil)
	g.Connect(zero, exit, nil)

	return Unit{Entry: entry, Exit: exit}
}

// invert remaps every bit of src into dst, 0 to 1 and 1 to 0. src and dst
// may be the same register.
func invert(ctx *Context, name string, src, dst *regfile.Register) Unit {
	g := ctx.Graph

	entry := graph.NONE
	var tails []graph.NodeID
	for i := range ctx.Depth() {
		test := g.NewNode(fmt.Sprintf("%s.flip[%d]", name, i))
		if entry == graph.NONE {
			entry = test
		}
		for _, tail := range tails {
			g.Connect(tail, test, nil)
		}

		toZero := g.NewNode(fmt.Sprintf("%s.flip[%d].0", name, i), graph.SetBit(dst.Bit(i), false))
		toOne := g.NewNode(fmt.Sprintf("%s.flip[%d].1", name, i), graph.SetBit(dst.Bit(i), true))
		g.Connect(test, toZero, graph.When(graph.BitIs(src.Bit(i), true)))
		g.Connect(test, toOne, nil)

		tails = []graph.NodeID{toZero, toOne}
	}

	exit := g.NewNode(name + ".flip.exit")
	if entry == graph.NONE {
		entry = exit
	}
	for _, tail := range tails {
		g.Connect(tail, exit, nil)
	}

	return Unit{Entry: entry, Exit: exit}
}

func digit(v bool) int {
	if v {
		return 1
	}
	return 0
}
