package opcode

import (
	"fmt"

	"github.com/ezrec/gtac/graph"
	"github.com/ezrec/gtac/regfile"
)

// Scratch is the block of internal registers owned by one opcode kind.
//
// There is exactly one block per kind, shared by every instance of that
// kind. This is only sound while at most one instance of the kind is in
// flight, which the single active state guarantees at run time and
// Context.enter guarantees while building.
type Scratch struct {
	Kind Kind

	ctx  *Context
	bit  map[string]graph.Bit
	busy bool
}

func (s *Scratch) prefix() string {
	return regfile.SCRATCH_PREFIX + s.Kind.String() + "."
}

// Register returns a scratch register of the block.
func (s *Scratch) Register(name string) *regfile.Register {
	return s.ctx.Registers.Create(s.prefix() + name)
}

// Bit returns a single scratch bit of the block.
func (s *Scratch) Bit(name string) (b graph.Bit) {
	b, ok := s.bit[name]
	if !ok {
		b = s.ctx.Graph.NewBit(s.prefix()+name, false)
		s.bit[name] = b
	}
	return
}

// Context carries everything opcode constructors build into.
type Context struct {
	Graph     *graph.Graph   // Automaton under construction.
	Registers *regfile.File  // Register file.
	Stack     *regfile.Stack // Call stack.
	PC        graph.Int      // Program counter.

	FaultStack  graph.Bit // Set when a call overflows the stack.
	FaultDivide graph.Bit // Set on division by zero.

	scratch  map[Kind]*Scratch
	instance map[Kind]int
}

// NewContext creates a build context for registers of depth bits and a
// call stack of stackSize slots.
func NewContext(depth int, stackSize int) (ctx *Context) {
	g := graph.New()

	ctx = &Context{
		Graph:     g,
		Registers: regfile.New(g, depth),
		PC:        g.NewInt(regfile.SCRATCH_PREFIX+"pc", 0),
		scratch:   map[Kind]*Scratch{},
		instance:  map[Kind]int{},
	}
	ctx.Stack = regfile.NewStack(g, stackSize)
	ctx.FaultStack = g.NewBit(regfile.SCRATCH_PREFIX+"fault.stack", false)
	ctx.FaultDivide = g.NewBit(regfile.SCRATCH_PREFIX+"fault.divide", false)

	return
}

// Depth returns the register width.
func (ctx *Context) Depth() int {
	return ctx.Registers.Depth
}

// Scratch returns the scratch block of a kind, allocating it once.
func (ctx *Context) Scratch(kind Kind) (s *Scratch) {
	s, ok := ctx.scratch[kind]
	if !ok {
		s = &Scratch{
			Kind: kind,
			ctx:  ctx,
			bit:  map[string]graph.Bit{},
		}
		ctx.scratch[kind] = s
	}
	return
}

// Busy returns true while a builder of the kind is constructing.
func (ctx *Context) Busy(kind Kind) bool {
	s, ok := ctx.scratch[kind]
	return ok && s.busy
}

// enter claims the scratch block of a kind for the duration of a build.
func (ctx *Context) enter(kind Kind) (s *Scratch, release func()) {
	s = ctx.Scratch(kind)
	if s.busy {
		panic(ErrReentrant(kind))
	}
	s.busy = true
	release = func() { s.busy = false }
	return
}

// name returns a unique, deterministic instance name for diagnostics.
func (ctx *Context) name(kind Kind) string {
	n := ctx.instance[kind]
	ctx.instance[kind] = n + 1
	return fmt.Sprintf("%v#%d", kind, n)
}

// reg returns the register holding an operand, materializing literals as
// constant registers.
func (ctx *Context) reg(arg Operand) *regfile.Register {
	if arg.Immediate {
		return ctx.Registers.Constant(arg.Value)
	}
	return arg.Register
}

// jump wires a node to the entry of the opcode at index, writing the index
// into the program counter on the way.
func (ctx *Context) jump(from graph.NodeID, ln Linker, index int) {
	ctx.Graph.Connect(from, ln.Opcode(index).Entry(), nil, graph.SetInt(ctx.PC, index))
}
