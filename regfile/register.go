// Package regfile implements named fixed-width registers and the call stack
// on top of the shared automaton state.
package regfile

import (
	"fmt"
	"iter"
	"strings"

	"github.com/ezrec/gtac/graph"
)

const (
	SCRATCH_PREFIX  = "%" // Prefix of opcode scratch register names.
	CONSTANT_PREFIX = "#" // Prefix of constant register names.
)

// Register is a named, fixed-width bit vector. Bit 0 is the least
// significant bit.
type Register struct {
	Name string
	Bits []graph.Bit
}

// Width returns the number of bits in the register.
func (r *Register) Width() int {
	return len(r.Bits)
}

// Bit returns the i'th bit cell.
func (r *Register) Bit(i int) graph.Bit {
	return r.Bits[i]
}

// Sign returns the most significant bit cell.
func (r *Register) Sign() graph.Bit {
	return r.Bits[len(r.Bits)-1]
}

// Constant returns one set-bit write per bit, loading value truncated to
// the register width.
func (r *Register) Constant(value int) (writes []graph.Write) {
	for i, b := range r.Bits {
		writes = append(writes, graph.SetBit(b, (value>>i)&1 != 0))
	}
	return
}

// Clear returns the writes zeroing the register.
func (r *Register) Clear() []graph.Write {
	return r.Constant(0)
}

// CopyFrom returns one copy-bit write per bit pair.
func (r *Register) CopyFrom(src *Register) (writes []graph.Write) {
	for i, b := range r.Bits {
		writes = append(writes, graph.CopyBit(b, src.Bits[i]))
	}
	return
}

// Value reads the unsigned value of the register from a state.
func (r *Register) Value(st *graph.State) (value uint) {
	for i, b := range r.Bits {
		if st.Bits[b] {
			value |= 1 << i
		}
	}
	return
}

// Load stores a value into the register of a state, truncated to width.
func (r *Register) Load(st *graph.State, value int) {
	for i, b := range r.Bits {
		st.Bits[b] = (value>>i)&1 != 0
	}
}

// Scratch returns true if the register is internal to an opcode kind.
func (r *Register) Scratch() bool {
	return strings.HasPrefix(r.Name, SCRATCH_PREFIX)
}

// ReadOnly returns true if the register is a constant.
func (r *Register) ReadOnly() bool {
	return strings.HasPrefix(r.Name, CONSTANT_PREFIX)
}

// File is the set of registers of a program.
type File struct {
	Depth int // Width of every register.

	graph    *graph.Graph
	register map[string]*Register
	order    []*Register
}

// New creates a register file allocating its bits in g.
func New(g *graph.Graph, depth int) (file *File) {
	file = &File{
		Depth:    depth,
		graph:    g,
		register: map[string]*Register{},
	}

	return
}

// Create returns the register with a name, allocating it on first use.
func (file *File) Create(name string) (reg *Register) {
	return file.create(name, 0)
}

func (file *File) create(name string, init int) (reg *Register) {
	reg, ok := file.register[name]
	if ok {
		return
	}

	reg = &Register{
		Name: name,
		Bits: make([]graph.Bit, file.Depth),
	}
	for i := range reg.Bits {
		reg.Bits[i] = file.graph.NewBit(fmt.Sprintf("%s[%d]", name, i), (init>>i)&1 != 0)
	}

	file.register[name] = reg
	file.order = append(file.order, reg)

	return
}

// Lookup returns a register by name, if it exists.
func (file *File) Lookup(name string) (reg *Register, ok bool) {
	reg, ok = file.register[name]
	return
}

// Constant returns a read-only register initialized to value, truncated to
// the register depth.
func (file *File) Constant(value int) *Register {
	value = Truncate(value, file.Depth)
	return file.create(fmt.Sprintf("%s%d", CONSTANT_PREFIX, value), value)
}

// All iterates over every register in creation order.
func (file *File) All() iter.Seq[*Register] {
	return func(yield func(*Register) bool) {
		for _, reg := range file.order {
			if !yield(reg) {
				return
			}
		}
	}
}

// Registers iterates over the user visible registers in creation order.
func (file *File) Registers() iter.Seq[*Register] {
	return func(yield func(*Register) bool) {
		for reg := range file.All() {
			if reg.Scratch() || reg.ReadOnly() {
				continue
			}
			if !yield(reg) {
				return
			}
		}
	}
}

// Mask returns the largest unsigned value of a register of depth bits.
func Mask(depth int) int {
	return (1 << depth) - 1
}

// Truncate returns the low order depth bits of value.
func Truncate(value int, depth int) int {
	return value & Mask(depth)
}

// Fits returns true if a literal loads into depth bits without loss.
// Negative literals down to -2^(depth-1) load in two's complement.
func Fits(value int, depth int) bool {
	return value <= Mask(depth) && value >= -(1<<(depth-1))
}

// Signed interprets an unsigned register value as two's complement.
func Signed(value uint, depth int) int {
	if value&(1<<(depth-1)) != 0 {
		return int(value) - (1 << depth)
	}
	return int(value)
}
