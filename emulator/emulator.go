// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator runs a compiled automaton one tick at a time.
package emulator

import (
	"fmt"
	"iter"
	"log"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"

	"github.com/ezrec/gtac/compiler"
	"github.com/ezrec/gtac/graph"
	"github.com/ezrec/gtac/internal"
	"github.com/ezrec/gtac/regfile"
)

// Emulator state: the program and its single active node.
type Emulator struct {
	Verbose bool              // If set, logs every transition.
	Program *compiler.Program // Program being run.
	State   *graph.State      // Shared register file.

	node  graph.NodeID
	dwell int
	ticks int
}

// NewEmulator creates an emulator for a program, reset to its start.
func NewEmulator(prog *compiler.Program) (emu *Emulator) {
	emu = &Emulator{
		Program: prog,
	}

	emu.Reset()

	return
}

// Reset restores every variable to its initial value and activates the
// start node.
func (emu *Emulator) Reset() {
	g := emu.Program.Graph

	emu.State = g.NewState()
	emu.node = g.Start
	emu.dwell = 0
	emu.ticks = 0

	if emu.node != graph.NONE {
		emu.State.Apply(g.Node(emu.node).Writes)
	}
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.ticks
}

// Node returns the active node.
func (emu *Emulator) Node() graph.NodeID {
	return emu.node
}

// Pc returns the program counter.
func (emu *Emulator) Pc() int {
	return emu.State.Ints[emu.Program.Context.PC]
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	op := emu.Program.Debug(emu.Pc())
	if op == nil {
		return 0
	}

	return op.LineNo
}

// Stack returns the occupied call stack slots, top first.
func (emu *Emulator) Stack() (values []int) {
	stack := emu.Program.Context.Stack
	for _, slot := range stack.Slots[:stack.Depth(emu.State)] {
		values = append(values, emu.State.Ints[slot])
	}
	return
}

// fault returns the error flagged by the fault bits, if any.
func (emu *Emulator) fault() (err error) {
	ctx := emu.Program.Context

	switch {
	case emu.State.Bits[ctx.FaultStack]:
		err = ErrStackOverflow
	case emu.State.Bits[ctx.FaultDivide]:
		err = ErrDivideByZero
	}

	return
}

// Tick performs a single tick of the emulator. It returns done once no edge
// can fire, along with any fault that halted the automaton.
func (emu *Emulator) Tick() (done bool, err error) {
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	if emu.node == graph.NONE {
		done = true
		return
	}

	g := emu.Program.Graph

	emu.dwell++
	edge, waiting := emu.State.Select(g.Node(emu.node), emu.dwell)
	if edge == nil && !waiting {
		done = true
		err = emu.fault()
		return
	}

	emu.ticks++
	if edge == nil {
		return
	}

	if emu.Verbose {
		log.Printf("%v: %v -> %v [%v]", emu.ticks, g.Node(emu.node).Name, g.Node(edge.To).Name, edge.Guard)
	}

	emu.State.Apply(edge.Writes)
	emu.node = edge.To
	emu.State.Apply(g.Node(emu.node).Writes)
	emu.dwell = 0

	return
}

// Run ticks until the automaton halts, or until limit ticks have passed.
// A limit of zero or less never stops early.
func (emu *Emulator) Run(limit int) (err error) {
	for n := 0; limit <= 0 || n < limit; n++ {
		var done bool
		done, err = emu.Tick()
		if done || err != nil {
			return
		}
	}

	err = &ErrRuntime{LineNo: emu.LineNo(), Err: ErrTickLimit}

	return
}

// Register returns the unsigned value of a register.
func (emu *Emulator) Register(name string) (value uint, ok bool) {
	reg, ok := emu.Program.Registers.Lookup(name)
	if !ok {
		return
	}

	value = reg.Value(emu.State)

	return
}

// SetRegister stores a value into a register, truncated to its width.
func (emu *Emulator) SetRegister(name string, value int) (err error) {
	reg, ok := emu.Program.Registers.Lookup(name)
	if !ok {
		err = errors.Wrap(ErrRegisterUnknown, name)
		return
	}
	if reg.ReadOnly() {
		err = errors.Wrap(ErrRegisterReadOnly, name)
		return
	}

	reg.Load(emu.State, value)

	return
}

// registers iterates over the user registers, then the scratch registers
// if requested.
func (emu *Emulator) registers(scratch bool) iter.Seq[*regfile.Register] {
	file := emu.Program.Registers
	if !scratch {
		return file.Registers()
	}

	var internals iter.Seq[*regfile.Register] = func(yield func(*regfile.Register) bool) {
		for reg := range file.All() {
			if reg.Scratch() && !yield(reg) {
				return
			}
		}
	}

	return internal.Concat(file.Registers(), internals)
}

// Dump renders the registers as a table.
func (emu *Emulator) Dump(scratch bool) string {
	depth := emu.Program.Registers.Depth

	dump := table.NewWriter()
	dump.SetTitle(fmt.Sprintf("PC %d, tick %d", emu.Pc(), emu.ticks))
	dump.AppendHeader(table.Row{"Register", "Hex", "Unsigned", "Signed"})

	for reg := range emu.registers(scratch) {
		value := reg.Value(emu.State)
		dump.AppendRow(table.Row{reg.Name, fmt.Sprintf("%#x", value), value, regfile.Signed(value, depth)})
	}

	dump.AppendFooter(table.Row{"Stack", fmt.Sprintf("%v", emu.Stack()), "", ""})

	return dump.Render()
}

// String renders the user registers.
func (emu *Emulator) String() string {
	return emu.Dump(false)
}
