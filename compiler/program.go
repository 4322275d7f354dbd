package compiler

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ezrec/gtac/graph"
	"github.com/ezrec/gtac/opcode"
	"github.com/ezrec/gtac/regfile"
)

// Opcode is one assembled instruction.
type Opcode struct {
	LineNo int           // Source line.
	Index  int           // Address, the program counter value while it runs.
	Words  []string      // Source words, after equate substitution.
	Op     opcode.Opcode // Compiled instance.
	Nodes  int           // Number of nodes the instruction allocated.
}

// String returns the source text of the instruction.
func (op *Opcode) String() string {
	return strings.Join(op.Words, " ")
}

// Program is a compiled and linked automaton.
type Program struct {
	Opcodes   []Opcode
	Graph     *graph.Graph
	Registers *regfile.File
	Context   *opcode.Context
	Warnings  []error // Non-fatal diagnostics, each an ErrSyntax.
}

// Debug returns the instruction running while the program counter holds pc,
// or nil if there is none.
func (prog *Program) Debug(pc int) (op *Opcode) {
	if pc < 0 || pc >= len(prog.Opcodes) {
		return
	}

	op = &prog.Opcodes[pc]

	return
}

// Listing renders the program as a table, one row per instruction.
func (prog *Program) Listing() string {
	listing := table.NewWriter()
	listing.SetTitle("Program")
	listing.AppendHeader(table.Row{"PC", "Line", "Source", "Kind", "Entry", "Exit", "Nodes"})

	for n := range prog.Opcodes {
		op := &prog.Opcodes[n]
		listing.AppendRow(table.Row{op.Index, op.LineNo, op.String(), op.Op.Kind(), op.Op.Entry(), op.Op.Exit(), op.Nodes})
	}

	listing.AppendFooter(table.Row{"", "", "", "", "", "Total", len(prog.Graph.Nodes)})

	return listing.Render()
}
