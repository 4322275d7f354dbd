package compiler

import (
	"log"

	"github.com/ezrec/gtac/graph"
	"github.com/ezrec/gtac/opcode"
)

// linker is the second pass: it wires assembled opcodes together and
// resolves every name they reference.
type linker struct {
	Verbose bool

	prog       *Program
	label      map[string]int   // LBL name to index.
	subroutine map[string]int   // SBR name to index.
	calls      map[string][]int // SBR name to the indexes of its callers.
}

var _ opcode.Linker = (*linker)(nil)

// newLinker runs discovery over the program: every label, subroutine and
// call site is known before any edge is added.
func newLinker(prog *Program) (ln *linker, err error) {
	ln = &linker{
		prog:       prog,
		label:      map[string]int{},
		subroutine: map[string]int{},
		calls:      map[string][]int{},
	}

	for n := range prog.Opcodes {
		op := &prog.Opcodes[n]

		switch inst := op.Op.(type) {
		case *opcode.Marker:
			names := ln.label
			if inst.Kind() == opcode.OP_SBR {
				names = ln.subroutine
			}
			_, ok := names[inst.Label]
			if ok {
				err = &ErrSyntax{LineNo: op.LineNo, Line: op.String(), Err: ErrLabelDuplicate}
				return
			}
			names[inst.Label] = n
		case *opcode.Call:
			ln.calls[inst.Callee] = append(ln.calls[inst.Callee], n)
		}
	}

	return
}

// Label returns the index of LBL name.
func (ln *linker) Label(name string) (index int, err error) {
	index, ok := ln.label[name]
	if !ok {
		err = ErrLabelMissing(name)
	}
	return
}

// Subroutine returns the index of SBR name.
func (ln *linker) Subroutine(name string) (index int, err error) {
	index, ok := ln.subroutine[name]
	if !ok {
		err = ErrSubroutineMissing(name)
	}
	return
}

// Enclosing returns the name of the nearest SBR at or before index.
func (ln *linker) Enclosing(index int) (name string, ok bool) {
	for n := index; n >= 0; n-- {
		marker, is_marker := ln.prog.Opcodes[n].Op.(*opcode.Marker)
		if is_marker && marker.Kind() == opcode.OP_SBR {
			name = marker.Label
			ok = true
			return
		}
	}

	return
}

// CallSites returns the indexes of every CALL name, in program order.
func (ln *linker) CallSites(name string) []int {
	return ln.calls[name]
}

func (ln *linker) Opcode(index int) opcode.Opcode {
	return ln.prog.Opcodes[index].Op
}

// Link adds the fallthrough edges, then runs every opcode's link hook.
func (ln *linker) Link() (err error) {
	prog := ln.prog
	g := prog.Graph

	for n := range prog.Opcodes {
		op := &prog.Opcodes[n]

		if n > 0 {
			prev := prog.Opcodes[n-1].Op
			if !prev.Terminal() && !op.Op.Detached() {
				g.Connect(prev.Exit(), op.Op.Entry(), nil, graph.SetInt(prog.Context.PC, n))
			}
		}

		linkable, ok := op.Op.(opcode.Linkable)
		if !ok {
			continue
		}

		if ln.Verbose {
			log.Printf("link %v: %v", n, op)
		}

		err = linkable.Link(ln, n)
		if err != nil {
			err = &ErrSyntax{LineNo: op.LineNo, Line: op.String(), Err: err}
			return
		}
	}

	if len(prog.Opcodes) > 0 {
		g.Start = prog.Opcodes[0].Op.Entry()
	}

	return
}

// Unreachable returns the instructions whose entry can never be reached
// from the start of the program.
func (ln *linker) Unreachable() (ops []*Opcode) {
	prog := ln.prog

	seen := prog.Graph.Reachable(prog.Graph.Start)
	for n := range prog.Opcodes {
		op := &prog.Opcodes[n]
		if !seen[op.Op.Entry()] {
			ops = append(ops, op)
		}
	}

	return
}
