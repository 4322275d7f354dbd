// Package compiler assembles gtac source text into a linked automaton.
//
// Compilation runs in two passes. The Assembler expands every instruction
// into a self-contained opcode subgraph with one entry and one exit node,
// binding registers by name as they are first seen. The linker then wires
// each exit to the following entry, resolves label and subroutine names,
// and synthesizes every RET as a dispatch over the call sites of its
// subroutine.
//
// The source language is line oriented:
//
//	# comment
//	.equ NAME value       # constant, usable in $(...) expressions
//	.macro NAME arg...    # macro definition, up to .endm
//	.endm
//	name:                 # shorthand for LBL name
//	;name                 # shorthand for SBR name
//	MNEMONIC arg arg...
//
// Character literals such as 'A' or '\n' are replaced by their value.
// Inside a macro body, arguments are bound as equates and '@' is replaced
// by a prefix unique to each expansion, for local labels.
//
// Execution starts at the first instruction. A program that opens with a
// subroutine starts inside it, and the assembler warns with
// ErrEntryDetached.
package compiler
