package opcode

import (
	"maps"
	"slices"
	"strings"
)

// Constructor builds an opcode instance and its subgraph.
type Constructor func(ctx *Context, args []Operand) (Opcode, error)

// Spec describes an assembler mnemonic.
type Spec struct {
	Kind     Kind
	Args     []ArgKind // Argument kinds, in order.
	Required int       // Number of mandatory arguments.
	New      Constructor
}

var specs = []Spec{
	{OP_LD, []ArgKind{ARG_REG, ARG_VALUE}, 2, NewLd},
	{OP_ADD, []ArgKind{ARG_VALUE, ARG_VALUE, ARG_REG}, 3, NewAdd},
	{OP_SUB, []ArgKind{ARG_VALUE, ARG_VALUE, ARG_REG}, 3, NewSub},
	{OP_INC, []ArgKind{ARG_REG}, 1, NewInc},
	{OP_DEC, []ArgKind{ARG_REG}, 1, NewDec},
	{OP_NEG, []ArgKind{ARG_REG}, 1, NewNeg},
	{OP_CPL, []ArgKind{ARG_VALUE, ARG_REG}, 2, NewCpl},
	{OP_FLIP, []ArgKind{ARG_REG}, 1, NewFlip},
	{OP_SHL, []ArgKind{ARG_REG, ARG_COUNT}, 1, NewShl},
	{OP_SHR, []ArgKind{ARG_REG, ARG_COUNT}, 1, NewShr},
	{OP_MUL, []ArgKind{ARG_VALUE, ARG_VALUE, ARG_REG}, 3, NewMul},
	{OP_DIV, []ArgKind{ARG_VALUE, ARG_VALUE, ARG_REG, ARG_REG}, 2, NewDiv},
	{OP_JMP, []ArgKind{ARG_NAME}, 1, NewJmp},
	{OP_JEQ, []ArgKind{ARG_VALUE, ARG_VALUE, ARG_NAME}, 3, NewJeq},
	{OP_JNE, []ArgKind{ARG_VALUE, ARG_VALUE, ARG_NAME}, 3, NewJne},
	{OP_JLT, []ArgKind{ARG_VALUE, ARG_VALUE, ARG_NAME}, 3, NewJlt},
	{OP_JLE, []ArgKind{ARG_VALUE, ARG_VALUE, ARG_NAME}, 3, NewJle},
	{OP_JGE, []ArgKind{ARG_VALUE, ARG_VALUE, ARG_NAME}, 3, NewJge},
	{OP_JGT, []ArgKind{ARG_VALUE, ARG_VALUE, ARG_NAME}, 3, NewJgt},
	{OP_JNEG, []ArgKind{ARG_VALUE, ARG_NAME}, 2, NewJneg},
	{OP_CALL, []ArgKind{ARG_NAME}, 1, NewCall},
	{OP_RET, nil, 0, NewRet},
	{OP_LBL, []ArgKind{ARG_NAME}, 1, NewLbl},
	{OP_SBR, []ArgKind{ARG_NAME}, 1, NewSbr},
	{OP_NOP, []ArgKind{ARG_COUNT}, 0, NewNop},
	{OP_HLT, nil, 0, NewHlt},
}

// registry maps mnemonics to their specs.
var registry = map[string]*Spec{}

func init() {
	for n := range specs {
		spec := &specs[n]
		registry[spec.Kind.String()] = spec
	}
}

// Lookup returns the instruction form of a mnemonic, in any case.
func Lookup(mnemonic string) (spec *Spec, ok bool) {
	spec, ok = registry[strings.ToUpper(mnemonic)]
	return
}

// Mnemonics returns every known mnemonic, sorted.
func Mnemonics() []string {
	return slices.Sorted(maps.Keys(registry))
}
