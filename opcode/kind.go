package opcode

//go:generate go tool stringer -linecomment -type=Kind,ArgKind

// Kind is the closed set of opcode kinds.
type Kind int

const (
	OP_INVALID = Kind(0)  // ?
	OP_LD      = Kind(1)  // LD
	OP_ADD     = Kind(2)  // ADD
	OP_SUB     = Kind(3)  // SUB
	OP_INC     = Kind(4)  // INC
	OP_DEC     = Kind(5)  // DEC
	OP_NEG     = Kind(6)  // NEG
	OP_CPL     = Kind(7)  // CPL
	OP_FLIP    = Kind(8)  // FLIP
	OP_SHL     = Kind(9)  // SHL
	OP_SHR     = Kind(10) // SHR
	OP_MUL     = Kind(11) // MUL
	OP_DIV     = Kind(12) // DIV
	OP_JMP     = Kind(13) // JMP
	OP_JEQ     = Kind(14) // JEQ
	OP_JNE     = Kind(15) // JNE
	OP_JLT     = Kind(16) // JLT
	OP_JLE     = Kind(17) // JLE
	OP_JGE     = Kind(18) // JGE
	OP_JGT     = Kind(19) // JGT
	OP_JNEG    = Kind(20) // JNEG
	OP_CALL    = Kind(21) // CALL
	OP_RET     = Kind(22) // RET
	OP_LBL     = Kind(23) // LBL
	OP_SBR     = Kind(24) // SBR
	OP_NOP     = Kind(25) // NOP
	OP_HLT     = Kind(26) // HLT

	// Building blocks, never visible to the assembler.
	OP_FULL_ADDER = Kind(27) // FA
)

// ArgKind is the kind of an opcode argument.
type ArgKind int

// Argument kinds:
//   - register: a register, created on first use.
//   - value: a register or an integer literal.
//   - name: a label or subroutine name.
//   - count: a non-negative integer literal.
const (
	ARG_REG   = ArgKind(0) // register
	ARG_VALUE = ArgKind(1) // value
	ARG_NAME  = ArgKind(2) // name
	ARG_COUNT = ArgKind(3) // count
)
