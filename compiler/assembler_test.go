package compiler

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/gtac/graph"
	"github.com/ezrec/gtac/opcode"
)

func parse(t *testing.T, program []string) (prog *Program) {
	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	if err != nil {
		t.Fatal(err)
	}

	return
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Opcodes))
	assert.Equal(graph.NONE, prog.Graph.Start)
	assert.Equal(0, len(prog.Warnings))

	assert.Equal("0", asm.Equate["LINENO"])
	assert.Equal("8", asm.Equate["BIT_DEPTH"])
	assert.Equal("8", asm.Equate["STACK_SIZE"])
	assert.Equal("0xff", asm.Equate["WORD_MAX"])
}

func TestClean(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		text string
		line string
	}{
		{"", ""},
		{"   ", ""},
		{"# only a comment", ""},
		{"  ADD $A   $B\t$C  # sum", "ADD $A $B $C"},
		{";square", "SBR square"},
		{"; square  # comment", "SBR square"},
		{"ld $A 5#x", "ld $A 5"},
		{"LD $A '#' # hash", "LD $A '#'"},
		{"LD $A ' '", "LD $A ' '"},
	}

	for _, tc := range table {
		assert.Equal(tc.line, Clean(tc.text), tc.text)
	}
}

func TestAssemblerOpcodes(t *testing.T) {
	assert := assert.New(t)

	prog := parse(t, []string{
		"# counter",
		"ld $A 5",
		"",
		"loop: DEC $A",
		"  jne $A 0 loop",
		"HLT",
	})

	expected := []struct {
		lineno int
		kind   opcode.Kind
		words  []string
	}{
		{2, opcode.OP_LD, []string{"ld", "$A", "5"}},
		{4, opcode.OP_LBL, []string{"LBL", "loop"}},
		{4, opcode.OP_DEC, []string{"DEC", "$A"}},
		{5, opcode.OP_JNE, []string{"jne", "$A", "0", "loop"}},
		{6, opcode.OP_HLT, []string{"HLT"}},
	}

	assert.Equal(len(expected), len(prog.Opcodes))
	for n, ex := range expected {
		op := prog.Opcodes[n]
		assert.Equal(n, op.Index)
		assert.Equal(ex.lineno, op.LineNo)
		assert.Equal(ex.kind, op.Op.Kind())
		assert.Equal(ex.words, op.Words)
		assert.Less(0, op.Nodes)
	}

	// Only the user register is visible; the literal became a constant.
	var names []string
	for reg := range prog.Registers.Registers() {
		names = append(names, reg.Name)
	}
	assert.Equal([]string{"$A"}, names)
	_, ok := prog.Registers.Lookup("#0")
	assert.True(ok)

	// Labels do not allocate registers.
	_, ok = prog.Registers.Lookup("loop")
	assert.False(ok)

	assert.Equal(prog.Opcodes[0].Op.Entry(), prog.Graph.Start)
}

func TestAssemblerErrors(t *testing.T) {
	table := []struct {
		program []string
		lineno  int
		err     error
	}{
		{[]string{"LD $A 1", "FROB $A"}, 2, ErrInstructionInvalid},
		{[]string{"ADD $A $B"}, 1, ErrOpcodeMissing},
		{[]string{"INC $A $B"}, 1, ErrOpcodeExtraArgs},
		{[]string{"RET 1"}, 1, ErrOpcodeExtraArgs},
		{[]string{"LD 5 5"}, 1, ErrRegisterInvalid},
		{[]string{"INC %pc"}, 1, ErrRegisterInvalid},
		{[]string{"JMP 12"}, 1, ErrNameInvalid},
		{[]string{"LD $A 0xZZ"}, 1, ErrParseNumber("0xZZ")},
		{[]string{"NOP -1"}, 1, opcode.ErrOperand},
		{[]string{"DIV $A $B $Q $Q"}, 1, opcode.ErrOperand},
		{[]string{".equ A"}, 1, ErrEquateSyntax},
		{[]string{".equ A 1", ".equ A 2"}, 2, ErrEquateDuplicate},
		{[]string{"LD $A $(1 +)"}, 1, ErrParseExpression("1 +")},
		{[]string{"LD $A $(\"text\")"}, 1, ErrParseExpression("\"text\"")},
		{[]string{"NOP", "JMP nowhere"}, 2, ErrLabelMissing("nowhere")},
		{[]string{"CALL nobody"}, 1, ErrSubroutineMissing("nobody")},
		{[]string{"LBL x", "NOP", "LBL x"}, 3, ErrLabelDuplicate},
		{[]string{"INC $A", "RET"}, 2, opcode.ErrReturnOrphan},
		{[]string{"LD $A 'ab'"}, 1, ErrParseCharacter("'ab'")},
		{[]string{"LD $A '\\q'"}, 1, ErrParseCharacter("'\\q'")},
		{[]string{".macro"}, 1, ErrMacroSyntax},
		{[]string{".macro ADD"}, 1, ErrMacroSyntax},
		{[]string{".macro m 5"}, 1, ErrMacroSyntax},
		{[]string{".macro m", "NOP", ".macro n", ".endm"}, 3, ErrMacroNesting},
		{[]string{".macro m", ".endm", ".macro m", ".endm"}, 3, ErrMacroDuplicate},
		{[]string{"NOP", ".macro m A", "INC A"}, 2, ErrMacroLonely},
		{[]string{"NOP", ".endm"}, 2, ErrMacroLonelyEndm},
		{[]string{".macro m A", "INC A", ".endm", "m"}, 4, ErrMacroSyntax},
		{[]string{".macro m", "m", ".endm", "NOP", "m"}, 5, ErrMacroRecursive},
		{[]string{".macro m R", "FROB R", ".endm", "m $A"}, 4, ErrInstructionInvalid},
	}

	for _, tc := range table {
		t.Run(strings.Join(tc.program, "; "), func(t *testing.T) {
			assert := assert.New(t)

			asm := &Assembler{}
			prog, err := asm.Parse(strings.NewReader(strings.Join(tc.program, "\n")))
			assert.Nil(prog)
			assert.ErrorIs(err, tc.err)

			var syntax *ErrSyntax
			if assert.True(errors.As(err, &syntax)) {
				assert.Equal(tc.lineno, syntax.LineNo)
			}
		})
	}
}

func TestAssemblerEquate(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("SEED", "3")

	program := []string{
		".equ FIVE 5",
		".equ ACC $A",
		"LD ACC FIVE",
		"LD $B $(FIVE*2 + BIT_DEPTH)",
		"LD $C $(SEED << 1)",
		"LD $D $(LINENO)",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)

	assert.Equal([]string{"LD", "$A", "5"}, prog.Opcodes[0].Words)
	assert.Equal([]string{"LD", "$B", "18"}, prog.Opcodes[1].Words)
	assert.Equal([]string{"LD", "$C", "6"}, prog.Opcodes[2].Words)
	assert.Equal([]string{"LD", "$D", "6"}, prog.Opcodes[3].Words)

	_, ok := prog.Registers.Lookup("ACC")
	assert.False(ok)
}

func TestAssemblerCharacter(t *testing.T) {
	assert := assert.New(t)

	prog := parse(t, []string{
		"LD $A 'A'",
		"LD $B '\\n'",
		"LD $C '#' # hash",
		"LD $D ' '",
		"LD $E '\\\\'",
		"LD $F $('0' + 2)",
	})

	for n, value := range []string{"65", "10", "35", "32", "92", "50"} {
		assert.Equal(value, prog.Opcodes[n].Words[2], prog.Opcodes[n].String())
	}
}

func TestAssemblerMacro(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	program := []string{
		".macro twice REG",
		"INC REG",
		"INC REG",
		".endm",
		".macro invoke SUB",
		"CALL SUB",
		".endm",
		"twice $A",
		"invoke sub",
		"HLT",
		";sub",
		"twice $B",
		"RET",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	if !assert.NoError(err) {
		return
	}
	assert.Equal(0, len(prog.Warnings))

	expected := []struct {
		lineno int
		kind   opcode.Kind
		words  []string
	}{
		{2, opcode.OP_INC, []string{"INC", "$A"}},
		{3, opcode.OP_INC, []string{"INC", "$A"}},
		{6, opcode.OP_CALL, []string{"CALL", "sub"}},
		{10, opcode.OP_HLT, []string{"HLT"}},
		{11, opcode.OP_SBR, []string{"SBR", "sub"}},
		{2, opcode.OP_INC, []string{"INC", "$B"}},
		{3, opcode.OP_INC, []string{"INC", "$B"}},
		{13, opcode.OP_RET, []string{"RET"}},
	}

	if assert.Equal(len(expected), len(prog.Opcodes)) {
		for n, ex := range expected {
			op := prog.Opcodes[n]
			assert.Equal(ex.lineno, op.LineNo)
			assert.Equal(ex.kind, op.Op.Kind())
			assert.Equal(ex.words, op.Words)
		}
	}

	// Arguments are only bound during expansion.
	_, ok := asm.Equate["REG"]
	assert.False(ok)
	_, ok = prog.Registers.Lookup("REG")
	assert.False(ok)

	assert.Equal([]string{"REG"}, asm.Macro["twice"].Args)
	assert.Equal(2, len(asm.Macro["twice"].Lines))
}

func TestAssemblerMacroLocal(t *testing.T) {
	assert := assert.New(t)

	prog := parse(t, []string{
		".macro countdown R",
		"@loop: DEC R",
		"JNE R 0 @loop",
		".endm",
		"LD $A 3",
		"countdown $A",
		"LD $B 2",
		"countdown $B",
	})

	var labels []string
	for _, op := range prog.Opcodes {
		if op.Op.Kind() == opcode.OP_LBL {
			labels = append(labels, op.Words[1])
		}
	}
	assert.Equal([]string{"countdown_1_loop", "countdown_2_loop"}, labels)
}

func TestAssemblerMacroError(t *testing.T) {
	assert := assert.New(t)

	_, err := Compile(".macro m R\nNOP\nFROB R\n.endm\nNOP\nm $A", DefaultConfig())
	assert.ErrorIs(err, ErrInstructionInvalid)

	var syntax *ErrSyntax
	if assert.True(errors.As(err, &syntax)) {
		assert.Equal(6, syntax.LineNo)
	}

	var macro *ErrMacro
	if assert.True(errors.As(err, &macro)) {
		assert.Equal("m", macro.Macro)
		assert.Equal(3, macro.Line)
	}
}

func TestAssemblerEntryDetached(t *testing.T) {
	assert := assert.New(t)

	prog := parse(t, []string{
		";sub",
		"INC $A",
		"RET",
		"main:",
		"CALL sub",
		"HLT",
	})

	if assert.Less(0, len(prog.Warnings)) {
		var syntax *ErrSyntax
		assert.ErrorIs(prog.Warnings[0], ErrEntryDetached)
		if assert.True(errors.As(prog.Warnings[0], &syntax)) {
			assert.Equal(1, syntax.LineNo)
		}
	}

	var unreachable []int
	for _, warning := range prog.Warnings[1:] {
		var syntax *ErrSyntax
		assert.ErrorIs(warning, ErrUnreachable)
		if errors.As(warning, &syntax) {
			unreachable = append(unreachable, syntax.LineNo)
		}
	}
	assert.Equal([]int{4, 5}, unreachable)
}

func TestAssemblerWarnings(t *testing.T) {
	assert := assert.New(t)

	prog := parse(t, []string{
		"LD $A 255",
		"LD $A -128",
		"LD $A 300",
		"ADD $A -129 $B",
	})

	assert.Equal(2, len(prog.Warnings))
	for n, lineno := range []int{3, 4} {
		var syntax *ErrSyntax
		assert.ErrorIs(prog.Warnings[n], ErrConstantOverflow)
		if assert.True(errors.As(prog.Warnings[n], &syntax)) {
			assert.Equal(lineno, syntax.LineNo)
		}
	}

	prog = parse(t, []string{
		"JMP end",
		"INC $A",
		"LBL end",
		"HLT",
		"SBR unused",
		"RET",
	})

	var lines []int
	for _, warning := range prog.Warnings {
		var syntax *ErrSyntax
		assert.ErrorIs(warning, ErrUnreachable)
		if assert.True(errors.As(warning, &syntax)) {
			lines = append(lines, syntax.LineNo)
		}
	}
	assert.Equal([]int{2, 5, 6}, lines)
}

func TestAssemblerConfig(t *testing.T) {
	assert := assert.New(t)

	prog, err := Compile("INC $A\nCALL s\nHLT\n;s\nRET", Config{BitDepth: 4, StackSize: 2})
	assert.NoError(err)
	assert.Equal(4, prog.Registers.Depth)
	assert.Equal(2, prog.Context.Stack.Size())

	reg, ok := prog.Registers.Lookup("$A")
	assert.True(ok)
	assert.Equal(4, reg.Width())

	_, err = Compile("NOP", Config{BitDepth: 0, StackSize: 2})
	assert.ErrorIs(err, ErrConfigDepth)
}

func TestAssemblerDeterminism(t *testing.T) {
	assert := assert.New(t)

	text := strings.Join([]string{
		"LD $A 7",
		"LD $B 2",
		"top:",
		"DIV $A $B",
		"CALL twice",
		"JGT $QUO 1 top",
		"CALL twice",
		"HLT",
		";twice",
		"MUL $REM 2 $REM",
		"RET",
	}, "\n")

	first, err := Compile(text, DefaultConfig())
	assert.NoError(err)
	second, err := Compile(text, DefaultConfig())
	assert.NoError(err)

	assert.Equal(len(first.Graph.Nodes), len(second.Graph.Nodes))
	assert.Equal(first.Graph.Edges(), second.Graph.Edges())
	assert.Equal(first.Graph, second.Graph)
}

func FuzzAssembler(f *testing.F) {
	f.Add("LD $A 5\nLD $B 3\nADD $A $B $C")
	f.Add("CALL sub\nNOP\n;sub\nINC $A\nRET")
	f.Add("loop: JNE $A $(1+1) loop")
	f.Add(".equ X 3\nSHL $A X\nDIV $A 0")
	f.Add("RET\nJMP\nFROB")

	f.Fuzz(func(t *testing.T, text string) {
		prog, err := Compile(text, Config{BitDepth: 4, StackSize: 2})
		if err != nil {
			assert.Nil(t, prog)
			return
		}

		assert.Equal(t, len(prog.Opcodes) > 0, prog.Graph.Start != graph.NONE)
		for n, op := range prog.Opcodes {
			assert.Equal(t, n, op.Index)
			assert.Same(t, op.Op, prog.Debug(n).Op)
		}
	})
}
