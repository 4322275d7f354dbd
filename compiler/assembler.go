// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package compiler

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/gtac/internal"
	"github.com/ezrec/gtac/opcode"
	"github.com/ezrec/gtac/regfile"
)

const (
	LABEL_SUFFIX = ":" // "name:" is shorthand for "LBL name".
	LOCAL_PREFIX = "@" // Replaced by a per-expansion prefix in macro bodies.
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	Name   string   // Name the macro is invoked by.
	LineNo int      // Line number of the first line of the body.
	Args   []string // Arguments, bound as equates during expansion.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

var parenExpr = regexp.MustCompile(`\$\([^\$]*\)`)

var charExpr = regexp.MustCompile(`'\\?[^']'`)

// Assembler is the first pass of the compiler: it expands every
// instruction into its opcode subgraph, in program order.
type Assembler struct {
	Verbose  bool     // If set, verbosely logs the assembler actions.
	Config   Config   // Build configuration; the zero value selects DefaultConfig.
	Opcode   []Opcode // List of generated opcodes.
	Warnings []error  // Non-fatal diagnostics of the last Parse.

	predefine map[string]string // Predefines
	Equate    map[string]string // Map of equates.
	Macro     map[string]*Macro // Map of macros.

	expanding  map[string]bool // Macros being expanded.
	expansions int             // Count of macro expansions.

	ctx *opcode.Context
}

// Predefine defines a new equate or redefines an existing equate, for every
// following Parse.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// isNumeral returns true if a word is spelled as an integer literal.
func isNumeral(word string) bool {
	if len(word) > 1 && (word[0] == '-' || word[0] == '+') {
		word = word[1:]
	}
	return len(word) > 0 && word[0] >= '0' && word[0] <= '9'
}

// validName returns true if a word may name a register, label or
// subroutine. Internal names are reserved.
func validName(word string) bool {
	if len(word) == 0 || isNumeral(word) {
		return false
	}
	return !strings.ContainsAny(word, regfile.SCRATCH_PREFIX+regfile.CONSTANT_PREFIX)
}

// valueOf returns the value of an integer literal.
func (asm *Assembler) valueOf(word string) (value int, err error) {
	v64, err := strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = int(v64)

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var v int
		v, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt(v)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = int(st_int64)
	return
}

// charValue replaces a quoted character with its decimal value.
func charValue(word string) string {
	str := word[1 : len(word)-1]
	if str[0] == '\\' {
		switch str[1:] {
		case "\\":
			str = "\\"
		case "n":
			str = "\n"
		case "r":
			str = "\r"
		case "t":
			str = "\t"
		case "e":
			str = "\033"
		case "0":
			str = "\000"
		default:
			return word
		}
	}

	for _, r := range str {
		return strconv.Itoa(int(r))
	}

	return word
}

// parseLine expands a cleaned line into words, handling equates and
// expressions.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	line = charExpr.ReplaceAllStringFunc(line, charValue)

	// Do $() evaluations
	line = parenExpr.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%#v", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)
	if len(words) == 0 {
		return
	}

	for _, word := range words {
		if strings.HasPrefix(word, "'") {
			err = ErrParseCharacter(word)
			return
		}
	}

	// .equ CONST VALUE
	if strings.EqualFold(words[0], ".equ") {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	return
}

// beginMacro opens a .macro definition.
func (asm *Assembler) beginMacro(words []string, lineno int) (macro *Macro, err error) {
	if len(words) < 2 || !validName(words[1]) {
		err = ErrMacroSyntax
		return
	}

	name := words[1]
	_, ok := opcode.Lookup(name)
	if ok {
		err = ErrMacroSyntax
		return
	}
	_, ok = asm.Macro[name]
	if ok {
		err = ErrMacroDuplicate
		return
	}

	args := words[2:]
	for _, arg := range args {
		if !validName(arg) {
			err = ErrMacroSyntax
			return
		}
	}

	macro = &Macro{
		Name:   name,
		LineNo: lineno + 1,
		Args:   args,
	}
	asm.Macro[name] = macro

	return
}

// expand assembles the body of a macro, with its arguments bound as equates.
func (asm *Assembler) expand(macro *Macro, args []string) (err error) {
	if len(args) != len(macro.Args) {
		err = ErrMacroSyntax
		return
	}
	if asm.expanding[macro.Name] {
		err = ErrMacroRecursive
		return
	}

	asm.expanding[macro.Name] = true
	asm.expansions++

	equate := maps.Clone(asm.Equate)
	defer func() {
		asm.Equate = equate
		delete(asm.expanding, macro.Name)
	}()

	for n, arg := range macro.Args {
		asm.Equate[arg] = args[n]
	}

	local := fmt.Sprintf("%v_%v_", macro.Name, asm.expansions)
	for n, line := range macro.Lines {
		lineno := macro.LineNo + n
		line = strings.ReplaceAll(line, LOCAL_PREFIX, local)

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err == nil {
			err = asm.parseWords(words, lineno)
		}
		if err != nil {
			err = &ErrMacro{Macro: macro.Name, Line: lineno, Err: err}
			return
		}
	}

	return
}

// warn records a non-fatal diagnostic.
func (asm *Assembler) warn(lineno int, words []string, err error) {
	warning := &ErrSyntax{LineNo: lineno, Line: strings.Join(words, " "), Err: err}
	if asm.Verbose {
		log.Printf("warning: %v", warning)
	}
	asm.Warnings = append(asm.Warnings, warning)
}

// bind resolves one instruction argument.
func (asm *Assembler) bind(kind opcode.ArgKind, word string) (arg opcode.Operand, overflow bool, err error) {
	arg.Word = word

	switch kind {
	case opcode.ARG_NAME:
		if !validName(word) {
			err = ErrNameInvalid
		}
	case opcode.ARG_COUNT:
		arg.Value, err = asm.valueOf(word)
		arg.Immediate = true
	case opcode.ARG_VALUE, opcode.ARG_REG:
		if isNumeral(word) {
			if kind == opcode.ARG_REG {
				err = ErrRegisterInvalid
				return
			}
			arg.Value, err = asm.valueOf(word)
			arg.Immediate = true
			overflow = err == nil && !regfile.Fits(arg.Value, asm.ctx.Depth())
			return
		}
		if !validName(word) {
			err = ErrRegisterInvalid
			return
		}
		arg.Register = asm.ctx.Registers.Create(word)
	}

	return
}

// emit builds one opcode instance and appends it to the program.
func (asm *Assembler) emit(spec *opcode.Spec, words []string, lineno int) (err error) {
	args := words[1:]
	if len(args) < spec.Required {
		err = ErrOpcodeMissing
		return
	}
	if len(args) > len(spec.Args) {
		err = ErrOpcodeExtraArgs
		return
	}

	operands := make([]opcode.Operand, len(args))
	for n, word := range args {
		var overflow bool
		operands[n], overflow, err = asm.bind(spec.Args[n], word)
		if err != nil {
			return
		}
		if overflow {
			asm.warn(lineno, words, ErrConstantOverflow)
		}
	}

	before := len(asm.ctx.Graph.Nodes)
	op, err := spec.New(asm.ctx, operands)
	if err != nil {
		return
	}

	asm.Opcode = append(asm.Opcode, Opcode{
		LineNo: lineno,
		Index:  len(asm.Opcode),
		Words:  words,
		Op:     op,
		Nodes:  len(asm.ctx.Graph.Nodes) - before,
	})

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	// no-op
	if len(words) == 0 {
		return
	}

	lbl, _ := opcode.Lookup(opcode.OP_LBL.String())
	for strings.HasSuffix(words[0], LABEL_SUFFIX) {
		label := strings.TrimSuffix(words[0], LABEL_SUFFIX)
		err = asm.emit(lbl, []string{lbl.Kind.String(), label}, lineno)
		if err != nil {
			return
		}
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	macro, ok := asm.Macro[words[0]]
	if ok {
		err = asm.expand(macro, words[1:])
		return
	}

	spec, ok := opcode.Lookup(words[0])
	if !ok {
		err = ErrInstructionInvalid
		return
	}

	err = asm.emit(spec, words, lineno)

	return
}

// Parse assembles and links an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	cfg := asm.Config
	if cfg == (Config{}) {
		cfg = DefaultConfig()
	}
	err = cfg.Validate()
	if err != nil {
		return
	}

	asm.ctx = opcode.NewContext(cfg.BitDepth, cfg.StackSize)
	asm.Opcode = asm.Opcode[:0]
	asm.Warnings = nil
	asm.Equate = maps.Collect(internal.Concat2(
		maps.All(sysEquate),
		cfg.Defines(),
		maps.All(asm.predefine),
	))
	asm.Macro = map[string]*Macro{}
	asm.expanding = map[string]bool{}
	asm.expansions = 0

	scanner := bufio.NewScanner(input)

	var lineno int
	var macro *Macro
	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		line := Clean(text)
		words := strings.Fields(line)

		var directive string
		if len(words) > 0 {
			directive = strings.ToLower(words[0])
		}

		switch {
		case directive == ".macro":
			// .macro NAME arg...
			if macro != nil {
				err = ErrMacroNesting
				break
			}
			macro, err = asm.beginMacro(words, lineno)
		case directive == ".endm":
			if macro == nil {
				err = ErrMacroLonelyEndm
			}
			macro = nil
		case macro != nil:
			macro.Lines = append(macro.Lines, line)
		default:
			words, err = asm.parseLine(line, lineno)
			if err == nil {
				err = asm.parseWords(words, lineno)
			}
		}
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		err = errors.Wrap(err, "read source")
		return
	}

	if macro != nil {
		err = &ErrSyntax{LineNo: macro.LineNo - 1, Line: ".macro " + macro.Name, Err: ErrMacroLonely}
		return
	}

	prog = &Program{
		Opcodes:   slices.Clone(asm.Opcode),
		Graph:     asm.ctx.Graph,
		Registers: asm.ctx.Registers,
		Context:   asm.ctx,
	}

	ln, err := newLinker(prog)
	if err != nil {
		prog = nil
		return
	}
	ln.Verbose = asm.Verbose

	err = ln.Link()
	if err != nil {
		prog = nil
		return
	}

	if len(prog.Opcodes) > 0 && prog.Opcodes[0].Op.Detached() {
		op := &prog.Opcodes[0]
		asm.warn(op.LineNo, op.Words, ErrEntryDetached)
	}

	for _, op := range ln.Unreachable() {
		asm.warn(op.LineNo, op.Words, ErrUnreachable)
	}

	prog.Warnings = slices.Clone(asm.Warnings)

	return
}

// Compile assembles and links program text.
func Compile(text string, cfg Config) (prog *Program, err error) {
	asm := &Assembler{Config: cfg}
	return asm.Parse(strings.NewReader(text))
}
