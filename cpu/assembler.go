// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/tern/trit"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// labelPattern matches a valid jump label.
var labelPattern = regexp.MustCompile(`^[A-Za-z_.][A-Za-z0-9_.]*$`)

// Assembler is a single pass macro assembler for the ternary processor.
type Assembler struct {
	Verbose    bool        // If set, verbosely logs the assembler actions.
	Statements []Statement // List of generated statements.

	predefine map[string]string   // Predefines
	Label     map[string]int64    // Map of jump labels to addresses.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.

	here       int64 // Address of the next generated word.
	expansions int   // Macro expansions so far.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a simple word.
//
// Numbers use Go integer syntax, or '0t' followed by balanced ternary
// digits. A leading '~' negates, which is trit-wise inversion.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	if len(word) == 0 {
		err = ErrParseNumber(word)
		return
	}

	negate := false
	if word[0] == '~' {
		negate = true
		word = word[1:]
	}
	if len(word) > 0 && word[0] == '\'' {
		// Character quotes should have been expanded into
		// values in parseLine()
		err = ErrParseCharacter(strings.Trim(word, "'"))
		return
	}

	if digits, ok := strings.CutPrefix(word, "0t"); ok {
		var fd trit.Field
		fd, err = trit.ParseField(digits)
		if err != nil || fd.Width() == 0 || fd.Width() > trit.MAX_INT64_WIDTH {
			err = ErrParseNumber(word)
			return
		}
		value = fd.Int64()
	} else {
		value, err = strconv.ParseInt(word, 0, 64)
		if err != nil {
			err = ErrParseNumber(word)
			return
		}
	}

	if negate {
		value = -value
	}

	return
}

// register parses a register name, r-13 through r13.
func (asm *Assembler) register(word string) (reg trit.RegIndex, err error) {
	num, ok := strings.CutPrefix(word, "r")
	if !ok {
		err = ErrRegisterInvalid
		return
	}
	n, err := strconv.ParseInt(num, 10, 64)
	if err != nil || n < trit.REG_MIN || n > trit.REG_MAX {
		err = ErrRegisterInvalid
		return
	}
	reg = Reg(n)
	return
}

// immediate parses a value that must fit the immediate field.
func (asm *Assembler) immediate(word string) (imm int64, err error) {
	imm, err = asm.valueOf(word)
	if err != nil {
		return
	}
	if imm < IMM_MIN || imm > IMM_MAX {
		err = ErrImmediateRange
		return
	}
	return
}

// target parses a branch or jump target: either a numeric PC relative
// offset, or a label to link later.
func (asm *Assembler) target(word string) (imm int64, label string, err error) {
	imm, err = asm.immediate(word)
	if err == nil || err == ErrImmediateRange {
		return
	}
	if !labelPattern.MatchString(word) {
		err = ErrTargetInvalid
		return
	}
	label = word
	err = nil
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value64 int64
		value64, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt64(value64)
	}
	err = nil
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// splitWords splits a line on whitespace and operand commas.
func splitWords(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

// parseLine parses a single line as an opcode.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	re := regexp.MustCompile(`'\\?[^']'`)
	line = re.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "e":
				str = "\033"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	re = regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words = splitWords(line)

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
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
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]int64, 16)
		}
		asm.Label[label] = asm.here
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// .macro processing
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = words[1+n]
		}
		defer func() { asm.Equate = old_equate }()

		// Local labels are unique per expansion, nested ones included.
		asm.expansions++
		local := fmt.Sprintf("%v_%v_", name, asm.expansions)
		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			line = strings.ReplaceAll(line, "@", local)
			words, err = asm.parseLine(line, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}

			err = asm.parseWords(words, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Statements = asm.Statements[:0]
	asm.here = 0
	asm.expansions = 0
	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.Equate = maps.Clone(sysEquate)
	maps.Copy(asm.Equate, _cpu_defines)
	maps.Copy(asm.Equate, asm.predefine)

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		words := splitWords(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	// Final linking of jump labels.
	for n := range asm.Statements {
		st := &asm.Statements[n]

		if len(st.LinkLabel) == 0 {
			continue
		}
		lineno = st.LineNo
		line = strings.Join(st.Words, " ")

		label := st.LinkLabel
		target, ok := asm.Label[label]
		if !ok {
			err = ErrLabelMissing(label)
			return
		}

		// Targets are relative to the linking instruction.
		at := st.Address + int64(len(st.Codes)) - 1
		offset := target - at
		if offset < IMM_MIN || offset > IMM_MAX {
			err = ErrTargetRange{Label: label, Offset: offset}
			return
		}
		st.Codes[len(st.Codes)-1].Place(FIELD_IMM_LO, trit.FieldFromInt64(offset, IMM_WIDTH))
	}

	prog = &Program{
		Statements: append([]Statement(nil), asm.Statements...),
	}

	return
}

// expect checks the operand count of an instruction.
func expect(words []string, count int) (err error) {
	switch {
	case len(words)-1 < count:
		err = ErrOpcodeValueMissing
	case len(words)-1 > count:
		err = ErrOpcodeExtraArgs
	}
	return
}

// registers parses every word as a register.
func (asm *Assembler) registers(words ...string) (regs []trit.RegIndex, err error) {
	for _, word := range words {
		var reg trit.RegIndex
		reg, err = asm.register(word)
		if err != nil {
			return
		}
		regs = append(regs, reg)
	}
	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var codes []trit.Word
	var label string

	// no-op
	if len(words) == 0 {
		return
	}

	initial_words := words

	defer func() {
		if len(codes) == 0 {
			return
		}
		st := Statement{LineNo: lineno, Address: asm.here, Words: initial_words, Codes: codes, LinkLabel: label}
		asm.Statements = append(asm.Statements, st)
		asm.here += int64(len(codes))
	}()

	// Alternate syntax substitutions
	switch {
	case len(words) == 1 && words[0] == "halt":
		// halt => jal r0 0
		words = []string{"jal", "r0", "0"}
	case len(words) == 2 && words[0] == "jump":
		// jump TARGET => jal r0 TARGET
		words = []string{"jal", "r0", words[1]}
	case len(words) == 3 && words[0] == "li":
		// li RD VALUE => addi RD r0 VALUE
		words = []string{"addi", words[1], "r0", words[2]}
	case len(words) == 3 && words[0] == "mov":
		// mov RD RS => addi RD RS 0
		words = []string{"addi", words[1], words[2], "0"}
	default:
		// unchanged
	}

	var regs []trit.RegIndex
	var imm int64

	switch words[0] {
	case ".org":
		if len(words) != 2 {
			err = ErrOrgSyntax
			return
		}
		var addr int64
		addr, err = asm.valueOf(words[1])
		if err != nil {
			return
		}
		if addr < trit.WORD_MIN || addr > trit.WORD_MAX {
			err = ErrWordRange
			return
		}
		asm.here = addr
	case ".word":
		if len(words) < 2 {
			err = ErrWordSyntax
			return
		}
		var data []trit.Word
		for _, word := range words[1:] {
			var value int64
			value, err = asm.valueOf(word)
			if err != nil {
				return
			}
			if value < trit.WORD_MIN || value > trit.WORD_MAX {
				err = ErrWordRange
				return
			}
			data = append(data, trit.WordFromInt64(value))
		}
		codes = data
	case "nop":
		err = expect(words, 0)
		if err != nil {
			return
		}
		codes = append(codes, Encode(Nop{}))
	case "add", "sub":
		err = expect(words, 3)
		if err != nil {
			return
		}
		regs, err = asm.registers(words[1:4]...)
		if err != nil {
			return
		}
		if words[0] == "add" {
			codes = append(codes, Encode(Add{Rd: regs[0], Rs1: regs[1], Rs2: regs[2]}))
		} else {
			codes = append(codes, Encode(Sub{Rd: regs[0], Rs1: regs[1], Rs2: regs[2]}))
		}
	case "addi", "lw", "sw":
		err = expect(words, 3)
		if err != nil {
			return
		}
		regs, err = asm.registers(words[1:3]...)
		if err != nil {
			return
		}
		imm, err = asm.immediate(words[3])
		if err != nil {
			return
		}
		switch words[0] {
		case "addi":
			codes = append(codes, Encode(Addi{Rd: regs[0], Rs1: regs[1], Imm: imm}))
		case "lw":
			codes = append(codes, Encode(Lw{Rd: regs[0], Rs1: regs[1], Imm: imm}))
		case "sw":
			codes = append(codes, Encode(Sw{Rs1: regs[0], Rs2: regs[1], Imm: imm}))
		}
	case "lui":
		err = expect(words, 2)
		if err != nil {
			return
		}
		regs, err = asm.registers(words[1])
		if err != nil {
			return
		}
		imm, err = asm.immediate(words[2])
		if err != nil {
			return
		}
		codes = append(codes, Encode(Lui{Rd: regs[0], Imm: imm}))
	case "beq":
		err = expect(words, 3)
		if err != nil {
			return
		}
		regs, err = asm.registers(words[1:3]...)
		if err != nil {
			return
		}
		imm, label, err = asm.target(words[3])
		if err != nil {
			return
		}
		codes = append(codes, Encode(Beq{Rs1: regs[0], Rs2: regs[1], Imm: imm}))
	case "jal":
		err = expect(words, 2)
		if err != nil {
			return
		}
		regs, err = asm.registers(words[1])
		if err != nil {
			return
		}
		imm, label, err = asm.target(words[2])
		if err != nil {
			return
		}
		codes = append(codes, Encode(Jal{Rd: regs[0], Imm: imm}))
	default:
		err = ErrInstructionInvalid
		return
	}

	return
}
