// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var (
	reIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	reSymbol     = regexp.MustCompile(`(\$?)\b([A-Za-z_][A-Za-z0-9_]*)`)
	reParen      = regexp.MustCompile(`\$\([^\$]*\)`)
)

// Assembler is a single pass assembler with a final label linking pass.
type Assembler struct {
	Verbose bool   // If set, verbosely logs the assembler actions.
	Origin  uint16 // Address of the first byte; DEFAULT_ORIGIN if zero.
	Lines   []Line // List of generated lines.

	predefine map[string]string // Predefines
	Label     map[string]uint16 // Map of labels to addresses.
	Equate    map[string]string // Map of equates.

	origin  uint16 // Origin of the program being assembled.
	address int    // Address of the next generated byte.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a simple number.
// '$' prefixes hexadecimal; otherwise Go integer literal syntax applies.
func valueOf(word string) (value uint32, err error) {
	var v64 uint64
	if hex, ok := strings.CutPrefix(word, "$"); ok {
		v64, err = strconv.ParseUint(hex, 16, 32)
	} else {
		v64, err = strconv.ParseUint(word, 0, 32)
	}
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = uint32(v64)
	return
}

// formatValue renders a value as a zero page or absolute sized hex number.
func formatValue(value uint32) string {
	if value <= 0xff {
		return fmt.Sprintf("$%02X", value)
	}
	return fmt.Sprintf("$%04X", value)
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value uint32, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value32 uint32
		value32, err = valueOf(str)
		if err != nil {
			// Ignore non-integer equates.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt(int(value32))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = errors.Join(ErrParseExpression(expr), err)
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
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}

	switch {
	case st_int64 >= 0 && st_int64 <= 0xffff:
		value = uint32(st_int64)
	case st_int64 < 0 && st_int64 >= -0x80:
		// Negative branch displacements
		value = uint32(uint8(int8(st_int64)))
	default:
		err = ErrParseExpression(expr)
	}

	return
}

// substitute replaces equate names in an operand word with their values.
func (asm *Assembler) substitute(word string) string {
	return reSymbol.ReplaceAllStringFunc(word, func(match string) string {
		if match[0] == '$' {
			return match
		}
		equate, ok := asm.Equate[match]
		if !ok {
			return match
		}
		return equate
	})
}

// parseLine parses a single line into words, handling equates and labels.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Do $() evaluations
	line = reParen.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return formatValue(value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)
	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if strings.EqualFold(words[0], ".equ") {
		if len(words) != 3 || !reIdentifier.MatchString(words[1]) {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		value := asm.substitute(words[2])
		if v32, _err := valueOf(value); _err == nil {
			value = formatValue(v32)
		}
		asm.Equate[words[1]] = value
		words = words[:0]
		return
	}

	for len(words) > 0 && strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		if !reIdentifier.MatchString(label) || strings.EqualFold(label, "A") {
			err = ErrLabelInvalid
			return
		}
		if _, is_op := ParseMnemonic(label); is_op {
			err = ErrLabelInvalid
			return
		}
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		asm.Label[label] = uint16(asm.address)
		words = words[1:]
	}

	for n := 1; n < len(words); n++ {
		words[n] = asm.substitute(words[n])
	}

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.origin = asm.Origin
	if asm.origin == 0 {
		asm.origin = DEFAULT_ORIGIN
	}
	asm.address = int(asm.origin)
	asm.Lines = asm.Lines[:0]
	asm.Label = make(map[string]uint16)
	asm.Equate = maps.Clone(_cpu_defines)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment, _, _ := strings.Cut(text, ";")
		line = strings.TrimSpace(text_comment)

		var words []string
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

	// Final linking of labels.
	for n := range asm.Lines {
		op := &asm.Lines[n]

		if len(op.LinkLabel) == 0 {
			continue
		}

		err = asm.link(op)
		if err != nil {
			lineno = op.LineNo
			line = strings.Join(op.Words, " ")
			return
		}
	}

	prog = &Program{
		Origin: asm.origin,
		Lines:  slices.Clone(asm.Lines),
	}

	return
}

// link fills in the operand bytes of a line that references a label.
func (asm *Assembler) link(op *Line) (err error) {
	addr, ok := asm.Label[op.LinkLabel]
	if !ok {
		err = ErrLabelMissing(op.LinkLabel)
		return
	}

	code, ok := DefaultTable().Lookup(op.Bytes[0])
	if !ok {
		panic(fmt.Sprintf("line %d: linked opcode 0x%02x is undefined", op.LineNo, op.Bytes[0]))
	}

	switch code.Mode {
	case MODE_RELATIVE:
		disp := int(addr) - (int(op.Address) + code.Size())
		if disp < -0x80 || disp > 0x7f {
			err = ErrBranchRange
			return
		}
		op.Bytes[1] = uint8(int8(disp))
	case MODE_ABSOLUTE, MODE_INDIRECT:
		op.Bytes[1] = uint8(addr)
		op.Bytes[2] = uint8(addr >> 8)
	}

	return
}

// parseHex parses a hex operand of at most digits hex digits.
func parseHex(text string, digits int) (value uint16, err error) {
	if len(text) == 0 {
		err = ErrParseNumber(text)
		return
	}

	v64, err := strconv.ParseUint(text, 16, 16)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			err = ErrOperandWidth
		} else {
			err = ErrParseNumber(text)
		}
		return
	}

	if len(text) > digits {
		err = ErrOperandWidth
		return
	}

	value = uint16(v64)
	return
}

// parseOperand determines the addressing mode and value of an operand word.
// A label reference is returned in label, to be linked after the pass.
func parseOperand(mn Mnemonic, word string) (mode Mode, value uint16, label string, err error) {
	switch {
	case len(word) == 0:
		mode = MODE_IMPLIED
		if _, ok := DefaultTable().Encode(mn, MODE_IMPLIED); !ok {
			if _, ok := DefaultTable().Encode(mn, MODE_ACCUMULATOR); ok {
				mode = MODE_ACCUMULATOR
			}
		}
	case strings.EqualFold(word, "A"):
		mode = MODE_ACCUMULATOR
	case word[0] == '#':
		mode = MODE_IMMEDIATE
		value, err = parseHex(strings.TrimPrefix(word[1:], "$"), 2)
	case strings.HasPrefix(word, "(") && strings.HasSuffix(word, ")"):
		mode = MODE_INDIRECT
		inner := word[1 : len(word)-1]
		if hex, ok := strings.CutPrefix(inner, "$"); ok {
			value, err = parseHex(hex, 4)
		} else if reIdentifier.MatchString(inner) {
			label = inner
		} else {
			err = ErrOperandUnsupported
		}
	case word[0] == '$':
		hex := word[1:]
		if mn.IsBranch() {
			mode = MODE_RELATIVE
			value, err = parseHex(hex, 2)
		} else if len(hex) <= 2 {
			mode = MODE_ZERO_PAGE
			value, err = parseHex(hex, 2)
		} else {
			mode = MODE_ABSOLUTE
			value, err = parseHex(hex, 4)
		}
	case reIdentifier.MatchString(word):
		mode = MODE_ABSOLUTE
		if mn.IsBranch() {
			mode = MODE_RELATIVE
		}
		label = word
	default:
		err = ErrOperandUnsupported
	}

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var data []uint8
	var label string

	// no-op
	if len(words) == 0 {
		return
	}

	defer func() {
		if err != nil || len(data) == 0 {
			return
		}
		if asm.address+len(data) > 0x10000 {
			err = ErrProgramAddressSpace
			return
		}
		line := Line{LineNo: lineno, Address: uint16(asm.address), Words: words, Bytes: data, LinkLabel: label}
		asm.Lines = append(asm.Lines, line)
		asm.address += len(data)
	}()

	switch strings.ToLower(words[0]) {
	case ".byte":
		if len(words) < 2 {
			err = ErrByteSyntax
			return
		}
		for _, word := range words[1:] {
			var value uint32
			value, err = valueOf(word)
			if err != nil {
				return
			}
			if value > 0xff {
				err = ErrOperandWidth
				return
			}
			data = append(data, uint8(value))
		}
		return
	}

	mn, ok := ParseMnemonic(words[0])
	if !ok {
		err = ErrMnemonicUnknown
		return
	}

	if len(words) > 2 {
		err = ErrOpcodeExtraArgs
		return
	}

	var operand string
	if len(words) == 2 {
		operand = words[1]
	}

	mode, value, label, err := parseOperand(mn, operand)
	if err != nil {
		return
	}

	opcode, ok := DefaultTable().Encode(mn, mode)
	if !ok {
		err = ErrAddressingMode{Mnemonic: mn, Mode: mode}
		return
	}

	data = append(data, opcode)
	switch mode.Size() {
	case 1:
		data = append(data, uint8(value))
	case 2:
		data = append(data, uint8(value), uint8(value>>8))
	}

	return
}
