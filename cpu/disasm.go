package cpu

import (
	"fmt"
)

// FormatOperand renders an operand in assembler syntax.
// For relative mode, value is the raw displacement byte.
func FormatOperand(mode Mode, value uint16) (text string) {
	switch mode {
	case MODE_ACCUMULATOR:
		text = "A"
	case MODE_IMMEDIATE:
		text = fmt.Sprintf("#$%02X", uint8(value))
	case MODE_ZERO_PAGE, MODE_RELATIVE:
		text = fmt.Sprintf("$%02X", uint8(value))
	case MODE_ABSOLUTE:
		text = fmt.Sprintf("$%04X", value)
	case MODE_INDIRECT:
		text = fmt.Sprintf("($%04X)", value)
	}

	return
}

// Disassemble renders the instruction at pc in assembler syntax, and returns
// its size in bytes. Bytes with no dispatch entry render as .byte data.
func Disassemble(mem Memory, pc uint16) (text string, size int) {
	opcode := mem.Read(pc)

	op, ok := DefaultTable().Lookup(opcode)
	if !ok {
		text = fmt.Sprintf(".byte $%02X", opcode)
		size = 1
		return
	}

	var value uint16
	switch op.Mode.Size() {
	case 1:
		value = uint16(mem.Read(pc + 1))
	case 2:
		value = readWord(mem, pc+1)
	}

	text = op.Mnemonic.String()
	if operand := FormatOperand(op.Mode, value); len(operand) != 0 {
		text += " " + operand
	}
	size = op.Size()

	return
}
