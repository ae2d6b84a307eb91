package cpu

import (
	"fmt"
	"iter"
	"strings"
)

// Mode is an operand addressing mode.
type Mode int

//go:generate go tool stringer -linecomment -type=Mode
const (
	MODE_IMPLIED     = Mode(0) // implied
	MODE_ACCUMULATOR = Mode(1) // accumulator
	MODE_IMMEDIATE   = Mode(2) // immediate
	MODE_ZERO_PAGE   = Mode(3) // zeropage
	MODE_RELATIVE    = Mode(4) // relative
	MODE_ABSOLUTE    = Mode(5) // absolute
	MODE_INDIRECT    = Mode(6) // indirect
)

// Size returns the number of operand bytes following the opcode.
func (mode Mode) Size() int {
	switch mode {
	case MODE_IMMEDIATE, MODE_ZERO_PAGE, MODE_RELATIVE:
		return 1
	case MODE_ABSOLUTE, MODE_INDIRECT:
		return 2
	default:
		return 0
	}
}

// Mnemonic is an instruction name, independent of addressing mode.
type Mnemonic int

//go:generate go tool stringer -linecomment -type=Mnemonic
const (
	OP_ADC = Mnemonic(iota) // ADC
	OP_AND                  // AND
	OP_ASL                  // ASL
	OP_BCC                  // BCC
	OP_BCS                  // BCS
	OP_BEQ                  // BEQ
	OP_BIT                  // BIT
	OP_BMI                  // BMI
	OP_BNE                  // BNE
	OP_BPL                  // BPL
	OP_BRK                  // BRK
	OP_BVC                  // BVC
	OP_BVS                  // BVS
	OP_CLC                  // CLC
	OP_CLD                  // CLD
	OP_CLI                  // CLI
	OP_CLV                  // CLV
	OP_CMP                  // CMP
	OP_CPX                  // CPX
	OP_CPY                  // CPY
	OP_DEC                  // DEC
	OP_DEX                  // DEX
	OP_DEY                  // DEY
	OP_EOR                  // EOR
	OP_INC                  // INC
	OP_INX                  // INX
	OP_INY                  // INY
	OP_JMP                  // JMP
	OP_JSR                  // JSR
	OP_LDA                  // LDA
	OP_LDX                  // LDX
	OP_LDY                  // LDY
	OP_LSR                  // LSR
	OP_NOP                  // NOP
	OP_ORA                  // ORA
	OP_PHA                  // PHA
	OP_PHP                  // PHP
	OP_PLA                  // PLA
	OP_PLP                  // PLP
	OP_ROL                  // ROL
	OP_ROR                  // ROR
	OP_RTI                  // RTI
	OP_RTS                  // RTS
	OP_SBC                  // SBC
	OP_SEC                  // SEC
	OP_SED                  // SED
	OP_SEI                  // SEI
	OP_STA                  // STA
	OP_STX                  // STX
	OP_STY                  // STY
	OP_TAX                  // TAX
	OP_TAY                  // TAY
	OP_TSX                  // TSX
	OP_TXA                  // TXA
	OP_TXS                  // TXS
	OP_TYA                  // TYA
	op_count
)

var mnemonicMap = func() map[string]Mnemonic {
	m := make(map[string]Mnemonic, int(op_count))
	for mn := range op_count {
		m[mn.String()] = mn
	}
	return m
}()

// ParseMnemonic looks up a mnemonic by name, ignoring case.
func ParseMnemonic(name string) (mn Mnemonic, ok bool) {
	mn, ok = mnemonicMap[strings.ToUpper(name)]
	return
}

// IsBranch returns true for the conditional relative branches.
func (mn Mnemonic) IsBranch() bool {
	switch mn {
	case OP_BCC, OP_BCS, OP_BEQ, OP_BMI, OP_BNE, OP_BPL, OP_BVC, OP_BVS:
		return true
	}
	return false
}

// Operand is the resolved operand of an instruction.
type Operand struct {
	Mode    Mode   // Addressing mode the operand was resolved with.
	Value   uint8  // Immediate value, accumulator, or the byte at Address.
	Address uint16 // Effective address, jump target, or branch target.
}

// Behavior performs an instruction on the CPU and memory.
// If jump is true, the behavior has set the program counter itself.
type Behavior func(cpu *Cpu, mem Memory, arg *Operand) (jump bool)

// Operation describes a single opcode.
type Operation struct {
	Opcode   uint8
	Mnemonic Mnemonic
	Mode     Mode
	Behavior Behavior
}

// Size returns the total size of the instruction, in bytes.
func (op *Operation) Size() int {
	return 1 + op.Mode.Size()
}

func (op *Operation) String() string {
	return fmt.Sprintf("%02X %v %v", op.Opcode, op.Mnemonic, op.Mode)
}

// opcodeList is the instruction set, mirroring the hardware encoding.
var opcodeList = []Operation{
	// Load & store
	{0xA9, OP_LDA, MODE_IMMEDIATE, (*Cpu).lda},
	{0xA5, OP_LDA, MODE_ZERO_PAGE, (*Cpu).lda},
	{0xAD, OP_LDA, MODE_ABSOLUTE, (*Cpu).lda},
	{0xA2, OP_LDX, MODE_IMMEDIATE, (*Cpu).ldx},
	{0xA6, OP_LDX, MODE_ZERO_PAGE, (*Cpu).ldx},
	{0xAE, OP_LDX, MODE_ABSOLUTE, (*Cpu).ldx},
	{0xA0, OP_LDY, MODE_IMMEDIATE, (*Cpu).ldy},
	{0xA4, OP_LDY, MODE_ZERO_PAGE, (*Cpu).ldy},
	{0xAC, OP_LDY, MODE_ABSOLUTE, (*Cpu).ldy},
	{0x85, OP_STA, MODE_ZERO_PAGE, (*Cpu).sta},
	{0x8D, OP_STA, MODE_ABSOLUTE, (*Cpu).sta},
	{0x86, OP_STX, MODE_ZERO_PAGE, (*Cpu).stx},
	{0x8E, OP_STX, MODE_ABSOLUTE, (*Cpu).stx},
	{0x84, OP_STY, MODE_ZERO_PAGE, (*Cpu).sty},
	{0x8C, OP_STY, MODE_ABSOLUTE, (*Cpu).sty},

	// Transfers
	{0xAA, OP_TAX, MODE_IMPLIED, (*Cpu).tax},
	{0xA8, OP_TAY, MODE_IMPLIED, (*Cpu).tay},
	{0xBA, OP_TSX, MODE_IMPLIED, (*Cpu).tsx},
	{0x8A, OP_TXA, MODE_IMPLIED, (*Cpu).txa},
	{0x9A, OP_TXS, MODE_IMPLIED, (*Cpu).txs},
	{0x98, OP_TYA, MODE_IMPLIED, (*Cpu).tya},

	// Stack
	{0x48, OP_PHA, MODE_IMPLIED, (*Cpu).pha},
	{0x68, OP_PLA, MODE_IMPLIED, (*Cpu).pla},
	{0x08, OP_PHP, MODE_IMPLIED, (*Cpu).php},
	{0x28, OP_PLP, MODE_IMPLIED, (*Cpu).plp},

	// Logical
	{0x29, OP_AND, MODE_IMMEDIATE, (*Cpu).and},
	{0x25, OP_AND, MODE_ZERO_PAGE, (*Cpu).and},
	{0x2D, OP_AND, MODE_ABSOLUTE, (*Cpu).and},
	{0x09, OP_ORA, MODE_IMMEDIATE, (*Cpu).ora},
	{0x05, OP_ORA, MODE_ZERO_PAGE, (*Cpu).ora},
	{0x0D, OP_ORA, MODE_ABSOLUTE, (*Cpu).ora},
	{0x49, OP_EOR, MODE_IMMEDIATE, (*Cpu).eor},
	{0x45, OP_EOR, MODE_ZERO_PAGE, (*Cpu).eor},
	{0x4D, OP_EOR, MODE_ABSOLUTE, (*Cpu).eor},
	{0x24, OP_BIT, MODE_ZERO_PAGE, (*Cpu).bit},
	{0x2C, OP_BIT, MODE_ABSOLUTE, (*Cpu).bit},

	// Arithmetic
	{0x69, OP_ADC, MODE_IMMEDIATE, (*Cpu).adc},
	{0x65, OP_ADC, MODE_ZERO_PAGE, (*Cpu).adc},
	{0x6D, OP_ADC, MODE_ABSOLUTE, (*Cpu).adc},
	{0xE9, OP_SBC, MODE_IMMEDIATE, (*Cpu).sbc},
	{0xE5, OP_SBC, MODE_ZERO_PAGE, (*Cpu).sbc},
	{0xED, OP_SBC, MODE_ABSOLUTE, (*Cpu).sbc},
	{0xC9, OP_CMP, MODE_IMMEDIATE, (*Cpu).cmp},
	{0xC5, OP_CMP, MODE_ZERO_PAGE, (*Cpu).cmp},
	{0xCD, OP_CMP, MODE_ABSOLUTE, (*Cpu).cmp},
	{0xE0, OP_CPX, MODE_IMMEDIATE, (*Cpu).cpx},
	{0xE4, OP_CPX, MODE_ZERO_PAGE, (*Cpu).cpx},
	{0xEC, OP_CPX, MODE_ABSOLUTE, (*Cpu).cpx},
	{0xC0, OP_CPY, MODE_IMMEDIATE, (*Cpu).cpy},
	{0xC4, OP_CPY, MODE_ZERO_PAGE, (*Cpu).cpy},
	{0xCC, OP_CPY, MODE_ABSOLUTE, (*Cpu).cpy},

	// Increment & decrement
	{0xE6, OP_INC, MODE_ZERO_PAGE, (*Cpu).inc},
	{0xEE, OP_INC, MODE_ABSOLUTE, (*Cpu).inc},
	{0xC6, OP_DEC, MODE_ZERO_PAGE, (*Cpu).dec},
	{0xCE, OP_DEC, MODE_ABSOLUTE, (*Cpu).dec},
	{0xE8, OP_INX, MODE_IMPLIED, (*Cpu).inx},
	{0xC8, OP_INY, MODE_IMPLIED, (*Cpu).iny},
	{0xCA, OP_DEX, MODE_IMPLIED, (*Cpu).dex},
	{0x88, OP_DEY, MODE_IMPLIED, (*Cpu).dey},

	// Shifts & rotates
	{0x0A, OP_ASL, MODE_ACCUMULATOR, (*Cpu).asl},
	{0x06, OP_ASL, MODE_ZERO_PAGE, (*Cpu).asl},
	{0x0E, OP_ASL, MODE_ABSOLUTE, (*Cpu).asl},
	{0x4A, OP_LSR, MODE_ACCUMULATOR, (*Cpu).lsr},
	{0x46, OP_LSR, MODE_ZERO_PAGE, (*Cpu).lsr},
	{0x4E, OP_LSR, MODE_ABSOLUTE, (*Cpu).lsr},
	{0x2A, OP_ROL, MODE_ACCUMULATOR, (*Cpu).rol},
	{0x26, OP_ROL, MODE_ZERO_PAGE, (*Cpu).rol},
	{0x2E, OP_ROL, MODE_ABSOLUTE, (*Cpu).rol},
	{0x6A, OP_ROR, MODE_ACCUMULATOR, (*Cpu).ror},
	{0x66, OP_ROR, MODE_ZERO_PAGE, (*Cpu).ror},
	{0x6E, OP_ROR, MODE_ABSOLUTE, (*Cpu).ror},

	// Jumps & calls
	{0x4C, OP_JMP, MODE_ABSOLUTE, (*Cpu).jmp},
	{0x6C, OP_JMP, MODE_INDIRECT, (*Cpu).jmp},
	{0x20, OP_JSR, MODE_ABSOLUTE, (*Cpu).jsr},
	{0x60, OP_RTS, MODE_IMPLIED, (*Cpu).rts},
	{0x40, OP_RTI, MODE_IMPLIED, (*Cpu).rti},

	// Branches
	{0x90, OP_BCC, MODE_RELATIVE, (*Cpu).bcc},
	{0xB0, OP_BCS, MODE_RELATIVE, (*Cpu).bcs},
	{0xF0, OP_BEQ, MODE_RELATIVE, (*Cpu).beq},
	{0x30, OP_BMI, MODE_RELATIVE, (*Cpu).bmi},
	{0xD0, OP_BNE, MODE_RELATIVE, (*Cpu).bne},
	{0x10, OP_BPL, MODE_RELATIVE, (*Cpu).bpl},
	{0x50, OP_BVC, MODE_RELATIVE, (*Cpu).bvc},
	{0x70, OP_BVS, MODE_RELATIVE, (*Cpu).bvs},

	// Flags
	{0x18, OP_CLC, MODE_IMPLIED, (*Cpu).clc},
	{0x38, OP_SEC, MODE_IMPLIED, (*Cpu).sec},
	{0x58, OP_CLI, MODE_IMPLIED, (*Cpu).cli},
	{0x78, OP_SEI, MODE_IMPLIED, (*Cpu).sei},
	{0xB8, OP_CLV, MODE_IMPLIED, (*Cpu).clv},
	{0xD8, OP_CLD, MODE_IMPLIED, (*Cpu).cld},
	{0xF8, OP_SED, MODE_IMPLIED, (*Cpu).sed},

	// System
	{0xEA, OP_NOP, MODE_IMPLIED, (*Cpu).nop},
	{0x00, OP_BRK, MODE_IMPLIED, (*Cpu).brk},
}

// encoding is a mnemonic and addressing mode pair.
type encoding struct {
	mnemonic Mnemonic
	mode     Mode
}

// Table is the opcode dispatch table. It is immutable once built.
type Table struct {
	entry  [256]*Operation
	encode map[encoding]uint8
}

// newTable builds a dispatch table from a list of operations.
func newTable(ops []Operation) (table *Table) {
	table = &Table{
		encode: make(map[encoding]uint8, len(ops)),
	}

	for n := range ops {
		op := &ops[n]
		if table.entry[op.Opcode] != nil {
			panic(fmt.Sprintf("opcode 0x%02x duplicated", op.Opcode))
		}
		if op.Behavior == nil {
			panic(fmt.Sprintf("opcode 0x%02x has no behavior", op.Opcode))
		}
		table.entry[op.Opcode] = op
		table.encode[encoding{op.Mnemonic, op.Mode}] = op.Opcode
	}

	return
}

// opcodeTable is shared, read-only, by every CPU.
var opcodeTable = newTable(opcodeList)

// DefaultTable returns the process wide dispatch table.
func DefaultTable() *Table {
	return opcodeTable
}

// Lookup returns the operation for an opcode, if one exists.
func (table *Table) Lookup(opcode uint8) (op *Operation, ok bool) {
	op = table.entry[opcode]
	ok = op != nil
	return
}

// Encode returns the opcode for a mnemonic and addressing mode.
func (table *Table) Encode(mn Mnemonic, mode Mode) (opcode uint8, ok bool) {
	opcode, ok = table.encode[encoding{mn, mode}]
	return
}

// Operations iterates over all defined operations, in opcode order.
func (table *Table) Operations() iter.Seq[*Operation] {
	return func(yield func(op *Operation) bool) {
		for _, op := range table.entry {
			if op == nil {
				continue
			}
			if !yield(op) {
				return
			}
		}
	}
}
