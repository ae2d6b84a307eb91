package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"
)

const (
	STACK_PAGE  = uint16(0x0100) // Base address of the stack page.
	STACK_RESET = uint8(0xff)    // Stack pointer after reset.
)

var _cpu_defines = map[string]string{
	"STACK_PAGE":     fmt.Sprintf("$%04X", STACK_PAGE),
	"FLAG_CARRY":     fmt.Sprintf("$%02X", uint8(FLAG_CARRY)),
	"FLAG_ZERO":      fmt.Sprintf("$%02X", uint8(FLAG_ZERO)),
	"FLAG_INTERRUPT": fmt.Sprintf("$%02X", uint8(FLAG_INTERRUPT)),
	"FLAG_DECIMAL":   fmt.Sprintf("$%02X", uint8(FLAG_DECIMAL)),
	"FLAG_BREAK":     fmt.Sprintf("$%02X", uint8(FLAG_BREAK)),
	"FLAG_OVERFLOW":  fmt.Sprintf("$%02X", uint8(FLAG_OVERFLOW)),
	"FLAG_NEGATIVE":  fmt.Sprintf("$%02X", uint8(FLAG_NEGATIVE)),
}

// Memory is the address space the CPU executes against.
type Memory interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
}

// Registers is the register and flag file of the CPU.
type Registers struct {
	A      uint8  // Accumulator.
	X      uint8  // X index register.
	Y      uint8  // Y index register.
	SP     uint8  // Stack pointer, offset into the stack page.
	PC     uint16 // Program counter.
	Status Status // Status flags.
}

func (reg Registers) String() string {
	return fmt.Sprintf("PC:%04X A:%02X X:%02X Y:%02X SP:%02X P:%02X %v",
		reg.PC, reg.A, reg.X, reg.Y, reg.SP, uint8(reg.Status), reg.Status)
}

// Cpu is the simulation context of the processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Registers // Register and flag file.

	Ticks int // Instructions executed since reset.

	table *Table // Dispatch table.
}

// NewCpu creates a new CPU, in its reset state.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		table: DefaultTable(),
	}

	cpu.Reset()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset the CPU state.
// - Clears A, X, Y, and the status register.
// - Sets the stack pointer to the top of the stack page.
// - Sets the program counter to zero.
// - Zeros the tick counter.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Registers = Registers{
		SP: STACK_RESET,
	}
	cpu.Ticks = 0
}

// State returns a snapshot of the registers.
func (cpu *Cpu) State() Registers {
	return cpu.Registers
}

// Fetch decodes the opcode at the program counter.
func (cpu *Cpu) Fetch(mem Memory) (op *Operation, err error) {
	opcode := mem.Read(cpu.PC)

	op, ok := cpu.table.Lookup(opcode)
	if !ok {
		err = ErrInvalidOpcode{Opcode: opcode, Pc: cpu.PC}
		return
	}

	return
}

// Tick fetches, decodes and executes a single instruction.
func (cpu *Cpu) Tick(mem Memory) (err error) {
	op, err := cpu.Fetch(mem)
	if err != nil {
		return
	}

	if cpu.Verbose {
		text, _ := Disassemble(mem, cpu.PC)
		log.Printf("%04x: %v", cpu.PC, text)
	}

	cpu.Execute(mem, op)

	return
}

// Execute executes a single decoded instruction located at the program
// counter. Unless the instruction transfers control, the program counter
// then advances past the instruction and its operand.
func (cpu *Cpu) Execute(mem Memory, op *Operation) {
	next_pc := cpu.PC + uint16(op.Size())

	arg := cpu.resolve(mem, op.Mode)
	if !op.Behavior(cpu, mem, &arg) {
		cpu.PC = next_pc
	}

	cpu.Ticks += 1
}

// readWord reads a little-endian 16-bit value.
func readWord(mem Memory, addr uint16) uint16 {
	lo := mem.Read(addr)
	hi := mem.Read(addr + 1)
	return (uint16(hi) << 8) | uint16(lo)
}

// resolve reads the operand bytes following the opcode, and computes the
// operand value and effective address for the addressing mode.
func (cpu *Cpu) resolve(mem Memory, mode Mode) (arg Operand) {
	pc := cpu.PC

	arg.Mode = mode

	switch mode {
	case MODE_IMPLIED:
		// pass
	case MODE_ACCUMULATOR:
		arg.Value = cpu.A
	case MODE_IMMEDIATE:
		arg.Value = mem.Read(pc + 1)
	case MODE_ZERO_PAGE:
		arg.Address = uint16(mem.Read(pc + 1))
		arg.Value = mem.Read(arg.Address)
	case MODE_RELATIVE:
		disp := int8(mem.Read(pc + 1))
		arg.Value = uint8(disp)
		arg.Address = pc + 2 + uint16(disp)
	case MODE_ABSOLUTE:
		arg.Address = readWord(mem, pc+1)
		arg.Value = mem.Read(arg.Address)
	case MODE_INDIRECT:
		// The pointer's high byte is never carried into when fetching the
		// target, so a pointer of $xxFF reads its high byte from $xx00.
		ptr := readWord(mem, pc+1)
		lo := mem.Read(ptr)
		hi := mem.Read((ptr & 0xff00) | uint16(uint8(ptr)+1))
		arg.Address = (uint16(hi) << 8) | uint16(lo)
	}

	return
}
