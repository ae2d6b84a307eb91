// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/sixtyfive/cpu"
	"github.com/ezrec/sixtyfive/internal"
	"github.com/ezrec/sixtyfive/memory"
)

const (
	LOAD_BASE  = cpu.DEFAULT_ORIGIN // Default program load address.
	OPCODE_BRK = uint8(0x00)        // Opcode that ends RunUntilBreak.
)

var _emulator_defines = map[string]string{
	"LOAD_BASE": fmt.Sprintf("$%04X", LOAD_BASE),
}

// Emulator state. CPU + memory + the listing of the loaded program.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Listing of the loaded program, if assembled.

	memory *memory.Memory
}

// NewEmulator creates a new emulator, in its reset state.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
		memory:  memory.NewMemory(),
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.Concat2(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Reset the registers, and clear memory.
func (emu *Emulator) Reset() {
	if emu.Verbose {
		log.Printf("emulator: reset")
	}

	emu.Cpu.Reset()
	emu.memory.Clear()
	emu.Program = &cpu.Program{}
}

// LoadProgram copies a program into memory at base, and points the program
// counter at it. Nothing is written if the program does not fit.
func (emu *Emulator) LoadProgram(data []uint8, base uint16) (err error) {
	if int(base)+len(data) > memory.SIZE {
		err = ErrProgramTooLarge{Base: base, Length: len(data)}
		return
	}

	if emu.Verbose {
		log.Printf("emulator: load %d bytes at $%04X", len(data), base)
	}

	copy(emu.memory.Bytes()[base:], data)
	emu.Cpu.PC = base

	return
}

// Load an assembled program at its origin, retaining its listing.
func (emu *Emulator) Load(prog *cpu.Program) (err error) {
	err = emu.LoadProgram(prog.Binary(), prog.Origin)
	if err != nil {
		return
	}

	emu.Program = prog

	return
}

// State returns a snapshot of the registers.
func (emu *Emulator) State() cpu.Registers {
	return emu.Cpu.State()
}

// ReadMemory returns the byte at addr.
func (emu *Emulator) ReadMemory(addr uint16) uint8 {
	return emu.memory.Read(addr)
}

// Memory returns the memory of the emulator.
func (emu *Emulator) Memory() *memory.Memory {
	return emu.memory
}

// LineNo returns the listing line number for the instruction at the
// program counter, or zero if there is none.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Cpu.PC)
	if dbg.Line == nil {
		return 0
	}

	return dbg.LineNo
}

// step executes a single instruction, wrapping any failure with its location.
func (emu *Emulator) step() (opcode uint8, err error) {
	emu.Cpu.Verbose = emu.Verbose

	pc := emu.Cpu.PC
	opcode = emu.memory.Read(pc)

	err = emu.Cpu.Tick(emu.memory)
	if err != nil {
		err = &ErrRuntime{LineNo: emu.LineNo(), Pc: pc, Err: err}
		return
	}

	return
}

// Tick executes n instructions, returning the number actually executed.
// Execution stops early only on a failure.
func (emu *Emulator) Tick(n int) (count int, err error) {
	for count < n {
		_, err = emu.step()
		if err != nil {
			return
		}
		count++
	}

	return
}

// RunUntilBreak executes until a BRK has been executed, returning the number
// of instructions executed, BRK included.
func (emu *Emulator) RunUntilBreak() (count int, err error) {
	return emu.RunUntilBreakLimit(0)
}

// RunUntilBreakLimit is RunUntilBreak, stopping with ErrStepLimit after max
// instructions. A max of zero is unbounded.
func (emu *Emulator) RunUntilBreakLimit(max int) (count int, err error) {
	for {
		if max > 0 && count >= max {
			err = ErrStepLimit
			return
		}

		var opcode uint8
		opcode, err = emu.step()
		if err != nil {
			return
		}
		count++

		if opcode == OPCODE_BRK {
			if emu.Verbose {
				log.Printf("emulator: BRK at $%04X after %d instructions", emu.Cpu.PC-1, count)
			}
			return
		}
	}
}
