package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/sixtyfive/memory"
)

const testOrigin = uint16(0x0600)

// newTestCpu creates a CPU with the program loaded at origin.
func newTestCpu(origin uint16, program ...uint8) (cpu *Cpu, mem *memory.Memory) {
	mem = memory.NewMemory()
	for n, b := range program {
		mem.Write(origin+uint16(n), b)
	}

	cpu = NewCpu()
	cpu.PC = origin

	return
}

// tickN executes count instructions, failing the test on any error.
func tickN(t *testing.T, cpu *Cpu, mem Memory, count int) {
	t.Helper()

	for range count {
		err := cpu.Tick(mem)
		if err != nil {
			t.Fatalf("%v: %v", cpu.Registers, err)
		}
	}
}

func TestCpuReset(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.A = 1
	cpu.X = 2
	cpu.Y = 3
	cpu.SP = 4
	cpu.PC = 5
	cpu.Status = 0xff
	cpu.Ticks = 6

	cpu.Reset()

	assert.Equal(Registers{SP: 0xff}, cpu.State())
	assert.Equal(0, cpu.Ticks)
}

func TestCpuStateSnapshot(t *testing.T) {
	assert := assert.New(t)

	cpu, mem := newTestCpu(testOrigin, 0xA9, 0x42)

	state := cpu.State()
	tickN(t, cpu, mem, 1)

	assert.Equal(uint8(0), state.A)
	assert.Equal(testOrigin, state.PC)
	assert.Equal(uint8(0x42), cpu.A)
}

func TestLoadFlags(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name     string
		program  []uint8
		a        uint8
		zero     bool
		negative bool
	}){
		{"lda_zero", []uint8{0xA9, 0x00}, 0x00, true, false},
		{"lda_negative", []uint8{0xA9, 0x80}, 0x80, false, true},
		{"lda_positive", []uint8{0xA9, 0x01}, 0x01, false, false},
	}

	for _, entry := range table {
		cpu, mem := newTestCpu(testOrigin, entry.program...)
		tickN(t, cpu, mem, 1)

		assert.Equal(entry.a, cpu.A, entry.name)
		assert.Equal(entry.zero, cpu.Status.Has(FLAG_ZERO), entry.name)
		assert.Equal(entry.negative, cpu.Status.Has(FLAG_NEGATIVE), entry.name)
		assert.Equal(testOrigin+2, cpu.PC, entry.name)
	}
}

func TestLoadStore(t *testing.T) {
	assert := assert.New(t)

	cpu, mem := newTestCpu(testOrigin,
		0xA9, 0x11, // LDA #$11
		0x8D, 0x00, 0x02, // STA $0200
		0xA2, 0x22, // LDX #$22
		0x86, 0x10, // STX $10
		0xA0, 0x33, // LDY #$33
		0x8C, 0x01, 0x02, // STY $0201
		0xA9, 0x00, // LDA #$00
		0xAD, 0x00, 0x02, // LDA $0200
		0xA6, 0x10, // LDX $10 (zero page)
		0xAC, 0x01, 0x02, // LDY $0201
		0x85, 0x11, // STA $11
		0xA5, 0x11, // LDA $11
		0x84, 0x12, // STY $12
		0xA4, 0x12, // LDY $12
		0x8E, 0x03, 0x02, // STX $0203
		0xAE, 0x03, 0x02, // LDX $0203
	)

	tickN(t, cpu, mem, 6)
	assert.Equal(uint8(0x11), mem.Read(0x0200))
	assert.Equal(uint8(0x22), mem.Read(0x0010))
	assert.Equal(uint8(0x33), mem.Read(0x0201))

	tickN(t, cpu, mem, 1)
	assert.True(cpu.Status.Has(FLAG_ZERO))

	tickN(t, cpu, mem, 9)
	assert.Equal(uint8(0x11), cpu.A)
	assert.Equal(uint8(0x22), cpu.X)
	assert.Equal(uint8(0x33), cpu.Y)
	assert.Equal(uint8(0x11), mem.Read(0x0011))
	assert.Equal(uint8(0x33), mem.Read(0x0012))
	assert.Equal(uint8(0x22), mem.Read(0x0203))
	assert.False(cpu.Status.Has(FLAG_ZERO))
	assert.Equal(testOrigin+38, cpu.PC)
	assert.Equal(16, cpu.Ticks)
}

func TestStoreNoFlags(t *testing.T) {
	assert := assert.New(t)

	cpu, mem := newTestCpu(testOrigin, 0x85, 0x20)
	cpu.A = 0
	cpu.Status = Status(FLAG_NEGATIVE)
	tickN(t, cpu, mem, 1)

	assert.Equal(Status(FLAG_NEGATIVE), cpu.Status)
}

func TestTransfers(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		opcode uint8
		setup  Registers
		expect Registers
	}){
		{"tax", 0xAA, Registers{A: 0x80}, Registers{A: 0x80, X: 0x80, Status: Status(FLAG_NEGATIVE)}},
		{"tay", 0xA8, Registers{A: 0x00, Y: 0x12}, Registers{Status: Status(FLAG_ZERO)}},
		{"txa", 0x8A, Registers{X: 0x7f}, Registers{A: 0x7f, X: 0x7f}},
		{"tya", 0x98, Registers{Y: 0xff}, Registers{A: 0xff, Y: 0xff, Status: Status(FLAG_NEGATIVE)}},
		{"tsx", 0xBA, Registers{SP: 0xf0}, Registers{SP: 0xf0, X: 0xf0, Status: Status(FLAG_NEGATIVE)}},
		{"txs", 0x9A, Registers{X: 0x00, Status: Status(FLAG_CARRY)}, Registers{SP: 0x00, Status: Status(FLAG_CARRY)}},
	}

	for _, entry := range table {
		cpu, mem := newTestCpu(testOrigin, entry.opcode)
		cpu.Registers = entry.setup
		cpu.PC = testOrigin
		tickN(t, cpu, mem, 1)

		entry.expect.PC = testOrigin + 1
		if entry.name != "txs" && entry.name != "tsx" {
			entry.expect.SP = entry.setup.SP
		}
		assert.Equal(entry.expect, cpu.Registers, entry.name)
	}
}

func TestLogical(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name     string
		program  []uint8
		a        uint8
		result   uint8
		zero     bool
		negative bool
	}){
		{"and_zero", []uint8{0x29, 0x0f}, 0xf0, 0x00, true, false},
		{"and_neg", []uint8{0x29, 0x80}, 0xf0, 0x80, false, true},
		{"ora_neg", []uint8{0x09, 0x80}, 0x01, 0x81, false, true},
		{"ora_zero", []uint8{0x09, 0x00}, 0x00, 0x00, true, false},
		{"eor_zero", []uint8{0x49, 0xff}, 0xff, 0x00, true, false},
		{"eor_pos", []uint8{0x49, 0x0f}, 0x00, 0x0f, false, false},
		{"and_zp", []uint8{0x25, 0x40}, 0xff, 0x81, false, true},
		{"ora_abs", []uint8{0x0D, 0x00, 0x03}, 0x00, 0x00, true, false},
		{"eor_abs", []uint8{0x4D, 0x40, 0x00}, 0x01, 0x80, false, true},
	}

	for _, entry := range table {
		cpu, mem := newTestCpu(testOrigin, entry.program...)
		mem.Write(0x0040, 0x81)
		cpu.A = entry.a
		tickN(t, cpu, mem, 1)

		assert.Equal(entry.result, cpu.A, entry.name)
		assert.Equal(entry.zero, cpu.Status.Has(FLAG_ZERO), entry.name)
		assert.Equal(entry.negative, cpu.Status.Has(FLAG_NEGATIVE), entry.name)
	}
}

func TestBit(t *testing.T) {
	assert := assert.New(t)

	cpu, mem := newTestCpu(testOrigin,
		0x24, 0x10, // BIT $10
		0x2C, 0x00, 0x02, // BIT $0200
	)
	mem.Write(0x0010, 0xc0)
	mem.Write(0x0200, 0x3f)
	cpu.A = 0x01

	tickN(t, cpu, mem, 1)
	assert.Equal(uint8(0x01), cpu.A)
	assert.True(cpu.Status.Has(FLAG_ZERO))
	assert.True(cpu.Status.Has(FLAG_NEGATIVE))
	assert.True(cpu.Status.Has(FLAG_OVERFLOW))

	tickN(t, cpu, mem, 1)
	assert.Equal(uint8(0x01), cpu.A)
	assert.False(cpu.Status.Has(FLAG_ZERO))
	assert.False(cpu.Status.Has(FLAG_NEGATIVE))
	assert.False(cpu.Status.Has(FLAG_OVERFLOW))
}

func TestCompare(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name     string
		program  []uint8
		reg      uint8
		carry    bool
		zero     bool
		negative bool
	}){
		{"cmp_eq", []uint8{0xC9, 0x10}, 0x10, true, true, false},
		{"cmp_lt", []uint8{0xC9, 0x20}, 0x10, false, false, true},
		{"cmp_gt", []uint8{0xC9, 0x05}, 0x10, true, false, false},
		{"cmp_unsigned", []uint8{0xC9, 0x01}, 0xff, true, false, true},
		{"cpx_eq", []uint8{0xE0, 0x42}, 0x42, true, true, false},
		{"cpx_zp", []uint8{0xE4, 0x30}, 0x00, false, false, true},
		{"cpy_abs", []uint8{0xCC, 0x30, 0x00}, 0x80, true, false, false},
		{"cpy_lt", []uint8{0xC0, 0x81}, 0x80, false, false, true},
		{"cmp_zp", []uint8{0xC5, 0x30}, 0x7f, true, true, false},
		{"cmp_abs", []uint8{0xCD, 0x30, 0x00}, 0x7e, false, false, true},
		{"cpx_abs", []uint8{0xEC, 0x30, 0x00}, 0x7f, true, true, false},
		{"cpy_zp", []uint8{0xC4, 0x30}, 0x00, false, false, true},
	}

	for _, entry := range table {
		cpu, mem := newTestCpu(testOrigin, entry.program...)
		mem.Write(0x0030, 0x7f)
		cpu.A = entry.reg
		cpu.X = entry.reg
		cpu.Y = entry.reg
		tickN(t, cpu, mem, 1)

		assert.Equal(entry.reg, cpu.A, entry.name)
		assert.Equal(entry.reg, cpu.X, entry.name)
		assert.Equal(entry.reg, cpu.Y, entry.name)
		assert.Equal(entry.carry, cpu.Status.Has(FLAG_CARRY), entry.name)
		assert.Equal(entry.zero, cpu.Status.Has(FLAG_ZERO), entry.name)
		assert.Equal(entry.negative, cpu.Status.Has(FLAG_NEGATIVE), entry.name)
	}
}

func TestAdcExhaustive(t *testing.T) {
	cpu, mem := newTestCpu(testOrigin)

	for a := range 256 {
		for b := range 256 {
			for carry := range 2 {
				mem.Write(testOrigin, 0x69)
				mem.Write(testOrigin+1, uint8(b))
				cpu.PC = testOrigin
				cpu.A = uint8(a)
				cpu.Status.Set(FLAG_CARRY, carry == 1)

				err := cpu.Tick(mem)
				if err != nil {
					t.Fatal(err)
				}

				sum := a + b + carry
				result := uint8(sum)
				overflow := (int8(a) >= 0) == (int8(b) >= 0) && (int8(result) >= 0) != (int8(a) >= 0)
				if cpu.A != result ||
					cpu.Status.Has(FLAG_CARRY) != (sum > 0xff) ||
					cpu.Status.Has(FLAG_ZERO) != (result == 0) ||
					cpu.Status.Has(FLAG_NEGATIVE) != (result >= 0x80) ||
					cpu.Status.Has(FLAG_OVERFLOW) != overflow {
					t.Fatalf("adc %02x + %02x + %d: got %v", a, b, carry, cpu.Registers)
				}
			}
		}
	}
}

func TestAdcSbc(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name     string
		program  []uint8
		a        uint8
		carryIn  bool
		result   uint8
		carry    bool
		overflow bool
	}){
		{"adc_overflow", []uint8{0x69, 0x50}, 0x50, false, 0xa0, false, true},
		{"adc_carry_overflow", []uint8{0x69, 0x90}, 0xd0, false, 0x60, true, true},
		{"adc_plain", []uint8{0x69, 0x10}, 0x50, false, 0x60, false, false},
		{"adc_carry_in", []uint8{0x69, 0x10}, 0x50, true, 0x61, false, false},
		{"adc_wrap", []uint8{0x69, 0x01}, 0xff, false, 0x00, true, false},
		{"adc_zp", []uint8{0x65, 0x30}, 0x01, false, 0x03, false, false},
		{"adc_abs", []uint8{0x6D, 0x30, 0x00}, 0x01, true, 0x04, false, false},
		{"sbc_borrow", []uint8{0xE9, 0xf0}, 0x50, true, 0x60, false, false},
		{"sbc_overflow", []uint8{0xE9, 0xb0}, 0x50, true, 0xa0, false, true},
		{"sbc_no_borrow", []uint8{0xE9, 0x30}, 0x50, true, 0x20, true, false},
		{"sbc_carry_clear", []uint8{0xE9, 0x30}, 0x50, false, 0x1f, true, false},
		{"sbc_zp", []uint8{0xE5, 0x30}, 0x05, true, 0x03, true, false},
		{"sbc_abs", []uint8{0xED, 0x30, 0x00}, 0x00, true, 0xfe, false, false},
	}

	for _, entry := range table {
		cpu, mem := newTestCpu(testOrigin, entry.program...)
		mem.Write(0x0030, 0x02)
		cpu.A = entry.a
		cpu.Status.Set(FLAG_CARRY, entry.carryIn)
		tickN(t, cpu, mem, 1)

		assert.Equal(entry.result, cpu.A, entry.name)
		assert.Equal(entry.carry, cpu.Status.Has(FLAG_CARRY), entry.name)
		assert.Equal(entry.overflow, cpu.Status.Has(FLAG_OVERFLOW), entry.name)
		assert.Equal(entry.result == 0, cpu.Status.Has(FLAG_ZERO), entry.name)
		assert.Equal(entry.result >= 0x80, cpu.Status.Has(FLAG_NEGATIVE), entry.name)
	}
}

func TestIncDec(t *testing.T) {
	assert := assert.New(t)

	cpu, mem := newTestCpu(testOrigin,
		0xE6, 0x10, // INC $10
		0xCE, 0x00, 0x02, // DEC $0200
		0xE8,       // INX
		0xC8,       // INY
		0xCA,       // DEX
		0x88,       // DEY
		0xEE, 0x01, 0x02, // INC $0201
		0xC6, 0x11, // DEC $11
	)
	mem.Write(0x0010, 0xff)
	mem.Write(0x0200, 0x00)
	mem.Write(0x0201, 0x7f)
	mem.Write(0x0011, 0x01)
	cpu.X = 0xff
	cpu.Y = 0x7f

	tickN(t, cpu, mem, 1)
	assert.Equal(uint8(0x00), mem.Read(0x0010))
	assert.True(cpu.Status.Has(FLAG_ZERO))

	tickN(t, cpu, mem, 1)
	assert.Equal(uint8(0xff), mem.Read(0x0200))
	assert.True(cpu.Status.Has(FLAG_NEGATIVE))

	tickN(t, cpu, mem, 1)
	assert.Equal(uint8(0x00), cpu.X)
	assert.True(cpu.Status.Has(FLAG_ZERO))

	tickN(t, cpu, mem, 1)
	assert.Equal(uint8(0x80), cpu.Y)
	assert.True(cpu.Status.Has(FLAG_NEGATIVE))

	tickN(t, cpu, mem, 1)
	assert.Equal(uint8(0xff), cpu.X)
	assert.True(cpu.Status.Has(FLAG_NEGATIVE))

	tickN(t, cpu, mem, 1)
	assert.Equal(uint8(0x7f), cpu.Y)
	assert.False(cpu.Status.Has(FLAG_NEGATIVE))
	assert.False(cpu.Status.Has(FLAG_ZERO))

	tickN(t, cpu, mem, 1)
	assert.Equal(uint8(0x80), mem.Read(0x0201))
	assert.True(cpu.Status.Has(FLAG_NEGATIVE))

	tickN(t, cpu, mem, 1)
	assert.Equal(uint8(0x00), mem.Read(0x0011))
	assert.True(cpu.Status.Has(FLAG_ZERO))
}

func TestShifts(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name     string
		program  []uint8
		value    uint8
		carryIn  bool
		result   uint8
		carry    bool
		zero     bool
		negative bool
	}){
		{"asl_a", []uint8{0x0A}, 0x81, false, 0x02, true, false, false},
		{"asl_zp", []uint8{0x06, 0x30}, 0x40, false, 0x80, false, false, true},
		{"asl_abs", []uint8{0x0E, 0x30, 0x00}, 0x80, true, 0x00, true, true, false},
		{"lsr_a", []uint8{0x4A}, 0x01, false, 0x00, true, true, false},
		{"lsr_zp", []uint8{0x46, 0x30}, 0x80, true, 0x40, false, false, false},
		{"lsr_abs", []uint8{0x4E, 0x30, 0x00}, 0xff, false, 0x7f, true, false, false},
		{"rol_a", []uint8{0x2A}, 0x80, true, 0x01, true, false, false},
		{"rol_zp", []uint8{0x26, 0x30}, 0x40, false, 0x80, false, false, true},
		{"rol_abs", []uint8{0x2E, 0x30, 0x00}, 0x80, false, 0x00, true, true, false},
		{"ror_a", []uint8{0x6A}, 0x01, true, 0x80, true, false, true},
		{"ror_zp", []uint8{0x66, 0x30}, 0x02, false, 0x01, false, false, false},
		{"ror_abs", []uint8{0x6E, 0x30, 0x00}, 0x01, false, 0x00, true, true, false},
	}

	for _, entry := range table {
		cpu, mem := newTestCpu(testOrigin, entry.program...)
		cpu.Status.Set(FLAG_CARRY, entry.carryIn)

		accumulator := len(entry.program) == 1
		if accumulator {
			cpu.A = entry.value
		} else {
			mem.Write(0x0030, entry.value)
			cpu.A = 0x5a
		}

		tickN(t, cpu, mem, 1)

		if accumulator {
			assert.Equal(entry.result, cpu.A, entry.name)
		} else {
			assert.Equal(entry.result, mem.Read(0x0030), entry.name)
			assert.Equal(uint8(0x5a), cpu.A, entry.name)
		}
		assert.Equal(entry.carry, cpu.Status.Has(FLAG_CARRY), entry.name)
		assert.Equal(entry.zero, cpu.Status.Has(FLAG_ZERO), entry.name)
		assert.Equal(entry.negative, cpu.Status.Has(FLAG_NEGATIVE), entry.name)
		assert.Equal(testOrigin+uint16(len(entry.program)), cpu.PC, entry.name)
	}
}

func TestBranches(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		opcode uint8
		flag   Flag
		set    bool // branch taken when flag is in this state
	}){
		{"bcc", 0x90, FLAG_CARRY, false},
		{"bcs", 0xB0, FLAG_CARRY, true},
		{"beq", 0xF0, FLAG_ZERO, true},
		{"bne", 0xD0, FLAG_ZERO, false},
		{"bmi", 0x30, FLAG_NEGATIVE, true},
		{"bpl", 0x10, FLAG_NEGATIVE, false},
		{"bvc", 0x50, FLAG_OVERFLOW, false},
		{"bvs", 0x70, FLAG_OVERFLOW, true},
	}

	for _, entry := range table {
		for _, state := range []bool{false, true} {
			for _, disp := range []uint8{0x10, 0xfb, 0x00, 0x7f, 0x80} {
				cpu, mem := newTestCpu(testOrigin, entry.opcode, disp)
				// Other flags set, to check bit presence testing.
				cpu.Status = 0xff
				cpu.Status.Set(entry.flag, state)
				tickN(t, cpu, mem, 1)

				expect := testOrigin + 2
				if state == entry.set {
					expect = uint16(int(testOrigin) + 2 + int(int8(disp)))
				}
				assert.Equal(expect, cpu.PC, "%v %v %02x", entry.name, state, disp)
			}
		}
	}
}

func TestBranchWrap(t *testing.T) {
	assert := assert.New(t)

	// Forward across the top of memory.
	cpu, mem := newTestCpu(0xfffc, 0xD0, 0x10) // BNE $10
	tickN(t, cpu, mem, 1)
	assert.Equal(uint16(0x000e), cpu.PC)

	// Backward across the bottom of memory.
	cpu, mem = newTestCpu(0x0002, 0xF0, 0xf0) // BEQ $F0
	cpu.Status.Set(FLAG_ZERO, true)
	tickN(t, cpu, mem, 1)
	assert.Equal(uint16(0xfff4), cpu.PC)
}

func TestJumps(t *testing.T) {
	assert := assert.New(t)

	// JMP absolute
	cpu, mem := newTestCpu(testOrigin, 0x4C, 0x34, 0x12)
	tickN(t, cpu, mem, 1)
	assert.Equal(uint16(0x1234), cpu.PC)

	// JMP indirect
	cpu, mem = newTestCpu(testOrigin, 0x6C, 0x00, 0x03)
	mem.Write(0x0300, 0x78)
	mem.Write(0x0301, 0x56)
	tickN(t, cpu, mem, 1)
	assert.Equal(uint16(0x5678), cpu.PC)

	// JMP indirect, pointer at the end of a page: the high byte of the
	// target comes from the start of the same page.
	cpu, mem = newTestCpu(testOrigin, 0x6C, 0xff, 0x02)
	mem.Write(0x02ff, 0x34)
	mem.Write(0x0200, 0x12)
	mem.Write(0x0300, 0x99)
	tickN(t, cpu, mem, 1)
	assert.Equal(uint16(0x1234), cpu.PC)
}

func TestJsrRts(t *testing.T) {
	assert := assert.New(t)

	cpu, mem := newTestCpu(testOrigin,
		0x20, 0x00, 0x07, // JSR $0700
		0xEA, // NOP
	)
	mem.Write(0x0700, 0x60) // RTS

	tickN(t, cpu, mem, 1)
	assert.Equal(uint16(0x0700), cpu.PC)
	assert.Equal(uint8(0xfd), cpu.SP)
	assert.Equal(uint8(0x06), mem.Read(0x01ff))
	assert.Equal(uint8(0x02), mem.Read(0x01fe))
	assert.Equal([]uint8{0x02, 0x06}, cpu.Stack(mem))

	tickN(t, cpu, mem, 1)
	assert.Equal(testOrigin+3, cpu.PC)
	assert.Equal(uint8(0xff), cpu.SP)
	assert.Empty(cpu.Stack(mem))
}

func TestRti(t *testing.T) {
	assert := assert.New(t)

	cpu, mem := newTestCpu(testOrigin, 0x40)
	cpu.SP = 0xfc
	mem.Write(0x01fd, uint8(FLAG_CARRY|FLAG_NEGATIVE|FLAG_UNUSED))
	mem.Write(0x01fe, 0x34)
	mem.Write(0x01ff, 0x12)

	tickN(t, cpu, mem, 1)
	assert.Equal(uint16(0x1234), cpu.PC)
	assert.Equal(uint8(0xff), cpu.SP)
	assert.Equal(Status(FLAG_CARRY|FLAG_NEGATIVE), cpu.Status)
}

func TestStackOps(t *testing.T) {
	assert := assert.New(t)

	cpu, mem := newTestCpu(testOrigin,
		0x48, // PHA
		0x08, // PHP
		0xA9, 0x00, // LDA #$00
		0x28, // PLP
		0x68, // PLA
	)
	cpu.A = 0x80
	cpu.Status = Status(FLAG_CARRY | FLAG_OVERFLOW)

	tickN(t, cpu, mem, 2)
	assert.Equal(uint8(0xfd), cpu.SP)
	assert.Equal(uint8(0x80), mem.Read(0x01ff))
	assert.Equal(uint8(FLAG_CARRY|FLAG_OVERFLOW), mem.Read(0x01fe))

	tickN(t, cpu, mem, 1)
	assert.True(cpu.Status.Has(FLAG_ZERO))

	tickN(t, cpu, mem, 1)
	assert.Equal(Status(FLAG_CARRY|FLAG_OVERFLOW), cpu.Status)

	tickN(t, cpu, mem, 1)
	assert.Equal(uint8(0x80), cpu.A)
	assert.True(cpu.Status.Has(FLAG_NEGATIVE))
	assert.Equal(uint8(0xff), cpu.SP)
}

func TestStackWrap(t *testing.T) {
	assert := assert.New(t)

	cpu, mem := newTestCpu(testOrigin, 0x48, 0x68) // PHA, PLA
	cpu.SP = 0x00
	cpu.A = 0x42

	tickN(t, cpu, mem, 1)
	assert.Equal(uint8(0x42), mem.Read(0x0100))
	assert.Equal(uint8(0xff), cpu.SP)

	cpu.A = 0
	tickN(t, cpu, mem, 1)
	assert.Equal(uint8(0x00), cpu.SP)
	assert.Equal(uint8(0x42), cpu.A)
}

func TestFlagOps(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		opcode uint8
		flag   Flag
		value  bool
	}){
		{"clc", 0x18, FLAG_CARRY, false},
		{"sec", 0x38, FLAG_CARRY, true},
		{"cli", 0x58, FLAG_INTERRUPT, false},
		{"sei", 0x78, FLAG_INTERRUPT, true},
		{"clv", 0xB8, FLAG_OVERFLOW, false},
		{"cld", 0xD8, FLAG_DECIMAL, false},
		{"sed", 0xF8, FLAG_DECIMAL, true},
	}

	for _, entry := range table {
		for _, initial := range []Status{0x00, 0xff} {
			cpu, mem := newTestCpu(testOrigin, entry.opcode)
			cpu.Status = initial
			tickN(t, cpu, mem, 1)

			expect := initial
			expect.Set(entry.flag, entry.value)
			assert.Equal(expect, cpu.Status, entry.name)
			assert.Equal(testOrigin+1, cpu.PC, entry.name)
		}
	}
}

func TestNopBrk(t *testing.T) {
	assert := assert.New(t)

	cpu, mem := newTestCpu(testOrigin, 0xEA, 0x00)
	tickN(t, cpu, mem, 1)
	assert.Equal(Registers{SP: 0xff, PC: testOrigin + 1}, cpu.Registers)

	tickN(t, cpu, mem, 1)
	assert.Equal(testOrigin+2, cpu.PC)
	assert.Equal(Status(FLAG_BREAK), cpu.Status)
	assert.Equal(uint8(0xff), cpu.SP)
}

func TestInvalidOpcode(t *testing.T) {
	assert := assert.New(t)

	cpu, mem := newTestCpu(testOrigin, 0x02)
	err := cpu.Tick(mem)

	assert.Error(err)
	assert.True(errors.Is(err, ErrInvalidOpcode{}))
	assert.Equal(ErrInvalidOpcode{Opcode: 0x02, Pc: testOrigin}, err)
	assert.Equal(testOrigin, cpu.PC)
	assert.Equal(0, cpu.Ticks)
}

func TestCpuDefines(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	defines := map[string]string{}
	for key, value := range cpu.Defines() {
		defines[key] = value
	}

	assert.Equal("$0100", defines["STACK_PAGE"])
	assert.Equal("$01", defines["FLAG_CARRY"])
	assert.Equal("$80", defines["FLAG_NEGATIVE"])
}
