package cpu

// store writes a read-modify-write result back to the accumulator or memory.
func (cpu *Cpu) store(mem Memory, arg *Operand, value uint8) {
	if arg.Mode == MODE_ACCUMULATOR {
		cpu.A = value
	} else {
		mem.Write(arg.Address, value)
	}
}

// branch takes a relative branch if cond holds.
func (cpu *Cpu) branch(arg *Operand, cond bool) (jump bool) {
	if cond {
		cpu.PC = arg.Address
		jump = true
	}
	return
}

// addWithCarry adds value and the carry flag to the accumulator.
func (cpu *Cpu) addWithCarry(value uint8) {
	var carry uint16
	if cpu.Status.Has(FLAG_CARRY) {
		carry = 1
	}

	a := cpu.A
	sum := uint16(a) + uint16(value) + carry
	result := uint8(sum)

	cpu.Status.Set(FLAG_CARRY, sum > 0xff)
	cpu.Status.Set(FLAG_OVERFLOW, (^(a^value)&(a^result)&0x80) != 0)
	cpu.Status.setNZ(result)
	cpu.A = result
}

// compare sets the flags for reg - value.
func (cpu *Cpu) compare(reg uint8, value uint8) {
	cpu.Status.Set(FLAG_CARRY, reg >= value)
	cpu.Status.setNZ(reg - value)
}

func (cpu *Cpu) lda(mem Memory, arg *Operand) bool {
	cpu.A = arg.Value
	cpu.Status.setNZ(cpu.A)
	return false
}

func (cpu *Cpu) ldx(mem Memory, arg *Operand) bool {
	cpu.X = arg.Value
	cpu.Status.setNZ(cpu.X)
	return false
}

func (cpu *Cpu) ldy(mem Memory, arg *Operand) bool {
	cpu.Y = arg.Value
	cpu.Status.setNZ(cpu.Y)
	return false
}

func (cpu *Cpu) sta(mem Memory, arg *Operand) bool {
	mem.Write(arg.Address, cpu.A)
	return false
}

func (cpu *Cpu) stx(mem Memory, arg *Operand) bool {
	mem.Write(arg.Address, cpu.X)
	return false
}

func (cpu *Cpu) sty(mem Memory, arg *Operand) bool {
	mem.Write(arg.Address, cpu.Y)
	return false
}

func (cpu *Cpu) tax(mem Memory, arg *Operand) bool {
	cpu.X = cpu.A
	cpu.Status.setNZ(cpu.X)
	return false
}

func (cpu *Cpu) tay(mem Memory, arg *Operand) bool {
	cpu.Y = cpu.A
	cpu.Status.setNZ(cpu.Y)
	return false
}

func (cpu *Cpu) tsx(mem Memory, arg *Operand) bool {
	cpu.X = cpu.SP
	cpu.Status.setNZ(cpu.X)
	return false
}

func (cpu *Cpu) txa(mem Memory, arg *Operand) bool {
	cpu.A = cpu.X
	cpu.Status.setNZ(cpu.A)
	return false
}

// txs is the only transfer that leaves the flags alone.
func (cpu *Cpu) txs(mem Memory, arg *Operand) bool {
	cpu.SP = cpu.X
	return false
}

func (cpu *Cpu) tya(mem Memory, arg *Operand) bool {
	cpu.A = cpu.Y
	cpu.Status.setNZ(cpu.A)
	return false
}

func (cpu *Cpu) pha(mem Memory, arg *Operand) bool {
	cpu.push(mem, cpu.A)
	return false
}

func (cpu *Cpu) pla(mem Memory, arg *Operand) bool {
	cpu.A = cpu.pull(mem)
	cpu.Status.setNZ(cpu.A)
	return false
}

func (cpu *Cpu) php(mem Memory, arg *Operand) bool {
	cpu.push(mem, uint8(cpu.Status))
	return false
}

func (cpu *Cpu) plp(mem Memory, arg *Operand) bool {
	cpu.Status.Load(cpu.pull(mem))
	return false
}

func (cpu *Cpu) and(mem Memory, arg *Operand) bool {
	cpu.A &= arg.Value
	cpu.Status.setNZ(cpu.A)
	return false
}

func (cpu *Cpu) ora(mem Memory, arg *Operand) bool {
	cpu.A |= arg.Value
	cpu.Status.setNZ(cpu.A)
	return false
}

func (cpu *Cpu) eor(mem Memory, arg *Operand) bool {
	cpu.A ^= arg.Value
	cpu.Status.setNZ(cpu.A)
	return false
}

func (cpu *Cpu) bit(mem Memory, arg *Operand) bool {
	cpu.Status.Set(FLAG_ZERO, (cpu.A&arg.Value) == 0)
	cpu.Status.Set(FLAG_NEGATIVE, (arg.Value&0x80) != 0)
	cpu.Status.Set(FLAG_OVERFLOW, (arg.Value&0x40) != 0)
	return false
}

func (cpu *Cpu) adc(mem Memory, arg *Operand) bool {
	cpu.addWithCarry(arg.Value)
	return false
}

// sbc is adc of the one's complement of the operand.
func (cpu *Cpu) sbc(mem Memory, arg *Operand) bool {
	cpu.addWithCarry(arg.Value ^ 0xff)
	return false
}

func (cpu *Cpu) cmp(mem Memory, arg *Operand) bool {
	cpu.compare(cpu.A, arg.Value)
	return false
}

func (cpu *Cpu) cpx(mem Memory, arg *Operand) bool {
	cpu.compare(cpu.X, arg.Value)
	return false
}

func (cpu *Cpu) cpy(mem Memory, arg *Operand) bool {
	cpu.compare(cpu.Y, arg.Value)
	return false
}

func (cpu *Cpu) inc(mem Memory, arg *Operand) bool {
	value := arg.Value + 1
	mem.Write(arg.Address, value)
	cpu.Status.setNZ(value)
	return false
}

func (cpu *Cpu) dec(mem Memory, arg *Operand) bool {
	value := arg.Value - 1
	mem.Write(arg.Address, value)
	cpu.Status.setNZ(value)
	return false
}

func (cpu *Cpu) inx(mem Memory, arg *Operand) bool {
	cpu.X++
	cpu.Status.setNZ(cpu.X)
	return false
}

func (cpu *Cpu) iny(mem Memory, arg *Operand) bool {
	cpu.Y++
	cpu.Status.setNZ(cpu.Y)
	return false
}

func (cpu *Cpu) dex(mem Memory, arg *Operand) bool {
	cpu.X--
	cpu.Status.setNZ(cpu.X)
	return false
}

func (cpu *Cpu) dey(mem Memory, arg *Operand) bool {
	cpu.Y--
	cpu.Status.setNZ(cpu.Y)
	return false
}

func (cpu *Cpu) asl(mem Memory, arg *Operand) bool {
	value := arg.Value << 1
	cpu.Status.Set(FLAG_CARRY, (arg.Value&0x80) != 0)
	cpu.Status.setNZ(value)
	cpu.store(mem, arg, value)
	return false
}

func (cpu *Cpu) lsr(mem Memory, arg *Operand) bool {
	value := arg.Value >> 1
	cpu.Status.Set(FLAG_CARRY, (arg.Value&0x01) != 0)
	cpu.Status.setNZ(value)
	cpu.store(mem, arg, value)
	return false
}

func (cpu *Cpu) rol(mem Memory, arg *Operand) bool {
	value := arg.Value << 1
	if cpu.Status.Has(FLAG_CARRY) {
		value |= 0x01
	}
	cpu.Status.Set(FLAG_CARRY, (arg.Value&0x80) != 0)
	cpu.Status.setNZ(value)
	cpu.store(mem, arg, value)
	return false
}

func (cpu *Cpu) ror(mem Memory, arg *Operand) bool {
	value := arg.Value >> 1
	if cpu.Status.Has(FLAG_CARRY) {
		value |= 0x80
	}
	cpu.Status.Set(FLAG_CARRY, (arg.Value&0x01) != 0)
	cpu.Status.setNZ(value)
	cpu.store(mem, arg, value)
	return false
}

func (cpu *Cpu) jmp(mem Memory, arg *Operand) bool {
	cpu.PC = arg.Address
	return true
}

// jsr pushes the address of the last byte of the JSR instruction.
func (cpu *Cpu) jsr(mem Memory, arg *Operand) bool {
	cpu.pushAddress(mem, cpu.PC+2)
	cpu.PC = arg.Address
	return true
}

func (cpu *Cpu) rts(mem Memory, arg *Operand) bool {
	cpu.PC = cpu.pullAddress(mem) + 1
	return true
}

func (cpu *Cpu) rti(mem Memory, arg *Operand) bool {
	cpu.Status.Load(cpu.pull(mem))
	cpu.PC = cpu.pullAddress(mem)
	return true
}

func (cpu *Cpu) bcc(mem Memory, arg *Operand) bool {
	return cpu.branch(arg, !cpu.Status.Has(FLAG_CARRY))
}

func (cpu *Cpu) bcs(mem Memory, arg *Operand) bool {
	return cpu.branch(arg, cpu.Status.Has(FLAG_CARRY))
}

func (cpu *Cpu) beq(mem Memory, arg *Operand) bool {
	return cpu.branch(arg, cpu.Status.Has(FLAG_ZERO))
}

func (cpu *Cpu) bne(mem Memory, arg *Operand) bool {
	return cpu.branch(arg, !cpu.Status.Has(FLAG_ZERO))
}

func (cpu *Cpu) bmi(mem Memory, arg *Operand) bool {
	return cpu.branch(arg, cpu.Status.Has(FLAG_NEGATIVE))
}

func (cpu *Cpu) bpl(mem Memory, arg *Operand) bool {
	return cpu.branch(arg, !cpu.Status.Has(FLAG_NEGATIVE))
}

func (cpu *Cpu) bvc(mem Memory, arg *Operand) bool {
	return cpu.branch(arg, !cpu.Status.Has(FLAG_OVERFLOW))
}

func (cpu *Cpu) bvs(mem Memory, arg *Operand) bool {
	return cpu.branch(arg, cpu.Status.Has(FLAG_OVERFLOW))
}

func (cpu *Cpu) clc(mem Memory, arg *Operand) bool {
	cpu.Status.Set(FLAG_CARRY, false)
	return false
}

func (cpu *Cpu) sec(mem Memory, arg *Operand) bool {
	cpu.Status.Set(FLAG_CARRY, true)
	return false
}

func (cpu *Cpu) cli(mem Memory, arg *Operand) bool {
	cpu.Status.Set(FLAG_INTERRUPT, false)
	return false
}

func (cpu *Cpu) sei(mem Memory, arg *Operand) bool {
	cpu.Status.Set(FLAG_INTERRUPT, true)
	return false
}

func (cpu *Cpu) clv(mem Memory, arg *Operand) bool {
	cpu.Status.Set(FLAG_OVERFLOW, false)
	return false
}

func (cpu *Cpu) cld(mem Memory, arg *Operand) bool {
	cpu.Status.Set(FLAG_DECIMAL, false)
	return false
}

func (cpu *Cpu) sed(mem Memory, arg *Operand) bool {
	cpu.Status.Set(FLAG_DECIMAL, true)
	return false
}

func (cpu *Cpu) nop(mem Memory, arg *Operand) bool {
	return false
}

// brk marks the software interrupt. There is no interrupt vectoring, so
// execution simply continues with the next byte.
func (cpu *Cpu) brk(mem Memory, arg *Operand) bool {
	cpu.Status.Set(FLAG_BREAK, true)
	return false
}
