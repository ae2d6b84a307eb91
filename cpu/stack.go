package cpu

// push writes a byte to the stack page, then decrements the stack pointer.
func (cpu *Cpu) push(mem Memory, value uint8) {
	mem.Write(STACK_PAGE+uint16(cpu.SP), value)
	cpu.SP--
}

// pull increments the stack pointer, then reads a byte from the stack page.
func (cpu *Cpu) pull(mem Memory) (value uint8) {
	cpu.SP++
	return mem.Read(STACK_PAGE + uint16(cpu.SP))
}

// pushAddress pushes the high byte, then the low byte of an address.
func (cpu *Cpu) pushAddress(mem Memory, addr uint16) {
	cpu.push(mem, uint8(addr>>8))
	cpu.push(mem, uint8(addr))
}

// pullAddress pulls the low byte, then the high byte of an address.
func (cpu *Cpu) pullAddress(mem Memory) uint16 {
	lo := cpu.pull(mem)
	hi := cpu.pull(mem)
	return (uint16(hi) << 8) | uint16(lo)
}

// Stack returns the bytes currently on the stack, most recent first.
func (cpu *Cpu) Stack(mem Memory) (data []uint8) {
	for sp := int(cpu.SP) + 1; sp <= 0xff; sp++ {
		data = append(data, mem.Read(STACK_PAGE+uint16(sp)))
	}

	return
}
