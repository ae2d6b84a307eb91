// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package memory implements the flat 64KiB address space of the emulator.
package memory

import (
	"fmt"
	"io"
	"strings"
)

const (
	SIZE      = 0x10000 // Size of the address space, in bytes.
	PAGE_SIZE = 0x100   // Size of a single page, in bytes.
)

// Memory is a flat, byte addressable store. Every 16-bit address is valid.
type Memory struct {
	data [SIZE]uint8
}

// NewMemory creates a new, zero-filled memory.
func NewMemory() (mem *Memory) {
	mem = &Memory{}

	return
}

// Read the byte at addr.
func (mem *Memory) Read(addr uint16) uint8 {
	return mem.data[addr]
}

// Write value to addr.
func (mem *Memory) Write(addr uint16, value uint8) {
	mem.data[addr] = value
}

// Clear sets every byte to zero.
func (mem *Memory) Clear() {
	clear(mem.data[:])
}

// Bytes returns the raw backing store.
// The slice aliases the memory and is only valid while mem is.
func (mem *Memory) Bytes() []uint8 {
	return mem.data[:]
}

// Dump writes a hex dump of length bytes starting at addr, 16 bytes per
// line. Addresses wrap at the top of memory.
func (mem *Memory) Dump(w io.Writer, addr uint16, length int) (err error) {
	for length > 0 {
		count := min(length, 16)

		var line strings.Builder
		fmt.Fprintf(&line, "%04X:", addr)
		for n := range count {
			fmt.Fprintf(&line, " %02X", mem.data[addr+uint16(n)])
		}
		line.WriteString("\n")

		_, err = io.WriteString(w, line.String())
		if err != nil {
			return
		}

		addr += uint16(count)
		length -= count
	}

	return
}
