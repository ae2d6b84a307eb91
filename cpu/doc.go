// Package cpu implements the microprocessor and assembler for an 8-bit
// accumulator machine in the style of the MOS 6502.
//
// The CPU consists of an accumulator (A), two index registers (X, Y), an 8-bit
// stack pointer into the stack page at 0x0100, a 16-bit program counter, and a
// status register of seven flags. Instructions are decoded through a 256 entry
// dispatch table built once and shared by every CPU.
//
// The assembler translates the classic textual syntax (LDA #$01, STA $0200,
// JMP ($1234), ...) into the byte stream executed by the CPU, supporting
// labels, equates, and compile-time expression evaluation.
package cpu
