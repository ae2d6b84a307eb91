// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package monitor implements a line based inspector for an emulator session.
package monitor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ezrec/sixtyfive/cpu"
	"github.com/ezrec/sixtyfive/emulator"
	"github.com/ezrec/sixtyfive/internal"
)

const (
	DEFAULT_DUMP_LENGTH = 16 // Bytes shown by 'm' without a length.
	DEFAULT_LIST_COUNT  = 8  // Instructions shown by 'l' without a count.
)

var helpText = []string{
	"n [count]        step count instructions (default 1)",
	"c                continue until BRK",
	"m addr [len]     dump memory",
	"l [addr] [count] disassemble",
	"d                list assembler defines",
	"s, q             stop",
	"h                this help",
}

// Monitor drives an emulator from a stream of text commands.
type Monitor struct {
	Emulator *emulator.Emulator // Session being inspected.
	Input    io.Reader          // Command input.
	Output   io.Writer          // Command output.
	Prompt   bool               // If set, prompts before each command.
	Limit    int                // Step budget for 'c'; zero is unbounded.
}

// NewMonitor creates a monitor for an emulator.
func NewMonitor(emu *emulator.Emulator, input io.Reader, output io.Writer) (mon *Monitor) {
	mon = &Monitor{
		Emulator: emu,
		Input:    input,
		Output:   output,
	}

	return
}

func (mon *Monitor) printf(format string, args ...any) {
	fmt.Fprintln(mon.Output, f(format, args...))
}

// showState prints the register snapshot and source line.
func (mon *Monitor) showState() {
	state := mon.Emulator.State()
	if lineno := mon.Emulator.LineNo(); lineno != 0 {
		mon.printf("%v line %d", state, lineno)
	} else {
		mon.printf("%v", state)
	}
}

// Run reads and executes commands until stopped, the input ends, or the
// emulator fails.
func (mon *Monitor) Run() (err error) {
	scanner := bufio.NewScanner(mon.Input)

	for {
		mon.showState()
		if mon.Prompt {
			fmt.Fprint(mon.Output, f("command (h for help): "))
		}

		if !scanner.Scan() {
			err = scanner.Err()
			return
		}

		var stop bool
		stop, err = mon.Command(scanner.Text())
		if err != nil || stop {
			return
		}
	}
}

// Command executes a single command line. Malformed commands are reported
// to the output; only emulator failures are returned.
func (mon *Monitor) Command(line string) (stop bool, err error) {
	words := strings.Fields(line)
	if len(words) == 0 {
		return
	}

	args := words[1:]

	switch strings.ToLower(words[0]) {
	case "n", "next":
		err = mon.next(args)
	case "c", "continue":
		err = mon.cont()
	case "m", "mem":
		mon.dump(args)
	case "l", "list":
		mon.list(args)
	case "d", "defines":
		for key, value := range internal.Sorted2(mon.Emulator.Defines()) {
			mon.printf("%v = %v", key, value)
		}
	case "s", "q", "stop", "quit":
		mon.printf("stopping execution")
		stop = true
	case "h", "help", "?":
		for _, text := range helpText {
			mon.printf("%v", text)
		}
	default:
		mon.printf("unknown command '%v', h for help", words[0])
	}

	if err != nil {
		mon.printf("%v", err)
	}

	return
}

func (mon *Monitor) next(args []string) (err error) {
	count := 1
	if len(args) > 0 {
		count, err = parseCount(args[0])
		if err != nil {
			mon.printf("%v", err)
			err = nil
			return
		}
	}

	_, err = mon.Emulator.Tick(count)

	return
}

func (mon *Monitor) cont() (err error) {
	count, err := mon.Emulator.RunUntilBreakLimit(mon.Limit)
	if errors.Is(err, emulator.ErrStepLimit) {
		mon.printf("stopped after %d instructions without BRK", count)
		err = nil
		return
	}
	if err != nil {
		return
	}

	mon.printf("BRK after %d instructions", count)

	return
}

func (mon *Monitor) dump(args []string) {
	if len(args) == 0 || len(args) > 2 {
		mon.printf("usage: m addr [len]")
		return
	}

	addr, err := parseAddress(args[0])
	if err != nil {
		mon.printf("%v", err)
		return
	}

	length := DEFAULT_DUMP_LENGTH
	if len(args) == 2 {
		length, err = parseCount(args[1])
		if err != nil {
			mon.printf("%v", err)
			return
		}
	}

	err = mon.Emulator.Memory().Dump(mon.Output, addr, length)
	if err != nil {
		mon.printf("%v", err)
	}
}

func (mon *Monitor) list(args []string) {
	var err error

	addr := mon.Emulator.State().PC
	count := DEFAULT_LIST_COUNT

	if len(args) > 2 {
		mon.printf("usage: l [addr] [count]")
		return
	}
	if len(args) > 0 {
		addr, err = parseAddress(args[0])
		if err != nil {
			mon.printf("%v", err)
			return
		}
	}
	if len(args) > 1 {
		count, err = parseCount(args[1])
		if err != nil {
			mon.printf("%v", err)
			return
		}
	}

	pc := mon.Emulator.State().PC
	mem := mon.Emulator.Memory()
	for range count {
		marker := " "
		if addr == pc {
			marker = ">"
		}
		text, size := cpu.Disassemble(mem, addr)
		fmt.Fprintf(mon.Output, "%v%04X: %v\n", marker, addr, text)
		addr += uint16(size)
	}
}

// parseAddress parses a hex address, with an optional '$' or '0x' prefix.
func parseAddress(word string) (addr uint16, err error) {
	hex := strings.TrimPrefix(word, "$")
	if len(hex) == len(word) {
		hex = strings.TrimPrefix(strings.ToLower(word), "0x")
	}

	value, err := strconv.ParseUint(hex, 16, 16)
	if err != nil {
		err = ErrAddress(word)
		return
	}

	addr = uint16(value)
	return
}

// parseCount parses a positive decimal count.
func parseCount(word string) (count int, err error) {
	count, err = strconv.Atoi(word)
	if err != nil || count <= 0 {
		count = 0
		err = ErrCount(word)
	}

	return
}
