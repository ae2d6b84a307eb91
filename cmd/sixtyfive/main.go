// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"golang.org/x/term"

	"github.com/ezrec/sixtyfive/cpu"
	"github.com/ezrec/sixtyfive/emulator"
	"github.com/ezrec/sixtyfive/monitor"
)

func main() {
	var compile string
	var binary string
	var base string
	var run bool
	var limit int
	var verbose bool

	flag.StringVar(&compile, "c", "", ".asm file to assemble and load")
	flag.StringVar(&binary, "b", "", "raw binary file to load")
	flag.StringVar(&base, "base", fmt.Sprintf("0x%04x", emulator.LOAD_BASE), "load address")
	flag.BoolVar(&run, "run", false, "Run until BRK, without the monitor")
	flag.IntVar(&limit, "limit", 0, "Maximum instructions per run (0 is unbounded)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(compile) != 0 && len(binary) != 0 {
		log.Fatalf("%v: -c and -b are exclusive", os.Args[0])
	}

	origin, err := strconv.ParseUint(base, 0, 16)
	if err != nil {
		log.Fatalf("-base: %v", err)
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.Reset()

	// Assemble a new program.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose, Origin: uint16(origin)}
		for key, value := range emu.Defines() {
			asm.Predefine(key, value)
		}

		prog, err := asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}

		err = emu.Load(prog)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	}

	// Load a raw binary.
	if len(binary) != 0 {
		data, err := os.ReadFile(binary)
		if err != nil {
			log.Fatalf("%v: %v", binary, err)
		}

		err = emu.LoadProgram(data, uint16(origin))
		if err != nil {
			log.Fatalf("%v: %v", binary, err)
		}
	}

	if run {
		count, err := emu.RunUntilBreakLimit(limit)
		if err != nil {
			log.Fatalf("%v: %v", emu.State(), err)
		}
		fmt.Printf("%v\n", emu.State())
		if verbose {
			log.Printf("%d instructions", count)
		}
		return
	}

	mon := monitor.NewMonitor(emu, os.Stdin, os.Stdout)
	mon.Prompt = term.IsTerminal(int(os.Stdin.Fd()))
	mon.Limit = limit

	err = mon.Run()
	if err != nil {
		log.Fatalf("%v: %v", emu.State(), err)
	}
}
