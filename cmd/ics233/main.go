// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"github.com/ezrec/ics233/cpu"
	"github.com/ezrec/ics233/emulator"
	"github.com/ezrec/ics233/io"
)

// seeds collects repeated index=value flags.
type seeds map[int]int32

func (s seeds) String() string {
	return fmt.Sprint(map[int]int32(s))
}

func (s seeds) Set(text string) (err error) {
	index, value, ok := strings.Cut(text, "=")
	if !ok {
		return fmt.Errorf("expected index=value, got %q", text)
	}
	n, err := strconv.Atoi(strings.TrimSpace(index))
	if err != nil {
		return
	}
	v, err := cpu.ParseNumber(strings.TrimSpace(value))
	if err != nil {
		return
	}
	if v < math.MinInt32 || v > math.MaxInt32 {
		return fmt.Errorf("%v is outside of the 32-bit signed range", value)
	}
	s[n] = int32(v)
	return
}

// compile assembles the source file, and writes both hex artifacts.
func compile(art *io.Artifacts, emu *emulator.Emulator, source string, verbose bool) (prog *cpu.Program, full string, err error) {
	inf, err := os.Open(source)
	if err != nil {
		return
	}
	defer inf.Close()

	asm := &cpu.Assembler{Verbose: verbose}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}
	prog, err = asm.Parse(inf)
	if err != nil {
		return
	}

	full, err = prog.Assemble()
	if err != nil {
		return
	}
	compact, err := prog.AssembleA()
	if err != nil {
		return
	}

	err = art.WriteHex(full, compact)
	return
}

// seed pre-loads memory and registers before a run.
func seed(emu *emulator.Emulator, memory, register seeds) (err error) {
	for address, value := range memory {
		err = emu.WriteMemory(address, value)
		if err != nil {
			return fmt.Errorf("-m %v: %w", address, err)
		}
	}
	for index, value := range register {
		err = emu.SetRegister(index, value)
		if err != nil {
			return fmt.Errorf("-r %v: %w", index, err)
		}
	}
	return
}

// execute runs the loaded program under the watchdog, and writes the
// register table of the final state.
func execute(art *io.Artifacts, emu *emulator.Emulator, wd *emulator.Watchdog) (res emulator.Result, snap emulator.Snapshot, err error) {
	res = wd.Run(context.Background(), emu)
	snap = emu.Snapshot()

	table := &io.RegsTable{Register: snap.Register[:], Pc: snap.Pc}
	err = art.WriteRegs(table)
	return
}

func main() {
	var source string
	var hex string
	var output string
	var save bool
	var listing bool
	var dump bool
	var verbose bool

	cfg := emulator.DefaultConfig()
	memory := seeds{}
	register := seeds{}

	flag.StringVar(&source, "c", "", "assembly file to compile")
	flag.StringVar(&hex, "x", "", "8 hex digit program file to run, instead of compiling")
	flag.StringVar(&output, "o", ".", "directory for the result files")
	flag.BoolVar(&save, "s", false, "Save hex files only, do not execute")
	flag.BoolVar(&listing, "l", false, "Print the program listing")
	flag.BoolVar(&dump, "D", false, "Dump the parsed instruction records")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.IntVar(&cfg.MemorySize, "M", cfg.MemorySize, "Words of data memory")
	flag.DurationVar(&cfg.Grace, "g", cfg.Grace, "Watchdog grace period")
	flag.DurationVar(&cfg.Kill, "k", cfg.Kill, "Watchdog kill period")
	flag.Var(memory, "m", "Memory seed, address=value (repeatable)")
	flag.Var(register, "r", "Register seed, index=value (repeatable)")

	flag.Parse()

	if flag.NArg() != 0 {
		logrus.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if len(source) == 0 && len(hex) == 0 {
		logrus.Fatalf("%v: one of -c or -x is required", os.Args[0])
	}

	emu := emulator.NewEmulator(cfg)
	emu.Verbose = verbose

	art := &io.Artifacts{FS: io.DirFS(output)}

	var full string

	if len(source) != 0 {
		prog, text, err := compile(art, emu, source, verbose)
		if err != nil {
			logrus.Fatalf("%v: %v", source, err)
		}
		full = text

		if dump {
			fmt.Print(spew.Sdump(prog.Instructions))
		}
		if listing {
			fmt.Print(prog.Listing())
		}
	} else {
		data, err := os.ReadFile(hex)
		if err != nil {
			logrus.Fatalf("%v: %v", hex, err)
		}
		full = string(data)
	}

	if save {
		return
	}

	err := emu.Load(strings.NewReader(full))
	if err != nil {
		logrus.Fatalf("load: %v", err)
	}

	emu.Reset()
	err = seed(emu, memory, register)
	if err != nil {
		logrus.Fatal(err)
	}

	wd := cfg.Watchdog()
	wd.Verbose = verbose
	res, snap, err := execute(art, emu, wd)

	switch {
	case res.Status == emulator.STATUS_FAULTED:
		logrus.Errorf("run: %v", res.Err)
	case res.Status.Terminated():
		logrus.Warnf("run: %v after %v, state is a partial snapshot", res.Status, res.Elapsed)
	}

	fmt.Print(snap.String())

	if err != nil {
		logrus.Fatalf("%v: %v", output, err)
	}

	if res.Status == emulator.STATUS_FAULTED {
		os.Exit(1)
	}
}
