// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"errors"
	"io"
	"iter"
	"maps"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/ics233/cpu"
	"github.com/ezrec/ics233/internal"
)

const (
	GRACE_PERIOD = 1 * time.Second // Wait before requesting cancellation.
	KILL_PERIOD  = 3 * time.Second // Wait after cancellation before abandoning a run.
)

// Config is the emulator configuration.
type Config struct {
	MemorySize int           // Words of data memory.
	Grace      time.Duration // Watchdog grace period.
	Kill       time.Duration // Watchdog kill period.
}

// DefaultConfig returns the default emulator configuration.
func DefaultConfig() Config {
	return Config{
		MemorySize: cpu.MEMORY_SIZE,
		Grace:      GRACE_PERIOD,
		Kill:       KILL_PERIOD,
	}
}

// Watchdog returns a watchdog using the configured wait bounds.
func (cfg Config) Watchdog() *Watchdog {
	return &Watchdog{Grace: cfg.Grace, Kill: cfg.Kill}
}

// Emulator state. CPU + program.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program.

	mutex sync.Mutex // Guards the CPU while a run is in progress.
}

// Snapshot is a copy of the externally visible CPU state.
type Snapshot struct {
	Pc       int
	Register cpu.RegisterFile
	Ticks    int
}

// NewEmulator creates a new emulator.
func NewEmulator(cfg Config) (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(cfg.MemorySize),
		Program: &cpu.Program{},
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(
		maps.All(map[string]string{
			"MEMORY_SIZE": strconv.Itoa(len(emu.Cpu.Memory.Data)),
		}),
		cpu.Defines(),
	)
}

// Load reads a full hex program, replacing the current program.
func (emu *Emulator) Load(input io.Reader) (err error) {
	prog, err := ReadProgram(input)
	if err != nil {
		return
	}

	emu.mutex.Lock()
	defer emu.mutex.Unlock()
	emu.Program = prog

	return
}

// Reset the emulator state.
func (emu *Emulator) Reset() {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()
}

// LineNo returns the current line number for the executing instruction.
func (emu *Emulator) LineNo() int {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	return emu.lineNo()
}

func (emu *Emulator) lineNo() int {
	in, err := emu.Cpu.FetchCode(emu.Program)
	if err != nil {
		return 0
	}

	return in.LineNo
}

// String returns the snapshot as a program counter and register dump.
func (snap Snapshot) String() string {
	state := &cpu.Cpu{Pc: snap.Pc, Register: snap.Register}
	return state.String()
}

// Snapshot copies the CPU state. It is safe to call while a run is in
// progress or after a run has been abandoned.
func (emu *Emulator) Snapshot() Snapshot {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	return Snapshot{
		Pc:       emu.Cpu.Pc,
		Register: emu.Cpu.Register,
		Ticks:    emu.Cpu.Ticks,
	}
}

// ReadMemory reads a word of data memory.
func (emu *Emulator) ReadMemory(address int) (value int32, err error) {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	return emu.Cpu.Memory.Read(address)
}

// WriteMemory writes a word of data memory.
func (emu *Emulator) WriteMemory(address int, value int32) (err error) {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	return emu.Cpu.Memory.Write(address, value)
}

// SetRegister sets a register.
func (emu *Emulator) SetRegister(index int, value int32) (err error) {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	return emu.Cpu.Register.Set(index, value)
}

// Tick performs a single step of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	pc := emu.Cpu.Pc
	lineno := emu.lineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Step: pc, Err: err}
		}
	}()

	err = emu.Cpu.Tick(emu.Program)
	if errors.Is(err, cpu.ErrPcHalt) {
		err = nil
		done = true
		return
	}

	return
}

// Run executes until the program counter leaves the program, an
// instruction faults, or the context is cancelled. The context is
// checked before every step.
func (emu *Emulator) Run(ctx context.Context) (err error) {
	for {
		err = ctx.Err()
		if err != nil {
			if emu.Verbose {
				logrus.WithField("pc", emu.Snapshot().Pc).Infof("emulator: %v", err)
			}
			return
		}

		var done bool
		done, err = emu.Tick()
		if err != nil {
			return
		}
		if done {
			if emu.Verbose {
				logrus.WithField("pc", emu.Snapshot().Pc).Infof("emulator: halt")
			}
			return
		}
	}
}
