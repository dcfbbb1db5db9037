// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Cpu is the architectural state of one simulation run.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Pc       int          // Current program counter, as a step.
	Register RegisterFile // Register bank.
	Memory   *Memory      // Data memory.

	Ticks int // Instructions executed since reset.
}

// NewCpu creates a new CPU with a specifically sized memory.
func NewCpu(size int) (cpu *Cpu) {
	cpu = &Cpu{
		Memory: NewMemory(size),
	}

	return
}

// Reset the CPU state.
// - Clears the registers and memory.
// - Zeros the tick counter.
// - Sets the program counter to the first step.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		logrus.Infof("cpu: reset")
	}

	cpu.Register.Reset()
	cpu.Memory.Reset()
	cpu.Pc = 0
	cpu.Ticks = 0
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text = fmt.Sprintf("% 5s: %v\n", "pc", cpu.Pc)
	for n, val := range cpu.Register {
		text += fmt.Sprintf("% 5s: %04X_%04X (%d)\n", reg(n), uint32(val)>>16, uint32(val)&0xffff, val)
	}

	return
}

// FetchCode fetches the instruction at the program counter.
func (cpu *Cpu) FetchCode(prog *Program) (in Instruction, err error) {
	if cpu.Pc < 0 || cpu.Pc >= prog.Len() {
		err = ErrPcHalt
		return
	}

	in = prog.Instructions[cpu.Pc]
	return
}

// Tick executes a single CPU instruction cycle. ErrPcHalt is returned
// once the program counter has left the program.
func (cpu *Cpu) Tick(prog *Program) (err error) {
	in, err := cpu.FetchCode(prog)
	if err != nil {
		return
	}

	err = cpu.Execute(in)
	return
}

// Execute executes a single decoded instruction.
func (cpu *Cpu) Execute(in Instruction) (err error) {
	if cpu.Verbose {
		logrus.WithFields(logrus.Fields{
			"pc":   cpu.Pc,
			"line": in.LineNo,
		}).Infof("%v", in)
	}

	next, err := in.Execute(cpu.Pc, &cpu.Register, cpu.Memory)
	if err != nil {
		return
	}

	cpu.Pc = next
	cpu.Ticks += 1

	return
}
