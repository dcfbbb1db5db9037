// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"iter"
	"maps"
	"strings"
)

// Program is an ordered sequence of instructions, indexed by step.
type Program struct {
	Instructions []Instruction
	Label        map[string]int // Map of labels to steps.
}

// Len returns the number of instructions in the program.
func (prog *Program) Len() int {
	return len(prog.Instructions)
}

// Labels returns an iterator over the label table.
func (prog *Program) Labels() iter.Seq2[string, int] {
	return maps.All(prog.Label)
}

// Resolved returns the instructions with every label target replaced
// by its step relative offset.
func (prog *Program) Resolved() iter.Seq2[Instruction, error] {
	return func(yield func(in Instruction, err error) bool) {
		for _, in := range prog.Instructions {
			out, err := in.Resolve(prog.Label)
			if !yield(out, err) || err != nil {
				return
			}
		}
	}
}

// Words resolves and encodes the program.
func (prog *Program) Words() (words []uint16, err error) {
	words = make([]uint16, 0, prog.Len())
	for in, err := range prog.Resolved() {
		if err != nil {
			return nil, err
		}
		var word uint16
		word, err = in.Encode()
		if err != nil {
			return nil, err
		}
		words = append(words, word)
	}

	return
}

// hex formats every word with 'format', one word per line.
func (prog *Program) hex(format string) (text string, err error) {
	words, err := prog.Words()
	if err != nil {
		return
	}

	var sb strings.Builder
	for _, word := range words {
		fmt.Fprintf(&sb, format+"\n", word)
	}
	text = sb.String()

	return
}

// Assemble returns the engine load format: one 8 hex digit token per
// instruction, the 16 bit word zero extended to 32 bits.
func (prog *Program) Assemble() (text string, err error) {
	return prog.hex("%08x")
}

// AssembleA returns the compact display format: one 4 hex digit token
// per instruction.
func (prog *Program) AssembleA() (text string, err error) {
	return prog.hex("%04x")
}

// Listing returns a step, line, word and source listing of the program.
// Unresolvable instructions are listed with a placeholder word.
func (prog *Program) Listing() (text string) {
	var sb strings.Builder
	for _, in := range prog.Instructions {
		hex := "----"
		out, err := in.Resolve(prog.Label)
		if err == nil {
			var word uint16
			word, err = out.Encode()
			if err == nil {
				hex = fmt.Sprintf("%04x", word)
			}
		}
		fmt.Fprintf(&sb, "%4d %4d  %v  %v\n", in.Step, in.LineNo, hex, in)
	}

	return sb.String()
}
