// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/ezrec/ics233/cpu"
)

var reWord = regexp.MustCompile(`^[0-9a-fA-F]{8}$`)

// DecodeWord decodes one 8 hex digit program word. The upper 16 bits
// of the token must be zero.
func DecodeWord(token string, lineno, step int) (in cpu.Instruction, err error) {
	if !reWord.MatchString(token) {
		err = &cpu.ErrSyntax{LineNo: lineno, Line: token, Err: cpu.ErrHexToken(token)}
		return
	}

	value, err := strconv.ParseUint(token, 16, 32)
	if err != nil || value > 0xffff {
		err = &cpu.ErrSyntax{LineNo: lineno, Line: token, Err: cpu.ErrHexToken(token)}
		return
	}

	return cpu.Decode(uint16(value), lineno, step)
}

// LoadProgram decodes the full hex stream, one word per line. The line
// index is the step of the instruction.
func LoadProgram(lines []string) (prog *cpu.Program, err error) {
	prog = &cpu.Program{
		Instructions: make([]cpu.Instruction, 0, len(lines)),
	}

	for step, line := range lines {
		var in cpu.Instruction
		in, err = DecodeWord(strings.TrimSpace(line), step+1, step)
		if err != nil {
			prog = nil
			return
		}
		prog.Instructions = append(prog.Instructions, in)
	}

	return
}

// ReadProgram reads the full hex stream. Trailing blank lines are ignored.
func ReadProgram(input io.Reader) (prog *cpu.Program, err error) {
	var lines []string

	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	err = scanner.Err()
	if err != nil {
		return
	}

	for len(lines) > 0 && len(strings.TrimSpace(lines[len(lines)-1])) == 0 {
		lines = lines[:len(lines)-1]
	}

	return LoadProgram(lines)
}
