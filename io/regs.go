// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package io

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
)

// RegsTable is the human readable register dump of a finished run.
//
//	Regfile[0] = 7
//	...
//	Program Counter [PC] = 2
type RegsTable struct {
	Register []int32
	Pc       int
}

var (
	reRegsLine = regexp.MustCompile(`^Regfile\[(\d+)\] = (-?\d+)$`)
	rePcLine   = regexp.MustCompile(`^Program Counter \[PC\] = (-?\d+)$`)
)

// Marshal writes the register table.
func (rt *RegsTable) Marshal(w io.Writer) (err error) {
	for n, value := range rt.Register {
		_, err = fmt.Fprintf(w, "Regfile[%d] = %d\n", n, value)
		if err != nil {
			return
		}
	}
	_, err = fmt.Fprintf(w, "Program Counter [PC] = %d", rt.Pc)
	return
}

// Unmarshal reads a register table written by Marshal.
func (rt *RegsTable) Unmarshal(r io.Reader) (err error) {
	rt.Register = rt.Register[:0]
	has_pc := false

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 {
			continue
		}
		if has_pc {
			return ErrRegsTableSyntax
		}

		if match := reRegsLine.FindStringSubmatch(line); match != nil {
			var index int
			var value int64
			index, err = strconv.Atoi(match[1])
			if err != nil {
				return
			}
			if index != len(rt.Register) {
				return ErrRegsTableIndex
			}
			value, err = strconv.ParseInt(match[2], 10, 32)
			if err != nil {
				return
			}
			rt.Register = append(rt.Register, int32(value))
			continue
		}

		if match := rePcLine.FindStringSubmatch(line); match != nil {
			rt.Pc, err = strconv.Atoi(match[1])
			if err != nil {
				return
			}
			has_pc = true
			continue
		}

		return ErrRegsTableSyntax
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if !has_pc {
		err = ErrRegsTablePc
	}

	return
}
