// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package io persists the assembler and simulator results.
package io

import (
	"io"
)

// Artifact file names.
const (
	FILE_COMPACT = "outputResult.hex" // 4 hex digit display listing.
	FILE_FULL    = "program.hex"      // 8 hex digit load format.
	FILE_REGS    = "RegsTable.txt"    // Register table dump.
)

// Artifacts writes result files into a CreateFS.
type Artifacts struct {
	FS CreateFS
}

// write creates 'name' and fills it with 'fill'.
func (art *Artifacts) write(name string, fill func(w io.Writer) error) (err error) {
	file, err := art.FS.Create(name)
	if err != nil {
		return
	}
	defer func() {
		cerr := file.Close()
		if err == nil {
			err = cerr
		}
	}()

	err = fill(file)
	return
}

// WriteHex writes both hex serializations of a program.
func (art *Artifacts) WriteHex(full, compact string) (err error) {
	err = art.write(FILE_FULL, func(w io.Writer) (err error) {
		_, err = io.WriteString(w, full)
		return
	})
	if err != nil {
		return
	}

	err = art.write(FILE_COMPACT, func(w io.Writer) (err error) {
		_, err = io.WriteString(w, compact)
		return
	})
	return
}

// WriteRegs writes the register table.
func (art *Artifacts) WriteRegs(table *RegsTable) (err error) {
	return art.write(FILE_REGS, table.Marshal)
}
