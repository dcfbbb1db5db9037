// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package io

import (
	"errors"

	"github.com/ezrec/ics233/translate"
)

var f = translate.From

var (
	// Register table errors
	ErrRegsTableSyntax = errors.New(f("register table syntax"))
	ErrRegsTableIndex  = errors.New(f("register table index out of order"))
	ErrRegsTablePc     = errors.New(f("register table missing program counter"))
)
