// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"github.com/ezrec/ics233/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int
	Step   int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d step %d %v", err.LineNo, err.Step, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
