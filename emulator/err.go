package emulator

import (
	"errors"

	"github.com/ezrec/gtac/translate"
)

var f = translate.From

var (
	ErrTickLimit        = errors.New(f("tick limit reached"))
	ErrStackOverflow    = errors.New(f("call stack overflow"))
	ErrDivideByZero     = errors.New(f("division by zero"))
	ErrRegisterUnknown  = errors.New(f("register unknown"))
	ErrRegisterReadOnly = errors.New(f("register read-only"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
