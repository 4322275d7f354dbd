package opcode

import (
	"errors"

	"github.com/ezrec/gtac/translate"
)

var f = translate.From

var (
	ErrReturnOrphan = errors.New(f("return outside of any subroutine"))
	ErrOperand      = errors.New(f("operand invalid"))
)

// ErrReentrant is raised (as a panic) when a builder nests another builder
// of its own kind, which would clobber the shared scratch block.
type ErrReentrant Kind

func (err ErrReentrant) Error() string {
	return f("%v scratch block re-entered", Kind(err).String())
}
