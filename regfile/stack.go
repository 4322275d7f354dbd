package regfile

import (
	"fmt"

	"github.com/ezrec/gtac/graph"
)

const (
	STACK_EMPTY = -1 // Sentinel held by unused stack slots.
	STACK_LIMIT = 8  // Default stack depth.
)

// Stack is a shift-register call stack of integer slots. There is no stack
// pointer; slot 0 is always the top of stack.
type Stack struct {
	Slots []graph.Int
}

// NewStack allocates a stack of size slots in g.
func NewStack(g *graph.Graph, size int) (s *Stack) {
	s = &Stack{
		Slots: make([]graph.Int, size),
	}
	for n := range s.Slots {
		s.Slots[n] = g.NewInt(fmt.Sprintf("%sstack[%d]", SCRATCH_PREFIX, n), STACK_EMPTY)
	}

	return
}

// Size returns the number of slots.
func (s *Stack) Size() int {
	return len(s.Slots)
}

// Last returns the deepest slot. It holds STACK_EMPTY unless the stack is full.
func (s *Stack) Last() graph.Int {
	return s.Slots[len(s.Slots)-1]
}

// Push returns the atomic write set shifting every slot up one position and
// copying src into slot 0. The deepest entry falls off the end.
func (s *Stack) Push(src graph.Int) (writes []graph.Write) {
	for n := len(s.Slots) - 1; n > 0; n-- {
		writes = append(writes, graph.CopyInt(s.Slots[n], s.Slots[n-1]))
	}
	writes = append(writes, graph.CopyInt(s.Slots[0], src))
	return
}

// Pop returns the atomic write set copying slot 0 into dst and shifting every
// remaining slot down one position, clearing the deepest slot.
func (s *Stack) Pop(dst graph.Int) (writes []graph.Write) {
	writes = append(writes, graph.CopyInt(dst, s.Slots[0]))
	for n := 0; n < len(s.Slots)-1; n++ {
		writes = append(writes, graph.CopyInt(s.Slots[n], s.Slots[n+1]))
	}
	writes = append(writes, graph.SetInt(s.Last(), STACK_EMPTY))
	return
}

// Peek returns the top of stack in a state.
func (s *Stack) Peek(st *graph.State) (value int, ok bool) {
	value = st.Ints[s.Slots[0]]
	ok = value != STACK_EMPTY
	return
}

// Depth returns the number of occupied slots in a state.
func (s *Stack) Depth(st *graph.State) (depth int) {
	for _, slot := range s.Slots {
		if st.Ints[slot] == STACK_EMPTY {
			break
		}
		depth++
	}
	return
}
