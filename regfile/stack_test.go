package regfile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/gtac/graph"
)

func newStack(size int) (g *graph.Graph, s *Stack, value graph.Int) {
	g = graph.New()
	value = g.NewInt("value", 0)
	s = NewStack(g, size)
	return
}

func push(st *graph.State, s *Stack, value graph.Int, v int) {
	st.Ints[value] = v
	st.Apply(s.Push(value))
}

func TestStack_Push(t *testing.T) {
	assert := assert.New(t)

	g, s, value := newStack(4)
	st := g.NewState()
	assert.Equal(0, s.Depth(st))
	assert.Equal(STACK_EMPTY, st.Ints[s.Last()])

	push(st, s, value, 7)
	assert.Equal(1, s.Depth(st))
	top, ok := s.Peek(st)
	assert.True(ok)
	assert.Equal(7, top)
}

func TestStack_Pop(t *testing.T) {
	assert := assert.New(t)

	g, s, value := newStack(4)
	st := g.NewState()

	push(st, s, value, 3)
	push(st, s, value, 9)
	assert.Equal(2, s.Depth(st))

	st.Apply(s.Pop(value))
	assert.Equal(9, st.Ints[value])
	assert.Equal(1, s.Depth(st))

	st.Apply(s.Pop(value))
	assert.Equal(3, st.Ints[value])
	assert.Equal(0, s.Depth(st))
}

func TestStack_Pop_Empty(t *testing.T) {
	assert := assert.New(t)

	g, s, value := newStack(4)
	st := g.NewState()

	st.Apply(s.Pop(value))
	assert.Equal(STACK_EMPTY, st.Ints[value])
	_, ok := s.Peek(st)
	assert.False(ok)
}

func TestStack_Full(t *testing.T) {
	assert := assert.New(t)

	g, s, value := newStack(STACK_LIMIT)
	st := g.NewState()

	for i := 0; i < STACK_LIMIT; i++ {
		assert.Equal(STACK_EMPTY, st.Ints[s.Last()])
		push(st, s, value, i)
	}

	assert.Equal(STACK_LIMIT, s.Depth(st))
	assert.Equal(0, st.Ints[s.Last()])

	// Pushing past the end drops the oldest entry.
	push(st, s, value, 100)
	assert.Equal(1, st.Ints[s.Last()])
	top, _ := s.Peek(st)
	assert.Equal(100, top)
}

func TestStack_WriteCount(t *testing.T) {
	assert := assert.New(t)

	_, s, value := newStack(5)
	assert.Equal(5, len(s.Push(value)))
	assert.Equal(6, len(s.Pop(value)))
	assert.Equal(5, s.Size())
}
