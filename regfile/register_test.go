package regfile

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/gtac/graph"
)

func TestFile_Create(t *testing.T) {
	assert := assert.New(t)

	g := graph.New()
	file := New(g, 8)

	a := file.Create("$A")
	assert.Equal("$A", a.Name)
	assert.Equal(8, a.Width())
	assert.Equal(8, len(g.Bits))
	assert.Equal("$A[0]", g.Bits[a.Bit(0)].Name)

	// Same name, same register.
	again := file.Create("$A")
	assert.Same(a, again)
	assert.Equal(8, len(g.Bits))

	b := file.Create("$B")
	assert.NotEqual(a.Bit(0), b.Bit(0))
	assert.Equal(16, len(g.Bits))

	reg, ok := file.Lookup("$B")
	assert.True(ok)
	assert.Same(b, reg)

	_, ok = file.Lookup("$C")
	assert.False(ok)
}

func TestFile_Constant(t *testing.T) {
	assert := assert.New(t)

	g := graph.New()
	file := New(g, 4)

	five := file.Constant(5)
	assert.Equal("#5", five.Name)
	assert.True(five.ReadOnly())
	assert.Equal(uint(5), five.Value(g.NewState()))

	// Truncated to depth.
	assert.Same(five, file.Constant(0x15))

	// Two's complement.
	minus := file.Constant(-1)
	assert.Equal("#15", minus.Name)
	assert.Equal(uint(15), minus.Value(g.NewState()))
}

func TestFile_Registers(t *testing.T) {
	assert := assert.New(t)

	file := New(graph.New(), 8)
	file.Create("$A")
	file.Create(SCRATCH_PREFIX + "add.sum")
	file.Constant(1)
	file.Create("$B")

	var names []string
	for reg := range file.Registers() {
		names = append(names, reg.Name)
	}
	assert.Equal([]string{"$A", "$B"}, names)

	all := slices.Collect(file.All())
	assert.Equal(4, len(all))
	assert.True(all[1].Scratch())
}

func TestRegister_Writes(t *testing.T) {
	assert := assert.New(t)

	g := graph.New()
	file := New(g, 8)
	a := file.Create("$A")
	b := file.Create("$B")

	st := g.NewState()
	st.Apply(a.Constant(0xa5))
	assert.Equal(uint(0xa5), a.Value(st))
	assert.Equal(8, len(a.Constant(0)))

	st.Apply(b.CopyFrom(a))
	assert.Equal(uint(0xa5), b.Value(st))

	st.Apply(a.Clear())
	assert.Equal(uint(0), a.Value(st))
	assert.Equal(uint(0xa5), b.Value(st))

	b.Load(st, 0x1ff)
	assert.Equal(uint(0xff), b.Value(st))
	assert.True(st.Bits[b.Sign()])
}

func TestFits(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		value int
		depth int
		fits  bool
	}){
		{0, 8, true},
		{255, 8, true},
		{256, 8, false},
		{-128, 8, true},
		{-129, 8, false},
		{15, 4, true},
		{16, 4, false},
		{-8, 4, true},
	}

	for _, entry := range table {
		assert.Equal(entry.fits, Fits(entry.value, entry.depth), "%+v", entry)
	}

	assert.Equal(0x34, Truncate(0x1234, 8))
	assert.Equal(-1, Signed(0xff, 8))
	assert.Equal(127, Signed(0x7f, 8))
	assert.Equal(-128, Signed(0x80, 8))
}
