package translate

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("line 3 'NOP' bad", From("line %d '%v' %v", 3, "NOP", "bad"))
	assert.Equal("plain", From("plain"))
}

func TestFprintf(t *testing.T) {
	assert := assert.New(t)

	var buff bytes.Buffer
	_, err := Fprintf(&buff, "%d ticks", 12)
	assert.NoError(err)
	assert.Equal("12 ticks", buff.String())
}
