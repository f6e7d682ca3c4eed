package png2koala

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinker(t *testing.T) {
	start := Word(0x801)
	bin := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	t.Parallel()
	l := NewLinker(start)
	assert.NotNil(t, l)
	n, err := l.Write(bin)
	assert.Nil(t, err)
	assert.Equal(t, len(bin), n)
	assert.Equal(t, start+Word(len(bin)), l.Cursor())

	assert.Equal(t, bin, l.Bytes())
	assert.Equal(t, start, l.StartAddress())
	assert.Equal(t, 0x809, l.EndAddress())
}

func TestLinkerGapAndOverlap(t *testing.T) {
	t.Parallel()
	l := NewLinker(0x1000)
	_, err := l.Write([]byte{1, 2})
	require.NoError(t, err)
	_, err = l.CursorWrite(0x1004, []byte{3})
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 0, 0, 3}, l.Bytes())

	_, err = l.CursorWrite(0x1001, []byte{9})
	assert.Error(t, err)

	buf := &bytes.Buffer{}
	n, err := l.WriteTo(buf)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
	assert.Equal(t, []byte{0x00, 0x10, 1, 2, 0, 0, 3}, buf.Bytes())
}

func TestLinkerBounds(t *testing.T) {
	t.Parallel()
	l := NewLinker(0xfffe)
	_, err := l.Write([]byte{1, 2, 3})
	assert.Error(t, err)
	_, err = l.Write([]byte{1, 2})
	assert.NoError(t, err)
	assert.Equal(t, MaxMemory+1, l.EndAddress())

	empty := NewLinker(0)
	assert.Equal(t, []byte{}, empty.Bytes())
	_, err = empty.WriteTo(&bytes.Buffer{})
	assert.Error(t, err)
}

func TestWord(t *testing.T) {
	t.Parallel()
	w := BytesToWord(0x00, 0x5c)
	assert.Equal(t, Word(0x5c00), w)
	assert.Equal(t, "0x5c00", w.String())
	assert.Equal(t, []byte{0x00, 0x5c}, w.Bytes())
	assert.Equal(t, byte(0x5c), w.High())
	assert.Equal(t, byte(0x00), w.Low())
}
