package png2koala

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestD018(t *testing.T) {
	t.Parallel()
	assert.Equal(t, Word(0x4000), vicBank())
	assert.Equal(t, byte(0x78), d018())
}

func TestWriteAsmTo(t *testing.T) {
	t.Parallel()
	g := NewGrid(6)
	for x := 0; x < 8; x++ {
		g[0][x] = 1
	}
	k, err := NewKoala(g, Options{})
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	n, err := k.WriteAsmTo(buf, AsmOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	out := buf.String()
	lines := strings.Split(out, "\n")

	assert.Equal(t, "; Title Screen - Multicolor Bitmap Data", lines[1])
	assert.Contains(t, out, "; Memory layout (VIC Bank 1: $4000-$7FFF):\n")
	assert.Contains(t, out, ";   Screen RAM:   $5C00-$5FE7 (1000 bytes) - bank offset $1C00\n")
	assert.Contains(t, out, ";   Bitmap data:  $6000-$7F3F (8000 bytes) - bank offset $2000\n")
	assert.Contains(t, out, "; VIC-II $D018 = $78 (screen at $1C00, bitmap at $2000)\n")
	assert.Contains(t, out, "\nTITLE_BG_COLOR = $06\n\n; Screen RAM for title (1000 bytes)\n* = $5C00\nTITLE_SCREEN:\n")
	assert.Contains(t, out, "TITLE_SCREEN:\n        !byte $16, $66, $66")
	assert.Contains(t, out, "\n; Bitmap data (8000 bytes)\n* = $6000\nTITLE_BITMAP:\n        !byte $55, $00, $00")
	assert.Contains(t, out, "\n; Color RAM data for title (1000 bytes) - copy to $D800\nTITLE_COLORS:\n        !byte $06, $06")
	assert.True(t, strings.HasSuffix(out, "\n; End of title data\n"))

	byteLines := 0
	for _, l := range lines {
		if strings.HasPrefix(l, "        !byte ") {
			byteLines++
		}
	}
	// 1000/16 rounded up, 8000/16, 1000/16 rounded up
	assert.Equal(t, 63+500+63, byteLines)
	assert.Equal(t, "        !byte $66, $66, $66, $66, $66, $66, $66, $66", lines[indexOf(lines, "TITLE_SCREEN:")+63])
}

func TestWriteAsmToLabel(t *testing.T) {
	t.Parallel()
	k, err := NewKoala(NewGrid(0), Options{})
	require.NoError(t, err)
	buf := &bytes.Buffer{}
	_, err = k.WriteAsmTo(buf, AsmOptions{Label: "LOGO", Title: "Logo"})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "; Logo - Multicolor Bitmap Data\n")
	assert.Contains(t, out, "LOGO_BG_COLOR = $00\n")
	assert.Contains(t, out, "LOGO_BITMAP:\n")
	assert.Contains(t, out, "; End of logo data\n")
	assert.NotContains(t, out, "TITLE")
}

func indexOf(ss []string, s string) int {
	for i := range ss {
		if ss[i] == s {
			return i
		}
	}
	return -1
}
