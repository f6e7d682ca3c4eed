package png2koala

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleTitle(t *testing.T) {
	t.Parallel()
	g := SampleTitle()
	require.NoError(t, g.Validate())

	testCases := []struct {
		x, y int
		want C64Color
	}{
		{0, 0, 6},
		{319, 199, 6},
		{0, 30, 14},
		{0, 170, 14},
		{0, 100, 0},
		{45, 50, 3},   // Q top left
		{70, 75, 0},   // inside the Q
		{105, 50, 7},  // I top serif
		{125, 80, 7},  // I stem
		{165, 50, 2},  // X
		{225, 50, 4},  // Y
		{250, 105, 4}, // Y stem
		{40, 130, 14}, // subtitle gradient
		{279, 131, 5},
		{39, 130, 0},
		{80, 160, 1}, // press fire
		{239, 161, 1},
		{79, 160, 14},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, g[tc.y][tc.x], "x %d y %d", tc.x, tc.y)
	}
}

func TestSampleTitleKoala(t *testing.T) {
	t.Parallel()
	k, err := NewKoala(SampleTitle(), Options{})
	require.NoError(t, err)
	assert.Equal(t, byte(0), k.BackgroundColor)
	// top left char is all blue
	assert.Equal(t, byte(0x60), k.ScreenColor[0])
	assert.Equal(t, []byte{0x55, 0x55, 0x55, 0x55, 0x55, 0x55, 0x55, 0x55}, k.Bitmap[0:8])
}
