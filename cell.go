package png2koala

import (
	"fmt"
	"math"
	"sort"
)

const (
	// CellWidth is the width of a char in multicolor pixels, each twice as wide as a hires pixel.
	CellWidth  = 4
	CellHeight = 8
	cellPixels = CellWidth * CellHeight
	maxBitpair = 3
)

type charBytes [8]byte

// cellColors maps bitpair i to colors[i], for i < n.
// Bitpair 0 is always the background color.
type cellColors struct {
	colors [maxBitpair + 1]C64Color
	n      int
}

func newCellColors(bg C64Color) cellColors {
	return cellColors{colors: [maxBitpair + 1]C64Color{bg}, n: 1}
}

func (cc *cellColors) add(col C64Color) {
	cc.colors[cc.n] = col
	cc.n++
}

// bitpair returns the bitpair col is mapped to.
func (cc cellColors) bitpair(col C64Color) (byte, bool) {
	for i := 0; i < cc.n; i++ {
		if cc.colors[i] == col {
			return byte(i), true
		}
	}
	return 0, false
}

// nearestBitpair returns the bitpair of the mapped color closest to col.
func (cc cellColors) nearestBitpair(col C64Color, p Palette) byte {
	min := math.MaxInt
	bitpair := byte(0)
	for i := 0; i < cc.n; i++ {
		if d := p.Distance(col, cc.colors[i]); d < min {
			bitpair = byte(i)
			min = d
		}
	}
	return bitpair
}

// color returns the color of bitpair, unused bitpairs return the background color.
func (cc cellColors) color(bitpair int) C64Color {
	if bitpair < cc.n {
		return cc.colors[bitpair]
	}
	return cc.colors[0]
}

// A cell is one quantized char: its colors and one bitpair per multicolor pixel.
type cell struct {
	colors   cellColors
	bitpairs [cellPixels]byte
}

// Bytes packs the bitpairs, 4 pixels per byte, leftmost pixel in the highest bits.
func (c cell) Bytes() (b charBytes) {
	for y := 0; y < CellHeight; y++ {
		for x := 0; x < CellWidth; x++ {
			b[y] = b[y]<<2 | c.bitpairs[y*CellWidth+x]
		}
	}
	return b
}

// ScreenColor returns the screen ram byte: bitpair 01 in the high, 10 in the low nibble.
func (c cell) ScreenColor() byte {
	return byte(c.colors.color(1))<<4 | byte(c.colors.color(2))
}

// D800Color returns the color ram byte: bitpair 11.
func (c cell) D800Color() byte {
	return byte(c.colors.color(3))
}

// quantizeCell reduces pixels to bg plus the 3 most used other colors.
// Ties are ordered by first occurrence. Pixels with a dropped color get the bitpair
// of the closest remaining color.
func quantizeCell(pixels [cellPixels]C64Color, bg C64Color, p Palette) (c cell, err error) {
	if !bg.Valid() {
		return c, fmt.Errorf("background: %w %d", ErrInvalidColor, bg)
	}
	count := [MaxColors]int{}
	buf := [MaxColors]C64Color{}
	used := buf[:0]
	for i, col := range pixels {
		if !col.Valid() {
			return c, fmt.Errorf("pixel %d: %w %d", i, ErrInvalidColor, col)
		}
		if count[col] == 0 && col != bg {
			used = append(used, col)
		}
		count[col]++
	}
	sort.SliceStable(used, func(i, j int) bool {
		return count[used[i]] > count[used[j]]
	})

	c.colors = newCellColors(bg)
	for i := 0; i < len(used) && i < maxBitpair; i++ {
		c.colors.add(used[i])
	}
	for i, col := range pixels {
		bitpair, ok := c.colors.bitpair(col)
		if !ok {
			bitpair = c.colors.nearestBitpair(col, p)
		}
		c.bitpairs[i] = bitpair
	}
	return c, nil
}

// cellPixelsAt samples the multicolor pixels of char from g, using the left hires pixel of each pair.
func (g Grid) cellPixelsAt(char int, bg C64Color) (pixels [cellPixels]C64Color) {
	x0, y0 := xyFromChar(char)
	for y := 0; y < CellHeight; y++ {
		for x := 0; x < CellWidth; x++ {
			pixels[y*CellWidth+x] = g.colorAtXY(x0+x*2, y0+y, bg)
		}
	}
	return pixels
}
