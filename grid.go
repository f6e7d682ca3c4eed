package png2koala

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/disintegration/gift"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	FullScreenWidth  = 320
	FullScreenHeight = 200
	CharsX           = FullScreenWidth / 8
	CharsY           = FullScreenHeight / 8
	FullScreenChars  = CharsX * CharsY
)

// ErrGridShape is returned when a Grid is not exactly FullScreenHeight rows of FullScreenWidth colors.
var ErrGridShape = errors.New("grid is not 320x200")

// A Grid holds FullScreenHeight rows of FullScreenWidth C64Colors, indexed as g[y][x].
type Grid [][]C64Color

// NewGrid returns a full screen Grid filled with col.
func NewGrid(col C64Color) Grid {
	g := make(Grid, FullScreenHeight)
	for y := range g {
		g[y] = make([]C64Color, FullScreenWidth)
		for x := range g[y] {
			g[y][x] = col
		}
	}
	return g
}

// Validate returns an error if g has the wrong shape or contains colors outside 0-15.
func (g Grid) Validate() error {
	if len(g) != FullScreenHeight {
		return fmt.Errorf("%w: %d rows", ErrGridShape, len(g))
	}
	for y, row := range g {
		if len(row) != FullScreenWidth {
			return fmt.Errorf("%w: row %d has %d columns", ErrGridShape, y, len(row))
		}
		for x, col := range row {
			if !col.Valid() {
				return fmt.Errorf("%w %d at x %d y %d", ErrInvalidColor, col, x, y)
			}
		}
	}
	return nil
}

// BackgroundColor returns the most used color of the Grid.
// The lowest color index wins when counts are equal.
func (g Grid) BackgroundColor() (C64Color, error) {
	sum := [MaxColors]int{}
	for y, row := range g {
		for x, col := range row {
			if !col.Valid() {
				return 0, fmt.Errorf("%w %d at x %d y %d", ErrInvalidColor, col, x, y)
			}
			sum[col]++
		}
	}
	bg := C64Color(0)
	for col := range sum {
		if sum[col] > sum[bg] {
			bg = C64Color(col)
		}
	}
	return bg, nil
}

// colorAtXY returns the color at x, y or bg if x, y is outside of the Grid.
func (g Grid) colorAtXY(x, y int, bg C64Color) C64Color {
	if y < 0 || y >= len(g) || x < 0 || x >= len(g[y]) {
		return bg
	}
	return g[y][x]
}

// xyFromChar returns the top left pixel position of char.
func xyFromChar(char int) (int, int) {
	return 8 * (char % CharsX), 8 * (char / CharsX)
}

// GridFromImage maps every pixel of img to its nearest color in p.
// Images that are not 320x200 are resized with lanczos resampling first.
func GridFromImage(img image.Image, p Palette) Grid {
	b := img.Bounds()
	if b.Dx() != FullScreenWidth || b.Dy() != FullScreenHeight {
		g := gift.New(gift.Resize(FullScreenWidth, FullScreenHeight, gift.LanczosResampling))
		dst := image.NewNRGBA(g.Bounds(b))
		g.Draw(dst, img)
		img = dst
		b = dst.Bounds()
	}

	cache := make(map[RGB]C64Color, MaxColors)
	grid := make(Grid, FullScreenHeight)
	for y := 0; y < FullScreenHeight; y++ {
		grid[y] = make([]C64Color, FullScreenWidth)
		for x := 0; x < FullScreenWidth; x++ {
			rgb := toRGB(img.At(b.Min.X+x, b.Min.Y+y))
			col, ok := cache[rgb]
			if !ok {
				col = p.Nearest(rgb)
				cache[rgb] = col
			}
			grid[y][x] = col
		}
	}
	return grid
}

// GridFromPath decodes the png, gif, jpeg, bmp, tiff or webp file at path and returns its Grid.
func GridFromPath(path string, p Palette) (Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open %q failed: %w", path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("image.Decode %q failed: %w", path, err)
	}
	return GridFromImage(img, p), nil
}
