package png2koala

import (
	"fmt"
	"image"
	"io"
	"runtime"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	BitmapSize = FullScreenChars * 8

	// KoalaLoadAddress is where a .kla file is loaded: bitmap, screen, colors and background.
	KoalaLoadAddress Word = 0x6000

	// Memory layout of the title prg and asm listing, VIC bank 1.
	ScreenAddress  Word = 0x5c00
	BitmapAddress  Word = 0x6000
	ColorsAddress  Word = BitmapAddress + BitmapSize
	BgColorAddress Word = ColorsAddress + FullScreenChars
)

// Koala is a C64 multicolor bitmap.
type Koala struct {
	SourceFilename  string
	Bitmap          [BitmapSize]byte
	ScreenColor     [FullScreenChars]byte
	D800Color       [FullScreenChars]byte
	BackgroundColor byte
}

// NewKoala converts g to a Koala. The most used color becomes the background color,
// each char keeps the background and its 3 most used other colors.
// The char rows are converted concurrently by up to opt.NumWorkers goroutines.
func NewKoala(g Grid, opt Options) (Koala, error) {
	if err := g.Validate(); err != nil {
		return Koala{}, fmt.Errorf("Validate failed: %w", err)
	}
	bg, err := g.BackgroundColor()
	if err != nil {
		return Koala{}, fmt.Errorf("BackgroundColor failed: %w", err)
	}
	if opt.Verbose {
		log.Printf("background color: %d (%s)", bg, bg)
	}

	p := opt.palette()
	k := &Koala{BackgroundColor: byte(bg)}
	workers := opt.NumWorkers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	var eg errgroup.Group
	eg.SetLimit(workers)
	for row := 0; row < CharsY; row++ {
		row := row
		eg.Go(func() error {
			for char := row * CharsX; char < (row+1)*CharsX; char++ {
				if err := k.convertChar(g, char, bg, p); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err = eg.Wait(); err != nil {
		return Koala{}, err
	}
	return *k, nil
}

// convertChar quantizes char and stores it. Each char only writes its own bytes.
func (k *Koala) convertChar(g Grid, char int, bg C64Color, p Palette) error {
	c, err := quantizeCell(g.cellPixelsAt(char, bg), bg, p)
	if err != nil {
		return fmt.Errorf("quantizeCell failed: error in char %d: %w", char, err)
	}
	b := c.Bytes()
	copy(k.Bitmap[char*8:], b[:])
	k.ScreenColor[char] = c.ScreenColor()
	k.D800Color[char] = c.D800Color()
	return nil
}

// bitpairColor returns the color of bitpair in char.
func (k *Koala) bitpairColor(char int, bitpair byte) C64Color {
	switch bitpair {
	case 1:
		return C64Color(k.ScreenColor[char] >> 4)
	case 2:
		return C64Color(k.ScreenColor[char] & 0x0f)
	case 3:
		return C64Color(k.D800Color[char] & 0x0f)
	}
	return C64Color(k.BackgroundColor & 0x0f)
}

// Image renders k as a 320x200 image, each multicolor pixel is 2 hires pixels wide.
func (k Koala) Image(p Palette) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, FullScreenWidth, FullScreenHeight), p.ColorPalette())
	for char := 0; char < FullScreenChars; char++ {
		x0, y0 := xyFromChar(char)
		for y := 0; y < CellHeight; y++ {
			b := k.Bitmap[char*8+y]
			for x := 0; x < CellWidth; x++ {
				col := uint8(k.bitpairColor(char, (b>>(6-2*x))&3))
				img.SetColorIndex(x0+x*2, y0+y, col)
				img.SetColorIndex(x0+x*2+1, y0+y, col)
			}
		}
	}
	return img
}

// WriteTo writes k in Koala Painter format: load address, bitmap, screen, colors and background.
func (k Koala) WriteTo(w io.Writer) (n int64, err error) {
	l := NewLinker(KoalaLoadAddress)
	for _, b := range [][]byte{k.Bitmap[:], k.ScreenColor[:], k.D800Color[:], {k.BackgroundColor}} {
		if _, err = l.Write(b); err != nil {
			return n, fmt.Errorf("link failed: %w", err)
		}
	}
	return l.WriteTo(w)
}

// WritePrgTo writes k as a prg with the memory layout of the asm listing.
func (k Koala) WritePrgTo(w io.Writer) (n int64, err error) {
	l := NewLinker(ScreenAddress)
	parts := []struct {
		addr Word
		data []byte
	}{
		{ScreenAddress, k.ScreenColor[:]},
		{BitmapAddress, k.Bitmap[:]},
		{ColorsAddress, k.D800Color[:]},
		{BgColorAddress, []byte{k.BackgroundColor}},
	}
	for _, part := range parts {
		if _, err = l.CursorWrite(part.addr, part.data); err != nil {
			return n, fmt.Errorf("link %s failed: %w", part.addr, err)
		}
	}
	return l.WriteTo(w)
}
