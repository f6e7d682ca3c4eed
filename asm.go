package png2koala

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

const (
	DefaultLabel    = "TITLE"
	DefaultAsmTitle = "Title Screen"
	asmBytesPerLine = 16
	asmRule         = "; ============================================================================\n"
)

// AsmOptions configure the ACME listing.
type AsmOptions struct {
	// Label prefixes the symbols, e.g. TITLE_BITMAP.
	Label string
	// Title is used in the header comment.
	Title string
}

func (opt AsmOptions) withDefaults() AsmOptions {
	if opt.Label == "" {
		opt.Label = DefaultLabel
	}
	if opt.Title == "" {
		opt.Title = DefaultAsmTitle
	}
	return opt
}

// vicBank returns the start of the 16KB VIC bank that holds the screen.
func vicBank() Word {
	return ScreenAddress & 0xc000
}

// d018 returns the VIC-II $d018 value pointing to the screen and bitmap within the vic bank.
func d018() byte {
	screen := byte((ScreenAddress - vicBank()) / 0x400)
	bitmap := byte((BitmapAddress - vicBank()) / 0x2000)
	return screen<<4 | bitmap<<3
}

// WriteAsmTo writes k as an ACME source listing with the screen at $5c00, the bitmap at $6000
// and the color ram data following the bitmap, to be copied to $d800 at runtime.
func (k Koala) WriteAsmTo(w io.Writer, opt AsmOptions) (n int64, err error) {
	opt = opt.withDefaults()
	label := opt.Label
	name := strings.ToLower(label)
	bank := vicBank()

	buf := &bytes.Buffer{}
	buf.WriteString(asmRule)
	fmt.Fprintf(buf, "; %s - Multicolor Bitmap Data\n", opt.Title)
	fmt.Fprintf(buf, "; Generated by png2koala %s\n", Version)
	buf.WriteString(asmRule)
	fmt.Fprintf(buf, "; Memory layout (VIC Bank %d: $%04X-$%04X):\n", bank/0x4000, uint16(bank), uint16(bank)+0x3fff)
	fmt.Fprintf(buf, ";   Screen RAM:   $%04X-$%04X (%d bytes) - bank offset $%04X\n", uint16(ScreenAddress), uint16(ScreenAddress)+FullScreenChars-1, FullScreenChars, uint16(ScreenAddress-bank))
	fmt.Fprintf(buf, ";   Bitmap data:  $%04X-$%04X (%d bytes) - bank offset $%04X\n", uint16(BitmapAddress), uint16(BitmapAddress)+BitmapSize-1, BitmapSize, uint16(BitmapAddress-bank))
	buf.WriteString(";   Color RAM:    Copied to $D800 at runtime\n")
	fmt.Fprintf(buf, "; VIC-II $D018 = $%02X (screen at $%04X, bitmap at $%04X)\n", d018(), uint16(ScreenAddress-bank), uint16(BitmapAddress-bank))
	buf.WriteString(asmRule)
	buf.WriteString("\n")

	fmt.Fprintf(buf, "%s_BG_COLOR = $%02X\n\n", label, k.BackgroundColor)

	fmt.Fprintf(buf, "; Screen RAM for %s (%d bytes)\n", name, FullScreenChars)
	fmt.Fprintf(buf, "* = $%04X\n", uint16(ScreenAddress))
	fmt.Fprintf(buf, "%s_SCREEN:\n", label)
	writeAsmBytes(buf, k.ScreenColor[:])

	fmt.Fprintf(buf, "\n; Bitmap data (%d bytes)\n", BitmapSize)
	fmt.Fprintf(buf, "* = $%04X\n", uint16(BitmapAddress))
	fmt.Fprintf(buf, "%s_BITMAP:\n", label)
	writeAsmBytes(buf, k.Bitmap[:])

	fmt.Fprintf(buf, "\n; Color RAM data for %s (%d bytes) - copy to $D800\n", name, FullScreenChars)
	fmt.Fprintf(buf, "%s_COLORS:\n", label)
	writeAsmBytes(buf, k.D800Color[:])

	fmt.Fprintf(buf, "\n; End of %s data\n", name)
	return buf.WriteTo(w)
}

// writeAsmBytes writes b as !byte lines of up to asmBytesPerLine $XX values.
func writeAsmBytes(buf *bytes.Buffer, b []byte) {
	for i := 0; i < len(b); i += asmBytesPerLine {
		end := i + asmBytesPerLine
		if end > len(b) {
			end = len(b)
		}
		buf.WriteString("        !byte ")
		for j, v := range b[i:end] {
			if j > 0 {
				buf.WriteString(", ")
			}
			fmt.Fprintf(buf, "$%02X", v)
		}
		buf.WriteString("\n")
	}
}
