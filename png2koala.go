package png2koala

import (
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

const Version = "0.1"

// Output formats.
const (
	FormatAsm   = "asm"
	FormatKoala = "kla"
	FormatPrg   = "prg"
)

// DefaultBaseName is used for the output file when no input file is given.
const DefaultBaseName = "title_data"

type Options struct {
	OutFile   string
	TargetDir string
	// Format is one of FormatAsm (default), FormatKoala or FormatPrg.
	Format  string
	Label   string
	Title   string
	Preview string
	Quiet   bool
	Verbose bool
	// NumWorkers limits the number of char rows converted concurrently, 0 uses all cpus.
	NumWorkers int

	// Palette overrides DefaultPalette, mostly for tests.
	Palette *Palette
}

func (opt Options) palette() Palette {
	if opt.Palette != nil {
		return *opt.Palette
	}
	return DefaultPalette
}

func (opt Options) format() string {
	if opt.Format == "" {
		return FormatAsm
	}
	return strings.ToLower(opt.Format)
}

// ValidFormat returns an error if f is not a supported output format.
func ValidFormat(f string) error {
	switch strings.ToLower(f) {
	case "", FormatAsm, FormatKoala, FormatPrg:
		return nil
	}
	return fmt.Errorf("unsupported format %q, use %s, %s or %s", f, FormatAsm, FormatKoala, FormatPrg)
}

// A Converter holds one converted image and writes it in the format set in its Options.
type Converter struct {
	opt   Options
	koala Koala
}

// New converts g.
func New(opt Options, g Grid) (*Converter, error) {
	if err := ValidFormat(opt.Format); err != nil {
		return nil, err
	}
	k, err := NewKoala(g, opt)
	if err != nil {
		return nil, fmt.Errorf("NewKoala failed: %w", err)
	}
	c := &Converter{opt: opt, koala: k}
	c.report()
	return c, nil
}

// NewFromPath decodes and converts the image at filename.
func NewFromPath(opt Options, filename string) (*Converter, error) {
	if opt.Verbose {
		log.Printf("processing file %q", filename)
	}
	g, err := GridFromPath(filename, opt.palette())
	if err != nil {
		return nil, fmt.Errorf("GridFromPath failed: %w", err)
	}
	c, err := New(opt, g)
	if err != nil {
		return nil, fmt.Errorf("convert %q failed: %w", filename, err)
	}
	c.koala.SourceFilename = filename
	return c, nil
}

// NewSampleTitle converts the generated placeholder title screen.
func NewSampleTitle(opt Options) (*Converter, error) {
	if !opt.Quiet {
		log.Println("no input file specified, generating sample title screen")
	}
	return New(opt, SampleTitle())
}

func (c *Converter) report() {
	if c.opt.Quiet {
		return
	}
	bg := C64Color(c.koala.BackgroundColor)
	log.WithField("color", bg.String()).Infof("background color: %d", bg)
	log.Infof("bitmap data: %d bytes", len(c.koala.Bitmap))
	log.Infof("screen ram: %d bytes", len(c.koala.ScreenColor))
	log.Infof("color ram: %d bytes", len(c.koala.D800Color))
}

// Koala returns the converted bitmap.
func (c *Converter) Koala() Koala {
	return c.koala
}

// WriteTo writes the converted image to w in the format set in Options.
func (c *Converter) WriteTo(w io.Writer) (n int64, err error) {
	switch c.opt.format() {
	case FormatKoala:
		return c.koala.WriteTo(w)
	case FormatPrg:
		return c.koala.WritePrgTo(w)
	}
	return c.koala.WriteAsmTo(w, AsmOptions{Label: c.opt.Label, Title: c.opt.Title})
}

// WritePreview writes a png rendering of the converted image to filename.
func (c *Converter) WritePreview(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("os.Create %q failed: %w", filename, err)
	}
	defer f.Close()
	if err = png.Encode(f, c.koala.Image(c.opt.palette())); err != nil {
		return fmt.Errorf("png.Encode %q failed: %w", filename, err)
	}
	return nil
}

// DestinationFilename returns the output filename for filename, taking opt.OutFile,
// opt.TargetDir and opt.Format into account. An empty filename uses DefaultBaseName.
func DestinationFilename(filename string, opt Options) (destfilename string) {
	if len(opt.TargetDir) > 0 {
		destfilename = filepath.Dir(opt.TargetDir+string(os.PathSeparator)) + string(os.PathSeparator)
	}
	if len(opt.OutFile) > 0 {
		return destfilename + opt.OutFile
	}
	base := DefaultBaseName
	if filename != "" {
		base = filepath.Base(strings.TrimSuffix(filename, filepath.Ext(filename)))
	}
	return destfilename + base + "." + opt.format()
}
