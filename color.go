package png2koala

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// MaxColors is the number of colors in a Palette.
const MaxColors = 16

// ErrInvalidColor is returned when a color index is not in the range 0-15.
var ErrInvalidColor = errors.New("invalid c64 color")

// A C64Color is one of the 16 C64 colors, 0 is black, 1 white, 2 red, ...
type C64Color byte

func (c C64Color) String() string {
	switch c {
	case 0:
		return "black"
	case 1:
		return "white"
	case 2:
		return "red"
	case 3:
		return "cyan"
	case 4:
		return "purple"
	case 5:
		return "green"
	case 6:
		return "blue"
	case 7:
		return "yellow"
	case 8:
		return "orange"
	case 9:
		return "brown"
	case 10:
		return "pink"
	case 11:
		return "darkgrey"
	case 12:
		return "grey"
	case 13:
		return "lightgreen"
	case 14:
		return "lightblue"
	case 15:
		return "lightgrey"
	default:
		return "unknown color"
	}
}

// Valid returns true if c is in the range 0-15.
func (c C64Color) Valid() bool {
	return c < MaxColors
}

type RGB struct {
	R, G, B byte
}

func (c RGB) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RGBA implements the color.Color interface, RGB is always opaque.
func (c RGB) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

// Distance returns the squared euclidean rgb distance between c and col.
func (c RGB) Distance(col RGB) int {
	dr := int(c.R) - int(col.R)
	dg := int(c.G) - int(col.G)
	db := int(c.B) - int(col.B)
	return dr*dr + dg*dg + db*db
}

// toRGB returns the non-alphapremultiplied 8 bit rgb components of col.
func toRGB(col color.Color) RGB {
	if rgb, ok := col.(RGB); ok {
		return rgb
	}
	n := color.NRGBAModel.Convert(col).(color.NRGBA)
	return RGB{R: n.R, G: n.G, B: n.B}
}

// A Palette is an immutable, ordered set of 16 colors, the position of a color is its C64Color.
type Palette struct {
	name string
	rgb  [MaxColors]RGB
}

// DefaultPalette is the fixed palette used by the converter.
var DefaultPalette Palette

func (p Palette) Name() string {
	return p.name
}

func (p Palette) String() string {
	s := ""
	for i, rgb := range p.rgb {
		s += strconv.Itoa(i) + "," + rgb.String() + " "
	}
	return p.name + ": " + strings.TrimSpace(s)
}

// RGB returns the rgb value of col. Invalid colors return black.
func (p Palette) RGB(col C64Color) RGB {
	if !col.Valid() {
		return RGB{}
	}
	return p.rgb[col]
}

// Nearest returns the C64Color with the smallest squared distance to rgb.
// The lowest color index wins when distances are equal.
func (p Palette) Nearest(rgb RGB) C64Color {
	min := math.MaxInt
	found := C64Color(0)
	for i, col := range p.rgb {
		if d := col.Distance(rgb); d < min {
			found = C64Color(i)
			min = d
		}
	}
	return found
}

// NearestColor returns the closest C64Color of any color.Color.
func (p Palette) NearestColor(c color.Color) C64Color {
	return p.Nearest(toRGB(c))
}

// Distance returns the squared rgb distance between two palette colors.
func (p Palette) Distance(a, b C64Color) int {
	return p.RGB(a).Distance(p.RGB(b))
}

// Convert returns the closest palette color, implementing the color.Model interface.
func (p Palette) Convert(c color.Color) color.Color {
	return p.RGB(p.NearestColor(c))
}

// ColorPalette returns the palette as color.Palette, usable for image.Paletted.
func (p Palette) ColorPalette() color.Palette {
	cp := make(color.Palette, MaxColors)
	for i, rgb := range p.rgb {
		cp[i] = color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 0xff}
	}
	return cp
}

//go:embed "palettes.yaml"
var palettesYaml []byte

func init() {
	pp, err := convertPaletteSources(palettesYaml)
	if err != nil {
		panic(fmt.Errorf("convertPaletteSources failed: %w", err))
	}
	if len(pp) == 0 {
		panic(fmt.Errorf("no palettes found in %q", "palettes.yaml"))
	}
	DefaultPalette = pp[0]
}

// convertPaletteSources parses inputYaml and returns the palettes in it.
func convertPaletteSources(inputYaml []byte) (out []Palette, err error) {
	type paletteYaml struct {
		Name   string
		Colors []string
	}
	var ps []paletteYaml
	if err = yaml.Unmarshal(inputYaml, &ps); err != nil {
		return out, fmt.Errorf("yaml.Unmarshal failed: %w", err)
	}
	for _, py := range ps {
		p := Palette{name: py.Name}
		seen := [MaxColors]bool{}
		for _, l := range py.Colors {
			a := strings.Split(l, ",")
			if len(a) != 2 {
				return out, fmt.Errorf("palette %q: malformed color %q", py.Name, l)
			}
			i, err := strconv.Atoi(strings.TrimSpace(a[0]))
			if err != nil {
				return out, fmt.Errorf("palette %q: strconv.Atoi %q failed: %w", py.Name, a[0], err)
			}
			if i < 0 || i >= MaxColors {
				return out, fmt.Errorf("palette %q: %w: %d", py.Name, ErrInvalidColor, i)
			}
			c, err := colorful.Hex(strings.TrimSpace(a[1]))
			if err != nil {
				return out, fmt.Errorf("palette %q: colorful.Hex %q failed: %w", py.Name, a[1], err)
			}
			r, g, b := c.RGB255()
			p.rgb[i] = RGB{R: r, G: g, B: b}
			seen[i] = true
		}
		for i := range seen {
			if !seen[i] {
				return out, fmt.Errorf("palette %q must have %d colors, color %d is missing", py.Name, MaxColors, i)
			}
		}
		out = append(out, p)
	}
	return out, nil
}
