package png2koala

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDestinationFilename(t *testing.T) {
	t.Parallel()
	sep := string(os.PathSeparator)
	testCases := []struct {
		filename string
		opt      Options
		want     string
	}{
		{"", Options{}, "title_data.asm"},
		{"pics/logo.png", Options{}, "logo.asm"},
		{"pics/logo.png", Options{Format: FormatKoala}, "logo.kla"},
		{"pics/logo.png", Options{Format: "PRG"}, "logo.prg"},
		{"pics/logo.png", Options{OutFile: "out.bin"}, "out.bin"},
		{"logo.png", Options{TargetDir: "build"}, "build" + sep + "logo.asm"},
		{"logo.png", Options{TargetDir: "build" + sep, OutFile: "x.kla"}, "build" + sep + "x.kla"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, DestinationFilename(tc.filename, tc.opt), "%+v", tc)
	}
}

func TestValidFormat(t *testing.T) {
	t.Parallel()
	for _, f := range []string{"", "asm", "kla", "prg", "KLA"} {
		assert.NoError(t, ValidFormat(f), f)
	}
	assert.Error(t, ValidFormat("gif"))
	_, err := New(Options{Format: "gif", Quiet: true}, NewGrid(0))
	assert.Error(t, err)
}

func TestConverterWriteTo(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		format string
		check  func(t *testing.T, b []byte)
	}{
		{"", func(t *testing.T, b []byte) {
			assert.True(t, strings.HasPrefix(string(b), "; ====="))
			assert.Contains(t, string(b), "TITLE_BG_COLOR = $00\n")
		}},
		{FormatAsm, func(t *testing.T, b []byte) {
			assert.Contains(t, string(b), "QIXY_BITMAP:\n")
		}},
		{FormatKoala, func(t *testing.T, b []byte) {
			assert.Len(t, b, 10003)
			assert.Equal(t, []byte{0x00, 0x60}, b[:2])
		}},
		{FormatPrg, func(t *testing.T, b []byte) {
			assert.Equal(t, []byte{0x00, 0x5c}, b[:2])
		}},
	}
	for _, tc := range testCases {
		opt := Options{Format: tc.format, Quiet: true}
		if tc.format == FormatAsm {
			opt.Label = "QIXY"
		}
		c, err := NewSampleTitle(opt)
		require.NoError(t, err)
		buf := &bytes.Buffer{}
		n, err := c.WriteTo(buf)
		require.NoError(t, err)
		assert.Equal(t, int64(buf.Len()), n)
		tc.check(t, buf.Bytes())
	}
}

func TestNewFromPathAndPreview(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	in := filepath.Join(dir, "title.png")
	c, err := NewSampleTitle(Options{Quiet: true})
	require.NoError(t, err)
	require.NoError(t, c.WritePreview(in))

	// the preview of the sample title converts back to the same bitmap.
	c2, err := NewFromPath(Options{Quiet: true, Verbose: true}, in)
	require.NoError(t, err)
	k1, k2 := c.Koala(), c2.Koala()
	assert.Equal(t, in, k2.SourceFilename)
	assert.Equal(t, k1.Bitmap, k2.Bitmap)
	assert.Equal(t, k1.ScreenColor, k2.ScreenColor)
	assert.Equal(t, k1.D800Color, k2.D800Color)
	assert.Equal(t, k1.BackgroundColor, k2.BackgroundColor)

	f, err := os.Open(in)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, FullScreenWidth, img.Bounds().Dx())
	assert.Equal(t, FullScreenHeight, img.Bounds().Dy())

	_, err = NewFromPath(Options{Quiet: true}, filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
}

func BenchmarkNewSampleTitle(b *testing.B) {
	opt := Options{Quiet: true}
	for i := 0; i < b.N; i++ {
		buf := &bytes.Buffer{}
		c, err := NewSampleTitle(opt)
		if err != nil {
			b.Fatalf("NewSampleTitle failed: %v", err)
		}
		if _, err = c.WriteTo(buf); err != nil {
			b.Fatalf("WriteTo failed: %v", err)
		}
	}
}

func BenchmarkNewSampleTitleParallel(b *testing.B) {
	opt := Options{Quiet: true, NumWorkers: 1}
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			buf := &bytes.Buffer{}
			c, err := NewSampleTitle(opt)
			if err != nil {
				b.Fatalf("NewSampleTitle failed: %v", err)
			}
			if _, err = c.WriteTo(buf); err != nil {
				b.Fatalf("WriteTo failed: %v", err)
			}
		}
	})
}
