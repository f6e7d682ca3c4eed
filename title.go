package png2koala

const (
	titleLetterWidth   = 50
	titleLetterHeight  = 60
	titleLetterSpacing = 10
	titleThickness     = 12
	titleStartY        = 50
	titleSubtitleY     = 130
	titlePressFireY    = 160
)

// fillRect fills the rectangle x1,y1 - x2,y2 (exclusive) with col, clipped to the Grid.
func (g Grid) fillRect(x1, y1, x2, y2 int, col C64Color) {
	for y := max(0, y1); y < min(len(g), y2); y++ {
		for x := max(0, x1); x < min(len(g[y]), x2); x++ {
			g[y][x] = col
		}
	}
}

// SampleTitle draws the placeholder QIXY title screen: blue bands at the top and bottom,
// the four block letters, a gradient subtitle bar and a white press fire bar.
func SampleTitle() Grid {
	g := NewGrid(0)
	for y := 0; y < FullScreenHeight; y++ {
		col := C64Color(0)
		switch {
		case y < 20 || y >= 180:
			col = 6
		case y < 40 || y >= 160:
			col = 14
		}
		g.fillRect(0, y, FullScreenWidth, y+1, col)
	}

	const (
		w  = titleLetterWidth
		h  = titleLetterHeight
		t  = titleThickness
		y0 = titleStartY
	)
	totalWidth := 4*w + 3*titleLetterSpacing
	startX := (FullScreenWidth - totalWidth) / 2
	letterX := func(i int) int { return startX + i*(w+titleLetterSpacing) }

	// Q: square O with a tail
	qx := letterX(0)
	g.fillRect(qx, y0, qx+w, y0+t, 3)
	g.fillRect(qx, y0+h-t, qx+w, y0+h, 3)
	g.fillRect(qx, y0, qx+t, y0+h, 3)
	g.fillRect(qx+w-t, y0, qx+w, y0+h, 3)
	g.fillRect(qx+w-20, y0+h-15, qx+w+5, y0+h+10, 3)

	// I
	ix := letterX(1)
	g.fillRect(ix, y0, ix+w, y0+t, 7)
	g.fillRect(ix, y0+h-t, ix+w, y0+h, 7)
	g.fillRect(ix+(w-t)/2, y0, ix+(w+t)/2, y0+h, 7)

	// X
	xx := letterX(2)
	for i := 0; i < h; i++ {
		dx := i * w / h
		g.fillRect(xx+dx, y0+i, xx+dx+t, y0+i+1, 2)
		g.fillRect(xx+w-dx-t, y0+i, xx+w-dx, y0+i+1, 2)
	}

	// Y
	yx := letterX(3)
	for i := 0; i < h/2; i++ {
		dx := i * (w/2 - t/2) / (h / 2)
		g.fillRect(yx+dx, y0+i, yx+dx+t, y0+i+1, 4)
		g.fillRect(yx+w-dx-t, y0+i, yx+w-dx, y0+i+1, 4)
	}
	g.fillRect(yx+(w-t)/2, y0+h/2, yx+(w+t)/2, y0+h, 4)

	gradient := []C64Color{14, 3, 7, 13, 5}
	for x := 40; x < 280; x++ {
		col := gradient[(x-40)*len(gradient)/240]
		g.fillRect(x, titleSubtitleY, x+1, titleSubtitleY+2, col)
	}

	g.fillRect(80, titlePressFireY, 240, titlePressFireY+2, 1)
	return g
}
