package viz

import (
	"math"
	"strings"

	"github.com/Jungo-Phi/Slidep/internal/geom"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
	return c
}

// PixelWidth and PixelHeight give the canvas size in sub-pixels.
func (c *Canvas) PixelWidth() int  { return c.Width * 2 }
func (c *Canvas) PixelHeight() int { return c.Height * 4 }

// Set sets a pixel at (x, y) in sub-pixel coordinates.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// IsSet reports whether the sub-pixel at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 {
		return false
	}
	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return false
	}
	return c.Grid[row][col]&rune(pixelMap[y%4][x%2]) != 0
}

// Unset clears a pixel
func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	mask := ^rune(pixelMap[y%4][x%2])
	c.Grid[row][col] &= mask
	if c.Grid[row][col] < brailleBlank {
		c.Grid[row][col] = brailleBlank
	}
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawCircle draws a circle outline with the midpoint algorithm.
func (c *Canvas) DrawCircle(cx, cy, r int) {
	if r <= 0 {
		c.Set(cx, cy)
		return
	}
	x, y, d := r, 0, 1-r
	for x >= y {
		c.Set(cx+x, cy+y)
		c.Set(cx+y, cy+x)
		c.Set(cx-y, cy+x)
		c.Set(cx-x, cy+y)
		c.Set(cx-x, cy-y)
		c.Set(cx-y, cy-x)
		c.Set(cx+y, cy-x)
		c.Set(cx+x, cy-y)
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

// FillRect sets every pixel of the square of half-size r centred on (cx, cy).
func (c *Canvas) FillRect(cx, cy, r int) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			c.Set(cx+dx, cy+dy)
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Viewport maps world coordinates to canvas sub-pixels with a uniform
// scale. World y points up, screen y points down.
type Viewport struct {
	Center geom.Point
	Scale  float64
	W, H   int
}

// FitViewport frames the box lo..hi in a w x h pixel area, leaving margin
// pixels on every side.
func FitViewport(lo, hi geom.Point, w, h, margin int) Viewport {
	vp := Viewport{Center: lo.Lerp(hi, 0.5), Scale: 1, W: w, H: h}
	span := hi.Sub(lo)
	aw, ah := float64(w-2*margin), float64(h-2*margin)
	if aw <= 0 || ah <= 0 {
		return vp
	}
	sx, sy := math.Inf(1), math.Inf(1)
	if span.X > 0 {
		sx = aw / span.X
	}
	if span.Y > 0 {
		sy = ah / span.Y
	}
	if s := math.Min(sx, sy); !math.IsInf(s, 1) {
		vp.Scale = s
	}
	return vp
}

// ToScreen converts a world point to pixel coordinates.
func (v Viewport) ToScreen(p geom.Point) (x, y int) {
	sx := float64(v.W)/2 + (p.X-v.Center.X)*v.Scale
	sy := float64(v.H)/2 - (p.Y-v.Center.Y)*v.Scale
	return int(math.Round(sx)), int(math.Round(sy))
}

// ToWorld is the inverse of ToScreen.
func (v Viewport) ToWorld(x, y int) geom.Point {
	return geom.Pt(
		v.Center.X+(float64(x)-float64(v.W)/2)/v.Scale,
		v.Center.Y-(float64(y)-float64(v.H)/2)/v.Scale,
	)
}

// Zoom scales the view around its center.
func (v *Viewport) Zoom(f float64) {
	if f > 0 {
		v.Scale *= f
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
