package viz

import (
	"github.com/Jungo-Phi/Slidep/internal/geom"
	"github.com/Jungo-Phi/Slidep/internal/kin"
)

// glyph sizes in sub-pixels
const (
	pivotRadius   = 2
	fixationSize  = 1
	sliderLength  = 5
	sliderWidth   = 2
	groundHatch   = 3
	markerSize    = 2
	trailCapacity = 200
)

// DrawMechanism renders every rod and joint of m.
func DrawMechanism(c *Canvas, vp Viewport, m *kin.Mechanism) {
	for i := range m.Rods {
		r := &m.Rods[i]
		ax, ay := vp.ToScreen(r.A)
		bx, by := vp.ToScreen(r.B)
		c.DrawLine(ax, ay, bx, by)
		if r.GroundA {
			drawGround(c, ax, ay)
		}
		if r.GroundB {
			drawGround(c, bx, by)
		}
	}
	for i := range m.Joints {
		DrawJoint(c, vp, &m.Joints[i])
	}
}

// DrawJoint draws the glyph of one joint: a ring for a pivot, a block for a
// fixation, an oriented box for a slider and a box with a ring for a slidep.
func DrawJoint(c *Canvas, vp Viewport, j *kin.Joint) {
	x, y := vp.ToScreen(j.Pos)
	switch j.Kind {
	case kin.Pivot:
		c.DrawCircle(x, y, pivotRadius)
	case kin.Fixation:
		c.FillRect(x, y, fixationSize)
	case kin.Slider:
		drawSlide(c, x, y, j.Dir)
	case kin.Slidep:
		drawSlide(c, x, y, j.Dir)
		c.DrawCircle(x, y, 1)
	}
	if j.Ground {
		drawGround(c, x, y)
	}
}

// drawSlide draws a box elongated along dir. Screen y is flipped.
func drawSlide(c *Canvas, x, y int, dir geom.Point) {
	d := dir.Normalize()
	if d.LenSq() == 0 {
		d = geom.Pt(1, 0)
	}
	d = geom.Pt(d.X, -d.Y)
	n := d.Perp()
	along := d.Mul(sliderLength)
	across := n.Mul(sliderWidth)
	center := geom.Pt(float64(x), float64(y))
	corners := [4]geom.Point{
		center.Add(along).Add(across),
		center.Add(along).Sub(across),
		center.Sub(along).Sub(across),
		center.Sub(along).Add(across),
	}
	for i := range corners {
		p, q := corners[i], corners[(i+1)%4]
		c.DrawLine(int(p.X), int(p.Y), int(q.X), int(q.Y))
	}
}

// drawGround hatches a short bar under (x, y).
func drawGround(c *Canvas, x, y int) {
	base := y + pivotRadius + 1
	c.DrawLine(x-groundHatch, base, x+groundHatch, base)
	for dx := -groundHatch; dx <= groundHatch; dx += 2 {
		c.Set(x+dx-1, base+1)
	}
}

// DrawMarker draws a small cross at p.
func DrawMarker(c *Canvas, vp Viewport, p geom.Point) {
	x, y := vp.ToScreen(p)
	c.DrawLine(x-markerSize, y-markerSize, x+markerSize, y+markerSize)
	c.DrawLine(x-markerSize, y+markerSize, x+markerSize, y-markerSize)
}

// DrawTrail sets one pixel per recorded point.
func DrawTrail(c *Canvas, vp Viewport, trail []geom.Point) {
	for _, p := range trail {
		c.Set(vp.ToScreen(p))
	}
}
