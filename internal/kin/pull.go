package kin

import "github.com/Jungo-Phi/Slidep/internal/geom"

// PullByEnd puts end B (isB) or end A exactly on target. The other end is
// dragged along the line joining it to target so the rod keeps its length.
func (r *Rod) PullByEnd(target geom.Point, isB bool) {
	l := r.Len()
	if isB {
		r.B = target
		r.A = target.Sub(target.Sub(r.A).Normalize().Mul(l))
	} else {
		r.A = target
		r.B = target.Sub(target.Sub(r.B).Normalize().Mul(l))
	}
}

// PullAt moves the rod rigidly so that the point at parameter k lands on
// target, choosing the motion with the smallest summed squared endpoint
// displacement. The end nearer to k dominates the motion.
//
// With new endpoints a' = t - k·l·d and b' = t + (1-k)·l·d, the displacement
// is minimal for d along (2k-1)·t - k·a + (1-k)·b.
func (r *Rod) PullAt(k float64, target geom.Point) {
	switch k {
	case 0:
		r.PullByEnd(target, false)
		return
	case 1:
		r.PullByEnd(target, true)
		return
	}
	l := r.Len()
	d := target.Mul(2*k - 1).Sub(r.A.Mul(k)).Add(r.B.Mul(1 - k)).Normalize()
	r.A = target.Sub(d.Mul(l * k))
	r.B = target.Add(d.Mul(l * (1 - k)))
}

// PullToPoint pulls the rod through its own closest point to target.
func (r *Rod) PullToPoint(target geom.Point) {
	r.PullAt(r.ClosestK(target), target)
}

// PullToLine rotates the rod about its midpoint until it points along dir,
// then shifts it along the normal of dir so that its line passes through
// point.
func (r *Rod) PullToLine(point, dir geom.Point) {
	c := r.Mid()
	delta := point.Sub(c).Project(dir.Perp())
	angle := dir.AngleRad() - r.B.Sub(r.A).AngleRad()
	ca, cb := r.A.Sub(c), r.B.Sub(c)
	r.A = c.Add(delta).Add(ca.RotateRad(angle))
	r.B = c.Add(delta).Add(cb.RotateRad(angle))
}

// Rotate turns the rod by deg degrees about its midpoint.
func (r *Rod) Rotate(deg float64) {
	c := r.Mid()
	r.A = c.Add(r.A.Sub(c).RotateDeg(deg))
	r.B = c.Add(r.B.Sub(c).RotateDeg(deg))
}

// TranslateAt shifts the rod without rotation so that the point at k lands
// on target.
func (r *Rod) TranslateAt(k float64, target geom.Point) {
	delta := target.Sub(r.PointAt(k))
	r.A = r.A.Add(delta)
	r.B = r.B.Add(delta)
}

// PullRodPos is PullAt addressed through a RodPos.
func (m *Mechanism) PullRodPos(p RodPos, target geom.Point) {
	m.Rods[p.Rod].PullAt(p.K, target)
}
