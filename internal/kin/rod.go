package kin

import (
	"math"

	"github.com/Jungo-Phi/Slidep/internal/geom"
)

// Dir returns the unit vector from A to B.
func (r *Rod) Dir() geom.Point { return r.B.Sub(r.A).Normalize() }

func (r *Rod) Len() float64 { return r.A.Dist(r.B) }
func (r *Rod) Mid() geom.Point { return r.A.Add(r.B).Div(2) }
func (r *Rod) Grounded() bool { return r.GroundA || r.GroundB }

// PointAt returns the point at parameter k (k=0 is A, k=1 is B).
func (r *Rod) PointAt(k float64) geom.Point { return r.A.Lerp(r.B, k) }

// Coords returns the parameter k of the orthogonal projection of p onto the
// rod's line and the perpendicular distance from p to that line.
func (r *Rod) Coords(p geom.Point) (k, dist float64) {
	v := r.B.Sub(r.A)
	ap := p.Sub(r.A)
	l := v.LenSq()
	if l == 0 {
		return 0, ap.Len()
	}
	return ap.Dot(v) / l, math.Abs(ap.Cross(v)) / math.Sqrt(l)
}

func (r *Rod) ClosestK(p geom.Point) float64 {
	k, _ := r.Coords(p)
	return k
}

// ClosestPoint returns the foot of the perpendicular from p on the rod's line.
func (r *Rod) ClosestPoint(p geom.Point) geom.Point {
	return r.PointAt(r.ClosestK(p))
}

// DistanceTo returns the distance from p to the rod's infinite line.
func (r *Rod) DistanceTo(p geom.Point) float64 {
	_, d := r.Coords(p)
	return d
}

// Intersection returns the parameter along r where the infinite lines of r
// and o cross. ok is false when the lines are parallel or a rod is
// degenerate.
func (r *Rod) Intersection(o *Rod) (k float64, ok bool) {
	u := r.B.Sub(r.A)
	v := o.B.Sub(o.A)
	den := u.Cross(v)
	if den == 0 || math.IsNaN(den) {
		return 0, false
	}
	return o.A.Sub(r.A).Cross(v) / den, true
}

func (r *Rod) HasJoint(j JointID) bool {
	for _, a := range r.Attachments {
		if a.Joint == j {
			return true
		}
	}
	return false
}

// NearestRodPosition returns the RodPos on rod id closest to p.
func (m *Mechanism) NearestRodPosition(id RodID, p geom.Point) RodPos {
	return RodPos{Rod: id, K: m.Rods[id].ClosestK(p)}
}

// Intersection returns the RodPos on rod a where rods a and b cross.
func (m *Mechanism) Intersection(a, b RodID) (RodPos, bool) {
	k, ok := m.Rods[a].Intersection(&m.Rods[b])
	return RodPos{Rod: a, K: k}, ok
}
