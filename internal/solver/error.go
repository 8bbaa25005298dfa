package solver

import "github.com/Jungo-Phi/Slidep/internal/kin"

// TotalError sums the constraint violation of every joint in the mechanism.
func TotalError(m *kin.Mechanism) float64 {
	var total float64
	for i := range m.Joints {
		total += JointError(m, m.Joints[i].ID)
	}
	return total
}

// JointError is the distance between a joint and the points its rods say it
// should sit on: the perpendicular distance to the slide rod's line, plus
// the distance to every fixed or rotating attachment point.
func JointError(m *kin.Mechanism, id kin.JointID) float64 {
	j := m.Joint(id)
	var e float64
	if j.HasSlideRod() {
		e += m.Rod(j.SlideRod).DistanceTo(j.Pos)
	}
	for _, f := range j.Fixed {
		e += j.Pos.Dist(m.Point(f.RodPos))
	}
	for _, p := range j.Rotating {
		e += j.Pos.Dist(m.Point(p))
	}
	return e
}
