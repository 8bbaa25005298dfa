package solver

import (
	"github.com/Jungo-Phi/Slidep/internal/geom"
	"github.com/Jungo-Phi/Slidep/internal/kin"
)

// Apply runs the local correction of a single rod or joint.
func Apply(m *kin.Mechanism, e kin.Element) {
	if e.IsRod() {
		applyRod(m, e.RodID())
		return
	}

	j := m.Joint(e.JointID())
	switch j.Kind {
	case kin.Slider:
		applySlider(m, j)
	case kin.Slidep:
		applySlidep(m, j)
	case kin.Pivot:
		applyPivot(m, j)
	case kin.Fixation:
		applyFixation(m, j)
	}
}

// applyRod moves each attached joint halfway toward its attachment point.
// A joint sliding on the rod tracks the rod's closest point instead and
// blends its direction toward the rod's.
func applyRod(m *kin.Mechanism, id kin.RodID) {
	r := m.Rod(id)
	for _, a := range r.Attachments {
		j := m.Joint(a.Joint)
		half := j.Pos.Lerp(r.PointAt(a.K), 0.5)

		switch j.Kind {
		case kin.Slider:
			if j.Ground {
				continue
			}
			if j.SlideRod == id {
				j.Pos = j.Pos.Lerp(r.ClosestPoint(j.Pos), 0.5)
				j.Dir = j.Dir.Add(r.Dir()).Normalize()
			} else {
				j.Pos = half
			}
		case kin.Slidep:
			if j.SlideRod == id {
				if !j.Ground {
					j.Pos = j.Pos.Lerp(r.ClosestPoint(j.Pos), 0.5)
				}
				j.Dir = j.Dir.Add(r.Dir()).Normalize()
			} else if !j.Ground {
				j.Pos = half
			}
		case kin.Pivot, kin.Fixation:
			// Grounded pivots and fixations hold; their rods are pulled to them instead.
			if !j.Ground {
				j.Pos = half
			}
		}
	}
}

func applySlider(m *kin.Mechanism, j *kin.Joint) {
	for _, f := range j.Fixed {
		pullHalf(m, f.RodPos, j.Pos)
	}
	meanDelta := untwist(m, j, true)

	if !j.HasSlideRod() {
		if !j.Ground {
			j.Dir = j.Dir.RotateDeg(residual(meanDelta, j.DirOrigin, j.Dir) * 0.5)
		}
		return
	}

	slide := m.Rod(j.SlideRod)
	if j.Ground {
		if !slide.Grounded() {
			slide.PullToLine(slide.A.Lerp(j.Pos, 0.5), j.Dir)
		}
		return
	}

	tot := residual(meanDelta, j.DirOrigin, j.Dir)
	j.Dir = j.Dir.RotateDeg(tot * 0.5)
	if !slide.Grounded() {
		slide.PullToPoint(slide.A.Lerp(j.Pos, 0.5))
		slide.Rotate(tot * 0.5)
	}
}

// applySlidep pulls the slide rod twice before the pivot correction.
func applySlidep(m *kin.Mechanism, j *kin.Joint) {
	if j.HasSlideRod() {
		slide := m.Rod(j.SlideRod)
		if !slide.Grounded() {
			half := slide.A.Lerp(j.Pos, 0.5)
			slide.PullToPoint(half)
			slide.PullToPoint(half)
		}
	}
	applyPivot(m, j)
}

func applyPivot(m *kin.Mechanism, j *kin.Joint) {
	for _, p := range j.Rotating {
		pullHalf(m, p, j.Pos)
	}
}

func applyFixation(m *kin.Mechanism, j *kin.Joint) {
	for _, f := range j.Fixed {
		pullHalf(m, f.RodPos, j.Pos)
	}
	untwist(m, j, false)
}

// pullHalf pulls the attachment point of a free rod halfway toward pos.
func pullHalf(m *kin.Mechanism, p kin.RodPos, pos geom.Point) {
	r := m.Rod(p.Rod)
	if r.Grounded() {
		return
	}
	r.PullAt(p.K, r.PointAt(p.K).Lerp(pos, 0.5))
}

// untwist spreads the angular drift of a welding joint across its fixed
// rods. The mean drift is the angle between the summed current directions
// and the summed reference directions; each free rod is turned halfway
// toward its reference angle plus that mean. withJoint includes the joint's
// own direction in both sums. It returns the mean drift in degrees.
func untwist(m *kin.Mechanism, j *kin.Joint, withJoint bool) float64 {
	var origin, current geom.Point
	for _, f := range j.Fixed {
		origin = origin.Add(f.DirOrigin)
		current = current.Add(m.Rod(f.Rod).Dir())
	}
	if withJoint {
		origin = origin.Add(j.DirOrigin)
		current = current.Add(j.Dir)
	}
	meanDelta := current.AngleDeg() - origin.AngleDeg()

	for _, f := range j.Fixed {
		r := m.Rod(f.Rod)
		if r.Grounded() {
			continue
		}
		r.Rotate(residual(meanDelta, f.DirOrigin, r.Dir()) * 0.5)
	}
	return meanDelta
}

// residual is the rotation in (-180, 180] that brings dir to dirOrigin
// turned by meanDelta.
func residual(meanDelta float64, dirOrigin, dir geom.Point) float64 {
	return geom.WrapDeg(meanDelta + dirOrigin.AngleDeg() - dir.AngleDeg())
}
