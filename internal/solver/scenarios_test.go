package solver_test

import (
	"github.com/Jungo-Phi/Slidep/internal/geom"
	"github.com/Jungo-Phi/Slidep/internal/kin"
)

// crank is a single rod pinned to the frame at A by a grounded pivot, with
// a free pivot at B.
type crank struct {
	m      *kin.Mechanism
	rod    kin.RodID
	ground kin.JointID
	free   kin.JointID
}

func newCrank() crank {
	m := kin.New()
	r := m.AddRod(geom.Pt(0, 0), geom.Pt(5, 0))
	g := m.AddJoint(kin.Pivot, geom.Pt(0, 0))
	f := m.AddJoint(kin.Pivot, geom.Pt(5, 0))
	m.SetGround(g, true)
	must(m.AttachRotating(g, r, 0))
	must(m.AttachRotating(f, r, 1))
	return crank{m: m, rod: r, ground: g, free: f}
}

// weld is two rods at a right angle held by a fixation at the origin.
type weld struct {
	m      *kin.Mechanism
	r1, r2 kin.RodID
	fix    kin.JointID
}

func newWeld() weld {
	m := kin.New()
	r1 := m.AddRod(geom.Pt(0, 0), geom.Pt(5, 0))
	r2 := m.AddRod(geom.Pt(0, 0), geom.Pt(0, 5))
	f := m.AddJoint(kin.Fixation, geom.Pt(0, 0))
	must(m.AttachFixed(f, r1, 0))
	must(m.AttachFixed(f, r2, 0))
	return weld{m: m, r1: r1, r2: r2, fix: f}
}

// rail is a vertical arm welded to a slider that runs along a grounded rod.
type rail struct {
	m      *kin.Mechanism
	ground kin.RodID
	arm    kin.RodID
	slider kin.JointID
}

func newRail() rail {
	m := kin.New()
	g := m.AddRod(geom.Pt(0, 0), geom.Pt(20, 0))
	a := m.AddRod(geom.Pt(5, 0), geom.Pt(5, 5))
	s := m.AddJoint(kin.Slider, geom.Pt(5, 0))
	m.SetRodGround(g, true, false)
	must(m.SetSlideRod(s, g))
	must(m.AttachFixed(s, a, 0))
	return rail{m: m, ground: g, arm: a, slider: s}
}

// guide is a free rod running through a grounded slider.
type guide struct {
	m      *kin.Mechanism
	rod    kin.RodID
	slider kin.JointID
}

func newGuide() guide {
	m := kin.New()
	r := m.AddRod(geom.Pt(-5, 0), geom.Pt(5, 0))
	s := m.AddJoint(kin.Slider, geom.Pt(0, 0))
	m.SetGround(s, true)
	must(m.SetSlideRod(s, r))
	return guide{m: m, rod: r, slider: s}
}

// carriage is a free slider on a free rail, with an arm welded upright on the
// slider and pinned at its top to the frame.
type carriage struct {
	m      *kin.Mechanism
	rail   kin.RodID
	arm    kin.RodID
	slider kin.JointID
	hinge  kin.JointID
}

func newCarriage() carriage {
	m := kin.New()
	rail := m.AddRod(geom.Pt(0, 0), geom.Pt(10, 0))
	arm := m.AddRod(geom.Pt(5, 0), geom.Pt(5, 5))
	s := m.AddJoint(kin.Slider, geom.Pt(5, 0))
	h := m.AddJoint(kin.Pivot, geom.Pt(5, 5))
	m.SetGround(h, true)
	must(m.SetSlideRod(s, rail))
	must(m.AttachFixed(s, arm, 0))
	must(m.AttachRotating(h, arm, 1))
	return carriage{m: m, rail: rail, arm: arm, slider: s, hinge: h}
}

// freeRail is a crank on a grounded pivot whose tip is a slidep riding a
// rail that is not grounded.
type freeRail struct {
	m      *kin.Mechanism
	rail   kin.RodID
	arm    kin.RodID
	base   kin.JointID
	slidep kin.JointID
}

func newFreeRail() freeRail {
	m := kin.New()
	rail := m.AddRod(geom.Pt(0, 3), geom.Pt(10, 3))
	arm := m.AddRod(geom.Pt(0, 0), geom.Pt(4, 3))
	b := m.AddJoint(kin.Pivot, geom.Pt(0, 0))
	p := m.AddJoint(kin.Slidep, geom.Pt(4, 3))
	m.SetGround(b, true)
	must(m.AttachRotating(b, arm, 0))
	must(m.SetSlideRod(p, rail))
	must(m.AttachRotating(p, arm, 1))
	return freeRail{m: m, rail: rail, arm: arm, base: b, slidep: p}
}

// fourBar is a grounded base with two cranks joined by a coupler.
func newFourBar() *kin.Mechanism {
	m := kin.New()
	left := m.AddRod(geom.Pt(0, 0), geom.Pt(0, 4))
	coupler := m.AddRod(geom.Pt(0, 4), geom.Pt(6, 4))
	right := m.AddRod(geom.Pt(6, 4), geom.Pt(6, 0))

	p0 := m.AddJoint(kin.Pivot, geom.Pt(0, 0))
	p1 := m.AddJoint(kin.Pivot, geom.Pt(0, 4))
	p2 := m.AddJoint(kin.Pivot, geom.Pt(6, 4))
	p3 := m.AddJoint(kin.Pivot, geom.Pt(6, 0))
	m.SetGround(p0, true)
	m.SetGround(p3, true)

	must(m.AttachRotating(p0, left, 0))
	must(m.AttachRotating(p1, left, 1))
	must(m.AttachRotating(p1, coupler, 0))
	must(m.AttachRotating(p2, coupler, 1))
	must(m.AttachRotating(p2, right, 0))
	must(m.AttachRotating(p3, right, 1))
	return m
}

// sliderCrank drives a slidep along a grounded rail through a crank and a
// connecting rod.
func newSliderCrank() *kin.Mechanism {
	m := kin.New()
	rail := m.AddRod(geom.Pt(-2, 0), geom.Pt(20, 0))
	crank := m.AddRod(geom.Pt(0, 0), geom.Pt(0, 3))
	conrod := m.AddRod(geom.Pt(0, 3), geom.Pt(8, 0))
	m.SetRodGround(rail, true, true)

	base := m.AddJoint(kin.Pivot, geom.Pt(0, 0))
	elbow := m.AddJoint(kin.Pivot, geom.Pt(0, 3))
	piston := m.AddJoint(kin.Slidep, geom.Pt(8, 0))
	m.SetGround(base, true)

	must(m.AttachRotating(base, crank, 0))
	must(m.AttachRotating(elbow, crank, 1))
	must(m.AttachRotating(elbow, conrod, 0))
	must(m.SetSlideRod(piston, rail))
	must(m.AttachRotating(piston, conrod, 1))
	return m
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func rodLengths(m *kin.Mechanism) []float64 {
	out := make([]float64, len(m.Rods))
	for i := range m.Rods {
		out[i] = m.Rods[i].Len()
	}
	return out
}

func angleBetween(a, b geom.Point) float64 {
	return geom.WrapDeg(b.AngleDeg() - a.AngleDeg())
}
