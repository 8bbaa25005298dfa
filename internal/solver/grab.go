package solver

import (
	"fmt"

	"github.com/Jungo-Phi/Slidep/internal/geom"
	"github.com/Jungo-Phi/Slidep/internal/kin"
)

// Grab is the element a drag acts on. For rods, K selects the grabbed point
// along the rod; K is ignored for joints.
type Grab struct {
	Element kin.Element
	K       float64
}

func GrabJoint(id kin.JointID) Grab {
	return Grab{Element: kin.JointElement(id)}
}

func GrabRodPos(p kin.RodPos) Grab {
	return Grab{Element: kin.RodElement(p.Rod), K: p.K}
}

// GrabRodEnd grabs end B of a rod when isB is set, end A otherwise.
func GrabRodEnd(id kin.RodID, isB bool) Grab {
	g := Grab{Element: kin.RodElement(id)}
	if isB {
		g.K = 1
	}
	return g
}

// Position returns the current location of the grabbed point.
func (g Grab) Position(m *kin.Mechanism) geom.Point {
	if g.Element.IsRod() {
		return m.Rod(g.Element.RodID()).PointAt(g.K)
	}
	return m.Joint(g.Element.JointID()).Pos
}

// Grounded reports whether the grabbed element is pinned to the frame.
func (g Grab) Grounded(m *kin.Mechanism) bool {
	if g.Element.IsRod() {
		return m.Rod(g.Element.RodID()).Grounded()
	}
	return m.Joint(g.Element.JointID()).Ground
}

// Valid reports whether the grab refers to an element of m.
func (g Grab) Valid(m *kin.Mechanism) bool {
	if g.Element.IsRod() {
		return m.HasRod(g.Element.RodID())
	}
	return m.HasJoint(g.Element.JointID())
}

func (g Grab) String() string {
	if g.Element.IsRod() {
		return fmt.Sprintf("%s at k=%.3g", g.Element, g.K)
	}
	return g.Element.String()
}

// Move places the grabbed point on target without propagating. A rod is
// pulled rigidly through the grabbed point, a joint is moved directly.
// Grounded elements stay put.
func Move(m *kin.Mechanism, g Grab, target geom.Point) {
	if g.Grounded(m) {
		return
	}
	if g.Element.IsRod() {
		m.Rod(g.Element.RodID()).PullAt(g.K, target)
		return
	}
	m.Joint(g.Element.JointID()).Pos = target
}

// Translate shifts the grabbed element onto target without rotating it and
// without propagating.
func Translate(m *kin.Mechanism, g Grab, target geom.Point) {
	if g.Grounded(m) {
		return
	}
	if g.Element.IsRod() {
		m.Rod(g.Element.RodID()).TranslateAt(g.K, target)
		return
	}
	m.Joint(g.Element.JointID()).Pos = target
}
