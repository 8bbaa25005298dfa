package kin

import (
	"fmt"

	"github.com/Jungo-Phi/Slidep/internal/geom"
)

type RodID int

type JointID int

// NoRod marks the absence of a slide rod.
const NoRod RodID = -1

// Kind enumerates the joint variants.
type Kind uint8

const (
	// Slider translates along one rod and holds other rods at fixed angles.
	Slider Kind = iota
	// Slidep translates along one rod and lets other rods rotate about it.
	Slidep
	// Pivot lets every connected rod rotate about it.
	Pivot
	// Fixation welds every connected rod at fixed relative angles.
	Fixation
)

var kindNames = [...]string{
	Slider:   "slider",
	Slidep:   "slidep",
	Pivot:    "pivot",
	Fixation: "fixation",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// ParseKind maps a kind name back to its Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Slides reports whether the kind may carry a slide rod.
func (k Kind) Slides() bool { return k == Slider || k == Slidep }

// Welds reports whether the kind holds its rods at fixed angles.
func (k Kind) Welds() bool { return k == Slider || k == Fixation }

// RodPos is a point at parameter K along a rod: K=0 is end A, K=1 is end B.
type RodPos struct {
	Rod RodID
	K   float64
}

// Attachment is the rod side of a rod/joint connection.
type Attachment struct {
	Joint JointID
	K     float64
}

// FixedRod is a rigid attachment together with the rod direction captured
// when the attachment was made.
type FixedRod struct {
	RodPos
	DirOrigin geom.Point
}

// Rod is a rigid straight segment from A to B.
type Rod struct {
	ID          RodID
	A, B        geom.Point
	GroundA     bool
	GroundB     bool
	Attachments []Attachment
}

// Joint is a slider, slidep, pivot or fixation.
//
// Fixed is used by sliders and fixations, Rotating by slideps and pivots.
// SlideRod is NoRod unless a slider or slidep translates along a rod.
type Joint struct {
	ID        JointID
	Kind      Kind
	Pos       geom.Point
	Dir       geom.Point
	DirOrigin geom.Point
	Ground    bool
	SlideRod  RodID
	Fixed     []FixedRod
	Rotating  []RodPos
}

func (j *Joint) HasSlideRod() bool { return j.SlideRod != NoRod }

// Rods lists every rod the joint references: the slide rod first, then the
// fixed and rotating rods in attachment order.
func (j *Joint) Rods() []RodID {
	rods := make([]RodID, 0, 1+len(j.Fixed)+len(j.Rotating))
	if j.HasSlideRod() {
		rods = append(rods, j.SlideRod)
	}
	for _, f := range j.Fixed {
		rods = append(rods, f.Rod)
	}
	for _, p := range j.Rotating {
		rods = append(rods, p.Rod)
	}
	return rods
}

// Mechanism is the arena of rods and joints.
type Mechanism struct {
	Rods   []Rod
	Joints []Joint
}

func New() *Mechanism {
	return &Mechanism{}
}

func (m *Mechanism) HasRod(id RodID) bool { return id >= 0 && int(id) < len(m.Rods) }
func (m *Mechanism) HasJoint(id JointID) bool { return id >= 0 && int(id) < len(m.Joints) }

func (m *Mechanism) Rod(id RodID) *Rod { return &m.Rods[id] }
func (m *Mechanism) Joint(id JointID) *Joint { return &m.Joints[id] }

// Point resolves a RodPos against the current rod geometry.
func (m *Mechanism) Point(p RodPos) geom.Point {
	return m.Rods[p.Rod].PointAt(p.K)
}

// ElementKind distinguishes rods from joints in an Element.
type ElementKind uint8

const (
	ElementRod ElementKind = iota
	ElementJoint
)

// Element is a handle to either a rod or a joint. It is comparable and used
// as the identity key during traversal.
type Element struct {
	Kind ElementKind
	ID   int
}

func RodElement(id RodID) Element { return Element{Kind: ElementRod, ID: int(id)} }
func JointElement(id JointID) Element { return Element{Kind: ElementJoint, ID: int(id)} }

func (e Element) IsRod() bool { return e.Kind == ElementRod }
func (e Element) RodID() RodID { return RodID(e.ID) }
func (e Element) JointID() JointID { return JointID(e.ID) }

func (e Element) String() string {
	if e.IsRod() {
		return fmt.Sprintf("rod %d", e.ID)
	}
	return fmt.Sprintf("joint %d", e.ID)
}
