package kin

import (
	"fmt"
	"math"

	"github.com/Jungo-Phi/Slidep/internal/geom"
)

// AddRod appends a free rod from a to b.
func (m *Mechanism) AddRod(a, b geom.Point) RodID {
	id := RodID(len(m.Rods))
	m.Rods = append(m.Rods, Rod{ID: id, A: a, B: b})
	return id
}

// AddJoint appends an unattached joint. Its direction starts along +x.
func (m *Mechanism) AddJoint(kind Kind, pos geom.Point) JointID {
	id := JointID(len(m.Joints))
	dir := geom.Pt(1, 0)
	m.Joints = append(m.Joints, Joint{
		ID:        id,
		Kind:      kind,
		Pos:       pos,
		Dir:       dir,
		DirOrigin: dir,
		SlideRod:  NoRod,
	})
	return id
}

// SetDir sets both the current and the reference direction of a joint.
func (m *Mechanism) SetDir(j JointID, dir geom.Point) {
	d := dir.Normalize()
	m.Joints[j].Dir = d
	m.Joints[j].DirOrigin = d
}

// AttachFixed welds rod at parameter k to a slider or fixation. The rod's
// current direction is recorded as its reference angle.
func (m *Mechanism) AttachFixed(j JointID, rod RodID, k float64) error {
	if err := m.checkHandles(j, rod); err != nil {
		return err
	}
	jt := &m.Joints[j]
	if !jt.Kind.Welds() {
		return &ValidationError{Element: JointElement(j), Wrapped: fmt.Errorf("%w: %s cannot hold fixed rods", ErrKindMismatch, jt.Kind)}
	}
	jt.Fixed = append(jt.Fixed, FixedRod{RodPos: RodPos{Rod: rod, K: k}, DirOrigin: m.Rods[rod].Dir()})
	m.Rods[rod].Attachments = append(m.Rods[rod].Attachments, Attachment{Joint: j, K: k})
	return nil
}

// AttachRotating lets rod rotate about a slidep or pivot at parameter k.
func (m *Mechanism) AttachRotating(j JointID, rod RodID, k float64) error {
	if err := m.checkHandles(j, rod); err != nil {
		return err
	}
	jt := &m.Joints[j]
	if jt.Kind != Slidep && jt.Kind != Pivot {
		return &ValidationError{Element: JointElement(j), Wrapped: fmt.Errorf("%w: %s cannot hold rotating rods", ErrKindMismatch, jt.Kind)}
	}
	jt.Rotating = append(jt.Rotating, RodPos{Rod: rod, K: k})
	m.Rods[rod].Attachments = append(m.Rods[rod].Attachments, Attachment{Joint: j, K: k})
	return nil
}

// SetSlideRod makes a slider or slidep translate along rod. The joint takes
// the rod direction as both its current and reference direction.
func (m *Mechanism) SetSlideRod(j JointID, rod RodID) error {
	if err := m.checkHandles(j, rod); err != nil {
		return err
	}
	jt := &m.Joints[j]
	if !jt.Kind.Slides() {
		return &ValidationError{Element: JointElement(j), Wrapped: fmt.Errorf("%w: %s cannot slide", ErrKindMismatch, jt.Kind)}
	}
	if jt.HasSlideRod() {
		return &ValidationError{Element: JointElement(j), Wrapped: ErrSlideRodTaken}
	}
	r := &m.Rods[rod]
	jt.SlideRod = rod
	jt.Dir = r.Dir()
	jt.DirOrigin = jt.Dir
	r.Attachments = append(r.Attachments, Attachment{Joint: j, K: r.ClosestK(jt.Pos)})
	return nil
}

func (m *Mechanism) SetGround(j JointID, ground bool) {
	m.Joints[j].Ground = ground
}

func (m *Mechanism) SetRodGround(rod RodID, groundA, groundB bool) {
	m.Rods[rod].GroundA = groundA
	m.Rods[rod].GroundB = groundB
}

// ToggleRodGround toggles the ground of one rod end. Grounding an end while
// the opposite end is grounded moves the ground instead of adding a second
// one.
func (m *Mechanism) ToggleRodGround(rod RodID, isB bool) {
	r := &m.Rods[rod]
	if isB {
		if r.GroundA {
			r.GroundA, r.GroundB = false, true
		} else {
			r.GroundB = !r.GroundB
		}
		return
	}
	if r.GroundB {
		r.GroundB, r.GroundA = false, true
	} else {
		r.GroundA = !r.GroundA
	}
}

func (m *Mechanism) checkHandles(j JointID, rod RodID) error {
	if !m.HasJoint(j) {
		return fmt.Errorf("%w: %d", ErrUnknownJoint, j)
	}
	if !m.HasRod(rod) {
		return fmt.Errorf("%w: %d", ErrUnknownRod, rod)
	}
	return nil
}

// Validate checks that every handle resolves and that each rod's attachment
// list matches the rod references held by the joints.
func (m *Mechanism) Validate() error {
	if err := m.validateHandles(); err != nil {
		return err
	}

	for i := range m.Rods {
		r := &m.Rods[i]
		for _, a := range r.Attachments {
			if !m.jointRefersTo(&m.Joints[a.Joint], r.ID) {
				return &ValidationError{Element: RodElement(r.ID), Wrapped: fmt.Errorf("%w: joint %d does not reference the rod", ErrAttachmentMismatch, a.Joint)}
			}
		}
	}

	for i := range m.Joints {
		j := &m.Joints[i]
		e := JointElement(j.ID)
		if j.HasSlideRod() && !j.Kind.Slides() {
			return &ValidationError{Element: e, Wrapped: fmt.Errorf("%w: %s cannot slide", ErrKindMismatch, j.Kind)}
		}
		if len(j.Fixed) > 0 && !j.Kind.Welds() {
			return &ValidationError{Element: e, Wrapped: fmt.Errorf("%w: %s cannot hold fixed rods", ErrKindMismatch, j.Kind)}
		}
		if len(j.Rotating) > 0 && j.Kind != Slidep && j.Kind != Pivot {
			return &ValidationError{Element: e, Wrapped: fmt.Errorf("%w: %s cannot hold rotating rods", ErrKindMismatch, j.Kind)}
		}
		for _, rod := range j.Rods() {
			if !m.Rods[rod].HasJoint(j.ID) {
				return &ValidationError{Element: e, Wrapped: fmt.Errorf("%w: rod %d does not list the joint", ErrAttachmentMismatch, rod)}
			}
		}
	}

	if !m.IsFinite() {
		return ErrInvalidGeometry
	}
	return nil
}

func (m *Mechanism) validateHandles() error {
	for i := range m.Rods {
		r := &m.Rods[i]
		if r.ID != RodID(i) {
			return &ValidationError{Element: RodElement(RodID(i)), Wrapped: fmt.Errorf("%w: id %d stored at %d", ErrAttachmentMismatch, r.ID, i)}
		}
		for _, a := range r.Attachments {
			if !m.HasJoint(a.Joint) {
				return &ValidationError{Element: RodElement(r.ID), Wrapped: fmt.Errorf("%w: %d", ErrUnknownJoint, a.Joint)}
			}
		}
	}
	for i := range m.Joints {
		j := &m.Joints[i]
		if j.ID != JointID(i) {
			return &ValidationError{Element: JointElement(JointID(i)), Wrapped: fmt.Errorf("%w: id %d stored at %d", ErrAttachmentMismatch, j.ID, i)}
		}
		for _, rod := range j.Rods() {
			if !m.HasRod(rod) {
				return &ValidationError{Element: JointElement(j.ID), Wrapped: fmt.Errorf("%w: %d", ErrUnknownRod, rod)}
			}
		}
	}
	return nil
}

func (m *Mechanism) jointRefersTo(j *Joint, rod RodID) bool {
	for _, r := range j.Rods() {
		if r == rod {
			return true
		}
	}
	return false
}

// IsFinite reports whether every position and direction is a finite number.
func (m *Mechanism) IsFinite() bool {
	for i := range m.Rods {
		if !m.Rods[i].A.IsFinite() || !m.Rods[i].B.IsFinite() {
			return false
		}
	}
	for i := range m.Joints {
		if !m.Joints[i].Pos.IsFinite() || !m.Joints[i].Dir.IsFinite() {
			return false
		}
	}
	return true
}

// Clone returns a deep copy that shares no slices with m.
func (m *Mechanism) Clone() *Mechanism {
	c := &Mechanism{}
	m.CopyTo(c)
	return c
}

// CopyTo overwrites dst with a deep copy of m, reusing dst's storage where
// it is large enough. dst must not share slices with m.
func (m *Mechanism) CopyTo(dst *Mechanism) {
	if cap(dst.Rods) < len(m.Rods) {
		dst.Rods = make([]Rod, len(m.Rods))
	}
	dst.Rods = dst.Rods[:len(m.Rods)]
	for i := range m.Rods {
		att := append(dst.Rods[i].Attachments[:0], m.Rods[i].Attachments...)
		dst.Rods[i] = m.Rods[i]
		dst.Rods[i].Attachments = att
	}

	if cap(dst.Joints) < len(m.Joints) {
		dst.Joints = make([]Joint, len(m.Joints))
	}
	dst.Joints = dst.Joints[:len(m.Joints)]
	for i := range m.Joints {
		fixed := append(dst.Joints[i].Fixed[:0], m.Joints[i].Fixed...)
		rotating := append(dst.Joints[i].Rotating[:0], m.Joints[i].Rotating...)
		dst.Joints[i] = m.Joints[i]
		dst.Joints[i].Fixed = fixed
		dst.Joints[i].Rotating = rotating
	}
}

// Bounds returns the bounding box of all rod ends and joints.
func (m *Mechanism) Bounds() (lo, hi geom.Point) {
	lo = geom.Pt(math.Inf(1), math.Inf(1))
	hi = geom.Pt(math.Inf(-1), math.Inf(-1))
	grow := func(p geom.Point) {
		lo = geom.Pt(math.Min(lo.X, p.X), math.Min(lo.Y, p.Y))
		hi = geom.Pt(math.Max(hi.X, p.X), math.Max(hi.Y, p.Y))
	}
	for i := range m.Rods {
		grow(m.Rods[i].A)
		grow(m.Rods[i].B)
	}
	for i := range m.Joints {
		grow(m.Joints[i].Pos)
	}
	if len(m.Rods) == 0 && len(m.Joints) == 0 {
		return geom.Point{}, geom.Point{}
	}
	return lo, hi
}
