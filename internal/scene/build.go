package scene

import (
	"fmt"

	"github.com/Jungo-Phi/Slidep/internal/geom"
	"github.com/Jungo-Phi/Slidep/internal/kin"
)

// Build assembles and validates the mechanism described by s.
func (s *Scene) Build() (*kin.Mechanism, error) {
	m := kin.New()
	for _, r := range s.Rods {
		id := m.AddRod(r.A, r.B)
		m.SetRodGround(id, r.GroundA, r.GroundB)
	}

	for i, js := range s.Joints {
		kind, err := kin.ParseKind(js.Kind)
		if err != nil {
			return nil, fmt.Errorf("joint %d: %w", i, err)
		}
		id := m.AddJoint(kind, js.Pos)
		m.SetGround(id, js.Ground)

		if js.SlideRod != nil {
			if err := m.SetSlideRod(id, kin.RodID(*js.SlideRod)); err != nil {
				return nil, fmt.Errorf("joint %d: %w", i, err)
			}
		}
		if js.Dir != nil {
			m.SetDir(id, *js.Dir)
		}
		if js.DirOrigin != nil {
			m.Joint(id).DirOrigin = js.DirOrigin.Normalize()
		}

		for _, l := range js.Fixed {
			if err := m.AttachFixed(id, kin.RodID(l.Rod), l.K); err != nil {
				return nil, fmt.Errorf("joint %d: %w", i, err)
			}
			if l.DirOrigin != nil {
				fixed := m.Joint(id).Fixed
				fixed[len(fixed)-1].DirOrigin = l.DirOrigin.Normalize()
			}
		}
		for _, l := range js.Rotating {
			if err := m.AttachRotating(id, kin.RodID(l.Rod), l.K); err != nil {
				return nil, fmt.Errorf("joint %d: %w", i, err)
			}
		}
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// FromMechanism captures m, including the reference directions, so that
// Build restores an equivalent mechanism.
func FromMechanism(name string, m *kin.Mechanism) *Scene {
	s := &Scene{
		Name:   name,
		Rods:   make([]Rod, len(m.Rods)),
		Joints: make([]Joint, len(m.Joints)),
	}
	for i, r := range m.Rods {
		s.Rods[i] = Rod{A: r.A, B: r.B, GroundA: r.GroundA, GroundB: r.GroundB}
	}

	for i := range m.Joints {
		j := &m.Joints[i]
		dir, origin := j.Dir, j.DirOrigin
		js := Joint{
			Kind:      j.Kind.String(),
			Pos:       j.Pos,
			Dir:       &dir,
			DirOrigin: &origin,
			Ground:    j.Ground,
		}
		if j.HasSlideRod() {
			rod := int(j.SlideRod)
			js.SlideRod = &rod
		}
		for _, f := range j.Fixed {
			o := f.DirOrigin
			js.Fixed = append(js.Fixed, Link{Rod: int(f.Rod), K: f.K, DirOrigin: &o})
		}
		for _, p := range j.Rotating {
			js.Rotating = append(js.Rotating, Link{Rod: int(p.Rod), K: p.K})
		}
		s.Joints[i] = js
	}
	return s
}

func pt(x, y float64) geom.Point { return geom.Pt(x, y) }

func ref(i int) *int { return &i }
