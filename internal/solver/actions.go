package solver

import "github.com/Jungo-Phi/Slidep/internal/kin"

// Actions turns a connected element set into the correction sequence swept
// by the solver. For each rod, in set order, it emits the rod's joints in
// set order with the rod itself right after the first of them, giving
// joint, rod, joint... groups. Joints that touch no rod of the set are
// dropped, and a rod with no joint in the set is never emitted.
func Actions(m *kin.Mechanism, elements []kin.Element) []kin.Element {
	actions := make([]kin.Element, 0, 2*len(elements))
	for _, e := range elements {
		if !e.IsRod() {
			continue
		}
		r := m.Rod(e.RodID())
		first := true
		for _, o := range elements {
			if o.IsRod() || !r.HasJoint(o.JointID()) {
				continue
			}
			actions = append(actions, o)
			if first {
				actions = append(actions, e)
				first = false
			}
		}
	}
	return actions
}
