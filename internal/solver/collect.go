package solver

import "github.com/Jungo-Phi/Slidep/internal/kin"

// Collect returns every element reachable from the seeds through attachment
// edges, in depth-first discovery order. Rods lead to their joints and
// joints lead to their slide rod, then their fixed or rotating rods.
func Collect(m *kin.Mechanism, seeds ...kin.Element) []kin.Element {
	visited := make(map[kin.Element]bool)
	elements := make([]kin.Element, 0, len(m.Rods)+len(m.Joints))

	var visit func(e kin.Element)
	visit = func(e kin.Element) {
		if visited[e] {
			return
		}
		visited[e] = true
		elements = append(elements, e)

		if e.IsRod() {
			for _, a := range m.Rod(e.RodID()).Attachments {
				visit(kin.JointElement(a.Joint))
			}
			return
		}
		for _, r := range m.Joint(e.JointID()).Rods() {
			visit(kin.RodElement(r))
		}
	}

	for _, s := range seeds {
		visit(s)
	}
	return elements
}
