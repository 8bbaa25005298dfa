package metrics

import (
	"math"

	"github.com/Jungo-Phi/Slidep/internal/kin"
)

// RigidityDrift tracks the largest relative change of any rod length since
// the first observation.
type RigidityDrift struct {
	name     string
	initial  []float64
	maxDrift float64
}

func NewRigidityDrift() *RigidityDrift {
	return &RigidityDrift{name: "rigidity_drift"}
}

func (r *RigidityDrift) Name() string { return r.name }

func (r *RigidityDrift) Observe(m *kin.Mechanism, sweep int, err float64) {
	if r.initial == nil {
		r.initial = make([]float64, len(m.Rods))
		for i := range m.Rods {
			r.initial[i] = m.Rods[i].Len()
		}
		return
	}

	for i := range m.Rods {
		if i >= len(r.initial) || r.initial[i] == 0 {
			continue
		}
		drift := math.Abs(m.Rods[i].Len()-r.initial[i]) / r.initial[i]
		r.maxDrift = math.Max(r.maxDrift, drift)
	}
}

func (r *RigidityDrift) Value() float64 {
	return r.maxDrift
}

func (r *RigidityDrift) Reset() {
	r.initial = nil
	r.maxDrift = 0
}
