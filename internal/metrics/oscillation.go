package metrics

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/Jungo-Phi/Slidep/internal/kin"
)

// Oscillation is the share of the spectral power of the sweep-to-sweep error
// change that lies in the upper half of the frequency band. A relaxation that
// bounces between two poses scores close to 1, a steady decay close to 0.
type Oscillation struct {
	name  string
	trace []float64
}

func NewOscillation() *Oscillation {
	return &Oscillation{name: "oscillation"}
}

func (o *Oscillation) Name() string { return o.name }

func (o *Oscillation) Observe(m *kin.Mechanism, sweep int, err float64) {
	o.trace = append(o.trace, err)
}

func (o *Oscillation) Value() float64 {
	if len(o.trace) < 3 {
		return 0
	}
	diffs := make([]float64, len(o.trace)-1)
	for i := range diffs {
		diffs[i] = o.trace[i+1] - o.trace[i]
	}

	spectrum := fft.FFTReal(diffs)
	n := len(diffs)
	var total, high float64
	for k := 1; k <= n/2; k++ {
		p := cmplx.Abs(spectrum[k])
		p *= p
		total += p
		if 4*k > n {
			high += p
		}
	}
	dc := cmplx.Abs(spectrum[0])
	if total <= 1e-12*(dc*dc+total) {
		return 0
	}
	return high / total
}

func (o *Oscillation) Reset() { o.trace = o.trace[:0] }
