package metrics

import "github.com/Jungo-Phi/Slidep/internal/kin"

// FinalError reports the error after the last observed sweep.
type FinalError struct {
	name string
	last float64
}

func NewFinalError() *FinalError {
	return &FinalError{name: "final_error"}
}

func (f *FinalError) Name() string { return f.name }

func (f *FinalError) Observe(m *kin.Mechanism, sweep int, err float64) {
	f.last = err
}

func (f *FinalError) Value() float64 { return f.last }
func (f *FinalError) Reset() { f.last = 0 }

// Sweeps counts observed sweeps.
type Sweeps struct {
	name    string
	samples int
}

func NewSweeps() *Sweeps {
	return &Sweeps{name: "sweeps"}
}

func (s *Sweeps) Name() string { return s.name }

func (s *Sweeps) Observe(m *kin.Mechanism, sweep int, err float64) {
	s.samples++
}

func (s *Sweeps) Value() float64 { return float64(s.samples) }
func (s *Sweeps) Reset() { s.samples = 0 }

// ErrorReduction is the ratio of the last observed error to the first one.
// Values below 1 mean the relaxation made progress.
type ErrorReduction struct {
	name    string
	first   float64
	last    float64
	samples int
}

func NewErrorReduction() *ErrorReduction {
	return &ErrorReduction{name: "error_reduction"}
}

func (e *ErrorReduction) Name() string { return e.name }

func (e *ErrorReduction) Observe(m *kin.Mechanism, sweep int, err float64) {
	if e.samples == 0 {
		e.first = err
	}
	e.last = err
	e.samples++
}

func (e *ErrorReduction) Value() float64 {
	if e.samples == 0 || e.first == 0 {
		return 0
	}
	return e.last / e.first
}

func (e *ErrorReduction) Reset() {
	e.first = 0
	e.last = 0
	e.samples = 0
}
