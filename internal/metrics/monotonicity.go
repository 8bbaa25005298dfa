package metrics

import "github.com/Jungo-Phi/Slidep/internal/kin"

// Monotonicity is the fraction of sweeps whose error did not rise above the
// previous sweep's error by more than slack. A well-conditioned mechanism
// scores 1.
type Monotonicity struct {
	name       string
	slack      float64
	prev       float64
	violations int
	samples    int
}

func NewMonotonicity(slack float64) *Monotonicity {
	return &Monotonicity{
		name:  "monotonicity",
		slack: slack,
	}
}

func (s *Monotonicity) Name() string {
	return s.name
}

func (s *Monotonicity) Observe(m *kin.Mechanism, sweep int, err float64) {
	if s.samples > 0 && err > s.prev+s.slack {
		s.violations++
	}
	s.prev = err
	s.samples++
}

func (s *Monotonicity) Value() float64 {
	if s.samples < 2 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples-1)
}

func (s *Monotonicity) Reset() {
	s.prev = 0
	s.violations = 0
	s.samples = 0
}
