package solver

import (
	"fmt"
	"log"

	"github.com/Jungo-Phi/Slidep/internal/geom"
	"github.com/Jungo-Phi/Slidep/internal/kin"
)

// Config bounds a relaxation run.
type Config struct {
	// MaxIterations caps the forward+backward sweeps of one propagation.
	MaxIterations int `yaml:"max_iterations" json:"max_iterations"`
	// Tolerance is the TotalError below which a propagation stops.
	Tolerance float64 `yaml:"tolerance" json:"tolerance"`
	// AnimateSteps is the number of move+propagate rounds of Animate.
	AnimateSteps int `yaml:"animate_steps" json:"animate_steps"`
	// AnimateMaxStep is the longest move of the first Animate round. Later
	// rounds shrink it linearly.
	AnimateMaxStep float64 `yaml:"animate_max_step" json:"animate_max_step"`
}

func DefaultConfig() Config {
	return Config{
		MaxIterations:  100,
		Tolerance:      0.001,
		AnimateSteps:   10,
		AnimateMaxStep: 100,
	}
}

func (c Config) Validate() error {
	if c.MaxIterations <= 0 {
		return fmt.Errorf("%w: max_iterations must be positive, got %d", ErrInvalidConfig, c.MaxIterations)
	}
	if c.Tolerance <= 0 {
		return fmt.Errorf("%w: tolerance must be positive, got %g", ErrInvalidConfig, c.Tolerance)
	}
	if c.AnimateSteps <= 0 {
		return fmt.Errorf("%w: animate_steps must be positive, got %d", ErrInvalidConfig, c.AnimateSteps)
	}
	if c.AnimateMaxStep <= 0 {
		return fmt.Errorf("%w: animate_max_step must be positive, got %g", ErrInvalidConfig, c.AnimateMaxStep)
	}
	return nil
}

// Metric accumulates a scalar over the sweeps of a propagation.
type Metric interface {
	Name() string
	Observe(m *kin.Mechanism, sweep int, err float64)
	Value() float64
	Reset()
}

// Observer is notified after every forward+backward sweep.
type Observer interface {
	OnSweep(m *kin.Mechanism, sweep int, err float64)
}

// Result describes one propagation, or the concatenation of the
// propagations of an Animate call.
type Result struct {
	Iterations int
	Error      float64
	Converged  bool
	// Valid is false when a position or direction became NaN or infinite.
	Valid    bool
	Trace    []float64
	Elements []kin.Element
	Actions  []kin.Element
	Metrics  map[string]float64
}

type Solver struct {
	cfg       Config
	metrics   []Metric
	observers []Observer
	logger    *log.Logger
}

func New(cfg Config) *Solver {
	return &Solver{
		cfg:       cfg,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Solver) AddMetric(m Metric) { s.metrics = append(s.metrics, m) }
func (s *Solver) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// SetLogger enables diagnostics on non-convergence and invalid geometry.
// A nil logger silences them.
func (s *Solver) SetLogger(l *log.Logger) { s.logger = l }

func (s *Solver) Config() Config { return s.cfg }

func (s *Solver) logf(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}

// Propagate relaxes the component connected to seed.
func (s *Solver) Propagate(m *kin.Mechanism, seed kin.Element) *Result {
	for _, mt := range s.metrics {
		mt.Reset()
	}

	result := s.propagate(m, seed)

	result.Metrics = make(map[string]float64, len(s.metrics))
	for _, mt := range s.metrics {
		result.Metrics[mt.Name()] = mt.Value()
	}
	return result
}

func (s *Solver) propagate(m *kin.Mechanism, seed kin.Element) *Result {
	elements := Collect(m, seed)
	actions := Actions(m, elements)

	result := &Result{
		Trace:    make([]float64, 0, s.cfg.MaxIterations),
		Elements: elements,
		Actions:  actions,
	}

	err := TotalError(m)
	for i := 0; i < s.cfg.MaxIterations; i++ {
		for _, a := range actions {
			Apply(m, a)
		}
		for k := len(actions) - 1; k >= 0; k-- {
			Apply(m, actions[k])
		}

		err = TotalError(m)
		result.Iterations++
		result.Trace = append(result.Trace, err)

		for _, mt := range s.metrics {
			mt.Observe(m, i, err)
		}
		for _, obs := range s.observers {
			obs.OnSweep(m, i, err)
		}

		if err < s.cfg.Tolerance {
			result.Converged = true
			break
		}
	}

	result.Error = err
	result.Valid = m.IsFinite()
	if !result.Valid {
		s.logf("solver: invalid geometry after %d sweeps from %s", result.Iterations, seed)
	} else if !result.Converged {
		s.logf("solver: no convergence from %s after %d sweeps (error %.6g)", seed, result.Iterations, err)
	}
	return result
}

// Drag moves the grabbed point to target and relaxes the mechanism around
// it.
func (s *Solver) Drag(m *kin.Mechanism, g Grab, target geom.Point) *Result {
	Move(m, g, target)
	return s.Propagate(m, g.Element)
}

// Animate approaches target in AnimateSteps rounds of move+propagate. Each
// round moves the grabbed point from where the previous round left it by at
// most a step that shrinks linearly from AnimateMaxStep.
func (s *Solver) Animate(m *kin.Mechanism, g Grab, target geom.Point) *Result {
	for _, mt := range s.metrics {
		mt.Reset()
	}

	total := &Result{Valid: true}
	step := s.cfg.AnimateMaxStep / float64(s.cfg.AnimateSteps)
	for i := 0; i < s.cfg.AnimateSteps; i++ {
		source := g.Position(m)
		target = source.Add(target.Sub(source).LimitLength(s.cfg.AnimateMaxStep - float64(i)*step))
		Move(m, g, target)

		r := s.propagate(m, g.Element)
		total.Iterations += r.Iterations
		total.Trace = append(total.Trace, r.Trace...)
		total.Error = r.Error
		total.Converged = r.Converged
		total.Valid = total.Valid && r.Valid
		total.Elements = r.Elements
		total.Actions = r.Actions
	}

	total.Metrics = make(map[string]float64, len(s.metrics))
	for _, mt := range s.metrics {
		total.Metrics[mt.Name()] = mt.Value()
	}
	return total
}

// Propagate relaxes the component around seed with the default settings.
func Propagate(m *kin.Mechanism, seed kin.Element) *Result {
	return New(DefaultConfig()).Propagate(m, seed)
}

// DragToTarget moves the grabbed point to target and relaxes the mechanism
// with the default settings.
func DragToTarget(m *kin.Mechanism, g Grab, target geom.Point) *Result {
	return New(DefaultConfig()).Drag(m, g, target)
}
