package automation

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"runtime"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Jungo-Phi/Slidep/internal/geom"
	"github.com/Jungo-Phi/Slidep/internal/kin"
	"github.com/Jungo-Phi/Slidep/internal/scene"
	"github.com/Jungo-Phi/Slidep/internal/solver"
)

// Script defines a scripted sequence of drags on one scene
type Script struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Scene       string `yaml:"scene"`
	Steps       []Step `yaml:"steps"`
}

// Step is a single drag in a script
type Step struct {
	Joint   *int       `yaml:"joint,omitempty"`
	Rod     *int       `yaml:"rod,omitempty"`
	K       float64    `yaml:"k,omitempty"`
	Target  geom.Point `yaml:"target"`
	Animate bool       `yaml:"animate,omitempty"`
}

// Grab resolves the grabbed element of a step
func (s Step) Grab() (solver.Grab, error) {
	switch {
	case s.Joint != nil && s.Rod != nil:
		return solver.Grab{}, fmt.Errorf("step grabs both joint %d and rod %d", *s.Joint, *s.Rod)
	case s.Joint != nil:
		return solver.GrabJoint(kin.JointID(*s.Joint)), nil
	case s.Rod != nil:
		return solver.GrabRodPos(kin.RodPos{Rod: kin.RodID(*s.Rod), K: s.K}), nil
	}
	return solver.Grab{}, fmt.Errorf("step grabs nothing")
}

// StepResult pairs a step with the solve it produced
type StepResult struct {
	Index  int
	Grab   solver.Grab
	Target geom.Point
	Result *solver.Result
}

// LoadScript loads a script from a YAML file
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, err
	}

	return &script, nil
}

// RunScript builds the script's scene and executes all steps on it in
// order. Progress lines go to out when it is not nil.
func RunScript(ctx context.Context, script *Script, s *solver.Solver, out io.Writer) ([]StepResult, *kin.Mechanism, error) {
	sc, err := scene.Resolve(script.Scene)
	if err != nil {
		return nil, nil, err
	}
	m, err := sc.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("scene %s: %w", script.Scene, err)
	}

	results := make([]StepResult, 0, len(script.Steps))
	for i, step := range script.Steps {
		select {
		case <-ctx.Done():
			return results, m, ctx.Err()
		default:
		}

		g, err := step.Grab()
		if err != nil {
			return results, m, fmt.Errorf("step %d: %w", i+1, err)
		}
		if !g.Valid(m) {
			return results, m, fmt.Errorf("step %d: %s is not in scene %s", i+1, g, script.Scene)
		}

		var res *solver.Result
		if step.Animate {
			res = s.Animate(m, g, step.Target)
		} else {
			res = s.Drag(m, g, step.Target)
		}
		results = append(results, StepResult{Index: i, Grab: g, Target: step.Target, Result: res})

		if out != nil {
			fmt.Fprintf(out, "Step %d/%d: %s -> %s  error=%.6f sweeps=%d\n",
				i+1, len(script.Steps), g, step.Target, res.Error, res.Iterations)
		}
	}

	return results, m, nil
}

// Sweep drives a grabbed point around a circle, the way a motor turns a
// crank.
type Sweep struct {
	Grab    solver.Grab
	Center  geom.Point
	Radius  float64
	Steps   int
	Animate bool
}

// SweepResult holds the outcome of one sweep position
type SweepResult struct {
	Step       int
	Angle      float64
	Target     geom.Point
	Position   geom.Point
	Error      float64
	Iterations int
	Converged  bool
}

// RunSweep executes a sweep on m, leaving m at the last position.
func RunSweep(ctx context.Context, m *kin.Mechanism, sweep *Sweep, s *solver.Solver, out io.Writer) ([]SweepResult, error) {
	if sweep.Steps <= 0 {
		return nil, fmt.Errorf("sweep needs a positive step count, got %d", sweep.Steps)
	}
	if !sweep.Grab.Valid(m) {
		return nil, fmt.Errorf("sweep grabs missing %s", sweep.Grab)
	}

	results := make([]SweepResult, 0, sweep.Steps)
	for i := 0; i < sweep.Steps; i++ {
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}

		angle := 360 * float64(i+1) / float64(sweep.Steps)
		target := sweep.Center.Add(geom.Pt(sweep.Radius, 0).RotateDeg(angle))

		var res *solver.Result
		if sweep.Animate {
			res = s.Animate(m, sweep.Grab, target)
		} else {
			res = s.Drag(m, sweep.Grab, target)
		}

		results = append(results, SweepResult{
			Step:       i,
			Angle:      angle,
			Target:     target,
			Position:   sweep.Grab.Position(m),
			Error:      res.Error,
			Iterations: res.Iterations,
			Converged:  res.Converged,
		})

		if out != nil && (i+1)%10 == 0 {
			fmt.Fprintf(out, "Sweep %d/%d: angle=%.1f error=%.6f\n", i+1, sweep.Steps, angle, res.Error)
		}
	}

	return results, nil
}

// SweepStats counts converged and unconverged positions and reports the
// worst error seen
func SweepStats(results []SweepResult) (converged, unconverged int, worst float64) {
	for _, r := range results {
		if r.Converged {
			converged++
		} else {
			unconverged++
		}
		worst = math.Max(worst, r.Error)
	}
	return
}

// MonteCarloConfig defines randomized drags around a base target
type MonteCarloConfig struct {
	Grab         solver.Grab
	Base         geom.Point
	Perturbation float64
	NumTrials    int
	Seed         int64
	Solver       solver.Config
	// Workers bounds the trials run at once; zero means one per CPU.
	Workers int
}

// MonteCarloResult holds the outcome of one trial
type MonteCarloResult struct {
	TrialID    int
	Target     geom.Point
	Error      float64
	Iterations int
	Converged  bool
	Valid      bool
}

// RunMonteCarlo drags a fresh copy of m toward a randomly perturbed target
// per trial. Trials run on a bounded set of workers. Each trial owns its
// mechanism and solver, and m itself is never modified.
func RunMonteCarlo(ctx context.Context, m *kin.Mechanism, cfg *MonteCarloConfig) ([]MonteCarloResult, error) {
	if !cfg.Grab.Valid(m) {
		return nil, fmt.Errorf("monte carlo grabs missing %s", cfg.Grab)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	targets := make([]geom.Point, cfg.NumTrials)
	for i := range targets {
		targets[i] = cfg.Base.Add(geom.Pt(
			(rng.Float64()-0.5)*2*cfg.Perturbation,
			(rng.Float64()-0.5)*2*cfg.Perturbation,
		))
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	pool := NewMechanismPool(m)
	jobs := make(chan int)
	results := make([]MonteCarloResult, cfg.NumTrials)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := solver.New(cfg.Solver)
			for idx := range jobs {
				trial := pool.Get()
				res := s.Drag(trial, cfg.Grab, targets[idx])
				pool.Put(trial)
				results[idx] = MonteCarloResult{
					TrialID:    idx,
					Target:     targets[idx],
					Error:      res.Error,
					Iterations: res.Iterations,
					Converged:  res.Converged,
					Valid:      res.Valid,
				}
			}
		}()
	}

feed:
	for i := range targets {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// MonteCarloStats computes summary statistics from Monte Carlo results
func MonteCarloStats(results []MonteCarloResult) (convergedCount int, unconvergedCount int) {
	for _, r := range results {
		if r.Converged {
			convergedCount++
		} else {
			unconvergedCount++
		}
	}
	return
}
