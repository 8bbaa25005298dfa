package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/Jungo-Phi/Slidep/internal/geom"
	"github.com/Jungo-Phi/Slidep/internal/kin"
	"github.com/Jungo-Phi/Slidep/internal/solver"
)

var ErrUnknownMetric = errors.New("optim: metric not reported by the solver")

// GridSearch drags a grabbed point to every target of a rectangular grid,
// each time from the same starting pose.
type GridSearch struct {
	xs []float64
	ys []float64
}

func NewGridSearch(xs, ys []float64) *GridSearch {
	return &GridSearch{xs: xs, ys: ys}
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}

// Cell is the outcome of the drag towards one grid target.
type Cell struct {
	Target     geom.Point
	Reached    geom.Point
	Distance   float64
	Error      float64
	Iterations int
	Converged  bool
	Valid      bool
	Score      float64
}

// Within reports whether the drag settled with the grabbed point less than
// tol away from its target.
func (c Cell) Within(tol float64) bool {
	return c.Valid && c.Converged && c.Distance < tol
}

// ReachMap holds the cells of a search, Cells[iy][ix].
type ReachMap struct {
	Xs    []float64
	Ys    []float64
	Cells [][]Cell
	Best  Cell
}

// Coverage is the fraction of cells within tol of their target.
func (r *ReachMap) Coverage(tol float64) float64 {
	total, hit := 0, 0
	for _, row := range r.Cells {
		for _, c := range row {
			total++
			if c.Within(tol) {
				hit++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(hit) / float64(total)
}

// Search runs one drag per grid target. newSolver is called for every cell so
// stateful metrics start fresh. The score of a cell is result.Metrics[metricName],
// or the distance left between the grabbed point and its target when
// metricName is empty. A name the solver does not report fails with
// ErrUnknownMetric. Best is the valid cell with the lowest score.
func (g *GridSearch) Search(
	ctx context.Context,
	m *kin.Mechanism,
	grab solver.Grab,
	newSolver func() *solver.Solver,
	metricName string,
) (*ReachMap, error) {

	rm := &ReachMap{Xs: g.xs, Ys: g.ys, Cells: make([][]Cell, len(g.ys))}
	best := math.Inf(1)
	trial := &kin.Mechanism{}

	for iy, y := range g.ys {
		rm.Cells[iy] = make([]Cell, len(g.xs))
		for ix, x := range g.xs {
			if err := ctx.Err(); err != nil {
				return rm, err
			}

			m.CopyTo(trial)
			target := geom.Pt(x, y)
			res := newSolver().Drag(trial, grab, target)

			reached := grab.Position(trial)
			cell := Cell{
				Target:     target,
				Reached:    reached,
				Distance:   reached.Dist(target),
				Error:      res.Error,
				Iterations: res.Iterations,
				Converged:  res.Converged,
				Valid:      res.Valid,
			}
			cell.Score = cell.Distance
			if metricName != "" {
				score, ok := res.Metrics[metricName]
				if !ok {
					return rm, fmt.Errorf("%w: %q", ErrUnknownMetric, metricName)
				}
				cell.Score = score
			}
			rm.Cells[iy][ix] = cell

			if cell.Valid && cell.Score < best {
				best = cell.Score
				rm.Best = cell
			}
		}
	}
	return rm, nil
}
