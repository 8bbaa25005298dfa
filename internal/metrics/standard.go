package metrics

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Jungo-Phi/Slidep/internal/solver"
)

var ErrUnknownMetric = errors.New("metrics: unknown metric")

// Standard returns a fresh set of the metrics reported by the CLI.
func Standard() []solver.Metric {
	return []solver.Metric{
		NewFinalError(),
		NewSweeps(),
		NewErrorReduction(),
		NewMonotonicity(1e-9),
		NewRigidityDrift(),
		NewOscillation(),
	}
}

// Names lists the names of the Standard metrics.
func Names() []string {
	set := Standard()
	names := make([]string, len(set))
	for i, m := range set {
		names[i] = m.Name()
	}
	return names
}

// Check returns ErrUnknownMetric when name is not one of the Standard metrics.
func Check(name string) error {
	names := Names()
	for _, n := range names {
		if n == name {
			return nil
		}
	}
	return fmt.Errorf("%w %q (want one of %s)", ErrUnknownMetric, name, strings.Join(names, ", "))
}
