package solver

import "errors"

// ErrInvalidConfig indicates solver settings that cannot run a solve.
var ErrInvalidConfig = errors.New("solver: invalid config")
