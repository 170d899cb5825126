// Package convergence bounds the fixed-point loops of the solvers.
package convergence

import (
	"errors"
	"fmt"
	"math"
)

// ErrNotConverged is wrapped by every *Error.
var ErrNotConverged = errors.New("convergence: did not converge")

// Criterion stops a fixed-point loop when successive iterates differ by no
// more than Tolerance, or fails it after MaxIterations.
type Criterion struct {
	Tolerance     float64
	MaxIterations int
}

// DefaultCriterion is the absolute 0.01 degree C tolerance used by both loops.
var DefaultCriterion = Criterion{Tolerance: 0.01, MaxIterations: 100}

func (c Criterion) Validate() error {
	if !(c.Tolerance > 0) || math.IsInf(c.Tolerance, 0) {
		return fmt.Errorf("convergence: tolerance must be positive, got %g", c.Tolerance)
	}
	if c.MaxIterations < 1 {
		return fmt.Errorf("convergence: max iterations must be at least 1, got %d", c.MaxIterations)
	}
	return nil
}

// Converged reports whether two successive iterates are close enough.
func (c Criterion) Converged(current, previous float64) bool {
	return math.Abs(current-previous) <= c.Tolerance
}

// Error reports a loop that ran out of iterations. Last is the final iterate,
// which is not a solution.
type Error struct {
	Loop       string
	Iterations int
	Last       float64
	Delta      float64
	Tolerance  float64
}

func (e *Error) Error() string {
	return fmt.Sprintf("convergence: %s did not converge after %d iterations (last %0.4f, delta %0.4g > %g)",
		e.Loop, e.Iterations, e.Last, e.Delta, e.Tolerance)
}

func (e *Error) Unwrap() error {
	return ErrNotConverged
}
