package convergence

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConverged(t *testing.T) {
	c := DefaultCriterion
	assert.True(t, c.Converged(10.005, 10.0))
	assert.True(t, c.Converged(10.0, 10.005))
	assert.False(t, c.Converged(10.02, 10.0))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, DefaultCriterion.Validate())
	assert.Error(t, Criterion{Tolerance: 0, MaxIterations: 10}.Validate())
	assert.Error(t, Criterion{Tolerance: 0.01, MaxIterations: 0}.Validate())
}

func TestError(t *testing.T) {
	var err error = &Error{Loop: "swhe", Iterations: 100, Last: 12.5, Delta: 0.3, Tolerance: 0.01}
	assert.ErrorIs(t, err, ErrNotConverged)
	assert.Contains(t, err.Error(), "swhe did not converge after 100 iterations")

	var ce *Error
	assert.True(t, errors.As(err, &ce))
	assert.Equal(t, 12.5, ce.Last)
}
