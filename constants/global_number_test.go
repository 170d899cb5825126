package constants

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGamma(t *testing.T) {
	assert.InDelta(t, math.Exp(0.5772156649), Gamma, 1e-6)
}
