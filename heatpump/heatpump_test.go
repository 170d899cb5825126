package heatpump

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swhe_calc/fluid"
)

func newTestHeatPump(t *testing.T) *HeatPump {
	t.Helper()
	h, err := New(Config{COP: 3.0, Fluid: fluid.Spec{Name: "PG", Concentration: 20}})
	require.NoError(t, err)
	return h
}

func TestSimulate(t *testing.T) {
	h := newTestHeatPump(t)
	assert.Equal(t, 3.0, h.COP())

	tests := []struct {
		name string
		q    float64
		want float64
	}{
		{"heating", 1000, 9.66},
		{"cooling", -1000, 10.67},
		{"idle", 0, 10.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := h.Simulate(tt.q, 0.5, 10)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.01)
		})
	}
}

func TestHeatingAndCoolingBranches(t *testing.T) {
	h := newTestHeatPump(t)

	a, err := h.Simulate(1000, 0.5, 10)
	require.NoError(t, err)
	b, err := h.SimulateHeating(1000, 0.5, 10)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := h.Simulate(-1000, 0.5, 10)
	require.NoError(t, err)
	d, err := h.SimulateCooling(-1000, 0.5, 10)
	require.NoError(t, err)
	assert.Equal(t, c, d)

	// cooling rejects more than heating extracts for the same load
	assert.Greater(t, c-10, 10-a)
}

type constantCp float64

func (c constantCp) SpecificHeat(float64) (float64, error) { return float64(c), nil }

func TestSourceEnergy(t *testing.T) {
	h, err := NewWithProperties(4.0, constantCp(4000))
	require.NoError(t, err)

	got, err := h.Simulate(4000, 1.0, 10)
	require.NoError(t, err)
	assert.InDelta(t, 10-4000*0.75/4000, got, 1e-12)

	got, err = h.Simulate(-4000, 1.0, 10)
	require.NoError(t, err)
	assert.InDelta(t, 10+4000*1.25/4000, got, 1e-12)
}

func TestErrors(t *testing.T) {
	for _, cop := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := NewWithProperties(cop, constantCp(4000))
		assert.ErrorIs(t, err, ErrInvalidCOP, "cop %g", cop)
	}

	_, err := New(Config{COP: 3, Fluid: fluid.Spec{Name: "brine"}})
	assert.ErrorIs(t, err, fluid.ErrUnknownFluid)

	h := newTestHeatPump(t)
	got, err := h.Simulate(1000, 0, 10)
	assert.ErrorIs(t, err, ErrInvalidMassFlow)
	assert.True(t, math.IsNaN(got))

	_, err = h.Simulate(1000, 0.5, 150)
	assert.ErrorIs(t, err, fluid.ErrTemperatureRange)
}
