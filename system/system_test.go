package system

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swhe_calc/convergence"
	"swhe_calc/fluid"
	"swhe_calc/heatpump"
	"swhe_calc/pipe"
	"swhe_calc/swhe"
)

func testConfig() Config {
	return Config{
		HP: heatpump.Config{COP: 3.0},
		SWHE: swhe.Config{
			Pipe: pipe.Config{
				OuterDiameter: 0.02667,
				InnerDiameter: 0.0215392,
				Length:        100,
				Density:       950,
				Conductivity:  0.4,
			},
			CoilDiameter:      1.2,
			HorizontalSpacing: 0.05,
			VerticalSpacing:   0.05,
		},
		Fluid: fluid.Spec{Name: "PG", Concentration: 20},
	}
}

func newTestSystem(t *testing.T, criterion convergence.Criterion) *System {
	t.Helper()
	s, err := New(testConfig(), swhe.DefaultSettings(), criterion)
	require.NoError(t, err)
	return s
}

func TestSimulate(t *testing.T) {
	s := newTestSystem(t, convergence.DefaultCriterion)

	tests := []struct {
		name string
		load float64
		want float64
	}{
		{"cooling", -1000, 2.00},
		{"heating", 1000, -1.27},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := s.Simulate(tt.load, 0.5, 15)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, r.Approach, 0.01)
			assert.Equal(t, r.Exchanger.OutletTemp, r.SWHEOutlet)
			assert.Equal(t, r.Exchanger.InletTemp, r.HPOutlet)
			assert.InDelta(t, r.SWHEOutlet-15, r.Approach, 1e-12)
		})
	}
}

func TestZeroLoad(t *testing.T) {
	s := newTestSystem(t, convergence.DefaultCriterion)

	a, err := s.Approach(0, 0.5, 15)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, a, 1e-9)
}

func TestApproachGrowsWithLoad(t *testing.T) {
	s := newTestSystem(t, convergence.DefaultCriterion)

	small, err := s.Approach(-500, 0.5, 15)
	require.NoError(t, err)
	large, err := s.Approach(-2000, 0.5, 15)
	require.NoError(t, err)
	assert.Greater(t, large, small)
	assert.Greater(t, small, 0.0)
}

func TestWithPipeLength(t *testing.T) {
	s := newTestSystem(t, convergence.DefaultCriterion)

	longer, err := s.WithPipeLength(200)
	require.NoError(t, err)
	assert.Equal(t, 100.0, s.SWHE().Pipe().Length)

	a, err := s.Approach(-1000, 0.5, 15)
	require.NoError(t, err)
	b, err := longer.Approach(-1000, 0.5, 15)
	require.NoError(t, err)
	assert.Less(t, b, a)
}

func TestNotConverged(t *testing.T) {
	s := newTestSystem(t, convergence.Criterion{Tolerance: 0.01, MaxIterations: 2})

	r, err := s.Simulate(-1000, 0.5, 15)
	require.Error(t, err)
	assert.ErrorIs(t, err, convergence.ErrNotConverged)

	var cerr *convergence.Error
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "system", cerr.Loop)
	assert.Equal(t, 2, r.Iterations)
	assert.Equal(t, r.Approach, cerr.Last)
}

func TestErrors(t *testing.T) {
	cfg := testConfig()
	cfg.HP.COP = 0
	_, err := New(cfg, swhe.DefaultSettings(), convergence.DefaultCriterion)
	assert.ErrorIs(t, err, heatpump.ErrInvalidCOP)

	cfg = testConfig()
	cfg.Fluid.Concentration = 90
	_, err = New(cfg, swhe.DefaultSettings(), convergence.DefaultCriterion)
	assert.ErrorIs(t, err, fluid.ErrConcentrationRange)

	_, err = New(testConfig(), swhe.DefaultSettings(), convergence.Criterion{})
	assert.Error(t, err)

	s := newTestSystem(t, convergence.DefaultCriterion)
	_, err = s.Simulate(-1000, 0, 15)
	assert.ErrorIs(t, err, heatpump.ErrInvalidMassFlow)

	_, err = NewWithComponents(nil, s.SWHE(), convergence.DefaultCriterion)
	assert.Error(t, err)

	c, err := NewWithComponents(s.HeatPump(), s.SWHE(), convergence.DefaultCriterion)
	require.NoError(t, err)
	a, err := c.Approach(-1000, 0.5, 15)
	require.NoError(t, err)
	assert.InDelta(t, 2.00, a, 0.01)
}
