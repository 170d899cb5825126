package pipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		OuterDiameter: 0.02667,
		InnerDiameter: 0.0215392,
		Length:        100,
		Density:       950,
		Conductivity:  0.4,
	}
}

func TestNew(t *testing.T) {
	p, err := New(testConfig())
	require.NoError(t, err)

	assert.InDelta(t, 3.643e-4, p.AreaCrossInner, 1e-4)
	assert.InDelta(t, 5.5586e-4, p.AreaCrossOuter, 1e-4)
	assert.InDelta(t, 6.76, p.AreaSurfInner, 1e-2)
	assert.InDelta(t, 8.37, p.AreaSurfOuter, 1e-2)
	assert.InDelta(t, 8.5014e-4, p.ResistCond, 1e-4)
	assert.InDelta(t, 0.0025654, p.Thickness, 1e-7)
}

func TestBadInit(t *testing.T) {
	_, err := New(Config{OuterDiameter: 1, InnerDiameter: 2, Length: 1, Conductivity: 1})
	assert.ErrorIs(t, err, ErrNegativeThickness)

	_, err = New(Config{OuterDiameter: 1, InnerDiameter: 1, Length: 1, Conductivity: 1})
	assert.ErrorIs(t, err, ErrNegativeThickness)

	cfg := testConfig()
	cfg.Length = 0
	_, err = New(cfg)
	assert.ErrorIs(t, err, ErrInvalidGeometry)

	cfg = testConfig()
	cfg.Conductivity = -0.4
	_, err = New(cfg)
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}

func TestWithLength(t *testing.T) {
	p, err := New(testConfig())
	require.NoError(t, err)

	q, err := p.WithLength(200)
	require.NoError(t, err)

	assert.Equal(t, 100.0, p.Length, "receiver is unchanged")
	assert.Equal(t, 200.0, q.Length)
	assert.InDelta(t, 2*p.AreaSurfInner, q.AreaSurfInner, 1e-12)
	assert.InDelta(t, 2*p.AreaSurfOuter, q.AreaSurfOuter, 1e-12)
	assert.InDelta(t, p.ResistCond/2, q.ResistCond, 1e-15)
	assert.Equal(t, p.AreaCrossInner, q.AreaCrossInner)

	_, err = p.WithLength(-1)
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}

func TestConductionResistanceGrowsWithThinnerBore(t *testing.T) {
	prev := 0.0
	for _, di := range []float64{0.026, 0.024, 0.022, 0.020, 0.015, 0.010} {
		cfg := testConfig()
		cfg.InnerDiameter = di
		p, err := New(cfg)
		require.NoError(t, err)
		assert.Greater(t, p.ResistCond, 0.0)
		assert.Greater(t, p.ResistCond, prev, "inner dia %g", di)
		prev = p.ResistCond
	}
}
