// Package swhe models a surface water heat exchanger: a submerged coil that
// rejects heat to, or absorbs heat from, an open body of water.
package swhe

import (
	"errors"
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"

	"swhe_calc/convergence"
	"swhe_calc/fluid"
	"swhe_calc/pipe"
)

var (
	ErrInvalidConfig      = errors.New("swhe: invalid configuration")
	ErrInvalidMassFlow    = errors.New("swhe: mass flow rate must be positive")
	ErrNonPositiveUA      = errors.New("swhe: resistance network produced a non-positive UA")
	ErrNegativeResistance = errors.New("swhe: negative thermal resistance")
	ErrNonFinite          = errors.New("swhe: non-finite value in thermal network")
)

// initial coil duty guess, W
const initialCoilDuty = 1000.0

// PropertySource is the fluid property oracle consumed by the solver.
// *fluid.Fluid satisfies it.
type PropertySource interface {
	Properties(temperature float64) (fluid.Properties, error)
}

// Config is the SWHE part of a case definition.
type Config struct {
	Pipe              pipe.Config `mapstructure:"pipe" json:"pipe"`
	Fluid             fluid.Spec  `mapstructure:"fluid" json:"fluid"`
	CoilDiameter      float64     `mapstructure:"diameter" json:"diameter"`                     // m
	HorizontalSpacing float64     `mapstructure:"horizontal-spacing" json:"horizontal-spacing"` // m
	VerticalSpacing   float64     `mapstructure:"vertical-spacing" json:"vertical-spacing"`     // m
	InsideFouling     bool        `mapstructure:"inside-fouling" json:"inside-fouling"`
	OutsideFouling    bool        `mapstructure:"outside-fouling" json:"outside-fouling"`
}

// SWHE is a single-coil exchanger. The pipe and both fluids are immutable,
// so Simulate may be called concurrently and repeatedly without carrying
// state between calls.
type SWHE struct {
	pipe  pipe.Pipe
	brine PropertySource
	water PropertySource

	coilDia float64 // m
	dx      float64 // horizontal spacing, m
	dy      float64 // vertical spacing, m

	includeInsideFouling  bool
	includeOutsideFouling bool

	settings Settings
}

/*
Build an SWHE from a case definition. The brine is resolved from
cfg.Fluid and the surface water is plain water.

	Args:
	    cfg: pipe, brine and coil layout
	    settings: solver settings

	Returns:
	    SWHE ready to simulate
*/
func New(cfg Config, settings Settings) (*SWHE, error) {
	brine, err := fluid.New(cfg.Fluid)
	if err != nil {
		return nil, fmt.Errorf("swhe: brine: %w", err)
	}
	return NewWithProperties(cfg, brine, fluid.NewWater(), settings)
}

// NewWithProperties builds an SWHE around caller-supplied property sources.
// cfg.Fluid is ignored.
func NewWithProperties(cfg Config, brine, water PropertySource, settings Settings) (*SWHE, error) {
	p, err := pipe.New(cfg.Pipe)
	if err != nil {
		return nil, err
	}
	if brine == nil || water == nil {
		return nil, fmt.Errorf("%w: missing property source", ErrInvalidConfig)
	}
	for _, v := range []struct {
		name string
		val  float64
	}{
		{"coil diameter", cfg.CoilDiameter},
		{"horizontal spacing", cfg.HorizontalSpacing},
		{"vertical spacing", cfg.VerticalSpacing},
	} {
		if !(v.val > 0) || math.IsInf(v.val, 0) {
			return nil, fmt.Errorf("%w: %s must be positive, got %g", ErrInvalidConfig, v.name, v.val)
		}
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return &SWHE{
		pipe:                  p,
		brine:                 brine,
		water:                 water,
		coilDia:               cfg.CoilDiameter,
		dx:                    cfg.HorizontalSpacing,
		dy:                    cfg.VerticalSpacing,
		includeInsideFouling:  cfg.InsideFouling,
		includeOutsideFouling: cfg.OutsideFouling,
		settings:              settings,
	}, nil
}

func (s *SWHE) Pipe() pipe.Pipe { return s.pipe }

func (s *SWHE) Settings() Settings { return s.settings }

// WithPipeLength returns a copy of the exchanger with a pipe of the given
// length. The receiver is left untouched.
func (s *SWHE) WithPipeLength(length float64) (*SWHE, error) {
	p, err := s.pipe.WithLength(length)
	if err != nil {
		return nil, err
	}
	c := *s
	c.pipe = p
	return &c, nil
}

// Outlet returns only the converged outlet temperature, degree C.
func (s *SWHE) Outlet(mDot, inletTemp, waterTemp float64) (float64, error) {
	r, err := s.Simulate(mDot, inletTemp, waterTemp)
	if err != nil {
		return math.NaN(), err
	}
	return r.OutletTemp, nil
}

/*
Simulate the coil at steady state.

	Args:
	    mDot: brine mass flow rate, kg/s
	    inletTemp: brine inlet temperature, degree C
	    waterTemp: surface water temperature, degree C

	Returns:
	    converged state of the last iteration; OutletTemp is the result

	Notes:
	    The resistance network and the effectiveness-NTU balance are iterated
	    until successive outlet temperatures agree within the tolerance. On
	    non-convergence the last iterate is returned with a *convergence.Error.
*/
func (s *SWHE) Simulate(mDot, inletTemp, waterTemp float64) (Result, error) {
	if !(mDot > 0) || math.IsInf(mDot, 0) {
		return Result{}, fmt.Errorf("%w: got %g", ErrInvalidMassFlow, mDot)
	}
	if !isFinite(inletTemp) || !isFinite(waterTemp) {
		return Result{}, fmt.Errorf("%w: inlet %g, water %g", ErrNonFinite, inletTemp, waterTemp)
	}

	st := Result{
		MassFlow:      mDot,
		InletTemp:     inletTemp,
		WaterTemp:     waterTemp,
		MeanTemp:      inletTemp,
		SurfOuterTemp: inletTemp,
		OutletTemp:    inletTemp,
		CoilDuty:      -initialCoilDuty,
	}
	if inletTemp > waterTemp {
		st.CoilDuty = initialCoilDuty
	}

	crit := s.settings.Criterion
	var delta float64
	for i := 1; i <= crit.MaxIterations; i++ {
		prev := st.OutletTemp
		if err := s.step(&st); err != nil {
			return st, fmt.Errorf("swhe: iteration %d: %w", i, err)
		}
		st.Iterations = i
		delta = math.Abs(st.OutletTemp - prev)

		log.WithFields(log.Fields{
			"iteration": i,
			"outlet":    st.OutletTemp,
			"mean":      st.MeanTemp,
			"q_coil":    st.CoilDuty,
			"ua":        st.UA,
		}).Debug("swhe iteration")

		if crit.Converged(st.OutletTemp, prev) {
			return st, nil
		}
	}

	err := &convergence.Error{
		Loop:       "swhe",
		Iterations: crit.MaxIterations,
		Last:       st.OutletTemp,
		Delta:      delta,
		Tolerance:  crit.Tolerance,
	}
	log.WithFields(log.Fields{
		"m_dot":  mDot,
		"inlet":  inletTemp,
		"water":  waterTemp,
		"outlet": st.OutletTemp,
	}).Warn(err.Error())
	return st, err
}

// step performs one pass over the resistance network and the energy
// balance, updating st in place.
func (s *SWHE) step(st *Result) error {
	brine, err := s.brine.Properties(st.MeanTemp)
	if err != nil {
		return fmt.Errorf("brine properties: %w", err)
	}
	water, err := s.water.Properties(s.waterPropertyTemp(st))
	if err != nil {
		return fmt.Errorf("water properties: %w", err)
	}
	st.Brine = brine
	st.Water = water

	st.Inside = s.insideConvection(st.MassFlow, brine)
	st.Outside = s.outsideConvection(st.CoilDuty, water, st.MeanTemp, st.WaterTemp)

	r := Resistances{
		InsideFouling:     s.InsideFoulingResistance(),
		OutsideFouling:    s.OutsideFoulingResistance(),
		InsideConvection:  st.Inside.Resistance,
		OutsideConvection: st.Outside.Resistance,
		Conduction:        s.pipe.ResistCond,
	}
	r.Total = r.InsideFouling + r.OutsideFouling + r.InsideConvection + r.OutsideConvection + r.Conduction
	st.Resistances = r

	if !isFinite(r.Total) {
		return fmt.Errorf("%w: total resistance = %g", ErrNonFinite, r.Total)
	}
	if r.Total <= 0 {
		return fmt.Errorf("%w: total resistance = %g K/W", ErrNonPositiveUA, r.Total)
	}
	if err := r.check(); err != nil {
		return err
	}

	ua := 1 / r.Total
	if !isFinite(ua) {
		return fmt.Errorf("%w: UA = %g", ErrNonFinite, ua)
	}
	st.UA = ua

	// effectiveness-NTU
	mcp := st.MassFlow * brine.SpecificHeat
	st.NTU = ua / mcp
	st.Effectiveness = 1 - math.Exp(-st.NTU)
	st.QMax = mcp * (st.InletTemp - st.WaterTemp)
	st.CoilDuty = st.Effectiveness * st.QMax

	// mean brine temperature along the coil
	st.MeanTemp = st.WaterTemp + mcp*st.InletTemp*(1-math.Exp(-st.NTU))/ua +
		mcp*st.WaterTemp*(-1+math.Exp(-st.NTU))/ua

	st.SurfInnerTemp = st.MeanTemp - st.CoilDuty*(r.InsideConvection+r.InsideFouling)
	st.SurfOuterTemp = st.SurfInnerTemp - st.CoilDuty*(r.Conduction+r.OutsideFouling)

	st.OutletTemp = st.InletTemp - st.CoilDuty/mcp
	st.ApproachTemp = st.OutletTemp - st.WaterTemp

	for _, v := range []float64{st.CoilDuty, st.MeanTemp, st.SurfOuterTemp, st.OutletTemp} {
		if !isFinite(v) {
			return ErrNonFinite
		}
	}
	return nil
}

func (s *SWHE) waterPropertyTemp(st *Result) float64 {
	if s.settings.WaterTemperature == WaterTempFilm {
		return (st.SurfOuterTemp + st.WaterTemp) / 2.0
	}
	return st.MeanTemp
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
