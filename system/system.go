// Package system couples the heat pump and the coil through a shared brine
// loop and solves for the steady approach temperature.
package system

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"

	"swhe_calc/convergence"
	"swhe_calc/fluid"
	"swhe_calc/heatpump"
	"swhe_calc/swhe"
)

// seed of the previous approach, K
const initialPreviousApproach = 5.0

// Config is a complete case definition. Fluid overrides the fluid of both
// components so the loop circulates a single brine.
type Config struct {
	HP    heatpump.Config `mapstructure:"hp" json:"hp"`
	SWHE  swhe.Config     `mapstructure:"swhe" json:"swhe"`
	Fluid fluid.Spec      `mapstructure:"fluid" json:"fluid"`
}

type System struct {
	hp        *heatpump.HeatPump
	swhe      *swhe.SWHE
	criterion convergence.Criterion
}

// Result is the converged state of the loop.
type Result struct {
	ZoneLoad   float64 // W
	MassFlow   float64 // kg/s
	WaterTemp  float64 // degree C
	Approach   float64 // SWHE outlet minus water, K
	HPOutlet   float64 // heat pump supply to the coil, degree C
	SWHEOutlet float64 // degree C
	Iterations int
	Exchanger  swhe.Result // last coil solve
}

/*
Build the loop.

	Args:
	    cfg: heat pump, coil and shared brine
	    settings: coil solver settings
	    criterion: outer loop convergence

	Returns:
	    system
*/
func New(cfg Config, settings swhe.Settings, criterion convergence.Criterion) (*System, error) {
	if err := criterion.Validate(); err != nil {
		return nil, fmt.Errorf("system: %w", err)
	}

	cfg.HP.Fluid = cfg.Fluid
	cfg.SWHE.Fluid = cfg.Fluid

	hp, err := heatpump.New(cfg.HP)
	if err != nil {
		return nil, err
	}
	sw, err := swhe.New(cfg.SWHE, settings)
	if err != nil {
		return nil, err
	}
	return &System{hp: hp, swhe: sw, criterion: criterion}, nil
}

// NewWithComponents wires already built components.
func NewWithComponents(hp *heatpump.HeatPump, sw *swhe.SWHE, criterion convergence.Criterion) (*System, error) {
	if hp == nil || sw == nil {
		return nil, fmt.Errorf("system: missing component")
	}
	if err := criterion.Validate(); err != nil {
		return nil, fmt.Errorf("system: %w", err)
	}
	return &System{hp: hp, swhe: sw, criterion: criterion}, nil
}

func (s *System) HeatPump() *heatpump.HeatPump { return s.hp }

func (s *System) SWHE() *swhe.SWHE { return s.swhe }

// WithPipeLength returns a copy of the system whose coil has the given
// pipe length.
func (s *System) WithPipeLength(length float64) (*System, error) {
	sw, err := s.swhe.WithPipeLength(length)
	if err != nil {
		return nil, err
	}
	c := *s
	c.swhe = sw
	return &c, nil
}

// Approach returns only the converged approach temperature, K.
func (s *System) Approach(zoneLoad, mDot, waterTemp float64) (float64, error) {
	r, err := s.Simulate(zoneLoad, mDot, waterTemp)
	if err != nil {
		return math.NaN(), err
	}
	return r.Approach, nil
}

/*
Solve the loop at steady state.

	Args:
	    zoneLoad: heat pump load, W; positive for heating
	    mDot: loop mass flow rate, kg/s
	    waterTemp: surface water temperature, degree C

	Returns:
	    converged loop state

	Notes:
	    The heat pump supply is computed from the current coil outlet and the
	    coil outlet from that supply, until the approach temperature settles.
*/
func (s *System) Simulate(zoneLoad, mDot, waterTemp float64) (Result, error) {
	r := Result{
		ZoneLoad:   zoneLoad,
		MassFlow:   mDot,
		WaterTemp:  waterTemp,
		SWHEOutlet: waterTemp,
	}
	prev := initialPreviousApproach

	for i := 1; i <= s.criterion.MaxIterations; i++ {
		if s.criterion.Converged(r.Approach, prev) {
			return r, nil
		}
		prev = r.Approach

		hpOut, err := s.hp.Simulate(zoneLoad, mDot, r.SWHEOutlet)
		if err != nil {
			return r, fmt.Errorf("system: iteration %d: %w", i, err)
		}
		ex, err := s.swhe.Simulate(mDot, hpOut, waterTemp)
		if err != nil {
			return r, fmt.Errorf("system: iteration %d: %w", i, err)
		}

		r.HPOutlet = hpOut
		r.SWHEOutlet = ex.OutletTemp
		r.Approach = ex.OutletTemp - waterTemp
		r.Exchanger = ex
		r.Iterations = i

		log.WithFields(log.Fields{
			"iteration": i,
			"hp_out":    hpOut,
			"swhe_out":  ex.OutletTemp,
			"approach":  r.Approach,
		}).Debug("system iteration")
	}
	if s.criterion.Converged(r.Approach, prev) {
		return r, nil
	}

	err := &convergence.Error{
		Loop:       "system",
		Iterations: r.Iterations,
		Last:       r.Approach,
		Delta:      math.Abs(r.Approach - prev),
		Tolerance:  s.criterion.Tolerance,
	}
	log.WithFields(log.Fields{
		"zone_load": zoneLoad,
		"m_dot":     mDot,
		"water":     waterTemp,
		"approach":  r.Approach,
	}).Warn(err.Error())
	return r, err
}
