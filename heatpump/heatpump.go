// Package heatpump models a water-source heat pump with a constant COP.
package heatpump

import (
	"errors"
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"

	"swhe_calc/fluid"
)

var (
	ErrInvalidCOP      = errors.New("heatpump: COP must be positive and finite")
	ErrInvalidMassFlow = errors.New("heatpump: mass flow rate must be positive")
)

// DefaultCOP is used when a case leaves the COP unset.
const DefaultCOP = 3.0

// PropertySource supplies the brine specific heat. *fluid.Fluid satisfies it.
type PropertySource interface {
	SpecificHeat(temperature float64) (float64, error)
}

// Config is the heat pump part of a case definition.
type Config struct {
	COP   float64    `mapstructure:"cop" json:"cop"`
	Fluid fluid.Spec `mapstructure:"fluid" json:"fluid"`
}

type HeatPump struct {
	cop   float64
	brine PropertySource
}

/*
Initialize a heat pump.

	Args:
	    cfg: COP and source-side brine

	Returns:
	    heat pump
*/
func New(cfg Config) (*HeatPump, error) {
	brine, err := fluid.New(cfg.Fluid)
	if err != nil {
		return nil, fmt.Errorf("heatpump: brine: %w", err)
	}
	return NewWithProperties(cfg.COP, brine)
}

func NewWithProperties(cop float64, brine PropertySource) (*HeatPump, error) {
	if !(cop > 0) || math.IsInf(cop, 0) {
		return nil, fmt.Errorf("%w: got %g", ErrInvalidCOP, cop)
	}
	if brine == nil {
		return nil, errors.New("heatpump: missing property source")
	}
	return &HeatPump{cop: cop, brine: brine}, nil
}

func (h *HeatPump) COP() float64 { return h.cop }

/*
Source-side supply temperature for a zone load.

	Args:
	    q: zone load, W; positive for heating, otherwise cooling
	    mDot: source-side mass flow rate, kg/s
	    inletTemp: source-side entering temperature, degree C

	Returns:
	    source-side leaving temperature, degree C
*/
func (h *HeatPump) Simulate(q, mDot, inletTemp float64) (float64, error) {
	if q > 0 {
		return h.SimulateHeating(q, mDot, inletTemp)
	}
	return h.SimulateCooling(q, mDot, inletTemp)
}

// SimulateHeating draws q (1 - 1/COP) from the source loop.
func (h *HeatPump) SimulateHeating(q, mDot, inletTemp float64) (float64, error) {
	return h.supply(q*(1-1/h.cop), mDot, inletTemp)
}

// SimulateCooling rejects q (1 + 1/COP) to the source loop; q is negative.
func (h *HeatPump) SimulateCooling(q, mDot, inletTemp float64) (float64, error) {
	return h.supply(q*(1+1/h.cop), mDot, inletTemp)
}

func (h *HeatPump) supply(qSource, mDot, inletTemp float64) (float64, error) {
	if !(mDot > 0) || math.IsInf(mDot, 0) {
		return math.NaN(), fmt.Errorf("%w: got %g", ErrInvalidMassFlow, mDot)
	}
	cp, err := h.brine.SpecificHeat(inletTemp)
	if err != nil {
		return math.NaN(), fmt.Errorf("heatpump: %w", err)
	}
	t := inletTemp - qSource/(mDot*cp)

	log.WithFields(log.Fields{
		"q_source": qSource,
		"inlet":    inletTemp,
		"supply":   t,
	}).Debug("heat pump")
	return t, nil
}
