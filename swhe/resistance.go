package swhe

import (
	"fmt"
	"math"

	"swhe_calc/constants"
	"swhe_calc/fluid"
	"swhe_calc/smoothing"
)

// fouling factors, m2 K/W
const (
	insideFoulingFactor  = 0.000175
	outsideFoulingFactor = 0.00053
)

// Coefficients of the outside Nusselt correlation
// Nu = A + B Ra*^C (dy/do)^D (dx/do)^E
type Coefficients struct {
	A, B, C, D, E float64
}

var (
	// coil warmer than the water
	HeatingWater = Coefficients{A: 5.0, B: 0.0317, C: 0.333, D: 0.344, E: 0.301}
	// coil colder than the water
	CoolingWater = Coefficients{A: 5.75, B: 0.00971, C: 0.333, D: 0.929, E: 0.0}
)

// InsideConvection is the in-tube convection breakdown.
type InsideConvection struct {
	VolumeFlow float64 // m3/s
	Velocity   float64 // m/s
	Reynolds   float64 // -
	Nusselt    float64 // -
	H          float64 // W/m2 K
	Resistance float64 // K/W
}

// OutsideConvection is the free convection breakdown on the coil exterior.
type OutsideConvection struct {
	HeatFlux   float64 // W/m2
	Rayleigh   float64 // flux-based, -
	Nusselt    float64 // -
	H          float64 // W/m2 K
	Resistance float64 // K/W
	Heating    bool    // true when the heating-water coefficients applied
}

// Resistances is the series network between brine and water, K/W.
type Resistances struct {
	InsideFouling     float64
	OutsideFouling    float64
	InsideConvection  float64
	OutsideConvection float64
	Conduction        float64
	Total             float64
}

// check rejects any term that is negative or not finite.
func (r Resistances) check() error {
	for _, v := range []struct {
		name string
		val  float64
	}{
		{"inside fouling", r.InsideFouling},
		{"outside fouling", r.OutsideFouling},
		{"inside convection", r.InsideConvection},
		{"outside convection", r.OutsideConvection},
		{"conduction", r.Conduction},
	} {
		if !isFinite(v.val) {
			return fmt.Errorf("%w: %s resistance = %g", ErrNonFinite, v.name, v.val)
		}
		if v.val < 0 {
			return fmt.Errorf("%w: %s resistance = %g K/W", ErrNegativeResistance, v.name, v.val)
		}
	}
	return nil
}

/*
Inside convection resistance of the brine.

	Args:
	    mDot: mass flow rate, kg/s
	    temperature: brine temperature, degree C

	Returns:
	    convection breakdown; Resistance in K/W
*/
func (s *SWHE) InsideConvection(mDot, temperature float64) (InsideConvection, error) {
	p, err := s.brine.Properties(temperature)
	if err != nil {
		return InsideConvection{}, err
	}
	return s.insideConvection(mDot, p), nil
}

func (s *SWHE) insideConvection(mDot float64, p fluid.Properties) InsideConvection {
	di := s.pipe.InnerDiameter
	set := s.settings

	c := InsideConvection{}
	c.VolumeFlow = mDot / p.Density
	c.Velocity = c.VolumeFlow / s.pipe.AreaCrossInner
	c.Reynolds = c.Velocity * di * p.Density / p.Viscosity

	lam := set.LaminarNusselt
	turb := 0.023 * math.Pow(c.Reynolds, set.TurbulentExponent) * math.Pow(p.Prandtl, 0.4) *
		math.Pow(di/s.coilDia, 0.1)
	c.Nusselt = smoothing.Smooth(c.Reynolds, set.ReynoldsLow, set.ReynoldsHigh, lam, turb)

	c.H = c.Nusselt * p.Conductivity / di
	c.Resistance = 1 / (c.H * s.pipe.AreaSurfInner)
	return c
}

/*
Outside free convection resistance of the surface water.

	Args:
	    qCoil: coil heat transfer rate, W, positive into the water
	    temperature: mean brine temperature, degree C
	    waterTemp: surface water temperature, degree C

	Returns:
	    convection breakdown; Resistance in K/W

	Notes:
	    The water is evaluated at temperature whatever Settings.WaterTemperature
	    selects; Simulate applies that setting itself.
*/
func (s *SWHE) OutsideConvection(qCoil, temperature, waterTemp float64) (OutsideConvection, error) {
	p, err := s.water.Properties(temperature)
	if err != nil {
		return OutsideConvection{}, err
	}
	return s.outsideConvection(qCoil, p, temperature, waterTemp), nil
}

func (s *SWHE) outsideConvection(qCoil float64, p fluid.Properties, temperature, waterTemp float64) OutsideConvection {
	do := s.pipe.OuterDiameter

	c := OutsideConvection{Heating: temperature > waterTemp}
	co := CoolingWater
	if c.Heating {
		co = HeatingWater
	}

	c.HeatFlux = qCoil / s.pipe.AreaSurfOuter
	c.Rayleigh = constants.Gravity * math.Abs(p.Beta*c.HeatFlux) * math.Pow(do, 4) /
		(p.Conductivity * p.KinematicViscosity * p.Diffusivity)

	c.Nusselt = co.A + co.B*math.Pow(c.Rayleigh, co.C)*math.Pow(s.dy/do, co.D)*math.Pow(s.dx/do, co.E)
	c.H = c.Nusselt * p.Conductivity / do
	c.Resistance = 1 / (c.H * p.Conductivity * s.pipe.AreaSurfOuter)
	return c
}

// InsideFoulingResistance is 0 unless inside fouling is enabled, K/W
func (s *SWHE) InsideFoulingResistance() float64 {
	if !s.includeInsideFouling {
		return 0
	}
	return insideFoulingFactor / s.pipe.AreaSurfInner
}

// OutsideFoulingResistance is 0 unless outside fouling is enabled, K/W
func (s *SWHE) OutsideFoulingResistance() float64 {
	if !s.includeOutsideFouling {
		return 0
	}
	return outsideFoulingFactor / s.pipe.AreaSurfOuter
}
