// Package fluid evaluates thermophysical properties of the circulating brine
// and of the surrounding surface water as functions of temperature.
package fluid

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrUnknownFluid       = errors.New("fluid: unknown fluid")
	ErrConcentrationRange = errors.New("fluid: concentration out of range")
	ErrTemperatureRange   = errors.New("fluid: temperature out of range")
)

// Kind identifies a supported heat-transfer fluid.
type Kind int

const (
	Water Kind = iota
	PropyleneGlycol
	EthyleneGlycol
	EthylAlcohol
)

func (k Kind) String() string {
	switch k {
	case Water:
		return "WATER"
	case PropyleneGlycol:
		return "PG"
	case EthyleneGlycol:
		return "EG"
	case EthylAlcohol:
		return "EA"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

/*
Resolve a fluid name.

	Args:
	    name: "WATER", "PG" (propylene glycol), "EG" (ethylene glycol) or
	          "EA" (ethyl alcohol); the long names are accepted as well

	Returns:
	    fluid kind
*/
func ParseKind(name string) (Kind, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "WATER":
		return Water, nil
	case "PG", "PROPYLENE-GLYCOL", "PROPYLENE_GLYCOL":
		return PropyleneGlycol, nil
	case "EG", "ETHYLENE-GLYCOL", "ETHYLENE_GLYCOL":
		return EthyleneGlycol, nil
	case "EA", "ETHYL-ALCOHOL", "ETHYL_ALCOHOL":
		return EthylAlcohol, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFluid, name)
}

// Spec is the fluid part of a case definition.
type Spec struct {
	Name          string  `mapstructure:"fluid-name" json:"fluid-name"`
	Concentration float64 `mapstructure:"concentration" json:"concentration"` // %, ignored for water
}

// Properties is the set of properties at one temperature.
type Properties struct {
	Density            float64 // kg/m3
	SpecificHeat       float64 // J/kg K
	Viscosity          float64 // dynamic, Pa s
	Conductivity       float64 // W/m K
	Beta               float64 // coefficient of volume expansion, 1/K
	Prandtl            float64 // -
	KinematicViscosity float64 // m2/s
	Diffusivity        float64 // thermal diffusivity, m2/s
}

// Fluid is a resolved (kind, concentration) pair. It holds no mutable state
// and may be shared between goroutines.
type Fluid struct {
	kind          Kind
	concentration float64

	lo, hi *curve
	frac   float64 // weight of hi between the bracketing curves
}

/*
Initialize a fluid from its specification.

	Args:
	    spec: fluid name and concentration, %

	Returns:
	    fluid handle
*/
func New(spec Spec) (*Fluid, error) {
	kind, err := ParseKind(spec.Name)
	if err != nil {
		return nil, err
	}
	if kind == Water {
		return NewWater(), nil
	}

	t := tables[kind]
	c := spec.Concentration
	if math.IsNaN(c) || c < t.minConcentration() || c > t.maxConcentration() {
		return nil, fmt.Errorf("%w: %s at %g%% (supported %g-%g%%)",
			ErrConcentrationRange, kind, c, t.minConcentration(), t.maxConcentration())
	}

	lo, hi, frac := t.bracket(c)
	return &Fluid{kind: kind, concentration: c, lo: lo, hi: hi, frac: frac}, nil
}

// NewWater returns plain water.
func NewWater() *Fluid {
	c := tables[Water].curves[0]
	return &Fluid{kind: Water, lo: c, hi: c}
}

func (f *Fluid) Kind() Kind { return f.kind }

func (f *Fluid) Concentration() float64 { return f.concentration }

func (f *Fluid) String() string {
	if f.kind == Water {
		return f.kind.String()
	}
	return fmt.Sprintf("%s[%0.3f]", f.kind, f.concentration/100.0)
}

// TemperatureRange returns the span of temperatures the fluid can be
// evaluated at, degree C.
func (f *Fluid) TemperatureRange() (float64, float64) {
	return math.Max(f.lo.tMin, f.hi.tMin), math.Min(f.lo.tMax, f.hi.tMax)
}

/*
Evaluate all properties at a temperature.

	Args:
	    temperature: temperature, degree C

	Returns:
	    properties at the given temperature
*/
func (f *Fluid) Properties(temperature float64) (Properties, error) {
	tMin, tMax := f.TemperatureRange()
	if math.IsNaN(temperature) || temperature < tMin || temperature > tMax {
		return Properties{}, fmt.Errorf("%w: %s at %0.3f C (valid %g to %g C)",
			ErrTemperatureRange, f, temperature, tMin, tMax)
	}

	a := f.lo.at(temperature)
	b := f.hi.at(temperature)
	mix := func(x, y float64) float64 { return x + f.frac*(y-x) }

	p := Properties{
		Density:      mix(a.Density, b.Density),
		SpecificHeat: mix(a.SpecificHeat, b.SpecificHeat),
		Viscosity:    mix(a.Viscosity, b.Viscosity),
		Conductivity: mix(a.Conductivity, b.Conductivity),
		Beta:         mix(a.Beta, b.Beta),
	}
	p.Prandtl = p.Viscosity * p.SpecificHeat / p.Conductivity
	p.KinematicViscosity = p.Viscosity / p.Density
	p.Diffusivity = p.Conductivity / (p.Density * p.SpecificHeat)
	return p, nil
}

// Density, kg/m3
func (f *Fluid) Density(temperature float64) (float64, error) {
	p, err := f.Properties(temperature)
	return p.Density, err
}

// SpecificHeat, J/kg K
func (f *Fluid) SpecificHeat(temperature float64) (float64, error) {
	p, err := f.Properties(temperature)
	return p.SpecificHeat, err
}

// Viscosity is the dynamic viscosity, Pa s
func (f *Fluid) Viscosity(temperature float64) (float64, error) {
	p, err := f.Properties(temperature)
	return p.Viscosity, err
}

// ViscosityKinematic, m2/s
func (f *Fluid) ViscosityKinematic(temperature float64) (float64, error) {
	p, err := f.Properties(temperature)
	return p.KinematicViscosity, err
}

// Conductivity, W/m K
func (f *Fluid) Conductivity(temperature float64) (float64, error) {
	p, err := f.Properties(temperature)
	return p.Conductivity, err
}

// Prandtl number, -
func (f *Fluid) Prandtl(temperature float64) (float64, error) {
	p, err := f.Properties(temperature)
	return p.Prandtl, err
}

// Beta is the coefficient of volume expansion, 1/K
func (f *Fluid) Beta(temperature float64) (float64, error) {
	p, err := f.Properties(temperature)
	return p.Beta, err
}

// Alpha is the thermal diffusivity, m2/s
func (f *Fluid) Alpha(temperature float64) (float64, error) {
	p, err := f.Properties(temperature)
	return p.Diffusivity, err
}
