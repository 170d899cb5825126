// Package pipe computes the derived geometry of the coil tube.
package pipe

import (
	"errors"
	"fmt"
	"math"

	"swhe_calc/constants"
)

var (
	ErrNegativeThickness = errors.New("pipe: inner and outer pipe diameters result in non-positive pipe thickness")
	ErrInvalidGeometry   = errors.New("pipe: invalid geometry")
)

// Config is the pipe part of a case definition.
type Config struct {
	OuterDiameter float64 `mapstructure:"outer-dia" json:"outer-dia"`       // m
	InnerDiameter float64 `mapstructure:"inner-dia" json:"inner-dia"`       // m
	Length        float64 `mapstructure:"length" json:"length"`             // m
	Density       float64 `mapstructure:"density" json:"density"`           // wall, kg/m3
	Conductivity  float64 `mapstructure:"conductivity" json:"conductivity"` // wall, W/m K
}

// Pipe is an immutable geometry value. Every derived field is computed
// together by New, so a Pipe is never partially updated.
type Pipe struct {
	OuterDiameter float64 // m
	InnerDiameter float64 // m
	Thickness     float64 // m
	Length        float64 // m
	Density       float64 // kg/m3
	Conductivity  float64 // W/m K

	AreaCrossInner float64 // inner cross-sectional area, m2
	AreaCrossOuter float64 // outer cross-sectional area, m2
	AreaSurfInner  float64 // inner surface area, m2
	AreaSurfOuter  float64 // outer surface area, m2
	ResistCond     float64 // conduction resistance, K/W
}

/*
Build a pipe and its derived geometry.

	Args:
	    cfg: diameters, length and wall material

	Returns:
	    pipe geometry

	Notes:
	    outer diameter must exceed inner diameter
*/
func New(cfg Config) (Pipe, error) {
	for _, v := range []struct {
		name string
		val  float64
	}{
		{"outer diameter", cfg.OuterDiameter},
		{"inner diameter", cfg.InnerDiameter},
		{"length", cfg.Length},
		{"conductivity", cfg.Conductivity},
	} {
		if !(v.val > 0) || math.IsInf(v.val, 0) {
			return Pipe{}, fmt.Errorf("%w: %s must be positive, got %g", ErrInvalidGeometry, v.name, v.val)
		}
	}

	thickness := (cfg.OuterDiameter - cfg.InnerDiameter) / 2.0
	if thickness <= 0.0 {
		return Pipe{}, fmt.Errorf("%w: outer dia: %0.4f; inner dia: %0.4f",
			ErrNegativeThickness, cfg.OuterDiameter, cfg.InnerDiameter)
	}

	p := Pipe{
		OuterDiameter: cfg.OuterDiameter,
		InnerDiameter: cfg.InnerDiameter,
		Thickness:     thickness,
		Length:        cfg.Length,
		Density:       cfg.Density,
		Conductivity:  cfg.Conductivity,
	}
	p.AreaCrossInner = CrossSectionalArea(p.InnerDiameter)
	p.AreaCrossOuter = CrossSectionalArea(p.OuterDiameter)
	p.AreaSurfInner = SurfaceArea(p.InnerDiameter, p.Length)
	p.AreaSurfOuter = SurfaceArea(p.OuterDiameter, p.Length)
	p.ResistCond = ConductionResistance(p.OuterDiameter, p.InnerDiameter, p.Conductivity, p.Length)
	return p, nil
}

// Config returns the inputs the pipe was built from.
func (p Pipe) Config() Config {
	return Config{
		OuterDiameter: p.OuterDiameter,
		InnerDiameter: p.InnerDiameter,
		Length:        p.Length,
		Density:       p.Density,
		Conductivity:  p.Conductivity,
	}
}

// WithLength returns a copy of the pipe with a new length and all derived
// fields recomputed.
func (p Pipe) WithLength(length float64) (Pipe, error) {
	cfg := p.Config()
	cfg.Length = length
	return New(cfg)
}

// CrossSectionalArea of a circle of diameter d, m2
func CrossSectionalArea(d float64) float64 {
	return (constants.Pi / 4.0) * d * d
}

// SurfaceArea of a tube of diameter d and length l, m2
func SurfaceArea(d, l float64) float64 {
	return constants.Pi * d * l
}

/*
Calculate pipe conduction thermal resistance.

	Args:
	    dOuter: outer diameter, m
	    dInner: inner diameter, m
	    k: wall conductivity, W/m K
	    l: length, m

	Returns:
	    resistance, K/W
*/
func ConductionResistance(dOuter, dInner, k, l float64) float64 {
	return math.Log(dOuter/dInner) / (2 * constants.Pi * k * l)
}
