package swhe

import (
	"fmt"
	"strings"

	"swhe_calc/convergence"
)

// WaterTemp selects the temperature the surface water properties are
// evaluated at.
type WaterTemp int

const (
	// WaterTempBrineMean evaluates the water at the mean brine temperature.
	WaterTempBrineMean WaterTemp = iota
	// WaterTempFilm evaluates the water at the mean of the outer surface and
	// the bulk water temperature.
	WaterTempFilm
)

func (w WaterTemp) String() string {
	switch w {
	case WaterTempBrineMean:
		return "brine-mean"
	case WaterTempFilm:
		return "film"
	}
	return fmt.Sprintf("WaterTemp(%d)", int(w))
}

func ParseWaterTemp(name string) (WaterTemp, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "brine-mean", "brine_mean", "mean":
		return WaterTempBrineMean, nil
	case "film":
		return WaterTempFilm, nil
	}
	return 0, fmt.Errorf("%w: unknown water property temperature %q", ErrInvalidConfig, name)
}

// Settings are the numerical knobs of the coil solver.
type Settings struct {
	Criterion convergence.Criterion

	ReynoldsLow       float64 // upper bound of the laminar regime, -
	ReynoldsHigh      float64 // lower bound of the turbulent regime, -
	LaminarNusselt    float64 // -
	TurbulentExponent float64 // Reynolds exponent of the turbulent correlation, -

	WaterTemperature WaterTemp
}

func DefaultSettings() Settings {
	return Settings{
		Criterion:         convergence.DefaultCriterion,
		ReynoldsLow:       500.0,
		ReynoldsHigh:      5000.0,
		LaminarNusselt:    4.0,
		TurbulentExponent: 0.85,
		WaterTemperature:  WaterTempBrineMean,
	}
}

func (s Settings) Validate() error {
	if err := s.Criterion.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if !(s.ReynoldsLow > 0) || !(s.ReynoldsHigh > s.ReynoldsLow) {
		return fmt.Errorf("%w: reynolds window [%g, %g]", ErrInvalidConfig, s.ReynoldsLow, s.ReynoldsHigh)
	}
	if !(s.LaminarNusselt > 0) {
		return fmt.Errorf("%w: laminar nusselt %g", ErrInvalidConfig, s.LaminarNusselt)
	}
	if !(s.TurbulentExponent > 0) {
		return fmt.Errorf("%w: turbulent exponent %g", ErrInvalidConfig, s.TurbulentExponent)
	}
	if s.WaterTemperature != WaterTempBrineMean && s.WaterTemperature != WaterTempFilm {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, s.WaterTemperature)
	}
	return nil
}
