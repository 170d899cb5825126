package config

import (
	"fmt"

	"gopkg.in/ini.v1"

	"swhe_calc/convergence"
	"swhe_calc/swhe"
)

// Settings are the numerical settings of both loops.
type Settings struct {
	SWHE   swhe.Settings
	System convergence.Criterion
}

func DefaultSettings() Settings {
	return Settings{
		SWHE:   swhe.DefaultSettings(),
		System: convergence.DefaultCriterion,
	}
}

/*
Read solver settings from an INI file.

	Args:
	    path: INI file; an empty path yields the defaults

	Returns:
	    settings; keys missing from the file keep their defaults

	Notes:
	    [swhe]
	    tolerance, max-iterations, reynolds-low, reynolds-high,
	    laminar-nusselt, turbulent-exponent, water-property-temperature
	    [system]
	    tolerance, max-iterations
*/
func LoadSettings(path string) (Settings, error) {
	if path == "" {
		return DefaultSettings(), nil
	}
	file, err := ini.Load(path)
	if err != nil {
		return Settings{}, fmt.Errorf("config: failed to read settings %q: %w", path, err)
	}
	return loadSettings(file)
}

func loadSettings(file *ini.File) (Settings, error) {
	d := DefaultSettings()

	sw := file.Section("swhe")
	sys := file.Section("system")

	waterTemp, err := swhe.ParseWaterTemp(
		sw.Key("water-property-temperature").MustString(d.SWHE.WaterTemperature.String()))
	if err != nil {
		return Settings{}, err
	}

	s := Settings{
		SWHE: swhe.Settings{
			Criterion: convergence.Criterion{
				Tolerance:     sw.Key("tolerance").MustFloat64(d.SWHE.Criterion.Tolerance),
				MaxIterations: sw.Key("max-iterations").MustInt(d.SWHE.Criterion.MaxIterations),
			},
			ReynoldsLow:       sw.Key("reynolds-low").MustFloat64(d.SWHE.ReynoldsLow),
			ReynoldsHigh:      sw.Key("reynolds-high").MustFloat64(d.SWHE.ReynoldsHigh),
			LaminarNusselt:    sw.Key("laminar-nusselt").MustFloat64(d.SWHE.LaminarNusselt),
			TurbulentExponent: sw.Key("turbulent-exponent").MustFloat64(d.SWHE.TurbulentExponent),
			WaterTemperature:  waterTemp,
		},
		System: convergence.Criterion{
			Tolerance:     sys.Key("tolerance").MustFloat64(d.System.Tolerance),
			MaxIterations: sys.Key("max-iterations").MustInt(d.System.MaxIterations),
		},
	}

	if err := s.SWHE.Validate(); err != nil {
		return Settings{}, fmt.Errorf("config: [swhe]: %w", err)
	}
	if err := s.System.Validate(); err != nil {
		return Settings{}, fmt.Errorf("config: [system]: %w", err)
	}
	return s, nil
}
