// Package config loads case definitions and solver settings.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"swhe_calc/convergence"
	"swhe_calc/heatpump"
	"swhe_calc/swhe"
	"swhe_calc/system"
)

// envPrefix is the prefix of environment overrides, e.g. SWHE_HP_COP.
const envPrefix = "SWHE"

// Case is a full loop definition as read from a JSON or YAML file:
//
//	{
//	  "hp":    {"cop": 3.0},
//	  "swhe":  {"pipe": {...}, "diameter": 1.2, "horizontal-spacing": 0.05, ...},
//	  "fluid": {"fluid-name": "PG", "concentration": 20}
//	}
type Case struct {
	system.Config `mapstructure:",squash"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	v.SetDefault("hp.cop", heatpump.DefaultCOP)
	v.SetDefault("swhe.inside-fouling", false)
	v.SetDefault("swhe.outside-fouling", false)
	v.SetDefault("fluid.fluid-name", "WATER")
	v.SetDefault("fluid.concentration", 0.0)
	return v
}

// LoadCase reads the case file at path. The format follows the extension
// (.json, .yaml, .yml, .toml).
func LoadCase(path string) (*Case, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read case file %q: %w", path, err)
	}
	return unmarshalCase(v)
}

func unmarshalCase(v *viper.Viper) (*Case, error) {
	c := &Case{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal case: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return c, nil
}

// Validate builds every component once so configuration errors surface
// before any solve.
func (c *Case) Validate() error {
	_, err := system.New(c.Config, swhe.DefaultSettings(), convergence.DefaultCriterion)
	return err
}
