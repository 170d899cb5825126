package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/ini.v1"

	"swhe_calc/fluid"
	"swhe_calc/pipe"
	"swhe_calc/swhe"
)

const caseJSON = `{
  "hp": {"cop": 3.0},
  "swhe": {
    "pipe": {
      "outer-dia": 0.02667,
      "inner-dia": 0.0215392,
      "length": 100,
      "density": 950,
      "conductivity": 0.4
    },
    "diameter": 1.2,
    "horizontal-spacing": 0.05,
    "vertical-spacing": 0.05
  },
  "fluid": {"fluid-name": "PG", "concentration": 20}
}`

const caseYAML = `
swhe:
  pipe:
    outer-dia: 0.02667
    inner-dia: 0.0215392
    length: 150
    density: 950
    conductivity: 0.4
  diameter: 1.2
  horizontal-spacing: 0.05
  vertical-spacing: 0.05
  outside-fouling: true
fluid:
  fluid-name: EG
  concentration: 30
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadCaseJSON(t *testing.T) {
	c, err := LoadCase(writeFile(t, "case.json", caseJSON))
	require.NoError(t, err)

	assert.Equal(t, 3.0, c.HP.COP)
	assert.Equal(t, 0.02667, c.SWHE.Pipe.OuterDiameter)
	assert.Equal(t, 0.0215392, c.SWHE.Pipe.InnerDiameter)
	assert.Equal(t, 100.0, c.SWHE.Pipe.Length)
	assert.Equal(t, 1.2, c.SWHE.CoilDiameter)
	assert.Equal(t, 0.05, c.SWHE.HorizontalSpacing)
	assert.False(t, c.SWHE.InsideFouling)
	assert.Equal(t, fluid.Spec{Name: "PG", Concentration: 20}, c.Fluid)
}

func TestLoadCaseYAMLDefaults(t *testing.T) {
	c, err := LoadCase(writeFile(t, "case.yaml", caseYAML))
	require.NoError(t, err)

	assert.Equal(t, 3.0, c.HP.COP)
	assert.Equal(t, 150.0, c.SWHE.Pipe.Length)
	assert.True(t, c.SWHE.OutsideFouling)
	assert.False(t, c.SWHE.InsideFouling)
	assert.Equal(t, "EG", c.Fluid.Name)
}

func TestLoadCaseEnvOverride(t *testing.T) {
	t.Setenv("SWHE_HP_COP", "4.5")

	c, err := LoadCase(writeFile(t, "case.json", caseJSON))
	require.NoError(t, err)
	assert.Equal(t, 4.5, c.HP.COP)
}

func TestLoadCaseErrors(t *testing.T) {
	_, err := LoadCase(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := writeFile(t, "case.yaml", `
swhe:
  pipe:
    outer-dia: 0.02
    inner-dia: 0.03
    length: 100
    conductivity: 0.4
  diameter: 1.2
  horizontal-spacing: 0.05
  vertical-spacing: 0.05
`)
	_, err = LoadCase(bad)
	assert.ErrorIs(t, err, pipe.ErrNegativeThickness)

	c, err := LoadCase(writeFile(t, "case.yaml", caseYAML))
	require.NoError(t, err)
	c.Fluid.Name = "glycerol"
	assert.ErrorIs(t, c.Validate(), fluid.ErrUnknownFluid)
}

func TestLoadSettingsDefaults(t *testing.T) {
	s, err := LoadSettings("")
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)

	file, err := ini.Load([]byte(""))
	require.NoError(t, err)
	s, err = loadSettings(file)
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestLoadSettings(t *testing.T) {
	path := writeFile(t, "solver.ini", `
[swhe]
tolerance = 0.001
max-iterations = 50
turbulent-exponent = 0.8
water-property-temperature = film

[system]
max-iterations = 20
`)
	s, err := LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, 0.001, s.SWHE.Criterion.Tolerance)
	assert.Equal(t, 50, s.SWHE.Criterion.MaxIterations)
	assert.Equal(t, 0.8, s.SWHE.TurbulentExponent)
	assert.Equal(t, 500.0, s.SWHE.ReynoldsLow)
	assert.Equal(t, swhe.WaterTempFilm, s.SWHE.WaterTemperature)
	assert.Equal(t, 0.01, s.System.Tolerance)
	assert.Equal(t, 20, s.System.MaxIterations)
}

func TestLoadSettingsErrors(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), "missing.ini"))
	assert.Error(t, err)

	file, err := ini.Load([]byte("[swhe]\nwater-property-temperature = wall\n"))
	require.NoError(t, err)
	_, err = loadSettings(file)
	assert.ErrorIs(t, err, swhe.ErrInvalidConfig)

	file, err = ini.Load([]byte("[swhe]\nreynolds-high = 100\n"))
	require.NoError(t, err)
	_, err = loadSettings(file)
	assert.ErrorIs(t, err, swhe.ErrInvalidConfig)

	file, err = ini.Load([]byte("[system]\nmax-iterations = 0\n"))
	require.NoError(t, err)
	_, err = loadSettings(file)
	assert.Error(t, err)
}

func TestRepositoryFiles(t *testing.T) {
	c, err := LoadCase(filepath.Join("..", "example", "case.json"))
	require.NoError(t, err)
	assert.Equal(t, "PG", c.Fluid.Name)

	s, err := LoadSettings(filepath.Join("..", "conf", "solver.ini"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}
