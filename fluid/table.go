package fluid

import (
	"embed"
	"fmt"
	"path"
	"sort"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/interp"
)

// Property tables at 101325 Pa. Each file holds one temperature curve per
// concentration, %; the 0 % curve of every mixture is plain water.
//
//go:embed data/*.csv
var tableFiles embed.FS

var tableFileNames = map[Kind]string{
	Water:           "water.csv",
	PropyleneGlycol: "propylene_glycol.csv",
	EthyleneGlycol:  "ethylene_glycol.csv",
	EthylAlcohol:    "ethyl_alcohol.csv",
}

var tables = mustLoadTables()

type TableRow struct {
	Concentration float64 `csv:"concentration"` // %
	Temperature   float64 `csv:"temperature"`   // degree C
	Density       float64 `csv:"density"`       // kg/m3
	SpecificHeat  float64 `csv:"specific_heat"` // J/kg K
	Viscosity     float64 `csv:"viscosity"`     // Pa s
	Conductivity  float64 `csv:"conductivity"`  // W/m K
	Expansion     float64 `csv:"expansion"`     // 1/K
}

// curve is the temperature dependence at one concentration.
type curve struct {
	concentration float64
	tMin, tMax    float64

	density      interp.PiecewiseLinear
	specificHeat interp.PiecewiseLinear
	viscosity    interp.PiecewiseLinear
	conductivity interp.PiecewiseLinear
	expansion    interp.PiecewiseLinear
}

func (c *curve) at(temperature float64) Properties {
	return Properties{
		Density:      c.density.Predict(temperature),
		SpecificHeat: c.specificHeat.Predict(temperature),
		Viscosity:    c.viscosity.Predict(temperature),
		Conductivity: c.conductivity.Predict(temperature),
		Beta:         c.expansion.Predict(temperature),
	}
}

// table holds the curves of one fluid kind sorted by concentration.
type table struct {
	kind   Kind
	curves []*curve
}

func (t *table) minConcentration() float64 { return t.curves[0].concentration }

func (t *table) maxConcentration() float64 { return t.curves[len(t.curves)-1].concentration }

// bracket finds the curves enclosing the concentration c and the linear
// weight of the upper one. c must lie within the table.
func (t *table) bracket(c float64) (*curve, *curve, float64) {
	i := sort.Search(len(t.curves), func(i int) bool {
		return t.curves[i].concentration >= c
	})
	hi := t.curves[i]
	if hi.concentration == c || i == 0 {
		return hi, hi, 0
	}
	lo := t.curves[i-1]
	return lo, hi, (c - lo.concentration) / (hi.concentration - lo.concentration)
}

func mustLoadTables() map[Kind]*table {
	m := make(map[Kind]*table, len(tableFileNames))
	for kind, name := range tableFileNames {
		t, err := loadTable(kind, name)
		if err != nil {
			panic(err)
		}
		m[kind] = t
	}
	return m
}

/*
Read a property table.

	Args:
	    kind: fluid kind the table describes
	    name: file name below data/

	Returns:
	    table with one fitted curve per concentration
*/
func loadTable(kind Kind, name string) (*table, error) {
	b, err := tableFiles.ReadFile(path.Join("data", name))
	if err != nil {
		return nil, fmt.Errorf("fluid: read table %s: %w", name, err)
	}

	var rows []*TableRow
	if err := gocsv.UnmarshalBytes(b, &rows); err != nil {
		return nil, fmt.Errorf("fluid: parse table %s: %w", name, err)
	}

	return buildTable(kind, rows)
}

func buildTable(kind Kind, rows []*TableRow) (*table, error) {
	byConcentration := make(map[float64][]*TableRow)
	for _, r := range rows {
		byConcentration[r.Concentration] = append(byConcentration[r.Concentration], r)
	}
	if len(byConcentration) == 0 {
		return nil, fmt.Errorf("fluid: empty table for %s", kind)
	}

	t := &table{kind: kind}
	for c, rs := range byConcentration {
		cv, err := fitCurve(c, rs)
		if err != nil {
			return nil, fmt.Errorf("fluid: %s at %g%%: %w", kind, c, err)
		}
		t.curves = append(t.curves, cv)
	}
	sort.Slice(t.curves, func(i, j int) bool {
		return t.curves[i].concentration < t.curves[j].concentration
	})
	return t, nil
}

func fitCurve(c float64, rows []*TableRow) (*curve, error) {
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Temperature < rows[j].Temperature
	})

	n := len(rows)
	ts := make([]float64, n)
	cols := make([][]float64, 5)
	for j := range cols {
		cols[j] = make([]float64, n)
	}
	for i, r := range rows {
		ts[i] = r.Temperature
		cols[0][i] = r.Density
		cols[1][i] = r.SpecificHeat
		cols[2][i] = r.Viscosity
		cols[3][i] = r.Conductivity
		cols[4][i] = r.Expansion
	}

	cv := &curve{concentration: c, tMin: ts[0], tMax: ts[n-1]}
	fits := []*interp.PiecewiseLinear{
		&cv.density, &cv.specificHeat, &cv.viscosity, &cv.conductivity, &cv.expansion,
	}
	for j, pl := range fits {
		if err := pl.Fit(ts, cols[j]); err != nil {
			return nil, err
		}
	}
	return cv, nil
}
