package swhe

import "swhe_calc/fluid"

// Result is the state of the last iteration of a coil solve.
type Result struct {
	MassFlow  float64 // kg/s
	InletTemp float64 // degree C
	WaterTemp float64 // degree C

	Brine fluid.Properties
	Water fluid.Properties

	Inside      InsideConvection
	Outside     OutsideConvection
	Resistances Resistances

	UA            float64 // W/K
	NTU           float64 // -
	Effectiveness float64 // -
	QMax          float64 // W
	CoilDuty      float64 // W, positive when heat leaves the brine

	MeanTemp      float64 // mean brine temperature, degree C
	SurfInnerTemp float64 // degree C
	SurfOuterTemp float64 // degree C
	OutletTemp    float64 // degree C
	ApproachTemp  float64 // outlet minus water, K

	Iterations int
}
