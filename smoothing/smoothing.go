// Package smoothing blends two regime-specific values across a transition
// window with a tuned sigmoid.
package smoothing

import "math"

// Tuned so that the normalized sigmoid passes through (-4, 0) and (4, 1).
// At both ends the slope is below 0.01, so the blend leaves each regime
// almost flat and then starts to move immediately.
const (
	sigmoidScale  = 1.0373140383507
	sigmoidOffset = 0.0186560820737

	sigmoidLower = -4.0
	sigmoidUpper = 4.0
)

/*
Smooth between yMin and yMax based on where x falls in [xMin, xMax].

	Args:
	    x: independent variable
	    xMin: lower bound of the transition window
	    xMax: upper bound of the transition window
	    yMin: value returned at and below xMin
	    yMax: value returned at and above xMax

	Returns:
	    smoothed value between yMin and yMax

	Notes:
	    https://en.wikipedia.org/wiki/Sigmoid_function
*/
func Smooth(x, xMin, xMax, yMin, yMax float64) float64 {
	if x <= xMin {
		return yMin
	}
	if x >= xMax {
		return yMax
	}

	xNormalized := (x - xMin) / (xMax - xMin)

	// scales x = [0, 1] to [-4, 4]
	xSig := (sigmoidUpper-sigmoidLower)*xNormalized + sigmoidLower

	ySig := sigmoidScale/(1+math.Exp(-xSig)) - sigmoidOffset

	return (yMax-yMin)*ySig + yMin
}
