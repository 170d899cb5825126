// Package constants holds process-wide physical constants.
package constants

import "math"

// gravitational acceleration, m/s2
const Gravity = 9.81

const Pi = math.Pi

// exp(Euler's constant)
const Gamma = 1.781072
