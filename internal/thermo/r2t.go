// Package thermo converts raw instrument readings to physical units:
// thermometer resistance to temperature, lock-in voltage to temperature,
// and supply current to magnetic field.
package thermo

import (
	"fmt"
	"math"
)

// Lake Shore RX-202A (ruthenium oxide) accepted resistance range, ohms.
// The tolerance widens the range to absorb measurement error.
const (
	MinResistance = 2243.15 // resistance at 40 K
	MaxResistance = 69191.1 // resistance at 0.050 K
	Tolerance     = 10
)

// Chebyshev series coefficients for the RX-202A standard curve, published
// by Lake Shore, one set per temperature range over z = log10(R).

// 0.050 K to 0.650 K
var a1 = []float64{0.216272, -0.297572, 0.146302, -0.083696, 0.026669,
	-0.019932, 0.003085, -0.004804, 0.000177, -0.001218, 0.000286}

const (
	zl1       = 3.67248634198
	zu1       = 5.08000000000
	rangeLim1 = 5166.86
)

// 0.650 K to 5.0 K
var a2 = []float64{2.129752, -2.281779, 0.981996, -0.386190, 0.143467,
	-0.050844, 0.017569, -0.006164, 0.002311}

const (
	zl2       = 3.44161440913
	zu2       = 3.74909980595
	rangeLim2 = 2843.53
)

// 5.0 K to 40 K
var a3 = []float64{102.338126, -161.190611, 94.158738, -43.080048,
	15.317949, -3.881270, 0.540313}

const (
	zl3       = 3.27800000000
	zu3       = 3.46671731726
	rangeLim3 = 2243.15
)

func chebyshevSeries(z, zl, zu float64, a []float64) float64 {
	x := ((z - zl) - (zu - z)) / (zu - zl)

	tc := make([]float64, len(a))
	tc[0] = 1
	tc[1] = x
	t := a[0] + a[1]*x
	for i := 2; i < len(a); i++ {
		tc[i] = 2*x*tc[i-1] - tc[i-2]
		t += a[i] * tc[i]
	}
	return t
}

// R2T calculates temperature in kelvin from resistance in ohms. Resistance
// must lie in [MinResistance - Tolerance, MaxResistance + Tolerance].
func R2T(resistance float64) (float64, error) {
	if resistance < MinResistance-Tolerance || resistance > MaxResistance+Tolerance {
		return 0, fmt.Errorf("resistance %.3e is out of range", resistance)
	}

	z := math.Log10(resistance)
	switch {
	case resistance >= rangeLim1:
		return chebyshevSeries(z, zl1, zu1, a1), nil
	case resistance >= rangeLim2:
		return chebyshevSeries(z, zl2, zu2, a2), nil
	default:
		return chebyshevSeries(z, zl3, zu3, a3), nil
	}
}
