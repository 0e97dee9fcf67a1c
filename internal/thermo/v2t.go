package thermo

// Divider describes the measurement circuit: the thermometer in series with
// a large resistor, driven by the lock-in's internal oscillator. The lock-in
// measures the EMS voltage across the thermometer, so
//
//	r_therm = v / (VEms - v) * RLarge
//
// Scale normalizes our particular thermometer to the standard RX-202A curve
// (2929 ohms at 4.2 K standard vs 2896 ohms measured).
type Divider struct {
	VEms   float64
	RLarge float64
	Scale  float64
}

// DefaultDivider returns the circuit constants of the experiment.
func DefaultDivider() Divider {
	return Divider{
		VEms:   1e-2,
		RLarge: 1.5e6,
		Scale:  2929.0 / 2896.0,
	}
}

// V2R computes the thermometer resistance from the EMS voltage across it.
func (d Divider) V2R(v float64) float64 {
	return v / (d.VEms - v) * d.RLarge
}

// V2T computes temperature from the measured voltage: V2R, normalization to
// the standard curve, then R2T.
func (d Divider) V2T(v float64) (float64, error) {
	return R2T(d.V2R(v) * d.Scale)
}

// PlaceholderTemp stands in for readings outside the thermometer's curve so
// a trace can still be drawn through warm-up and noise spikes.
const PlaceholderTemp = 273

// V2TOrPlaceholder is V2T with out-of-range readings mapped to
// PlaceholderTemp instead of an error.
func (d Divider) V2TOrPlaceholder(v float64) float64 {
	t, err := d.V2T(v)
	if err != nil {
		return PlaceholderTemp
	}
	return t
}
