package thermo

// FieldConstant is the magnet's field-to-current ratio in tesla per amp
// (737.7 G/A), from the Lake Shore 625 setup.
const FieldConstant = 0.07377

// C2H converts supply output current in amps to magnetic field in tesla.
func C2H(current float64) float64 {
	return FieldConstant * current
}
