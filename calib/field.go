package calib

import (
	"fmt"
	"math"
)

// FieldFromTotal converts the local total field intensity (nT, e.g. from the
// NOAA geomagnetic calculator) into raw sensor units for a sensor with the
// given gain in LSB/Gauss.
//
//	47241.3 nT = 0.472413 G; 0.472413 G · 1090 LSB/G ≈ 515
func FieldFromTotal(totalNT, gain float64) (float64, error) {
	f := totalNT * nanoTeslaToG * gain
	if err := checkField(f); err != nil {
		return 0, err
	}
	return f, nil
}

// GainForRange returns the HMC5883L gain (LSB/Gauss) for a field range
// setting in Gauss.
func GainForRange(rangeGa float64) (float64, error) {
	for _, g := range hmc5883lGain {
		if math.Abs(g.RangeGa-rangeGa) < 1e-9 {
			return g.Gain, nil
		}
	}
	return 0, fmt.Errorf("no HMC5883L gain for ±%g Ga range", rangeGa)
}
