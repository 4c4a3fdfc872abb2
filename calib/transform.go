package calib

// Correct applies the transform to one raw reading.
func (t Transform) Correct(r Sample) Sample {
	x := r.X - t.Offset[0]
	y := r.Y - t.Offset[1]
	z := r.Z - t.Offset[2]
	a := &t.SoftIron
	return Sample{
		X: a[0][0]*x + a[0][1]*y + a[0][2]*z,
		Y: a[1][0]*x + a[1][1]*y + a[1][2]*z,
		Z: a[2][0]*x + a[2][1]*y + a[2][2]*z,
	}
}

// Apply corrects every sample. The result has the same length and order as
// samples, and samples itself is left untouched.
func Apply(samples []Sample, t Transform) []Sample {
	out := make([]Sample, len(samples))
	for i, s := range samples {
		out[i] = t.Correct(s)
	}
	return out
}
