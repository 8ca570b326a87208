package multiband

import "math"

// ModelCurve reconstructs the fitted model for one band at the given
// evaluation times from the coefficients recorded at frequency index
// freqIndex.
//
// The curve combines the shared harmonic terms with the band's offset
// and band-local harmonics. Values are relative to the band's weighted
// mean whenever the fit centered the data; callers overlaying the curve
// on raw observations add that mean back themselves.
func (r *Result) ModelCurve(freqIndex int, band string, at []float64) ([]float64, error) {
	if r.Coefficients == nil || freqIndex < 0 || freqIndex >= len(r.Coefficients) || r.Coefficients[freqIndex] == nil {
		return nil, ErrNoCoefficients
	}
	bandIndex := -1
	for j, label := range r.Bands {
		if label == band {
			bandIndex = j
			break
		}
	}
	if bandIndex < 0 {
		return nil, ErrUnknownBand
	}

	beta := r.Coefficients[freqIndex]
	omega := 2 * math.Pi * r.Frequencies[freqIndex]
	out := make([]float64, len(at))
	for i, t := range at {
		basis := basisAt(t, omega, bandIndex, r.cfg, len(r.Bands))
		var v float64
		for j, b := range basis {
			v += b * beta[j]
		}
		out[i] = v
	}
	return out, nil
}
