package lombscargle

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// powerRawFast evaluates the single-harmonic floating-mean periodogram
// over a uniform frequency grid in O(N log N) using FFT-accelerated
// trigonometric sums (Press & Rybicki). The per-frequency model is
// identical to the chi-square method with Nterms == 1; the result
// differs only by the small extirpolation approximation error.
func powerRawFast(times, values, uncertainties, freqs []float64, cfg Config) ([]float64, float64, error) {
	n := len(times)
	wraw := weights(uncertainties, n)
	var ws float64
	for _, v := range wraw {
		ws += v
	}
	w := make([]float64, n)
	vecmath.ScaleBlock(w, wraw, 1/ws)

	y := make([]float64, n)
	copy(y, values)
	if cfg.CenterData || cfg.FitMean {
		var mean float64
		for i, v := range y {
			mean += w[i] * v
		}
		for i := range y {
			y[i] -= mean
		}
	}

	f0 := freqs[0]
	nf := len(freqs)
	df := (freqs[nf-1] - freqs[0]) / float64(nf-1)

	wy := make([]float64, n)
	vecmath.MulBlock(wy, w, y)

	sh, ch, err := trigSum(times, wy, df, f0, nf, 1)
	if err != nil {
		return nil, 0, err
	}
	s2, c2, err := trigSum(times, w, df, f0, nf, 2)
	if err != nil {
		return nil, 0, err
	}
	var sw1, cw1 []float64
	if cfg.FitMean {
		sw1, cw1, err = trigSum(times, w, df, f0, nf, 1)
		if err != nil {
			return nil, 0, err
		}
	}

	var yy float64
	for i, v := range y {
		yy += w[i] * v * v
	}

	out := make([]float64, nf)
	for k := range out {
		// Phase shift tau that diagonalizes the normal equations
		// (Zechmeister & Kuerster floating-mean formulation).
		var tan2 float64
		if cfg.FitMean {
			tan2 = (s2[k] - 2*sw1[k]*cw1[k]) / (c2[k] - (cw1[k]*cw1[k] - sw1[k]*sw1[k]))
		} else {
			tan2 = s2[k] / c2[k]
		}

		var s2w, c2w float64
		if math.IsInf(tan2, 0) {
			s2w = math.Copysign(1, tan2)
			c2w = 0
		} else {
			inv := 1 / math.Sqrt(1+tan2*tan2)
			s2w = tan2 * inv
			c2w = inv
		}
		cw := math.Sqrt(0.5 * (1 + c2w))
		sw := math.Copysign(math.Sqrt(0.5*(1-c2w)), s2w)

		yc := ch[k]*cw + sh[k]*sw
		ys := sh[k]*cw - ch[k]*sw
		cc := 0.5 * (1 + c2[k]*c2w + s2[k]*s2w)
		ss := 0.5 * (1 - c2[k]*c2w - s2[k]*s2w)
		if cfg.FitMean {
			ct := cw1[k]*cw + sw1[k]*sw
			st := sw1[k]*cw - cw1[k]*sw
			cc -= ct * ct
			ss -= st * st
		}

		// Rescale from unit-sum weights back to absolute chi-square.
		out[k] = (yc*yc/cc + ys*ys/ss) * ws
	}
	return out, yy * ws, nil
}
