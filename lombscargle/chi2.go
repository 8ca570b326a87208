package lombscargle

import (
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-lombscargle/internal/leastsq"
)

// powerRawChi2 evaluates the periodogram by solving one weighted
// least-squares system per trial frequency. Supports any harmonic order
// and optional ridge regularization.
func powerRawChi2(times, values, uncertainties, freqs []float64, cfg Config) ([]float64, float64, error) {
	n := len(times)
	w := weights(uncertainties, n)

	yc := make([]float64, n)
	copy(yc, values)
	if cfg.CenterData || cfg.FitMean {
		mean := weightedMean(values, w)
		for i := range yc {
			yc[i] -= mean
		}
	}

	invdy := make([]float64, n)
	for i := range invdy {
		invdy[i] = math.Sqrt(w[i])
	}

	yw := make([]float64, n)
	vecmath.MulBlock(yw, yc, invdy)

	var chi2Ref float64
	for _, v := range yw {
		chi2Ref += v * v
	}

	nCols := cfg.nCols()
	reg := expandRegularization(cfg.Regularization, nCols)
	regScratch := []float64(nil)
	if reg != nil && cfg.RegularizeByTrace {
		regScratch = make([]float64, nCols)
	}

	cols := make([][]float64, nCols)
	for j := range cols {
		cols[j] = make([]float64, n)
	}

	out := make([]float64, len(freqs))
	for k, f := range freqs {
		omega := 2 * math.Pi * f
		fillHarmonicColumns(cols, times, invdy, omega, cfg.Nterms, cfg.FitMean)

		r := reg
		if regScratch != nil {
			tr := 0.0
			for _, c := range cols {
				for _, v := range c {
					tr += v * v
				}
			}
			for j := range regScratch {
				regScratch[j] = reg[j] * tr
			}
			r = regScratch
		}

		_, rss, err := leastsq.Solve(cols, yw, r)
		if err != nil {
			out[k] = math.NaN()
			continue
		}
		out[k] = chi2Ref - rss
	}
	return out, chi2Ref, nil
}

// fillHarmonicColumns writes the weighted single-band design matrix at
// angular frequency omega into cols: an offset column when fitMean is
// set, then [sin(n*omega*t), cos(n*omega*t)] pairs for n = 1..nterms,
// each row scaled by 1/uncertainty.
func fillHarmonicColumns(cols [][]float64, times, invdy []float64, omega float64, nterms int, fitMean bool) {
	j := 0
	if fitMean {
		copy(cols[0], invdy)
		j = 1
	}
	for term := 1; term <= nterms; term++ {
		sinCol, cosCol := cols[j], cols[j+1]
		k := float64(term) * omega
		for i, t := range times {
			s, c := math.Sincos(k * t)
			sinCol[i] = s * invdy[i]
			cosCol[i] = c * invdy[i]
		}
		j += 2
	}
}

// expandRegularization broadcasts a single penalty across all columns.
// Validation has already checked the length.
func expandRegularization(reg []float64, nCols int) []float64 {
	if reg == nil {
		return nil
	}
	if len(reg) == nCols {
		out := make([]float64, nCols)
		copy(out, reg)
		return out
	}
	out := make([]float64, nCols)
	for j := range out {
		out[j] = reg[0]
	}
	return out
}
