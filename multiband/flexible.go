package multiband

import (
	"context"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-lombscargle/internal/leastsq"
	"github.com/cwbudde/algo-lombscargle/lombscargle"
)

// defaultBandPenalty is the relative ridge penalty applied to the
// band-local columns when the caller supplies no regularization and the
// model has both shared and band-local harmonics. In that configuration
// each shared harmonic column equals the sum of the corresponding
// band-local columns, so the unregularized joint system has no unique
// solution at any frequency; a small trace-scaled penalty on the
// band-local block resolves the degeneracy in favor of the shared
// component.
const defaultBandPenalty = 1e-6

// flexiblePower evaluates the joint-model strategy: one weighted
// least-squares solve spanning all bands per trial frequency. The null
// model for normalization is the per-band weighted mean, so the
// reference chi-square matches the single-band definition when only one
// band is present.
func flexiblePower(ctx context.Context, times, values, w []float64, reg *registry, freqs []float64, cfg Config) (power []float64, coeffs [][]float64, err error) {
	n := len(times)

	// Center per band; with FitMean the offset columns absorb any
	// residual mean, centering just conditions the solve.
	yc := make([]float64, n)
	copy(yc, values)
	if cfg.CenterData || cfg.FitMean {
		for i := range yc {
			yc[i] -= reg.mean[reg.idx[i]]
		}
	}

	invdy := make([]float64, n)
	for i, v := range w {
		invdy[i] = math.Sqrt(v)
	}
	yw := make([]float64, n)
	vecmath.MulBlock(yw, yc, invdy)

	var chi2Ref float64
	for _, v := range yw {
		chi2Ref += v * v
	}

	nCols := cfg.nCols(reg.nBands())
	ridge := expandRegularization(cfg.Regularization, nCols)
	byTrace := cfg.RegularizeByTrace
	if ridge == nil && cfg.NtermsBase > 0 && cfg.NtermsBand > 0 {
		ridge = make([]float64, nCols)
		for j := cfg.nSharedCols(); j < nCols; j++ {
			ridge[j] = defaultBandPenalty
		}
		byTrace = true
	}

	power = make([]float64, len(freqs))
	if cfg.WithCoefficients {
		coeffs = make([][]float64, len(freqs))
	}

	err = forEachChunk(ctx, len(freqs), cfg.Workers, cfg.ChunkSize, func() func(lo, hi int) {
		a := newAssembler(times, w, reg, cfg)
		var ridgeScratch []float64
		if ridge != nil && byTrace {
			ridgeScratch = make([]float64, nCols)
		}
		return func(lo, hi int) {
			for k := lo; k < hi; k++ {
				cols := a.fill(freqs[k])

				r := ridge
				if ridgeScratch != nil {
					tr := 0.0
					for _, c := range cols {
						for _, v := range c {
							tr += v * v
						}
					}
					for j := range ridgeScratch {
						ridgeScratch[j] = ridge[j] * tr
					}
					r = ridgeScratch
				}

				beta, rss, solveErr := leastsq.Solve(cols, yw, r)
				if solveErr != nil {
					power[k] = math.NaN()
					continue
				}
				power[k] = lombscargle.NormalizePower(chi2Ref-rss, chi2Ref, cfg.Normalization)
				if coeffs != nil {
					coeffs[k] = beta
				}
			}
		}
	})
	if err != nil {
		return nil, nil, err
	}
	return power, coeffs, nil
}

// expandRegularization broadcasts a single penalty across all columns.
// Validation has already checked the length.
func expandRegularization(ridge []float64, nCols int) []float64 {
	if ridge == nil {
		return nil
	}
	out := make([]float64, nCols)
	if len(ridge) == nCols {
		copy(out, ridge)
		return out
	}
	for j := range out {
		out[j] = ridge[0]
	}
	return out
}
