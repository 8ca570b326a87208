package lombscargle

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
)

const (
	// trigSumOversample controls the density of the extirpolation grid
	// relative to the requested frequency count.
	trigSumOversample = 5

	// extirpolationOrder is the number of Lagrange nodes each sample is
	// spread onto. Four nodes give roughly single-precision accuracy in
	// the resulting sums.
	extirpolationOrder = 4
)

// trigSum evaluates the weighted trigonometric sums
//
//	S[k] = sum_i h[i] * sin(2*pi*f_k*t[i])
//	C[k] = sum_i h[i] * cos(2*pi*f_k*t[i])
//
// over the uniform frequency grid f_k = freqFactor*(f0 + k*df) for
// k = 0..nf-1, using Lagrange extirpolation onto a regular grid followed
// by a single inverse FFT (Press & Rybicki). Cost is O(len(t) + nfft
// log nfft) independent of nf up to the oversampling factor.
func trigSum(times, h []float64, df, f0 float64, nf int, freqFactor float64) (s, c []float64, err error) {
	df *= freqFactor
	f0 *= freqFactor

	nfft := nextPowerOf2(nf * trigSumOversample)
	t0 := times[0]
	for _, t := range times {
		if t < t0 {
			t0 = t
		}
	}

	// Rotate the weights to the grid start frequency so the FFT bins
	// cover f0..f0+nf*df instead of 0..nf*df.
	hc := make([]complex128, len(h))
	if f0 > 0 {
		for i, v := range h {
			sn, cs := math.Sincos(2 * math.Pi * f0 * (times[i] - t0))
			hc[i] = complex(v*cs, v*sn)
		}
	} else {
		for i, v := range h {
			hc[i] = complex(v, 0)
		}
	}

	grid := make([]complex128, nfft)
	nff := float64(nfft)
	for i, t := range times {
		x := math.Mod((t-t0)*nff*df, nff)
		if x < 0 {
			x += nff
		}
		extirpolate(x, hc[i], grid, extirpolationOrder)
	}

	plan, err := algofft.NewPlan64(nfft)
	if err != nil {
		return nil, nil, fmt.Errorf("lombscargle: failed to create FFT plan: %w", err)
	}
	spectral := make([]complex128, nfft)
	if err := plan.Inverse(spectral, grid); err != nil {
		return nil, nil, fmt.Errorf("lombscargle: inverse FFT failed: %w", err)
	}

	s = make([]float64, nf)
	c = make([]float64, nf)
	for k := 0; k < nf; k++ {
		// The inverse transform is normalized by 1/nfft; undo that to
		// recover plain sums.
		v := spectral[k] * complex(nff, 0)
		if t0 != 0 {
			f := f0 + float64(k)*df
			sn, cs := math.Sincos(2 * math.Pi * t0 * f)
			v *= complex(cs, sn)
		}
		c[k] = real(v)
		s[k] = imag(v)
	}
	return s, c, nil
}

// extirpolate spreads one weighted sample at fractional grid position x
// onto m adjacent grid nodes using Lagrange interpolation weights, so
// that polynomial sums over the grid reproduce sums over the original
// irregular positions up to order m-1.
func extirpolate(x float64, y complex128, grid []complex128, m int) {
	n := len(grid)
	if x == math.Trunc(x) {
		i := int(x)
		if i >= n {
			i -= n
		}
		grid[i] += y
		return
	}

	ilo := int(x) - m/2
	if ilo < 0 {
		ilo = 0
	}
	if ilo > n-m {
		ilo = n - m
	}

	num := y
	for j := 0; j < m; j++ {
		num *= complex(x-float64(ilo+j), 0)
	}

	den := factorial(m - 1)
	for j := 0; j < m; j++ {
		if j > 0 {
			den *= float64(j) / float64(j-m)
		}
		ind := ilo + (m - 1 - j)
		grid[ind] += num / complex(den*(x-float64(ind)), 0)
	}
}

func factorial(n int) float64 {
	out := 1.0
	for i := 2; i <= n; i++ {
		out *= float64(i)
	}
	return out
}

// nextPowerOf2 returns the smallest power of two >= n.
func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
