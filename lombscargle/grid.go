package lombscargle

import (
	"errors"
	"math"
)

var (
	ErrShortBaseline = errors.New("lombscargle: need at least two distinct observation times")
	ErrInvalidGrid   = errors.New("lombscargle: maximum frequency must exceed minimum frequency")
	ErrNoPeak        = errors.New("lombscargle: no finite power values")
)

const (
	defaultSamplesPerPeak = 5
	defaultNyquistFactor  = 5.0
)

// GridConfig controls automatic frequency grid generation.
type GridConfig struct {
	// SamplesPerPeak is the grid oversampling relative to the expected
	// peak width 1/baseline. Default 5.
	SamplesPerPeak int

	// NyquistFactor scales the average-Nyquist estimate used for the
	// upper frequency limit when MaxFrequency is unset. Default 5.
	NyquistFactor float64

	// MinFrequency overrides the lower grid limit when > 0.
	MinFrequency float64

	// MaxFrequency overrides the upper grid limit when > 0.
	MaxFrequency float64
}

// AutoFrequency returns a uniform trial frequency grid sized from the
// observation baseline.
//
// The grid step is df = 1/(SamplesPerPeak * baseline), so each expected
// periodogram peak spans about SamplesPerPeak samples. Without explicit
// limits the grid starts at df/2 and extends to NyquistFactor times
// the average Nyquist frequency 0.5*N/baseline. Irregular sampling has
// no hard Nyquist limit, which is why the factor is configurable.
func AutoFrequency(times []float64, cfg GridConfig) ([]float64, error) {
	if cfg.SamplesPerPeak <= 0 {
		cfg.SamplesPerPeak = defaultSamplesPerPeak
	}
	if cfg.NyquistFactor <= 0 {
		cfg.NyquistFactor = defaultNyquistFactor
	}
	if len(times) < 2 {
		return nil, ErrShortBaseline
	}
	tmin, tmax := times[0], times[0]
	for _, t := range times {
		if t < tmin {
			tmin = t
		}
		if t > tmax {
			tmax = t
		}
	}
	baseline := tmax - tmin
	if baseline <= 0 {
		return nil, ErrShortBaseline
	}

	df := 1 / (baseline * float64(cfg.SamplesPerPeak))
	fmin := cfg.MinFrequency
	if fmin <= 0 {
		fmin = 0.5 * df
	}
	fmax := cfg.MaxFrequency
	if fmax <= 0 {
		avgNyquist := 0.5 * float64(len(times)) / baseline
		fmax = cfg.NyquistFactor * avgNyquist
	}
	if fmax <= fmin {
		return nil, ErrInvalidGrid
	}

	nf := 1 + int(math.Round((fmax-fmin)/df))
	out := make([]float64, nf)
	for i := range out {
		out[i] = fmin + float64(i)*df
	}
	return out, nil
}

// FindPeak returns the frequency and value of the periodogram maximum,
// refined by parabolic interpolation between the neighboring grid
// samples. NaN power entries are skipped; ErrNoPeak is returned when no
// finite entry exists.
func FindPeak(freqs, power []float64) (float64, float64, error) {
	if len(freqs) == 0 || len(freqs) != len(power) {
		return 0, 0, ErrMismatchedLengths
	}
	best := -1
	for i, p := range power {
		if math.IsNaN(p) {
			continue
		}
		if best < 0 || p > power[best] {
			best = i
		}
	}
	if best < 0 {
		return 0, 0, ErrNoPeak
	}
	if best == 0 || best == len(power)-1 {
		return freqs[best], power[best], nil
	}

	y1, y2, y3 := power[best-1], power[best], power[best+1]
	if math.IsNaN(y1) || math.IsNaN(y3) {
		return freqs[best], y2, nil
	}
	den := y1 - 2*y2 + y3
	if den == 0 {
		return freqs[best], y2, nil
	}
	dx := 0.5 * (y1 - y3) / den
	// A vertex outside the neighboring samples is unreliable.
	if math.Abs(dx) > 0.9 {
		return freqs[best], y2, nil
	}

	var f float64
	if dx >= 0 {
		f = freqs[best] + dx*(freqs[best+1]-freqs[best])
	} else {
		f = freqs[best] + dx*(freqs[best]-freqs[best-1])
	}
	return f, y2 - 0.25*(y1-y3)*dx, nil
}
