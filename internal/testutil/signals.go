package testutil

import (
	"math"
	"math/rand"
	"sort"
)

// IrregularTimes generates deterministic, sorted, non-uniform sample
// times spanning [0, spread).
func IrregularTimes(n int, spread float64, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		out[i] = spread * rng.Float64()
	}
	sort.Float64s(out)
	return out
}

// Sinusoid evaluates offset + amp*sin(2*pi*freq*t) at the given times,
// with optional seeded Gaussian noise.
func Sinusoid(times []float64, freq, amp, offset, noise float64, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, len(times))
	for i, t := range times {
		out[i] = offset + amp*math.Sin(2*math.Pi*freq*t)
		if noise > 0 {
			out[i] += noise * rng.NormFloat64()
		}
	}
	return out
}

// UniformFreqs returns n frequencies starting at f0 with step df.
func UniformFreqs(f0, df float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = f0 + float64(i)*df
	}
	return out
}

// Constant returns a slice of length n filled with v.
func Constant(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
