// Package lombscargle computes least-squares periodograms for
// irregularly sampled time series.
//
// The periodogram measures the strength of a sinusoidal signal as a
// function of trial frequency by fitting a truncated Fourier series at
// each frequency and comparing the fit chi-square against a mean-only
// reference model. Observations may carry heteroscedastic uncertainties;
// each point is weighted by 1/uncertainty**2 throughout.
//
// Two evaluation methods are provided:
//
//   - The chi-square method builds and solves one small weighted
//     least-squares system per trial frequency. It supports any harmonic
//     order and optional per-column ridge regularization, at O(N) cost
//     per frequency.
//   - The fast method evaluates the single-harmonic floating-mean model
//     over a uniformly spaced frequency grid in O(N log N) total, using
//     Lagrange extirpolation onto a regular grid followed by an FFT
//     (the Press & Rybicki algorithm).
//
// # Usage
//
// Compute a periodogram over an automatically chosen grid:
//
//	freqs, _ := lombscargle.AutoFrequency(times, lombscargle.GridConfig{})
//	power, _ := lombscargle.Power(times, values, uncertainties, freqs, lombscargle.DefaultConfig())
//	peak, _, _ := lombscargle.FindPeak(freqs, power)
//
// For multi-filter observations sharing an underlying period, see the
// multiband package, which builds on this engine.
package lombscargle
