// Package multiband computes least-squares periodograms for irregularly
// sampled time series whose observations carry a discrete band label,
// such as multi-filter astronomical photometry.
//
// A multiband model must explain simultaneous observations across
// several bands that share an underlying periodic phenomenon but differ
// in amplitude, phase and mean level. Two fitting strategies are
// provided behind one power-normalization contract:
//
//   - MethodFlexible fits one joint model per trial frequency: a set of
//     harmonic columns shared by all bands plus, per band, an offset and
//     band-local harmonic columns that are zero outside that band. The
//     shared columns tie amplitude and phase across bands; the
//     band-local block lets every band deviate independently.
//   - MethodFast fits each band independently with the single-band
//     engine (package lombscargle) and combines the per-band chi-square
//     reductions into one power value, weighting each band by its total
//     statistical weight. This trades the cross-band constraint for
//     speed: B small solves instead of one large one.
//
// With a single band and no band-local harmonics both strategies reduce
// to the single-band periodogram, on every normalization scale.
//
// The computation is a pure function of its inputs and embarrassingly
// parallel across the frequency grid; PowerContext evaluates the grid in
// chunks on a bounded worker pool and stops submitting chunks when the
// context is cancelled.
//
// # Usage
//
//	freqs, _ := lombscargle.AutoFrequency(times, lombscargle.GridConfig{})
//	res, _ := multiband.Power(times, values, uncertainties, bands, freqs, multiband.DefaultConfig())
//	peak, _, _ := lombscargle.FindPeak(res.Frequencies, res.Power)
package multiband
