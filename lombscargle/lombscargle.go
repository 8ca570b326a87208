package lombscargle

import (
	"errors"
	"math"
)

var (
	ErrMismatchedLengths    = errors.New("lombscargle: input arrays must have equal length")
	ErrNoObservations       = errors.New("lombscargle: no observations")
	ErrInvalidNterms        = errors.New("lombscargle: harmonic order must be >= 0")
	ErrEmptyModel           = errors.New("lombscargle: model has no terms (nterms is 0 and mean fitting is disabled)")
	ErrInvalidFrequency     = errors.New("lombscargle: frequencies must be positive and strictly increasing")
	ErrInvalidUncertainty   = errors.New("lombscargle: uncertainties must be strictly positive")
	ErrUnderdetermined      = errors.New("lombscargle: more model columns than observations")
	ErrInvalidRegularizer   = errors.New("lombscargle: regularization length must be 1 or match the column count")
	ErrNonUniformGrid       = errors.New("lombscargle: fast method requires a uniformly spaced frequency grid")
	ErrFastUnsupported      = errors.New("lombscargle: fast method supports nterms == 1 without regularization")
	ErrInvalidNormalization = errors.New("lombscargle: unknown normalization")
)

// Method selects the periodogram evaluation algorithm.
type Method int

const (
	// MethodAuto picks MethodFast when the configuration and frequency
	// grid allow it and falls back to MethodChi2 otherwise.
	MethodAuto Method = iota

	// MethodChi2 solves one weighted least-squares system per frequency.
	MethodChi2

	// MethodFast uses extirpolation and an FFT over a uniform grid
	// (Press & Rybicki). Requires Nterms == 1 and no regularization.
	MethodFast
)

// String returns a human-readable name for the method.
func (m Method) String() string {
	switch m {
	case MethodAuto:
		return "auto"
	case MethodChi2:
		return "chi2"
	case MethodFast:
		return "fast"
	default:
		return "unknown"
	}
}

// Config holds the periodogram model parameters.
//
// The zero value describes a mean-only model with no centering, which is
// rarely what a caller wants; start from DefaultConfig instead.
type Config struct {
	// Nterms is the harmonic order of the fitted Fourier series.
	Nterms int

	// Normalization selects the output power scale.
	Normalization Normalization

	// Method selects the evaluation algorithm.
	Method Method

	// CenterData subtracts the weighted mean from the values before
	// fitting. Recommended whenever FitMean is disabled.
	CenterData bool

	// FitMean includes a constant offset column in the model.
	FitMean bool

	// Regularization holds optional ridge penalties, one per design
	// matrix column (offset first, then sin/cos pairs), or a single
	// value broadcast across all columns. Only MethodChi2 honors it.
	Regularization []float64

	// RegularizeByTrace scales the penalties by the trace of the normal
	// matrix at each frequency, making them relative rather than
	// absolute.
	RegularizeByTrace bool
}

// DefaultConfig returns the conventional single-harmonic floating-mean
// configuration with standard normalization.
func DefaultConfig() Config {
	return Config{
		Nterms:     1,
		CenterData: true,
		FitMean:    true,
	}
}

// nCols returns the design matrix column count for this configuration.
func (cfg Config) nCols() int {
	n := 2 * cfg.Nterms
	if cfg.FitMean {
		n++
	}
	return n
}

// Power computes the periodogram at the given trial frequencies.
//
// times, values and uncertainties must have equal length; uncertainties
// may be nil, in which case all observations receive unit weight.
// freqs must be strictly increasing and positive. The returned slice has
// one power entry per frequency; entries where the solve failed are NaN.
func Power(times, values, uncertainties, freqs []float64, cfg Config) ([]float64, error) {
	raw, chi2Ref, err := PowerRaw(times, values, uncertainties, freqs, cfg)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(raw))
	for i, p := range raw {
		out[i] = NormalizePower(p, chi2Ref, cfg.Normalization)
	}
	return out, nil
}

// PowerRaw computes the unnormalized chi-square reduction
// chi2_ref - chi2_model at each trial frequency, along with chi2_ref,
// the chi-square of the mean-only reference model.
//
// This is the consumption interface for engines that combine several
// periodograms (the multiband fast strategy) and need residuals rather
// than a fixed power scale. Power is PowerRaw followed by
// NormalizePower.
func PowerRaw(times, values, uncertainties, freqs []float64, cfg Config) ([]float64, float64, error) {
	if err := validateInput(times, values, uncertainties, freqs, cfg); err != nil {
		return nil, 0, err
	}

	method := cfg.Method
	if method == MethodAuto {
		if fastEligible(cfg) && uniformGrid(freqs) {
			method = MethodFast
		} else {
			method = MethodChi2
		}
	}

	switch method {
	case MethodFast:
		if !fastEligible(cfg) {
			return nil, 0, ErrFastUnsupported
		}
		if !uniformGrid(freqs) {
			return nil, 0, ErrNonUniformGrid
		}
		return powerRawFast(times, values, uncertainties, freqs, cfg)
	default:
		return powerRawChi2(times, values, uncertainties, freqs, cfg)
	}
}

func fastEligible(cfg Config) bool {
	return cfg.Nterms == 1 && cfg.Regularization == nil
}

// uniformGrid reports whether freqs is evenly spaced (within a relative
// tolerance) so the FFT-based method applies.
func uniformGrid(freqs []float64) bool {
	if len(freqs) < 2 {
		return false
	}
	df := (freqs[len(freqs)-1] - freqs[0]) / float64(len(freqs)-1)
	if df <= 0 {
		return false
	}
	const tol = 1e-8
	for i, f := range freqs {
		want := freqs[0] + float64(i)*df
		if math.Abs(f-want) > tol*df {
			return false
		}
	}
	return true
}

func validateInput(times, values, uncertainties, freqs []float64, cfg Config) error {
	n := len(times)
	if n == 0 {
		return ErrNoObservations
	}
	if len(values) != n || (uncertainties != nil && len(uncertainties) != n) {
		return ErrMismatchedLengths
	}
	if cfg.Nterms < 0 {
		return ErrInvalidNterms
	}
	if cfg.Nterms == 0 && !cfg.FitMean {
		return ErrEmptyModel
	}
	if !cfg.Normalization.valid() {
		return ErrInvalidNormalization
	}
	nCols := cfg.nCols()
	if nCols > n {
		return ErrUnderdetermined
	}
	if r := cfg.Regularization; r != nil && len(r) != 1 && len(r) != nCols {
		return ErrInvalidRegularizer
	}
	for _, dy := range uncertainties {
		if !(dy > 0) {
			return ErrInvalidUncertainty
		}
	}
	if len(freqs) == 0 {
		return ErrInvalidFrequency
	}
	prev := 0.0
	for _, f := range freqs {
		if !(f > prev) {
			return ErrInvalidFrequency
		}
		prev = f
	}
	return nil
}

// weights returns the per-observation weights 1/uncertainty**2, or unit
// weights when uncertainties is nil.
func weights(uncertainties []float64, n int) []float64 {
	w := make([]float64, n)
	if uncertainties == nil {
		for i := range w {
			w[i] = 1
		}
		return w
	}
	for i, dy := range uncertainties {
		w[i] = 1 / (dy * dy)
	}
	return w
}

// weightedMean returns sum(w*y)/sum(w).
func weightedMean(y, w []float64) float64 {
	var num, den float64
	for i, v := range y {
		num += w[i] * v
		den += w[i]
	}
	return num / den
}
