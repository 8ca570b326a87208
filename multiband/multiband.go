package multiband

import (
	"context"
	"errors"
	"math"

	"github.com/cwbudde/algo-lombscargle/lombscargle"
)

var (
	ErrMismatchedLengths    = errors.New("multiband: input arrays must have equal length")
	ErrNoObservations       = errors.New("multiband: no observations")
	ErrInvalidNterms        = errors.New("multiband: harmonic orders must be >= 0")
	ErrEmptyModel           = errors.New("multiband: model has no terms (harmonic orders are 0 and mean fitting is disabled)")
	ErrInvalidFrequency     = errors.New("multiband: frequencies must be positive and strictly increasing")
	ErrInvalidUncertainty   = errors.New("multiband: uncertainties must be strictly positive")
	ErrUnderdetermined      = errors.New("multiband: more model columns than usable observations")
	ErrInvalidRegularizer   = errors.New("multiband: regularization length must be 1 or match the column count")
	ErrInvalidNormalization = errors.New("multiband: unknown normalization")
	ErrUnknownBand          = errors.New("multiband: band label not present in the fit")
	ErrNoCoefficients       = errors.New("multiband: result carries no coefficients (flexible strategy with WithCoefficients required)")
)

// Method selects the multiband fitting strategy.
type Method int

const (
	// MethodFlexible solves one joint weighted least-squares system
	// spanning all bands per trial frequency.
	MethodFlexible Method = iota

	// MethodFast fits every band independently with the single-band
	// engine and combines the per-band chi-square reductions.
	MethodFast
)

// String returns a human-readable name for the strategy.
func (m Method) String() string {
	switch m {
	case MethodFlexible:
		return "flexible"
	case MethodFast:
		return "fast"
	default:
		return "unknown"
	}
}

// Config holds the multiband model parameters. Start from DefaultConfig;
// the zero value describes a model without harmonics or offsets, which
// is rejected.
type Config struct {
	// NtermsBase is the harmonic order of the periodic signal shared by
	// all bands.
	NtermsBase int

	// NtermsBand is the additional per-band harmonic order. Band-local
	// harmonic columns are zero for observations outside their band.
	NtermsBand int

	// Method selects the fitting strategy.
	Method Method

	// Normalization selects the output power scale. The definitions are
	// shared with the single-band engine.
	Normalization lombscargle.Normalization

	// CenterData subtracts each band's weighted mean before fitting.
	CenterData bool

	// FitMean includes one constant offset column per band.
	FitMean bool

	// Regularization holds optional ridge penalties for the flexible
	// strategy, one per design matrix column (shared columns first, then
	// each band's block in registry order), or a single value broadcast
	// across all columns. When nil and the model has both shared and
	// band-local harmonics, a small trace-scaled penalty is applied to
	// the band-local columns, since those configurations are exactly
	// collinear without it. Pass explicit zeros to disable that default.
	Regularization []float64

	// RegularizeByTrace scales the penalties by the trace of the normal
	// matrix at each frequency.
	RegularizeByTrace bool

	// SingleBand selects the per-band evaluation method used by
	// MethodFast. The default (MethodAuto) picks the FFT-accelerated
	// path whenever the grid and configuration allow it.
	SingleBand lombscargle.Method

	// Workers bounds the number of goroutines evaluating frequency
	// chunks. Zero means one per available CPU.
	Workers int

	// ChunkSize is the number of frequencies per unit of parallel work.
	// Zero means a default that bounds working-set memory on large
	// grids.
	ChunkSize int

	// WithCoefficients records the fitted coefficient vector per
	// frequency in Result.Coefficients. Flexible strategy only.
	WithCoefficients bool
}

// DefaultConfig returns the conventional multiband configuration: one
// shared harmonic, one band-local harmonic, per-band offsets, standard
// normalization.
func DefaultConfig() Config {
	return Config{
		NtermsBase: 1,
		NtermsBand: 1,
		CenterData: true,
		FitMean:    true,
	}
}

// nSharedCols returns the number of shared harmonic columns.
func (cfg Config) nSharedCols() int { return 2 * cfg.NtermsBase }

// nLocalCols returns the number of band-local columns per band.
func (cfg Config) nLocalCols() int {
	n := 2 * cfg.NtermsBand
	if cfg.FitMean {
		n++
	}
	return n
}

// nCols returns the joint design matrix column count for nBands bands.
func (cfg Config) nCols(nBands int) int {
	return cfg.nSharedCols() + nBands*cfg.nLocalCols()
}

// Result holds one periodogram computation.
type Result struct {
	// Frequencies is the trial frequency grid (caller-supplied, copied
	// by reference; read-only during fitting).
	Frequencies []float64

	// Power holds one value per frequency on the configured
	// normalization scale. Entries where the solver failed are NaN.
	Power []float64

	// Bands lists the distinct band labels in first-seen order, which is
	// also the design matrix column order.
	Bands []string

	// Coefficients holds the fitted coefficient vector per frequency
	// when requested (flexible strategy with WithCoefficients). Layout:
	// shared sin/cos pairs, then per band offset and sin/cos pairs.
	Coefficients [][]float64

	// Singular lists the frequency indices whose solve was reported
	// singular; the corresponding Power entries are NaN.
	Singular []int

	cfg Config
}

// Power computes the multiband periodogram at the given trial
// frequencies.
//
// times, values and bands must have equal length; uncertainties may be
// nil for unit weights. The engine is a pure function of its inputs:
// repeated calls with identical inputs produce identical results.
func Power(times, values, uncertainties []float64, bands []string, freqs []float64, cfg Config) (*Result, error) {
	return PowerContext(context.Background(), times, values, uncertainties, bands, freqs, cfg)
}

// PowerContext is Power with cooperative cancellation: the frequency
// grid is evaluated in chunks on a worker pool, and once ctx is
// cancelled no further chunks are submitted and ctx.Err() is returned.
func PowerContext(ctx context.Context, times, values, uncertainties []float64, bands []string, freqs []float64, cfg Config) (*Result, error) {
	w, reg, err := validate(times, values, uncertainties, bands, freqs, cfg)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Frequencies: freqs,
		Bands:       append([]string(nil), reg.labels...),
		cfg:         cfg,
	}

	switch cfg.Method {
	case MethodFast:
		res.Power, err = fastPower(ctx, times, values, uncertainties, w, reg, freqs, cfg)
	default:
		res.Power, res.Coefficients, err = flexiblePower(ctx, times, values, w, reg, freqs, cfg)
	}
	if err != nil {
		return nil, err
	}

	for i, p := range res.Power {
		if math.IsNaN(p) {
			res.Singular = append(res.Singular, i)
		}
	}
	return res, nil
}

// validate applies the eager InvalidConfiguration and
// UnderdeterminedSystem checks: no fitting starts unless the whole call
// is well-posed. The declared underdetermination policy is to reject the
// call, uniformly for both strategies: every band must have at least as
// many observations as the columns its rows participate in
// (shared + offset + band-local).
func validate(times, values, uncertainties []float64, bands []string, freqs []float64, cfg Config) ([]float64, *registry, error) {
	n := len(times)
	if n == 0 {
		return nil, nil, ErrNoObservations
	}
	if len(values) != n || len(bands) != n || (uncertainties != nil && len(uncertainties) != n) {
		return nil, nil, ErrMismatchedLengths
	}
	if cfg.NtermsBase < 0 || cfg.NtermsBand < 0 {
		return nil, nil, ErrInvalidNterms
	}
	if cfg.NtermsBase == 0 && cfg.NtermsBand == 0 && !cfg.FitMean {
		return nil, nil, ErrEmptyModel
	}
	if !(cfg.Normalization >= lombscargle.NormStandard && cfg.Normalization <= lombscargle.NormPSD) {
		return nil, nil, ErrInvalidNormalization
	}
	for _, dy := range uncertainties {
		if !(dy > 0) {
			return nil, nil, ErrInvalidUncertainty
		}
	}
	if len(freqs) == 0 {
		return nil, nil, ErrInvalidFrequency
	}
	prev := 0.0
	for _, f := range freqs {
		if !(f > prev) {
			return nil, nil, ErrInvalidFrequency
		}
		prev = f
	}

	w := make([]float64, n)
	if uncertainties == nil {
		for i := range w {
			w[i] = 1
		}
	} else {
		for i, dy := range uncertainties {
			w[i] = 1 / (dy * dy)
		}
	}
	reg := newRegistry(bands, values, w)

	nCols := cfg.nCols(reg.nBands())
	if nCols > n {
		return nil, nil, ErrUnderdetermined
	}
	perBandCols := cfg.nLocalCols() + cfg.nSharedCols()
	for _, c := range reg.count {
		if c < perBandCols {
			return nil, nil, ErrUnderdetermined
		}
	}
	if r := cfg.Regularization; r != nil && len(r) != 1 && len(r) != nCols {
		return nil, nil, ErrInvalidRegularizer
	}
	return w, reg, nil
}
