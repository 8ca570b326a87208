package lombscargle

import "math"

// Normalization selects the scale of the returned periodogram power.
type Normalization int

const (
	// NormStandard normalizes power to [0, 1]:
	// power = 1 - chi2_model/chi2_ref.
	NormStandard Normalization = iota

	// NormModel normalizes power by the model chi-square:
	// power = (chi2_ref - chi2_model)/chi2_model.
	NormModel

	// NormLog is the logarithmic scale: power = -ln(chi2_model/chi2_ref).
	NormLog

	// NormPSD is the unnormalized scale proportional to the power
	// spectral density: power = (chi2_ref - chi2_model)/2.
	NormPSD
)

// String returns a human-readable name for the normalization.
func (n Normalization) String() string {
	switch n {
	case NormStandard:
		return "standard"
	case NormModel:
		return "model"
	case NormLog:
		return "log"
	case NormPSD:
		return "psd"
	default:
		return "unknown"
	}
}

func (n Normalization) valid() bool {
	return n >= NormStandard && n <= NormPSD
}

// NormalizePower converts a raw chi-square reduction into periodogram
// power on the requested scale.
//
// raw is chi2_ref - chi2_model at one frequency and chi2Ref is the
// chi-square of the mean-only reference model, both in absolute
// (1/uncertainty**2 weighted) units. NaN propagates unchanged, so
// frequencies marked invalid by the solver stay invalid after
// normalization.
//
// The multiband engine shares this function, which pins its power scales
// to the single-band definitions.
func NormalizePower(raw, chi2Ref float64, norm Normalization) float64 {
	if math.IsNaN(raw) {
		return raw
	}
	switch norm {
	case NormModel:
		return raw / (chi2Ref - raw)
	case NormLog:
		return -math.Log(1 - raw/chi2Ref)
	case NormPSD:
		return 0.5 * raw
	default:
		return raw / chi2Ref
	}
}
