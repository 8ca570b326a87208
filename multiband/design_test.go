package multiband

import (
	"errors"
	"math"
	"testing"
)

func TestDesignMatrixStructure(t *testing.T) {
	const n = 16
	times := make([]float64, n)
	bands := make([]string, n)
	dy := make([]float64, n)
	for i := range times {
		times[i] = 0.5 * float64(i)
		if i%2 == 0 {
			bands[i], dy[i] = "g", 0.1
		} else {
			bands[i], dy[i] = "r", 0.2
		}
	}
	const freq = 0.35

	cfg := DefaultConfig()
	cfg.NtermsBase = 2
	cfg.NtermsBand = 1

	cols, labels, err := DesignMatrix(times, dy, bands, freq, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantCols := cfg.nCols(2) // 2*2 shared + 2*(1 + 2*1) band-local
	if len(cols) != wantCols {
		t.Fatalf("column count mismatch: got %d want %d", len(cols), wantCols)
	}
	if len(labels) != 2 || labels[0] != "g" || labels[1] != "r" {
		t.Fatalf("band order must be first-seen: got %v", labels)
	}

	omega := 2 * math.Pi * freq
	for i, tt := range times {
		invdy := 1 / dy[i]

		// Shared harmonic columns cover every row.
		for term := 1; term <= cfg.NtermsBase; term++ {
			s, c := math.Sincos(float64(term) * omega * tt)
			j := 2 * (term - 1)
			if math.Abs(cols[j][i]-s*invdy) > 1e-12 {
				t.Fatalf("shared sine column %d wrong at row %d", j, i)
			}
			if math.Abs(cols[j+1][i]-c*invdy) > 1e-12 {
				t.Fatalf("shared cosine column %d wrong at row %d", j+1, i)
			}
		}

		// Band blocks are zero outside their own band's rows.
		shared := cfg.nSharedCols()
		local := cfg.nLocalCols()
		for b := 0; b < 2; b++ {
			inBand := bands[i] == labels[b]
			off := shared + b*local
			if inBand {
				if math.Abs(cols[off][i]-invdy) > 1e-12 {
					t.Fatalf("offset column for band %q wrong at row %d", labels[b], i)
				}
				continue
			}
			for j := off; j < off+local; j++ {
				if cols[j][i] != 0 {
					t.Fatalf("band %q column %d must be zero at row %d (band %q)",
						labels[b], j, i, bands[i])
				}
			}
		}
	}
}

func TestDesignMatrixColumnCounts(t *testing.T) {
	cases := []struct {
		base, band int
		fitMean    bool
		nBands     int
		want       int
	}{
		{1, 1, true, 2, 8},
		{1, 0, true, 3, 5},
		{2, 1, false, 2, 8},
		{0, 1, true, 1, 3},
	}
	for _, tc := range cases {
		cfg := Config{NtermsBase: tc.base, NtermsBand: tc.band, FitMean: tc.fitMean}
		if got := cfg.nCols(tc.nBands); got != tc.want {
			t.Fatalf("nCols(base=%d band=%d fitMean=%v bands=%d) = %d, want %d",
				tc.base, tc.band, tc.fitMean, tc.nBands, got, tc.want)
		}
	}
}

func TestModelCurveReconstructsNoiselessSignal(t *testing.T) {
	const freq = 0.4
	times := make([]float64, 0, 60)
	values := make([]float64, 0, 60)
	bands := make([]string, 0, 60)
	amp := map[string]float64{"g": 2.0, "r": 0.5}
	offset := map[string]float64{"g": 10.0, "r": 5.0}
	for i := 0; i < 30; i++ {
		t0 := 0.37 * float64(i)
		for _, b := range []string{"g", "r"} {
			times = append(times, t0)
			values = append(values, offset[b]+amp[b]*math.Sin(2*math.Pi*freq*t0))
			bands = append(bands, b)
		}
	}
	freqs := []float64{0.3, freq, 0.5}

	cfg := DefaultConfig()
	cfg.WithCoefficients = true
	res, err := Power(times, values, nil, bands, freqs, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The recorded coefficients at the true frequency must reproduce each
	// band's centered observations.
	reg := newRegistry(bands, values, onesLike(times))
	for b, label := range res.Bands {
		curve, err := res.ModelCurve(1, label, times)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i := range times {
			if bands[i] != label {
				continue
			}
			want := values[i] - reg.mean[b]
			if math.Abs(curve[i]-want) > 1e-4 {
				t.Fatalf("band %q curve mismatch at %d: got %g want %g",
					label, i, curve[i], want)
			}
		}
	}
}

func TestModelCurveErrors(t *testing.T) {
	times, values, dy, bands := twoBandSeries(20, 1.0, 0.1, 8)
	freqs := []float64{0.5, 1.0}

	cfg := DefaultConfig()
	res, err := Power(times, values, dy, bands, freqs, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := res.ModelCurve(0, "g", times); !errors.Is(err, ErrNoCoefficients) {
		t.Fatalf("expected ErrNoCoefficients without WithCoefficients, got %v", err)
	}

	cfg.WithCoefficients = true
	res, err = Power(times, values, dy, bands, freqs, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := res.ModelCurve(0, "nope", times); !errors.Is(err, ErrUnknownBand) {
		t.Fatalf("expected ErrUnknownBand, got %v", err)
	}
	if _, err := res.ModelCurve(99, "g", times); !errors.Is(err, ErrNoCoefficients) {
		t.Fatalf("expected ErrNoCoefficients for an out-of-range index, got %v", err)
	}
}

func onesLike(x []float64) []float64 {
	out := make([]float64, len(x))
	for i := range out {
		out[i] = 1
	}
	return out
}
