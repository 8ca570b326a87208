package lombscargle

import (
	"errors"
	"math"
	"testing"
)

func TestAutoFrequencyDefaults(t *testing.T) {
	times := irregularTimes(100, 40, 30)

	freqs, err := AutoFrequency(times, GridConfig{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(freqs) < 2 {
		t.Fatalf("grid too small: %d points", len(freqs))
	}

	baseline := times[len(times)-1] - times[0]
	df := freqs[1] - freqs[0]
	wantDF := 1 / (baseline * defaultSamplesPerPeak)
	if math.Abs(df-wantDF) > 1e-12 {
		t.Fatalf("grid step mismatch: got %g want %g", df, wantDF)
	}
	if math.Abs(freqs[0]-0.5*df) > 1e-12 {
		t.Fatalf("grid should start at df/2: got %g", freqs[0])
	}

	wantMax := defaultNyquistFactor * 0.5 * float64(len(times)) / baseline
	last := freqs[len(freqs)-1]
	if math.Abs(last-wantMax) > df {
		t.Fatalf("grid should end near %g, got %g", wantMax, last)
	}
	if !uniformGrid(freqs) {
		t.Fatal("auto grid must be uniform")
	}
}

func TestAutoFrequencyExplicitLimits(t *testing.T) {
	times := []float64{0, 3, 7, 10}
	cfg := GridConfig{MinFrequency: 0.2, MaxFrequency: 1.2, SamplesPerPeak: 10}

	freqs, err := AutoFrequency(times, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if freqs[0] != 0.2 {
		t.Fatalf("grid should start at the requested minimum: got %g", freqs[0])
	}
	last := freqs[len(freqs)-1]
	if last < 1.2-(freqs[1]-freqs[0]) || last > 1.2+(freqs[1]-freqs[0]) {
		t.Fatalf("grid should end near the requested maximum: got %g", last)
	}
}

func TestAutoFrequencyErrors(t *testing.T) {
	if _, err := AutoFrequency([]float64{1}, GridConfig{}); !errors.Is(err, ErrShortBaseline) {
		t.Fatalf("expected ErrShortBaseline, got %v", err)
	}
	if _, err := AutoFrequency([]float64{2, 2, 2}, GridConfig{}); !errors.Is(err, ErrShortBaseline) {
		t.Fatalf("expected ErrShortBaseline for a zero baseline, got %v", err)
	}
	cfg := GridConfig{MinFrequency: 2, MaxFrequency: 1}
	if _, err := AutoFrequency([]float64{0, 1, 2}, cfg); !errors.Is(err, ErrInvalidGrid) {
		t.Fatalf("expected ErrInvalidGrid, got %v", err)
	}
}

func TestFindPeakRefinesBetweenSamples(t *testing.T) {
	// Sample a parabola with vertex at x = 2.3.
	freqs := []float64{1, 2, 3, 4, 5}
	power := make([]float64, len(freqs))
	for i, f := range freqs {
		power[i] = 10 - (f-2.3)*(f-2.3)
	}

	f, p, err := FindPeak(freqs, power)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(f-2.3) > 1e-12 {
		t.Fatalf("refined peak frequency mismatch: got %g want 2.3", f)
	}
	if p < power[1] {
		t.Fatalf("refined peak value should not fall below the grid maximum: %g", p)
	}
}

func TestFindPeakSkipsNaN(t *testing.T) {
	freqs := []float64{1, 2, 3, 4}
	power := []float64{math.NaN(), 5, math.NaN(), 2}

	f, p, err := FindPeak(freqs, power)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f != 2 || p != 5 {
		t.Fatalf("expected the finite maximum at f=2, got f=%g p=%g", f, p)
	}

	allNaN := []float64{math.NaN(), math.NaN()}
	if _, _, err := FindPeak(freqs[:2], allNaN); !errors.Is(err, ErrNoPeak) {
		t.Fatalf("expected ErrNoPeak, got %v", err)
	}
}

func TestFindPeakEdgeBin(t *testing.T) {
	freqs := []float64{1, 2, 3}
	power := []float64{9, 5, 1}

	f, p, err := FindPeak(freqs, power)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f != 1 || p != 9 {
		t.Fatalf("an edge maximum must be returned unrefined: f=%g p=%g", f, p)
	}
}
