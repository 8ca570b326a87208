package multiband

import (
	"math"
)

// assembler builds the weighted joint design matrix for one trial
// frequency. The column layout is fixed once from the band registry:
//
//	[ sin(wt) cos(wt) ... sin(Kwt) cos(Kwt) | band0 block | band1 block | ... ]
//
// with K = NtermsBase shared harmonic columns on the left and one block
// per band in registry order. Each block holds an offset column (when
// FitMean) followed by the band-local sin/cos pairs, and is zero on
// every row belonging to a different band. All columns are scaled by
// 1/uncertainty, so the downstream solve minimizes the heteroscedastic
// chi-square.
//
// Column buffers are owned by the assembler and reused across
// frequencies; each parallel worker gets its own assembler.
type assembler struct {
	times []float64
	invdy []float64
	band  []int

	ntermsBase int
	ntermsBand int
	fitMean    bool
	nBands     int

	cols [][]float64
}

func newAssembler(times, w []float64, reg *registry, cfg Config) *assembler {
	a := &assembler{
		times:      times,
		band:       reg.idx,
		ntermsBase: cfg.NtermsBase,
		ntermsBand: cfg.NtermsBand,
		fitMean:    cfg.FitMean,
		nBands:     reg.nBands(),
	}
	a.invdy = make([]float64, len(w))
	for i, v := range w {
		a.invdy[i] = math.Sqrt(v)
	}
	a.cols = make([][]float64, cfg.nCols(a.nBands))
	for j := range a.cols {
		a.cols[j] = make([]float64, len(times))
	}
	return a
}

// fill populates the column buffers for one trial frequency and returns
// them. The returned slices remain owned by the assembler.
func (a *assembler) fill(freq float64) [][]float64 {
	omega := 2 * math.Pi * freq

	j := 0
	for term := 1; term <= a.ntermsBase; term++ {
		sinCol, cosCol := a.cols[j], a.cols[j+1]
		k := float64(term) * omega
		for i, t := range a.times {
			s, c := math.Sincos(k * t)
			sinCol[i] = s * a.invdy[i]
			cosCol[i] = c * a.invdy[i]
		}
		j += 2
	}

	// Band-local blocks: zero everything, then write only the rows that
	// belong to each column's band.
	for _, col := range a.cols[j:] {
		for i := range col {
			col[i] = 0
		}
	}
	local := 2 * a.ntermsBand
	if a.fitMean {
		local++
	}
	for i, t := range a.times {
		off := j + a.band[i]*local
		if a.fitMean {
			a.cols[off][i] = a.invdy[i]
			off++
		}
		for term := 1; term <= a.ntermsBand; term++ {
			s, c := math.Sincos(float64(term) * omega * t)
			a.cols[off][i] = s * a.invdy[i]
			a.cols[off+1][i] = c * a.invdy[i]
			off += 2
		}
	}
	return a.cols
}

// DesignMatrix returns the weighted joint design matrix at one trial
// frequency, column-wise, together with the band labels defining the
// block order. It exists for callers that reconstruct model curves or
// inspect the column structure; Power does not retain matrices between
// frequencies.
func DesignMatrix(times, uncertainties []float64, bands []string, freq float64, cfg Config) ([][]float64, []string, error) {
	w, reg, err := validate(times, make([]float64, len(times)), uncertainties, bands, []float64{freq}, cfg)
	if err != nil {
		return nil, nil, err
	}
	a := newAssembler(times, w, reg, cfg)
	cols := a.fill(freq)
	out := make([][]float64, len(cols))
	for j, c := range cols {
		out[j] = append([]float64(nil), c...)
	}
	return out, append([]string(nil), reg.labels...), nil
}

// basisAt evaluates the unweighted model basis for one band at a single
// time: the shared harmonics followed by the band's offset and local
// harmonics, matching the coefficient layout of the flexible strategy.
func basisAt(t, omega float64, bandIndex int, cfg Config, nBands int) []float64 {
	out := make([]float64, cfg.nCols(nBands))
	j := 0
	for term := 1; term <= cfg.NtermsBase; term++ {
		s, c := math.Sincos(float64(term) * omega * t)
		out[j] = s
		out[j+1] = c
		j += 2
	}
	off := j + bandIndex*cfg.nLocalCols()
	if cfg.FitMean {
		out[off] = 1
		off++
	}
	for term := 1; term <= cfg.NtermsBand; term++ {
		s, c := math.Sincos(float64(term) * omega * t)
		out[off] = s
		out[off+1] = c
		off += 2
	}
	return out
}
