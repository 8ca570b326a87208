package multiband

// registry resolves band labels to contiguous integer indices in
// first-seen order and accumulates the per-band statistics both
// strategies need. The index order defines the column ordering of the
// joint design matrix and the band order of Result.Bands, and is stable
// across repeated calls with the same input.
type registry struct {
	labels []string
	lookup map[string]int

	// idx holds the resolved band index of every observation.
	idx []int

	count  []int     // observations per band
	weight []float64 // sum of 1/uncertainty^2 per band
	mean   []float64 // weighted mean value per band
}

func newRegistry(bands []string, values, w []float64) *registry {
	r := &registry{
		lookup: make(map[string]int),
		idx:    make([]int, len(bands)),
	}
	for i, label := range bands {
		j, ok := r.lookup[label]
		if !ok {
			j = len(r.labels)
			r.lookup[label] = j
			r.labels = append(r.labels, label)
			r.count = append(r.count, 0)
			r.weight = append(r.weight, 0)
			r.mean = append(r.mean, 0)
		}
		r.idx[i] = j
		r.count[j]++
		r.weight[j] += w[i]
		r.mean[j] += w[i] * values[i]
	}
	for j := range r.mean {
		r.mean[j] /= r.weight[j]
	}
	return r
}

func (r *registry) nBands() int { return len(r.labels) }

// bandSlices returns the observation indices of each band, in
// registry order.
func (r *registry) bandSlices() [][]int {
	out := make([][]int, r.nBands())
	for j, c := range r.count {
		out[j] = make([]int, 0, c)
	}
	for i, j := range r.idx {
		out[j] = append(out[j], i)
	}
	return out
}
