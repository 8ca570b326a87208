package multiband

import (
	"math"
	"reflect"
	"testing"
)

func TestRegistryFirstSeenOrder(t *testing.T) {
	bands := []string{"r", "g", "r", "i", "g", "r"}
	values := []float64{1, 2, 3, 4, 5, 6}
	w := onesLike(values)

	reg := newRegistry(bands, values, w)
	if !reflect.DeepEqual(reg.labels, []string{"r", "g", "i"}) {
		t.Fatalf("labels must follow first-seen order: got %v", reg.labels)
	}
	if !reflect.DeepEqual(reg.count, []int{3, 2, 1}) {
		t.Fatalf("per-band counts wrong: got %v", reg.count)
	}
	if !reflect.DeepEqual(reg.idx, []int{0, 1, 0, 2, 1, 0}) {
		t.Fatalf("observation indices wrong: got %v", reg.idx)
	}
}

func TestRegistryWeightedMeans(t *testing.T) {
	bands := []string{"a", "a", "b"}
	values := []float64{1, 3, 5}
	w := []float64{1, 3, 2}

	reg := newRegistry(bands, values, w)
	if math.Abs(reg.mean[0]-2.5) > 1e-12 {
		t.Fatalf("band a weighted mean: got %g want 2.5", reg.mean[0])
	}
	if math.Abs(reg.mean[1]-5) > 1e-12 {
		t.Fatalf("band b weighted mean: got %g want 5", reg.mean[1])
	}
	if math.Abs(reg.weight[0]-4) > 1e-12 || math.Abs(reg.weight[1]-2) > 1e-12 {
		t.Fatalf("band weights wrong: got %v", reg.weight)
	}
}

func TestBandSlicesPartitionObservations(t *testing.T) {
	bands := []string{"x", "y", "x", "x", "y"}
	values := make([]float64, len(bands))
	reg := newRegistry(bands, values, onesLike(values))

	slices := reg.bandSlices()
	if !reflect.DeepEqual(slices[0], []int{0, 2, 3}) {
		t.Fatalf("band x slice wrong: got %v", slices[0])
	}
	if !reflect.DeepEqual(slices[1], []int{1, 4}) {
		t.Fatalf("band y slice wrong: got %v", slices[1])
	}
}
