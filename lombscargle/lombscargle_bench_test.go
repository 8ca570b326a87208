package lombscargle

import (
	"strconv"
	"testing"
)

func BenchmarkPowerChi2(b *testing.B) {
	sizes := []int{100, 400, 1600}
	for _, n := range sizes {
		b.Run("n_"+strconv.Itoa(n), func(b *testing.B) {
			times := irregularTimes(n, float64(n)/4, 40)
			values := sinusoid(times, 1.0, 1.0, 0, 0.2, 41)
			freqs := uniformFreqs(0.1, 0.01, 500)

			cfg := DefaultConfig()
			cfg.Method = MethodChi2

			b.ReportAllocs()
			b.ResetTimer()

			for range b.N {
				_, _ = Power(times, values, nil, freqs, cfg)
			}
		})
	}
}

func BenchmarkPowerFast(b *testing.B) {
	sizes := []int{100, 400, 1600}
	for _, n := range sizes {
		b.Run("n_"+strconv.Itoa(n), func(b *testing.B) {
			times := irregularTimes(n, float64(n)/4, 42)
			values := sinusoid(times, 1.0, 1.0, 0, 0.2, 43)
			freqs := uniformFreqs(0.1, 0.01, 500)

			cfg := DefaultConfig()
			cfg.Method = MethodFast

			b.ReportAllocs()
			b.ResetTimer()

			for range b.N {
				_, _ = Power(times, values, nil, freqs, cfg)
			}
		})
	}
}

func BenchmarkTrigSum(b *testing.B) {
	times := irregularTimes(1000, 250, 44)
	h := sinusoid(times, 1.0, 1.0, 0, 0.2, 45)

	b.ReportAllocs()
	b.ResetTimer()

	for range b.N {
		_, _, _ = trigSum(times, h, 0.01, 0.1, 2000, 1)
	}
}
