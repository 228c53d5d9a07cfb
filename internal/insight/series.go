package insight

import "lunara/internal/types"

// Series extraction helpers. Each returns a float64 view over one field of
// the record snapshot, preserving chronological order. The snapshot itself
// is never mutated.

func hotFlashSeries(records []types.SymptomRecord) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = float64(r.HotFlashCount)
	}
	return out
}

func sleepSeries(records []types.SymptomRecord) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = float64(r.SleepQuality)
	}
	return out
}

func moodSeries(records []types.SymptomRecord) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = float64(r.MoodOverall)
	}
	return out
}

func energySeries(records []types.SymptomRecord) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = float64(r.EnergyLevel)
	}
	return out
}

// lastN returns the trailing n elements of xs, or all of xs when shorter.
func lastN(xs []float64, n int) []float64 {
	if len(xs) <= n {
		return xs
	}
	return xs[len(xs)-n:]
}

// windowBefore returns up to n elements immediately preceding the trailing
// n-element window. Empty when the series does not extend past the tail.
func windowBefore(xs []float64, n int) []float64 {
	tail := len(xs) - n
	if tail <= 0 {
		return nil
	}
	start := tail - n
	if start < 0 {
		start = 0
	}
	return xs[start:tail]
}
