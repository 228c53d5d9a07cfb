package insight

import "math"

// Correlate computes the Pearson linear correlation coefficient between two
// equal-length numeric sequences. It is deliberately total: mismatched
// lengths, empty input, zero variance, and NaN values all yield 0 (neutral,
// no signal) rather than an error, because a missing insight is acceptable
// where a crash is not. The result is clamped to [-1, 1].
func Correlate(x, y []float64) float64 {
	n := len(x)
	if n == 0 || n != len(y) {
		return 0
	}

	var sumX, sumY float64
	for i := 0; i < n; i++ {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			return 0
		}
		sumX += x[i]
		sumY += y[i]
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var cov, varX, varY float64
	for i := 0; i < n; i++ {
		dx := x[i] - meanX
		dy := y[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	if varX == 0 || varY == 0 {
		return 0
	}

	r := cov / math.Sqrt(varX*varY)
	return clampCorrelation(r)
}

// clampCorrelation bounds r to [-1, 1]. Floating-point rounding can push a
// perfect correlation marginally past 1.
func clampCorrelation(r float64) float64 {
	switch {
	case math.IsNaN(r):
		return 0
	case r > 1:
		return 1
	case r < -1:
		return -1
	default:
		return r
	}
}

// mean returns the arithmetic mean of xs, or 0 for an empty slice.
func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, v := range xs {
		sum += v
	}
	return sum / float64(len(xs))
}

// sampleVariance returns the sample variance of xs (n-1 denominator), or 0
// for fewer than two values.
func sampleVariance(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	var ss float64
	for _, v := range xs {
		d := v - m
		ss += d * d
	}
	return ss / float64(len(xs)-1)
}

// clampPercent bounds an integer percentage or score to [0, 100].
func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// roundToInt rounds half away from zero, matching math.Round semantics.
func roundToInt(v float64) int {
	return int(math.Round(v))
}
