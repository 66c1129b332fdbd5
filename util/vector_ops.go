package util

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// sum the vector, widened so that a total of uint32 counts cannot wrap
func VectorSum(data []uint32) uint64 {
	sum := uint64(0)
	for _, d := range data {
		sum += uint64(d)
	}
	return sum
}

// LogNormalize turns the unnormalized log weights in logs into a
// probability vector stored in dst, using log-sum-exp so that very
// small weights do not underflow before normalization. It returns the
// log normalizer, which is -Inf when every weight is -Inf; dst is left
// untouched in that case.
func LogNormalize(dst, logs []float64) float64 {
	if len(dst) != len(logs) {
		panic("util: slice length mismatch")
	}
	lse := floats.LogSumExp(logs)
	if math.IsInf(lse, -1) || math.IsNaN(lse) {
		return lse
	}
	for i, l := range logs {
		dst[i] = math.Exp(l - lse)
	}
	return lse
}

// MaxAbsDiff returns max_i |a_i - b_i|.
func MaxAbsDiff(a, b []float64) float64 {
	return floats.Distance(a, b, math.Inf(1))
}
