package util

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVectorSum(t *testing.T) {
	assert.Equal(t, uint64(12), VectorSum([]uint32{3, 4, 5}))
	assert.Equal(t, uint64(0), VectorSum(nil))
	assert.Equal(t, uint64(math.MaxUint32)+1, VectorSum([]uint32{math.MaxUint32, 1}))
}

func TestLogNormalize(t *testing.T) {
	dst := make([]float64, 3)
	lse := LogNormalize(dst, []float64{math.Log(1), math.Log(2), math.Log(1)})

	assert.InDelta(t, math.Log(4), lse, 1e-12)
	assert.InDeltaSlice(t, []float64{0.25, 0.5, 0.25}, dst, 1e-12)
}

func TestLogNormalizeNoUnderflow(t *testing.T) {
	// exp(-1000) underflows to zero in linear space
	dst := make([]float64, 2)
	LogNormalize(dst, []float64{-1000, -1000 + math.Log(3)})

	assert.InDelta(t, 0.25, dst[0], 1e-12)
	assert.InDelta(t, 0.75, dst[1], 1e-12)
}

func TestLogNormalizeAllZero(t *testing.T) {
	dst := []float64{0.5, 0.5}
	lse := LogNormalize(dst, []float64{math.Inf(-1), math.Inf(-1)})

	assert.True(t, math.IsInf(lse, -1))
	assert.Equal(t, []float64{0.5, 0.5}, dst)
}

func TestMaxAbsDiff(t *testing.T) {
	assert.Equal(t, 3.0, MaxAbsDiff([]float64{1, 5, 2}, []float64{2, 2, 2}))
	assert.Equal(t, 0.0, MaxAbsDiff([]float64{1}, []float64{1}))
}
