package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestFloat64MatrixGet(t *testing.T) {
	m := NewFloat64Matrix(uint32(2), uint32(3))

	val := 0.0
	for r := 0; r < 2; r += 1 {
		for c := 0; c < 3; c += 1 {
			m.Set(uint32(r), uint32(c), val)
			val += 1.0
		}
	}

	assert.Equal(t, 0.0, m.Get(0, 0))
	assert.Equal(t, 2.0, m.Get(0, 2))
	assert.Equal(t, 4.0, m.Get(1, 1))
	assert.Equal(t, []float64{3, 4, 5}, m.GetRow(1))
	assert.Equal(t, []float64{2, 5}, m.GetCol(2))
}

func TestFloat64MatrixRowView(t *testing.T) {
	m := NewFloat64Matrix(uint32(2), uint32(2))
	m.Fill(0.5)

	row := m.RowView(1)
	row[0] = 0.25
	assert.Equal(t, 0.25, m.Get(1, 0))
	assert.Len(t, row, 2)

	clone := m.Clone()
	clone.Set(1, 0, 1.0)
	assert.Equal(t, 0.25, m.Get(1, 0))
}

func TestFloat64MatrixGonum(t *testing.T) {
	m := NewFloat64Matrix(uint32(2), uint32(3))
	m.Set(0, 1, 2.0)
	m.Set(1, 2, 3.0)

	r, c := m.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)

	d := mat.DenseCopyOf(m)
	assert.Equal(t, 2.0, d.At(0, 1))
	assert.Equal(t, 3.0, m.T().At(2, 1))
	assert.Equal(t, 5.0, mat.Sum(m))
}
