package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUint32MatrixShape(t *testing.T) {
	m := NewUint32Matrix(uint32(2), uint32(3))

	r, c := m.Shape()

	assert.Equal(t, uint32(2), r)
	assert.Equal(t, uint32(3), c)
}

func TestUint32MatrixBadShape(t *testing.T) {
	assert.PanicsWithValue(t, ErrBadShape, func() { NewUint32Matrix(0, 3) })
}

func TestUint32MatrixRowCol(t *testing.T) {
	m := NewUint32Matrix(uint32(2), uint32(3))

	val := uint32(0)
	for r := 0; r < 2; r += 1 {
		for c := 0; c < 3; c += 1 {
			m.Set(uint32(r), uint32(c), val)
			val += 1
		}
	}

	assert.Equal(t, []uint32{3, 4, 5}, m.GetRow(1))
	assert.Equal(t, []uint32{1, 4}, m.GetCol(1))

	// returned slices are copies
	col := m.GetCol(0)
	col[0] = 100
	assert.Equal(t, uint32(0), m.Get(0, 0))

	assert.PanicsWithValue(t, ErrIndexOutOfRange, func() { m.Get(2, 0) })
}

func TestUint32MatrixIncr(t *testing.T) {
	m := NewUint32Matrix(uint32(2), uint32(2))

	m.Incr(uint32(1), uint32(1), uint32(2))
	m.Incr(uint32(1), uint32(1), uint32(3))
	assert.Equal(t, uint32(5), m.Get(uint32(1), uint32(1)))
	assert.Equal(t, uint32(0), m.Get(uint32(0), uint32(1)))

	assert.PanicsWithValue(t, ErrIndexOutOfRange, func() { m.Incr(2, 0, 1) })
}
