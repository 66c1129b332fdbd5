package matrix

import "gonum.org/v1/gonum/mat"

// internal Float64 matrix representation
type Float64Matrix struct {
	nrow uint32
	ncol uint32
	data []float64
}

// NewFloat64Matrix creates a new Float64Matrix with r rows and c columns.
// The layout is row major like Uint32Matrix, so a row can be handed out
// as a slice of the underlying storage without copying. It satisfies
// mat.Matrix which lets gonum routines and the sstable writer read it.
func NewFloat64Matrix(r, c uint32) *Float64Matrix {
	if r == 0 || c == 0 {
		panic(ErrBadShape)
	}
	return &Float64Matrix{
		nrow: r,
		ncol: c,
		data: make([]float64, int(r)*int(c)),
	}
}

// get the shape of the matrix
func (m *Float64Matrix) Shape() (uint32, uint32) {
	return m.nrow, m.ncol
}

// get the [r, c]-th element of the matrix
func (m *Float64Matrix) Get(r, c uint32) float64 {
	if r >= m.nrow || c >= m.ncol {
		panic(ErrIndexOutOfRange)
	}
	return m.data[r*m.ncol+c]
}

// set val to the [r, c]-th element of the matrix
func (m *Float64Matrix) Set(r, c uint32, val float64) {
	if r >= m.nrow || c >= m.ncol {
		panic(ErrIndexOutOfRange)
	}
	m.data[r*m.ncol+c] = val
}

// fill every element with val
func (m *Float64Matrix) Fill(val float64) {
	for i := range m.data {
		m.data[i] = val
	}
}

// RowView returns the r-th row backed by the matrix storage,
// writes to the returned slice modify the matrix.
func (m *Float64Matrix) RowView(r uint32) []float64 {
	if r >= m.nrow {
		panic(ErrIndexOutOfRange)
	}
	return m.data[r*m.ncol : (r+1)*m.ncol : (r+1)*m.ncol]
}

// get a copy of the r-th row of the matrix
func (m *Float64Matrix) GetRow(r uint32) []float64 {
	row := make([]float64, m.ncol)
	copy(row, m.RowView(r))
	return row
}

// get a copy of the c-th column of the matrix
func (m *Float64Matrix) GetCol(c uint32) []float64 {
	if c >= m.ncol {
		panic(ErrIndexOutOfRange)
	}

	column := make([]float64, m.nrow)
	for r := uint32(0); r < m.nrow; r += 1 {
		column[r] = m.data[r*m.ncol+c]
	}
	return column
}

// Clone returns a deep copy of the matrix.
func (m *Float64Matrix) Clone() *Float64Matrix {
	data := make([]float64, len(m.data))
	copy(data, m.data)
	return &Float64Matrix{nrow: m.nrow, ncol: m.ncol, data: data}
}

// Dims implements mat.Matrix.
func (m *Float64Matrix) Dims() (int, int) {
	return int(m.nrow), int(m.ncol)
}

// At implements mat.Matrix.
func (m *Float64Matrix) At(i, j int) float64 {
	if i < 0 || j < 0 {
		panic(ErrIndexOutOfRange)
	}
	return m.Get(uint32(i), uint32(j))
}

// T implements mat.Matrix.
func (m *Float64Matrix) T() mat.Matrix {
	return mat.Transpose{Matrix: m}
}
