// Package tensor provides the dense 2-D float32 matrix that backs every
// component of the training engine.
//
// A Tensor is a flat row-major buffer with explicit row/column dimensions.
// A 1-row tensor doubles as a vector view. All algebra lives on the type
// itself (MatMul, Transpose, AddBias, Argmax); dimension mismatches are
// programming errors and panic.
package tensor

import "fmt"

// Tensor is a dense 2-D matrix of float32 values in row-major layout.
//
// The invariant len(data) == rows*cols holds for every constructed Tensor.
// Indexing is bounds-implicit: At and Set trust the caller to respect the
// dimensions, exactly like raw slice indexing.
type Tensor struct {
	rows int
	cols int
	data []float32
}

// New creates a zero-filled rows×cols tensor.
func New(rows, cols int) *Tensor {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("tensor: invalid shape %dx%d", rows, cols))
	}
	return &Tensor{
		rows: rows,
		cols: cols,
		data: make([]float32, rows*cols),
	}
}

// Vector creates a zero-filled 1×size tensor, the vector view used for
// single-example inputs and bias buffers.
func Vector(size int) *Tensor {
	return New(1, size)
}

// FromSlice creates a rows×cols tensor that copies data.
func FromSlice(rows, cols int, data []float32) *Tensor {
	if len(data) != rows*cols {
		panic(fmt.Sprintf("tensor: shape %dx%d requires %d elements, got %d",
			rows, cols, rows*cols, len(data)))
	}
	t := New(rows, cols)
	copy(t.data, data)
	return t
}

// Wrap creates a rows×cols tensor view over data without copying.
// Mutations through the view are visible to the owner of the slice; this is
// how layer parameters participate in the matrix algebra.
func Wrap(rows, cols int, data []float32) *Tensor {
	if len(data) != rows*cols {
		panic(fmt.Sprintf("tensor: shape %dx%d requires %d elements, got %d",
			rows, cols, rows*cols, len(data)))
	}
	return &Tensor{rows: rows, cols: cols, data: data}
}

// Rows returns the number of rows.
func (t *Tensor) Rows() int { return t.rows }

// Cols returns the number of columns.
func (t *Tensor) Cols() int { return t.cols }

// NumElements returns rows*cols.
func (t *Tensor) NumElements() int { return t.rows * t.cols }

// Data returns the underlying buffer. The slice aliases the tensor's
// memory: writes through it mutate the tensor.
func (t *Tensor) Data() []float32 { return t.data }

// At returns the element at row r, column c.
func (t *Tensor) At(r, c int) float32 {
	return t.data[r*t.cols+c]
}

// Set stores v at row r, column c.
func (t *Tensor) Set(r, c int, v float32) {
	t.data[r*t.cols+c] = v
}

// Clone returns a deep copy.
func (t *Tensor) Clone() *Tensor {
	c := New(t.rows, t.cols)
	copy(c.data, t.data)
	return c
}

// SameShape reports whether t and other have identical dimensions.
func (t *Tensor) SameShape(other *Tensor) bool {
	return t.rows == other.rows && t.cols == other.cols
}

// String renders the tensor for debugging.
func (t *Tensor) String() string {
	return fmt.Sprintf("Tensor(%dx%d)%v", t.rows, t.cols, t.data)
}
