// Package tensor provides the public API for the engine's dense 2-D
// float32 matrix and its algebra.
//
// Example:
//
//	x := tensor.FromSlice(1, 2, []float32{3, 4})
//	w := tensor.New(2, 3)
//	y := x.MatMul(w) // 1x3
package tensor

import (
	"github.com/sprout-ml/sprout/internal/tensor"
)

// Tensor is a dense 2-D matrix of float32 values in row-major layout.
type Tensor = tensor.Tensor

// New creates a zero-filled rows×cols tensor.
func New(rows, cols int) *Tensor {
	return tensor.New(rows, cols)
}

// Vector creates a zero-filled 1×size tensor.
func Vector(size int) *Tensor {
	return tensor.Vector(size)
}

// FromSlice creates a rows×cols tensor that copies data.
func FromSlice(rows, cols int, data []float32) *Tensor {
	return tensor.FromSlice(rows, cols, data)
}

// Wrap creates a rows×cols tensor view over data without copying.
func Wrap(rows, cols int, data []float32) *Tensor {
	return tensor.Wrap(rows, cols, data)
}
