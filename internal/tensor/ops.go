package tensor

import "fmt"

// MatMul computes t @ other and returns a new tensor.
//
// Requires t.Cols() == other.Rows(); the result has shape
// (t.Rows(), other.Cols()). No NaN/Inf checking is performed: non-finite
// inputs propagate through the dot products.
func (t *Tensor) MatMul(other *Tensor) *Tensor {
	if t.cols != other.rows {
		panic(fmt.Sprintf("tensor: matmul shape mismatch %dx%d @ %dx%d",
			t.rows, t.cols, other.rows, other.cols))
	}

	out := New(t.rows, other.cols)
	for i := 0; i < t.rows; i++ {
		for j := 0; j < other.cols; j++ {
			var sum float32
			for k := 0; k < t.cols; k++ {
				sum += t.data[i*t.cols+k] * other.data[k*other.cols+j]
			}
			out.data[i*other.cols+j] = sum
		}
	}
	return out
}

// Transpose returns a new tensor with rows and columns swapped.
func (t *Tensor) Transpose() *Tensor {
	out := New(t.cols, t.rows)
	for i := 0; i < t.rows; i++ {
		for j := 0; j < t.cols; j++ {
			out.data[j*t.rows+i] = t.data[i*t.cols+j]
		}
	}
	return out
}

// AddBias adds b[j] to every row's column j, mutating t in place.
// Requires len(b) == t.Cols().
func (t *Tensor) AddBias(b []float32) {
	if len(b) != t.cols {
		panic(fmt.Sprintf("tensor: bias length %d does not match %d columns",
			len(b), t.cols))
	}
	for i := 0; i < t.rows; i++ {
		row := t.data[i*t.cols : (i+1)*t.cols]
		for j, v := range b {
			row[j] += v
		}
	}
}

// Argmax returns the column index of the maximum value, ties broken by
// first occurrence in scan order.
//
// For a multi-row tensor only row 0 is scanned. Argmax of a batch is only
// meaningful per row; callers that reintroduce batching must call it once
// per row. This engine trains one example at a time, so row 0 is always
// the example of interest.
func (t *Tensor) Argmax() int {
	maxIdx := 0
	maxVal := t.data[0]
	for j := 1; j < t.cols; j++ {
		if t.data[j] > maxVal {
			maxVal = t.data[j]
			maxIdx = j
		}
	}
	return maxIdx
}
