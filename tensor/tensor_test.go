package tensor_test

import (
	"testing"

	"github.com/sprout-ml/sprout/tensor"
)

// TestPublicAPI verifies the facade exposes the internal tensor surface.
func TestPublicAPI(t *testing.T) {
	x := tensor.FromSlice(1, 2, []float32{3, 4})
	w := tensor.Wrap(2, 1, []float32{2, 0.5})

	y := x.MatMul(w)
	if y.Rows() != 1 || y.Cols() != 1 {
		t.Fatalf("shape = %dx%d, want 1x1", y.Rows(), y.Cols())
	}
	if y.At(0, 0) != 8 {
		t.Errorf("y = %f, want 8", y.At(0, 0))
	}

	v := tensor.Vector(3)
	v.AddBias([]float32{1, 2, 3})
	if v.Argmax() != 2 {
		t.Errorf("Argmax = %d, want 2", v.Argmax())
	}
}
