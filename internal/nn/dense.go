package nn

import (
	"fmt"

	"github.com/sprout-ml/sprout/internal/tensor"
)

// DenseLayer is a fully connected layer composed with one activation:
//
//	Forward:  Y = activation(X @ W + b)
//	Backward: dW = Xᵀ @ dAct, db = column sums of dAct, dX = dAct @ Wᵀ
//
// The weight matrix has shape (inFeatures, outFeatures) and the bias has
// length outFeatures. Weight and bias live inside Parameters whose data
// slices the layer's algebra operates on directly; the optimizer mutates
// the same slices, so no weight synchronization step exists.
type DenseLayer struct {
	inFeatures  int
	outFeatures int
	weight      *Parameter
	bias        *Parameter
	activation  *Activation
	inputCache  *tensor.Tensor
}

// NewDense creates a dense layer with Xavier-initialized weights and zero
// biases.
func NewDense(inFeatures, outFeatures int, act ActivationType) *DenseLayer {
	if inFeatures <= 0 || outFeatures <= 0 {
		panic(fmt.Sprintf("nn: invalid dense layer shape %d -> %d", inFeatures, outFeatures))
	}

	weight := NewParameter("weight", inFeatures*outFeatures)
	XavierFill(nil, weight.Data(), inFeatures, outFeatures)

	return &DenseLayer{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      weight,
		bias:        NewParameter("bias", outFeatures),
		activation:  NewActivation(act),
	}
}

// Forward computes activation(X @ W + b) and caches X for Backward.
// Requires X.Cols() == InFeatures().
func (l *DenseLayer) Forward(x *tensor.Tensor) *tensor.Tensor {
	if x.Cols() != l.inFeatures {
		panic(fmt.Sprintf("nn: dense forward expected %d input features, got %d",
			l.inFeatures, x.Cols()))
	}

	l.inputCache = x.Clone()

	out := x.MatMul(l.weightTensor())
	out.AddBias(l.bias.Data())
	return l.activation.Forward(out)
}

// Backward consumes the gradient w.r.t. this layer's output, overwrites
// the weight and bias gradient buffers, and returns the gradient w.r.t.
// the layer's input.
//
// Gradients fully replace the stored buffers on each call; they are never
// accumulated.
func (l *DenseLayer) Backward(dOut *tensor.Tensor) *tensor.Tensor {
	if l.inputCache == nil {
		panic("nn: dense backward called before forward")
	}
	if dOut.Cols() != l.outFeatures {
		panic(fmt.Sprintf("nn: dense backward expected %d output features, got %d",
			l.outFeatures, dOut.Cols()))
	}
	if dOut.Rows() != l.inputCache.Rows() {
		panic(fmt.Sprintf("nn: dense backward expected %d rows to match cached input, got %d",
			l.inputCache.Rows(), dOut.Rows()))
	}

	dAct := l.activation.Backward(dOut)

	// dW = Xᵀ @ dAct
	dw := l.inputCache.Transpose().MatMul(dAct)
	copy(l.weight.Grad(), dw.Data())

	// db = column sums of dAct over all rows
	db := l.bias.Grad()
	for j := range db {
		db[j] = 0
	}
	for i := 0; i < dAct.Rows(); i++ {
		for j := 0; j < dAct.Cols(); j++ {
			db[j] += dAct.At(i, j)
		}
	}

	// dX = dAct @ Wᵀ
	return dAct.MatMul(l.weightTensor().Transpose())
}

// weightTensor views the weight parameter as an (in, out) matrix without
// copying.
func (l *DenseLayer) weightTensor() *tensor.Tensor {
	return tensor.Wrap(l.inFeatures, l.outFeatures, l.weight.Data())
}

// Weight returns the weight parameter.
func (l *DenseLayer) Weight() *Parameter { return l.weight }

// Bias returns the bias parameter.
func (l *DenseLayer) Bias() *Parameter { return l.bias }

// Activation returns the embedded activation.
func (l *DenseLayer) Activation() *Activation { return l.activation }

// InFeatures returns the input dimension.
func (l *DenseLayer) InFeatures() int { return l.inFeatures }

// OutFeatures returns the output dimension.
func (l *DenseLayer) OutFeatures() int { return l.outFeatures }

// Parameters returns the trainable parameters: [weight, bias].
func (l *DenseLayer) Parameters() []*Parameter {
	return []*Parameter{l.weight, l.bias}
}
