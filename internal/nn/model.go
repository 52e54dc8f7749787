package nn

import (
	"github.com/sprout-ml/sprout/internal/tensor"
)

// Optimizer is the update rule the model applies to each trainable
// parameter after every example's backward pass. Concrete implementations
// live in the optim package; the model only needs Step.
type Optimizer interface {
	Step(p *Parameter)
}

// Metrics reports mean loss and top-1 accuracy over one pass of a dataset.
type Metrics struct {
	Loss     float32
	Accuracy float32
}

// Model is an ordered stack of dense layers bound to one loss and one
// optimizer.
//
// A model starts uncompiled: layers may be added but Fit and Evaluate
// panic until Compile binds a loss and an optimizer. Layers are held by
// reference; they are constructed externally and outlive the model, and
// training never mutates the layer sequence itself.
type Model struct {
	layers []*DenseLayer
	loss   *Loss
	opt    Optimizer
}

// NewModel creates an empty, uncompiled model.
func NewModel() *Model {
	return &Model{}
}

// Add appends a layer to the stack.
func (m *Model) Add(layer *DenseLayer) {
	m.layers = append(m.layers, layer)
}

// Compile binds the loss function and optimizer, making the model usable
// for Fit, Evaluate and Predict-driven training.
func (m *Model) Compile(loss *Loss, opt Optimizer) {
	m.loss = loss
	m.opt = opt
}

// Layers returns the layer stack.
func (m *Model) Layers() []*DenseLayer { return m.layers }

// Parameters returns every trainable parameter across all layers.
func (m *Model) Parameters() []*Parameter {
	var params []*Parameter
	for _, l := range m.layers {
		params = append(params, l.Parameters()...)
	}
	return params
}

// Predict chains every layer's forward pass in sequence order.
func (m *Model) Predict(x *tensor.Tensor) *tensor.Tensor {
	out := x
	for _, l := range m.layers {
		out = l.Forward(out)
	}
	return out
}

// Backward propagates the loss gradient through all layers in reverse
// order. Each layer overwrites its own weight/bias gradients.
func (m *Model) Backward(grad *tensor.Tensor) {
	for i := len(m.layers) - 1; i >= 0; i-- {
		grad = m.layers[i].Backward(grad)
	}
}

// Fit trains on (xs, ys) for the given number of epochs, one example at a
// time, and returns per-epoch metrics.
//
// batchSize is accepted for API familiarity but training is strictly
// single-example stochastic: every example runs forward, loss, backward
// and one optimizer step per parameter. Mini-batching would be a new
// feature, not a different reading of this argument.
//
// Each parameter receives exactly one Step call per example, which keeps
// the Adam optimizer's shared timestep synchronized across buffers.
func (m *Model) Fit(xs []*tensor.Tensor, ys []int, epochs, batchSize int) []Metrics {
	m.mustBeCompiled()
	_ = batchSize

	history := make([]Metrics, 0, epochs)
	for epoch := 0; epoch < epochs; epoch++ {
		var epochLoss float32
		correct := 0

		for i, x := range xs {
			out := m.Predict(x)

			epochLoss += m.loss.Forward(out, ClassTarget(ys[i]))
			if out.Argmax() == ys[i] {
				correct++
			}

			m.Backward(m.loss.Backward(out, ClassTarget(ys[i])))

			for _, p := range m.Parameters() {
				m.opt.Step(p)
			}
		}

		n := float32(len(xs))
		history = append(history, Metrics{
			Loss:     epochLoss / n,
			Accuracy: float32(correct) / n,
		})
	}
	return history
}

// Evaluate runs one forward-only pass over (xs, ys) and reports mean loss
// and top-1 accuracy. No gradients are computed and no weights change.
func (m *Model) Evaluate(xs []*tensor.Tensor, ys []int) Metrics {
	m.mustBeCompiled()

	var totalLoss float32
	correct := 0
	for i, x := range xs {
		out := m.Predict(x)
		totalLoss += m.loss.Forward(out, ClassTarget(ys[i]))
		if out.Argmax() == ys[i] {
			correct++
		}
	}

	n := float32(len(xs))
	return Metrics{Loss: totalLoss / n, Accuracy: float32(correct) / n}
}

func (m *Model) mustBeCompiled() {
	if m.loss == nil || m.opt == nil {
		panic("nn: model must be compiled before training or evaluation")
	}
}
