package nn

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprout-ml/sprout/internal/tensor"
)

// sgd is a minimal in-package optimizer so model tests do not depend on
// the optim package (which imports nn).
type sgd struct {
	lr       float32
	momentum float32
	velocity map[*Parameter][]float32
}

func newSGD(lr, momentum float32) *sgd {
	return &sgd{lr: lr, momentum: momentum, velocity: make(map[*Parameter][]float32)}
}

func (s *sgd) Step(p *Parameter) {
	data := p.Data()
	grad := p.Grad()
	if s.momentum == 0 {
		for i := range data {
			data[i] -= s.lr * grad[i]
		}
		return
	}
	v, ok := s.velocity[p]
	if !ok {
		v = make([]float32, p.Len())
		s.velocity[p] = v
	}
	for i := range data {
		v[i] = s.momentum*v[i] - s.lr*grad[i]
		data[i] += v[i]
	}
}

// reseed makes layer initialization deterministic for convergence tests.
// Biases start slightly positive so no ReLU unit begins dead.
func reseed(rng *rand.Rand, layers ...*DenseLayer) {
	for _, l := range layers {
		XavierFill(rng, l.Weight().Data(), l.InFeatures(), l.OutFeatures())
		for i := range l.Bias().Data() {
			l.Bias().Data()[i] = 0.1
		}
	}
}

// blobs generates n points per class around the given centers.
func blobs(rng *rand.Rand, centers [][2]float64, n int, noise float64) ([]*tensor.Tensor, []int) {
	var xs []*tensor.Tensor
	var ys []int
	for class, c := range centers {
		for i := 0; i < n; i++ {
			xs = append(xs, tensor.FromSlice(1, 2, []float32{
				float32(c[0] + rng.NormFloat64()*noise),
				float32(c[1] + rng.NormFloat64()*noise),
			}))
			ys = append(ys, class)
		}
	}
	return xs, ys
}

func TestModel_FitBeforeCompilePanics(t *testing.T) {
	m := NewModel()
	m.Add(NewDense(2, 2, ActivationSoftmax))

	x := []*tensor.Tensor{tensor.New(1, 2)}
	assert.Panics(t, func() { m.Fit(x, []int{0}, 1, 1) })
	assert.Panics(t, func() { m.Evaluate(x, []int{0}) })
}

func TestModel_PredictChainsLayers(t *testing.T) {
	l1 := NewDense(2, 3, ActivationLinear)
	l2 := NewDense(3, 4, ActivationSoftmax)

	m := NewModel()
	m.Add(l1)
	m.Add(l2)

	out := m.Predict(tensor.New(1, 2))
	require.Equal(t, 1, out.Rows())
	require.Equal(t, 4, out.Cols())

	var sum float32
	for _, v := range out.Data() {
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-5)
}

// TestModel_FitConvergesMulticlass trains a softmax classifier with the
// sparse categorical loss on three separable blobs.
func TestModel_FitConvergesMulticlass(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	l1 := NewDense(2, 8, ActivationReLU)
	l2 := NewDense(8, 3, ActivationSoftmax)
	reseed(rng, l1, l2)

	m := NewModel()
	m.Add(l1)
	m.Add(l2)

	loss := NewLoss(LossSparseCategoricalCrossEntropy)
	loss.NumClasses = 3
	m.Compile(loss, newSGD(0.05, 0.9))

	xs, ys := blobs(rng, [][2]float64{{2.5, 0}, {-2.5, 2.5}, {0, -2.5}}, 15, 0.4)

	history := m.Fit(xs, ys, 200, 1)
	require.Len(t, history, 200)

	final := history[len(history)-1]
	assert.GreaterOrEqual(t, final.Accuracy, float32(0.9), "final training accuracy")
	assert.Less(t, final.Loss, history[0].Loss, "loss decreased")

	eval := m.Evaluate(xs, ys)
	assert.GreaterOrEqual(t, eval.Accuracy, float32(0.9))
}

// TestModel_EvaluateDoesNotTrain verifies Evaluate leaves every parameter
// untouched.
func TestModel_EvaluateDoesNotTrain(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	l := NewDense(2, 2, ActivationSoftmax)
	reseed(rng, l)

	m := NewModel()
	m.Add(l)
	m.Compile(NewLoss(LossSparseCategoricalCrossEntropy), newSGD(0.1, 0))

	before := append([]float32(nil), l.Weight().Data()...)
	xs, ys := blobs(rng, [][2]float64{{1, 1}, {-1, -1}}, 5, 0.2)
	m.Evaluate(xs, ys)

	assert.Equal(t, before, l.Weight().Data())
}

// TestTwoLayerBinaryConvergence drives the layers, binary cross-entropy
// and SGD directly: a 2->3->1 ReLU/sigmoid network on seeded separable
// points reaches at least 90% training accuracy.
func TestTwoLayerBinaryConvergence(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	hidden := NewDense(2, 3, ActivationReLU)
	out := NewDense(3, 1, ActivationSigmoid)
	reseed(rng, hidden, out)

	xs, ys := blobs(rng, [][2]float64{{-1.5, -1.5}, {1.5, 1.5}}, 20, 0.3)

	loss := NewLoss(LossBinaryCrossEntropy)
	opt := newSGD(0.2, 0.9)

	for epoch := 0; epoch < 400; epoch++ {
		for i, x := range xs {
			pred := out.Forward(hidden.Forward(x))
			target := DenseTarget(tensor.FromSlice(1, 1, []float32{float32(ys[i])}))

			grad := loss.Backward(pred, target)
			hidden.Backward(out.Backward(grad))

			for _, p := range []*Parameter{hidden.Weight(), hidden.Bias(), out.Weight(), out.Bias()} {
				opt.Step(p)
			}
		}
	}

	correct := 0
	for i, x := range xs {
		p := out.Forward(hidden.Forward(x)).At(0, 0)
		if (p > 0.5) == (ys[i] == 1) {
			correct++
		}
	}
	accuracy := float64(correct) / float64(len(xs))
	assert.GreaterOrEqual(t, accuracy, 0.9, "training accuracy after 400 epochs")
}
