package nn

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/sprout-ml/sprout/internal/tensor"
)

// LossType selects one of the supported objectives.
type LossType int

// Supported loss functions.
const (
	LossMSE LossType = iota
	LossBinaryCrossEntropy
	LossCategoricalCrossEntropy
	LossSparseCategoricalCrossEntropy
)

// DefaultEps is the probability clamp applied before logarithms so that
// saturated predictions cannot produce infinite loss.
const DefaultEps float32 = 1e-7

// Target carries either a dense target tensor (one-hot or regression
// values) or sparse integer class labels, one per prediction row.
type Target struct {
	dense  *tensor.Tensor
	sparse []int
}

// DenseTarget wraps a dense target tensor for MSE, binary cross-entropy
// and categorical cross-entropy.
func DenseTarget(t *tensor.Tensor) Target {
	return Target{dense: t}
}

// ClassTarget wraps integer class labels for sparse categorical
// cross-entropy, one label per prediction row.
func ClassTarget(classes ...int) Target {
	return Target{sparse: classes}
}

// Loss is a stateless scalar objective comparing a prediction tensor
// against a target. Forward produces the scalar value; Backward produces
// the gradient tensor fed into the last layer's backward pass.
type Loss struct {
	Type       LossType
	NumClasses int // used by the sparse variant for documentation/validation
	Eps        float32
}

// NewLoss creates a loss with the default epsilon clamp.
func NewLoss(t LossType) *Loss {
	return &Loss{Type: t, Eps: DefaultEps}
}

// Forward computes the scalar loss for the given prediction and target.
func (l *Loss) Forward(pred *tensor.Tensor, target Target) float32 {
	switch l.Type {
	case LossMSE:
		return l.mse(pred, l.denseTarget(pred, target))
	case LossBinaryCrossEntropy:
		return l.bce(pred, l.denseTarget(pred, target))
	case LossCategoricalCrossEntropy:
		return l.cce(pred, l.denseTarget(pred, target))
	case LossSparseCategoricalCrossEntropy:
		return l.sparseCCE(pred, l.sparseTarget(pred, target))
	}
	panic(fmt.Sprintf("nn: unknown loss type %d", l.Type))
}

// Backward computes the gradient of the loss w.r.t. the prediction.
//
// For the sparse categorical variant the result is (pred - onehot)/rows,
// the combined softmax+cross-entropy gradient. It is intended to flow into
// a softmax-terminated layer, whose activation backward passes it through
// unchanged.
func (l *Loss) Backward(pred *tensor.Tensor, target Target) *tensor.Tensor {
	switch l.Type {
	case LossMSE:
		return l.mseBackward(pred, l.denseTarget(pred, target))
	case LossBinaryCrossEntropy:
		return l.bceBackward(pred, l.denseTarget(pred, target))
	case LossCategoricalCrossEntropy:
		return l.cceBackward(pred, l.denseTarget(pred, target))
	case LossSparseCategoricalCrossEntropy:
		return l.sparseCCEBackward(pred, l.sparseTarget(pred, target))
	}
	panic(fmt.Sprintf("nn: unknown loss type %d", l.Type))
}

func (l *Loss) denseTarget(pred *tensor.Tensor, target Target) *tensor.Tensor {
	if target.dense == nil {
		panic("nn: loss requires a dense target")
	}
	if !pred.SameShape(target.dense) {
		panic(fmt.Sprintf("nn: prediction %dx%d and target %dx%d shapes differ",
			pred.Rows(), pred.Cols(), target.dense.Rows(), target.dense.Cols()))
	}
	return target.dense
}

func (l *Loss) sparseTarget(pred *tensor.Tensor, target Target) []int {
	if target.sparse == nil {
		panic("nn: loss requires class targets")
	}
	if len(target.sparse) != pred.Rows() {
		panic(fmt.Sprintf("nn: %d class labels for %d prediction rows",
			len(target.sparse), pred.Rows()))
	}
	for _, c := range target.sparse {
		if c < 0 || c >= pred.Cols() {
			panic(fmt.Sprintf("nn: class label %d out of range for %d classes", c, pred.Cols()))
		}
	}
	return target.sparse
}

// mse: mean over all entries of (pred-target)².
func (l *Loss) mse(pred, target *tensor.Tensor) float32 {
	p := pred.Data()
	y := target.Data()
	var loss float32
	for i := range p {
		d := p[i] - y[i]
		loss += d * d
	}
	return loss / float32(len(p))
}

func (l *Loss) mseBackward(pred, target *tensor.Tensor) *tensor.Tensor {
	grad := tensor.New(pred.Rows(), pred.Cols())
	p := pred.Data()
	y := target.Data()
	g := grad.Data()
	scale := 2.0 / float32(len(p))
	for i := range p {
		g[i] = scale * (p[i] - y[i])
	}
	return grad
}

// bce expects single-column predictions and targets.
func (l *Loss) bce(pred, target *tensor.Tensor) float32 {
	if pred.Cols() != 1 {
		panic(fmt.Sprintf("nn: binary cross-entropy expects a single column, got %d", pred.Cols()))
	}
	var loss float32
	for i := 0; i < pred.Rows(); i++ {
		p := clamp(pred.At(i, 0), l.Eps, 1.0-l.Eps)
		y := target.At(i, 0)
		loss += -(y*math32.Log(p) + (1.0-y)*math32.Log(1.0-p))
	}
	return loss / float32(pred.Rows())
}

func (l *Loss) bceBackward(pred, target *tensor.Tensor) *tensor.Tensor {
	if pred.Cols() != 1 {
		panic(fmt.Sprintf("nn: binary cross-entropy expects a single column, got %d", pred.Cols()))
	}
	grad := tensor.New(pred.Rows(), 1)
	for i := 0; i < pred.Rows(); i++ {
		p := clamp(pred.At(i, 0), l.Eps, 1.0-l.Eps)
		y := target.At(i, 0)
		grad.Set(i, 0, (p-y)/(p*(1.0-p)))
	}
	return grad
}

// cce: mean over rows of -log(max(p_j, eps)) summed over columns where the
// target is positive.
func (l *Loss) cce(pred, target *tensor.Tensor) float32 {
	var loss float32
	for i := 0; i < pred.Rows(); i++ {
		for j := 0; j < pred.Cols(); j++ {
			if target.At(i, j) > 0 {
				loss += -math32.Log(math32.Max(pred.At(i, j), l.Eps))
			}
		}
	}
	return loss / float32(pred.Rows())
}

func (l *Loss) cceBackward(pred, target *tensor.Tensor) *tensor.Tensor {
	grad := tensor.New(pred.Rows(), pred.Cols())
	p := pred.Data()
	y := target.Data()
	g := grad.Data()
	rows := float32(pred.Rows())
	for i := range p {
		g[i] = (p[i] - y[i]) / rows
	}
	return grad
}

// sparseCCE: mean over rows of -log(max(p_class, eps)).
func (l *Loss) sparseCCE(pred *tensor.Tensor, classes []int) float32 {
	var loss float32
	for i, c := range classes {
		loss += -math32.Log(math32.Max(pred.At(i, c), l.Eps))
	}
	return loss / float32(pred.Rows())
}

func (l *Loss) sparseCCEBackward(pred *tensor.Tensor, classes []int) *tensor.Tensor {
	grad := pred.Clone()
	rows := float32(pred.Rows())
	for i, c := range classes {
		grad.Set(i, c, grad.At(i, c)-1.0)
	}
	g := grad.Data()
	for i := range g {
		g[i] /= rows
	}
	return grad
}

func clamp(v, lo, hi float32) float32 {
	return math32.Min(math32.Max(v, lo), hi)
}
