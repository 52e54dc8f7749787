// Package nn provides the public API for the engine's neural-network
// building blocks: activations, dense layers, losses and the sequential
// model.
//
// Example:
//
//	model := nn.NewModel()
//	model.Add(nn.NewDense(80, 256, nn.ActivationReLU))
//	model.Add(nn.NewDense(256, 10, nn.ActivationSoftmax))
//	model.Compile(nn.NewLoss(nn.LossSparseCategoricalCrossEntropy), opt)
package nn

import (
	"github.com/sprout-ml/sprout/internal/nn"
)

// Parameter is a trainable buffer paired with a same-shaped gradient buffer.
type Parameter = nn.Parameter

// Activation applies a nonlinearity with cached input/output.
type Activation = nn.Activation

// ActivationType selects one of the supported nonlinearities.
type ActivationType = nn.ActivationType

// Supported activation functions.
const (
	ActivationStep      ActivationType = nn.ActivationStep
	ActivationLinear    ActivationType = nn.ActivationLinear
	ActivationReLU      ActivationType = nn.ActivationReLU
	ActivationLeakyReLU ActivationType = nn.ActivationLeakyReLU
	ActivationPReLU     ActivationType = nn.ActivationPReLU
	ActivationSigmoid   ActivationType = nn.ActivationSigmoid
	ActivationTanh      ActivationType = nn.ActivationTanh
	ActivationELU       ActivationType = nn.ActivationELU
	ActivationSELU      ActivationType = nn.ActivationSELU
	ActivationGELU      ActivationType = nn.ActivationGELU
	ActivationSwish     ActivationType = nn.ActivationSwish
	ActivationSoftmax   ActivationType = nn.ActivationSoftmax
)

// NewActivation creates an activation with the common defaults.
func NewActivation(t ActivationType) *Activation {
	return nn.NewActivation(t)
}

// XavierFill fills data from the Xavier/Glorot uniform distribution,
// drawing from rng (or the global source when rng is nil).
var XavierFill = nn.XavierFill

// DenseLayer is a fully connected layer composed with one activation.
type DenseLayer = nn.DenseLayer

// NewDense creates a dense layer with Xavier-initialized weights.
func NewDense(inFeatures, outFeatures int, act ActivationType) *DenseLayer {
	return nn.NewDense(inFeatures, outFeatures, act)
}

// Loss is a scalar objective with a paired gradient computation.
type Loss = nn.Loss

// LossType selects one of the supported objectives.
type LossType = nn.LossType

// Supported loss functions.
const (
	LossMSE                           LossType = nn.LossMSE
	LossBinaryCrossEntropy            LossType = nn.LossBinaryCrossEntropy
	LossCategoricalCrossEntropy       LossType = nn.LossCategoricalCrossEntropy
	LossSparseCategoricalCrossEntropy LossType = nn.LossSparseCategoricalCrossEntropy
)

// NewLoss creates a loss with the default epsilon clamp.
func NewLoss(t LossType) *Loss {
	return nn.NewLoss(t)
}

// Target carries either a dense target tensor or sparse class labels.
type Target = nn.Target

// DenseTarget wraps a dense target tensor.
var DenseTarget = nn.DenseTarget

// ClassTarget wraps integer class labels.
var ClassTarget = nn.ClassTarget

// Model is an ordered stack of dense layers bound to one loss and one
// optimizer.
type Model = nn.Model

// Metrics reports mean loss and top-1 accuracy over one dataset pass.
type Metrics = nn.Metrics

// Optimizer is the per-parameter update rule the model applies during Fit.
type Optimizer = nn.Optimizer

// NewModel creates an empty, uncompiled model.
func NewModel() *Model {
	return nn.NewModel()
}
