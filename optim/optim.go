// Package optim provides the public API for the engine's optimizers.
package optim

import (
	"github.com/sprout-ml/sprout/internal/optim"
)

// Optimizer is the interface implemented by all update rules.
type Optimizer = optim.Optimizer

// SGD is stochastic gradient descent with optional momentum.
type SGD = optim.SGD

// SGDConfig contains configuration for the SGD optimizer.
type SGDConfig = optim.SGDConfig

// NewSGD creates a new SGD optimizer.
func NewSGD(config SGDConfig) *SGD {
	return optim.NewSGD(config)
}

// RMSProp scales updates by a running root-mean-square of gradients.
type RMSProp = optim.RMSProp

// RMSPropConfig contains configuration for the RMSProp optimizer.
type RMSPropConfig = optim.RMSPropConfig

// NewRMSProp creates a new RMSProp optimizer.
func NewRMSProp(config RMSPropConfig) *RMSProp {
	return optim.NewRMSProp(config)
}

// Adam is adaptive moment estimation with bias correction and a shared
// step counter.
type Adam = optim.Adam

// AdamConfig contains configuration for the Adam optimizer.
type AdamConfig = optim.AdamConfig

// NewAdam creates a new Adam optimizer.
func NewAdam(config AdamConfig) *Adam {
	return optim.NewAdam(config)
}
