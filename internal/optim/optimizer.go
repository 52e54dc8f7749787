// Package optim implements the gradient-descent update rules used to
// train dense networks: SGD (with optional momentum), RMSProp and Adam.
//
// All optimizers share one contract: Step(p) reads p.Grad() and mutates
// p.Data() in place. Auxiliary accumulator state (velocity, running
// squared gradients, moment estimates) is keyed by the *nn.Parameter
// itself and lazily zero-allocated to the parameter's length on first use,
// then persists for the optimizer's lifetime. Keying by the parameter
// wrapper rather than its raw data slice keeps state attached even if the
// underlying buffer is re-pointed.
//
// Example:
//
//	opt := optim.NewSGD(optim.SGDConfig{LR: 0.01, Momentum: 0.9})
//	for _, p := range model.Parameters() {
//	    opt.Step(p)
//	}
package optim

import "github.com/sprout-ml/sprout/internal/nn"

// Optimizer is the interface implemented by all update rules.
type Optimizer interface {
	// Step applies one in-place update to the parameter from its
	// current gradient buffer.
	Step(p *nn.Parameter)
	// LR returns the current learning rate.
	LR() float32
}

// state fetches or lazily creates the auxiliary buffer for p.
func state(m map[*nn.Parameter][]float32, p *nn.Parameter) []float32 {
	buf, ok := m[p]
	if !ok {
		buf = make([]float32, p.Len())
		m[p] = buf
	}
	return buf
}
