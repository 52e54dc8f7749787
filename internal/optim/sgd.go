package optim

import "github.com/sprout-ml/sprout/internal/nn"

// SGD implements stochastic gradient descent with optional momentum.
//
// Update rule without momentum:
//
//	param -= lr * grad
//
// Update rule with momentum:
//
//	velocity = momentum * velocity - lr * grad
//	param += velocity
type SGD struct {
	lr       float32
	momentum float32
	velocity map[*nn.Parameter][]float32
}

// SGDConfig holds configuration for the SGD optimizer.
type SGDConfig struct {
	LR       float32 // learning rate (default: 0.01)
	Momentum float32 // momentum factor in [0, 1) (default: 0, plain SGD)
}

// NewSGD creates an SGD optimizer.
func NewSGD(config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.01
	}
	return &SGD{
		lr:       config.LR,
		momentum: config.Momentum,
		velocity: make(map[*nn.Parameter][]float32),
	}
}

// Step applies one SGD update to p in place.
func (s *SGD) Step(p *nn.Parameter) {
	data := p.Data()
	grad := p.Grad()

	if s.momentum == 0 {
		for i := range data {
			data[i] -= s.lr * grad[i]
		}
		return
	}

	v := state(s.velocity, p)
	for i := range data {
		v[i] = s.momentum*v[i] - s.lr*grad[i]
		data[i] += v[i]
	}
}

// LR returns the current learning rate.
func (s *SGD) LR() float32 { return s.lr }

// SetLR updates the learning rate, for scheduling.
func (s *SGD) SetLR(lr float32) { s.lr = lr }
